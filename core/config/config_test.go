package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	c, err := Load(filepath.Join(t.TempDir(), "nothing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "enter", c.Hotkey)
	assert.Equal(t, "普通", c.DefaultExpression)
}

func TestLoadOverridesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	path := writeConfig(t, `
hotkey: "ctrl+enter"
delay: 0.25
baseimage_mapping:
  普通: "base/normal.png"
  开心: "base/happy.png"
default_expression: "开心"
text_box_topleft: [100, 400]
image_box_bottomright: [300, 600]
emotion_switch_hotkeys:
  alt+1: "普通"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ctrl+enter", c.Hotkey)
	assert.Equal(t, 0.25, c.Delay)
	assert.Equal(t, "开心", c.DefaultExpression)
	assert.Equal(t, "base/happy.png", c.BaseImageMapping["开心"])
	assert.Equal(t, 200, c.TextBox().Dx())
	assert.Equal(t, "普通", c.EmotionSwitchHotkeys["alt+1"])
	// untouched fields keep their defaults
	assert.Equal(t, "ctrl+v", c.PasteHotkey)
}

func TestLoadReplacesDefaultMapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	c, err := Load(writeConfig(t, `
baseimage_mapping:
  开心: "base/happy.png"
default_expression: "开心"
`))
	require.NoError(t, err)
	// the tag set is exactly the file's keys, no default entries leak in
	assert.Equal(t, map[string]string{"开心": "base/happy.png"}, c.BaseImageMapping)
}

func TestLoadClampsDelay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	c, err := Load(writeConfig(t, "delay: 60\n"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, c.Delay)

	c, err = Load(writeConfig(t, "delay: -1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.1, c.Delay)
}

func TestLoadRejectsUnmappedDefaultExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	_, err := Load(writeConfig(t, `
baseimage_mapping:
  普通: "base/normal.png"
default_expression: "病娇"
`))
	require.Error(t, err)
	assert.Equal(t, core.ECONFIG, core.Code(err))
}

func TestLoadRejectsMalformedBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	_, err := Load(writeConfig(t, `
text_box_topleft: [400, 450]
image_box_bottomright: [100, 625]
`))
	require.Error(t, err)
	assert.Equal(t, core.ECONFIG, core.Code(err))
}

func TestLoadRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.config")
	defer teardown()
	//
	_, err := Load(writeConfig(t, ":\n  - ]["))
	require.Error(t, err)
	assert.Equal(t, core.ECONFIG, core.Code(err))
}
