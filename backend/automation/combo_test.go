package automation

import (
	"testing"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	c, err := ParseCombo("ctrl+shift+A")
	require.NoError(t, err)
	assert.True(t, c.Ctrl)
	assert.True(t, c.Shift)
	assert.False(t, c.Alt)
	assert.Equal(t, "a", c.Key)
	assert.Equal(t, "ctrl+shift+a", c.String())
}

func TestParseComboBareKey(t *testing.T) {
	c, err := ParseCombo("enter")
	require.NoError(t, err)
	assert.Equal(t, Combo{Key: "enter"}, c)
	assert.Equal(t, "enter", c.String())
}

func TestParseComboAliases(t *testing.T) {
	c, err := ParseCombo("control+option+cmd+x")
	require.NoError(t, err)
	assert.Equal(t, Combo{Ctrl: true, Alt: true, Super: true, Key: "x"}, c)
}

func TestParseComboRejectsModifierOnly(t *testing.T) {
	_, err := ParseCombo("ctrl+shift")
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestParseComboRejectsKeyInTheMiddle(t *testing.T) {
	_, err := ParseCombo("a+ctrl")
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestParseComboRejectsEmpty(t *testing.T) {
	_, err := ParseCombo("")
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
