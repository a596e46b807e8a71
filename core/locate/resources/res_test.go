package resources

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/disintegration/imaging"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.resources")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "base.png")
	img := imaging.New(40, 30, image.Transparent.C)
	require.NoError(t, imaging.Save(img, path))

	loaded, err := ResolveImage(path).Image()
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Bounds().Dx())
	assert.Equal(t, 30, loaded.Bounds().Dy())
}

func TestResolveImageMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.resources")
	defer teardown()
	//
	_, err := ResolveImage(filepath.Join(t.TempDir(), "nothing.png")).Image()
	require.Error(t, err)
	assert.Equal(t, core.EIMAGE, core.Code(err))
}

func TestResolveTypeCaseFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.resources")
	defer teardown()
	//
	tc, err := ResolveTypeCase("surely-no-such-font-file.ttf", 20.0).TypeCase()
	require.NotNil(t, tc, "expected a fallback typecase")
	assert.Error(t, err)
	assert.Equal(t, 20.0, tc.PtSize())
}
