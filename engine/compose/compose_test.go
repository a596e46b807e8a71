package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/layout"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/internal/facetest"
	"github.com/disintegration/imaging"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// writeBase saves a solid-color base image and returns its path.
func writeBase(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.png")
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
	return path
}

// oneLine builds a single-line block the way the layout engine would,
// with the cell test face (advance 10, ascent 10, descent 2).
func oneLine(text string, style layout.Style) layout.Block {
	return layout.Block{
		LineHeight: 12,
		Lines: []layout.Line{{
			Runs:      []layout.StyledRun{{Text: text, Style: style}},
			Width:     10 * len([]rune(text)),
			BaselineY: 10,
		}},
	}
}

func TestRenderEmptyBlockReproducesBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 40, 30, white)
	img, err := Render(base, nil, layout.Block{}, Params{Box: image.Rect(0, 0, 40, 30)})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	for _, pt := range []image.Point{{0, 0}, {39, 29}, {20, 15}} {
		assert.Equal(t, white, img.NRGBAAt(pt.X, pt.Y))
	}
}

func TestRenderMissingBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	img, err := Render(filepath.Join(t.TempDir(), "no-such.png"), nil, layout.Block{}, Params{})
	require.Error(t, err)
	assert.Nil(t, img)
	assert.Equal(t, core.EIMAGE, core.Code(err))
}

func TestRenderDrawsTextInDefaultColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 100, 60, white)
	p := Params{
		Box:  image.Rect(5, 5, 95, 55),
		Face: facetest.NewCell(10),
	}
	img, err := Render(base, nil, oneLine("你好", layout.StyleNormal), p)
	require.NoError(t, err)
	// first glyph cell covers (5,5)-(15,17)
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(6, 6))
	assert.Equal(t, white, img.NRGBAAt(90, 50))
}

func TestRenderDrawsEmphasisInSecondColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 100, 60, white)
	p := Params{
		Box:  image.Rect(5, 5, 95, 55),
		Face: facetest.NewCell(10),
	}
	img, err := Render(base, nil, oneLine("悪", layout.StyleEmphasis), p)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, B: 128, A: 255}, img.NRGBAAt(6, 6))
}

func TestRenderAnchorsBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 100, 60, white)
	p := Params{
		Box:    image.Rect(0, 0, 100, 60),
		Face:   facetest.NewCell(10),
		Align:  AlignRight,
		VAlign: VAlignBottom,
	}
	img, err := Render(base, nil, oneLine("你", layout.StyleNormal), p)
	require.NoError(t, err)
	// block height 12, so baseline sits at 48+10; glyph cell is (90,48)-(100,60)
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(95, 50))
	assert.Equal(t, white, img.NRGBAAt(5, 5))
}

func TestRenderInsetPreservesAspect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	red := color.NRGBA{R: 255, A: 255}
	base := writeBase(t, 100, 100, white)
	content := imaging.New(20, 10, red)
	p := Params{
		Box:          image.Rect(10, 10, 90, 90),
		AllowUpscale: true,
	}
	// scale is bounded by the width: 80/20 = 4, giving an 80x40 paste
	img, err := Render(base, content, layout.Block{}, p)
	require.NoError(t, err)
	assert.Equal(t, red, img.NRGBAAt(50, 30))
	assert.Equal(t, white, img.NRGBAAt(50, 60))
}

func TestRenderInsetWithoutUpscale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	red := color.NRGBA{R: 255, A: 255}
	base := writeBase(t, 100, 100, white)
	content := imaging.New(20, 10, red)
	p := Params{Box: image.Rect(10, 10, 90, 90)}
	img, err := Render(base, content, layout.Block{}, p)
	require.NoError(t, err)
	// pasted at natural size, top left of the box
	assert.Equal(t, red, img.NRGBAAt(15, 15))
	assert.Equal(t, white, img.NRGBAAt(50, 30))
}

func TestRenderMissingOverlayIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 40, 30, white)
	p := Params{
		Box:         image.Rect(0, 0, 40, 30),
		OverlayPath: filepath.Join(t.TempDir(), "no-overlay.png"),
	}
	img, err := Render(base, nil, layout.Block{}, p)
	require.NoError(t, err)
	assert.Equal(t, white, img.NRGBAAt(20, 15))
}

func TestRenderOverlayStacksLast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	blue := color.NRGBA{B: 255, A: 255}
	dir := t.TempDir()
	base := writeBase(t, 40, 30, white)
	ovPath := filepath.Join(dir, "overlay.png")
	require.NoError(t, imaging.Save(imaging.New(20, 20, blue), ovPath))
	p := Params{
		Box:         image.Rect(0, 0, 40, 30),
		Face:        facetest.NewCell(10),
		OverlayPath: ovPath,
	}
	img, err := Render(base, nil, oneLine("你", layout.StyleNormal), p)
	require.NoError(t, err)
	// the overlay covers the glyph at the origin
	assert.Equal(t, blue, img.NRGBAAt(5, 5))
	assert.Equal(t, white, img.NRGBAAt(30, 25))
}

func TestEncodeAndSave(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sketch.compose")
	defer teardown()
	//
	base := writeBase(t, 40, 30, white)
	img, err := Render(base, nil, layout.Block{}, Params{Box: image.Rect(0, 0, 40, 30)})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(img, &buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), decoded.Bounds())
	//
	out := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, SaveFile(img, out))
	saved, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 40, saved.Bounds().Dx())
}
