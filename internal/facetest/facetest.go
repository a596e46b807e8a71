// Package facetest provides a fixed-metrics font face for tests.
//
// Every rune occupies one cell of a configurable advance, so tests can
// predict wrap points exactly, independent of any real font file.
package facetest

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Cell is a monospaced font.Face with one glyph cell for every rune.
type Cell struct {
	Advance int // advance width per rune, pixels
	Asc     int // ascent, pixels
	Desc    int // descent, pixels
}

var _ font.Face = Cell{}

// NewCell returns a face with a given advance, ascent 10 and descent 2.
func NewCell(advance int) Cell {
	return Cell{Advance: advance, Asc: 10, Desc: 2}
}

func (f Cell) Close() error { return nil }

func (f Cell) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	x, y := dot.X.Floor(), dot.Y.Floor()
	dr := image.Rect(x, y-f.Asc, x+f.Advance, y+f.Desc)
	return dr, image.NewUniform(color.Alpha{0xff}), image.Point{}, fixed.I(f.Advance), true
}

func (f Cell) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.R(0, -f.Asc, f.Advance, f.Desc), fixed.I(f.Advance), true
}

func (f Cell) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return fixed.I(f.Advance), true
}

func (f Cell) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f Cell) Metrics() font.Metrics {
	return font.Metrics{
		Ascent:  fixed.I(f.Asc),
		Descent: fixed.I(f.Desc),
		Height:  fixed.I(f.Asc + f.Desc),
	}
}
