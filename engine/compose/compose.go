package compose

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/locate/resources"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/layout"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Align positions lines horizontally within the text box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VAlign positions the text block or inset image vertically within the box.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// Params bundle everything the compositor needs besides the content itself.
//
// TextColor and EmphasisColor may be nil, in which case text is drawn in
// black and emphasized runs in purple.
type Params struct {
	Box           image.Rectangle // speech box in base image coordinates
	Align         Align
	VAlign        VAlign
	Face          font.Face
	TextColor     color.Color
	EmphasisColor color.Color
	OverlayPath   string // optional top layer, composited last
	Padding       int    // inner margin for inset images, in pixels
	AllowUpscale  bool   // scale inset images above their natural size
}

func (p Params) textColor() color.Color {
	if p.TextColor != nil {
		return p.TextColor
	}
	return color.NRGBA{A: 0xff}
}

func (p Params) emphasisColor() color.Color {
	if p.EmphasisColor != nil {
		return p.EmphasisColor
	}
	return color.NRGBA{R: 128, B: 128, A: 0xff}
}

// Render composites a page onto the base image at basePath. The inset
// image, if non-nil, is pasted into the box first, then the text block is
// drawn on top, then the overlay layer, if configured and readable.
//
// Render does not modify the base image on disk and returns the finished
// page in memory.
func Render(basePath string, inset image.Image, block layout.Block, p Params) (*image.NRGBA, error) {
	base, err := resources.ResolveImage(basePath).Image()
	if err != nil {
		return nil, err
	}
	canvas := imaging.Clone(base)
	if inset != nil {
		canvas = pasteInset(canvas, inset, p)
	}
	drawBlock(canvas, block, p)
	return applyOverlay(canvas, p.OverlayPath), nil
}

// pasteInset scales content to fit the box (minus padding), preserving its
// aspect ratio, and pastes it with alpha blending.
func pasteInset(canvas *image.NRGBA, content image.Image, p Params) *image.NRGBA {
	rw := p.Box.Dx() - 2*p.Padding
	rh := p.Box.Dy() - 2*p.Padding
	if rw < 1 {
		rw = 1
	}
	if rh < 1 {
		rh = 1
	}
	cw := content.Bounds().Dx()
	ch := content.Bounds().Dy()
	if cw == 0 || ch == 0 {
		return canvas
	}
	scale := float64(rw) / float64(cw)
	if s := float64(rh) / float64(ch); s < scale {
		scale = s
	}
	if !p.AllowUpscale && scale > 1 {
		scale = 1
	}
	w := int(float64(cw)*scale + 0.5)
	h := int(float64(ch)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w != cw || h != ch {
		content = imaging.Resize(content, w, h, imaging.Lanczos)
	}
	x := p.Box.Min.X + p.Padding
	switch p.Align {
	case AlignCenter:
		x += (rw - w) / 2
	case AlignRight:
		x += rw - w
	}
	y := p.Box.Min.Y + p.Padding
	switch p.VAlign {
	case VAlignMiddle:
		y += (rh - h) / 2
	case VAlignBottom:
		y += rh - h
	}
	tracer().Debugf("pasting %dx%d inset at (%d,%d), scale %.3f", w, h, x, y, scale)
	return imaging.Overlay(canvas, content, image.Pt(x, y), 1.0)
}

// drawBlock draws the typeset lines into the box, anchoring the whole block
// according to VAlign and each line according to Align.
func drawBlock(canvas *image.NRGBA, block layout.Block, p Params) {
	if len(block.Lines) == 0 {
		return
	}
	top := p.Box.Min.Y
	switch p.VAlign {
	case VAlignMiddle:
		top += (p.Box.Dy() - block.Height()) / 2
	case VAlignBottom:
		top += p.Box.Dy() - block.Height()
	}
	normal := image.NewUniform(p.textColor())
	emphasis := image.NewUniform(p.emphasisColor())
	d := font.Drawer{Dst: canvas, Face: p.Face}
	for _, line := range block.Lines {
		x := p.Box.Min.X
		switch p.Align {
		case AlignCenter:
			x += (p.Box.Dx() - line.Width) / 2
		case AlignRight:
			x += p.Box.Dx() - line.Width
		}
		d.Dot = fixed.P(x, top+line.BaselineY)
		for _, run := range line.Runs {
			if run.Style == layout.StyleEmphasis {
				d.Src = emphasis
			} else {
				d.Src = normal
			}
			d.DrawString(run.Text)
		}
	}
}

// applyOverlay stacks the overlay image at the origin. A missing or
// unreadable overlay is logged and skipped.
func applyOverlay(canvas *image.NRGBA, path string) *image.NRGBA {
	if path == "" {
		return canvas
	}
	ov, err := imaging.Open(path)
	if err != nil {
		tracer().Errorf("overlay %q not usable, skipping: %v", path, err)
		return canvas
	}
	return imaging.Overlay(canvas, ov, image.Pt(0, 0), 1.0)
}

// EncodePNG writes img to w in PNG format.
func EncodePNG(img image.Image, w io.Writer) error {
	if err := png.Encode(w, img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode page as PNG")
	}
	return nil
}

// SaveFile writes the finished page to path; the format follows the file
// extension.
func SaveFile(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot save page to %q", path)
	}
	return nil
}
