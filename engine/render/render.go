package render

import (
	"bytes"
	"image"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/config"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/font"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/compose"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/expression"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/layout"
	xfont "golang.org/x/image/font"
)

// insetPadding is the inner margin around pasted inset images, in pixels.
const insetPadding = 12

// Pipeline renders sketchbook pages from chat text or from a clipboard
// image. It is not safe for concurrent use; the trigger loop is serial.
type Pipeline struct {
	cfg   config.Config
	sel   *expression.Selector
	faces layout.FaceSource
}

// A Result is one finished page, together with the expression it was
// rendered with and the change events found in the input.
type Result struct {
	Tag    string // expression tag the page was rendered with
	Events []layout.ChangeEvent
	Image  *image.NRGBA
	PNG    []byte // the page, PNG-encoded for the clipboard
}

// NewPipeline creates a pipeline over a validated configuration.
func NewPipeline(cfg config.Config, sel *expression.Selector, faces layout.FaceSource) *Pipeline {
	return &Pipeline{cfg: cfg, sel: sel, faces: faces}
}

// RegistryFaces returns a face source backed by the global font registry,
// for the font resolved under name. When the registry hands out the
// fallback typecase for an unknown name, rendering proceeds with it; the
// missing font was already reported at resolution time.
func RegistryFaces(name string) layout.FaceSource {
	return func(pt float64) (xfont.Face, error) {
		tc, err := font.GlobalRegistry().TypeCase(name, pt)
		if tc == nil {
			return nil, err
		}
		return tc.Face(), nil
	}
}

// RenderText typesets text and composites it onto the base image of the
// resulting expression. Expression tokens in the text are honored: the last
// recognized one selects the base image, and the selector state moves there
// once the render succeeded. On error the state is left unchanged.
func (p *Pipeline) RenderText(text string) (*Result, error) {
	params := layout.Params{
		Box:         p.cfg.TextBox(),
		LineSpacing: p.cfg.LineSpacing,
		Tags:        p.sel.Tags(),
	}
	var block layout.Block
	var events []layout.ChangeEvent
	var face xfont.Face
	var err error
	if p.cfg.AutoFitText {
		block, events, face, err = layout.Fit(text, params, p.faces, p.cfg.MaxTextHeight)
	} else {
		if face, err = p.faces(p.cfg.FontSize); err == nil {
			params.Face = face
			block, events = layout.TypesetText(text, params)
		}
	}
	if err != nil {
		return nil, err
	}
	tag, basePath, err := p.sel.Resolve(events)
	if err != nil {
		tracer().Errorf("expression %q unusable, rendering with the default: %v", tag, err)
		tag = p.sel.Default()
		if basePath, err = p.sel.ImagePath(tag); err != nil {
			return nil, err
		}
	}
	img, err := compose.Render(basePath, nil, block, compose.Params{
		Box:         p.cfg.TextBox(),
		Align:       compose.AlignCenter,
		VAlign:      compose.VAlignMiddle,
		Face:        face,
		OverlayPath: p.overlayPath(),
	})
	if err != nil {
		return nil, err
	}
	p.sel.Commit(tag)
	return p.finish(tag, events, img)
}

// RenderImage fits a clipboard image into the speech box of the current
// expression's base image. The expression state never changes here.
func (p *Pipeline) RenderImage(content image.Image) (*Result, error) {
	tag := p.sel.Current()
	basePath, err := p.sel.ImagePath(tag)
	if err != nil {
		tag = p.sel.Default()
		if basePath, err = p.sel.ImagePath(tag); err != nil {
			return nil, err
		}
	}
	img, err := compose.Render(basePath, content, layout.Block{}, compose.Params{
		Box:          p.cfg.TextBox(),
		Align:        compose.AlignCenter,
		VAlign:       compose.VAlignMiddle,
		Padding:      insetPadding,
		AllowUpscale: true,
		OverlayPath:  p.overlayPath(),
	})
	if err != nil {
		return nil, err
	}
	return p.finish(tag, nil, img)
}

func (p *Pipeline) overlayPath() string {
	if p.cfg.UseBaseOverlay {
		return p.cfg.BaseOverlayFile
	}
	return ""
}

// finish encodes the page and optionally keeps a copy on disk.
func (p *Pipeline) finish(tag string, events []layout.ChangeEvent, img *image.NRGBA) (*Result, error) {
	var buf bytes.Buffer
	if err := compose.EncodePNG(img, &buf); err != nil {
		return nil, err
	}
	if p.cfg.OutputFile != "" {
		if err := compose.SaveFile(img, p.cfg.OutputFile); err != nil {
			tracer().Errorf("cannot keep a page copy: %v", err)
		}
	}
	tracer().Infof("rendered page for expression %q (%d bytes PNG)", tag, buf.Len())
	return &Result{Tag: tag, Events: events, Image: img, PNG: buf.Bytes()}, nil
}
