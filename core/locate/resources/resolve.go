package resources

import (
	"context"
	"image"
	"os"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core/font"
	"github.com/disintegration/imaging"
	"github.com/flopp/go-findfont"
)

// --- Images -----------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ImagePromise is the await-side of ResolveImage.
type ImagePromise interface {
	Image() (image.Image, error)
}

type imageLoader struct {
	await func(ctx context.Context) (image.Image, error)
}

func (loader imageLoader) Image() (image.Image, error) {
	return loader.await(context.Background())
}

// ResolveImage loads an image file (PNG or JPEG) from disk. A missing or
// undecodable file yields an error with code EIMAGE; there is no placeholder,
// the sketchbook must not silently render onto a wrong base picture.
func ResolveImage(path string) ImagePromise {
	ch := make(chan imgPlusErr)
	go func(ch chan<- imgPlusErr) {
		result := imgPlusErr{}
		result.img, result.err = LoadImage(path)
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.img, r.err
			}
		},
	}
}

// LoadImage is the synchronous variant of ResolveImage.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		tracer().Errorf("image %s not loadable: %v", path, err)
		return nil, core.WrapError(err, core.EIMAGE, "image not loadable: %s", path)
	}
	return img, nil
}

// --- Fonts -------------------------------------------------------------------

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is the await-side of ResolveTypeCase.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

// ResolveTypeCase resolves a font typecase with a given size.
//
// name may be a file path (tried first), or a font name to look up among the
// installed system fonts. If neither yields a usable font, a typecase of the
// built-in fallback font is returned, together with an error of code EFONT.
// The resolved font is stored in the global font registry, so that subsequent
// registry lookups (e.g. by the text-fitting search) find it at any size.
func ResolveTypeCase(name string, size float64) TypeCasePromise {
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		if t, err := font.GlobalRegistry().TypeCase(name, size); err == nil {
			result.font = t
			ch <- result
			close(ch)
			return
		}
		var f *font.ScalableFont
		if _, err := os.Stat(name); err == nil {
			f, result.err = font.LoadOpenTypeFont(name)
		}
		if f == nil {
			fpath, err := findfont.Find(name) // try to find as system font
			if err == nil && fpath != "" {
				tracer().Debugf("%s is a system font", name)
				f, result.err = font.LoadOpenTypeFont(fpath)
			}
		}
		if f == nil {
			if result.err == nil {
				result.err = core.Error(core.EFONT, "font not found: %s", name)
			}
			tracer().Infof("font %s not resolvable, falling back to %s",
				name, font.FallbackFont().Fontname)
			result.font, _ = font.FallbackFont().PrepareCase(size)
		} else {
			f.Fontname = name
			font.GlobalRegistry().StoreFont(f)
			result.font, result.err = font.GlobalRegistry().TypeCase(name, size)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}
