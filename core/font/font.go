/*
Package font handles loading and sizing of scalable fonts.

A "scalable font" is a font file parsed into its SFNT container. A
"typecase" is a scalable font prepared at a concrete point-size, ready
for measuring and drawing glyphs. The sketchbook renderer asks for
typecases of varying sizes when fitting text into the speech box, so
prepared typecases are cached in a registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package font

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'sketch.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.fonts")
}

// ScalableFont is a font file parsed into memory.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, or "internal" for packaged fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scalable font prepared at a fixed point-size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face
	size               float64
}

// LoadOpenTypeFont reads a font file from disk and parses it.
// A missing or unparsable file results in an error with code EFONT.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "font file not readable: %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses binary font data (TTF or OTF).
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// PrepareCase prepares a typecase at a given point-size. Sizes are
// clamped to a sane interval for interactive use.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize < 1.0 || fontsize > 500.0 {
		tracer().Infof("font size must be 1pt ≤ size ≤ 500pt, is %.1f (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72, // 1pt = 1px, coordinates of the speech box are pixels
		Hinting: xfont.HintingFull,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "cannot prepare face for %s", sf.Fontname)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               fontsize,
	}, nil
}

// ScalableFontParent returns the font this typecase was derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Face returns the font face, usable for measuring and drawing.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// PtSize returns the typecase's point-size.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// --- Font Registry ---------------------------------------------------------

// Registry caches parsed fonts and prepared typecases. The text-fitting
// search requests the same font at many sizes; the registry keeps each
// prepared size around.
type Registry struct {
	sync.Mutex
	fonts     map[string]*ScalableFont
	typecases map[string]*TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is the application-wide font registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts:     make(map[string]*ScalableFont),
		typecases: make(map[string]*TypeCase),
	}
}

// StoreFont puts a font into the registry, keyed by normalized name.
func (fr *Registry) StoreFont(f *ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(f.Fontname)
	tracer().Debugf("registry stores font %s as %s", f.Fontname, fname)
	fr.fonts[fname] = f
}

// TypeCase returns a typecase of the named font at the wanted size,
// preparing and caching it if necessary. If the font is unknown, a
// typecase of the fallback font is returned together with an error.
func (fr *Registry) TypeCase(name string, size float64) (*TypeCase, error) {
	fname := NormalizeFontname(name)
	tname := NormalizeTypeCaseName(name, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	if f, ok := fr.fonts[fname]; ok {
		t, err := f.PrepareCase(size)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("font registry has font %s, caches at %.2f", fname, size)
		fr.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", name)
	err := core.Error(core.EFONT, "font %s not found in registry", name)
	fname = NormalizeFontname("fallback")
	tname = NormalizeTypeCaseName("fallback", size)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := FallbackFont()
	t, _ := f.PrepareCase(size)
	tracer().Infof("font registry caches fallback font at %.2f", size)
	fr.fonts[fname] = f
	fr.typecases[tname] = t
	return t, err
}

// NormalizeFontname maps font names and file names onto a registry key.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	return strings.ToLower(fname)
}

// NormalizeTypeCaseName appends the point-size to a normalized font name.
func NormalizeTypeCaseName(fname string, size float64) string {
	return fmt.Sprintf("%s-%.2f", NormalizeFontname(fname), size)
}
