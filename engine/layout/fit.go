package layout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"
)

// A FaceSource yields a font face at a requested point-size. The render
// pipeline backs it with the font registry, tests with fixed-metrics faces.
type FaceSource func(pt float64) (font.Face, error)

// Fit typesets text at the largest point-size whose wrapped block still fits
// the box, searched by bisection over [1, min(boxHeight, maxSize)]. When not
// even size 1 fits, the text is typeset at size 1 and truncated. The chosen
// face is returned alongside the block so the compositor draws with the same
// metrics the search measured with.
func Fit(text string, p Params, faces FaceSource, maxSize int) (Block, []ChangeEvent, font.Face, error) {
	clean, events := ExtractTags(norm.NFC.String(text), p.Tags)
	clean = strings.TrimSpace(clean)

	hi := p.Box.Dy()
	if maxSize > 0 && maxSize < hi {
		hi = maxSize
	}
	lo, best := 1, 0
	var bestFace font.Face
	for lo <= hi {
		mid := (lo + hi) / 2
		face, err := faces(float64(mid))
		if err != nil {
			return Block{}, nil, nil, err
		}
		if fits(clean, face, p) {
			best, bestFace = mid, face
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best == 0 {
		tracer().Infof("text does not fit the box at any size, truncating at size 1")
		face, err := faces(1)
		if err != nil {
			return Block{}, nil, nil, err
		}
		bestFace = face
	} else {
		tracer().Debugf("fitted text at size %d", best)
	}
	p.Face = bestFace
	return typeset(clean, p), events, bestFace, nil
}

// fits reports whether the whole text, wrapped for face, stays inside the box.
func fits(clean string, face font.Face, p Params) bool {
	if clean == "" {
		return true
	}
	lines := wrapAll(clean, face, p.Box.Dx())
	w := 0
	for _, ln := range lines {
		if lw := measure(face, ln); lw > w {
			w = lw
		}
	}
	h := len(lines) * LineHeight(face, p.LineSpacing)
	return w <= p.Box.Dx() && h <= p.Box.Dy()
}
