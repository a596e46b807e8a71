package layout

import (
	"image"
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"
)

// Style selects the color class a run of text is drawn with.
type Style int

// Styles for runs of text.
const (
	StyleNormal   Style = iota
	StyleEmphasis       // bracketed spans, drawn in the emphasis color
)

// A StyledRun is a contiguous span of visible characters sharing one style.
type StyledRun struct {
	Text  string
	Style Style
}

// A Line is an ordered sequence of styled runs that fits the box width.
// BaselineY is the glyph baseline, in pixels relative to the top of the
// typeset block (the compositor anchors the block inside the box).
type Line struct {
	Runs      []StyledRun
	Width     int // advance width of the whole line, pixels
	BaselineY int
}

// Text returns the visible text of the line.
func (l Line) Text() string {
	var sb strings.Builder
	for _, r := range l.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// A ChangeEvent reports an expression token extracted from the input text,
// in order of appearance. The last event wins as the new expression state.
type ChangeEvent struct {
	Tag string
}

// A Block is the complete result of typesetting one input text.
type Block struct {
	Lines      []Line
	LineHeight int // pixels, including leading
}

// Height returns the total height of the block in pixels.
func (b Block) Height() int {
	return len(b.Lines) * b.LineHeight
}

// Params collects typesetting parameters.
type Params struct {
	Face        font.Face       // metrics provider
	Box         image.Rectangle // bounding box, pixels
	LineSpacing float64         // extra leading, as a fraction of the font height
	Tags        []string        // recognized expression tags
}

// TypesetText lays out raw input text for the given parameters.
//
// Expression tokens for recognized tags are extracted into change events and
// removed from the text stream. The remaining text is wrapped into lines no
// wider than the box; lines that would exceed the box height are dropped.
// Empty input produces a block with zero lines and no events.
func TypesetText(text string, p Params) (Block, []ChangeEvent) {
	clean, events := ExtractTags(norm.NFC.String(text), p.Tags)
	clean = strings.TrimSpace(clean)
	block := typeset(clean, p)
	tracer().Debugf("typeset %d line(s), %d change event(s)", len(block.Lines), len(events))
	return block, events
}

func typeset(clean string, p Params) Block {
	lineH := LineHeight(p.Face, p.LineSpacing)
	block := Block{LineHeight: lineH}
	if clean == "" {
		return block
	}
	maxLines := p.Box.Dy() / lineH // silent vertical truncation
	raw := wrapAll(clean, p.Face, p.Box.Dx())
	if len(raw) > maxLines {
		raw = raw[:maxLines]
	}
	ascent := p.Face.Metrics().Ascent.Ceil()
	inBracket := false
	for i, ln := range raw {
		var line Line
		line.Runs, inBracket = parseRuns(ln, inBracket)
		line.Width = measure(p.Face, ln)
		line.BaselineY = i*lineH + ascent
		block.Lines = append(block.Lines, line)
	}
	return block
}

// LineHeight returns the line advance for a face, in pixels.
func LineHeight(face font.Face, spacing float64) int {
	m := face.Metrics()
	h := float64((m.Ascent + m.Descent).Ceil())
	lh := int(h * (1 + spacing))
	if lh < 1 {
		lh = 1
	}
	return lh
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// --- Wrapping ---------------------------------------------------------------

var setupGraphemes sync.Once

// graphemes splits a string into user-perceived characters (UAX#29
// grapheme clusters), the units CJK text wraps at.
func graphemes(s string) []string {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	seg := segment.NewSegmenter(grapheme.NewBreaker(1))
	seg.Init(strings.NewReader(s))
	var gs []string
	for seg.Next() {
		gs = append(gs, seg.Text())
	}
	return gs
}

// wrapAll breaks text into lines no wider than maxW. Paragraphs containing
// spaces wrap at word boundaries, falling back to per-grapheme splitting for
// words wider than a whole line; paragraphs without spaces (the usual case
// for Chinese chat text) wrap at grapheme boundaries.
func wrapAll(txt string, face font.Face, maxW int) []string {
	var lines []string
	for _, para := range strings.Split(txt, "\n") {
		hasSpace := strings.Contains(para, " ")
		var units []string
		if hasSpace {
			units = strings.Split(para, " ")
		} else {
			units = graphemes(para)
		}
		join := func(a, b string) string {
			if a == "" {
				return b
			}
			if hasSpace {
				return a + " " + b
			}
			return a + b
		}
		buf := ""
		for _, u := range units {
			trial := join(buf, u)
			if measure(face, trial) <= maxW {
				buf = trial
				continue
			}
			if buf != "" {
				lines = append(lines, buf)
			}
			if hasSpace && len(u) > 1 {
				// a single word wider than the box is split at graphemes
				tmp := ""
				for _, g := range graphemes(u) {
					if measure(face, tmp+g) <= maxW {
						tmp += g
					} else {
						if tmp != "" {
							lines = append(lines, tmp)
						}
						tmp = g
					}
				}
				buf = tmp
			} else if measure(face, u) <= maxW {
				buf = u
			} else {
				// a single grapheme wider than the box occupies its own line
				lines = append(lines, u)
				buf = ""
			}
		}
		if buf != "" {
			lines = append(lines, buf)
		}
		if para == "" && (len(lines) == 0 || lines[len(lines)-1] != "") {
			lines = append(lines, "")
		}
	}
	return lines
}

// --- Emphasis runs ----------------------------------------------------------

// parseRuns splits one wrapped line into styled runs. inBracket is the
// emphasis state carried over from the previous line, so that spans wrapping
// across lines stay emphasized; the updated state is returned.
func parseRuns(s string, inBracket bool) ([]StyledRun, bool) {
	var runs []StyledRun
	var buf strings.Builder
	flush := func(style Style) {
		if buf.Len() > 0 {
			runs = append(runs, StyledRun{Text: buf.String(), Style: style})
			buf.Reset()
		}
	}
	styleHere := func() Style {
		if inBracket {
			return StyleEmphasis
		}
		return StyleNormal
	}
	for _, ch := range s {
		switch ch {
		case '[', '【':
			flush(styleHere())
			runs = append(runs, StyledRun{Text: string(ch), Style: StyleEmphasis})
			inBracket = true
		case ']', '】':
			flush(StyleEmphasis)
			runs = append(runs, StyledRun{Text: string(ch), Style: StyleEmphasis})
			inBracket = false
		default:
			buf.WriteRune(ch)
		}
	}
	flush(styleHere())
	return runs, inBracket
}

// --- Expression tokens --------------------------------------------------------

// ExtractTags removes all #tag# tokens for recognized tags from text and
// reports them as change events, in order of appearance. Tokens naming an
// unrecognized tag stay in the text verbatim.
func ExtractTags(text string, tags []string) (string, []ChangeEvent) {
	type match struct {
		start, end int
		tag        string
	}
	var matches []match
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		token := "#" + tag + "#"
		for idx := 0; ; {
			i := strings.Index(text[idx:], token)
			if i < 0 {
				break
			}
			matches = append(matches, match{idx + i, idx + i + len(token), tag})
			idx += i + len(token)
		}
	}
	if len(matches) == 0 {
		return text, nil
	}
	// sort by position; overlapping matches are skipped below
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].start < matches[j-1].start; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	var sb strings.Builder
	var events []ChangeEvent
	pos := 0
	for _, m := range matches {
		if m.start < pos {
			continue
		}
		sb.WriteString(text[pos:m.start])
		events = append(events, ChangeEvent{Tag: m.tag})
		pos = m.end
	}
	sb.WriteString(text[pos:])
	return sb.String(), events
}
