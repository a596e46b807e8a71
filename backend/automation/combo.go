package automation

import (
	"strings"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
)

// A Combo is a parsed key combination, e.g. ctrl+shift+s or a bare enter.
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Super bool   // the Windows / command key
	Key   string // lower-case key name, e.g. "a", "7", "enter"
}

// ParseCombo parses a textual key combination of the form
// "mod+...+key". Recognized modifiers are ctrl, shift, alt and super
// (with the aliases control, option, win, cmd and meta). The last
// token is the key and must not be a modifier. Parsing is
// case-insensitive; an empty or modifier-only string is an error with
// code EINVALID.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	tokens := strings.Split(s, "+")
	for i, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		last := i == len(tokens)-1
		switch tok {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "super", "win", "cmd", "meta":
			c.Super = true
		case "":
			return Combo{}, core.Error(core.EINVALID, "empty key in combo %q", s)
		default:
			if !last {
				return Combo{}, core.Error(core.EINVALID,
					"key %q must be the last token of combo %q", tok, s)
			}
			c.Key = tok
		}
	}
	if c.Key == "" {
		return Combo{}, core.Error(core.EINVALID, "combo %q names no key", s)
	}
	return c, nil
}

// String renders the combo in canonical form, modifiers first.
func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Super {
		parts = append(parts, "super")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
