//go:build !windows && !linux

package automation

import (
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
)

// SystemKeystrokes is not available on this platform.
func SystemKeystrokes() (Keystrokes, error) {
	return nil, core.Error(core.EINTERNAL, "synthetic keystrokes not supported on this platform")
}
