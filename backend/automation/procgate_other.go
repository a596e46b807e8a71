//go:build !windows

package automation

import (
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
)

// Foreground window inspection is only implemented for Windows; a gate
// with an allow-list rejects all triggers elsewhere.
func foregroundProcess() (string, error) {
	return "", core.Error(core.EINTERNAL, "foreground process detection not supported on this platform")
}
