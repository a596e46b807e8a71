/*
Package automation connects the render pipeline to the host desktop: global
hotkeys, clipboard transfer, synthetic keystrokes and a gate on the
foreground process.

The package is split into a portable surface (interfaces, the trigger
session, hotkey combo parsing) and thin platform-specific backends. On
Linux the clipboard and synthetic keystrokes need an X11 session and
access to /dev/uinput, respectively.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package automation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sketch.autom'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.autom")
}
