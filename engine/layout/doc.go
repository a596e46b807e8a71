/*
Package layout typesets chat text into the speech box of a sketchbook page.

Raw input text carries two kinds of inline markup: expression tokens of the
form #tag#, which never become visible but switch the sketchbook page the
text is drawn onto, and bracketed spans ([…] or 【…】) which are rendered in
an emphasis color, delimiters included. The layout engine strips the former,
annotates the latter, wraps the remainder into lines that fit the box width,
and silently drops lines that would exceed the box height. All text-parsing
edge cases are permissive: unknown tokens and unterminated brackets are
plain text, never errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sketch.layout'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.layout")
}
