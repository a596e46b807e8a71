/*
Package render wires the layout engine, the expression selector and the
compositor into a pipeline. One pipeline instance serves a whole run;
every trigger becomes one RenderText or RenderImage call producing a
finished page.

The pipeline commits expression changes only after a render succeeded, so
a failing render (missing base image, unusable font) leaves the active
expression untouched.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sketch.render'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.render")
}
