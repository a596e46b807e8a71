/*
Package compose renders a sketchbook page: a base picture for the active
expression, optionally one inset image fitted into the speech box, the
typeset chat text, and optionally a top overlay layer.

The compositor is synchronous and stateless; it is invoked once per
trigger with everything it needs. Unreadable base or inset images abort
the render with error code EIMAGE; a configured but missing overlay is
only warned about, matching the original tool.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package compose

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sketch.compose'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.compose")
}
