/*
Package expression tracks which sketchbook page variant is active.

Every expression tag (e.g. "开心") maps to one base image. The selector
holds the current tag for the lifetime of the process; recognized change
events extracted from chat text move it, unrecognized ones are ignored.
The host invokes the selector serially; there is no internal locking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package expression

import (
	"sort"

	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/core"
	"github.com/MarkCup-Official/Anan-s-Sketchbook-Chat-Box/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sketch.expression'.
func tracer() tracing.Trace {
	return tracing.Select("sketch.expression")
}

// Selector maps expression tags to base image paths and remembers the
// currently active tag.
type Selector struct {
	mapping map[string]string
	deflt   string
	current string
}

// NewSelector creates a selector over a tag → base image mapping.
// The default tag must be a key of the mapping (error code ECONFIG
// otherwise); it is also the initial state.
func NewSelector(mapping map[string]string, deflt string) (*Selector, error) {
	if _, ok := mapping[deflt]; !ok {
		return nil, core.Error(core.ECONFIG, "default expression %q has no base image", deflt)
	}
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Selector{mapping: m, deflt: deflt, current: deflt}, nil
}

// Current returns the active expression tag.
func (s *Selector) Current() string {
	return s.current
}

// Default returns the configured default tag.
func (s *Selector) Default() string {
	return s.deflt
}

// Tags returns the set of recognized expression tags, sorted.
func (s *Selector) Tags() []string {
	tags := make([]string, 0, len(s.mapping))
	for tag := range s.mapping {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Resolve determines the tag and base image a render should use, without
// changing state: the last event naming a recognized tag wins, events for
// unknown tags are ignored, and with no usable event the current tag stays.
// A tag that has no mapping entry (e.g. removed by a config reload) yields
// an error with code ECONFIG; callers fall back to the default tag.
func (s *Selector) Resolve(events []layout.ChangeEvent) (tag string, path string, err error) {
	tag = s.current
	for _, e := range events {
		if _, ok := s.mapping[e.Tag]; ok {
			tag = e.Tag
		} else {
			tracer().Debugf("ignoring change event for unknown tag %q", e.Tag)
		}
	}
	path, ok := s.mapping[tag]
	if !ok {
		return tag, "", core.Error(core.ECONFIG, "expression %q has no base image", tag)
	}
	return tag, path, nil
}

// Commit makes tag the active expression. Unknown tags are ignored, so a
// selector never enters a state outside the configured mapping.
func (s *Selector) Commit(tag string) {
	if _, ok := s.mapping[tag]; !ok {
		tracer().Infof("not committing unknown expression %q", tag)
		return
	}
	if tag != s.current {
		tracer().Infof("expression switches to %q", tag)
	}
	s.current = tag
}

// Apply updates the state to the last valid event in the list, a no-op for
// an empty list or a list of only invalid tags. It returns the active tag.
func (s *Selector) Apply(events []layout.ChangeEvent) string {
	tag, _, _ := s.Resolve(events)
	s.Commit(tag)
	return s.current
}

// ImagePath returns the base image path for a tag, with error code ECONFIG
// when the tag is unknown.
func (s *Selector) ImagePath(tag string) (string, error) {
	path, ok := s.mapping[tag]
	if !ok {
		return "", core.Error(core.ECONFIG, "expression %q has no base image", tag)
	}
	return path, nil
}
