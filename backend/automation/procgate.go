package automation

import (
	"strings"
)

// A Gate decides whether a trigger is allowed to run. The trigger session
// consults it once per trigger, before touching the clipboard.
type Gate func() bool

// AllowAll gates nothing.
func AllowAll() Gate {
	return func() bool { return true }
}

// ProcessGate allows triggers only while one of the named executables owns
// the foreground window. Names are matched case-insensitively. An empty
// list allows everything.
func ProcessGate(allowed []string) Gate {
	if len(allowed) == 0 {
		return AllowAll()
	}
	set := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		set[strings.ToLower(name)] = true
	}
	return func() bool {
		name, err := foregroundProcess()
		if err != nil {
			tracer().Errorf("cannot determine foreground process: %v", err)
			return false
		}
		if !set[strings.ToLower(name)] {
			tracer().Debugf("trigger ignored, foreground process is %q", name)
			return false
		}
		return true
	}
}
