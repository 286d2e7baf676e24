package audit

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Trace accumulates the audit's diagnostic narration as an ordered log. It is
// threaded through the run explicitly and returned with the result; each line
// is also mirrored to the logger so operators see the narration live.
type Trace struct {
	logger logr.Logger
	lines  []string
}

// NewTrace creates a Trace mirroring to logger.
func NewTrace(logger logr.Logger) *Trace {
	return &Trace{logger: logger}
}

// Logf appends a formatted line to the trace.
func (t *Trace) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	t.lines = append(t.lines, line)
	t.logger.V(1).Info(line)
}

// Lines returns the accumulated narration in order.
func (t *Trace) Lines() []string {
	return t.lines
}
