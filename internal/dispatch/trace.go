package dispatch

import (
	"fmt"
	"io"
)

// EnvTrace names the variable whose presence enables dispatch tracing.
const EnvTrace = "TOOLSHIM_TRACE"

// Tracer writes dispatch decisions to a sink. A nil Tracer discards
// everything, so call sites never guard their trace lines.
type Tracer struct {
	w io.Writer
}

// NewTracer returns a Tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// TracerFromEnv returns a Tracer on sys.Stdout() when EnvTrace is set, even
// to an empty value, and nil otherwise.
func TracerFromEnv(sys System) *Tracer {
	if !envHas(sys.Environ(), EnvTrace) {
		return nil
	}
	return NewTracer(sys.Stdout())
}

// Printf writes one formatted trace line.
func (t *Tracer) Printf(format string, args ...any) {
	if t == nil || t.w == nil {
		return
	}
	_, _ = fmt.Fprintf(t.w, format+"\n", args...)
}
