package scanner

import "lem/internal/trace"

// Options configure a Scanner. The zero value is the default policy.
type Options struct {
	// Nested makes "/*" inside a delimited comment open a nested level,
	// so the comment closes at the matching "*/" instead of the first one.
	Nested bool
	// Tracer receives point events for unterminated comments; nil means trace.Nop.
	Tracer trace.Tracer
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
