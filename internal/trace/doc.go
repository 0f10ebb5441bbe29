// Package trace provides the event tracing layer of the lem toolchain.
//
// Tracing is how lem logs: commands open spans around loading, scanning,
// segmenting and rendering, and the scanner emits point events for notable
// input (for example an unterminated block comment).
//
// # Usage
//
//	lem scan --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything, including per-comment points
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "scan", parentID)
//	defer span.End("")
package trace
