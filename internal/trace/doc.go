// Package trace provides lightweight tracing for ktsuppress runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	ktsuppress --trace=- --trace-level=detail
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failed files
//   - LevelPhase: Run boundaries (parse log, apply)
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything including per-warning decisions
//
// # Context Propagation
//
// Tracers travel through the fix engine via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "annotate", parentID)
//	defer span.End("")
package trace
