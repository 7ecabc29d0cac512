//go:build !sjsondebug

package simdjson

// No-op counterparts to debug.go's tracer, compiled in by default so stage 2
// and the on-demand navigator can call trace unconditionally without a build
// tag of their own; only `-tags sjsondebug` pays for (and prints) anything.

func traceToken(where string, pos int, c byte, depth int) {}

func traceScope(where string, tag Tag, tapeIdx int) {}
