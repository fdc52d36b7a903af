// Package pipeline orchestrates resolution runs over rule universes.
//
// The [Runner] wraps the pure resolution core with the operational
// concerns shared by the CLI and the HTTP API: result caching keyed by
// universe fingerprint, structured logging of resolution diagnostics, and
// batch execution over every rule of a universe.
//
// # Caching
//
// Orders are pure functions of the universe content, the focus rule, and
// the resolver options, so cached entries never go stale; the fingerprint
// key changes whenever any input does. Cache failures are never fatal - a
// broken cache degrades to recomputation.
//
// # Batch Semantics
//
// [Runner.ResolveAll] resolves each rule as a focus sequentially, each run
// on its own defensive copy. A focus that fails its ordering invariant is
// recorded and skipped; the rest of the batch proceeds.
package pipeline
