// Package resolve implements the dependency-graph resolution engine that
// decides in what order mutually referencing crypto-API rules are processed.
//
// # Overview
//
// Rules reference each other through ensures/requires predicates: an edge
// consumer→provider means the consumer's guarantee depends on the provider's
// guarantee being established first. The upstream pipeline turns predicate
// matches into a raw [Relation]; this package turns that raw relation, for
// any chosen focus rule, into a deterministic, acyclic, leaf-to-root
// processing order - even when the raw relation contains cycles.
//
// The pipeline has three stages, applied by [Resolver.Resolve]:
//
//  1. [Sanitize] scopes the relation to the rules reachable from the focus,
//     removes self-loops, and best-effort recovers missing provider edges
//     from the reverse relation.
//  2. [CollapseCycles] detects strongly connected components ([StronglyConnected])
//     and collapses each non-trivial one to its lexicographically smallest
//     member, then expands the acyclic condensation back to per-rule
//     adjacency so no rule is lost.
//  3. [LeafToRootOrder] linearizes the flattened graph with Kahn's algorithm
//     (lexicographic tie-break), and [VerifyOrdering] asserts the focus rule
//     lands last.
//
// # Determinism
//
// Every stage breaks ties lexicographically: Tarjan roots and neighbors are
// visited in sorted order, component representatives are the smallest
// members, and the Kahn queue is a min-heap over rule labels. Running the
// pipeline twice on identical inputs yields byte-identical orders and
// diagnostics.
//
// # Diagnostics
//
// The core performs no logging. Each stage returns [Event] values
// (recovered edges, collapsed components, residual cycles) that callers
// route to a logger; see the pipeline package for the standard wiring. This
// keeps every function here a pure function of its inputs, which is what
// the determinism tests rely on.
//
// # Error Handling
//
// Input anomalies (missing focus, empty relation, dangling references) are
// normalized, not rejected. Residual cycles degrade to a warning-logged,
// total fallback ordering. The only hard failure is the focus-last
// invariant violation detected by [VerifyOrdering], which aborts the run
// for that focus rule.
//
// # Concurrency
//
// All computation is synchronous and allocation-local. A shared input
// relation is never mutated - each run clones what it needs - so resolving
// different focus rules from multiple goroutines is safe as long as the
// caller does not mutate the relation mid-batch.
package resolve
