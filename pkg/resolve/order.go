package resolve

import (
	"container/heap"
	"fmt"
	"strings"
)

// LeafToRootOrder linearizes the rules reachable from start so that every
// provider appears before each of its consumers (leaf-to-root). For an
// acyclic graph with start as the most-dependent rule of its scope, start is
// the last element of the returned order.
//
// The order is computed with Kahn's algorithm seeded from the pure leaves
// (rules with no unresolved providers). Ties are broken by always popping
// the lexicographically smallest eligible rule, so the result is fully
// deterministic.
//
// The reachable set is recomputed here even though callers normally pass an
// already-scoped graph; direct callers may pass an un-scoped relation.
// Self-edges and providers outside the reachable set are ignored.
//
// If rules remain unresolved after the queue drains, a cycle survived
// collapsing. The stuck rules are appended in sorted order and reported via
// an [EventResidualCycle] event, so the function is total and never fails.
func LeafToRootOrder(start string, g Relation) ([]string, []Event) {
	reachable := g.reachableFrom(start)

	// Reverse adjacency (provider → consumers) and in-degree restricted to
	// the reachable set. indegree[n] counts n's in-scope providers.
	consumers := make(map[string][]string, len(reachable))
	indegree := make(map[string]int, len(reachable))
	for u := range reachable {
		indegree[u] = 0
	}
	for u := range reachable {
		for p := range g[u] {
			if p == u || !reachable.Has(p) {
				continue
			}
			consumers[p] = append(consumers[p], u)
			indegree[u]++
		}
	}

	q := &ruleHeap{}
	heap.Init(q)
	for _, n := range sortedKeys(indegree) {
		if indegree[n] == 0 {
			heap.Push(q, n)
		}
	}

	order := make([]string, 0, len(reachable))
	for q.Len() > 0 {
		leaf := heap.Pop(q).(string)
		order = append(order, leaf)

		for _, consumer := range consumers[leaf] {
			indegree[consumer]--
			if indegree[consumer] == 0 {
				heap.Push(q, consumer)
			}
		}
	}

	var events []Event
	if len(order) < len(reachable) {
		var stuck []string
		for _, n := range sortedKeys(indegree) {
			if indegree[n] > 0 {
				stuck = append(stuck, n)
			}
		}
		events = append(events, Event{
			Kind:  EventResidualCycle,
			Focus: start,
			Nodes: stuck,
			Msg: fmt.Sprintf("cycle(s) detected among: [%s]",
				strings.Join(stuck, ", ")),
		})
		order = append(order, stuck...)
	}

	return order, events
}

// sortedKeys returns the keys of m in ascending lexicographic order.
func sortedKeys(m map[string]int) []string {
	keys := make(Set, len(m))
	for k := range m {
		keys.Add(k)
	}
	return keys.Sorted()
}

// ruleHeap is a min-heap of rule identifiers ordered lexicographically.
// It backs the deterministic tie-break in [LeafToRootOrder].
type ruleHeap []string

func (h ruleHeap) Len() int           { return len(h) }
func (h ruleHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h ruleHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *ruleHeap) Push(x any)        { *h = append(*h, x.(string)) }

func (h *ruleHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
