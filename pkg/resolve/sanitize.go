package resolve

import (
	"fmt"
	"strings"
)

// Sanitize normalizes a raw consumer→provider relation into a clean directed
// graph scoped to the rules reachable from focus.
//
// The steps, in order:
//
//  1. Defensively copy the relation and force focus to be present as a key
//     (with an empty provider set if absent from the input).
//  2. If focus has no declared providers, attempt best-effort recovery from
//     the reverse relation (see [recoverProviders]).
//  3. Drop empty identifiers and self-loops (k ∉ adjacency[k]).
//  4. Restrict keys and value sets to the nodes reachable from focus in the
//     consumer→provider direction; unreachable rules are discarded.
//
// Sanitize never fails: an empty or missing relation yields the singleton
// graph {focus: {}}. Recovered edges are reported as events; the sanitizer
// produces no other side effects.
func Sanitize(relation, reverse Relation, focus string) (Relation, []Event) {
	g := relation.Clone()
	if g[focus] == nil {
		g[focus] = make(Set)
	}

	var events []Event

	// Recovery only fires when the focus has no declared providers at all.
	if len(g[focus]) == 0 && reverse != nil {
		recovered := recoverProviders(relation, reverse, focus)
		if len(recovered) > 0 {
			for _, p := range recovered {
				g[focus].Add(p)
			}
			events = append(events, Event{
				Kind:  EventRecoveredEdges,
				Focus: focus,
				Nodes: recovered,
				Msg: fmt.Sprintf("recovered potential providers for %s: [%s]",
					focus, strings.Join(recovered, ", ")),
			})
		}
	}

	for k, providers := range g {
		delete(providers, "")
		delete(providers, k)
	}

	reachable := g.reachableFrom(focus)
	scoped := make(Relation, len(reachable))
	for k, providers := range g {
		if !reachable.Has(k) {
			continue
		}
		kept := make(Set, len(providers))
		for p := range providers {
			if reachable.Has(p) {
				kept.Add(p)
			}
		}
		scoped[k] = kept
	}
	// Reachable leaves that only ever appeared inside value sets become keys
	// with empty adjacency, so every node of the scoped graph is a key.
	for n := range reachable {
		if scoped[n] == nil {
			scoped[n] = make(Set)
		}
	}

	return scoped, events
}

// recoverProviders scans the reverse relation for rules believed to consume
// from focus and returns, in sorted order, those that look like plausible
// providers instead: a reverse neighbor qualifies when its own forward
// relation does not already declare focus as a provider.
//
// This is a heuristic, not a sound inference: it only checks for the absence
// of a declared back-edge, not for true non-dependency. It exists to tolerate
// incomplete upstream predicate data and must never run silently - callers
// report recovered edges on the diagnostics channel.
func recoverProviders(relation, reverse Relation, focus string) []string {
	candidates := reverse[focus]
	if len(candidates) == 0 {
		return nil
	}
	recovered := make(Set)
	for cand := range candidates {
		if cand == focus || cand == "" {
			continue
		}
		if !relation[cand].Has(focus) {
			recovered.Add(cand)
		}
	}
	if len(recovered) == 0 {
		return nil
	}
	return recovered.Sorted()
}
