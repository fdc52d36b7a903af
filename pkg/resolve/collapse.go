package resolve

import (
	"fmt"
	"slices"
	"strings"
)

// CollapseCycles removes cyclic dependencies from a scoped graph by
// collapsing every non-trivial strongly connected component.
//
// If every component is a singleton the input graph is already acyclic and
// is returned unchanged, together with a single [EventNoCycles] event.
//
// Otherwise each component is contracted to its representative - the
// lexicographically smallest member, a deterministic tie-break since
// component member sets carry no intrinsic order. The representatives form
// an acyclic condensation (representative→representative edges, self-edges
// omitted), which is then expanded back to per-rule granularity: every
// member of a component receives the union of the full member sets of every
// component its representative points to. Members of a cyclic component thus
// become mutually indistinguishable - they all depend on the same downstream
// closure - which breaks the cycle for ordering purposes while keeping every
// original rule present in the result.
//
// The returned components describe each collapsed (size > 1) component with
// sorted members and sorted intra-component edges, ordered by
// representative, so diagnostics are reproducible run to run.
func CollapseCycles(g Relation) (Relation, []Component, []Event) {
	sccs := StronglyConnected(g)

	nontrivial := 0
	for _, comp := range sccs {
		if len(comp) > 1 {
			nontrivial++
		}
	}
	if nontrivial == 0 {
		return g, nil, []Event{{
			Kind: EventNoCycles,
			Msg:  "no strongly connected components to collapse",
		}}
	}

	// Map every node to its component's representative. Components arrive
	// with sorted members, so the representative is the first member.
	rep := make(map[string]string)
	members := make(map[string][]string) // representative → sorted members
	for _, comp := range sccs {
		r := comp[0]
		members[r] = comp
		for _, n := range comp {
			rep[n] = r
		}
	}

	// Condensation: representative→representative edges across distinct
	// components only.
	condensed := make(Relation, len(members))
	for node, providers := range g {
		rNode := rep[node]
		if condensed[rNode] == nil {
			condensed[rNode] = make(Set)
		}
		for p := range providers {
			if rDep := rep[p]; rDep != rNode {
				condensed[rNode].Add(rDep)
			}
		}
	}

	// Expand back to original granularity.
	expanded := make(Relation, len(g))
	for _, comp := range sccs {
		r := comp[0]
		out := make(Set)
		for outRep := range condensed[r] {
			for _, m := range members[outRep] {
				out.Add(m)
			}
		}
		for _, member := range comp {
			expanded[member] = out.Clone()
		}
	}

	components := collectComponents(g, sccs)
	events := make([]Event, 0, len(components))
	for _, c := range components {
		events = append(events, Event{
			Kind:  EventCollapsedComponent,
			Nodes: slices.Clone(c.Members),
			Msg:   fmt.Sprintf("collapsed component %s", c),
		})
	}

	return expanded, components, events
}

// collectComponents builds the diagnostic records for every non-trivial
// component, sorted by representative.
func collectComponents(g Relation, sccs [][]string) []Component {
	var out []Component
	for _, comp := range sccs {
		if len(comp) < 2 {
			continue
		}
		inComp := NewSet(comp...)
		var internal []string
		for _, src := range comp {
			for dst := range g[src] {
				if inComp.Has(dst) {
					internal = append(internal, src+"->"+dst)
				}
			}
		}
		slices.Sort(internal)
		out = append(out, Component{
			Representative: comp[0],
			Members:        slices.Clone(comp),
			InternalEdges:  internal,
		})
	}
	slices.SortFunc(out, func(a, b Component) int {
		return strings.Compare(a.Representative, b.Representative)
	})
	return out
}
