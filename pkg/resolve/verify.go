package resolve

import (
	"slices"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
)

// Verification reports the health of a computed ordering.
type Verification struct {
	// Order is the recomputed leaf-to-root order.
	Order []string

	// FocusComponent holds the sorted members of the strongly connected
	// component containing the focus rule, recomputed over the reachable
	// subgraph of the verified relation. A singleton means the focus is not
	// involved in a cycle of that relation.
	FocusComponent []string

	// Cyclic is true when the focus rule shares its component with other
	// rules. Diagnostic only; the order above is still total.
	Cyclic bool

	// Events carries any diagnostics produced while recomputing the order.
	Events []Event
}

// VerifyOrdering recomputes the leaf-to-root order for start over g and
// checks the focus-last invariant: the final element of the order must be
// start itself. Callers are required to request orderings only with start as
// the most-dependent rule of its scope, so a violation signals a
// programming or data-integrity fault - the collapsing and ordering stages
// disagree about reachability - and is returned as a fatal
// [errors.ErrCodeInvariantViolation] rather than absorbed.
//
// On success the verification additionally reports whether start sits in a
// multi-member strongly connected component of g restricted to the
// reachable set, which indicates a cycle that collapsing did not resolve.
func VerifyOrdering(start string, g Relation) (*Verification, error) {
	order, events := LeafToRootOrder(start, g)
	if len(order) == 0 || order[len(order)-1] != start {
		return nil, errors.New(errors.ErrCodeInvariantViolation,
			"%s is not last in its leaf-to-root order; ordering still off", start)
	}

	comp := FocusComponent(start, g)
	return &Verification{
		Order:          order,
		FocusComponent: comp,
		Cyclic:         len(comp) > 1,
		Events:         events,
	}, nil
}

// FocusComponent returns the sorted members of the strongly connected
// component containing start, computed over g restricted to the set
// reachable from start (self-edges excluded). The result always contains
// start itself.
func FocusComponent(start string, g Relation) []string {
	reachable := g.reachableFrom(start)
	scoped := make(Relation, len(reachable))
	for u := range reachable {
		kept := make(Set)
		for p := range g[u] {
			if p != u && reachable.Has(p) {
				kept.Add(p)
			}
		}
		scoped[u] = kept
	}

	for _, comp := range StronglyConnected(scoped) {
		if slices.Contains(comp, start) {
			return comp
		}
	}
	return []string{start}
}
