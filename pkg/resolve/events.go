package resolve

import (
	"fmt"
	"strings"
)

// EventKind classifies a diagnostic event emitted by the resolution pipeline.
type EventKind string

// Diagnostic event kinds.
const (
	// EventRecoveredEdges reports provider edges inferred for the focus rule
	// by the sanitizer's recovery heuristic.
	EventRecoveredEdges EventKind = "recovered_edges"

	// EventNoCycles reports that the scoped graph was already acyclic and no
	// collapsing was necessary.
	EventNoCycles EventKind = "no_cycles"

	// EventCollapsedComponent reports one non-trivial strongly connected
	// component that was collapsed to its representative.
	EventCollapsedComponent EventKind = "collapsed_component"

	// EventResidualCycle warns that nodes remained unresolvable during
	// ordering (a cycle survived collapsing) and were appended in sorted
	// order as a fallback.
	EventResidualCycle EventKind = "residual_cycle"
)

// Event is one diagnostic emitted during resolution. The core never writes
// log output itself; it returns events so that callers can route them to a
// logger, keeping the graph computation a pure function of its inputs.
//
// Events are human-readable diagnostics, not a stable machine contract.
type Event struct {
	Kind  EventKind `json:"kind"`
	Focus string    `json:"focus"`
	Nodes []string  `json:"nodes,omitempty"` // sorted; meaning depends on Kind
	Msg   string    `json:"msg"`
}

// Warning reports whether the event signals a degraded (but tolerated)
// outcome rather than plain information.
func (e Event) Warning() bool { return e.Kind == EventResidualCycle }

// Component describes one collapsed strongly connected component, for
// diagnostic output. All slices are sorted so that repeated runs on the same
// input produce identical diagnostics.
type Component struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`        // sorted, includes the representative
	InternalEdges  []string `json:"internal_edges"` // sorted "src->dst" strings
}

// Size returns the number of member rules in the component.
func (c Component) Size() int { return len(c.Members) }

// String renders the component in the canonical diagnostic form.
func (c Component) String() string {
	return fmt.Sprintf("rep=%s size=%d members=[%s] internalEdges=[%s]",
		c.Representative,
		len(c.Members),
		strings.Join(c.Members, ", "),
		strings.Join(c.InternalEdges, ", "))
}
