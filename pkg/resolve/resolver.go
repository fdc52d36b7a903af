package resolve

import (
	"slices"

	"github.com/google/uuid"
)

// Resolver computes documentation orders for rules of a universe.
// The zero value is usable and enables the recovery heuristic; use
// [NewResolver] to construct one from explicit options.
//
// A Resolver holds no mutable state: every call to [Resolver.Resolve]
// operates on its own defensive copy of the inputs, so a single Resolver may
// be shared across goroutines as long as the input relations are not
// mutated concurrently.
type Resolver struct {
	// DisableRecovery turns off the sanitizer's provider-recovery
	// heuristic. Recovery is on by default because upstream predicate data
	// is known to be incomplete; disable it to treat the relation as
	// ground truth.
	DisableRecovery bool
}

// NewResolver creates a resolver. Recovery is enabled unless disabled via
// the option struct.
func NewResolver(disableRecovery bool) *Resolver {
	return &Resolver{DisableRecovery: disableRecovery}
}

// Result is the outcome of resolving one focus rule.
type Result struct {
	// RunID uniquely identifies this resolution run in diagnostics.
	RunID string `json:"run_id"`

	// Focus is the rule the order was computed for.
	Focus string `json:"focus"`

	// Order lists every rule reachable from Focus, providers before
	// consumers. For an acyclic (or fully collapsed) scope, Focus is last.
	Order []string `json:"order"`

	// Graph is the sanitized scoped relation, before cycle collapsing.
	Graph Relation `json:"graph"`

	// Flattened is the relation the order was computed over: identical to
	// Graph when no cycles were found, otherwise the collapsed-and-expanded
	// adjacency with the focus re-linked to its former co-members.
	Flattened Relation `json:"flattened"`

	// Components describes every collapsed strongly connected component.
	// Empty when the scoped graph was already acyclic.
	Components []Component `json:"components,omitempty"`

	// Cyclic is true when Focus still shares a strongly connected component
	// with other rules after collapsing. Diagnostic only.
	Cyclic bool `json:"cyclic"`

	// Events is the ordered diagnostic trail of the run.
	Events []Event `json:"events,omitempty"`
}

// Resolve runs the full pipeline for one focus rule: sanitize the raw
// relation, collapse cycles if any, compute the leaf-to-root order, and
// verify the focus-last invariant.
//
// The relation maps consumers to providers; reverse is its (best-effort)
// transpose, used only by the recovery heuristic and permitted to be nil or
// inconsistent. Input anomalies - missing focus, empty relation, dangling
// references - are normalized, never errors. The only error class is an
// invariant violation (focus not last despite collapsing), which is fatal
// for this focus: see [VerifyOrdering].
func (r *Resolver) Resolve(relation, reverse Relation, focus string) (*Result, error) {
	if r.DisableRecovery {
		reverse = nil
	}

	res := &Result{
		RunID: uuid.NewString(),
		Focus: focus,
	}

	graph, events := Sanitize(relation, reverse, focus)
	res.Graph = graph
	res.Events = append(res.Events, events...)

	flattened, components, events := CollapseCycles(graph)
	res.Components = components
	res.Events = append(res.Events, events...)
	res.Flattened = relinkFocus(flattened, components, focus)

	verification, err := VerifyOrdering(focus, res.Flattened)
	if err != nil {
		return nil, err
	}
	res.Order = verification.Order
	res.Events = append(res.Events, verification.Events...)

	// Cycle membership is reported against the pre-collapse graph: that is
	// where a cyclic focus is actually visible, since collapsing always
	// removes the intra-component edges.
	res.Cyclic = len(FocusComponent(focus, graph)) > 1

	return res, nil
}

// relinkFocus makes the focus rule depend on its former co-members after a
// collapse. Expansion cuts all intra-component edges, which would drop the
// co-members from the focus's reachable set and therefore from its order;
// the one-way re-link keeps them in scope and places the focus last among
// them without reintroducing a cycle (no collapsed member retains an edge
// back to the focus). The input graph is not modified.
func relinkFocus(flattened Relation, components []Component, focus string) Relation {
	for _, c := range components {
		if !slices.Contains(c.Members, focus) {
			continue
		}
		out := flattened.Clone()
		for _, m := range c.Members {
			if m != focus {
				out[focus].Add(m)
			}
		}
		return out
	}
	return flattened
}

// Warnings returns the events that signal degraded outcomes.
func (res *Result) Warnings() []Event {
	var out []Event
	for _, e := range res.Events {
		if e.Warning() {
			out = append(out, e)
		}
	}
	return out
}
