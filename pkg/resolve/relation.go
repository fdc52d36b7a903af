package resolve

import (
	"maps"
	"slices"
)

// Set is an unordered set of rule identifiers.
// The zero value is not usable - use NewSet or make.
type Set map[string]struct{}

// NewSet creates a set containing the given members.
func NewSet(members ...string) Set {
	s := make(Set, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is a member of the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	return maps.Clone(s)
}

// Sorted returns the members in ascending lexicographic order.
// Rule identity is exact string equality, so lexicographic order is the
// deterministic tie-break used throughout the resolution pipeline.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Relation maps a consumer rule to the set of provider rules it depends on.
// An edge consumer→provider means the consumer "requires" a predicate that
// the provider "ensures". The relation may be incomplete: a rule can appear
// only inside a value set and never as a key, and the raw input may contain
// self-references and cycles.
//
// Relations are treated as immutable value objects by the resolution
// pipeline; every stage operates on its own defensive copy.
type Relation map[string]Set

// Clone returns a deep copy of the relation. Nil value sets are normalized
// to empty sets so callers never observe nil adjacency.
func (r Relation) Clone() Relation {
	out := make(Relation, len(r))
	for k, v := range r {
		if v == nil {
			out[k] = make(Set)
			continue
		}
		out[k] = v.Clone()
	}
	return out
}

// Keys returns the consumer identifiers in ascending lexicographic order.
func (r Relation) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Providers returns the provider set for the given consumer, or an empty
// set if the consumer is not a key. The returned set must not be modified.
func (r Relation) Providers(id string) Set {
	if p, ok := r[id]; ok && p != nil {
		return p
	}
	return nil
}

// Reverse computes the transpose relation (provider → set of consumers).
// The upstream pipeline normally supplies the reverse relation alongside
// the forward one; this helper exists for callers that only have the
// forward direction. The two are never required to be mutually consistent.
func (r Relation) Reverse() Relation {
	rev := make(Relation)
	for consumer, providers := range r {
		for provider := range providers {
			if rev[provider] == nil {
				rev[provider] = make(Set)
			}
			rev[provider].Add(consumer)
		}
	}
	return rev
}

// Equal reports whether two relations have identical key sets and identical
// provider sets per key. Nil and empty provider sets compare equal.
func (r Relation) Equal(other Relation) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		w, ok := other[k]
		if !ok || len(v) != len(w) {
			return false
		}
		for m := range v {
			if !w.Has(m) {
				return false
			}
		}
	}
	return true
}

// EdgeCount returns the total number of consumer→provider edges.
func (r Relation) EdgeCount() int {
	n := 0
	for _, providers := range r {
		n += len(providers)
	}
	return n
}

// reachableFrom collects the set of nodes reachable from start by following
// edges in the consumer→provider direction, using an iterative depth-first
// traversal. Self-edges are ignored. The start node is always included.
func (r Relation) reachableFrom(start string) Set {
	reachable := make(Set)
	stack := []string{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable.Has(u) {
			continue
		}
		reachable.Add(u)
		for v := range r[u] {
			if v != u {
				stack = append(stack, v)
			}
		}
	}
	return reachable
}
