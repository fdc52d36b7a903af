package rule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
)

// Universe is the canonical serialization format for a set of rules and
// their dependency relation. Used for API requests, storage, caching, and
// file import/export.
//
// The relation is assumed to be computed upstream from the rules' predicate
// declarations; a universe only carries the resulting rule→rule edges. The
// format is human-readable and round-trips: import → resolve → export →
// re-import produces identical results.
type Universe struct {
	// Name identifies the universe in stores and cache keys. May be empty
	// for ad-hoc universes passed directly to the resolver.
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	Rules    []Rule        `json:"rules" bson:"rules"`
	Requires []Requirement `json:"requires" bson:"requires"`

	// Reverses optionally carries the upstream-computed reverse relation
	// (provider → consumers believed to depend on it). It feeds the
	// sanitizer's recovery heuristic and is permitted to be inconsistent
	// with Requires. When absent, the transpose of Requires is used.
	Reverses []Requirement `json:"reverses,omitempty" bson:"reverses,omitempty"`
}

// Rule is one named usage rule of a universe.
type Rule struct {
	Name  string         `json:"name" bson:"name"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"` // display label (defaults to Name)
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the name.
func (r *Rule) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// Requirement is one directed dependency edge: Consumer requires a predicate
// that Provider ensures.
type Requirement struct {
	Consumer string `json:"consumer" bson:"consumer"`
	Provider string `json:"provider" bson:"provider"`
}

// Validate checks the universe's structural integrity: a well-formed name
// (when set), well-formed unique rule names, and edge endpoints that are not
// empty. Edges referencing rules absent from Rules are NOT an error; dangling
// references are a normal input anomaly the resolver tolerates.
func (u *Universe) Validate() error {
	if u.Name != "" {
		if err := errors.ValidateUniverseName(u.Name); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(u.Rules))
	for _, r := range u.Rules {
		if err := errors.ValidateRuleName(r.Name); err != nil {
			return err
		}
		if _, dup := seen[r.Name]; dup {
			return errors.New(errors.ErrCodeInvalidUniverse, "duplicate rule %q", r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	for _, e := range u.Requires {
		if e.Consumer == "" || e.Provider == "" {
			return errors.New(errors.ErrCodeInvalidUniverse,
				"requirement with empty endpoint: %q -> %q", e.Consumer, e.Provider)
		}
	}
	for _, e := range u.Reverses {
		if e.Consumer == "" || e.Provider == "" {
			return errors.New(errors.ErrCodeInvalidUniverse,
				"reverse entry with empty endpoint: %q -> %q", e.Consumer, e.Provider)
		}
	}
	return nil
}

// Relation builds the consumer→provider relation from the universe's edges.
// Every declared rule appears as a key, even when it has no requirements, so
// isolated rules are still resolvable focuses.
func (u *Universe) Relation() resolve.Relation {
	rel := make(resolve.Relation, len(u.Rules))
	for _, r := range u.Rules {
		if rel[r.Name] == nil {
			rel[r.Name] = resolve.NewSet()
		}
	}
	for _, e := range u.Requires {
		if rel[e.Consumer] == nil {
			rel[e.Consumer] = resolve.NewSet()
		}
		rel[e.Consumer].Add(e.Provider)
	}
	return rel
}

// Reverse builds the reverse relation fed to the recovery heuristic: the
// declared Reverses when present, otherwise the transpose of Requires. The
// two directions are never required to agree.
func (u *Universe) Reverse() resolve.Relation {
	if len(u.Reverses) == 0 {
		return u.Relation().Reverse()
	}
	rev := make(resolve.Relation)
	for _, e := range u.Reverses {
		if rev[e.Consumer] == nil {
			rev[e.Consumer] = resolve.NewSet()
		}
		rev[e.Consumer].Add(e.Provider)
	}
	return rev
}

// RuleNames returns the declared rule names in ascending lexicographic order.
func (u *Universe) RuleNames() []string {
	names := make([]string, len(u.Rules))
	for i, r := range u.Rules {
		names[i] = r.Name
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is a declared rule of the universe.
func (u *Universe) Has(name string) bool {
	for _, r := range u.Rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Lookup returns the declared rule with the given name.
func (u *Universe) Lookup(name string) (Rule, bool) {
	for _, r := range u.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Fingerprint returns a stable content hash of the universe's structure,
// independent of rule and edge declaration order. Labels and metadata do not
// affect the fingerprint since they never influence resolution.
func (u *Universe) Fingerprint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "name:%s\n", u.Name)
	for _, n := range u.RuleNames() {
		fmt.Fprintf(&sb, "rule:%s\n", n)
	}
	for _, e := range sortedEdges(u.Requires) {
		fmt.Fprintf(&sb, "req:%s->%s\n", e.Consumer, e.Provider)
	}
	for _, e := range sortedEdges(u.Reverses) {
		fmt.Fprintf(&sb, "rev:%s->%s\n", e.Consumer, e.Provider)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:16])
}

func sortedEdges(edges []Requirement) []Requirement {
	out := slices.Clone(edges)
	slices.SortFunc(out, func(a, b Requirement) int {
		if c := strings.Compare(a.Consumer, b.Consumer); c != 0 {
			return c
		}
		return strings.Compare(a.Provider, b.Provider)
	})
	return slices.Compact(out)
}

// FromRelation builds a universe from an in-memory relation, with sorted
// deterministic rule and edge order. Useful for exporting resolver output.
func FromRelation(name string, rel resolve.Relation) *Universe {
	u := &Universe{Name: name}
	for _, consumer := range rel.Keys() {
		u.Rules = append(u.Rules, Rule{Name: consumer})
		for _, provider := range rel[consumer].Sorted() {
			u.Requires = append(u.Requires, Requirement{Consumer: consumer, Provider: provider})
		}
	}
	return u
}
