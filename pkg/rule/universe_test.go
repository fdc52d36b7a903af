package rule

import (
	"reflect"
	"testing"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
)

func testUniverse() *Universe {
	return &Universe{
		Name: "jca",
		Rules: []Rule{
			{Name: "Cipher"},
			{Name: "KeyGenerator", Label: "Key Generator"},
			{Name: "SecureRandom"},
		},
		Requires: []Requirement{
			{Consumer: "Cipher", Provider: "KeyGenerator"},
			{Consumer: "Cipher", Provider: "SecureRandom"},
			{Consumer: "KeyGenerator", Provider: "SecureRandom"},
		},
	}
}

func TestUniverse_Validate(t *testing.T) {
	tests := []struct {
		name     string
		universe Universe
		wantCode errors.Code
	}{
		{
			name:     "valid",
			universe: *testUniverse(),
		},
		{
			name:     "bad universe name",
			universe: Universe{Name: "has space"},
			wantCode: errors.ErrCodeInvalidUniverse,
		},
		{
			name: "empty rule name",
			universe: Universe{
				Rules: []Rule{{Name: ""}},
			},
			wantCode: errors.ErrCodeInvalidRule,
		},
		{
			name: "duplicate rule",
			universe: Universe{
				Rules: []Rule{{Name: "Cipher"}, {Name: "Cipher"}},
			},
			wantCode: errors.ErrCodeInvalidUniverse,
		},
		{
			name: "empty requirement endpoint",
			universe: Universe{
				Requires: []Requirement{{Consumer: "Cipher", Provider: ""}},
			},
			wantCode: errors.ErrCodeInvalidUniverse,
		},
		{
			name: "dangling requirement is legal",
			universe: Universe{
				Rules:    []Rule{{Name: "Cipher"}},
				Requires: []Requirement{{Consumer: "Cipher", Provider: "Unknown"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.universe.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestUniverse_Relation(t *testing.T) {
	rel := testUniverse().Relation()

	want := resolve.Relation{
		"Cipher":       resolve.NewSet("KeyGenerator", "SecureRandom"),
		"KeyGenerator": resolve.NewSet("SecureRandom"),
		"SecureRandom": resolve.NewSet(),
	}
	if !rel.Equal(want) {
		t.Errorf("Relation() = %v, want %v", rel, want)
	}
}

func TestUniverse_Reverse_Derived(t *testing.T) {
	rev := testUniverse().Reverse()

	if !rev["SecureRandom"].Has("Cipher") || !rev["SecureRandom"].Has("KeyGenerator") {
		t.Errorf("Reverse() = %v, want SecureRandom consumed by Cipher and KeyGenerator", rev)
	}
}

func TestUniverse_Reverse_Declared(t *testing.T) {
	u := testUniverse()
	u.Reverses = []Requirement{{Consumer: "SecureRandom", Provider: "Cipher"}}

	rev := u.Reverse()

	want := resolve.Relation{"SecureRandom": resolve.NewSet("Cipher")}
	if !rev.Equal(want) {
		t.Errorf("Reverse() = %v, want declared reverses only (%v)", rev, want)
	}
}

func TestUniverse_RuleNames(t *testing.T) {
	got := testUniverse().RuleNames()
	want := []string{"Cipher", "KeyGenerator", "SecureRandom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() = %v, want %v", got, want)
	}
}

func TestUniverse_Fingerprint_OrderIndependent(t *testing.T) {
	a := testUniverse()
	b := &Universe{
		Name: "jca",
		Rules: []Rule{
			{Name: "SecureRandom"},
			{Name: "Cipher"},
			{Name: "KeyGenerator"},
		},
		Requires: []Requirement{
			{Consumer: "KeyGenerator", Provider: "SecureRandom"},
			{Consumer: "Cipher", Provider: "SecureRandom"},
			{Consumer: "Cipher", Provider: "KeyGenerator"},
		},
	}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints differ for reordered but identical universes")
	}
}

func TestUniverse_Fingerprint_ContentSensitive(t *testing.T) {
	a := testUniverse()
	b := testUniverse()
	b.Requires = b.Requires[:2]

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprints equal despite different edges")
	}

	c := testUniverse()
	c.Rules[1].Label = "Renamed"
	if a.Fingerprint() != c.Fingerprint() {
		t.Error("labels must not affect the fingerprint")
	}
}

func TestFromRelation_RoundTrip(t *testing.T) {
	rel := testUniverse().Relation()

	u := FromRelation("jca", rel)
	if !u.Relation().Equal(rel) {
		t.Errorf("FromRelation round-trip = %v, want %v", u.Relation(), rel)
	}
	if !reflect.DeepEqual(u.RuleNames(), []string{"Cipher", "KeyGenerator", "SecureRandom"}) {
		t.Errorf("RuleNames() = %v", u.RuleNames())
	}
}

func TestRule_DisplayLabel(t *testing.T) {
	r := Rule{Name: "KeyGenerator", Label: "Key Generator"}
	if got := r.DisplayLabel(); got != "Key Generator" {
		t.Errorf("DisplayLabel() = %q", got)
	}
	r.Label = ""
	if got := r.DisplayLabel(); got != "KeyGenerator" {
		t.Errorf("DisplayLabel() = %q", got)
	}
}
