package resolve

import (
	"fmt"
	"reflect"
	"testing"
)

func TestStronglyConnected_Acyclic(t *testing.T) {
	g := Relation{
		"a": NewSet("b"),
		"b": NewSet("c"),
		"c": NewSet(),
	}

	got := StronglyConnected(g)

	want := [][]string{{"a"}, {"b"}, {"c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StronglyConnected() = %v, want %v", got, want)
	}
}

func TestStronglyConnected_TwoCycle(t *testing.T) {
	g := Relation{
		"a": NewSet("b"),
		"b": NewSet("a"),
	}

	got := StronglyConnected(g)

	want := [][]string{{"a", "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StronglyConnected() = %v, want %v", got, want)
	}
}

func TestStronglyConnected_TriangleWithTail(t *testing.T) {
	g := Relation{
		"a": NewSet("b"),
		"b": NewSet("c"),
		"c": NewSet("a"),
		"d": NewSet("a"),
	}

	got := StronglyConnected(g)

	want := [][]string{{"a", "b", "c"}, {"d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StronglyConnected() = %v, want %v", got, want)
	}
}

func TestStronglyConnected_DanglingProviders(t *testing.T) {
	// Nodes that only appear as values still belong to the partition.
	g := Relation{"a": NewSet("x", "y")}

	got := StronglyConnected(g)

	want := [][]string{{"a"}, {"x"}, {"y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StronglyConnected() = %v, want %v", got, want)
	}
}

func TestStronglyConnected_Partition(t *testing.T) {
	g := Relation{
		"a": NewSet("b"),
		"b": NewSet("a", "c"),
		"c": NewSet("d"),
		"d": NewSet("c", "e"),
		"e": NewSet(),
	}

	comps := StronglyConnected(g)

	seen := make(map[string]int)
	for _, comp := range comps {
		for _, n := range comp {
			seen[n]++
		}
	}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		if seen[n] != 1 {
			t.Errorf("node %s appears in %d components, want exactly 1", n, seen[n])
		}
	}
	if len(seen) != 5 {
		t.Errorf("partition covers %d nodes, want 5", len(seen))
	}
}

func TestStronglyConnected_Deterministic(t *testing.T) {
	g := Relation{
		"m": NewSet("n", "o"),
		"n": NewSet("m"),
		"o": NewSet("p"),
		"p": NewSet("o", "q"),
		"q": NewSet(),
	}

	first := StronglyConnected(g)
	for i := 0; i < 10; i++ {
		if got := StronglyConnected(g); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, want %v", i, got, first)
		}
	}
}

func TestStronglyConnected_DeepChain(t *testing.T) {
	// A chain long enough to blow a recursive implementation's stack on
	// constrained systems. The explicit-stack traversal must handle it.
	const n = 10000
	g := make(Relation, n)
	for i := 0; i < n-1; i++ {
		g[fmt.Sprintf("n%05d", i)] = NewSet(fmt.Sprintf("n%05d", i+1))
	}
	g[fmt.Sprintf("n%05d", n-1)] = NewSet()

	comps := StronglyConnected(g)

	if len(comps) != n {
		t.Errorf("len(components) = %d, want %d", len(comps), n)
	}
}

func TestStronglyConnected_LargeCycle(t *testing.T) {
	const n = 500
	g := make(Relation, n)
	for i := 0; i < n; i++ {
		g[fmt.Sprintf("n%03d", i)] = NewSet(fmt.Sprintf("n%03d", (i+1)%n))
	}

	comps := StronglyConnected(g)

	if len(comps) != 1 {
		t.Fatalf("len(components) = %d, want 1", len(comps))
	}
	if len(comps[0]) != n {
		t.Errorf("component size = %d, want %d", len(comps[0]), n)
	}
}
