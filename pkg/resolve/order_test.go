package resolve

import (
	"reflect"
	"testing"
)

func TestLeafToRootOrder_Chain(t *testing.T) {
	g := Relation{
		"A": NewSet("B"),
		"B": NewSet("C"),
		"C": NewSet(),
	}

	order, events := LeafToRootOrder("A", g)

	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
	if len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
}

func TestLeafToRootOrder_Diamond(t *testing.T) {
	g := Relation{
		"A": NewSet("B", "C"),
		"B": NewSet("D"),
		"C": NewSet("D"),
		"D": NewSet(),
	}

	order, _ := LeafToRootOrder("A", g)

	// D first, then B and C in lexicographic order, A last.
	want := []string{"D", "B", "C", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
}

func TestLeafToRootOrder_DanglingProvider(t *testing.T) {
	g := Relation{"A": NewSet("Z")}

	order, _ := LeafToRootOrder("A", g)

	want := []string{"Z", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
}

func TestLeafToRootOrder_EmptyRelation(t *testing.T) {
	order, _ := LeafToRootOrder("X", Relation{})

	want := []string{"X"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
}

func TestLeafToRootOrder_IgnoresOutOfScope(t *testing.T) {
	// The orderer recomputes reachability, so unrelated parts of an
	// un-scoped relation must not leak into the order.
	g := Relation{
		"A": NewSet("B"),
		"B": NewSet(),
		"Q": NewSet("R"),
		"R": NewSet(),
	}

	order, _ := LeafToRootOrder("A", g)

	want := []string{"B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
}

func TestLeafToRootOrder_SelfEdgeIgnored(t *testing.T) {
	g := Relation{
		"A": NewSet("A", "B"),
		"B": NewSet(),
	}

	order, events := LeafToRootOrder("A", g)

	want := []string{"B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}
	if len(events) != 0 {
		t.Errorf("self-edge should not count as a cycle, got events %v", events)
	}
}

func TestLeafToRootOrder_ResidualCycleFallback(t *testing.T) {
	// A cycle passed directly to the orderer (without collapsing first)
	// must degrade to a sorted, warning-logged, total order.
	g := Relation{
		"A": NewSet("B"),
		"B": NewSet("A"),
	}

	order, events := LeafToRootOrder("A", g)

	want := []string{"A", "B"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("LeafToRootOrder() = %v, want %v", order, want)
	}

	if len(events) != 1 {
		t.Fatalf("events = %v, want a single residual-cycle warning", events)
	}
	e := events[0]
	if e.Kind != EventResidualCycle {
		t.Errorf("event kind = %v, want %v", e.Kind, EventResidualCycle)
	}
	if !e.Warning() {
		t.Error("residual-cycle event should be a warning")
	}
	if !reflect.DeepEqual(e.Nodes, []string{"A", "B"}) {
		t.Errorf("stuck nodes = %v, want [A B]", e.Nodes)
	}
}

func TestLeafToRootOrder_TopologicalSoundness(t *testing.T) {
	g := Relation{
		"app":    NewSet("auth", "cache", "log"),
		"auth":   NewSet("crypto", "log"),
		"cache":  NewSet("log"),
		"crypto": NewSet("rand"),
		"log":    NewSet(),
		"rand":   NewSet(),
	}

	order, _ := LeafToRootOrder("app", g)

	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for consumer, providers := range g {
		for p := range providers {
			if pos[p] >= pos[consumer] {
				t.Errorf("provider %s at %d does not precede consumer %s at %d",
					p, pos[p], consumer, pos[consumer])
			}
		}
	}
	if order[len(order)-1] != "app" {
		t.Errorf("last = %s, want app", order[len(order)-1])
	}
}

func TestLeafToRootOrder_Deterministic(t *testing.T) {
	g := Relation{
		"A": NewSet("B", "C", "D"),
		"B": NewSet("E"),
		"C": NewSet("E"),
		"D": NewSet("E"),
		"E": NewSet(),
	}

	first, _ := LeafToRootOrder("A", g)
	for i := 0; i < 20; i++ {
		if got, _ := LeafToRootOrder("A", g); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, want %v", i, got, first)
		}
	}
}
