package resolve

import (
	"slices"
)

// StronglyConnected partitions the node set of g into strongly connected
// components using Tarjan's algorithm. Every key and every value member of g
// is assigned to exactly one component; two nodes share a component iff they
// are mutually reachable.
//
// The traversal uses an explicit frame stack rather than recursion, so
// pathological inputs cannot exhaust the goroutine stack. The index/lowlink
// bookkeeping is the textbook one and component membership is identical to
// the recursive formulation.
//
// Output is deterministic regardless of map iteration order: roots are
// visited in sorted order, each component's members are sorted, and the
// component list is sorted by first member.
func StronglyConnected(g Relation) [][]string {
	nodes := make(Set, len(g))
	for k, providers := range g {
		nodes.Add(k)
		for p := range providers {
			nodes.Add(p)
		}
	}

	t := tarjan{
		graph:   g,
		index:   make(map[string]int, len(nodes)),
		lowlink: make(map[string]int, len(nodes)),
		onStack: make(Set, len(nodes)),
	}

	for _, v := range nodes.Sorted() {
		if _, seen := t.index[v]; !seen {
			t.visit(v)
		}
	}

	slices.SortFunc(t.components, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return t.components
}

// tarjan holds the bookkeeping state for one StronglyConnected run.
type tarjan struct {
	graph      Relation
	index      map[string]int
	lowlink    map[string]int
	counter    int
	stack      []string
	onStack    Set
	components [][]string
}

// frame is one suspended DFS position: node v with next neighbor at pos.
type frame struct {
	v         string
	neighbors []string
	pos       int
}

// visit runs the DFS rooted at v with an explicit frame stack.
func (t *tarjan) visit(v string) {
	frames := []frame{t.push(v)}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]

		if f.pos < len(f.neighbors) {
			w := f.neighbors[f.pos]
			f.pos++

			if _, seen := t.index[w]; !seen {
				frames = append(frames, t.push(w))
			} else if t.onStack.Has(w) {
				t.lowlink[f.v] = min(t.lowlink[f.v], t.index[w])
			}
			continue
		}

		// All neighbors of f.v explored: pop a component if f.v is a root,
		// then propagate its lowlink to the parent frame.
		if t.lowlink[f.v] == t.index[f.v] {
			t.popComponent(f.v)
		}
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := &frames[len(frames)-1]
			t.lowlink[parent.v] = min(t.lowlink[parent.v], t.lowlink[f.v])
		}
	}
}

// push assigns v its DFS index, places it on the component stack, and
// returns the frame for iterating its neighbors in sorted order.
func (t *tarjan) push(v string) frame {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack.Add(v)
	return frame{v: v, neighbors: t.graph[v].Sorted()}
}

// popComponent pops the component rooted at v off the stack.
func (t *tarjan) popComponent(v string) {
	var comp []string
	for {
		x := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		delete(t.onStack, x)
		comp = append(comp, x)
		if x == v {
			break
		}
	}
	slices.Sort(comp)
	t.components = append(t.components, comp)
}
