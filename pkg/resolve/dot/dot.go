// Package dot renders resolution results as Graphviz diagrams for
// dependency-tree display.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/resolve"
)

// ToDOT converts a resolution result to Graphviz DOT format. The sanitized
// scoped graph is drawn with the focus rule highlighted; members of each
// collapsed strongly connected component share a dashed cluster labeled with
// the component representative. Output is deterministic: nodes, edges, and
// clusters appear in sorted order.
//
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(res *resolve.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	for i, c := range res.Components {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", "cycle: "+c.Representative)
		buf.WriteString("    style=dashed;\n")
		for _, m := range c.Members {
			clustered[m] = true
			fmt.Fprintf(&buf, "    %q [%s];\n", m, nodeAttrs(m, res.Focus))
		}
		buf.WriteString("  }\n")
	}
	if len(res.Components) > 0 {
		buf.WriteString("\n")
	}

	for _, n := range res.Graph.Keys() {
		if clustered[n] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n, nodeAttrs(n, res.Focus))
	}

	buf.WriteString("\n")
	for _, consumer := range res.Graph.Keys() {
		for _, provider := range res.Graph[consumer].Sorted() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", consumer, provider)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(id, focus string) string {
	label := fmt.Sprintf("label=%q", id)
	if id == focus {
		return label + `, style="rounded,filled,bold", fillcolor=lightyellow`
	}
	return label
}

// OrderDOT renders just the computed order as a vertical chain, providers at
// the bottom. Useful for compact documentation figures.
func OrderDOT(res *resolve.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph order {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n")

	for _, n := range res.Order {
		fmt.Fprintf(&buf, "  %q [%s];\n", n, nodeAttrs(n, res.Focus))
	}
	for i := 0; i+1 < len(res.Order); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", res.Order[i+1], res.Order[i])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return slices.Clone(buf.Bytes()), nil
}
