package output

import (
	"fmt"
	"io"
	"strings"

	"depscan/graph"
)

func dotAttrs(kind graph.NodeKind) (shape, color string) {
	switch kind {
	case graph.KindExternal:
		return "ellipse", "lightblue"
	case graph.KindBuiltin:
		return "diamond", "gray"
	case graph.KindFolder:
		return "folder", "lightgrey"
	case graph.KindAsset:
		return "note", "yellow"
	case graph.KindPackage:
		return "box3d", "orange"
	default:
		return "box", ""
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

func renderDot(w io.Writer, g *graph.Graph) error {
	var b strings.Builder
	b.WriteString("digraph {\n")

	ids := make(map[*graph.Node]int)
	for _, n := range g.Nodes() {
		if n.IsTypeNode() {
			continue
		}
		id := len(ids)
		ids[n] = id
		shape, color := dotAttrs(g.KindOf(n))
		fmt.Fprintf(&b, "    %d [label=\"%s\", shape=%s", id, escapeLabel(n.Name), shape)
		if color != "" {
			fmt.Fprintf(&b, ", style=filled, fillcolor=\"%s\"", color)
		}
		b.WriteString("]\n")
	}

	for _, e := range g.Edges() {
		if e.Type == graph.EdgeTypeOf {
			continue
		}
		from, ok := ids[e.From]
		if !ok {
			continue
		}
		to, ok := ids[e.To]
		if !ok {
			continue
		}
		if e.Type == graph.EdgeSameAs {
			fmt.Fprintf(&b, "    %d -> %d [style=dashed]\n", from, to)
			continue
		}
		fmt.Fprintf(&b, "    %d -> %d\n", from, to)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
