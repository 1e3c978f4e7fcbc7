package output

import (
	"encoding/json"
	"io"

	"depscan/graph"
	"depscan/ident"
)

type jsonNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// renderJSON serializes the graph with content-addressed node IDs, so two
// scans of the same tree export identical documents node for node.
func renderJSON(w io.Writer, g *graph.Graph) error {
	doc := jsonGraph{Nodes: []jsonNode{}, Edges: []jsonEdge{}}

	ids := make(map[*graph.Node]string)
	for _, n := range g.Nodes() {
		if n.IsTypeNode() {
			continue
		}
		kind := g.KindOf(n)
		id := ident.NodeIDHex(string(kind), n.Name)
		ids[n] = id
		doc.Nodes = append(doc.Nodes, jsonNode{ID: id, Name: n.Name, Kind: string(kind)})
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
		doc.Edges = append(doc.Edges, jsonEdge{From: from, To: to, Type: string(e.Type)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
