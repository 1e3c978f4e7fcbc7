package graph

import "path"

type nodeKey struct {
	name string
	kind NodeKind
}

type edgeKey struct {
	from *Node
	to   *Node
	typ  EdgeType
}

// Graph is a directed dependency graph with interned nodes and deduplicated
// edges. It is not safe for concurrent mutation; the builder only mutates it
// from a single goroutine.
type Graph struct {
	nodes     []*Node
	byKey     map[nodeKey]*Node
	edges     []*Edge
	edgeSet   map[edgeKey]struct{}
	out       map[*Node][]*Edge
	in        map[*Node][]*Edge
	typeNodes map[NodeKind]*Node
	root      *Node
}

// New creates a graph with the singleton type nodes and the root Folder node
// (empty name) already in place.
func New() *Graph {
	g := newEmpty()
	for _, k := range TypedKinds() {
		n := &Node{Name: k.TypeNodeName(), Kind: k}
		g.nodes = append(g.nodes, n)
		g.byKey[nodeKey{n.Name, k}] = n
		g.typeNodes[k] = n
	}
	g.root = g.Intern("", KindFolder)
	return g
}

// NewDerived creates a graph without type-node bookkeeping. Filtered views
// use it; node kinds are carried on the nodes themselves.
func NewDerived() *Graph {
	return newEmpty()
}

func newEmpty() *Graph {
	return &Graph{
		byKey:     make(map[nodeKey]*Node),
		edgeSet:   make(map[edgeKey]struct{}),
		out:       make(map[*Node][]*Edge),
		in:        make(map[*Node][]*Edge),
		typeNodes: make(map[NodeKind]*Node),
	}
}

// Root returns the root Folder node, or nil for derived graphs.
func (g *Graph) Root() *Node { return g.root }

// Nodes returns all nodes in insertion order. The slice must not be mutated.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns all edges in insertion order. The slice must not be mutated.
func (g *Graph) Edges() []*Edge { return g.edges }

// Intern returns the node for (name, kind), creating it on first use.
// Newly created non-File nodes are linked to their kind's singleton type node.
func (g *Graph) Intern(name string, kind NodeKind) *Node {
	key := nodeKey{name, kind}
	if n, ok := g.byKey[key]; ok {
		return n
	}
	n := &Node{Name: name, Kind: kind}
	g.nodes = append(g.nodes, n)
	g.byKey[key] = n
	g.Classify(n, kind)
	return n
}

// Lookup returns the node for (name, kind) if it exists.
func (g *Graph) Lookup(name string, kind NodeKind) (*Node, bool) {
	n, ok := g.byKey[nodeKey{name, kind}]
	return n, ok
}

// Classify attaches a kind classification to a node via a TYPE_OF edge.
// Attaching the same classification twice is a no-op. File has no type node
// and needs no classification.
func (g *Graph) Classify(n *Node, kind NodeKind) {
	tn, ok := g.typeNodes[kind]
	if !ok {
		return
	}
	g.AddEdge(n, tn, EdgeTypeOf)
}

// AddEdge inserts an edge, deduplicated per (from, to, type). It reports
// whether a new edge was created.
func (g *Graph) AddEdge(from, to *Node, typ EdgeType) bool {
	key := edgeKey{from, to, typ}
	if _, ok := g.edgeSet[key]; ok {
		return false
	}
	e := &Edge{From: from, To: to, Type: typ}
	g.edges = append(g.edges, e)
	g.edgeSet[key] = struct{}{}
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	return true
}

// HasEdge reports whether an edge (from, to, type) exists.
func (g *Graph) HasEdge(from, to *Node, typ EdgeType) bool {
	_, ok := g.edgeSet[edgeKey{from, to, typ}]
	return ok
}

// EnsureFolders creates the Folder ancestry chain for a root-relative path,
// linking each folder to its parent with a REGULAR edge, and returns the
// node of the path's immediate parent folder.
func (g *Graph) EnsureFolders(rel string) *Node {
	parent := g.root
	dir := path.Dir(rel)
	if dir == "." || dir == "" || parent == nil {
		return parent
	}
	accum := ""
	for _, comp := range splitPath(dir) {
		if accum == "" {
			accum = comp
		} else {
			accum += "/" + comp
		}
		folder := g.Intern(accum, KindFolder)
		g.AddEdge(parent, folder, EdgeRegular)
		parent = folder
	}
	return parent
}

func splitPath(p string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(p); i++ {
		if i == len(p) || p[i] == '/' {
			if i > start {
				parts = append(parts, p[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

// KindOf resolves a node's effective kind. Classifications via TYPE_OF edges
// win by precedence; a node without any falls back to its interned kind.
func (g *Graph) KindOf(n *Node) NodeKind {
	best := n.Kind
	for _, e := range g.out[n] {
		if e.Type != EdgeTypeOf {
			continue
		}
		k := NodeKind(e.To.Name[len(TypeNodePrefix):])
		if k.Precedence() > best.Precedence() {
			best = k
		}
	}
	return best
}

// NodesOfKind returns all nodes of the given effective kind. When the kind's
// singleton type node exists the query walks its incoming edges instead of
// scanning the whole graph.
func (g *Graph) NodesOfKind(kind NodeKind) []*Node {
	if tn, ok := g.typeNodes[kind]; ok {
		var nodes []*Node
		for _, e := range g.in[tn] {
			if e.Type == EdgeTypeOf {
				nodes = append(nodes, e.From)
			}
		}
		return nodes
	}
	var nodes []*Node
	for _, n := range g.nodes {
		if !n.IsTypeNode() && g.KindOf(n) == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// removeNode deletes a node and every edge touching it.
func (g *Graph) removeNode(n *Node) {
	for i, m := range g.nodes {
		if m == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	delete(g.byKey, nodeKey{n.Name, n.Kind})
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.From == n || e.To == n {
			delete(g.edgeSet, edgeKey{e.From, e.To, e.Type})
			g.detach(e)
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	delete(g.out, n)
	delete(g.in, n)
}

func (g *Graph) detach(e *Edge) {
	g.out[e.From] = removeEdge(g.out[e.From], e)
	g.in[e.To] = removeEdge(g.in[e.To], e)
}

func removeEdge(edges []*Edge, e *Edge) []*Edge {
	for i, x := range edges {
		if x == e {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}
