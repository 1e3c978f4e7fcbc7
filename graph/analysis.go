package graph

import "github.com/bmatcuk/doublestar/v4"

// FilterOptions selects which nodes survive a Filter pass.
type FilterOptions struct {
	// Include maps each kind to whether its nodes are kept. A nil map keeps
	// every kind. File nodes are not gated by this map.
	Include map[NodeKind]bool

	// IgnorePatterns are glob patterns matched against node names. A node
	// matching any pattern is dropped.
	IgnorePatterns []string
}

func (o FilterOptions) keeps(kind NodeKind, name string) bool {
	if o.Include != nil && kind != KindFile && !o.Include[kind] {
		return false
	}
	for _, pat := range o.IgnorePatterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return false
		}
	}
	return true
}

// Filter produces a derived graph containing only the nodes the options keep.
// Type nodes are left behind; each surviving node carries its resolved kind
// directly. REGULAR and SAME_AS edges whose endpoints both survive are copied.
func (g *Graph) Filter(opts FilterOptions) *Graph {
	out := NewDerived()
	mapped := make(map[*Node]*Node)
	for _, n := range g.nodes {
		if n.IsTypeNode() {
			continue
		}
		kind := g.KindOf(n)
		if !opts.keeps(kind, n.Name) {
			continue
		}
		mapped[n] = out.Intern(n.Name, kind)
	}
	for _, e := range g.edges {
		if e.Type == EdgeTypeOf {
			continue
		}
		from, ok := mapped[e.From]
		if !ok {
			continue
		}
		to, ok := mapped[e.To]
		if !ok {
			continue
		}
		out.AddEdge(from, to, e.Type)
	}
	return out
}

// Prune removes nodes that participate in no REGULAR or SAME_AS edge,
// repeating until a full pass removes nothing. Type nodes are exempt;
// classification edges do not count as participation.
func (g *Graph) Prune() int {
	total := 0
	for {
		var victims []*Node
		for _, n := range g.nodes {
			if n.IsTypeNode() {
				continue
			}
			if g.structuralDegree(n) == 0 {
				victims = append(victims, n)
			}
		}
		if len(victims) == 0 {
			return total
		}
		for _, n := range victims {
			g.removeNode(n)
		}
		total += len(victims)
	}
}

func (g *Graph) structuralDegree(n *Node) int {
	deg := 0
	for _, e := range g.out[n] {
		if e.Type != EdgeTypeOf {
			deg++
		}
	}
	for _, e := range g.in[n] {
		if e.Type != EdgeTypeOf {
			deg++
		}
	}
	return deg
}

// CountByKind tallies non-type nodes by effective kind.
func (g *Graph) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	for _, n := range g.nodes {
		if n.IsTypeNode() {
			continue
		}
		counts[g.KindOf(n)]++
	}
	return counts
}
