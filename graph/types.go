// Package graph provides the in-memory dependency graph model.
package graph

// NodeKind represents the type of a node.
type NodeKind string

const (
	KindFile     NodeKind = "File"
	KindAsset    NodeKind = "Asset"
	KindExternal NodeKind = "External"
	KindBuiltin  NodeKind = "Builtin"
	KindFolder   NodeKind = "Folder"
	KindPackage  NodeKind = "Package"
)

// EdgeType represents the type of relationship between nodes.
type EdgeType string

const (
	EdgeRegular EdgeType = "REGULAR" // import dependency
	EdgeSameAs  EdgeType = "SAME_AS" // Folder -> index file that represents it
	EdgeTypeOf  EdgeType = "TYPE_OF" // node -> its kind's singleton type node
)

// TypeNodePrefix prefixes the name of every singleton type node.
const TypeNodePrefix = "__type__::"

// TypedKinds lists every kind that has a singleton type node. File is the
// default kind and has none.
func TypedKinds() []NodeKind {
	return []NodeKind{KindAsset, KindExternal, KindBuiltin, KindFolder, KindPackage}
}

// Precedence orders kinds for resolving a node that carries more than one
// classification. Higher wins.
func (k NodeKind) Precedence() int {
	switch k {
	case KindFile:
		return 0
	case KindAsset:
		return 1
	case KindExternal:
		return 2
	case KindBuiltin:
		return 3
	case KindFolder:
		return 4
	case KindPackage:
		return 5
	}
	return 0
}

// TypeNodeName returns the canonical name of the kind's singleton type node.
func (k NodeKind) TypeNodeName() string {
	return TypeNodePrefix + string(k)
}

// Node represents a node in the graph. Within one graph at most one node
// exists per (Name, Kind) pair.
type Node struct {
	Name string
	Kind NodeKind
}

// IsTypeNode reports whether the node is a singleton type node.
func (n *Node) IsTypeNode() bool {
	return len(n.Name) >= len(TypeNodePrefix) && n.Name[:len(TypeNodePrefix)] == TypeNodePrefix
}

// Edge represents a directed edge in the graph.
type Edge struct {
	From *Node
	To   *Node
	Type EdgeType
}
