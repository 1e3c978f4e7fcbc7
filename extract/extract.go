// Package extract turns individual files into raw dependency edges.
//
// Extractors run concurrently, one file at a time, and never touch the
// graph: they emit RawEdge values that the builder resolves and merges in a
// single-threaded pass afterwards.
package extract

import (
	"context"
	"path"

	"depscan/graph"
	"depscan/logger"
)

// RawEdge is one extracted dependency, before resolution. A zero ToKind
// marks To as a raw import specifier the builder still has to resolve; a
// non-zero ToKind means the extractor already produced a canonical node
// name. A zero From means the scanned file itself.
type RawEdge struct {
	From     string
	FromKind graph.NodeKind
	To       string
	ToKind   graph.NodeKind
	Type     graph.EdgeType
}

// File describes one file handed to an extractor: the project root,
// the root-relative path, and a logging sink for per-file failures.
type File struct {
	Root string
	Rel  string
	Log  logger.Logger
}

// Abs returns the file's path on disk.
func (f File) Abs() string {
	return path.Join(f.Root, f.Rel)
}

// Dir returns the file's root-relative directory, "" for the root.
func (f File) Dir() string {
	d := path.Dir(f.Rel)
	if d == "." {
		return ""
	}
	return d
}

// Extractor recognizes one file shape and pulls dependency edges out of it.
// Implementations must degrade to "no edges" on malformed input rather than
// failing the build.
type Extractor interface {
	Name() string
	CanHandle(rel string) bool
	Extract(ctx context.Context, f File) ([]RawEdge, error)
}

// Default returns the standard extractor set, in dispatch order.
func Default() []Extractor {
	return []Extractor{
		NewPackageJSON(),
		NewJS(),
		NewViteGlob(),
		NewHTML(),
		NewMDX(),
		NewIndexFile(),
	}
}
