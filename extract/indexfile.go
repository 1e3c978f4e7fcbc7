package extract

import (
	"context"
	"path"
	"strings"

	"depscan/graph"
	"depscan/resolve"
)

// IndexFile links a folder to the index source file that represents it with
// a SAME_AS edge: importing the folder and importing its index file mean
// the same thing.
type IndexFile struct{}

// NewIndexFile creates the index file extractor.
func NewIndexFile() *IndexFile { return &IndexFile{} }

func (*IndexFile) Name() string { return "indexfile" }

func (*IndexFile) CanHandle(rel string) bool {
	return strings.HasPrefix(path.Base(rel), "index.") && resolve.IsSourceExt(rel)
}

func (*IndexFile) Extract(_ context.Context, f File) ([]RawEdge, error) {
	return []RawEdge{{
		From:     f.Dir(),
		FromKind: graph.KindFolder,
		To:       f.Rel,
		ToKind:   graph.KindFile,
		Type:     graph.EdgeSameAs,
	}}, nil
}
