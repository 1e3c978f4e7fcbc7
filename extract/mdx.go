package extract

import (
	"context"
	"os"
	"regexp"
	"strings"

	"depscan/graph"
)

var mdxImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'"]*?from\s+)?['"]([^'"]+)['"]`)

// MDX extracts import lines from MDX documents. Only line-leading imports
// count; prose mentioning the word import does not.
type MDX struct{}

// NewMDX creates the MDX extractor.
func NewMDX() *MDX { return &MDX{} }

func (*MDX) Name() string { return "mdx" }

func (*MDX) CanHandle(rel string) bool {
	return strings.HasSuffix(rel, ".mdx")
}

func (*MDX) Extract(_ context.Context, f File) ([]RawEdge, error) {
	src, err := os.ReadFile(f.Abs())
	if err != nil {
		f.Log.Errorf("reading %s: %v", f.Rel, err)
		return nil, nil
	}
	var edges []RawEdge
	for _, m := range mdxImportRe.FindAllSubmatch(src, -1) {
		edges = append(edges, RawEdge{To: string(m[1]), Type: graph.EdgeRegular})
	}
	return edges, nil
}
