package extract

import (
	"context"
	"os"
	"regexp"
	"strings"

	"depscan/graph"
)

var scriptSrcRe = regexp.MustCompile(`<script[^>]*src=["']([^"']+)["'][^>]*>`)

// HTML extracts the src attribute of <script> tags.
type HTML struct{}

// NewHTML creates the HTML extractor.
func NewHTML() *HTML { return &HTML{} }

func (*HTML) Name() string { return "html" }

func (*HTML) CanHandle(rel string) bool {
	return strings.HasSuffix(rel, ".html")
}

func (*HTML) Extract(_ context.Context, f File) ([]RawEdge, error) {
	src, err := os.ReadFile(f.Abs())
	if err != nil {
		f.Log.Errorf("reading %s: %v", f.Rel, err)
		return nil, nil
	}
	var edges []RawEdge
	for _, m := range scriptSrcRe.FindAllSubmatch(src, -1) {
		edges = append(edges, RawEdge{To: string(m[1]), Type: graph.EdgeRegular})
	}
	return edges, nil
}
