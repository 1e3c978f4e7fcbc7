package extract

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"depscan/graph"
	"depscan/resolve"
)

// JS extracts import specifiers from JavaScript and TypeScript sources:
// static imports, re-exports with a source, dynamic import() calls and
// require() calls. TypeScript runs through the JavaScript grammar, which is
// tolerant enough for specifier extraction.
type JS struct{}

// NewJS creates the JS extractor.
func NewJS() *JS { return &JS{} }

func (*JS) Name() string { return "js" }

func (*JS) CanHandle(rel string) bool {
	return resolve.IsSourceExt(rel)
}

func (*JS) Extract(ctx context.Context, f File) ([]RawEdge, error) {
	src, err := os.ReadFile(f.Abs())
	if err != nil {
		f.Log.Errorf("reading %s: %v", f.Rel, err)
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		f.Log.Errorf("parsing %s: %v", f.Rel, err)
		return nil, nil
	}
	defer tree.Close()

	var edges []RawEdge
	for _, spec := range collectImportSpecs(tree.RootNode(), src) {
		edges = append(edges, RawEdge{To: spec, Type: graph.EdgeRegular})
	}
	return edges, nil
}

func collectImportSpecs(root *sitter.Node, src []byte) []string {
	var specs []string
	iter := sitter.NewIterator(root, sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			break
		}
		switch n.Type() {
		case "import_statement", "export_statement":
			// export_statement only carries a string when re-exporting.
			if s, ok := stringChild(n, src); ok {
				specs = append(specs, s)
			}
		case "call_expression":
			if s, ok := callImportSpec(n, src); ok {
				specs = append(specs, s)
			}
		}
	}
	return specs
}

// callImportSpec matches dynamic import("x") and require("x") calls with a
// literal string argument.
func callImportSpec(n *sitter.Node, src []byte) (string, bool) {
	fn := n.Child(0)
	if fn == nil {
		return "", false
	}
	switch {
	case fn.Type() == "import":
	case fn.Type() == "identifier" && fn.Content(src) == "require":
	default:
		return "", false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "arguments" {
			return stringChild(child, src)
		}
	}
	return "", false
}

func stringChild(n *sitter.Node, src []byte) (string, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "string" {
			return unquote(child.Content(src)), true
		}
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
