package extract

import (
	"context"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"depscan/graph"
	"depscan/resolve"
)

var (
	globCallRe = regexp.MustCompile(`import\.meta\.glob(?:Eager)?\(([^)]*)\)`)
	globArgRe  = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

// ViteGlob expands import.meta.glob() and globEager() calls in source files
// into one edge per matched file. Patterns are evaluated relative to the
// importing file's directory; matches carry their canonical names already,
// so the builder skips resolution for them.
type ViteGlob struct{}

// NewViteGlob creates the vite glob extractor.
func NewViteGlob() *ViteGlob { return &ViteGlob{} }

func (*ViteGlob) Name() string { return "viteglob" }

func (*ViteGlob) CanHandle(rel string) bool {
	return resolve.IsSourceExt(rel)
}

func (*ViteGlob) Extract(_ context.Context, f File) ([]RawEdge, error) {
	src, err := os.ReadFile(f.Abs())
	if err != nil {
		f.Log.Errorf("reading %s: %v", f.Rel, err)
		return nil, nil
	}

	dir := f.Dir()
	fsys := os.DirFS(path.Join(f.Root, dir))
	var edges []RawEdge
	for _, call := range globCallRe.FindAllSubmatch(src, -1) {
		for _, arg := range globArgRe.FindAllSubmatch(call[1], -1) {
			pattern := strings.TrimPrefix(string(arg[1]), "./")
			matches, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				f.Log.Debugf("glob %q in %s: %v", pattern, f.Rel, err)
				continue
			}
			for _, m := range matches {
				if st, err := fs.Stat(fsys, m); err != nil || !st.Mode().IsRegular() {
					continue
				}
				name := path.Join(dir, m)
				kind := graph.KindAsset
				if resolve.IsSourceExt(name) {
					kind = graph.KindFile
				}
				edges = append(edges, RawEdge{
					To:     name,
					ToKind: kind,
					Type:   graph.EdgeRegular,
				})
			}
		}
	}
	return edges, nil
}
