package extract

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"sort"
	"strings"

	"depscan/graph"
	"depscan/resolve"
)

type packageManifest struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// PackageJSON extracts workspace structure from package manifests: an edge
// from the Package node to its main entry file, and one edge per declared
// dependency. A "workspace:" version marker makes the dependency an internal
// Package; anything else is External. Malformed manifests degrade to no
// edges with a logged warning.
type PackageJSON struct{}

// NewPackageJSON creates the package manifest extractor.
func NewPackageJSON() *PackageJSON { return &PackageJSON{} }

func (*PackageJSON) Name() string { return "pkgjson" }

func (*PackageJSON) CanHandle(rel string) bool {
	if path.Base(rel) != "package.json" {
		return false
	}
	// Vendored manifests describe other people's packages.
	return !strings.Contains(rel, "node_modules/")
}

func (*PackageJSON) Extract(_ context.Context, f File) ([]RawEdge, error) {
	src, err := os.ReadFile(f.Abs())
	if err != nil {
		f.Log.Errorf("reading %s: %v", f.Rel, err)
		return nil, nil
	}

	var m packageManifest
	if err := json.Unmarshal(src, &m); err != nil {
		f.Log.Errorf("parsing %s: %v", f.Rel, err)
		return nil, nil
	}
	if m.Name == "" {
		return nil, nil
	}

	var edges []RawEdge
	if m.Main != "" {
		mainRel := path.Join(f.Dir(), m.Main)
		if st, err := os.Stat(path.Join(f.Root, mainRel)); err == nil && st.Mode().IsRegular() {
			kind := graph.KindAsset
			if resolve.IsSourceExt(mainRel) {
				kind = graph.KindFile
			}
			edges = append(edges, RawEdge{
				From:     m.Name,
				FromKind: graph.KindPackage,
				To:       mainRel,
				ToKind:   kind,
				Type:     graph.EdgeRegular,
			})
		}
	}

	deps := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for dep, ver := range m.Dependencies {
		deps[dep] = ver
	}
	for dep, ver := range m.DevDependencies {
		deps[dep] = ver
	}
	names := make([]string, 0, len(deps))
	for dep := range deps {
		names = append(names, dep)
	}
	sort.Strings(names)

	for _, dep := range names {
		kind := graph.KindExternal
		if strings.HasPrefix(deps[dep], "workspace:") {
			kind = graph.KindPackage
		}
		edges = append(edges, RawEdge{
			From:     m.Name,
			FromKind: graph.KindPackage,
			To:       dep,
			ToKind:   kind,
			Type:     graph.EdgeRegular,
		})
	}
	return edges, nil
}
