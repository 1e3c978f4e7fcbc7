// Package builder runs extraction across a worker pool and merges the
// results into one canonical graph.
//
// The build is two-phase: phase 1 scans files in parallel and appends raw
// edges to a single shared buffer; phase 2 resolves and interns everything
// serially, so the graph itself never needs a lock and the dedup invariants
// hold by construction. Worker scheduling cannot change the resulting node
// and edge sets.
package builder

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"depscan/extract"
	"depscan/graph"
	"depscan/logger"
	"depscan/resolve"
	"depscan/walk"
)

// Options configures a build.
type Options struct {
	// Workers bounds the extraction pool. Zero means one per CPU.
	Workers int

	// Prune removes nodes without structural edges after the merge.
	Prune bool

	// IgnorePatterns are extra walker exclusions, gitignore syntax.
	IgnorePatterns []string

	// Extractors overrides the extractor set. Nil means extract.Default().
	Extractors []extract.Extractor

	Log logger.Logger
}

type scanResult struct {
	rel   string
	edges []extract.RawEdge
}

// Build scans the tree at root and returns its dependency graph. Per-file
// failures are logged and skipped; only an unreadable root or a cancelled
// context abort the build.
func Build(ctx context.Context, root string, opts Options) (*graph.Graph, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop{}
	}
	extractors := opts.Extractors
	if extractors == nil {
		extractors = extract.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := walk.Collect(root, opts.IgnorePatterns, log)
	if err != nil {
		return nil, fmt.Errorf("collecting files: %w", err)
	}
	aliases := resolve.LoadAliases(root, log)
	log.Infof("scanning %d files with %d workers", len(files), workers)

	results, err := scanAll(ctx, root, files, extractors, workers, log)
	if err != nil {
		return nil, err
	}

	g := merge(results, resolve.New(root, aliases))
	if opts.Prune {
		removed := g.Prune()
		log.Debugf("pruned %d unconnected nodes", removed)
	}
	return g, nil
}

// scanAll is phase 1: one pool task per file, results appended to a shared
// buffer under a single lock.
func scanAll(ctx context.Context, root string, files []string, extractors []extract.Extractor, workers int, log logger.Logger) ([]scanResult, error) {
	var (
		mu      sync.Mutex
		results []scanResult
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, rel := range files {
		rel := rel
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := extract.File{Root: root, Rel: rel, Log: log}
			var edges []extract.RawEdge
			handled := false
			for _, x := range extractors {
				if !x.CanHandle(rel) {
					continue
				}
				handled = true
				log.Debugf("file %s: extractor %s", rel, x.Name())
				out, err := x.Extract(ctx, f)
				if err != nil {
					log.Errorf("extractor %s on %s: %v", x.Name(), rel, err)
					continue
				}
				edges = append(edges, out...)
			}
			if handled {
				mu.Lock()
				results = append(results, scanResult{rel: rel, edges: edges})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// The buffer's append order depends on scheduling; sort for a stable
	// edge insertion order.
	sort.Slice(results, func(i, j int) bool { return results[i].rel < results[j].rel })
	return results, nil
}

// merge is phase 2: single-threaded interning of all scanned files and
// their raw edges.
func merge(results []scanResult, r *resolve.Resolver) *graph.Graph {
	g := graph.New()
	for _, res := range results {
		g.Intern(res.rel, graph.KindFile)
		g.EnsureFolders(res.rel)

		dir := dirOf(res.rel)
		for _, e := range res.edges {
			from := endpoint(g, e.From, e.FromKind, res.rel)
			to, ok := resolveEndpoint(g, r, dir, e.To, e.ToKind)
			if !ok {
				continue
			}
			typ := e.Type
			if typ == "" {
				typ = graph.EdgeRegular
			}
			g.AddEdge(from, to, typ)
		}
	}
	return g
}

// endpoint interns an edge origin. A fully zero endpoint means the scanned
// file itself; hinted kinds are used verbatim. An empty name with a Folder
// hint is the root folder.
func endpoint(g *graph.Graph, name string, kind graph.NodeKind, rel string) *graph.Node {
	if name == "" && kind == "" {
		return g.Intern(rel, graph.KindFile)
	}
	if kind == "" {
		kind = graph.KindFile
	}
	n := g.Intern(name, kind)
	ensureAncestry(g, name, kind)
	return n
}

// resolveEndpoint interns an edge target. Hinted targets are canonical
// already; unhinted ones are raw specifiers run through the resolver, and a
// specifier resolving to nothing drops the edge.
func resolveEndpoint(g *graph.Graph, r *resolve.Resolver, fromDir string, name string, kind graph.NodeKind) (*graph.Node, bool) {
	if kind == "" {
		t, ok := r.Resolve(fromDir, name)
		if !ok {
			return nil, false
		}
		name, kind = t.Name, t.Kind
	}
	n := g.Intern(name, kind)
	ensureAncestry(g, name, kind)
	return n, true
}

// ensureAncestry materializes the folder chain for path-shaped nodes.
func ensureAncestry(g *graph.Graph, name string, kind graph.NodeKind) {
	if kind == graph.KindFile || kind == graph.KindAsset {
		g.EnsureFolders(name)
	}
}

func dirOf(rel string) string {
	for i := len(rel) - 1; i >= 0; i-- {
		if rel[i] == '/' {
			return rel[:i]
		}
	}
	return ""
}
