// Package resolve turns raw import specifiers into canonical graph targets.
//
// Resolution tries, in order: relative paths against the importing file's
// directory, configured alias prefixes, the platform builtin set, and
// finally an opaque external reference.
package resolve

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"depscan/graph"
)

// Extensions is the source-extension probe order.
var Extensions = []string{"js", "jsx", "ts", "tsx", "mjs", "cjs", "mts", "cts"}

// IsSourceExt reports whether a path carries a source extension.
func IsSourceExt(p string) bool {
	ext := strings.TrimPrefix(path.Ext(p), ".")
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

var builtins = map[string]struct{}{
	"assert": {}, "buffer": {}, "child_process": {}, "cluster": {},
	"console": {}, "constants": {}, "crypto": {}, "dgram": {},
	"dns": {}, "domain": {}, "events": {}, "fs": {},
	"http": {}, "https": {}, "module": {}, "net": {},
	"os": {}, "path": {}, "process": {}, "punycode": {},
	"querystring": {}, "readline": {}, "repl": {}, "stream": {},
	"string_decoder": {}, "timers": {}, "tls": {}, "tty": {},
	"url": {}, "util": {}, "v8": {}, "vm": {}, "zlib": {},
}

// IsBuiltin reports whether a specifier names a platform builtin module.
// An optional "node:" prefix is stripped before the lookup.
func IsBuiltin(spec string) bool {
	_, ok := builtins[strings.TrimPrefix(spec, "node:")]
	return ok
}

// Alias maps an import prefix to a root-relative base path.
type Alias struct {
	Prefix string
	Target string
}

// Target is a resolved specifier: the canonical node name plus its kind.
type Target struct {
	Name string
	Kind graph.NodeKind
}

// Resolver resolves specifiers against one project root.
type Resolver struct {
	root    string
	aliases []Alias
}

// New creates a resolver for a project root and its alias table.
func New(root string, aliases []Alias) *Resolver {
	return &Resolver{root: root, aliases: aliases}
}

// Resolve maps a specifier found in a file under fromDir (root-relative
// directory, "" for the root) to a graph target. A relative specifier that
// probes to nothing reports false and the edge is dropped; every other
// specifier classifies as Builtin or External.
func (r *Resolver) Resolve(fromDir, spec string) (Target, bool) {
	if strings.HasPrefix(spec, ".") {
		rel, ok := r.probe(path.Join(fromDir, spec))
		if !ok {
			return Target{}, false
		}
		return Target{Name: rel, Kind: fileKind(rel)}, true
	}
	if t, ok := r.resolveAlias(spec); ok {
		return t, true
	}
	if IsBuiltin(spec) {
		// "fs" and "node:fs" are the same builtin and must intern one node.
		return Target{Name: strings.TrimPrefix(spec, "node:"), Kind: graph.KindBuiltin}, true
	}
	return Target{Name: spec, Kind: graph.KindExternal}, true
}

func (r *Resolver) resolveAlias(spec string) (Target, bool) {
	for _, a := range r.aliases {
		rest := ""
		switch {
		case spec == a.Prefix:
		case strings.HasPrefix(spec, a.Prefix+"/"):
			rest = spec[len(a.Prefix)+1:]
		default:
			continue
		}
		if rel, ok := r.probe(path.Join(a.Target, rest)); ok {
			return Target{Name: rel, Kind: fileKind(rel)}, true
		}
	}
	return Target{}, false
}

// probe applies the existence checks for one candidate root-relative path:
// the path itself if it is a regular file, then each source extension, then
// index files when the path is a directory. Probes only fire for specifiers
// without an extension of their own.
func (r *Resolver) probe(rel string) (string, bool) {
	rel = path.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if rel == "." {
		rel = ""
	}
	if r.isFile(rel) {
		return rel, true
	}
	if path.Ext(rel) != "" {
		return "", false
	}
	for _, ext := range Extensions {
		if cand := rel + "." + ext; r.isFile(cand) {
			return cand, true
		}
	}
	if r.isDir(rel) {
		for _, ext := range Extensions {
			cand := path.Join(rel, "index."+ext)
			if r.isFile(cand) {
				return cand, true
			}
		}
	}
	return "", false
}

func (r *Resolver) isFile(rel string) bool {
	st, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))
	return err == nil && st.Mode().IsRegular()
}

func (r *Resolver) isDir(rel string) bool {
	st, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))
	return err == nil && st.IsDir()
}

func fileKind(rel string) graph.NodeKind {
	if IsSourceExt(rel) {
		return graph.KindFile
	}
	return graph.KindAsset
}
