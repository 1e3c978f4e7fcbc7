package extract

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"depscan/graph"
	"depscan/logger"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func file(root, rel string) File {
	return File{Root: root, Rel: rel, Log: logger.Nop{}}
}

func specs(edges []RawEdge) []string {
	var out []string
	for _, e := range edges {
		out = append(out, e.To)
	}
	sort.Strings(out)
	return out
}

func TestJSExtract(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.js", `import foo from './foo';
export * from './bar';
export { baz } from './baz.js';
const x = require('./qux');
const y = await import('react');
import 'side-effect';
`)
	edges, err := NewJS().Extract(context.Background(), file(root, "a.js"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"./bar", "./baz.js", "./foo", "./qux", "react", "side-effect"}
	if got := specs(edges); !reflect.DeepEqual(got, want) {
		t.Fatalf("specs = %v, want %v", got, want)
	}
	for _, e := range edges {
		if e.ToKind != "" {
			t.Fatalf("js edges must stay unresolved, got kind %q", e.ToKind)
		}
	}
}

func TestJSExtractMalformed(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.js", "import ???")
	edges, err := NewJS().Extract(context.Background(), file(root, "a.js"))
	if err != nil {
		t.Fatalf("malformed source must not fail: %v", err)
	}
	_ = edges
}

func TestJSExtractMissingFile(t *testing.T) {
	edges, err := NewJS().Extract(context.Background(), file(t.TempDir(), "gone.js"))
	if err != nil || len(edges) != 0 {
		t.Fatalf("missing file: edges = %v, err = %v", edges, err)
	}
}

func TestHTMLExtract(t *testing.T) {
	root := t.TempDir()
	write(t, root, "index.html", `<html>
<script type="module" src="./app.js"></script>
<script src='https://cdn.example.com/lib.js'></script>
<script>inline()</script>
</html>`)
	edges, err := NewHTML().Extract(context.Background(), file(root, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"./app.js", "https://cdn.example.com/lib.js"}
	if got := specs(edges); !reflect.DeepEqual(got, want) {
		t.Fatalf("specs = %v, want %v", got, want)
	}
}

func TestMDXExtract(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.mdx", `import Foo from './foo.js'
  import { Bar } from '@ui/bar'

# Heading

Prose saying import 'not-this' inline.
`)
	edges, err := NewMDX().Extract(context.Background(), file(root, "doc.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"./foo.js", "@ui/bar"}
	if got := specs(edges); !reflect.DeepEqual(got, want) {
		t.Fatalf("specs = %v, want %v", got, want)
	}
}

func TestViteGlobExtract(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/index.js", `const mods = import.meta.glob('./**/*.jsx');
const eager = import.meta.globEager('./icons/*.svg');`)
	write(t, root, "src/app.jsx", "")
	write(t, root, "src/sub/comp.jsx", "")
	write(t, root, "src/icons/x.svg", "")
	write(t, root, "src/notmatched.ts", "")

	edges, err := NewViteGlob().Extract(context.Background(), file(root, "src/index.js"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"src/app.jsx", "src/icons/x.svg", "src/sub/comp.jsx"}
	if got := specs(edges); !reflect.DeepEqual(got, want) {
		t.Fatalf("targets = %v, want %v", got, want)
	}
	for _, e := range edges {
		wantKind := graph.KindFile
		if e.To == "src/icons/x.svg" {
			wantKind = graph.KindAsset
		}
		if e.ToKind != wantKind {
			t.Fatalf("%s kind = %s, want %s", e.To, e.ToKind, wantKind)
		}
	}
}

func TestPackageJSONExtract(t *testing.T) {
	root := t.TempDir()
	write(t, root, "packages/a/package.json",
		`{"name":"a","main":"index.js","dependencies":{"b":"workspace:*","ext":"1.0"}}`)
	write(t, root, "packages/a/index.js", "")

	x := NewPackageJSON()
	edges, err := x.Extract(context.Background(), file(root, "packages/a/package.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := []RawEdge{
		{From: "a", FromKind: graph.KindPackage, To: "packages/a/index.js", ToKind: graph.KindFile, Type: graph.EdgeRegular},
		{From: "a", FromKind: graph.KindPackage, To: "b", ToKind: graph.KindPackage, Type: graph.EdgeRegular},
		{From: "a", FromKind: graph.KindPackage, To: "ext", ToKind: graph.KindExternal, Type: graph.EdgeRegular},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
}

func TestPackageJSONMalformed(t *testing.T) {
	root := t.TempDir()
	write(t, root, "pkg/package.json", "not json")
	edges, err := NewPackageJSON().Extract(context.Background(), file(root, "pkg/package.json"))
	if err != nil || len(edges) != 0 {
		t.Fatalf("malformed manifest: edges = %v, err = %v", edges, err)
	}
}

func TestPackageJSONSkipsVendored(t *testing.T) {
	if NewPackageJSON().CanHandle("node_modules/react/package.json") {
		t.Fatal("vendored manifests must not be handled")
	}
	if !NewPackageJSON().CanHandle("packages/a/package.json") {
		t.Fatal("workspace manifests must be handled")
	}
}

func TestIndexFileExtract(t *testing.T) {
	x := NewIndexFile()
	if !x.CanHandle("dir/index.js") || !x.CanHandle("index.tsx") {
		t.Fatal("index sources must be handled")
	}
	if x.CanHandle("dir/index.css") || x.CanHandle("dir/main.js") {
		t.Fatal("non-index or non-source files must not be handled")
	}

	edges, err := x.Extract(context.Background(), file(t.TempDir(), "dir/index.js"))
	if err != nil {
		t.Fatal(err)
	}
	want := []RawEdge{{
		From: "dir", FromKind: graph.KindFolder,
		To: "dir/index.js", ToKind: graph.KindFile,
		Type: graph.EdgeSameAs,
	}}
	if !reflect.DeepEqual(edges, want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
}

func TestDefaultDispatch(t *testing.T) {
	var names []string
	for _, x := range Default() {
		if x.CanHandle("src/app.ts") {
			names = append(names, x.Name())
		}
	}
	sort.Strings(names)
	want := []string{"js", "viteglob"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("extractors for app.ts = %v, want %v", names, want)
	}
}
