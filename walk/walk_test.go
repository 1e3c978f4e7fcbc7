package walk

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
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

func TestCollectMissingRoot(t *testing.T) {
	files, err := Collect(filepath.Join(t.TempDir(), "nope"), nil, nil)
	if err != nil {
		t.Fatalf("missing root must not error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("files = %v, want none", files)
	}
}

func TestCollectHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".gitignore", "dist/\n*.log\n")
	write(t, root, "src/app.js", "")
	write(t, root, "src/debug.log", "")
	write(t, root, "dist/bundle.js", "")
	write(t, root, "README.md", "")

	files, err := Collect(root, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".gitignore", "README.md", "src/app.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCollectNestedGitignoreScoping(t *testing.T) {
	root := t.TempDir()
	write(t, root, "packages/ui/.gitignore", "*.snap\n")
	write(t, root, "packages/ui/button.jsx", "")
	write(t, root, "packages/ui/button.snap", "")
	write(t, root, "packages/server/app.snap", "")

	files, err := Collect(root, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"packages/server/app.snap",
		"packages/ui/.gitignore",
		"packages/ui/button.jsx",
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCollectExtraPatterns(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/app.js", "")
	write(t, root, "src/app.test.js", "")

	files, err := Collect(root, []string{"*.test.js"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"src/app.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCollectSkipsVCSDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".git/config", "")
	write(t, root, "main.js", "")

	files, err := Collect(root, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"main.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCollectNegationInNestedScope(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".gitignore", "*.gen.js\n")
	write(t, root, "legacy/.gitignore", "!api.gen.js\n")
	write(t, root, "legacy/api.gen.js", "")
	write(t, root, "legacy/other.gen.js", "")
	write(t, root, "src/schema.gen.js", "")

	files, err := Collect(root, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".gitignore", "legacy/.gitignore", "legacy/api.gen.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}
