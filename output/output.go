// Package output renders a built graph to its export formats. Rendering is
// a pure transformation: no resolution logic, no graph mutation. Singleton
// type nodes and classification edges are internal bookkeeping and never
// appear in any output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"depscan/graph"
)

// Format selects an export format.
type Format string

const (
	FormatDot    Format = "dot"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDot, FormatJSON, FormatSQLite:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Render writes a text rendering of the graph. SQLite is file-backed and
// not supported here; use WriteFile for it.
func Render(w io.Writer, g *graph.Graph, f Format) error {
	switch f {
	case FormatDot:
		return renderDot(w, g)
	case FormatJSON:
		return renderJSON(w, g)
	default:
		return fmt.Errorf("format %q cannot render to a stream", f)
	}
}

// WriteFile renders the graph to a file. An empty path for a text format
// writes to stdout. Compression gzips text formats and is rejected for
// sqlite.
func WriteFile(path string, g *graph.Graph, f Format, compress bool) error {
	if f == FormatSQLite {
		if compress {
			return fmt.Errorf("sqlite output cannot be compressed")
		}
		if path == "" {
			return fmt.Errorf("sqlite output requires a file path")
		}
		return writeSQLite(path, g)
	}

	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		w = file
	}
	if compress {
		zw := gzip.NewWriter(w)
		defer zw.Close()
		w = zw
	}
	return Render(w, g, f)
}
