package output

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"depscan/graph"
	"depscan/ident"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id         BLOB PRIMARY KEY,
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS edges (
	src        BLOB NOT NULL,
	type       TEXT NOT NULL,
	dst        BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (src, type, dst)
);
CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges(dst);
`

// writeSQLite exports the graph into a SQLite database. Inserts are
// idempotent on the content-addressed IDs, so exporting into an existing
// database of a previous scan merges rather than duplicates.
func writeSQLite(path string, g *graph.Graph) error {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enabling WAL mode: %w", err)
	}
	conn.Exec("PRAGMA busy_timeout=5000")

	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	ids := make(map[*graph.Node][]byte)
	for _, n := range g.Nodes() {
		if n.IsTypeNode() {
			continue
		}
		kind := g.KindOf(n)
		id := ident.NodeID(string(kind), n.Name)
		ids[n] = id
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO nodes (id, kind, name, created_at)
			VALUES (?, ?, ?, ?)
		`, id, string(kind), n.Name, now); err != nil {
			return fmt.Errorf("inserting node %q: %w", n.Name, err)
		}
	}

	for _, e := range g.Edges() {
		if e.Type == graph.EdgeTypeOf {
			continue
		}
		src, ok := ids[e.From]
		if !ok {
			continue
		}
		dst, ok := ids[e.To]
		if !ok {
			continue
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO edges (src, type, dst, created_at)
			VALUES (?, ?, ?, ?)
		`, src, string(e.Type), dst, now); err != nil {
			return fmt.Errorf("inserting edge: %w", err)
		}
	}

	return tx.Commit()
}
