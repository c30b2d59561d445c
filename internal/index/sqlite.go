// Package index records every chunk mesh build in a SQLite database.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
)

// Record is one mesh build.
type Record struct {
	Seq       int64
	Chunk     string
	X, Y, Z   float64
	Faces     int
	Vertices  int
	Triangles int
	BuiltAt   time.Time
}

// SQLite is a backend that appends a Record per build.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the index at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			chunk TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			faces INTEGER NOT NULL,
			vertices INTEGER NOT NULL,
			triangles INTEGER NOT NULL,
			built_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_chunk ON builds(chunk, seq);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Apply(t render.Target, m *mesh.Mesh) error {
	_, err := s.db.Exec(
		`INSERT INTO builds (chunk, x, y, z, faces, vertices, triangles, built_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(),
		float64(t.Origin.X()), float64(t.Origin.Y()), float64(t.Origin.Z()),
		m.Faces(), len(m.Vertices), len(m.Triangles),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record build of chunk %s: %w", t.ID, err)
	}
	return nil
}

// History returns every build of chunk id, oldest first.
func (s *SQLite) History(id string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT seq, chunk, x, y, z, faces, vertices, triangles, built_at
		 FROM builds WHERE chunk = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var builtAt string
		if err := rows.Scan(&r.Seq, &r.Chunk, &r.X, &r.Y, &r.Z, &r.Faces, &r.Vertices, &r.Triangles, &builtAt); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		r.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt)
		if err != nil {
			return nil, fmt.Errorf("parse built_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Totals returns the number of builds and distinct chunks recorded.
func (s *SQLite) Totals() (builds, chunks int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT chunk) FROM builds`).Scan(&builds, &chunks)
	if err != nil {
		return 0, 0, fmt.Errorf("query totals: %w", err)
	}
	return builds, chunks, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
