// Package store persists analysis runs to a local SQLite database so
// past results can be listed and re-read. The analysis engine itself
// is stateless; persistence lives entirely in this outer layer.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"archmap/internal/analyzer"
	"archmap/internal/cerrors"
	"archmap/internal/output"
)

// Run is one saved analysis run. Analysis holds the deterministic JSON
// encoding of the full aggregate and is empty in listings.
type Run struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Framework string    `json:"framework"`
	CreatedAt time.Time `json:"createdAt"`
	Analysis  []byte    `json:"analysis,omitempty"`
}

// Store wraps the SQLite connection.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// Open opens or creates the run database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, cerrors.Wrap(cerrors.StoreUnavailable, "failed to create store directory", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.StoreUnavailable, "failed to open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, cerrors.Wrap(cerrors.StoreUnavailable, "failed to set pragma", err)
		}
	}

	s := &Store{conn: conn, logger: logger, path: path}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	project    TEXT NOT NULL,
	framework  TEXT NOT NULL,
	created_at TEXT NOT NULL,
	analysis   BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project, created_at);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return cerrors.Wrap(cerrors.StoreUnavailable, "failed to initialize schema", err)
	}
	return nil
}

// SaveRun stores an analysis and returns the new run id.
func (s *Store) SaveRun(ctx context.Context, analysis *analyzer.Analysis) (string, error) {
	encoded, err := output.Encode(analysis)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO runs (id, project, framework, created_at, analysis) VALUES (?, ?, ?, ?, ?)`,
		id, analysis.Project, analysis.Framework, createdAt, encoded,
	)
	if err != nil {
		return "", cerrors.Wrap(cerrors.StoreUnavailable, "failed to save run", err)
	}

	s.logger.Info("analysis run saved", "id", id, "project", analysis.Project)
	return id, nil
}

// ListRuns returns the most recent runs, newest first, without the
// analysis payload.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, project, framework, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.StoreUnavailable, "failed to list runs", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Project, &r.Framework, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one saved run including the analysis payload.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	var createdAt string
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, project, framework, created_at, analysis FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Project, &r.Framework, &createdAt, &r.Analysis)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, cerrors.Wrap(cerrors.StoreUnavailable, "failed to read run", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
