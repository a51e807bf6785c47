// Package persistence implements the append-only Suggestion audit ledger:
// every terminal Suggestion (executed, dismissed, or failed) is written
// once and never updated in place. Opens a modernc.org/sqlite (pure-Go, no
// cgo) database, sets its WAL pragmas, and creates its schema idempotently
// at startup.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/pulseagent/pulseagent/internal/model"
)

// Store is the SQLite-backed Suggestion ledger.
type Store struct {
	db *sql.DB
}

// Open creates dbPath's parent directory if needed, opens the database, and
// ensures the schema exists.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("persistence: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("persistence: open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("persistence: pragma %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) initSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		confidence REAL NOT NULL,
		state TEXT NOT NULL,
		action_count INTEGER NOT NULL DEFAULT 0,
		plan_json TEXT NOT NULL,
		replay_path TEXT NOT NULL DEFAULT '',
		lossy_undo INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("persistence: init schema: %w", err)
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_suggestions_state ON suggestions(state, created_at)`)
	if err != nil {
		return fmt.Errorf("persistence: init index: %w", err)
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_suggestions_created_at ON suggestions(created_at)`)
	if err != nil {
		return fmt.Errorf("persistence: init index: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts s as a new row. It never updates an existing row — an
// insert of a duplicate ID is a bug upstream (model.NewSuggestion gives
// each Suggestion a fresh UUID), so this reports the conflict rather than
// masking it as an upsert.
func (s *Store) Append(ctx context.Context, sug model.Suggestion) error {
	planJSON, err := json.Marshal(sug.Plan)
	if err != nil {
		return fmt.Errorf("persistence: marshal plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, description, confidence, state, action_count, plan_json, replay_path, lossy_undo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sug.ID, sug.Description, sug.Confidence, string(sug.State), len(sug.Plan), string(planJSON),
		sug.ReplayPath, boolToInt(sug.LossyUndo), sug.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("persistence: append suggestion %s: %w", sug.ID, err)
	}
	return nil
}

// Recent returns up to limit most recently recorded suggestions, newest
// first, for audit/inspection tooling.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Suggestion, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, confidence, state, action_count, plan_json, replay_path, lossy_undo, created_at
		FROM suggestions ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("persistence: query recent: %w", err)
	}
	defer rows.Close()

	var out []model.Suggestion
	for rows.Next() {
		var (
			sug          model.Suggestion
			state        string
			actionCount  int
			planJSON     string
			lossyUndoInt int
			createdAt    string
		)
		if err := rows.Scan(&sug.ID, &sug.Description, &sug.Confidence, &state, &actionCount, &planJSON,
			&sug.ReplayPath, &lossyUndoInt, &createdAt); err != nil {
			return nil, fmt.Errorf("persistence: scan row: %w", err)
		}
		sug.State = model.SuggestionState(state)
		sug.LossyUndo = lossyUndoInt != 0
		if err := json.Unmarshal([]byte(planJSON), &sug.Plan); err != nil {
			return nil, fmt.Errorf("persistence: unmarshal plan for %s: %w", sug.ID, err)
		}
		_ = actionCount // authoritative count is len(sug.Plan); column exists for SQL-side audit queries
		out = append(out, sug)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
