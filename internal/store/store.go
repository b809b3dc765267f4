// Package store handles SQLite persistence of session history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width UTC layout so lexical order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			ended_at TEXT NOT NULL,
			total_rounds INTEGER NOT NULL,
			correct_rounds INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and drops everything beyond
// the most recent model.MaxHistoryRecords.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (err error) {
	if rec.ID == "" {
		return fmt.Errorf("session record has no id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, ended_at, total_rounds, correct_rounds, duration_seconds, difficulty, mode)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(timeLayout),
		rec.TotalRounds,
		rec.CorrectRounds,
		rec.DurationSeconds,
		rec.Difficulty.String(),
		rec.Mode.String(),
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE id NOT IN (
			SELECT id FROM sessions ORDER BY ended_at DESC, rowid DESC LIMIT ?
		)`, model.MaxHistoryRecords)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ClearSessions removes all stored history.
func (s *Store) ClearSessions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

// ListSessions returns session records filtered by cfg, most recent first.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != nil {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, cfg.Difficulty.String())
	}
	if cfg.Mode != nil {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode.String())
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	limit := model.MaxHistoryRecords
	if cfg.Last > 0 && cfg.Last < limit {
		limit = cfg.Last
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT id, ended_at, total_rounds, correct_rounds, duration_seconds, difficulty, mode
		FROM sessions
		WHERE %s
		ORDER BY ended_at DESC, rowid DESC
		LIMIT ?`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var endedAt, difficulty, mode string
		if err := rows.Scan(&rec.ID, &endedAt, &rec.TotalRounds, &rec.CorrectRounds, &rec.DurationSeconds, &difficulty, &mode); err != nil {
			return nil, err
		}
		if rec.Timestamp, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		if rec.Difficulty, err = model.ParseDifficulty(difficulty); err != nil {
			return nil, err
		}
		if rec.Mode, err = model.ParseMode(mode); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
