// Package store persists batch aggregates. The eval_results table is
// append-only: one row per completed batch, never updated in place, so
// concurrent batch invocations need no coordination beyond SQLite's atomic
// inserts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const defaultListLimit = 100

// Record is one persisted batch aggregate.
type Record struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Provider  string    `json:"provider"`
	Eval      string    `json:"eval"`
	Score     float64   `json:"score"`
	Runs      int       `json:"runs"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardRow is the read-path aggregate for one (model, eval) pair:
// mean of batch means, sorted descending for dashboard rendering.
type LeaderboardRow struct {
	Model    string  `json:"model"`
	Provider string  `json:"provider"`
	Eval     string  `json:"eval"`
	Score    float64 `json:"score"`
	Batches  int     `json:"batches"`
	Runs     int     `json:"runs"`
}

// Filter narrows List queries.
type Filter struct {
	Model string
	Eval  string
	Limit int
}

// Store is the SQLite-backed results store.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty sqlite path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS eval_results (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			eval TEXT NOT NULL,
			score REAL NOT NULL,
			runs INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_results_model_eval ON eval_results(model, eval)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_results_created_at ON eval_results(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save appends one record. Insert only; there is no update path.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if s == nil || s.db == nil {
		return errors.New("store: nil store")
	}
	if ctx == nil {
		return errors.New("store: nil context")
	}
	if rec == nil {
		return errors.New("store: nil record")
	}

	model := strings.TrimSpace(rec.Model)
	evalName := strings.TrimSpace(rec.Eval)
	if model == "" || evalName == "" {
		return errors.New("store: missing model/eval")
	}
	if rec.Runs <= 0 {
		return errors.New("store: runs must be > 0")
	}

	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}
	if strings.TrimSpace(rec.Provider) == "" {
		rec.Provider = ProviderFromModel(model)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO eval_results (id, model, provider, eval, score, runs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, model, rec.Provider, evalName, rec.Score, rec.Runs, rec.CreatedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("store: insert result: %w", err)
	}

	rec.Model = model
	rec.Eval = evalName
	return nil
}

// SaveResult satisfies the batch runner's ResultWriter.
func (s *Store) SaveResult(ctx context.Context, model, evalName string, meanScore float64, runs int) error {
	return s.Save(ctx, &Record{
		Model: model,
		Eval:  evalName,
		Score: meanScore,
		Runs:  runs,
	})
}

// List returns records newest first, optionally filtered by model and eval.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, model, provider, eval, score, runs, created_at
		FROM eval_results
	`
	var conds []string
	var args []any
	if v := strings.TrimSpace(f.Model); v != "" {
		conds = append(conds, "model = ?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.Eval); v != "" {
		conds = append(conds, "eval = ?")
		args = append(args, v)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var createdMS int64
		if err := rows.Scan(&rec.ID, &rec.Model, &rec.Provider, &rec.Eval, &rec.Score, &rec.Runs, &createdMS); err != nil {
			return nil, fmt.Errorf("store: scan result: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdMS).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan rows: %w", err)
	}
	return out, nil
}

// Leaderboard aggregates by (model, eval): mean of batch means, descending
// by score.
func (s *Store) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT model, provider, eval, AVG(score), COUNT(*), SUM(runs)
		FROM eval_results
		GROUP BY model, eval
		ORDER BY AVG(score) DESC, model ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.Model, &row.Provider, &row.Eval, &row.Score, &row.Batches, &row.Runs); err != nil {
			return nil, fmt.Errorf("store: scan leaderboard: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan rows: %w", err)
	}
	return out, nil
}

// ProviderFromModel derives the provider column from an OpenRouter-style
// "vendor/model" identifier.
func ProviderFromModel(model string) string {
	if prefix, _, ok := strings.Cut(strings.TrimSpace(model), "/"); ok {
		return prefix
	}
	return "openrouter"
}
