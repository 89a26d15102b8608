// Package store persists LLM request events to a local SQLite database.
// The quiz cache, question history, and session store are deliberately
// in-memory only; this log exists for cost and latency introspection.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// LLMEvent captures a single LLM API call.
type LLMEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
}

// EventLog provides append access to LLM request events.
type EventLog interface {
	AppendLLMEvent(ctx context.Context, ev LLMEvent) error
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS llm_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	provider      TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	purpose       TEXT    NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    INTEGER NOT NULL,
	cost_usd      REAL    NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_events (purpose);
`

// Store is a SQLite-backed EventLog.
type Store struct {
	db *sql.DB
}

// Open creates a Store at the given path, applying recommended pragmas
// and creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// AppendLLMEvent inserts one event row.
func (s *Store) AppendLLMEvent(ctx context.Context, ev LLMEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, cost_usd, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs, ev.CostUSD,
		boolToInt(ev.Success), ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

// Summary aggregates the event log per purpose label.
type Summary struct {
	Purpose      string
	Requests     int
	Failures     int
	TotalTokens  int
	TotalCostUSD float64
	AvgLatencyMs float64
}

// Summarize returns per-purpose aggregates over the whole log.
func (s *Store) Summarize(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT purpose,
			COUNT(*),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END),
			SUM(input_tokens + output_tokens),
			SUM(cost_usd),
			AVG(latency_ms)
		 FROM llm_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Purpose, &sum.Requests, &sum.Failures,
			&sum.TotalTokens, &sum.TotalCostUSD, &sum.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultPath returns the event log location under the user cache dir,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	path := filepath.Join(base, "nursebot", "events.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	return path, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
