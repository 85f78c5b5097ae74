// Package history persists one row per agent attempt so past runs can be
// inspected after the fact.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	bank       TEXT NOT NULL,
	attempt    INTEGER NOT NULL,
	phase      TEXT NOT NULL,
	success    INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_bank ON attempts(bank);
`

// Attempt is one plan→generate→test cycle as recorded in the ledger.
type Attempt struct {
	RunID     string
	Bank      string
	Attempt   int
	Phase     string // last phase reached: "plan", "generate", "test"
	Success   bool
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// Store wraps the sqlite ledger database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one attempt row.
func (s *Store) Record(a Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO attempts (run_id, bank, attempt, phase, success, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Bank, a.Attempt, a.Phase, boolToInt(a.Success), a.Error,
		a.Duration.Milliseconds(), a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first. An empty bank matches
// all banks; limit <= 0 defaults to 50.
func (s *Store) List(bank string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT run_id, bank, attempt, phase, success, error, duration_ms, created_at
		FROM attempts`
	args := []interface{}{}
	if bank != "" {
		query += ` WHERE bank = ?`
		args = append(args, bank)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var success int
		var durationMs int64
		var createdAt string
		if err := rows.Scan(&a.RunID, &a.Bank, &a.Attempt, &a.Phase, &success, &a.Error, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Success = success != 0
		a.Duration = time.Duration(durationMs) * time.Millisecond
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
