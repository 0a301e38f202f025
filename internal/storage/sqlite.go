// Package storage provides SQLite-based persistence for recorded runs.
// A run is the seed, jump journal and config of one game, enough to replay it.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is a recorded game.
type Run struct {
	ID         string
	Player     string // SSH user name, empty for local play
	Journal    flappy.Journal
	ConfigYAML []byte
	ConfigHash uint64
	CreatedAt  time.Time
}

// NewRun packages the journal and config of a session for SaveRun.
func NewRun(session *flappy.Session, player string) (Run, error) {
	cfg := session.Config()
	data, err := cfg.Marshal()
	if err != nil {
		return Run{}, fmt.Errorf("storage: %w", err)
	}
	hash, err := cfg.Fingerprint()
	if err != nil {
		return Run{}, fmt.Errorf("storage: %w", err)
	}
	return Run{
		Player:     player,
		Journal:    session.Journal(),
		ConfigYAML: data,
		ConfigHash: hash,
	}, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; SSH sessions save runs concurrently
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			over INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			config_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_jumps (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its jump journal in one transaction.
// A missing ID is filled with a new UUID. Returns the stored ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO runs (id, player, seed, ticks, score, over, config_yaml, config_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Player,
		run.Journal.Seed,
		int64(run.Journal.Ticks),
		run.Journal.Score,
		run.Journal.Over,
		string(run.ConfigYAML),
		formatHash(run.ConfigHash),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_jumps (run_id, seq, tick) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare jump insert: %w", err)
	}
	defer stmt.Close()

	for i, tick := range run.Journal.Jumps {
		if _, err := stmt.Exec(run.ID, i, int64(tick)); err != nil {
			return "", fmt.Errorf("storage: cannot save jump %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// Run retrieves a run with its full jump journal.
func (s *Store) Run(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, player, seed, ticks, score, over, config_yaml, config_hash, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rows, err := s.db.Query("SELECT tick FROM run_jumps WHERE run_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query jumps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tick int64
		if err := rows.Scan(&tick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan jump: %w", err)
		}
		run.Journal.Jumps = append(run.Journal.Jumps, uint64(tick))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return run, nil
}

// RecentRuns lists the most recent runs, newest first.
// Jump journals are not loaded; use Run for a replayable record.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, seed, ticks, score, over, config_yaml, config_hash, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its journal.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM run_jumps WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete jumps: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		ticks     int64
		configYML string
		hash      string
		createdAt any
	)
	err := row.Scan(
		&run.ID,
		&run.Player,
		&run.Journal.Seed,
		&ticks,
		&run.Journal.Score,
		&run.Journal.Over,
		&configYML,
		&hash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	run.Journal.Ticks = uint64(ticks)
	run.ConfigYAML = []byte(configYML)
	if run.ConfigHash, err = strconv.ParseUint(hash, 16, 64); err != nil {
		return nil, fmt.Errorf("bad config hash %q: %w", hash, err)
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
