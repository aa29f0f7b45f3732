// Package storage provides SQLite-based persistence for replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/replay"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplaySummary is a replay row without its frames.
type ReplaySummary struct {
	ID         int64
	Source     string
	Seed       int64
	Mode       sim.Mode
	Score      int
	Steps      int
	Elapsed    time.Duration
	Restarts   int
	FrameCount int
	CreatedAt  time.Time
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(config.AppName + "/replays.db")
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve data path: %w", err)
	}
	return path, nil
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			mode INTEGER NOT NULL,
			score INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			restarts INTEGER NOT NULL DEFAULT 0,
			frame_count INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			dt_ns INTEGER NOT NULL,
			taps INTEGER NOT NULL,
			PRIMARY KEY (replay_id, seq)
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

// SaveReplay stores a recording with all of its frames in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(ctx context.Context, rec replay.Recording) (int64, error) {
	cfgYAML, err := rec.Config.Marshal()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	o := rec.Outcome
	res, err := tx.ExecContext(ctx,
		`INSERT INTO replays
		 (source, seed, config_yaml, mode, score, steps, elapsed_ns, restarts, frame_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Source, rec.Seed, string(cfgYAML),
		int(o.Mode), o.Score, o.Steps, int64(o.Elapsed), o.Restarts, len(rec.Frames),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO replay_frames (replay_id, seq, dt_ns, taps) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range rec.Frames {
		if _, err := stmt.ExecContext(ctx, id, i, int64(f.DT), f.Taps); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Replay loads a recording with its frames. Returns ErrNotFound if the
// ID does not exist.
func (s *Store) Replay(ctx context.Context, id int64) (replay.Recording, error) {
	var (
		rec       replay.Recording
		cfgYAML   string
		mode      int
		elapsed   int64
		createdAt any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, seed, config_yaml, mode, score, steps, elapsed_ns, restarts, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Source, &rec.Seed, &cfgYAML, &mode,
		&rec.Outcome.Score, &rec.Outcome.Steps, &elapsed, &rec.Outcome.Restarts, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec.Outcome.Mode = sim.Mode(mode)
	rec.Outcome.Elapsed = time.Duration(elapsed)
	rec.CreatedAt = parseTime(createdAt)

	rec.Config, err = config.Parse([]byte(cfgYAML))
	if err != nil {
		return rec, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT dt_ns, taps FROM replay_frames WHERE replay_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dt int64
		var f replay.Frame
		if err := rows.Scan(&dt, &f.Taps); err != nil {
			return rec, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.DT = time.Duration(dt)
		rec.Frames = append(rec.Frames, f)
	}
	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// RecentReplays lists the most recent replays, newest first.
func (s *Store) RecentReplays(ctx context.Context, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, seed, mode, score, steps, elapsed_ns, restarts, frame_count, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var summaries []ReplaySummary
	for rows.Next() {
		var (
			r         ReplaySummary
			mode      int
			elapsed   int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Seed, &mode, &r.Score, &r.Steps,
			&elapsed, &r.Restarts, &r.FrameCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Mode = sim.Mode(mode)
		r.Elapsed = time.Duration(elapsed)
		r.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// DeleteReplay removes a replay and its frames.
func (s *Store) DeleteReplay(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
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
