package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/rotator"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - Added index on frames(run_id, step)
const currentSchemaVersion = 1

// Journal is a SQLite-backed log of rotation frames.
type Journal struct {
	db *sql.DB
}

// RunSummary describes one recorded rotation.
type RunSummary struct {
	Run      string `json:"run"`
	Frames   int    `json:"frames"`
	LastTick int64  `json:"last_tick"`
	Variants int    `json:"variants"`
}

// Open creates or opens a journal database at path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records a frame. Frames already recorded for the same run and tick
// are ignored.
func (j *Journal) Append(ctx context.Context, f rotator.Frame) error {
	letters := f.Letters
	if letters == nil {
		letters = morph.Sequence{}
	}
	lettersJSON, err := json.Marshal(letters)
	if err != nil {
		return fmt.Errorf("append frame: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO frames
		(run_id, tick, step, variant_count, variant, letters, kept, introduced, forced, dropped, distance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, tick) DO NOTHING
	`,
		f.Run,
		f.Tick,
		f.Step,
		f.Count,
		f.Variant,
		string(lettersJSON),
		f.Stats.Kept,
		f.Stats.Introduced,
		f.Stats.Forced,
		f.Stats.Dropped,
		f.Stats.Distance,
	)
	if err != nil {
		return fmt.Errorf("append frame: %w", err)
	}
	return nil
}

// Publish implements rotator.Publisher.
func (j *Journal) Publish(ctx context.Context, f rotator.Frame) error {
	return j.Append(ctx, f)
}

// Frames returns the frames of run in tick order.
// Returns an empty slice (not nil) if the run is unknown.
func (j *Journal) Frames(ctx context.Context, run string) ([]rotator.Frame, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, tick, step, variant_count, variant, letters, kept, introduced, forced, dropped, distance
		FROM frames
		WHERE run_id = ?
		ORDER BY tick ASC
	`, run)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	frames := []rotator.Frame{}
	for rows.Next() {
		var (
			f           rotator.Frame
			lettersJSON string
		)
		if err := rows.Scan(
			&f.Run, &f.Tick, &f.Step, &f.Count, &f.Variant, &lettersJSON,
			&f.Stats.Kept, &f.Stats.Introduced, &f.Stats.Forced, &f.Stats.Dropped, &f.Stats.Distance,
		); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		if err := json.Unmarshal([]byte(lettersJSON), &f.Letters); err != nil {
			return nil, fmt.Errorf("decode letters of tick %d: %w", f.Tick, err)
		}
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return frames, nil
}

// Runs lists recorded rotations. UUIDv7 run tokens sort by start time.
func (j *Journal) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, COUNT(*), MAX(tick), MAX(variant_count)
		FROM frames
		GROUP BY run_id
		ORDER BY run_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.Run, &r.Frames, &r.LastTick, &r.Variants); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if _, err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_frames_run_step
			ON frames(run_id, step)
		`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
