// Package storage provides SQLite-based persistence for simulation run
// reports. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. The collision core never touches it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-arena/internal/arena"
)

// Store manages the SQLite database connection for run reports.
type Store struct {
	db *sql.DB
}

// RunRecord is one stored simulation run.
type RunRecord struct {
	ID           int64
	Scenario     string
	Density      string
	Seed         int64
	Frames       int64
	SimSeconds   float64
	WallMillis   int64 // real time the run took
	Spawned      int
	Hits         int
	Kills        int
	MineTriggers int
	SentryShots  int
	Tests        int64 // narrow-phase tests over the whole run
	Dispatches   int64
	PeakPairs    int
	CreatedAt    time.Time
}

// FramesPerSecond returns the simulated frames per wall-clock second.
func (r RunRecord) FramesPerSecond() float64 {
	if r.WallMillis <= 0 {
		return 0
	}
	return float64(r.Frames) * 1000 / float64(r.WallMillis)
}

// NewRunRecord converts a finished run report. wall is the real time spent
// simulating, excluding pauses.
func NewRunRecord(rep arena.Report, density string, wall time.Duration) RunRecord {
	return RunRecord{
		Scenario:     rep.Scenario,
		Density:      density,
		Seed:         rep.Seed,
		Frames:       int64(rep.Frames),
		SimSeconds:   rep.Elapsed,
		WallMillis:   wall.Milliseconds(),
		Spawned:      rep.Spawned,
		Hits:         rep.Hits,
		Kills:        rep.Kills,
		MineTriggers: rep.MineTriggers,
		SentryShots:  rep.SentryShots,
		Tests:        int64(rep.Tests),
		Dispatches:   int64(rep.Dispatches),
		PeakPairs:    rep.PeakPairs,
	}
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario  string
	Runs      int
	Frames    int64
	Kills     int64
	AvgFPS    float64
	LastRunAt time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			density TEXT NOT NULL DEFAULT 'normal',
			seed INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			sim_seconds REAL NOT NULL,
			wall_ms INTEGER NOT NULL,
			spawned INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			mine_triggers INTEGER NOT NULL DEFAULT 0,
			sentry_shots INTEGER NOT NULL DEFAULT 0,
			tests INTEGER NOT NULL DEFAULT 0,
			dispatches INTEGER NOT NULL DEFAULT 0,
			peak_pairs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario, density, seed, frames, sim_seconds, wall_ms,
			spawned, hits, kills, mine_triggers, sentry_shots, tests, dispatches, peak_pairs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Density, r.Seed, r.Frames, r.SimSeconds, r.WallMillis,
		r.Spawned, r.Hits, r.Kills, r.MineTriggers, r.SentryShots, r.Tests, r.Dispatches, r.PeakPairs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, scenario, density, seed, frames, sim_seconds, wall_ms,
	spawned, hits, kills, mine_triggers, sentry_shots, tests, dispatches, peak_pairs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := row.Scan(&r.ID, &r.Scenario, &r.Density, &r.Seed, &r.Frames, &r.SimSeconds, &r.WallMillis,
		&r.Spawned, &r.Hits, &r.Kills, &r.MineTriggers, &r.SentryShots, &r.Tests, &r.Dispatches, &r.PeakPairs,
		&createdAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the latest runs, newest first. An empty scenario
// matches all scenarios.
func (s *Store) RecentRuns(scenario string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR scenario = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the run of scenario with the highest frame throughput,
// or nil when the scenario has no runs.
func (s *Store) BestRun(scenario string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ? AND wall_ms > 0
		 ORDER BY CAST(frames AS REAL) / wall_ms DESC
		 LIMIT 1`,
		scenario,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get best run: %w", err)
	}
	return &r, nil
}

// ScenarioStatsAll retrieves aggregated statistics for every scenario that
// has stored runs.
func (s *Store) ScenarioStatsAll() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), SUM(frames), SUM(kills),
			COALESCE(AVG(CASE WHEN wall_ms > 0 THEN frames * 1000.0 / wall_ms END), 0),
			MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var last any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.Frames, &st.Kills, &st.AvgFPS, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRunAt = parseTime(last)
		stats[st.Scenario] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs of the given scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
