// Package storage provides SQLite-based persistence for decoding runs and
// their per-individual records.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gemap-xyz/go-gemap/runlog"
)

// Store handles SQLite database operations for run logging.
type Store struct {
	db *sql.DB
}

// Run represents one decoding run record.
type Run struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Strategy    string    `json:"strategy"`
	StartedAt   time.Time `json:"started_at"`
	Individuals int       `json:"individuals"`
	Valid       int       `json:"valid"`
}

// Open creates a Store backed by the database at the given path, creating
// the schema if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		individuals INTEGER DEFAULT 0,
		valid INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		nodes INTEGER NOT NULL,
		max_depth INTEGER NOT NULL,
		used_codons INTEGER NOT NULL,
		invalid INTEGER NOT NULL,
		phenotype TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts or updates a run record.
func (s *Store) SaveRun(run Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, name, strategy, started_at, individuals, valid)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			strategy = excluded.strategy,
			individuals = excluded.individuals,
			valid = excluded.valid`,
		run.ID, run.Name, run.Strategy, run.StartedAt, run.Individuals, run.Valid)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// AppendRecord appends one individual's record to a run.
func (s *Store) AppendRecord(runID string, rec runlog.Record) error {
	_, err := s.db.Exec(`
		INSERT INTO records (run_id, idx, timestamp, nodes, max_depth, used_codons, invalid, phenotype)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.Index, rec.Timestamp, rec.Nodes, rec.MaxDepth,
		rec.UsedCodons, rec.Invalid, rec.Phenotype)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// LoadRun retrieves a run and its records in insertion order.
func (s *Store) LoadRun(id string) (Run, []runlog.Record, error) {
	var run Run
	err := s.db.QueryRow(`
		SELECT id, name, strategy, started_at, individuals, valid
		FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Name, &run.Strategy, &run.StartedAt, &run.Individuals, &run.Valid)
	if err != nil {
		return Run{}, nil, fmt.Errorf("load run: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT idx, timestamp, nodes, max_depth, used_codons, invalid, phenotype
		FROM records WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var records []runlog.Record
	for rows.Next() {
		var rec runlog.Record
		if err := rows.Scan(&rec.Index, &rec.Timestamp, &rec.Nodes, &rec.MaxDepth,
			&rec.UsedCodons, &rec.Invalid, &rec.Phenotype); err != nil {
			return Run{}, nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate records: %w", err)
	}
	return run, records, nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, name, strategy, started_at, individuals, valid
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Name, &run.Strategy, &run.StartedAt,
			&run.Individuals, &run.Valid); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// BestByNodes returns a run's valid records ordered by ascending node
// count, a simple parsimony view of the population.
func (s *Store) BestByNodes(runID string, limit int) ([]runlog.Record, error) {
	rows, err := s.db.Query(`
		SELECT idx, timestamp, nodes, max_depth, used_codons, invalid, phenotype
		FROM records WHERE run_id = ? AND invalid = 0
		ORDER BY nodes ASC LIMIT ?`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("query best: %w", err)
	}
	defer rows.Close()

	var records []runlog.Record
	for rows.Next() {
		var rec runlog.Record
		if err := rows.Scan(&rec.Index, &rec.Timestamp, &rec.Nodes, &rec.MaxDepth,
			&rec.UsedCodons, &rec.Invalid, &rec.Phenotype); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
