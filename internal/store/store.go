// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists simulation runs to a SQLite database so
// scenarios can be compared across invocations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hadiyati/biorefinery/pkg/types"
)

const dbFile = "runs.db"

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the run database at dir/runs.db, creating
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = "runs"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			config_yaml TEXT NOT NULL,
			annual_production_mt REAL NOT NULL,
			tci REAL NOT NULL,
			npv REAL NOT NULL,
			irr REAL NOT NULL,
			msp_per_kg REAL NOT NULL,
			kpis TEXT NOT NULL,
			streams TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS equipment (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			unit_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			design TEXT NOT NULL,
			purchase_cost REAL NOT NULL,
			installed_cost REAL NOT NULL,
			utilities TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_equipment_run_id ON equipment(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save persists a run and its equipment rows in one transaction,
// returning the assigned run ID.
func (s *Store) Save(ctx context.Context, rec types.RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	kpisJSON, err := json.Marshal(rec.KPIs)
	if err != nil {
		return 0, fmt.Errorf("marshaling KPIs: %w", err)
	}
	streamsJSON, err := json.Marshal(rec.Streams)
	if err != nil {
		return 0, fmt.Errorf("marshaling streams: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, config_yaml, annual_production_mt, tci, npv, irr, msp_per_kg, kpis, streams)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano), rec.ConfigYAML,
		rec.KPIs.AnnualProductionMT, rec.KPIs.TCI, rec.KPIs.NPV, rec.KPIs.IRR, rec.KPIs.MSPPerKg,
		string(kpisJSON), string(streamsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO equipment (run_id, unit_id, kind, design, purchase_cost, installed_cost, utilities)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing equipment insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range rec.Units {
		designJSON, _ := json.Marshal(u.Design)
		utilitiesJSON, _ := json.Marshal(u.Utilities)
		if _, err := stmt.ExecContext(ctx,
			runID, u.ID, u.Kind, string(designJSON),
			u.PurchaseCost, u.InstalledCost, string(utilitiesJSON),
		); err != nil {
			return 0, fmt.Errorf("inserting equipment %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// List returns the most recent runs, newest first. A limit of zero uses
// the store default.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, config_yaml, kpis, streams FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns one run with its equipment rows.
func (s *Store) Get(ctx context.Context, id int64) (types.RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, config_yaml, kpis, streams FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return types.RunRecord{}, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return types.RunRecord{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT unit_id, kind, design, purchase_cost, installed_cost, utilities
		 FROM equipment WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u types.UnitResult
		var designJSON, utilitiesJSON string
		if err := rows.Scan(&u.ID, &u.Kind, &designJSON, &u.PurchaseCost, &u.InstalledCost, &utilitiesJSON); err != nil {
			return types.RunRecord{}, fmt.Errorf("scanning equipment: %w", err)
		}
		if err := json.Unmarshal([]byte(designJSON), &u.Design); err != nil {
			return types.RunRecord{}, fmt.Errorf("parsing design for %s: %w", u.ID, err)
		}
		if err := json.Unmarshal([]byte(utilitiesJSON), &u.Utilities); err != nil {
			return types.RunRecord{}, fmt.Errorf("parsing utilities for %s: %w", u.ID, err)
		}
		rec.Units = append(rec.Units, u)
	}
	return rec, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.RunRecord, error) {
	var rec types.RunRecord
	var createdAt, kpisJSON, streamsJSON string
	if err := sc.Scan(&rec.ID, &createdAt, &rec.ConfigYAML, &kpisJSON, &streamsJSON); err != nil {
		if err == sql.ErrNoRows {
			return rec, err
		}
		return rec, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return rec, fmt.Errorf("parsing run timestamp: %w", err)
	}
	rec.CreatedAt = t
	if err := json.Unmarshal([]byte(kpisJSON), &rec.KPIs); err != nil {
		return rec, fmt.Errorf("parsing KPIs: %w", err)
	}
	if err := json.Unmarshal([]byte(streamsJSON), &rec.Streams); err != nil {
		return rec, fmt.Errorf("parsing streams: %w", err)
	}
	return rec, nil
}
