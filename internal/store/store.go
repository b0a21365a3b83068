// Package store persists samples in a local SQLite file.
//
// Every Append is an independent connection and transaction: the file is
// never held open between samples.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hostlog/internal/model"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const schemaSQL = `CREATE TABLE IF NOT EXISTS system_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	cpu_usage REAL,
	memory_usage REAL,
	disk_usage REAL,
	ping_status TEXT,
	ping_time REAL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const insertSQL = `INSERT INTO system_log (timestamp, cpu_usage, memory_usage, disk_usage, ping_status, ping_time) VALUES (?, ?, ?, ?, ?, ?)`

const selectSQL = `SELECT id, timestamp, cpu_usage, memory_usage, disk_usage, ping_status, ping_time, CAST(created_at AS TEXT) FROM system_log ORDER BY id`

// StoreError wraps a failure at one step of a store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Opener returns a fresh database handle. The store closes it after use.
type Opener func(ctx context.Context) (*sql.DB, error)

// Store is an append-only log of samples.
type Store struct {
	open Opener
}

// FileOpener opens the SQLite file at path.
func FileOpener(path string) Opener {
	dsn := path + "?_pragma=busy_timeout(5000)"
	return func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open(driverName, dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}
}

// Open returns a store for the file at path, creating the schema if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	s := New(FileOpener(path))
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// New returns a store over open without touching the database.
func New(open Opener) *Store {
	return &Store{open: open}
}

// EnsureSchema creates the system_log table when it is missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return &StoreError{Op: "open", Err: err}
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return &StoreError{Op: "schema", Err: err}
	}
	return nil
}

// Append inserts one sample in its own transaction and returns its id.
// On failure nothing is written and earlier rows are left as they were.
func (s *Store) Append(ctx context.Context, sample model.SystemSample) (id int64, err error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, &StoreError{Op: "open", Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &StoreError{Op: "begin", Err: err}
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, schemaSQL); err != nil {
		return 0, &StoreError{Op: "schema", Err: err}
	}

	res, err := tx.ExecContext(ctx, insertSQL,
		sample.Timestamp,
		sample.CPUPercent,
		sample.MemoryPercent,
		sample.DiskPercent,
		string(sample.PingStatus),
		sample.PingTimeMs,
	)
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: err}
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: err}
	}

	if err = tx.Commit(); err != nil {
		return 0, &StoreError{Op: "commit", Err: err}
	}
	return id, nil
}

// Records returns every persisted row in id order.
func (s *Store) Records(ctx context.Context) ([]model.Record, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectSQL)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var (
			r      model.Record
			status string
		)
		if err := rows.Scan(
			&r.ID,
			&r.Sample.Timestamp,
			&r.Sample.CPUPercent,
			&r.Sample.MemoryPercent,
			&r.Sample.DiskPercent,
			&status,
			&r.Sample.PingTimeMs,
			&r.CreatedAt,
		); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		r.Sample.PingStatus = model.PingStatus(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	return out, nil
}
