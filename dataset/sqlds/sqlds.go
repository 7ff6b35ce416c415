// Package sqlds provides a dataset implementation backed by database/sql.
// The postgres driver is registered by default; tests run against the
// ramsql in-memory engine.
package sqlds

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq" // postgres driver

	"github.com/rowkit/commands-framework/config"
	"github.com/rowkit/commands-framework/dataset"
)

const defaultConnectAttempts = 5

// Store wraps an open database handle and derives relations from tables.
type Store struct {
	db *sql.DB
}

// Open opens a database handle for the configured driver and DSN, pinging
// it until it responds. Connection establishment is retried up to
// ConnectAttempts times; command execution itself is never retried.
func Open(ctx context.Context, cfg config.DatasetConfig) (*Store, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = defaultConnectAttempts
	}

	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Attempts(attempts),
		retry.Context(ctx),
	)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an already open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Relation derives a writable relation from a table. The column list fixes
// which fields are read and written; it must include "id", which is used to
// address individual rows for updates and deletes.
func (s *Store) Relation(table string, columns []string) *Relation {
	return &Relation{db: s.db, table: table, columns: append([]string{}, columns...)}
}

// Relation is a table-backed implementation of dataset.Writable. It
// performs no transaction management; atomicity across statements is the
// caller's responsibility.
type Relation struct {
	db      *sql.DB
	table   string
	columns []string
}

var _ dataset.Writable = &Relation{}

// Name returns the table name.
func (r *Relation) Name() string {
	return r.table
}

// Tuples returns all rows of the table as tuples.
func (r *Relation) Tuples() ([]dataset.Tuple, error) {
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(r.columns, ", "), r.table)
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tuples := []dataset.Tuple{}
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}

	return tuples, rows.Err()
}

// Insert adds a row with the tuple's values for the relation's columns.
// Columns absent from the tuple are inserted as NULL. A tuple sharing no
// column with the relation fails with ErrNotDecodable.
func (r *Relation) Insert(t dataset.Tuple) (dataset.Tuple, error) {
	cols := make([]string, 0, len(r.columns))
	placeholders := make([]string, 0, len(r.columns))
	values := make([]any, 0, len(r.columns))
	for _, col := range r.columns {
		v, ok := t[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(cols)))
		values = append(values, v)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("insert into %s: %w: tuple has none of the configured columns", r.table, dataset.ErrNotDecodable)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := r.db.Exec(q, values...); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.table, err)
	}

	return t.Clone(), nil
}

// Update merges changes into every row matching the predicate. Matching is
// evaluated on the scanned tuples; each matching row is updated by id.
func (r *Relation) Update(p dataset.Predicate, changes dataset.Tuple) ([]dataset.Tuple, error) {
	matching, err := r.matching(p)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		return nil, dataset.ErrTupleNotFound
	}

	cols := make([]string, 0, len(changes))
	for col := range changes {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	assignments := make([]string, 0, len(cols))
	values := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		values = append(values, changes[col])
	}

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		r.table, strings.Join(assignments, ", "), len(cols)+1)

	updated := make([]dataset.Tuple, 0, len(matching))
	for _, t := range matching {
		if _, err := r.db.Exec(q, append(values, t["id"])...); err != nil {
			return nil, fmt.Errorf("update %s: %w", r.table, err)
		}
		updated = append(updated, t.Merge(changes))
	}

	return updated, nil
}

// Delete removes every row matching the predicate, addressed by id.
func (r *Relation) Delete(p dataset.Predicate) ([]dataset.Tuple, error) {
	matching, err := r.matching(p)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		return nil, dataset.ErrTupleNotFound
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table)
	for _, t := range matching {
		if _, err := r.db.Exec(q, t["id"]); err != nil {
			return nil, fmt.Errorf("delete from %s: %w", r.table, err)
		}
	}

	return matching, nil
}

func (r *Relation) matching(p dataset.Predicate) ([]dataset.Tuple, error) {
	tuples, err := r.Tuples()
	if err != nil {
		return nil, err
	}

	return dataset.Where(p)(tuples), nil
}

func (r *Relation) scan(rows *sql.Rows) (dataset.Tuple, error) {
	values := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	t := dataset.Tuple{}
	for i, col := range r.columns {
		t[col] = normalize(values[i])
	}

	return t, nil
}

// normalize converts driver-specific scan values into plain Go values.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return v
}
