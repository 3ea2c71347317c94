// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows implements pgx.Rows over scripted data.
type fakeRows struct {
	fields  []pgconn.FieldDescription
	rows    [][]any
	tag     pgconn.CommandTag
	rowsErr error // surfaced by Err after iteration
	scanErr error

	idx    int
	closed bool
}

func (r *fakeRows) Close()      { r.closed = true }
func (r *fakeRows) Err() error  { return r.rowsErr }
func (r *fakeRows) Conn() *pgx.Conn {
	return nil
}
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return r.tag }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) RawValues() [][]byte                          { return nil }

func (r *fakeRows) Next() bool {
	if r.idx < len(r.rows) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		assign(d, row[i])
	}
	return nil
}

func assign(dest, v any) {
	switch d := dest.(type) {
	case *string:
		if s, ok := v.(string); ok {
			*d = s
		}
	case *bool:
		if b, ok := v.(bool); ok {
			*d = b
		}
	case *int:
		if n, ok := v.(int); ok {
			*d = n
		}
	case **string:
		if v == nil {
			*d = nil
		} else if s, ok := v.(string); ok {
			c := s
			*d = &c
		}
	case **int:
		if v == nil {
			*d = nil
		} else if n, ok := v.(int); ok {
			c := n
			*d = &c
		}
	}
}

// queryCall records one Query invocation seen by the fake runner.
type queryCall struct {
	sql  string
	args []any
}

// fakeRunner pops one scripted result per Query call, in order.
type fakeRunner struct {
	results []*fakeRows
	errs    []error
	calls   []queryCall
}

func (f *fakeRunner) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, queryCall{sql: sql, args: args})
	i := len(f.calls) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return &fakeRows{tag: pgconn.NewCommandTag("")}, nil
}

// connectorWith returns a Connector wired to the given runner.
func connectorWith(runner queryRunner) *Connector {
	c := New()
	c.runner = runner
	return c
}
