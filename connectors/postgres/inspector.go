// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"pgbridge/server/connectors/base"
)

// ListTables returns user tables ordered by (schema, table). The schema
// filter is applied as a bound parameter; an unknown schema yields an empty
// listing, not an error.
func (c *Connector) ListTables(ctx context.Context, schema string) ([]base.TableSummary, error) {
	if c.runner == nil {
		return nil, base.NewToolError(base.ErrNoConnection, "database not connected", nil)
	}

	start := time.Now()
	var (
		rows pgx.Rows
		err  error
	)
	stmt := queryListTables
	if schema != "" {
		stmt = queryListTablesInSchema
		rows, err = c.runner.Query(ctx, stmt, schema)
	} else {
		rows, err = c.runner.Query(ctx, stmt)
	}
	if err != nil {
		return nil, ClassifyQueryError(err, stmt, time.Since(start))
	}
	defer rows.Close()

	tables := make([]base.TableSummary, 0)
	for rows.Next() {
		var t base.TableSummary
		if err := rows.Scan(&t.Schema, &t.Table, &t.Owner, &t.HasIndexes, &t.HasTriggers); err != nil {
			return nil, ClassifyQueryError(err, stmt, time.Since(start))
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyQueryError(err, stmt, time.Since(start))
	}
	return tables, nil
}

// DescribeTable returns the full shape of a table: columns in ordinal order,
// index definitions, and primary key annotation. Three sequential queries on
// the same connection. A table that yields zero columns does not exist; a
// real zero-column table would be indistinguishable and is reported as
// missing (known edge case, preserved).
func (c *Connector) DescribeTable(ctx context.Context, schema, table string) (*base.TableDescription, error) {
	if c.runner == nil {
		return nil, base.NewToolError(base.ErrNoConnection, "database not connected", nil)
	}
	if schema == "" {
		schema = "public"
	}

	columns, err := c.tableColumns(ctx, schema, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, base.NewToolError(base.ErrTableNotFound,
			fmt.Sprintf("table %q.%q does not exist", schema, table), nil)
	}

	indexes, err := c.tableIndexes(ctx, schema, table)
	if err != nil {
		return nil, err
	}

	pkCols, err := c.primaryKeyColumns(ctx, schema, table)
	if err != nil {
		return nil, err
	}

	pkSet := make(map[string]bool, len(pkCols))
	for _, name := range pkCols {
		pkSet[name] = true
	}
	for i := range columns {
		columns[i].IsPrimaryKey = pkSet[columns[i].Name]
	}

	// Best-effort: an index whose definition contains the ordered primary
	// key column list is taken to be the primary key index. Composite keys
	// with reordered columns can be misclassified; preserved as-is.
	pkList := "(" + strings.Join(pkCols, ", ") + ")"
	for i := range indexes {
		def := indexes[i].Definition
		indexes[i].IsUnique = strings.Contains(strings.ToLower(def), "unique")
		indexes[i].IsPrimary = len(pkCols) > 0 && strings.Contains(def, pkList)
	}

	return &base.TableDescription{
		Schema:  schema,
		Table:   table,
		Columns: columns,
		Indexes: indexes,
	}, nil
}

func (c *Connector) tableColumns(ctx context.Context, schema, table string) ([]base.ColumnInfo, error) {
	start := time.Now()
	rows, err := c.runner.Query(ctx, queryTableColumns, schema, table)
	if err != nil {
		return nil, ClassifyQueryError(err, queryTableColumns, time.Since(start))
	}
	defer rows.Close()

	columns := make([]base.ColumnInfo, 0)
	for rows.Next() {
		var (
			col      base.ColumnInfo
			nullable string
		)
		if err := rows.Scan(&col.Name, &col.DataType, &nullable,
			&col.Default, &col.CharMaxLen, &col.NumPrecision, &col.NumScale); err != nil {
			return nil, ClassifyQueryError(err, queryTableColumns, time.Since(start))
		}
		col.IsNullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyQueryError(err, queryTableColumns, time.Since(start))
	}
	return columns, nil
}

func (c *Connector) tableIndexes(ctx context.Context, schema, table string) ([]base.IndexInfo, error) {
	start := time.Now()
	rows, err := c.runner.Query(ctx, queryTableIndexes, schema, table)
	if err != nil {
		return nil, ClassifyQueryError(err, queryTableIndexes, time.Since(start))
	}
	defer rows.Close()

	indexes := make([]base.IndexInfo, 0)
	for rows.Next() {
		var idx base.IndexInfo
		if err := rows.Scan(&idx.Name, &idx.Definition); err != nil {
			return nil, ClassifyQueryError(err, queryTableIndexes, time.Since(start))
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyQueryError(err, queryTableIndexes, time.Since(start))
	}
	return indexes, nil
}

func (c *Connector) primaryKeyColumns(ctx context.Context, schema, table string) ([]string, error) {
	start := time.Now()
	rows, err := c.runner.Query(ctx, queryPrimaryKeyColumns, schema, table)
	if err != nil {
		return nil, ClassifyQueryError(err, queryPrimaryKeyColumns, time.Since(start))
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ClassifyQueryError(err, queryPrimaryKeyColumns, time.Since(start))
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyQueryError(err, queryPrimaryKeyColumns, time.Since(start))
	}
	return cols, nil
}
