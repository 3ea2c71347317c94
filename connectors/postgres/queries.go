// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

// Catalog queries for schema inspection. The two reserved system schemas are
// excluded from listings unconditionally, even when a schema filter is given.
const (
	queryListTables = `
		SELECT schemaname, tablename, tableowner, hasindexes, hastriggers
		FROM pg_catalog.pg_tables
		WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY schemaname, tablename`

	queryListTablesInSchema = `
		SELECT schemaname, tablename, tableowner, hasindexes, hastriggers
		FROM pg_catalog.pg_tables
		WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
		  AND schemaname = $1
		ORDER BY schemaname, tablename`

	queryTableColumns = `
		SELECT column_name, data_type, is_nullable, column_default,
		       character_maximum_length, numeric_precision, numeric_scale
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		ORDER BY ordinal_position`

	queryTableIndexes = `
		SELECT indexname, indexdef
		FROM pg_indexes
		WHERE schemaname = $1
		  AND tablename = $2`

	queryPrimaryKeyColumns = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position`

	queryServerInfo = `SELECT version(), current_database(), current_user`
)
