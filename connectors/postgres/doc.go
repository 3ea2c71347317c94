// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package postgres implements the base.Connector contract for PostgreSQL using
the native pgx client.

# Connection Discipline

One connector serves one tool invocation: Connect, perform one operation (or
the short fixed query sequence a table description needs), Close. There is no
pooling and no connection reuse across invocations. The connect timeout bounds
dialing; the query timeout is installed as the session statement_timeout, so
every statement on the connection honors it.

# Query Execution

Query always takes the parameterized path, even with zero parameters. Results
are shaped into base.QueryResult: field descriptors carry the raw type OID and
the name resolved through the package type catalog (unknown OIDs fall back to
"oid:<id>"), rows become ordered name-to-value maps with byte slices
normalized to strings, the command verb comes from the command tag ("UNKNOWN"
when the engine reports none), and the execution time is whole milliseconds of
wall clock.

# Error Classification

Engine failures are classified once and re-raised as base.ToolError. SQLSTATE
codes are preferred when the driver surfaces them; otherwise message text is
matched in priority order: permission phrasing, object-does-not-exist
phrasing, syntax-error phrasing, then generic QUERY_ERROR. Details carry the
failing statement truncated to a bounded prefix, plus elapsed time for the
generic case.

# Schema Inspection

ListTables reads pg_catalog.pg_tables, always excluding pg_catalog and
information_schema, ordered by (schema, table). DescribeTable issues three
queries: column metadata in ordinal order, index definitions, and primary key
columns. Zero columns mean the table does not exist. Primary-index detection
is a best-effort textual match of the ordered primary key column list against
the index definition; composite keys with reordered columns can be
misclassified. Both heuristics are preserved deliberately.
*/
package postgres
