// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package server wires the PostgreSQL connector into an MCP tool surface.

Five tools are exposed:

  - configure_connection: validate and persist connection settings
  - test_connection: connect and report server version, database and user
  - execute_query: run one SQL statement and return the shaped result
  - list_tables: enumerate user tables, optionally per schema
  - describe_table: columns, types, defaults, primary keys and indexes

Tool failures are returned in-band as results with IsError set, carrying a
JSON body with a stable error code, a message and optional details. Protocol
errors are reserved for transport faults, so an agent driving the tools can
always distinguish "the query failed" from "the server broke".

The server speaks stdio by default. Setting MCP_TRANSPORT=http serves the
streamable HTTP transport on /mcp instead, alongside /healthz and Prometheus
metrics on /metrics.
*/
package server
