// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package logger provides structured JSON logging for all PgBridge components.

Every entry carries a timestamp, level, component name, instance ID and
message, plus an optional request ID and free-form fields. Entries are
written through the standard library logger, which defaults to stderr. In
stdio transport mode stdout carries protocol frames and must never receive
log output.

Usage:

	log := logger.New("postgres-connector")
	log.Info(requestID, "query executed", map[string]any{
	    "command":   "SELECT",
	    "row_count": 3,
	})
*/
package logger
