// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pgbridge/server/connectors/base"
)

// maxStatementPrefix bounds how much of a failing statement is attached to
// error details. Ad-hoc SQL can embed large literals or secrets; only a
// short prefix ever reaches logs and responses.
const maxStatementPrefix = 100

func truncateStatement(stmt string) string {
	if len(stmt) <= maxStatementPrefix {
		return stmt
	}
	return stmt[:maxStatementPrefix] + "..."
}

// ClassifyQueryError maps an engine-level query failure to a classified
// error. The SQLSTATE code is used when the driver surfaces one; otherwise
// classification falls back to message text, checked in priority order:
// permission phrasing, object-does-not-exist phrasing, syntax-error
// phrasing, then generic QUERY_ERROR carrying the original message.
func ClassifyQueryError(err error, stmt string, elapsed time.Duration) *base.ToolError {
	details := map[string]any{"statement": truncateStatement(stmt)}

	if errors.Is(err, context.DeadlineExceeded) {
		return base.NewToolError(base.ErrTimeout, "query timed out", details)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "57014": // query_canceled, fired by statement_timeout
			return base.NewToolError(base.ErrTimeout, pgErr.Message, details)
		case pgErr.Code == "42501":
			return base.NewToolError(base.ErrPermissionDenied, pgErr.Message, details)
		case pgErr.Code == "42P01" || pgErr.Code == "3F000":
			return base.NewToolError(base.ErrTableNotFound, pgErr.Message, details)
		case pgErr.Code == "42601":
			return base.NewToolError(base.ErrQueryError, pgErr.Message, details)
		case strings.HasPrefix(pgErr.Code, "28"):
			return base.NewToolError(base.ErrAuthenticationFailed, pgErr.Message, details)
		case strings.HasPrefix(pgErr.Code, "08"):
			return base.NewToolError(base.ErrConnectionFailed, pgErr.Message, details)
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission denied"):
		return base.NewToolError(base.ErrPermissionDenied, msg, details)
	case strings.Contains(lower, "does not exist"):
		return base.NewToolError(base.ErrTableNotFound, msg, details)
	case strings.Contains(lower, "syntax error"):
		return base.NewToolError(base.ErrQueryError, msg, details)
	}

	details["elapsed_ms"] = elapsed.Milliseconds()
	return base.NewToolError(base.ErrQueryError, msg, details)
}

// ClassifyConnectError maps a connection-establishment failure to a
// classified error.
func ClassifyConnectError(err error) *base.ToolError {
	if errors.Is(err, context.DeadlineExceeded) {
		return base.NewToolError(base.ErrTimeout, "connection attempt timed out", nil)
	}

	var parseErr *pgconn.ParseConfigError
	if errors.As(err, &parseErr) {
		return base.NewToolError(base.ErrInvalidConnectionString, err.Error(), nil)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "28") {
		return base.NewToolError(base.ErrAuthenticationFailed, pgErr.Message, nil)
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "password authentication failed"),
		strings.Contains(lower, "authentication failed"):
		return base.NewToolError(base.ErrAuthenticationFailed, msg, nil)
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline"):
		return base.NewToolError(base.ErrTimeout, msg, nil)
	}
	return base.NewToolError(base.ErrConnectionFailed, msg, nil)
}
