// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies one of the fixed failure kinds a tool invocation can
// surface. The set is closed; callers distinguish failures by code, not by
// message text.
type ErrorCode string

const (
	ErrInvalidConnectionString ErrorCode = "INVALID_CONNECTION_STRING"
	ErrConnectionFailed        ErrorCode = "CONNECTION_FAILED"
	ErrAuthenticationFailed    ErrorCode = "AUTHENTICATION_FAILED"
	ErrQueryError              ErrorCode = "QUERY_ERROR"
	ErrTimeout                 ErrorCode = "TIMEOUT"
	ErrPermissionDenied        ErrorCode = "PERMISSION_DENIED"
	ErrTableNotFound           ErrorCode = "TABLE_NOT_FOUND"
	ErrInvalidParams           ErrorCode = "INVALID_PARAMS"
	ErrNoConnection            ErrorCode = "NO_CONNECTION"
)

// ToolError is a classified failure: a taxonomy code, a human-readable
// message, and optional diagnostic details. Details never carry information
// the message does not already convey in substance.
type ToolError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewToolError creates a classified error.
func NewToolError(code ErrorCode, message string, details map[string]any) *ToolError {
	return &ToolError{Code: code, Message: message, Details: details}
}

// AsToolError returns err as a *ToolError. Errors that were never classified
// are wrapped as generic QUERY_ERROR carrying the original message.
func AsToolError(err error) *ToolError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*ToolError); ok {
		return te
	}
	return &ToolError{Code: ErrQueryError, Message: err.Error()}
}

// ValidateParams checks that every positional parameter is one of the four
// permitted primitive kinds: string, number, boolean or null. Arrays and
// objects are rejected before any statement is executed.
func ValidateParams(params []any) error {
	for i, p := range params {
		switch p.(type) {
		case nil, string, bool,
			float64, float32,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			json.Number:
		default:
			return NewToolError(ErrInvalidParams,
				fmt.Sprintf("parameter %d has unsupported type %T; only string, number, boolean and null are allowed", i+1, p),
				nil)
		}
	}
	return nil
}
