// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"context"
	"time"
)

// Connector defines the capability set the tool dispatch layer depends on:
// connect, query, inspect, close. Implementations own a single live
// connection; callers open one per tool invocation and tear it down when the
// invocation completes.
type Connector interface {
	// Lifecycle management
	Connect(ctx context.Context, config *ConnectorConfig) error
	Close(ctx context.Context) error
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// Data operations
	Query(ctx context.Context, req *QueryRequest) (*QueryResult, error)
	ListTables(ctx context.Context, schema string) ([]TableSummary, error)
	DescribeTable(ctx context.Context, schema, table string) (*TableDescription, error)

	// Metadata
	Name() string
	Type() string
	Capabilities() []string
}

// ConnectorConfig describes how to reach a database. It is built by the
// configuration layer and consumed, never mutated, by connectors.
type ConnectorConfig struct {
	Name           string        `json:"name" yaml:"name"`
	Type           string        `json:"type" yaml:"type"`
	Host           string        `json:"host" yaml:"host"`
	Port           int           `json:"port" yaml:"port"`
	Database       string        `json:"database" yaml:"database"`
	User           string        `json:"user" yaml:"user"`
	Password       string        `json:"password" yaml:"password"`
	SSL            bool          `json:"ssl" yaml:"ssl"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
	QueryTimeout   time.Duration `json:"query_timeout" yaml:"query_timeout"`
}

// QueryRequest is a single SQL statement with optional positional parameters.
// Params may be empty; execution still uses the parameterized path.
type QueryRequest struct {
	Statement string `json:"statement"`
	Params    []any  `json:"params,omitempty"`
}

// Field describes one column of a result set. TypeName is resolved through
// the type catalog; unknown type OIDs get a deterministic fallback.
type Field struct {
	Name     string `json:"name"`
	TypeOID  uint32 `json:"dataTypeID"`
	TypeName string `json:"dataType"`
}

// QueryResult is the stable envelope every executed statement is shaped
// into, regardless of what the engine returned. Constructed fresh per call,
// owned by the caller.
type QueryResult struct {
	Rows            []map[string]any `json:"rows"`
	RowCount        int              `json:"rowCount"`
	Command         string           `json:"command"`
	Fields          []Field          `json:"fields"`
	ExecutionTimeMs int64            `json:"executionTime"`
}

// TableSummary is one row of a table listing.
type TableSummary struct {
	Schema      string `json:"schema"`
	Table       string `json:"table"`
	Owner       string `json:"owner"`
	HasIndexes  bool   `json:"hasIndexes"`
	HasTriggers bool   `json:"hasTriggers"`
}

// ColumnInfo describes a single column of a table. Pointer fields are absent
// when the engine reports NULL for them.
type ColumnInfo struct {
	Name         string  `json:"name"`
	DataType     string  `json:"data_type"`
	IsNullable   bool    `json:"is_nullable"`
	Default      *string `json:"column_default,omitempty"`
	CharMaxLen   *int    `json:"character_maximum_length,omitempty"`
	NumPrecision *int    `json:"numeric_precision,omitempty"`
	NumScale     *int    `json:"numeric_scale,omitempty"`
	IsPrimaryKey bool    `json:"is_primary_key"`
}

// IndexInfo describes a single index on a table. IsPrimary is a best-effort
// textual match against the primary key column list, not catalog linkage.
type IndexInfo struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	IsPrimary  bool   `json:"is_primary"`
	IsUnique   bool   `json:"is_unique"`
}

// TableDescription is the full shape of a table: columns in ordinal order
// plus index definitions.
type TableDescription struct {
	Schema  string       `json:"schema"`
	Table   string       `json:"table"`
	Columns []ColumnInfo `json:"columns"`
	Indexes []IndexInfo  `json:"indexes"`
}

// HealthStatus represents the outcome of a connection health check.
type HealthStatus struct {
	Healthy   bool              `json:"healthy"`
	Latency   time.Duration     `json:"latency"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
}
