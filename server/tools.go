// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pgbridge/server/connectors/base"
	"pgbridge/server/connectors/config"
	"pgbridge/server/connectors/postgres"
	"pgbridge/server/shared/logger"
)

// Version is reported in the MCP handshake and on /healthz.
const Version = "1.0.0"

// Server dispatches MCP tool calls to a PostgreSQL connector. Each data tool
// opens a fresh connection, runs its operation and closes the connection
// before returning.
type Server struct {
	store   *config.Store
	factory func() base.Connector
	log     *logger.Logger
}

// New creates a tool server backed by the given settings store.
func New(store *config.Store) *Server {
	return &Server{
		store:   store,
		factory: func() base.Connector { return postgres.New() },
		log:     logger.New("pgbridge-server"),
	}
}

// MCPServer builds the MCP server with all five tools registered.
func (s *Server) MCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "pgbridge", Version: Version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "configure_connection",
		Description: "Configure the PostgreSQL connection. Settings are validated, persisted and used by all subsequent tool calls.",
	}, s.handleConfigureConnection)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "test_connection",
		Description: "Open a connection with the current settings and report server version, database and user.",
	}, s.handleTestConnection)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "execute_query",
		Description: "Execute a SQL statement with optional positional parameters ($1, $2, ...) and return rows, row count, command tag, field types and execution time.",
	}, s.handleExecuteQuery)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_tables",
		Description: "List user tables, optionally restricted to one schema. System catalogs are always excluded.",
	}, s.handleListTables)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "describe_table",
		Description: "Describe a table: columns in ordinal order with types, nullability, defaults and primary key flags, plus index definitions.",
	}, s.handleDescribeTable)

	return srv
}

// ConfigureConnectionInput carries new connection settings. Timeouts are in
// milliseconds; omitted values keep their defaults.
type ConfigureConnectionInput struct {
	Host             string `json:"host" jsonschema:"Database server hostname or IP address"`
	Port             int    `json:"port,omitempty" jsonschema:"Server port, defaults to 5432"`
	Database         string `json:"database" jsonschema:"Database name"`
	User             string `json:"user" jsonschema:"Role to authenticate as"`
	Password         string `json:"password" jsonschema:"Password for the role"`
	SSL              bool   `json:"ssl,omitempty" jsonschema:"Require TLS for the connection"`
	ConnectTimeoutMs int    `json:"connectTimeoutMs,omitempty" jsonschema:"Connection establishment timeout in milliseconds"`
	QueryTimeoutMs   int    `json:"queryTimeoutMs,omitempty" jsonschema:"Per-statement timeout in milliseconds"`
}

// TestConnectionInput has no parameters.
type TestConnectionInput struct{}

// ExecuteQueryInput is a single SQL statement with optional parameters.
type ExecuteQueryInput struct {
	SQL    string `json:"sql" jsonschema:"SQL statement to execute"`
	Params []any  `json:"params,omitempty" jsonschema:"Positional parameter values for $1, $2, ... placeholders; only string, number, boolean and null are allowed"`
}

// ListTablesInput optionally restricts the listing to one schema.
type ListTablesInput struct {
	Schema string `json:"schema,omitempty" jsonschema:"Schema to list tables from; all user schemas when omitted"`
}

// DescribeTableInput names the table to describe.
type DescribeTableInput struct {
	Table  string `json:"table" jsonschema:"Table name"`
	Schema string `json:"schema,omitempty" jsonschema:"Schema the table lives in, defaults to public"`
}

func (s *Server) handleConfigureConnection(ctx context.Context, req *mcp.CallToolRequest, input ConfigureConnectionInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	requestID := uuid.New().String()

	cfg := config.Default()
	cfg.Host = input.Host
	cfg.Port = input.Port
	cfg.Database = input.Database
	cfg.User = input.User
	cfg.Password = input.Password
	cfg.SSL = input.SSL
	if input.ConnectTimeoutMs > 0 {
		cfg.ConnectTimeout = time.Duration(input.ConnectTimeoutMs) * time.Millisecond
	}
	if input.QueryTimeoutMs > 0 {
		cfg.QueryTimeout = time.Duration(input.QueryTimeoutMs) * time.Millisecond
	}

	if err := s.store.Update(cfg); err != nil {
		return s.finish("configure_connection", requestID, start, nil,
			base.NewToolError(base.ErrInvalidParams, err.Error(), nil))
	}

	applied := s.store.Get()
	return s.finish("configure_connection", requestID, start, map[string]any{
		"status":   "configured",
		"host":     applied.Host,
		"port":     applied.Port,
		"database": applied.Database,
		"user":     applied.User,
		"ssl":      applied.SSL,
	}, nil)
}

func (s *Server) handleTestConnection(ctx context.Context, req *mcp.CallToolRequest, input TestConnectionInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	requestID := uuid.New().String()

	out, err := s.withConnection(ctx, func(ctx context.Context, conn base.Connector) (any, error) {
		return conn.HealthCheck(ctx)
	})
	return s.finish("test_connection", requestID, start, out, err)
}

func (s *Server) handleExecuteQuery(ctx context.Context, req *mcp.CallToolRequest, input ExecuteQueryInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	requestID := uuid.New().String()

	if strings.TrimSpace(input.SQL) == "" {
		return s.finish("execute_query", requestID, start, nil,
			base.NewToolError(base.ErrInvalidParams, "sql statement is required", nil))
	}
	if err := base.ValidateParams(input.Params); err != nil {
		return s.finish("execute_query", requestID, start, nil, err)
	}

	out, err := s.withConnection(ctx, func(ctx context.Context, conn base.Connector) (any, error) {
		return conn.Query(ctx, &base.QueryRequest{Statement: input.SQL, Params: input.Params})
	})
	if err == nil {
		if res, ok := out.(*base.QueryResult); ok {
			s.log.InfoWithDuration(requestID, "query executed", float64(res.ExecutionTimeMs), map[string]any{
				"command":   res.Command,
				"row_count": res.RowCount,
			})
		}
	}
	return s.finish("execute_query", requestID, start, out, err)
}

func (s *Server) handleListTables(ctx context.Context, req *mcp.CallToolRequest, input ListTablesInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	requestID := uuid.New().String()

	out, err := s.withConnection(ctx, func(ctx context.Context, conn base.Connector) (any, error) {
		tables, err := conn.ListTables(ctx, input.Schema)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tables": tables, "count": len(tables)}, nil
	})
	return s.finish("list_tables", requestID, start, out, err)
}

func (s *Server) handleDescribeTable(ctx context.Context, req *mcp.CallToolRequest, input DescribeTableInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	requestID := uuid.New().String()

	if input.Table == "" {
		return s.finish("describe_table", requestID, start, nil,
			base.NewToolError(base.ErrInvalidParams, "table name is required", nil))
	}

	out, err := s.withConnection(ctx, func(ctx context.Context, conn base.Connector) (any, error) {
		return conn.DescribeTable(ctx, input.Schema, input.Table)
	})
	return s.finish("describe_table", requestID, start, out, err)
}

// withConnection opens a connection with the current settings, runs fn, and
// closes the connection. The configured query timeout bounds fn as a whole.
func (s *Server) withConnection(ctx context.Context, fn func(ctx context.Context, conn base.Connector) (any, error)) (any, error) {
	if !s.store.IsConfigured() {
		return nil, base.NewToolError(base.ErrNoConnection,
			"no connection configured; call configure_connection first", nil)
	}

	cfg := s.store.Get()
	if cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()
	}

	conn := s.factory()
	if err := conn.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			s.log.Warn("", "connection close failed", map[string]any{"error": err.Error()})
		}
	}()

	return fn(ctx, conn)
}

// finish converts a handler outcome into an MCP result and records metrics.
// Classified failures become in-band error results rather than protocol
// errors, so clients always receive the taxonomy code.
func (s *Server) finish(tool, requestID string, start time.Time, v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		te := base.AsToolError(err)
		s.log.ErrorWithCause(requestID, tool+" failed", te, map[string]any{"code": string(te.Code)})
		observeTool(tool, start, true)
		return errorResult(te), nil, nil
	}
	observeTool(tool, start, false)
	return textResult(v), nil, nil
}

func textResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(`{"code":"QUERY_ERROR","message":"result not serializable"}`)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func errorResult(te *base.ToolError) *mcp.CallToolResult {
	data, err := json.MarshalIndent(te, "", "  ")
	if err != nil {
		data = []byte(`{"code":"QUERY_ERROR","message":"error not serializable"}`)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
