// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"pgbridge/server/connectors/base"
	"pgbridge/server/shared/logger"
)

// queryRunner is the slice of *pgx.Conn the data operations depend on.
// Tests substitute a scripted implementation.
type queryRunner interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Connector implements base.Connector for PostgreSQL over a single pgx
// connection. No pooling: one connector serves one tool invocation.
type Connector struct {
	config *base.ConnectorConfig
	conn   *pgx.Conn
	runner queryRunner
	log    *logger.Logger
}

// New creates a disconnected PostgreSQL connector.
func New() *Connector {
	return &Connector{log: logger.New("postgres-connector")}
}

// buildDSN assembles a postgres:// URL from the descriptor. URL encoding
// keeps credentials with reserved characters intact.
func buildDSN(cfg *base.ConnectorConfig) string {
	sslmode := "disable"
	if cfg.SSL {
		sslmode = "require"
	}

	q := url.Values{}
	q.Set("sslmode", sslmode)
	if cfg.ConnectTimeout > 0 {
		secs := int(cfg.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Connect establishes a single connection to PostgreSQL. The statement
// timeout from the descriptor is installed as a session parameter so every
// statement on this connection honors it.
func (c *Connector) Connect(ctx context.Context, cfg *base.ConnectorConfig) error {
	c.config = cfg

	connCfg, err := pgx.ParseConfig(buildDSN(cfg))
	if err != nil {
		return ClassifyConnectError(err)
	}
	if cfg.QueryTimeout > 0 {
		connCfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.QueryTimeout.Milliseconds(), 10)
	}

	dialCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	conn, err := pgx.ConnectConfig(dialCtx, connCfg)
	if err != nil {
		return ClassifyConnectError(err)
	}

	c.conn = conn
	c.runner = conn
	c.log.Debug("", "connected to PostgreSQL", map[string]any{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Database,
	})
	return nil
}

// Close tears down the connection. Safe to call when never connected.
func (c *Connector) Close(ctx context.Context) error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close(ctx)
	c.conn = nil
	c.runner = nil
	if err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}

// HealthCheck verifies the connection is usable and reports server details.
func (c *Connector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	if c.runner == nil {
		return &base.HealthStatus{
			Healthy:   false,
			Error:     "database not connected",
			Timestamp: time.Now(),
		}, nil
	}

	start := time.Now()
	var version, database, user string
	rows, err := c.runner.Query(ctx, queryServerInfo)
	if err == nil {
		if rows.Next() {
			err = rows.Scan(&version, &database, &user)
		}
		rows.Close()
		if err == nil {
			err = rows.Err()
		}
	}
	latency := time.Since(start)

	if err != nil {
		return &base.HealthStatus{
			Healthy:   false,
			Latency:   latency,
			Error:     err.Error(),
			Timestamp: time.Now(),
		}, nil
	}

	return &base.HealthStatus{
		Healthy: true,
		Latency: latency,
		Details: map[string]string{
			"version":  version,
			"database": database,
			"user":     user,
		},
		Timestamp: time.Now(),
	}, nil
}

// Query executes a single statement with optional positional parameters and
// shapes the outcome into the stable result envelope. Zero parameters still
// go through the parameterized path; SQL text is never interpolated.
func (c *Connector) Query(ctx context.Context, req *base.QueryRequest) (*base.QueryResult, error) {
	if c.runner == nil {
		return nil, base.NewToolError(base.ErrNoConnection, "database not connected", nil)
	}

	start := time.Now()
	rows, err := c.runner.Query(ctx, req.Statement, req.Params...)
	if err != nil {
		return nil, ClassifyQueryError(err, req.Statement, time.Since(start))
	}

	descs := rows.FieldDescriptions()
	fields := make([]base.Field, len(descs))
	for i, d := range descs {
		fields[i] = base.Field{
			Name:     d.Name,
			TypeOID:  d.DataTypeOID,
			TypeName: TypeName(d.DataTypeOID),
		}
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values, verr := rows.Values()
		if verr != nil {
			rows.Close()
			return nil, ClassifyQueryError(verr, req.Statement, time.Since(start))
		}
		row := make(map[string]any, len(values))
		for i, v := range values {
			if i >= len(fields) {
				break
			}
			// Raw byte columns become strings so they survive JSON encoding.
			if b, ok := v.([]byte); ok {
				row[fields[i].Name] = string(b)
			} else {
				row[fields[i].Name] = v
			}
		}
		out = append(out, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, ClassifyQueryError(err, req.Statement, time.Since(start))
	}

	tag := rows.CommandTag()
	command := "UNKNOWN"
	if parts := strings.Fields(tag.String()); len(parts) > 0 {
		command = parts[0]
	}

	rowCount := len(out)
	if rowCount == 0 {
		rowCount = int(tag.RowsAffected())
	}

	result := &base.QueryResult{
		Rows:            out,
		RowCount:        rowCount,
		Command:         command,
		Fields:          fields,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}

	c.log.Debug("", "query executed", map[string]any{
		"command":      command,
		"row_count":    rowCount,
		"execution_ms": result.ExecutionTimeMs,
	})
	return result, nil
}

// Name returns the configured connector name.
func (c *Connector) Name() string {
	if c.config == nil {
		return "postgres"
	}
	return c.config.Name
}

// Type returns the connector type.
func (c *Connector) Type() string {
	return "postgres"
}

// Capabilities returns the supported operations.
func (c *Connector) Capabilities() []string {
	return []string{
		"query",
		"list_tables",
		"describe_table",
		"health_check",
	}
}
