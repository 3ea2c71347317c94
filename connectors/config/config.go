// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"pgbridge/server/connectors/base"
)

// Defaults applied when neither the config file nor the environment says
// otherwise.
const (
	DefaultPort           = 5432
	DefaultConnectTimeout = 10 * time.Second
	DefaultQueryTimeout   = 30 * time.Second
)

// Default returns a connection descriptor with defaults filled in and no
// endpoint configured.
func Default() *base.ConnectorConfig {
	return &base.ConnectorConfig{
		Name:           "postgres",
		Type:           "postgres",
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
		QueryTimeout:   DefaultQueryTimeout,
	}
}

// LoadFromEnv overlays POSTGRES_* environment variables onto cfg. Unset
// variables leave the existing values untouched, so file-sourced settings
// survive unless explicitly overridden.
func LoadFromEnv(cfg *base.ConnectorConfig) error {
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("POSTGRES_DATABASE"); v != "" {
		cfg.Database = v
	} else if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("POSTGRES_SSL"); v != "" {
		ssl, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid POSTGRES_SSL %q: %w", v, err)
		}
		cfg.SSL = ssl
	}
	if v := os.Getenv("POSTGRES_CONNECT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POSTGRES_CONNECT_TIMEOUT %q: %w", v, err)
		}
		cfg.ConnectTimeout = d
	}
	if v := os.Getenv("POSTGRES_QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POSTGRES_QUERY_TIMEOUT %q: %w", v, err)
		}
		cfg.QueryTimeout = d
	}
	return nil
}

// IsConfigured reports whether the descriptor carries everything a
// connection attempt needs. Callers check this before opening anything, so
// a missing configuration fails fast instead of waiting out a dial timeout.
func IsConfigured(cfg *base.ConnectorConfig) bool {
	return cfg != nil &&
		cfg.Host != "" &&
		cfg.Database != "" &&
		cfg.User != "" &&
		cfg.Password != ""
}

// Normalize fills zero-valued fields with defaults and validates ranges.
func Normalize(cfg *base.ConnectorConfig) error {
	if cfg.Name == "" {
		cfg.Name = "postgres"
	}
	if cfg.Type == "" {
		cfg.Type = "postgres"
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	return nil
}
