// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pgbridge/server/connectors/base"
)

// configFile is the on-disk layout of the persisted connection settings.
type configFile struct {
	Version    string               `yaml:"version"`
	Connection connectionFileConfig `yaml:"connection"`
}

type connectionFileConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	Database         string `yaml:"database"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	SSL              bool   `yaml:"ssl"`
	ConnectTimeoutMs int    `yaml:"connect_timeout_ms,omitempty"`
	QueryTimeoutMs   int    `yaml:"query_timeout_ms,omitempty"`
}

const fileVersion = "1"

// DefaultPath returns the config file location: PGBRIDGE_CONFIG when set,
// otherwise <user config dir>/pgbridge/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("PGBRIDGE_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "pgbridge", "config.yaml"), nil
}

// LoadFile reads persisted connection settings. A missing file is not an
// error; it returns (nil, nil) and the caller falls back to environment
// variables.
func LoadFile(path string) (*base.ConnectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg := Default()
	cfg.Host = f.Connection.Host
	cfg.Database = f.Connection.Database
	cfg.User = f.Connection.User
	cfg.Password = f.Connection.Password
	cfg.SSL = f.Connection.SSL
	if f.Connection.Port != 0 {
		cfg.Port = f.Connection.Port
	}
	if f.Connection.ConnectTimeoutMs > 0 {
		cfg.ConnectTimeout = time.Duration(f.Connection.ConnectTimeoutMs) * time.Millisecond
	}
	if f.Connection.QueryTimeoutMs > 0 {
		cfg.QueryTimeout = time.Duration(f.Connection.QueryTimeoutMs) * time.Millisecond
	}
	return cfg, nil
}

// SaveFile persists connection settings. The file holds credentials, so it
// is written with owner-only permissions.
func SaveFile(path string, cfg *base.ConnectorConfig) error {
	f := configFile{
		Version: fileVersion,
		Connection: connectionFileConfig{
			Host:             cfg.Host,
			Port:             cfg.Port,
			Database:         cfg.Database,
			User:             cfg.User,
			Password:         cfg.Password,
			SSL:              cfg.SSL,
			ConnectTimeoutMs: int(cfg.ConnectTimeout / time.Millisecond),
			QueryTimeoutMs:   int(cfg.QueryTimeout / time.Millisecond),
		},
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}
