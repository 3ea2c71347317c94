// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sync"

	"pgbridge/server/connectors/base"
	"pgbridge/server/shared/logger"
)

// Store holds the current connection settings and keeps them in sync with
// the config file. Safe for concurrent use; tool invocations read while the
// configure tool may write.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  *base.ConnectorConfig
	log  *logger.Logger
}

// NewStore creates a store persisting to the given path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		cfg:  Default(),
		log:  logger.New("config-store"),
	}
}

// Load populates the store from the config file when present, then overlays
// environment variables on top.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = Default()
	}
	if err := LoadFromEnv(cfg); err != nil {
		return err
	}
	if err := Normalize(cfg); err != nil {
		return err
	}

	s.cfg = cfg
	s.log.Debug("", "configuration loaded", map[string]any{
		"path":       s.path,
		"configured": IsConfigured(cfg),
	})
	return nil
}

// Get returns a copy of the current settings. Callers may not mutate shared
// state through it.
func (s *Store) Get() *base.ConnectorConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := *s.cfg
	return &cp
}

// IsConfigured reports whether a connection attempt can proceed.
func (s *Store) IsConfigured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return IsConfigured(s.cfg)
}

// Update validates, applies and persists new connection settings.
func (s *Store) Update(cfg *base.ConnectorConfig) error {
	if err := Normalize(cfg); err != nil {
		return err
	}
	if !IsConfigured(cfg) {
		return fmt.Errorf("incomplete connection settings: host, database, user and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *cfg
	s.cfg = &cp
	if err := SaveFile(s.path, s.cfg); err != nil {
		return fmt.Errorf("settings applied but not persisted: %w", err)
	}

	s.log.Info("", "connection settings updated", map[string]any{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Database,
		"user":     cfg.User,
	})
	return nil
}
