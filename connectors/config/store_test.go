// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgbridge/server/connectors/base"
)

func validConfig() *base.ConnectorConfig {
	return &base.ConnectorConfig{
		Host:     "localhost",
		Database: "appdb",
		User:     "app",
		Password: "secret",
	}
}

func TestStore_LoadWithoutFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, store.Load())
	assert.False(t, store.IsConfigured())
}

func TestStore_UpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	store := NewStore(path)
	require.NoError(t, store.Update(validConfig()))
	assert.True(t, store.IsConfigured())

	// A fresh store picks up the persisted settings.
	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	assert.True(t, reloaded.IsConfigured())
	assert.Equal(t, "appdb", reloaded.Get().Database)
}

func TestStore_UpdateRejectsIncomplete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	cfg := validConfig()
	cfg.Password = ""
	err := store.Update(cfg)
	require.Error(t, err)
	assert.False(t, store.IsConfigured())
}

func TestStore_UpdateNormalizes(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, store.Update(validConfig()))

	got := store.Get()
	assert.Equal(t, DefaultPort, got.Port)
	assert.Equal(t, DefaultConnectTimeout, got.ConnectTimeout)
	assert.Equal(t, DefaultQueryTimeout, got.QueryTimeout)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, store.Update(validConfig()))

	got := store.Get()
	got.Host = "mutated"
	assert.Equal(t, "localhost", store.Get().Host)
}

func TestStore_LoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)
	require.NoError(t, store.Update(validConfig()))

	t.Setenv("POSTGRES_HOST", "env-host")
	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "env-host", reloaded.Get().Host)
	assert.Equal(t, "appdb", reloaded.Get().Database)
}
