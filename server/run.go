// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"pgbridge/server/connectors/config"
	"pgbridge/server/shared/logger"
)

// Run is the entry point for the pgbridge binary. It loads persisted
// connection settings, registers the tools and serves MCP over the selected
// transport until the process is signalled.
//
// MCP_TRANSPORT selects the transport: "stdio" (default) or "http". HTTP mode
// additionally exposes /healthz and Prometheus metrics on /metrics.
func Run() error {
	log := logger.New("pgbridge")

	path, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	store := config.NewStore(path)
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := New(store)

	switch os.Getenv("MCP_TRANSPORT") {
	case "", "stdio":
		log.Info("", "starting stdio transport", map[string]any{
			"version":    Version,
			"configured": store.IsConfigured(),
		})
		return srv.MCPServer().Run(ctx, &mcp.StdioTransport{})
	case "http":
		return runHTTP(ctx, srv, log)
	default:
		return fmt.Errorf("unsupported MCP_TRANSPORT %q (want stdio or http)", os.Getenv("MCP_TRANSPORT"))
	}
}

func runHTTP(ctx context.Context, srv *Server, log *logger.Logger) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthzHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.Handle("/mcp", mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return srv.MCPServer() },
		nil,
	))

	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("", "starting http transport", map[string]any{
			"version": Version,
			"port":    port,
		})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("", "shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"service":   "pgbridge",
		"version":   Version,
		"timestamp": time.Now().UTC(),
	})
}
