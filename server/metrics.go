// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgbridge_tool_invocations_total",
			Help: "Total number of tool invocations, by tool and outcome",
		},
		[]string{"tool", "status"},
	)
	promToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pgbridge_tool_duration_milliseconds",
			Help:    "Tool invocation duration in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(promToolInvocations)
	prometheus.MustRegister(promToolDuration)
}

// observeTool records one finished invocation.
func observeTool(tool string, start time.Time, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	promToolInvocations.WithLabelValues(tool, status).Inc()
	promToolDuration.WithLabelValues(tool).Observe(float64(time.Since(start).Milliseconds()))
}
