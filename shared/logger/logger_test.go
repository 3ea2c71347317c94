// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"testing"
	"time"
)

// TestNew tests logger initialization
func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		component      string
		instanceID     string
		expectedComp   string
		expectedInstID string
	}{
		{
			name:           "with instance ID set",
			component:      "test-component",
			instanceID:     "instance-123",
			expectedComp:   "test-component",
			expectedInstID: "instance-123",
		},
		{
			name:           "without instance ID",
			component:      "postgres-connector",
			instanceID:     "",
			expectedComp:   "postgres-connector",
			expectedInstID: "standalone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("INSTANCE_ID", tt.instanceID)

			l := New(tt.component)
			if l.Component != tt.expectedComp {
				t.Errorf("Component = %q, want %q", l.Component, tt.expectedComp)
			}
			if l.InstanceID != tt.expectedInstID {
				t.Errorf("InstanceID = %q, want %q", l.InstanceID, tt.expectedInstID)
			}
		})
	}
}

// captureOutput redirects the standard logger while fn runs.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	}()
	fn()
	return buf.String()
}

func TestLog_ProducesValidJSON(t *testing.T) {
	l := New("test")
	out := captureOutput(t, func() {
		l.Info("req-42", "hello", map[string]any{"key": "value"})
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\noutput: %s", err, out)
	}

	if entry.Level != INFO {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.Component != "test" {
		t.Errorf("Component = %q, want test", entry.Component)
	}
	if entry.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want req-42", entry.RequestID)
	}
	if entry.Message != "hello" {
		t.Errorf("Message = %q, want hello", entry.Message)
	}
	if entry.Fields["key"] != "value" {
		t.Errorf("Fields[key] = %v, want value", entry.Fields["key"])
	}

	if _, err := time.Parse(time.RFC3339Nano, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339Nano: %v", entry.Timestamp, err)
	}
}

func TestLog_Levels(t *testing.T) {
	l := New("test")

	tests := []struct {
		level LogLevel
		fn    func()
	}{
		{DEBUG, func() { l.Debug("", "msg", nil) }},
		{INFO, func() { l.Info("", "msg", nil) }},
		{WARN, func() { l.Warn("", "msg", nil) }},
		{ERROR, func() { l.Error("", "msg", nil) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			out := captureOutput(t, tt.fn)
			var entry LogEntry
			if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if entry.Level != tt.level {
				t.Errorf("Level = %q, want %q", entry.Level, tt.level)
			}
		})
	}
}

func TestInfoWithDuration(t *testing.T) {
	l := New("test")
	out := captureOutput(t, func() {
		l.InfoWithDuration("req-1", "query executed", 12.5, nil)
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Fields["duration_ms"] != 12.5 {
		t.Errorf("Fields[duration_ms] = %v, want 12.5", entry.Fields["duration_ms"])
	}
}

func TestErrorWithCause(t *testing.T) {
	l := New("test")
	out := captureOutput(t, func() {
		l.ErrorWithCause("req-1", "query failed", errTest, nil)
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Fields["error"] != "test failure" {
		t.Errorf("Fields[error] = %v, want test failure", entry.Fields["error"])
	}
}

var errTest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "test failure" }
