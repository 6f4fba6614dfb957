// log/log_test.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWriter(&buf, "warn")

	lg.Debug("debug message")
	lg.Infof("info %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug/info records written at warn level: %s", buf.String())
	}

	lg.Warnf("warning %d", 2)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %s", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record isn't JSON: %v", err)
	}
	if rec["msg"] != "warning 2" {
		t.Errorf("got msg %v", rec["msg"])
	}
	if _, ok := rec["callstack"]; !ok {
		t.Errorf("record has no callstack: %v", rec)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWriter(&buf, "debug").With(slog.String("airport", "KJFK"))
	lg.Info("hello")
	if !strings.Contains(buf.String(), `"airport":"KJFK"`) {
		t.Errorf("attribute missing from record: %s", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var lg *Logger
	// None of these should panic.
	lg.Debug("x")
	lg.Debugf("x %d", 1)
	lg.Info("x")
	lg.Infof("x %d", 1)
	if lg.With("a", 1) != nil {
		t.Errorf("With on nil Logger returned non-nil")
	}
}

func TestParseLevel(t *testing.T) {
	for str, lvl := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		if l := ParseLevel(str); l != lvl {
			t.Errorf("%q: got %v, expected %v", str, l, lvl)
		}
	}
}

func TestCallstack(t *testing.T) {
	fr := func() []StackFrame { return Callstack(nil) }()
	if len(fr) == 0 {
		t.Fatalf("empty callstack")
	}
	if fr[0].File != "log_test.go" {
		t.Errorf("got top frame %s", fr[0])
	}
}
