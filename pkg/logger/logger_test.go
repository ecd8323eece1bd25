package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{"debug", "debug", "DEBUG"},
		{"info", "info", "INFO"},
		{"warn", "warn", "WARN"},
		{"warning", "warning", "WARN"},
		{"error", "error", "ERROR"},
		{"unknown", "unknown", "WARN"},
		{"empty", "", "WARN"},
		{"uppercase", "DEBUG", "DEBUG"},
		{"mixedcase", "ErRoR", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := parseLevel(tt.level)
			if level.String() != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, level, tt.want)
			}
		})
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false, want true", level)
		}
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true, want false")
	}

	if !ValidFormat("json") || !ValidFormat("TEXT") {
		t.Error("ValidFormat rejected a supported format")
	}
	if ValidFormat("yaml") {
		t.Error("ValidFormat(yaml) = true, want false")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "text", Writer: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	content := buf.String()
	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Errorf("messages below warn were not filtered: %q", content)
	}
	if !strings.Contains(content, "warn message") || !strings.Contains(content, "error message") {
		t.Errorf("warn/error messages missing: %q", content)
	}
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Writer: &buf}).With("component", "ledger")

	log.Info("row skipped", "line", 3)

	content := buf.String()
	for _, want := range []string{"component=ledger", "line=3", "row skipped"} {
		if !strings.Contains(content, want) {
			t.Errorf("output %q missing %q", content, want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Writer: &buf})

	log.Warn("switch interrupted", "area", "math", "count", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v", err)
	}
	if entry["msg"] != "switch interrupted" {
		t.Errorf("msg = %v, want switch interrupted", entry["msg"])
	}
	if entry["area"] != "math" {
		t.Errorf("area = %v, want math", entry["area"])
	}
	if count, ok := entry["count"].(float64); !ok || count != 2 {
		t.Errorf("count = %v, want 2", entry["count"])
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "iceland.log")

	log := New(Config{Level: "info", Output: logFile})
	log.Info("message 1")
	log.Error("error message")

	data, err := os.ReadFile(logFile) // nolint:gosec
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "message 1") || !strings.Contains(string(data), "error message") {
		t.Errorf("log file content = %q", data)
	}
}

func TestGetWriter(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "", "STDOUT"} {
		w, err := getWriter(output)
		if err != nil || w == nil {
			t.Errorf("getWriter(%q) = %v, %v", output, w, err)
		}
	}

	if _, err := getWriter(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("getWriter() for an unopenable path returned nil error")
	}
}

func TestNoop(t *testing.T) {
	log := Noop()
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.With("k", "v").Info("still discarded")
}

func BenchmarkLogWithFields(b *testing.B) {
	log := Noop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message", "area", "work", "seconds", 42)
	}
}
