package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// mockLogger implements Logger interface for testing.
type mockLogger struct {
	debugCalls []string
	infoCalls  []string
	warnCalls  []string
	errorCalls []string
}

func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.debugCalls = append(m.debugCalls, msg)
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.infoCalls = append(m.infoCalls, msg)
}

func (m *mockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.warnCalls = append(m.warnCalls, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.errorCalls = append(m.errorCalls, msg)
}

func TestNew(t *testing.T) {
	d := New("/path", &mockLogger{})
	if d == nil {
		t.Error("New() returned nil")
	}
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test structure:
	// tmpDir/
	//   work/
	//   math/notes/
	//   .hidden/          (ignored)
	//   config.yaml       (ignored)
	//   sessions.csv      (ignored)
	for _, dir := range []string{"work", filepath.Join("math", "notes"), ".hidden"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0700); err != nil {
			t.Fatal(err)
		}
	}
	createFile(t, filepath.Join(tmpDir, "config.yaml"), "areas: []\n")
	createFile(t, filepath.Join(tmpDir, "sessions.csv"), "area,start,end\n")

	d := New(tmpDir, &mockLogger{})

	names, err := d.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"math", "work"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Discover() = %v, want %v", names, want)
	}

	dirs, err := d.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("Scan() returned %d dirs, want 2", len(dirs))
	}
	if dirs[0].Path != filepath.Join(tmpDir, "math") {
		t.Errorf("dirs[0].Path = %s", dirs[0].Path)
	}
	if dirs[0].ModTime.IsZero() {
		t.Error("dirs[0].ModTime is zero")
	}
}

func TestDiscoverMissingBaseDir(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing"), &mockLogger{})

	names, err := d.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Discover() = %v, want empty", names)
	}
}

func TestDiscoverBaseDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	createFile(t, path, "x")

	if _, err := New(path, &mockLogger{}).Discover(); err == nil {
		t.Error("Discover() on a file returned nil error")
	}
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde only", "~", homeDir},
		{"tilde with path", "~/.iceland", filepath.Join(homeDir, ".iceland")},
		{"absolute path", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"other user", "~bob/x", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.want {
				t.Errorf("ExpandHome(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// createFile creates a file with given content for testing.
func createFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create file %s: %v", path, err)
	}
}
