package testutil

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/arthur-debert/rebatch/pkg/filesystem"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a source and a destination directory
type TestEnvironment struct {
	SourceDir string
	DestDir   string
	FS        types.FS
	Type      EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment with empty source and
// destination directories
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemoryFS()
		env.SourceDir = "/virtual/source"
		env.DestDir = "/virtual/dest"
	case EnvIsolated:
		root := t.TempDir()
		env.FS = filesystem.NewOS()
		env.SourceDir = filepath.Join(root, "source")
		env.DestDir = filepath.Join(root, "dest")
	}

	for _, dir := range []string{env.SourceDir, env.DestDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// WriteFile writes content to dir/name, creating or truncating it
func (env *TestEnvironment) WriteFile(dir, name, content string) string {
	env.t.Helper()

	path := filepath.Join(dir, name)
	f, err := env.FS.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		env.t.Fatalf("Failed to create %s: %v", path, err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		env.t.Fatalf("Failed to close %s: %v", path, err)
	}
	return path
}

// WriteFiles writes every name -> content pair into dir
func (env *TestEnvironment) WriteFiles(dir string, files map[string]string) {
	env.t.Helper()
	for name, content := range files {
		env.WriteFile(dir, name, content)
	}
}

// Touch sets the modification time of a file
func (env *TestEnvironment) Touch(path string, mtime time.Time) {
	env.t.Helper()
	if err := env.FS.Chtimes(path, mtime, mtime); err != nil {
		env.t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// ReadFile returns the content of a file, failing the test when it is missing
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()

	f, err := env.FS.Open(path)
	if err != nil {
		env.t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether something is present at path
func (env *TestEnvironment) Exists(path string) bool {
	env.t.Helper()

	ok, err := filesystem.Exists(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to probe %s: %v", path, err)
	}
	return ok
}

// ListNames returns the sorted names inside dir
func (env *TestEnvironment) ListNames(dir string) []string {
	env.t.Helper()

	entries, err := env.FS.ReadDir(dir)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
