package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/keeper/pkg/filesystem"
	"github.com/arthur-debert/keeper/pkg/paths"
	"github.com/arthur-debert/keeper/pkg/store"
	"github.com/arthur-debert/keeper/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem and XDG directories in a temp directory
)

// TestEnvironment provides a data root, a filesystem and, for isolated
// environments, private XDG and KEEPER_ variables.
type TestEnvironment struct {
	// Core paths
	DataDir   string
	ConfigDir string
	StateDir  string

	// Core dependencies
	FS       types.FS
	Resolver paths.Resolver

	// Environment type
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	env.Resolver = paths.Static(env.DataDir)
	return env
}

// setupMemoryEnvironment configures a pure in-memory environment
func (env *TestEnvironment) setupMemoryEnvironment() {
	env.DataDir = "/virtual/data"
	env.ConfigDir = "/virtual/config"
	env.StateDir = "/virtual/state"
	env.FS = filesystem.NewMemory()
}

// setupIsolatedEnvironment configures a real filesystem in a temp directory
// and points the XDG base directories at it. xdg caches the environment, so
// it is reloaded now and again after t.Setenv restores the variables.
func (env *TestEnvironment) setupIsolatedEnvironment() {
	tempDir := env.t.TempDir()

	env.DataDir = filepath.Join(tempDir, "data")
	env.ConfigDir = filepath.Join(tempDir, "config")
	env.StateDir = filepath.Join(tempDir, "state")
	env.FS = filesystem.NewOS()

	env.t.Cleanup(xdg.Reload)
	env.t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	env.t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "xdg-data"))
	env.t.Setenv("XDG_STATE_HOME", env.StateDir)
	env.t.Setenv(paths.EnvConfigFile, "")
	env.t.Setenv(paths.EnvDataDir, "")
	env.t.Setenv("KEEPER_CODEC", "")
	xdg.Reload()
}

// StoreOptions returns the options that bind a store to this environment.
func (env *TestEnvironment) StoreOptions() []store.Option {
	return []store.Option{store.WithFS(env.FS), store.WithResolver(env.Resolver)}
}

// StoreFile returns the backing file of a relative store path.
func (env *TestEnvironment) StoreFile(storePath string) string {
	return filepath.Join(env.DataDir, storePath)
}

// ReadStore returns the content of a store's backing file.
func (env *TestEnvironment) ReadStore(storePath string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.StoreFile(storePath))
	if err != nil {
		env.t.Fatalf("Failed to read store %s: %v", storePath, err)
	}
	return string(data)
}

// WithFileTree creates a file tree under the data directory
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.DataDir, tree)
}

// WriteConfig writes the default configuration file. Configuration is read
// from the real disk, so this needs an isolated environment.
func (env *TestEnvironment) WriteConfig(content string) string {
	env.t.Helper()
	if env.Type != EnvIsolated {
		env.t.Fatalf("WriteConfig needs an isolated environment")
	}
	path := filepath.Join(env.ConfigDir, paths.AppDirName, paths.ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			// It's a directory
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
