package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/iconrules/pkg/filesystem"
	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a file tree root plus redirected config and state
// directories
type TestEnvironment struct {
	// Root is where WithFileTree builds. It is "/root" in memory.
	Root      string
	ConfigDir string
	StateDir  string

	FS   afero.Fs
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Environment variables
// are restored when the test ends.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:         t,
		Type:      envType,
		ConfigDir: t.TempDir(),
		StateDir:  t.TempDir(),
	}
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv("NO_COLOR", "1")

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.Root = "/root"
		if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
			t.Fatalf("Failed to create root: %v", err)
		}
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.Root = t.TempDir()
	default:
		t.Fatalf("Unknown environment type: %d", envType)
	}
	return env
}

// Path joins elem onto the environment root
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Root}, elem...)...)
}

// FileTree represents a directory structure for testing. A string value is
// a file with that content, a nested FileTree is a directory and a Symlink
// is a link.
type FileTree map[string]interface{}

// Symlink is a FileTree entry for a symbolic link to Target
type Symlink struct {
	Target string
}

// WithFileTree creates a complete file tree structure under Root
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Root, tree)
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := afero.WriteFile(fs, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		case Symlink:
			linker, ok := fs.(afero.Linker)
			if !ok {
				t.Fatalf("Filesystem %s cannot create symlink %s", fs.Name(), fullPath)
			}
			if err := linker.SymlinkIfPossible(v.Target, fullPath); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// WriteTheme writes content as theme.toml in the config directory, where
// the loader finds it without --config, and returns its path
func (env *TestEnvironment) WriteTheme(content string) string {
	env.t.Helper()
	p := filepath.Join(env.ConfigDir, paths.ThemeFileTOML)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write theme %s: %v", p, err)
	}
	return p
}

// Chdir makes Root the working directory until the test ends. Only
// isolated environments have a real directory to enter.
func (env *TestEnvironment) Chdir() {
	env.t.Helper()
	if env.Type != EnvIsolated {
		env.t.Fatalf("Chdir needs an isolated environment")
	}
	prev, err := os.Getwd()
	if err != nil {
		env.t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(env.Root); err != nil {
		env.t.Fatalf("Failed to enter %s: %v", env.Root, err)
	}
	env.t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			env.t.Errorf("Failed to restore working directory %s: %v", prev, err)
		}
	})
}
