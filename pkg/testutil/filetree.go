package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/arthur-debert/drupalctl/pkg/types"
	"github.com/spf13/afero"
)

// FileTree represents a directory structure for testing. Values are file
// contents (string) or nested directories (FileTree).
type FileTree map[string]interface{}

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// MemoryFS returns an in-memory filesystem holding tree under "/".
func MemoryFS(t *testing.T, tree FileTree) types.FS {
	t.Helper()
	fsys := NewMemoryFS()
	CreateFileTree(t, fsys, "/", tree)
	return fsys
}

// ProjectDir writes tree into a fresh temporary directory and returns it.
func ProjectDir(t *testing.T, tree FileTree) string {
	t.Helper()
	dir := t.TempDir()
	CreateFileTree(t, filesystem.NewOS(), dir, tree)
	return dir
}

// CreateFileTree recursively creates a file tree. File names may contain
// slashes; parent directories are created as needed.
func CreateFileTree(t *testing.T, fsys types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fsys.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fsys.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fsys, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ReadString returns the content of path, failing the test if it cannot be read.
func ReadString(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// ReadFile reads a file from the real filesystem.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// YAMLTree parses src into an ordered tree.
func YAMLTree(t *testing.T, src string) *ordered.Map {
	t.Helper()
	tree, err := ordered.FromYAML([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	return tree
}
