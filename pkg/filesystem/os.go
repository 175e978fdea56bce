package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/drupalctl/pkg/types"
)

// osFS is the filesystem of real runs. Paths are used as given, so relative
// paths resolve against the directory chosen with --working-dir.
type osFS struct{}

// NewOS returns the OS filesystem
func NewOS() types.FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (osFS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }
func (osFS) Remove(name string) error               { return os.Remove(name) }

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFS) Readlink(name string) (string, error)       { return os.Readlink(name) }
func (osFS) Symlink(oldname, newname string) error      { return os.Symlink(oldname, newname) }

// WriteFile replaces name in one write. perm only applies to new files;
// existing settings files keep the mode permissions-setup gave them.
func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Writable asks the kernel whether the effective user may write to name,
// so ACLs, read-only mounts and root are taken into account.
func (osFS) Writable(name string) (bool, error) {
	if _, err := os.Stat(name); err != nil {
		return false, err
	}
	return accessWritable(name)
}

func (osFS) Walk(root string, fn func(path string, info fs.FileInfo) error) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		return fn(path, info)
	})
}
