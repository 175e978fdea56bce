package types

import (
	"io/fs"
)

// FS is the filesystem used by drupalctl tasks and commands
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Remove(name string) error

	// Writable reports whether the current process may write to name.
	// A missing name is an error.
	Writable(name string) (bool, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Walk calls fn for root and everything below it, in lexical order.
	// Symlinks are reported, not followed.
	Walk(root string, fn func(path string, info fs.FileInfo) error) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}
