//go:build unix

package filesystem

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

func accessWritable(name string) (bool, error) {
	err := unix.Access(name, unix.W_OK)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EROFS), errors.Is(err, unix.EPERM):
		return false, nil
	default:
		return false, &fs.PathError{Op: "access", Path: name, Err: err}
	}
}
