//go:build !unix

package filesystem

import "os"

// Without access(2) only the owner write bit is checked.
func accessWritable(name string) (bool, error) {
	info, err := os.Stat(name)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0200 != 0, nil
}
