package filesystem

import (
	"os"

	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Exists reports whether path exists. Errors other than "not exist" count as
// existing so callers surface them on the next operation.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// ReadFileOrEmpty returns the content of path, or nil when it does not exist.
func ReadFileOrEmpty(fsys types.FS, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
