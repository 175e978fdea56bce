package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/arthur-debert/drupalctl/pkg/phpblock"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// WritePHP renders the settings block for ConfigKey and places it in Path.
type WritePHP struct {
	FS        types.FS
	Path      string
	Source    *ordered.Map
	ConfigKey string
	Labels    phpblock.Labels
	Mode      phpblock.Mode

	// Locker defaults to DefaultLocker.
	Locker *PathLocker
}

// Description implements types.Task.
func (t *WritePHP) Description() string {
	return fmt.Sprintf("%s %s settings to %s", capitalize(t.Mode.String()), t.ConfigKey, t.Path)
}

// Run implements types.Task. The block is rendered before the file is
// touched, so a rendering error leaves the file as it was.
func (t *WritePHP) Run(ctx context.Context) error {
	logger := logging.GetLogger("tasks.php")

	block, err := phpblock.Render(t.Source, t.ConfigKey, t.Labels)
	if err != nil {
		return err
	}

	locker := t.Locker
	if locker == nil {
		locker = DefaultLocker
	}
	unlock := locker.Lock(t.Path)
	defer unlock()

	fsys := fsOrDefault(t.FS)
	perm := fs.FileMode(0644)
	var original []byte
	if info, err := fsys.Stat(t.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if t.Mode != phpblock.ModeWrite {
		original, err = filesystem.ReadFileOrEmpty(fsys, t.Path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", t.Path).
				WithDetail("path", t.Path)
		}
	}

	content, err := phpblock.Merge(string(original), block, t.Mode, t.Labels)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", t.Path).
			WithDetail("path", t.Path)
	}
	if err := fsys.WriteFile(t.Path, []byte(content), perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", t.Path).
			WithDetail("path", t.Path)
	}

	logger.Debug().
		Str("path", t.Path).
		Str("key", t.ConfigKey).
		Str("mode", t.Mode.String()).
		Str("checksum", block.Checksum()).
		Msg("Wrote settings block")
	return nil
}

func fsOrDefault(fsys types.FS) types.FS {
	if fsys == nil {
		return filesystem.NewOS()
	}
	return fsys
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}
