package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// WriteFile writes Text followed by Lines, one per line, to Path.
// With Append the content is added to the end of the existing file.
type WriteFile struct {
	FS     types.FS
	Path   string
	Text   string
	Lines  []string
	Append bool
}

// Description implements types.Task.
func (t *WriteFile) Description() string {
	if t.Append {
		return "Append to " + t.Path
	}
	return "Write " + t.Path
}

// Run implements types.Task.
func (t *WriteFile) Run(ctx context.Context) error {
	fsys := fsOrDefault(t.FS)

	var b strings.Builder
	perm := fs.FileMode(0644)
	if info, err := fsys.Stat(t.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if t.Append {
		existing, err := filesystem.ReadFileOrEmpty(fsys, t.Path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", t.Path).
				WithDetail("path", t.Path)
		}
		b.Write(existing)
	}
	b.WriteString(t.Text)
	for _, line := range t.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := fsys.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", t.Path).
			WithDetail("path", t.Path)
	}
	if err := fsys.WriteFile(t.Path, []byte(b.String()), perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", t.Path).
			WithDetail("path", t.Path)
	}
	return nil
}

// Copy copies a file. An existing destination is kept unless Overwrite is set.
type Copy struct {
	FS        types.FS
	From      string
	To        string
	Overwrite bool
}

// Description implements types.Task.
func (t *Copy) Description() string {
	return fmt.Sprintf("Copy %s to %s", t.From, t.To)
}

// Run implements types.Task.
func (t *Copy) Run(ctx context.Context) error {
	fsys := fsOrDefault(t.FS)

	if !t.Overwrite && filesystem.Exists(fsys, t.To) {
		return nil
	}

	info, err := fsys.Stat(t.From)
	if err != nil {
		if isNotExist(err) {
			return errors.Newf(errors.ErrFileNotFound, "cannot copy %s: file not found", t.From).
				WithDetail("path", t.From)
		}
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to stat %s", t.From).
			WithDetail("path", t.From)
	}
	data, err := fsys.ReadFile(t.From)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", t.From).
			WithDetail("path", t.From)
	}
	if err := fsys.MkdirAll(filepath.Dir(t.To), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", t.To).
			WithDetail("path", t.To)
	}
	if err := fsys.WriteFile(t.To, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", t.From, t.To).
			WithDetail("from", t.From).
			WithDetail("to", t.To)
	}
	return nil
}

// Chmod changes permissions to Mode &^ Umask, walking directories when
// Recursive is set.
type Chmod struct {
	FS        types.FS
	Path      string
	Mode      fs.FileMode
	Umask     fs.FileMode
	Recursive bool
}

// Description implements types.Task.
func (t *Chmod) Description() string {
	return fmt.Sprintf("Change permissions of %s to %04o", t.Path, t.Mode&^t.Umask)
}

// Run implements types.Task.
func (t *Chmod) Run(ctx context.Context) error {
	fsys := fsOrDefault(t.FS)
	mode := t.Mode &^ t.Umask

	chmod := func(path string, info fs.FileInfo) error {
		if info.Mode()&fs.ModeSymlink != 0 {
			return nil
		}
		if err := fsys.Chmod(path, mode); err != nil {
			return errors.Wrapf(err, errors.ErrPermission, "failed to change permissions of %s", path).
				WithDetail("path", path)
		}
		return nil
	}

	if !t.Recursive {
		info, err := fsys.Stat(t.Path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrPermission, "failed to stat %s", t.Path).
				WithDetail("path", t.Path)
		}
		return chmod(t.Path, info)
	}

	err := fsys.Walk(t.Path, chmod)
	if err != nil && !errors.IsErrorCode(err, errors.ErrPermission) {
		return errors.Wrapf(err, errors.ErrPermission, "failed to walk %s", t.Path).
			WithDetail("path", t.Path)
	}
	return err
}

// Mkdir creates a directory and its parents.
type Mkdir struct {
	FS   types.FS
	Path string
	Mode fs.FileMode
}

// Description implements types.Task.
func (t *Mkdir) Description() string {
	return "Create directory " + t.Path
}

// Run implements types.Task.
func (t *Mkdir) Run(ctx context.Context) error {
	mode := t.Mode
	if mode == 0 {
		mode = 0755
	}
	if err := fsOrDefault(t.FS).MkdirAll(t.Path, mode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", t.Path).
			WithDetail("path", t.Path)
	}
	return nil
}

// Symlink creates To pointing at From, replacing an existing link or file.
type Symlink struct {
	FS   types.FS
	From string
	To   string
}

// Description implements types.Task.
func (t *Symlink) Description() string {
	return fmt.Sprintf("Symlink %s to %s", t.To, t.From)
}

// Run implements types.Task.
func (t *Symlink) Run(ctx context.Context) error {
	fsys := fsOrDefault(t.FS)

	if info, err := fsys.Lstat(t.To); err == nil {
		if info.IsDir() {
			return errors.Newf(errors.ErrSymlinkCreate, "cannot replace directory %s with a symlink", t.To).
				WithDetail("path", t.To)
		}
		if err := fsys.Remove(t.To); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove existing %s", t.To).
				WithDetail("path", t.To)
		}
	}
	if err := fsys.MkdirAll(filepath.Dir(t.To), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", t.To).
			WithDetail("path", t.To)
	}
	if err := fsys.Symlink(t.From, t.To); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s", t.To).
			WithDetail("from", t.From).
			WithDetail("to", t.To)
	}
	return nil
}

// Expander resolves ${a.b} configuration tokens in text.
type Expander interface {
	Expand(text string) string
}

// Process copies Source to Destination replacing configuration tokens.
type Process struct {
	FS          types.FS
	Source      string
	Destination string
	Expander    Expander
}

// Description implements types.Task.
func (t *Process) Description() string {
	return fmt.Sprintf("Process %s into %s", t.Source, t.Destination)
}

// Run implements types.Task.
func (t *Process) Run(ctx context.Context) error {
	fsys := fsOrDefault(t.FS)

	data, err := fsys.ReadFile(t.Source)
	if err != nil {
		if isNotExist(err) {
			return errors.Newf(errors.ErrFileNotFound, "cannot process %s: file not found", t.Source).
				WithDetail("path", t.Source)
		}
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", t.Source).
			WithDetail("path", t.Source)
	}

	content := string(data)
	if t.Expander != nil {
		content = t.Expander.Expand(content)
	}

	if err := fsys.MkdirAll(filepath.Dir(t.Destination), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", t.Destination).
			WithDetail("path", t.Destination)
	}
	if err := fsys.WriteFile(t.Destination, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", t.Destination).
			WithDetail("path", t.Destination)
	}
	return nil
}
