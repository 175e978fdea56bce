package tasks

import (
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/arthur-debert/drupalctl/pkg/phpblock"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Source is the configuration hook tasks read from.
type Source interface {
	Tree() *ordered.Map
	Expand(text string) string
}

// Factory builds tasks from configuration entries such as drupal.pre_install.
type Factory struct {
	FS     types.FS
	Source Source
	Locker *PathLocker

	// Dir, Stdout and Stderr apply to shell commands.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Collection builds a collection from a list of entries. A nil value is an
// empty list.
func (f *Factory) Collection(name string, value any) (*Collection, error) {
	collection := NewCollection(name)
	if value == nil {
		return collection, nil
	}
	entries, ok := value.([]any)
	if !ok {
		return nil, errors.Newf(errors.ErrTaskInvalid, "%s must be a list of tasks, got %T", name, value).
			WithDetail("collection", name)
	}
	for i, entry := range entries {
		task, err := f.FromConfig(entry)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.WithDetail("collection", name).WithDetail("index", i)
			}
			return nil, err
		}
		collection.Add(task)
	}
	return collection, nil
}

// FromConfig builds one task. A string is a shell command; a mapping names
// its task type under "task".
func (f *Factory) FromConfig(value any) (types.Task, error) {
	switch v := value.(type) {
	case string:
		return f.shell(v), nil
	case *ordered.Map:
		return f.fromMap(v)
	default:
		return nil, errors.Newf(errors.ErrTaskInvalid, "task must be a command string or a mapping, got %T", value)
	}
}

func (f *Factory) fromMap(m *ordered.Map) (types.Task, error) {
	args := taskArgs{m: m}
	name := args.str("task")
	if name == "" {
		return nil, errors.New(errors.ErrTaskInvalid, "task mapping has no \"task\" key")
	}

	var task types.Task
	switch name {
	case "exec", "run":
		task = f.shell(args.required("command"))
	case "mkdir":
		task = &Mkdir{FS: f.FS, Path: args.required("dir"), Mode: args.mode("mode", 0755)}
	case "copy":
		task = &Copy{FS: f.FS, From: args.required("from"), To: args.required("to"), Overwrite: args.boolean("force")}
	case "symlink":
		task = &Symlink{FS: f.FS, From: args.required("from"), To: args.required("to")}
	case "process":
		task = &Process{FS: f.FS, Source: args.required("source"), Destination: args.required("destination"), Expander: f.Source}
	case "write":
		task = &WriteFile{FS: f.FS, Path: args.required("file"), Text: args.str("text")}
	case "append":
		task = &WriteFile{FS: f.FS, Path: args.required("file"), Text: args.str("text"), Append: true}
	case "chmod":
		task = &Chmod{
			FS:        f.FS,
			Path:      args.required("file"),
			Mode:      args.requiredMode("permissions"),
			Umask:     args.mode("umask", 0),
			Recursive: args.boolean("recursive"),
		}
	case phpblock.ModeWrite.TaskName(), phpblock.ModePrepend.TaskName(), phpblock.ModeAppend.TaskName():
		mode, err := phpblock.ParseMode(name)
		if err != nil {
			return nil, err
		}
		task = &WritePHP{
			FS:        f.FS,
			Path:      args.required("file"),
			Source:    f.tree(),
			ConfigKey: args.required("config"),
			Labels:    phpblock.Labels{Start: args.str("blockStart"), End: args.str("blockEnd")},
			Mode:      mode,
			Locker:    f.Locker,
		}
	default:
		return nil, errors.Newf(errors.ErrTaskInvalid, "unknown task %q", name).
			WithDetail("task", name)
	}

	if args.err != nil {
		return nil, args.err.WithDetail("task", name)
	}
	return task, nil
}

func (f *Factory) shell(command string) *Shell {
	return &Shell{Command: command, Dir: f.Dir, Stdout: f.Stdout, Stderr: f.Stderr}
}

func (f *Factory) tree() *ordered.Map {
	if f.Source == nil {
		return ordered.New()
	}
	return f.Source.Tree()
}

// taskArgs reads task arguments, remembering the first problem.
type taskArgs struct {
	m   *ordered.Map
	err *errors.Error
}

func (a *taskArgs) str(key string) string {
	v, ok := a.m.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool, int64, float64:
		return fmt.Sprint(t)
	default:
		a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q must be a scalar, got %T", key, v).
			WithDetail("argument", key))
		return ""
	}
}

func (a *taskArgs) required(key string) string {
	s := a.str(key)
	if s == "" {
		a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q is required", key).
			WithDetail("argument", key))
	}
	return s
}

func (a *taskArgs) boolean(key string) bool {
	v, ok := a.m.Get(key)
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q must be a boolean", key).
				WithDetail("argument", key))
		}
		return b
	default:
		a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q must be a boolean, got %T", key, v).
			WithDetail("argument", key))
		return false
	}
}

// mode reads a permission. Integers are taken as is (YAML reads 0775 as
// octal); strings are parsed as octal.
func (a *taskArgs) mode(key string, fallback fs.FileMode) fs.FileMode {
	v, ok := a.m.Get(key)
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case int64:
		if t >= 0 && t <= 07777 {
			return fs.FileMode(t)
		}
	case string:
		if n, err := strconv.ParseUint(t, 8, 32); err == nil && n <= 07777 {
			return fs.FileMode(n)
		}
	}
	a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q is not a valid permission: %v", key, v).
		WithDetail("argument", key))
	return fallback
}

func (a *taskArgs) requiredMode(key string) fs.FileMode {
	if !a.m.Has(key) {
		a.fail(errors.Newf(errors.ErrTaskInvalid, "task argument %q is required", key).
			WithDetail("argument", key))
		return 0
	}
	return a.mode(key, 0)
}

func (a *taskArgs) fail(err *errors.Error) {
	if a.err == nil {
		a.err = err
	}
}
