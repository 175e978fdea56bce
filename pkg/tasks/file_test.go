package tasks_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/tasks"
	"github.com/arthur-debert/drupalctl/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	fsys := testutil.NewMemoryFS()

	write := &tasks.WriteFile{FS: fsys, Path: "/drush/drush.yml", Text: "options:\n  uri: http://localhost\n"}
	require.NoError(t, write.Run(context.Background()))
	assert.Equal(t, "options:\n  uri: http://localhost\n", testutil.ReadString(t, fsys, "/drush/drush.yml"))
	assert.Equal(t, "Write /drush/drush.yml", write.Description())

	appendLines := &tasks.WriteFile{FS: fsys, Path: "/drush/drush.yml", Lines: []string{"# one", "# two"}, Append: true}
	require.NoError(t, appendLines.Run(context.Background()))
	assert.Equal(t, "options:\n  uri: http://localhost\n# one\n# two\n", testutil.ReadString(t, fsys, "/drush/drush.yml"))
	assert.Equal(t, "Append to /drush/drush.yml", appendLines.Description())
}

func TestWriteFileAppendToMissingFile(t *testing.T) {
	fsys := testutil.NewMemoryFS()

	task := &tasks.WriteFile{FS: fsys, Path: "/new.txt", Text: "hello\n", Append: true}
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, "hello\n", testutil.ReadString(t, fsys, "/new.txt"))
}

func TestCopy(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/sites/default/default.settings.php", []byte("<?php\n// default\n"), 0644))
	require.NoError(t, fsys.WriteFile("/sites/default/settings.php", []byte("<?php\n// old\n"), 0644))

	keep := &tasks.Copy{FS: fsys, From: "/sites/default/default.settings.php", To: "/sites/default/settings.php"}
	require.NoError(t, keep.Run(context.Background()))
	assert.Equal(t, "<?php\n// old\n", testutil.ReadString(t, fsys, "/sites/default/settings.php"))

	overwrite := &tasks.Copy{FS: fsys, From: "/sites/default/default.settings.php", To: "/sites/default/settings.php", Overwrite: true}
	require.NoError(t, overwrite.Run(context.Background()))
	assert.Equal(t, "<?php\n// default\n", testutil.ReadString(t, fsys, "/sites/default/settings.php"))

	fresh := &tasks.Copy{FS: fsys, From: "/sites/default/default.settings.php", To: "/backup/settings.php"}
	require.NoError(t, fresh.Run(context.Background()))
	assert.Equal(t, "<?php\n// default\n", testutil.ReadString(t, fsys, "/backup/settings.php"))
}

func TestCopyMissingSource(t *testing.T) {
	task := &tasks.Copy{FS: testutil.NewMemoryFS(), From: "/missing.php", To: "/out.php"}

	err := task.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestChmod(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/sites/default/files", 0755))
	require.NoError(t, fsys.WriteFile("/sites/default/settings.php", nil, 0444))

	recursive := &tasks.Chmod{FS: fsys, Path: "/sites/default", Mode: 0775, Recursive: true}
	require.NoError(t, recursive.Run(context.Background()))

	for _, path := range []string{"/sites/default", "/sites/default/files", "/sites/default/settings.php"} {
		info, err := fsys.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0775), info.Mode().Perm(), path)
	}

	single := &tasks.Chmod{FS: fsys, Path: "/sites/default/settings.php", Mode: 0666, Umask: 0002}
	require.NoError(t, single.Run(context.Background()))
	info, err := fsys.Stat("/sites/default/settings.php")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0664), info.Mode().Perm())
	assert.Equal(t, "Change permissions of /sites/default/settings.php to 0664", single.Description())

	// The directory was not touched by the non-recursive run.
	info, err = fsys.Stat("/sites/default")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0775), info.Mode().Perm())
}

func TestChmodMissingPath(t *testing.T) {
	for _, recursive := range []bool{false, true} {
		task := &tasks.Chmod{FS: testutil.NewMemoryFS(), Path: "/nope", Mode: 0775, Recursive: recursive}
		err := task.Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
	}
}

func TestMkdir(t *testing.T) {
	fsys := testutil.NewMemoryFS()

	task := &tasks.Mkdir{FS: fsys, Path: "/build/sites/default/files"}
	require.NoError(t, task.Run(context.Background()))

	info, err := fsys.Stat("/build/sites/default/files")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSymlink(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/build/libraries", []byte("old link"), 0644))

	task := &tasks.Symlink{FS: fsys, From: "../libraries", To: "/build/libraries"}
	require.NoError(t, task.Run(context.Background()))

	target, err := fsys.Readlink("/build/libraries")
	require.NoError(t, err)
	assert.Equal(t, "../libraries", target)
}

func TestSymlinkRefusesDirectory(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/build/libraries", 0755))

	err := (&tasks.Symlink{FS: fsys, From: "../libraries", To: "/build/libraries"}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
}

type mapExpander map[string]string

func (m mapExpander) Expand(text string) string {
	for k, v := range m {
		text = strings.ReplaceAll(text, "${"+k+"}", v)
	}
	return text
}

func TestProcess(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/behat.yml.dist", []byte("base_url: ${drupal.base_url}\n"), 0644))

	task := &tasks.Process{
		FS:          fsys,
		Source:      "/behat.yml.dist",
		Destination: "/behat.yml",
		Expander:    mapExpander{"drupal.base_url": "http://localhost"},
	}
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, "base_url: http://localhost\n", testutil.ReadString(t, fsys, "/behat.yml"))

	missing := &tasks.Process{FS: fsys, Source: "/nope", Destination: "/out"}
	err := missing.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
