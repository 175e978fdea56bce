package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args, restoring the working directory
// changed by --working-dir.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root, opts := newRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err = run(root, opts)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func project(t *testing.T, files testutil.FileTree) string {
	t.Helper()
	return testutil.ProjectDir(t, files)
}

func TestNoCommand(t *testing.T) {
	res := execute(t)
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
	assert.Contains(t, res.stdout, "site-install")
}

func TestVersion(t *testing.T) {
	res := execute(t, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "drupalctl version "))
}

func TestCompletion(t *testing.T) {
	res := execute(t, "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "drupalctl")

	res = execute(t, "completion", "tcsh")
	assert.Error(t, res.err)
}

func TestPHPWriteAndAppend(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"taskman.yml": "local:\n  settings:\n    conf:\n      site_name: ${drupal.site.name}\n",
		"local.php":   "<?php\n$a = 1;\n",
	})

	res := execute(t, "--working-dir", dir, "--format", "text",
		"php", "write", "--file", "out.php", "--config-key", "local.settings")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "php write: 1 tasks")

	out := testutil.ReadFile(t, filepath.Join(dir, "out.php"))
	assert.True(t, strings.HasPrefix(out, "<?php\n\n// Start settings processor block.("))
	assert.Contains(t, out, "$conf['site_name'] = 'Site name';")

	for i := 0; i < 2; i++ {
		res = execute(t, "--working-dir", dir, "php", "append", "-f", "local.php", "-k", "local.settings",
			"--block-start", "// BEGIN", "--block-end", "// END")
		require.NoError(t, res.err)
	}
	local := testutil.ReadFile(t, filepath.Join(dir, "local.php"))
	assert.True(t, strings.HasPrefix(local, "<?php\n$a = 1;\n\n// BEGIN("))
	assert.Equal(t, 1, strings.Count(local, "// BEGIN("), "append twice keeps one block")
}

func TestPHPMissingKeyLeavesFileUntouched(t *testing.T) {
	dir := project(t, testutil.FileTree{"local.php": "<?php\n"})

	res := execute(t, "--working-dir", dir, "php", "prepend", "--file", "local.php", "--config-key", "nope")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigMissing))
	assert.Contains(t, res.stdout, "php prepend: 1 tasks, 1 failed")
	assert.Equal(t, "<?php\n", testutil.ReadFile(t, filepath.Join(dir, "local.php")))
}

func TestPHPRequiresFlags(t *testing.T) {
	res := execute(t, "php", "write", "--file", "x.php")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "config-key")
}

func TestConfigGet(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"taskman.yml.dist": "drupal:\n  database:\n    name: dist\n",
		"taskman.yml":      "drupal:\n  database:\n    host: db\n",
		"ci.yml":           "drupal:\n  database:\n    name: ci\n",
	})

	res := execute(t, "--working-dir", dir, "--config", "ci.yml", "config", "get", "drupal.database")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "host: db\n")
	assert.Contains(t, res.stdout, "name: ci\n")
	assert.Contains(t, res.stdout, "port: 3306\n")

	res = execute(t, "--working-dir", dir, "config", "get", "drupal.settings.databases.default.default.database")
	require.NoError(t, res.err)
	assert.Equal(t, "dist\n", res.stdout)

	res = execute(t, "--working-dir", dir, "config", "get", "drupal.nothing")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigMissing))
}

func TestConfigGetEnvironmentOverride(t *testing.T) {
	dir := project(t, nil)
	t.Setenv("DRUPALCTL_DRUPAL__SITE__NAME", "From env")

	res := execute(t, "--working-dir", dir, "config", "get", "drupal.site.name")
	require.NoError(t, res.err)
	assert.Equal(t, "From env\n", res.stdout)
}

func TestConfigOrigin(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"taskman.yml": "drupal:\n  database:\n    host: db\n",
	})
	t.Setenv("DRUPALCTL_DRUPAL__DATABASE__PORT", "3307")

	res := execute(t, "--working-dir", dir, "config", "origin", "drupal.database.host")
	require.NoError(t, res.err)
	assert.Equal(t, "defaults\ntaskman.yml\n", res.stdout)

	res = execute(t, "--working-dir", dir, "config", "origin", "drupal.database.port")
	require.NoError(t, res.err)
	assert.Equal(t, "defaults\nenv\n", res.stdout)

	res = execute(t, "--working-dir", dir, "config", "origin", "drupal.nothing")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigMissing))
}

func TestMissingConfigFile(t *testing.T) {
	dir := project(t, nil)
	res := execute(t, "--working-dir", dir, "--config", "missing.yml", "config", "get")
	require.Error(t, res.err)
}

func TestInvalidWorkingDir(t *testing.T) {
	res := execute(t, "--working-dir", filepath.Join(t.TempDir(), "missing"), "version")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))
}

func TestSettingsSetup(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"build/sites/default/default.settings.php": "<?php\n",
		"taskman.yml": "drupal:\n  settings:\n    settings:\n      hash_salt: abc\n",
	})

	res := execute(t, "--working-dir", dir, "--format", "text", "settings-setup")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "settings-setup: 4 tasks")

	siteDir := filepath.Join(dir, "build", "sites", "default")
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(siteDir, "settings.php")), "settings.override.php")
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(siteDir, "settings.override.php")), "$settings['hash_salt'] = 'abc';")

	info, err := os.Stat(siteDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0775), info.Mode().Perm())
}

func TestDrushSetupDryRun(t *testing.T) {
	dir := project(t, nil)

	res := execute(t, "--working-dir", dir, "--dry-run", "drush-setup", "--root", "web")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "web/sites/default/drushrc.php")
	assert.Contains(t, res.stdout, "(dry run, no changes made)")
	assert.NoFileExists(t, filepath.Join(dir, "web", "sites", "default", "drushrc.php"))
}

func TestSiteInstallDryRun(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"taskman.yml": "drupal:\n  post_install:\n    - ./vendor/bin/drush cr\n",
	})

	res := execute(t, "--working-dir", dir, "--dry-run", "si", "--database-port", "3307", "--site-name", "CI")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "--db-url=mysql://root:@127.0.0.1:3307/drupal")
	assert.Contains(t, res.stdout, "--site-name=CI")
	assert.Contains(t, res.stdout, "Run ./vendor/bin/drush cr")
	assert.Empty(t, res.stderr)
}

func TestSiteInstallDeprecatedConfigDir(t *testing.T) {
	dir := project(t, nil)

	res := execute(t, "--working-dir", dir, "--dry-run", "--format", "text", "site-install", "--config-dir", "../config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Warning: The 'config-dir' option is deprecated")
	assert.Contains(t, res.stdout, "--existing-config")
}

func TestSiteInstallInvalidConfiguration(t *testing.T) {
	dir := project(t, testutil.FileTree{"taskman.yml": "drupal:\n  core: 6\n"})

	res := execute(t, "--working-dir", dir, "--dry-run", "site-install")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrConfigInvalid))
}

func TestRunServerDryRun(t *testing.T) {
	dir := project(t, nil)

	res := execute(t, "--working-dir", dir, "--dry-run", "rs", "--base-url", "http://localhost:8080", "--root", "web")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "php -S localhost:8080 -t web -dalways_populate_raw_post_data=-1")

	res = execute(t, "--working-dir", dir, "--dry-run", "run-server", "--background")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Start php -S 127.0.0.1:8888 -t build")
}

func TestSiteHooks(t *testing.T) {
	dir := project(t, testutil.FileTree{
		"taskman.yml": "drupal:\n  pre_install:\n    - { task: write, file: pre.txt, text: ok }\n",
	})

	res := execute(t, "--working-dir", dir, "site-pre-install")
	require.NoError(t, res.err)
	assert.Equal(t, "ok", testutil.ReadFile(t, filepath.Join(dir, "pre.txt")))

	res = execute(t, "--working-dir", dir, "site-post-install")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "site-post-install: 0 tasks")
}

func TestJSONFormat(t *testing.T) {
	dir := project(t, nil)

	res := execute(t, "--working-dir", dir, "--dry-run", "--format", "json", "permissions-setup")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"command": "permissions-setup"`)
	assert.Contains(t, res.stdout, `"dry_run": true`)

	res = execute(t, "--working-dir", dir, "--format", "yaml", "permissions-setup")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, `unknown format "yaml"`)
}

func TestErrorsFollowFormat(t *testing.T) {
	dir := project(t, testutil.FileTree{"local.php": "<?php\n"})
	args := []string{"--working-dir", dir, "php", "prepend", "--file", "local.php", "--config-key", "nope"}

	res := execute(t, append([]string{"--format", "json"}, args...)...)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, `"code": "CONFIG_MISSING"`)
	assert.Contains(t, res.stderr, `"key": "nope"`)

	res = execute(t, append([]string{"--format", "text"}, args...)...)
	require.Error(t, res.err)
	assert.NotContains(t, res.stderr, `"code"`)
	assert.Contains(t, res.stderr, "nope")
}

func TestFormatFromEnvironment(t *testing.T) {
	dir := project(t, nil)
	t.Setenv("DRUPALCTL_FORMAT", "json")

	res := execute(t, "--working-dir", dir, "--dry-run", "permissions-setup")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"command": "permissions-setup"`)

	res = execute(t, "--working-dir", dir, "--dry-run", "--format", "text", "permissions-setup")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "permissions-setup: ")
	assert.NotContains(t, res.stdout, `"command"`)
}

func TestHelpTopics(t *testing.T) {
	res := execute(t, "help", "topics")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "configuration")
	assert.Contains(t, res.stdout, "--dry-run")

	res = execute(t, "help", "hooks")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "post_install")

	res = execute(t, "help", "site-install")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "--database-port")
}
