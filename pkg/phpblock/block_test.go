package phpblock

import (
	"testing"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLabels = Labels{Start: "// START", End: "// END"}

func mustYAML(t *testing.T, src string) *ordered.Map {
	t.Helper()
	m, err := ordered.FromYAML([]byte(src))
	require.NoError(t, err)
	return m
}

func TestRenderDatabaseScenario(t *testing.T) {
	src := mustYAML(t, `
drupal:
  settings:
    database:
      host: localhost
      port: 3306
`)

	block, err := Render(src, "drupal.settings", testLabels)
	require.NoError(t, err)

	const sum = "de347f36250e064f5c294de08df7f022cab66edd"
	assert.Equal(t, sum, block.Checksum())
	assert.Equal(t, []string{
		"// START(" + sum + ")",
		"",
		"$database['host'] = 'localhost';",
		"$database['port'] = 3306;",
		"",
		"// END(" + sum + ")",
	}, block.Lines())
	assert.Equal(t,
		"\n// START("+sum+")\n\n$database['host'] = 'localhost';\n$database['port'] = 3306;\n\n// END("+sum+")\n",
		block.String())
}

func TestRenderEmptyGroups(t *testing.T) {
	src := mustYAML(t, "drupal:\n  settings: {}\n")

	block, err := Render(src, "drupal.settings", testLabels)
	require.NoError(t, err)

	const sum = "5ff25b1ba7e315c72e8a7e644adb90f03a07825d"
	assert.Equal(t, sum, block.Checksum())
	assert.Equal(t, []string{"// START(" + sum + ")", "", "// END(" + sum + ")"}, block.Lines())
}

func TestRenderNullKeyRendersEmptyBlock(t *testing.T) {
	src := mustYAML(t, "drupal:\n  settings: ~\n")

	block, err := Render(src, "drupal.settings", testLabels)
	require.NoError(t, err)
	assert.Equal(t, "5ff25b1ba7e315c72e8a7e644adb90f03a07825d", block.Checksum())
}

func TestRenderSeparatesGroups(t *testing.T) {
	src := mustYAML(t, `
settings:
  databases:
    default: {default: {driver: mysql}}
  settings:
    hash_salt: abc
    file_public_path: sites/default/files
  config:
    system.logging: {error_level: verbose}
`)

	block, err := Render(src, "settings", testLabels)
	require.NoError(t, err)

	lines := block.Lines()
	assert.Equal(t, []string{
		"",
		"$databases['default'] = array('default' => array('driver' => 'mysql'));",
		"",
		"$settings['hash_salt'] = 'abc';",
		"$settings['file_public_path'] = 'sites/default/files';",
		"",
		"$config['system.logging'] = array('error_level' => 'verbose');",
		"",
	}, lines[1:len(lines)-1])
}

func TestRenderUsesDefaultLabels(t *testing.T) {
	src := mustYAML(t, "a: {}\n")

	block, err := Render(src, "a", Labels{})
	require.NoError(t, err)

	lines := block.Lines()
	assert.Equal(t, DefaultBlockStart+"("+block.Checksum()+")", lines[0])
	assert.Equal(t, DefaultBlockEnd+"("+block.Checksum()+")", lines[len(lines)-1])
}

func TestRenderIsDeterministic(t *testing.T) {
	const doc = "s:\n  a: {x: 1, y: [1, 2]}\n  b: {z: true}\n"

	first, err := Render(mustYAML(t, doc), "s", testLabels)
	require.NoError(t, err)
	second, err := Render(mustYAML(t, doc), "s", testLabels)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestRenderChecksumSensitivity(t *testing.T) {
	base, err := Render(mustYAML(t, "s:\n  a: {x: 1, y: 2}\n  b: {z: 3}\n"), "s", testLabels)
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  string
	}{
		{"changed value", "s:\n  a: {x: 1, y: 20}\n  b: {z: 3}\n"},
		{"reordered settings", "s:\n  a: {y: 2, x: 1}\n  b: {z: 3}\n"},
		{"reordered groups", "s:\n  b: {z: 3}\n  a: {x: 1, y: 2}\n"},
		{"added setting", "s:\n  a: {x: 1, y: 2, w: 0}\n  b: {z: 3}\n"},
		{"int became string", "s:\n  a: {x: '1', y: 2}\n  b: {z: 3}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := Render(mustYAML(t, tt.doc), "s", testLabels)
			require.NoError(t, err)
			assert.NotEqual(t, base.Checksum(), other.Checksum())
		})
	}
}

func TestRenderMissingKey(t *testing.T) {
	src := mustYAML(t, "drupal:\n  settings: {}\n")

	block, err := Render(src, "drupal.nope", testLabels)
	require.Error(t, err)
	assert.Nil(t, block)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
	assert.Equal(t, "drupal.nope", errors.GetErrorDetails(err)["key"])
}

func TestRenderMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"key is scalar", "s: hello\n"},
		{"key is list", "s: [1, 2]\n"},
		{"group is scalar", "s:\n  database: localhost\n"},
		{"group is list", "s:\n  database: [a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(mustYAML(t, tt.doc), "s", testLabels)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedValue))
		})
	}
}

func TestRenderEscapesSettingNames(t *testing.T) {
	src := ordered.New()
	group := ordered.New()
	group.Set("it's", "v")
	settings := ordered.New()
	settings.Set("conf", group)
	src.Set("s", settings)

	block, err := Render(src, "s", testLabels)
	require.NoError(t, err)
	assert.Contains(t, block.Lines(), `$conf['it\'s'] = 'v';`)
}
