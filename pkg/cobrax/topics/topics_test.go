package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/configuration.md":  {Data: []byte("# Configuration\n\nLayered YAML files")},
		"help/option-dry-run.txt": {Data: []byte("Dry run mode")},
		"help/notes.txxt":         {Data: []byte("custom extension")},
		"help/ignored.json":       {Data: []byte("{}")},
	}
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := Load(testFS(), "help", Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"configuration", "option-dry-run"}, m.Names())

		topic, ok := m.Get("configuration")
		require.True(t, ok)
		assert.Equal(t, "# Configuration\n\nLayered YAML files", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := Load(testFS(), "help", Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, m.Names())
	})

	t.Run("missing directory", func(t *testing.T) {
		m, err := Load(testFS(), "nope", Options{})
		require.NoError(t, err)
		assert.Empty(t, m.Names())
	})
}

func TestGetFlagStyle(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	for _, name := range []string{"--dry-run", "-dry-run", "dry-run", "option-dry-run"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "Dry run mode", topic.Content)
	}
	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestWriteList(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteList(&buf, "drupalctl")
	assert.Equal(t, "Available help topics:\n  configuration\n\nOption topics:\n  --dry-run\n\nUse 'drupalctl help <topic>' to read about a specific topic.\n", buf.String())

	empty, err := Load(fstest.MapFS{}, "help", Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.WriteList(&buf, "drupalctl")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return strings.ToUpper(content) + format
}

func TestInstall(t *testing.T) {
	m, err := Load(testFS(), "help", Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	run := func(args ...string) (string, error) {
		root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(&cobra.Command{Use: "sub", Short: "A subcommand", Run: func(*cobra.Command, []string) {}})
		m.Install(root)

		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		err := root.Execute()
		return buf.String(), err
	}

	out, err := run("help", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "DRY RUN MODE.txt", out)

	out, err = run("help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration")

	out, err = run("help", "sub")
	require.NoError(t, err)
	assert.Contains(t, out, "A subcommand")

	_, err = run("help", "unknown")
	assert.Error(t, err)
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Title\n\nSome *text*.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
