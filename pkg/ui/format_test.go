package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "unknown", ui.Format(999).String())
	assert.Equal(t, "unknown", ui.Format(-1).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
	}{
		{"", ui.FormatAuto},
		{"auto", ui.FormatAuto},
		{"term", ui.FormatTerminal},
		{"TERMINAL", ui.FormatTerminal},
		{"text", ui.FormatText},
		{" plain ", ui.FormatText},
		{"Json", ui.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}

	_, err := ui.ParseFormat("yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), `unknown format "yaml", expected one of auto, term, text, json`)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		flag     string
		explicit bool
		expected ui.Format
	}{
		{name: "auto on a buffer is text", flag: "auto", expected: ui.FormatText},
		{name: "environment replaces the default", env: "json", flag: "auto", expected: ui.FormatJSON},
		{name: "explicit flag beats environment", env: "json", flag: "text", explicit: true, expected: ui.FormatText},
		{name: "explicit auto still detects", env: "json", flag: "auto", explicit: true, expected: ui.FormatText},
		{name: "terminal is honoured on a buffer", flag: "term", explicit: true, expected: ui.FormatTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ui.FormatEnv, tt.env)
			format, err := ui.Resolve(tt.flag, tt.explicit, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}

	t.Run("invalid environment value", func(t *testing.T) {
		t.Setenv(ui.FormatEnv, "xml")
		_, err := ui.Resolve("auto", false, &bytes.Buffer{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))

	t.Run("NO_COLOR forces plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}
