package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		override  string
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, "", zerolog.WarnLevel},
		{"info level", 1, "", zerolog.InfoLevel},
		{"debug level", 2, "", zerolog.DebugLevel},
		{"trace level", 3, "", zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, "", zerolog.TraceLevel},
		{"override wins", 0, "debug", zerolog.DebugLevel},
		{"override is case insensitive", 3, "ERROR", zerolog.ErrorLevel},
		{"unknown override ignored", 1, "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, Level(tt.verbosity, tt.override))
		})
	}
}

func TestSetupWritesLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")

	var console bytes.Buffer
	closeLog := Setup(Options{Verbosity: 1, Console: &console})
	log.Info().Msg("settings written")
	closeLog()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Contains(t, console.String(), "settings written")

	data, err := os.ReadFile(filepath.Join(stateHome, AppName, AppName+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"settings written"`)
}

func TestSetupDryRunMarksEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	t.Setenv(EnvLogFile, path)
	t.Setenv(EnvLogLevel, "")

	closeLog := Setup(Options{DryRun: true, Console: &bytes.Buffer{}})
	log.Warn().Msg("would run drush")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dry_run":true`)
}

func TestSetupLevelFromEnvironment(t *testing.T) {
	t.Setenv(EnvLogFile, LogFileOff)
	t.Setenv(EnvLogLevel, "trace")

	closeLog := Setup(Options{Console: &bytes.Buffer{}})
	defer closeLog()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	t.Setenv(EnvLogFile, "")
	assert.Equal(t, filepath.Join("/custom/state", "drupalctl", "drupalctl.log"), LogFilePath())

	t.Setenv(EnvLogFile, "/tmp/ci/drupalctl.log")
	assert.Equal(t, "/tmp/ci/drupalctl.log", LogFilePath())

	t.Setenv(EnvLogFile, "OFF")
	assert.Equal(t, "", LogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("phpblock")
	logger.Info().Msg("rendered")

	assert.Contains(t, buf.String(), `"component":"phpblock"`)
	assert.Contains(t, buf.String(), "rendered")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "settings-setup")
	require.NotNil(t, done)
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "duration")
}
