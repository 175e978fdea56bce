package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version, Commit, Date = "1.2.0", "abc123", "2026-01-02"
	assert.Equal(t, "drupalctl version 1.2.0\n  commit: abc123\n  built:  2026-01-02\n", Info())
}
