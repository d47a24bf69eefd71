package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCmd_ShowsLatestRun(t *testing.T) {
	root := classFixture(t)
	dsn := "file:" + filepath.Join(t.TempDir(), "gradebook.db")

	_, err := executeCommand(t, newGradeCmd(), "grade", root, "-m", "--gradebook-dsn", dsn)
	require.NoError(t, err)

	output, err := executeCommand(t, newViewCmd(), "view", "--gradebook-dsn", dsn)
	require.NoError(t, err)

	assert.Contains(t, output, "of gl4u_rnaseq")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "MISSING")
}

func TestViewCmd_EmptyGradebook(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "gradebook.db")

	_, err := executeCommand(t, newViewCmd(), "view", "--gradebook-dsn", dsn)
	require.Error(t, err)
}

func TestViewCmd_DisabledGradebook(t *testing.T) {
	_, err := executeCommand(t, newViewCmd(), "view", "--no-gradebook")
	require.Error(t, err)
}
