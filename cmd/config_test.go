package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "nbgrade", configBaseName)
	assert.Equal(t, "nbgrade.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "course.path", courseConfigKey)
	assert.Equal(t, "grade.parallel", parallelConfigKey)
	assert.Equal(t, "gradebook.driver", gradebookDriverKey)
	assert.Equal(t, "sqlite", defaultGradebookDriver)
	assert.Equal(t, ".nbgrade.log", defaultLogFilename)
	assert.Equal(t, "NBGRADE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}
