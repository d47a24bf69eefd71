package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubricCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "whole course",
			args:     []string{"rubric"},
			contains: []string{"Course: gl4u_rnaseq", "HANDS-ON_ACTIVITY_1", "HANDS-ON_ACTIVITY_3", "Screenshots:"},
		},
		{
			name:     "one asset",
			args:     []string{"rubric", "HANDS-ON_ACTIVITY_2"},
			contains: []string{"HANDS-ON_ACTIVITY_2", "Setup"},
		},
		{
			name:    "unknown asset",
			args:    []string{"rubric", "NOPE"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(t, newRubricCmd(), tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
		})
	}
}
