package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func TestApplyOverrides(t *testing.T) {
	rubric := m.Rubric{
		AssetID:  "02-RNAseq_analysis.ipynb",
		Sections: m.Sections{split("1.", 2, 0), split("2.", 1, 2), points("3.", 4, m.SpecialNone)},
	}
	graded := NewGrader().Grade(notebook(md("# 1. Intro"), ran("a"), md("# 2. Libraries"), ran("b")), rubric)

	t.Run("forces raw to maximum", func(t *testing.T) {
		out := ApplyOverrides(graded, rubric, m.Overrides{ForceRawMax: []string{"2."}})

		score, ok := out.Section("2.")
		require.True(t, ok)
		assert.Equal(t, 1, score.EarnedCode)
		assert.Equal(t, 2, score.EarnedRaw)
		assert.Equal(t, 4, out.TotalPoints)
	})

	t.Run("points only section becomes raw", func(t *testing.T) {
		out := ApplyOverrides(graded, rubric, m.Overrides{ForceRawMax: []string{"3."}})

		score, _ := out.Section("3.")
		assert.False(t, score.PointsOnly)
		assert.Equal(t, 4, score.EarnedRaw)
		assert.Equal(t, 4, score.Expected())
	})

	t.Run("unknown key is ignored", func(t *testing.T) {
		out := ApplyOverrides(graded, rubric, m.Overrides{ForceRawMax: []string{"9."}})
		assert.Equal(t, graded.TotalPoints, out.TotalPoints)
	})

	t.Run("input is not modified", func(t *testing.T) {
		_ = ApplyOverrides(graded, rubric, m.Overrides{ForceRawMax: []string{"2."}})

		score, _ := graded.Section("2.")
		assert.Zero(t, score.EarnedRaw)
		assert.Equal(t, 2, graded.TotalPoints)
	})
}

func TestCountedScore(t *testing.T) {
	rubric := m.Rubric{Sections: m.Sections{split("0.", 5, 2), split("1.", 1, 1), split("3.", 2, 2)}}
	graded := NewGrader().Grade(notebook(
		md("## 0. Setup"), ran("a"), rawCell("r"),
		md("## 3. Later"), ran("b"), ran("c"),
	), rubric)

	tests := []struct {
		name         string
		overrides    m.Overrides
		wantScore    int
		wantExpected int
	}{
		{"all sections", m.Overrides{}, 4, 13},
		{"early sections only", m.Overrides{CountSections: []string{"0.", "1."}}, 2, 9},
		{"late sections only", m.Overrides{CountSections: []string{"3."}}, 2, 4},
		{"unknown keys skipped", m.Overrides{CountSections: []string{"7.", "3."}}, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, expected := CountedScore(graded, rubric, tt.overrides)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantExpected, expected)
		})
	}

	t.Run("missing notebook keeps denominator", func(t *testing.T) {
		score, expected := CountedScore(m.Result{}, rubric, m.Overrides{CountSections: []string{"0."}})
		assert.Zero(t, score)
		assert.Equal(t, 7, expected)
	})
}
