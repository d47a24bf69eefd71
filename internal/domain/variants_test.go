package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func TestGradeMarkdownExercise(t *testing.T) {
	rubric := m.Rubric{
		AssetID:  "Jupyter_Notebook_Exercise.ipynb",
		Sections: m.Sections{points("1.", 1, m.SpecialNone), points("2.", 3, m.SpecialMarkdownExercise)},
	}

	tests := []struct {
		name       string
		cells      []m.Cell
		wantEarned int
		wantMissed []int
	}{
		{
			name: "markdown written above check",
			cells: []m.Cell{
				md("# 1. Code"), ran("print(1)"),
				md("# 2. Markdown"), ran("x = 2"),
				md("My **own** text"),
				md(markdownExerciseCheck),
			},
			wantEarned: 2,
			wantMissed: []int{},
		},
		{
			name: "empty markdown above check clears misses",
			cells: []m.Cell{
				md("# 2. Markdown"), ran("x = 2"), unrun("y"),
				md(""),
				md(markdownExerciseCheck),
			},
			wantEarned: 1,
			wantMissed: []int{},
		},
		{
			name: "no completed code grants nothing",
			cells: []m.Cell{
				md("# 2. Markdown"), unrun("y"),
				md("My text"),
				md(markdownExerciseCheck),
			},
			wantEarned: 0,
			wantMissed: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewGrader().Grade(notebook(tt.cells...), rubric)

			assert.Equal(t, m.SpecialMarkdownExercise, result.Variant)

			score, ok := result.Section("2.")
			require.True(t, ok)
			assert.True(t, score.PointsOnly)
			assert.Equal(t, tt.wantEarned, score.Earned())
			assert.Equal(t, 3, score.Expected())
			assert.Equal(t, tt.wantMissed, result.Missed["2."].Code)
		})
	}
}

func TestGradeQuestionAnswer(t *testing.T) {
	rubric := m.Rubric{
		AssetID:  "quiz.ipynb",
		Sections: m.Sections{points("1.", 2, m.SpecialQuestionAnswer), points("2.", 1, m.SpecialNone)},
	}

	result := NewGrader().Grade(notebook(
		md("# 1. Quiz"),
		rawCell("Question 1: yes"),
		rawCell("Question 2: "),
		md("Question 3"),
		ran("not a question"),
		md("# 2. More"),
		rawCell("Question 4: 42"),
		rawCell("Question 5: also"),
	), rubric)

	assert.Equal(t, m.SpecialQuestionAnswer, result.Variant)

	quiz, _ := result.Section("1.")
	assert.Equal(t, 1, quiz.Earned())
	assert.Equal(t, 2, quiz.Expected())
	assert.Equal(t, []int{2}, result.Missed["1."].Code)

	more, _ := result.Section("2.")
	assert.Equal(t, 1, more.Earned())
	assert.Equal(t, 2, result.TotalPoints)
}

func TestGradeQuestionAnswer_IndentedHeader(t *testing.T) {
	rubric := m.Rubric{
		AssetID:  "quiz.ipynb",
		Sections: m.Sections{points("1.", 1, m.SpecialQuestionAnswer)},
	}

	result := NewGrader().Grade(notebook(
		md("  # 1. Q"),
		md("Question: yes"),
	), rubric)

	assert.Equal(t, 1, result.TotalPoints)
}

func TestGradeQuestionAnswer_NoColonIsNotMissed(t *testing.T) {
	rubric := m.Rubric{
		AssetID:  "quiz.ipynb",
		Sections: m.Sections{points("1.", 2, m.SpecialQuestionAnswer)},
	}

	result := NewGrader().Grade(notebook(
		md("# 1. Q"),
		md("Question what"),
		md("Question: "),
	), rubric)

	quiz, _ := result.Section("1.")
	assert.Equal(t, 0, quiz.Earned())
	assert.Equal(t, []int{2}, result.Missed["1."].Code)
}
