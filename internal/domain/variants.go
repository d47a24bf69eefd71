package domain

import (
	"strings"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// markdownExerciseCheck is the instruction that follows the student's
// markdown cell in the exercise notebook.
const markdownExerciseCheck = "If you did the step above, you should see a cell above this one with rendered text of whatever you put in."

// gradeMarkdownExercise grades code cells under single-level headers and
// then grants one unit for the markdown exercise.
func gradeMarkdownExercise(notebook m.Notebook, rubric m.Rubric) m.Result {
	t := newTracker(m.DialectSimple, nil)
	acc := newAccumulator(rubric)
	codeCompleted := map[string]int{}

	for _, cell := range notebook.Cells {
		for _, key := range t.observe(cell) {
			acc.enter(key)
		}

		key := t.active()

		c := acc.enter(key)
		if c == nil || cell.Kind != m.CellCode {
			continue
		}

		c.totalCode++
		if IsComplete(cell) {
			c.completedCode++
			codeCompleted[key]++
		} else {
			// A miss clears the list instead of recording a position.
			c.missedCode = []int{}
		}
	}

	tracked := t.active()

	for i, cell := range notebook.Cells {
		if cell.Kind != m.CellMarkdown || !strings.Contains(string(cell.Source), markdownExerciseCheck) {
			continue
		}

		if i > 0 {
			c := acc.enter(tracked)
			prev := notebook.Cells[i-1]

			switch {
			case prev.Kind == m.CellMarkdown && IsComplete(prev):
				if c != nil && codeCompleted[tracked] > 0 {
					c.completedCode++
				}
			case c != nil:
				c.missedCode = []int{}
			}
		}

		break
	}

	return acc.score(m.SpecialMarkdownExercise)
}

// gradeQuestionAnswer counts only "Question" cells, one counter per section.
func gradeQuestionAnswer(notebook m.Notebook, rubric m.Rubric) m.Result {
	t := newQuestionTracker()
	acc := newAccumulator(rubric)

	for _, cell := range notebook.Cells {
		for _, key := range t.observe(cell) {
			acc.enter(key)
		}

		c := acc.enter(t.active())
		if c == nil {
			continue
		}

		answered, ok := questionAnswered(cell.Text())
		if !ok {
			continue
		}

		c.totalCode++

		switch {
		case answered:
			c.completedCode++
		case strings.Contains(cell.Text(), ":"):
			c.missedCode = append(c.missedCode, c.totalCode)
		}
	}

	return acc.score(m.SpecialQuestionAnswer)
}
