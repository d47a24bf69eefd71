package domain

import (
	"strings"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

const questionPrefix = "Question"

// IsComplete reports whether a single cell counts as a completed unit of work.
//
// Question cells are judged by their answer regardless of kind. Code cells
// must have source and have been run or produced output. Markdown and raw
// cells only need source.
func IsComplete(cell m.Cell) bool {
	text := cell.Text()

	if answered, ok := questionAnswered(text); ok {
		return answered
	}

	switch cell.Kind {
	case m.CellCode:
		return text != "" && (len(cell.Outputs) > 0 || cell.Executed())
	case m.CellMarkdown, m.CellRaw:
		return text != ""
	default:
		return false
	}
}

// questionAnswered inspects trimmed text. ok is false when the text is not
// a question; otherwise answered tells whether anything follows the first colon.
func questionAnswered(text string) (answered bool, ok bool) {
	if !strings.HasPrefix(text, questionPrefix) {
		return false, false
	}

	_, answer, found := strings.Cut(text, ":")
	if !found {
		return false, true
	}

	return strings.TrimSpace(answer) != "", true
}
