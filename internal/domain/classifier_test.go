package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func TestIsComplete(t *testing.T) {
	count := 3

	tests := []struct {
		name string
		cell m.Cell
		want bool
	}{
		{"code with source and outputs", ran("print(1)"), true},
		{"code with execution count only", m.Cell{Kind: m.CellCode, Source: "x = 1", ExecutionCount: &count}, true},
		{"code with outputs only", m.Cell{Kind: m.CellCode, Source: "x", Outputs: []json.RawMessage{json.RawMessage(`{}`)}}, true},
		{"code never run", unrun("x = 1"), false},
		{"code blank but run", m.Cell{Kind: m.CellCode, Source: "  \n", ExecutionCount: &count}, false},
		{"markdown with text", md("notes"), true},
		{"markdown blank", md("   "), false},
		{"raw with text", rawCell("answer"), true},
		{"raw blank", rawCell(""), false},
		{"question unanswered", rawCell("Question: "), false},
		{"question answered", rawCell("Question: yes"), true},
		{"question without colon", rawCell("Question 4"), false},
		{"question in code cell answered", unrun("Question 2: 42"), true},
		{"question answer after first colon only", rawCell("Question 1:   : x"), true},
		{"unknown kind", m.Cell{Kind: "heading", Source: "text"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsComplete(tt.cell))
		})
	}
}
