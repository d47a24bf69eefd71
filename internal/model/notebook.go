package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CellKind is the notebook cell_type.
type CellKind string

const (
	// CellCode is an executable cell.
	CellCode CellKind = "code"
	// CellMarkdown is a rendered text cell.
	CellMarkdown CellKind = "markdown"
	// CellRaw is an unrendered text cell, used for free-text answers.
	CellRaw CellKind = "raw"
)

var (
	// ErrNoCells is returned when a document has no cells array.
	ErrNoCells = errors.New("notebook has no cells array")
	// ErrMissingCellType is returned when a cell has no cell_type.
	ErrMissingCellType = errors.New("cell has no cell_type")
)

// CellSource is the source of a cell. On disk it is either a single string
// or a list of fragments that are joined without separators.
type CellSource string

// UnmarshalJSON accepts both the string and the fragment-list encodings.
func (s *CellSource) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = CellSource(single)
		return nil
	}

	var fragments []string
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("source must be a string or a list of strings: %w", err)
	}

	*s = CellSource(strings.Join(fragments, ""))

	return nil
}

// Cell is one notebook cell. Only static metadata is inspected.
type Cell struct {
	Kind           CellKind          `json:"cell_type"`
	Source         CellSource        `json:"source"`
	Outputs        []json.RawMessage `json:"outputs,omitempty"`
	ExecutionCount *int              `json:"execution_count,omitempty"`
}

// Text returns the trimmed cell source.
func (c Cell) Text() string {
	return strings.TrimSpace(string(c.Source))
}

// Executed reports whether the cell carries an execution marker.
func (c Cell) Executed() bool {
	return c.ExecutionCount != nil
}

// Notebook is a parsed .ipynb document.
type Notebook struct {
	Cells []Cell `json:"cells"`
}

// ParseNotebook decodes and validates a notebook document.
func ParseNotebook(data []byte) (Notebook, error) {
	var raw struct {
		Cells *[]Cell `json:"cells"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return Notebook{}, fmt.Errorf("decode notebook: %w", err)
	}

	if raw.Cells == nil {
		return Notebook{}, ErrNoCells
	}

	for i, cell := range *raw.Cells {
		if cell.Kind == "" {
			return Notebook{}, fmt.Errorf("cell %d: %w", i, ErrMissingCellType)
		}
	}

	return Notebook{Cells: *raw.Cells}, nil
}
