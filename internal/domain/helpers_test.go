package domain

import (
	"encoding/json"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func ran(source string) m.Cell {
	count := 1

	return m.Cell{
		Kind:           m.CellCode,
		Source:         m.CellSource(source),
		Outputs:        []json.RawMessage{json.RawMessage(`{"output_type":"stream"}`)},
		ExecutionCount: &count,
	}
}

func unrun(source string) m.Cell {
	return m.Cell{Kind: m.CellCode, Source: m.CellSource(source)}
}

func md(source string) m.Cell {
	return m.Cell{Kind: m.CellMarkdown, Source: m.CellSource(source)}
}

func rawCell(source string) m.Cell {
	return m.Cell{Kind: m.CellRaw, Source: m.CellSource(source)}
}

func notebook(cells ...m.Cell) m.Notebook {
	return m.Notebook{Cells: cells}
}

func split(key string, code, raw int) m.Section {
	return m.Section{Key: key, CodeCells: code, RawCells: raw, Split: true}
}

func points(key string, pts int, special m.Special) m.Section {
	return m.Section{Key: key, Points: pts, Special: special}
}
