package domain

import (
	"log/slog"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// Grader grades one parsed notebook against one rubric. Grading is a pure
// function of its inputs.
type Grader interface {
	Grade(notebook m.Notebook, rubric m.Rubric) m.Result
}

// strategy is one complete grading path.
type strategy func(notebook m.Notebook, rubric m.Rubric) m.Result

var strategies = map[m.Special]strategy{
	m.SpecialNone:             gradeSections,
	m.SpecialMarkdownExercise: gradeMarkdownExercise,
	m.SpecialQuestionAnswer:   gradeQuestionAnswer,
}

type grader struct{}

// NewGrader returns the default Grader.
func NewGrader() Grader {
	return grader{}
}

// Grade dispatches to the strategy selected by VariantFor.
func (grader) Grade(notebook m.Notebook, rubric m.Rubric) m.Result {
	variant := VariantFor(rubric)
	slog.Debug("Grading notebook", "asset", rubric.AssetID, "variant", variant, "cells", len(notebook.Cells))

	return strategies[variant](notebook, rubric)
}

// VariantFor returns the grading variant of a rubric: the first section in
// rubric order carrying a known special tag decides for the whole document.
func VariantFor(rubric m.Rubric) m.Special {
	for _, section := range rubric.Sections {
		if section.Special == m.SpecialNone {
			continue
		}

		if _, ok := strategies[section.Special]; ok {
			return section.Special
		}
	}

	return m.SpecialNone
}

// counters are the running totals of one section.
type counters struct {
	completedCode int
	totalCode     int
	completedRaw  int
	totalRaw      int
	missedCode    []int
	missedRaw     []int
}

// accumulator attributes cells to rubric sections.
type accumulator struct {
	rubric   m.Rubric
	sections map[string]*counters
}

func newAccumulator(rubric m.Rubric) *accumulator {
	return &accumulator{rubric: rubric, sections: map[string]*counters{}}
}

// enter initialises a rubric key on first encounter. It never resets.
func (a *accumulator) enter(key string) *counters {
	if !a.rubric.Has(key) {
		return nil
	}

	c, ok := a.sections[key]
	if !ok {
		c = &counters{missedCode: []int{}, missedRaw: []int{}}
		a.sections[key] = c
	}

	return c
}

// add counts a code or raw cell against key. Other kinds are not units.
func (a *accumulator) add(key string, cell m.Cell) {
	if key == "" {
		return
	}

	c := a.enter(key)
	if c == nil {
		return
	}

	switch cell.Kind {
	case m.CellCode:
		c.totalCode++
		if IsComplete(cell) {
			c.completedCode++
		} else {
			c.missedCode = append(c.missedCode, c.totalCode)
		}
	case m.CellRaw:
		c.totalRaw++
		if IsComplete(cell) {
			c.completedRaw++
		} else {
			c.missedRaw = append(c.missedRaw, c.totalRaw)
		}
	}
}

func (a *accumulator) get(key string) counters {
	if c, ok := a.sections[key]; ok {
		return *c
	}

	return counters{}
}

// score caps every rubric section and builds the result in rubric order.
func (a *accumulator) score(variant m.Special) m.Result {
	result := m.Result{
		Variant:  variant,
		Sections: make([]m.SectionScore, 0, len(a.rubric.Sections)),
		Missed:   map[string]m.MissedUnits{},
	}

	for _, section := range a.rubric.Sections {
		c := a.get(section.Key)
		score := m.SectionScore{Key: section.Key, Name: section.Name}

		if section.Split && variant == m.SpecialNone {
			score.ExpectedCode = section.CodeCells
			score.ExpectedRaw = section.RawCells
			score.EarnedCode = min(c.completedCode, section.CodeCells)
			score.EarnedRaw = min(c.completedRaw, section.RawCells)
		} else {
			score.PointsOnly = true
			score.ExpectedCode = section.Expected()
			score.EarnedCode = min(c.completedCode, score.ExpectedCode)
		}

		result.Sections = append(result.Sections, score)
		result.TotalPoints += score.Earned()
	}

	for key, c := range a.sections {
		result.Missed[key] = m.MissedUnits{Code: c.missedCode, Raw: c.missedRaw}
	}

	return result
}

// gradeSections is the default path: hierarchical headers, code and raw
// cells counted separately.
func gradeSections(notebook m.Notebook, rubric m.Rubric) m.Result {
	t := newTracker(DialectFor(rubric), rubric.Aliases)
	acc := newAccumulator(rubric)

	for _, cell := range notebook.Cells {
		for _, key := range t.observe(cell) {
			acc.enter(key)
		}

		acc.add(t.active(), cell)
	}

	return acc.score(m.SpecialNone)
}
