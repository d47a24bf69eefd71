package domain

import (
	"slices"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// ApplyOverrides applies the declarative corrections of an activity to a
// grading result. Keys unknown to the rubric or the result are ignored.
// The input result is not modified.
func ApplyOverrides(result m.Result, rubric m.Rubric, overrides m.Overrides) m.Result {
	if len(overrides.ForceRawMax) == 0 {
		return result
	}

	out := result
	out.Sections = slices.Clone(result.Sections)

	for _, key := range overrides.ForceRawMax {
		section, ok := rubric.Lookup(key)
		if !ok {
			continue
		}

		idx := slices.IndexFunc(out.Sections, func(s m.SectionScore) bool { return s.Key == key })
		if idx < 0 {
			continue
		}

		score := out.Sections[idx]
		if score.PointsOnly {
			score = m.SectionScore{Key: key, Name: score.Name, ExpectedRaw: section.Expected()}
		}

		score.EarnedRaw = score.ExpectedRaw
		out.Sections[idx] = score
	}

	out.TotalPoints = 0
	for _, score := range out.Sections {
		out.TotalPoints += score.Earned()
	}

	return out
}

// CountedScore returns the activity score and denominator over the sections
// that count for it. All rubric sections count when none are listed.
func CountedScore(result m.Result, rubric m.Rubric, overrides m.Overrides) (int, int) {
	keys := overrides.CountSections
	if len(keys) == 0 {
		for _, section := range rubric.Sections {
			keys = append(keys, section.Key)
		}
	}

	score, expected := 0, 0

	for _, key := range keys {
		section, ok := rubric.Lookup(key)
		if !ok {
			continue
		}

		expected += section.Expected()

		if s, ok := result.Section(key); ok {
			score += s.Earned()
		}
	}

	return score, expected
}
