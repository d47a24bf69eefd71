package model

import "time"

// SectionScore is the graded outcome of one rubric section.
type SectionScore struct {
	Key          string
	Name         string
	EarnedCode   int
	EarnedRaw    int
	ExpectedCode int
	ExpectedRaw  int
	// PointsOnly marks sections graded against a plain point value. Their
	// score lives in the code fields.
	PointsOnly bool
}

// Earned returns the total points earned in the section.
func (s SectionScore) Earned() int {
	return s.EarnedCode + s.EarnedRaw
}

// Expected returns the total points available in the section.
func (s SectionScore) Expected() int {
	return s.ExpectedCode + s.ExpectedRaw
}

// MissedUnits holds 1-based positions of incomplete units within a section.
type MissedUnits struct {
	Code []int
	Raw  []int
}

// Result is the grading result of one notebook against one rubric.
type Result struct {
	Variant     Special
	Sections    []SectionScore
	Missed      map[string]MissedUnits
	TotalPoints int
	Issues      []string
}

// Section returns the score of the section with the given key.
func (r Result) Section(key string) (SectionScore, bool) {
	for _, score := range r.Sections {
		if score.Key == key {
			return score, true
		}
	}

	return SectionScore{}, false
}

// ActivityResult is the outcome of one notebook activity for a student.
type ActivityResult struct {
	AssetID    string
	Notebook   string
	Missing    bool
	Score      int
	Expected   int
	ScopeLabel string
	Result     Result
}

// Percentage returns Score as a percentage of Expected.
func (a ActivityResult) Percentage() float64 {
	return percentage(a.Score, a.Expected)
}

// ScreenshotStatus records whether a screenshot asset was submitted.
type ScreenshotStatus struct {
	AssetID   string
	Completed bool
	Required  bool
}

// StudentReport is the complete grading outcome for one student.
type StudentReport struct {
	Student     Student
	Activities  []ActivityResult
	Screenshots []ScreenshotStatus
	// Text is the rendered per-student report.
	Text string
	// ReportPath is where Text was written, empty when it was not.
	ReportPath Path
	// Changes is a unified diff against the previous report, if any.
	Changes string
}

// NotebookTotal sums score and expected points over all activities.
func (s StudentReport) NotebookTotal() (int, int) {
	score, expected := 0, 0

	for _, activity := range s.Activities {
		score += activity.Score
		expected += activity.Expected
	}

	return score, expected
}

// Percentage returns the notebook total as a percentage.
func (s StudentReport) Percentage() float64 {
	return percentage(s.NotebookTotal())
}

// ScreenshotsCompleted counts submitted screenshots.
func (s StudentReport) ScreenshotsCompleted() int {
	n := 0

	for _, shot := range s.Screenshots {
		if shot.Completed {
			n++
		}
	}

	return n
}

// RequiredScreenshotsMissing counts required screenshots not submitted.
func (s StudentReport) RequiredScreenshotsMissing() int {
	n := 0

	for _, shot := range s.Screenshots {
		if shot.Required && !shot.Completed {
			n++
		}
	}

	return n
}

// ClassSummary aggregates a grading run over all students.
type ClassSummary struct {
	Course       string
	Students     []StudentReport
	Average      float64
	CombinedPath Path
	CSVPath      Path
}

// GradebookRow is one persisted activity grade.
type GradebookRow struct {
	StudentID string
	Name      string
	Activity  string
	Notebook  string
	Score     int
	Expected  int
	Missing   bool
}

// Percentage returns Score as a percentage of Expected.
func (r GradebookRow) Percentage() float64 {
	return percentage(r.Score, r.Expected)
}

// GradebookRun is one persisted grading run.
type GradebookRun struct {
	ID        string
	Course    string
	StartedAt time.Time
	Rows      []GradebookRow
}

func percentage(score, expected int) float64 {
	if expected <= 0 {
		return 0
	}

	return float64(score) / float64(expected) * 100
}
