package domain

import (
	"fmt"
	"sort"
	"strings"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

const (
	defaultScopeLabel = "all sections"
	studentSeparator  = "\n" + "================================================================================" + "\n"
	maxSectionName    = 33
	shortSectionName  = 30
)

// StudentReportFile is the per-student report file name.
func StudentReportFile(course m.Course, student m.Student) string {
	return fmt.Sprintf("%s_%s_%s_Grades.txt", student.Name, student.ID, course.ReportPrefix)
}

// CombinedReportFile is the all-students report file name.
func CombinedReportFile(course m.Course) string {
	return course.ReportPrefix + "_All_Grades.txt"
}

// SummaryCSVFile is the class summary CSV file name.
func SummaryCSVFile(course m.Course) string {
	return course.ReportPrefix + "_Grading_Summary.csv"
}

// RenderStudentReport renders the text report of one student. Verbose adds
// the code/raw breakdown and missed unit positions of every section.
func RenderStudentReport(report m.StudentReport, verbose bool) string {
	lines := []string{
		fmt.Sprintf("\n%s (ID: %s)", report.Student.Name, report.Student.ID),
		"\nSummary:",
	}

	score, expected := report.NotebookTotal()
	lines = append(lines, fmt.Sprintf("  Notebook Activities %d/%d (%.1f%%):", score, expected, report.Percentage()))

	for _, activity := range report.Activities {
		if activity.Missing {
			lines = append(lines, fmt.Sprintf("    • %s: MISSING (0/%d - 0%%)", activity.AssetID, activity.Expected))
			continue
		}

		lines = append(lines, fmt.Sprintf("    • %s: %d/%d (%.1f%%)", activity.AssetID, activity.Score, activity.Expected, activity.Percentage()))
	}

	lines = append(lines, fmt.Sprintf("  Screenshots: %d/%d", report.ScreenshotsCompleted(), len(report.Screenshots)))

	for _, shot := range report.Screenshots {
		status, required := "0/1", ""
		if shot.Completed {
			status = "1/1"
		} else if shot.Required {
			required = " (Required)"
		}

		lines = append(lines, fmt.Sprintf("    • %s: %s%s", shot.AssetID, status, required))
	}

	for _, activity := range report.Activities {
		lines = append(lines, renderActivity(activity, verbose)...)
	}

	return strings.Join(lines, "\n")
}

func renderActivity(activity m.ActivityResult, verbose bool) []string {
	if activity.Missing {
		return []string{
			fmt.Sprintf("\nChecking %s:", activity.AssetID),
			fmt.Sprintf("  Notebook not found. Expected points: %d", activity.Expected),
		}
	}

	scope := activity.ScopeLabel
	if scope == "" {
		scope = defaultScopeLabel
	}

	lines := []string{
		fmt.Sprintf("\nChecking %s:", activity.Notebook),
		fmt.Sprintf("  Total completed: %d/%d (%.1f%%) [%s]", activity.Score, activity.Expected, activity.Percentage(), scope),
	}

	for _, issue := range activity.Result.Issues {
		lines = append(lines, "  Issue: "+issue)
	}

	lines = append(lines, "  Section completion:")

	sections := append([]m.SectionScore(nil), activity.Result.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Key < sections[j].Key })

	names := make([]string, len(sections))
	width := 0

	for i, score := range sections {
		names[i] = score.Key + " " + shortName(score.Name)
		width = max(width, len(names[i]))
	}

	for i, score := range sections {
		lines = append(lines, fmt.Sprintf("    %-*s : %2d/%-2d", width, names[i], score.Earned(), score.Expected()))
	}

	if verbose {
		lines = append(lines, renderSectionDetails(activity.Result)...)
	}

	return lines
}

func renderSectionDetails(result m.Result) []string {
	var lines []string

	for _, score := range result.Sections {
		if score.PointsOnly {
			continue
		}

		title := "Section " + score.Key
		if score.Name != "" {
			title += " - " + score.Name
		}

		lines = append(lines,
			fmt.Sprintf("  %s:", title),
			fmt.Sprintf("    Code cells: %d/%d", score.EarnedCode, score.ExpectedCode),
			fmt.Sprintf("    Raw cells: %d/%d", score.EarnedRaw, score.ExpectedRaw),
			fmt.Sprintf("    Total: %d/%d", score.Earned(), score.Expected()),
		)

		missed := result.Missed[score.Key]
		if len(missed.Code) > 0 && score.ExpectedCode > 0 {
			lines = append(lines, "    Missing code cells: "+formatPositions(missed.Code))
		}

		if len(missed.Raw) > 0 && score.ExpectedRaw > 0 {
			lines = append(lines, "    Missing raw cells: "+formatPositions(missed.Raw))
		}
	}

	return lines
}

func shortName(name string) string {
	if len(name) > maxSectionName {
		return name[:shortSectionName] + "..."
	}

	return name
}

func formatPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("#%d", p)
	}

	return strings.Join(parts, ", ")
}

// RenderCombinedReport joins student reports with a separator rule.
func RenderCombinedReport(reports []m.StudentReport) string {
	parts := make([]string, 0, 2*len(reports))
	for _, report := range reports {
		parts = append(parts, report.Text, studentSeparator)
	}

	return strings.Join(parts, "\n")
}

// SummaryRows builds the class summary CSV. Activities without a notebook
// show N/A and are left out of the notebook total.
func SummaryRows(course m.Course, reports []m.StudentReport) [][]string {
	notebooks := course.Notebooks()

	header := []string{"Student", "ID"}
	for _, asset := range notebooks {
		header = append(header, asset.ID)
	}

	header = append(header, "Notebook Total", "Screenshots")
	rows := [][]string{header}

	for _, report := range reports {
		row := []string{report.Student.Name, report.Student.ID}
		score, expected := submittedTotal(report)

		for _, asset := range notebooks {
			activity, ok := findActivity(report, asset.ID)
			if !ok || activity.Missing {
				row = append(row, "N/A")
				continue
			}

			row = append(row, fmt.Sprintf("%d/%d (%.1f%%)", activity.Score, activity.Expected, activity.Percentage()))
		}

		total := "N/A"
		if expected > 0 {
			total = fmt.Sprintf("%d/%d (%.1f%%)", score, expected, float64(score)/float64(expected)*100)
		}

		row = append(row, total, fmt.Sprintf("%d/%d", report.ScreenshotsCompleted(), len(course.Screenshots())))
		rows = append(rows, row)
	}

	return rows
}

// ClassAverage is the mean over students of their submitted-notebook
// percentage.
func ClassAverage(reports []m.StudentReport) float64 {
	if len(reports) == 0 {
		return 0
	}

	sum := 0.0

	for _, report := range reports {
		score, expected := submittedTotal(report)
		if expected > 0 {
			sum += float64(score) / float64(expected) * 100
		}
	}

	return sum / float64(len(reports))
}

func submittedTotal(report m.StudentReport) (int, int) {
	score, expected := 0, 0

	for _, activity := range report.Activities {
		if activity.Missing {
			continue
		}

		score += activity.Score
		expected += activity.Expected
	}

	return score, expected
}

func findActivity(report m.StudentReport, assetID string) (m.ActivityResult, bool) {
	for _, activity := range report.Activities {
		if activity.AssetID == assetID {
			return activity, true
		}
	}

	return m.ActivityResult{}, false
}
