package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

const (
	presentLabel = "yes"
	absentLabel  = "-"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayGradingStarted announces a grading run.
func (s *SimpleUI) DisplayGradingStarted(ctx context.Context, course m.Course, students int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Grading %s for %d student(s) with %d worker(s)\n", course.Name, students, threads)
}

// DisplayStudentGraded prints the finished report of one student.
func (s *SimpleUI) DisplayStudentGraded(ctx context.Context, report m.StudentReport, showDiff bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	writeStudent(s.cmd.OutOrStdout(), report, showDiff)
}

// DisplayClassSummary prints the class summary table and output files.
func (s *SimpleUI) DisplayClassSummary(ctx context.Context, summary m.ClassSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderClassSummary(summary))

	return nil
}

// DisplaySubmissions prints which assets each student submitted.
func (s *SimpleUI) DisplaySubmissions(ctx context.Context, course m.Course, listings []m.SubmissionListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSubmissionsTable(course, listings))

	return nil
}

// DisplayCourse prints the rubric of every notebook asset.
func (s *SimpleUI) DisplayCourse(ctx context.Context, course m.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderCourse(course))

	return nil
}

// DisplayGradebookRun prints a persisted grading run.
func (s *SimpleUI) DisplayGradebookRun(ctx context.Context, run m.GradebookRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderGradebookRun(run))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func writeStudent(w io.Writer, report m.StudentReport, showDiff bool) {
	_, _ = fmt.Fprintln(w, report.Text)

	if report.ReportPath != "" {
		_, _ = fmt.Fprintf(w, "\nReport written to %s\n", report.ReportPath)
	}

	if showDiff && report.Changes != "" {
		_, _ = fmt.Fprintf(w, "Changes since previous report:\n%s\n", report.Changes)
	}
}

func renderClassSummary(summary m.ClassSummary) string {
	var b strings.Builder

	if len(summary.Students) > 1 {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Student", "ID", "Notebooks", "Screenshots"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER,
		})

		for _, report := range summary.Students {
			score, expected := report.NotebookTotal()
			table.Append([]string{
				report.Student.Name,
				report.Student.ID,
				fmt.Sprintf("%d/%d (%.1f%%)", score, expected, report.Percentage()),
				fmt.Sprintf("%d/%d", report.ScreenshotsCompleted(), len(report.Screenshots)),
			})
		}

		table.Render()
		b.WriteString("\n")
		b.WriteString(tableBuffer.String())
	}

	fmt.Fprintf(&b, "\nGrading completed for %d student(s).\n", len(summary.Students))

	if len(summary.Students) > 1 {
		fmt.Fprintf(&b, "Class average: %.1f%%. Output files:\n", summary.Average)
	} else {
		b.WriteString("Output files:\n")
	}

	for _, report := range summary.Students {
		if report.ReportPath != "" {
			fmt.Fprintf(&b, "  %s\n", report.ReportPath)
		}
	}

	if summary.CombinedPath != "" {
		fmt.Fprintf(&b, "  %s\n", summary.CombinedPath)
	}

	if summary.CSVPath != "" {
		fmt.Fprintf(&b, "  %s\n", summary.CSVPath)
	}

	return b.String()
}

func renderSubmissionsTable(course m.Course, listings []m.SubmissionListing) string {
	var tableBuffer bytes.Buffer

	header := []string{"Student", "ID"}
	for _, asset := range course.Notebooks() {
		header = append(header, asset.ID)
	}

	for _, asset := range course.Screenshots() {
		header = append(header, asset.ID)
	}

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, listing := range listings {
		row := []string{listing.Student.Name, listing.Student.ID}

		for _, presence := range listing.Assets {
			switch {
			case !presence.Found:
				row = append(row, absentLabel)
			case presence.File != "":
				row = append(row, presence.File)
			default:
				row = append(row, presentLabel)
			}
		}

		table.Append(row)
	}

	table.SetFooter(append([]string{fmt.Sprintf("Total Students %d", len(listings))}, make([]string, len(header)-1)...))
	table.Render()

	return tableBuffer.String()
}

func renderCourse(course m.Course) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", course.Name)

	for _, asset := range course.Notebooks() {
		var tableBuffer bytes.Buffer

		fmt.Fprintf(&b, "\n%s (%s)\n", asset.ID, asset.Expected.AssetID)

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Section", "Name", "Code", "Raw", "Points", "Special"})
		table.SetBorder(false)
		table.SetCenterSeparator("")

		total := 0

		for _, section := range asset.Expected.Sections {
			code, raw := absentLabel, absentLabel
			if section.Split {
				code, raw = fmt.Sprintf("%d", section.CodeCells), fmt.Sprintf("%d", section.RawCells)
			}

			table.Append([]string{
				section.Key, section.Name, code, raw,
				fmt.Sprintf("%d", section.Expected()), string(section.Special),
			})

			total += section.Expected()
		}

		table.SetFooter([]string{fmt.Sprintf("Sections %d", len(asset.Expected.Sections)), "", "", "", fmt.Sprintf("%d", total), ""})
		table.Render()
		b.WriteString(tableBuffer.String())
	}

	if shots := course.Screenshots(); len(shots) > 0 {
		b.WriteString("\nScreenshots:\n")

		for _, shot := range shots {
			required := ""
			if shot.Required {
				required = " (Required)"
			}

			fmt.Fprintf(&b, "  %s%s\n", shot.ID, required)
		}
	}

	return b.String()
}

func renderGradebookRun(run m.GradebookRun) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Student", "ID", "Activity", "Notebook", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, row := range run.Rows {
		notebook, score := row.Notebook, fmt.Sprintf("%d/%d (%.1f%%)", row.Score, row.Expected, row.Percentage())
		if row.Missing {
			notebook, score = "MISSING", fmt.Sprintf("0/%d", row.Expected)
		}

		table.Append([]string{row.Name, row.StudentID, row.Activity, notebook, score})
	}

	table.Render()

	return fmt.Sprintf("Run %s of %s at %s\n\n%s",
		run.ID, run.Course, run.StartedAt.Format("2006-01-02 15:04:05"), tableBuffer.String())
}
