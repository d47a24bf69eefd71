package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"nbgrade.dev/pkg/nbgrade/internal/adapter"
	"nbgrade.dev/pkg/nbgrade/internal/controller"
	m "nbgrade.dev/pkg/nbgrade/internal/model"
	"nbgrade.dev/pkg/nbgrade/pkg"
)

const processingIssue = "Error processing notebook: "

// GradebookArgs selects where grading runs are recorded.
type GradebookArgs struct {
	Disabled bool
	Driver   adapter.GradebookDriver
	DSN      string
}

// GradeArgs contains the arguments for grading a submissions directory.
type GradeArgs struct {
	Course       m.Course
	Submissions  m.Path
	MultiStudent bool
	Verbose      bool
	ShowDiff     bool
	Threads      int
	// SpillDir holds the temporary report buffer, os.TempDir when empty.
	SpillDir  string
	Gradebook GradebookArgs
}

// ListArgs contains the arguments for listing submissions.
type ListArgs struct {
	Course       m.Course
	Submissions  m.Path
	MultiStudent bool
}

// RubricArgs contains the arguments for printing a course rubric.
type RubricArgs struct {
	Course m.Course
	// AssetID restricts output to one asset when set.
	AssetID string
}

// ViewArgs contains the arguments for showing the latest recorded run.
type ViewArgs struct {
	Course    m.Course
	Gradebook GradebookArgs
}

// Workflow runs the user-facing grading operations.
type Workflow interface {
	Grade(ctx context.Context, args GradeArgs) (m.ClassSummary, error)
	List(ctx context.Context, args ListArgs) ([]m.SubmissionListing, error)
	Rubric(ctx context.Context, args RubricArgs) error
	View(ctx context.Context, args ViewArgs) (m.GradebookRun, error)
}

type workflow struct {
	adapter.SubmissionFSAdapter
	adapter.ReportStore
	adapter.GradebookOpener
	controller.UI
	Grader
	now func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SubmissionFSAdapter,
	reportStore adapter.ReportStore,
	gradebooks adapter.GradebookOpener,
	ui controller.UI,
	grader Grader,
) Workflow {
	return &workflow{
		SubmissionFSAdapter: fsAdapter,
		ReportStore:         reportStore,
		GradebookOpener:     gradebooks,
		UI:                  ui,
		Grader:              grader,
		now:                 time.Now,
	}
}

// Grade grades every student found under the submissions directory, writes
// their reports and the class summary, and records the run.
func (w *workflow) Grade(ctx context.Context, args GradeArgs) (m.ClassSummary, error) {
	students, err := w.ListStudents(ctx, args.Submissions, args.MultiStudent, args.Course.SubmissionDirPattern)
	if err != nil {
		return m.ClassSummary{}, fmt.Errorf("list students: %w", err)
	}

	if len(students) == 0 {
		return m.ClassSummary{}, fmt.Errorf("no student submissions in %s", args.Submissions)
	}

	threads := max(args.Threads, 1)
	w.DisplayGradingStarted(ctx, args.Course, len(students), threads)

	startedAt := w.now()

	reports, gradeErr := w.gradeStudents(ctx, args, students, threads)
	if gradeErr != nil && len(reports) == 0 {
		return m.ClassSummary{}, gradeErr
	}

	summary, err := w.writeSummary(ctx, args, reports)
	if err != nil {
		return summary, errors.Join(gradeErr, err)
	}

	for _, report := range reports {
		w.DisplayStudentGraded(ctx, report, args.ShowDiff)
	}

	if !args.Gradebook.Disabled {
		if err := w.record(ctx, args, startedAt, reports); err != nil {
			gradeErr = errors.Join(gradeErr, err)
		}
	}

	if err := w.DisplayClassSummary(ctx, summary); err != nil {
		return summary, errors.Join(gradeErr, err)
	}

	return summary, gradeErr
}

func (w *workflow) gradeStudents(ctx context.Context, args GradeArgs, students []m.Student, threads int) ([]m.StudentReport, error) {
	spill, err := pkg.NewSpill[m.StudentReport](args.SpillDir)
	if err != nil {
		return nil, fmt.Errorf("create report buffer: %w", err)
	}

	defer func() {
		if closeErr := spill.Close(); closeErr != nil {
			slog.Error("Failed to remove report buffer", "path", spill.Path(), "error", closeErr)
		}
	}()

	var group errgroup.Group
	group.SetLimit(threads)

	for _, student := range students {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report := w.gradeStudent(ctx, args.Course, student)
			report.Text = RenderStudentReport(report, args.Verbose)

			path := w.JoinPath(string(student.Dir), StudentReportFile(args.Course, student))

			changes, err := w.SaveReport(ctx, path, report.Text)
			if err != nil {
				return fmt.Errorf("save report of %s: %w", student.ID, err)
			}

			report.ReportPath, report.Changes = path, changes

			return spill.Append(report)
		})
	}

	groupErr := group.Wait()

	reports := make([]m.StudentReport, 0, spill.Len())

	err = spill.Range(func(_ int, report m.StudentReport) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, errors.Join(groupErr, fmt.Errorf("read report buffer: %w", err))
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Student.ID < reports[j].Student.ID })

	return reports, groupErr
}

// gradeStudent grades all assets of one student. Problems with a single
// notebook are recorded in its result and never abort the student.
func (w *workflow) gradeStudent(ctx context.Context, course m.Course, student m.Student) m.StudentReport {
	report := m.StudentReport{Student: student}

	for _, asset := range course.Notebooks() {
		report.Activities = append(report.Activities, w.gradeActivity(ctx, student, asset))
	}

	for _, asset := range course.Screenshots() {
		found, err := w.HasFiles(ctx, w.JoinPath(string(student.Dir), asset.ID))
		if err != nil {
			slog.Error("Failed to check screenshot", "student", student.ID, "asset", asset.ID, "error", err)
		}

		report.Screenshots = append(report.Screenshots, m.ScreenshotStatus{
			AssetID:   asset.ID,
			Completed: found,
			Required:  asset.Required,
		})
	}

	return report
}

func (w *workflow) gradeActivity(ctx context.Context, student m.Student, asset m.Asset) m.ActivityResult {
	activity := m.ActivityResult{AssetID: asset.ID, ScopeLabel: asset.Overrides.ScopeLabel}

	path, err := w.FindNotebook(ctx, w.JoinPath(string(student.Dir), asset.ID), asset.FilenamePattern)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			slog.Error("Failed to look up notebook", "student", student.ID, "asset", asset.ID, "error", err)
		}

		_, activity.Expected = CountedScore(m.Result{}, asset.Expected, asset.Overrides)
		activity.Missing = true

		return activity
	}

	activity.Notebook = filepath.Base(string(path))
	activity.Result = w.gradeNotebook(ctx, path, asset)
	activity.Score, activity.Expected = CountedScore(activity.Result, asset.Expected, asset.Overrides)

	slog.Debug("Graded notebook", "student", student.ID, "asset", asset.ID, "score", activity.Score, "expected", activity.Expected)

	return activity
}

func (w *workflow) gradeNotebook(ctx context.Context, path m.Path, asset m.Asset) m.Result {
	data, err := w.ReadFile(ctx, path)
	if err == nil {
		var notebook m.Notebook

		notebook, err = m.ParseNotebook(data)
		if err == nil {
			return ApplyOverrides(w.Grader.Grade(notebook, asset.Expected), asset.Expected, asset.Overrides)
		}
	}

	slog.Error("Failed to process notebook", "path", path, "error", err)

	return m.Result{Issues: []string{processingIssue + err.Error()}}
}

func (w *workflow) writeSummary(ctx context.Context, args GradeArgs, reports []m.StudentReport) (m.ClassSummary, error) {
	summary := m.ClassSummary{
		Course:   args.Course.Name,
		Students: reports,
		Average:  ClassAverage(reports),
	}

	root := string(args.Submissions)

	if len(reports) > 1 {
		summary.CombinedPath = w.JoinPath(root, CombinedReportFile(args.Course))

		if _, err := w.SaveReport(ctx, summary.CombinedPath, RenderCombinedReport(reports)); err != nil {
			return summary, fmt.Errorf("save combined report: %w", err)
		}
	}

	summary.CSVPath = w.JoinPath(root, SummaryCSVFile(args.Course))

	if err := w.SaveCSV(ctx, summary.CSVPath, SummaryRows(args.Course, reports)); err != nil {
		return summary, fmt.Errorf("save summary: %w", err)
	}

	return summary, nil
}

func (w *workflow) record(ctx context.Context, args GradeArgs, startedAt time.Time, reports []m.StudentReport) error {
	store, err := w.Open(ctx, args.Gradebook.Driver, args.Gradebook.DSN)
	if err != nil {
		return fmt.Errorf("open gradebook: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close gradebook", "error", closeErr)
		}
	}()

	run := m.GradebookRun{Course: args.Course.Name, StartedAt: startedAt, Rows: GradebookRows(reports)}

	id, err := store.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("save grading run: %w", err)
	}

	slog.Info("Recorded grading run", "id", id, "rows", len(run.Rows))

	return nil
}

// GradebookRows flattens student reports into one row per activity.
func GradebookRows(reports []m.StudentReport) []m.GradebookRow {
	var rows []m.GradebookRow

	for _, report := range reports {
		for _, activity := range report.Activities {
			rows = append(rows, m.GradebookRow{
				StudentID: report.Student.ID,
				Name:      report.Student.Name,
				Activity:  activity.AssetID,
				Notebook:  activity.Notebook,
				Score:     activity.Score,
				Expected:  activity.Expected,
				Missing:   activity.Missing,
			})
		}
	}

	return rows
}

// List reports which course assets every student submitted.
func (w *workflow) List(ctx context.Context, args ListArgs) ([]m.SubmissionListing, error) {
	students, err := w.ListStudents(ctx, args.Submissions, args.MultiStudent, args.Course.SubmissionDirPattern)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	listings := make([]m.SubmissionListing, 0, len(students))

	for _, student := range students {
		listing := m.SubmissionListing{Student: student}

		for _, asset := range append(args.Course.Notebooks(), args.Course.Screenshots()...) {
			presence, err := w.presence(ctx, student, asset)
			if err != nil {
				return nil, err
			}

			listing.Assets = append(listing.Assets, presence)
		}

		listings = append(listings, listing)
	}

	if err := w.DisplaySubmissions(ctx, args.Course, listings); err != nil {
		return listings, err
	}

	return listings, nil
}

func (w *workflow) presence(ctx context.Context, student m.Student, asset m.Asset) (m.AssetPresence, error) {
	presence := m.AssetPresence{AssetID: asset.ID, Type: asset.Type}
	dir := w.JoinPath(string(student.Dir), asset.ID)

	if asset.Type == m.AssetScreenshot {
		found, err := w.HasFiles(ctx, dir)
		if err != nil {
			return presence, fmt.Errorf("check %s of %s: %w", asset.ID, student.ID, err)
		}

		presence.Found = found

		return presence, nil
	}

	path, err := w.FindNotebook(ctx, dir, asset.FilenamePattern)

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return presence, nil
	case err != nil:
		return presence, fmt.Errorf("find %s of %s: %w", asset.ID, student.ID, err)
	}

	presence.Found, presence.File = true, filepath.Base(string(path))

	return presence, nil
}

// Rubric shows the expectations of a course, optionally of one asset.
func (w *workflow) Rubric(ctx context.Context, args RubricArgs) error {
	course := args.Course

	if args.AssetID != "" {
		asset, ok := course.Asset(args.AssetID)
		if !ok {
			return fmt.Errorf("unknown asset %q in course %s", args.AssetID, course.Name)
		}

		course.Assets = m.Assets{asset}
	}

	return w.DisplayCourse(ctx, course)
}

// View shows the most recent recorded run of the course.
func (w *workflow) View(ctx context.Context, args ViewArgs) (m.GradebookRun, error) {
	if args.Gradebook.Disabled {
		return m.GradebookRun{}, errors.New("gradebook is disabled")
	}

	store, err := w.Open(ctx, args.Gradebook.Driver, args.Gradebook.DSN)
	if err != nil {
		return m.GradebookRun{}, fmt.Errorf("open gradebook: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close gradebook", "error", closeErr)
		}
	}()

	run, err := store.LatestRun(ctx, args.Course.Name)
	if err != nil {
		return m.GradebookRun{}, fmt.Errorf("load latest run: %w", err)
	}

	if err := w.DisplayGradebookRun(ctx, run); err != nil {
		return run, err
	}

	return run, nil
}
