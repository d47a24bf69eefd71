// Package controller provides output adapters for displaying grading results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// UI defines how grading progress and results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayGradingStarted(ctx context.Context, course m.Course, students int, threads int)
	DisplayStudentGraded(ctx context.Context, report m.StudentReport, showDiff bool)
	DisplayClassSummary(ctx context.Context, summary m.ClassSummary) error
	DisplaySubmissions(ctx context.Context, course m.Course, listings []m.SubmissionListing) error
	DisplayCourse(ctx context.Context, course m.Course) error
	DisplayGradebookRun(ctx context.Context, run m.GradebookRun) error
}

// NewUI returns a TUI when the command writes to a terminal and interactive
// output is allowed, and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive && IsTTY(cmd.OutOrStdout()) {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
