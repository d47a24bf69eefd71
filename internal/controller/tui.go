package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeLines is the space taken by the pager title and footer.
	chromeLines = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI for terminals. Long output is shown in a scrollable
// pager, short output is printed directly.
type TUI struct {
	output  io.Writer
	pending strings.Builder
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayGradingStarted prints a styled run header.
func (t *TUI) DisplayGradingStarted(ctx context.Context, course m.Course, students int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintln(t.output, titleStyle.Render(
		fmt.Sprintf("Grading %s: %d student(s), %d worker(s)", course.Name, students, threads)))
}

// DisplayStudentGraded buffers a student report until the summary is shown.
func (t *TUI) DisplayStudentGraded(ctx context.Context, report m.StudentReport, showDiff bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	writeStudent(&t.pending, report, showDiff)
}

// DisplayClassSummary shows the buffered reports followed by the summary.
func (t *TUI) DisplayClassSummary(ctx context.Context, summary m.ClassSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := t.pending.String() + colorAverage(renderClassSummary(summary), summary.Average)
	t.pending.Reset()

	return t.page("Grading results", content)
}

// DisplaySubmissions shows the submission listing.
func (t *TUI) DisplaySubmissions(ctx context.Context, course m.Course, listings []m.SubmissionListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page("Submissions for "+course.Name, renderSubmissionsTable(course, listings))
}

// DisplayCourse shows the course rubrics.
func (t *TUI) DisplayCourse(ctx context.Context, course m.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page("Rubric", renderCourse(course))
}

// DisplayGradebookRun shows a persisted grading run.
func (t *TUI) DisplayGradebookRun(ctx context.Context, run m.GradebookRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page("Gradebook", renderGradebookRun(run))
}

func (t *TUI) page(title, content string) error {
	width, height := defaultWidth, defaultHeight

	if f, ok := t.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	if strings.Count(content, "\n") <= height-chromeLines {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	program := tea.NewProgram(newPagerModel(title, content, width, height), tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// Leave the content on screen once the pager closes.
	_, err := fmt.Fprint(t.output, content)

	return err
}

func colorAverage(summary string, average float64) string {
	line := fmt.Sprintf("Class average: %.1f%%.", average)

	style := goodStyle
	if average < 50 {
		style = badStyle
	}

	return strings.Replace(summary, line, style.Render(line), 1)
}

// pagerModel scrolls long output in a viewport.
type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, height-chromeLines)
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = msg.Height - chromeLines
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := footerStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", pm.viewport.ScrollPercent()*100))

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + footer
}
