package adapter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// ReportStore persists rendered grade reports.
type ReportStore interface {
	// SaveReport writes text to path. When a different report already
	// exists at path, the unified diff from the old to the new text is
	// returned.
	SaveReport(ctx context.Context, path m.Path, text string) (string, error)

	// SaveCSV writes rows as a CSV file.
	SaveCSV(ctx context.Context, path m.Path, rows [][]string) error
}

// LocalReportStore writes reports to the local filesystem.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport implements ReportStore.
func (s *LocalReportStore) SaveReport(ctx context.Context, path m.Path, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := string(path)

	var changes string

	previous, err := os.ReadFile(target)
	switch {
	case err == nil && string(previous) != text:
		changes, err = reportDiff(filepath.Base(target), string(previous), text)
		if err != nil {
			slog.Warn("Failed to diff report", "path", target, "error", err)
		}
	case err != nil && !os.IsNotExist(err):
		slog.Warn("Failed to read previous report", "path", target, "error", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	if err := os.WriteFile(target, []byte(text), 0o600); err != nil {
		slog.Error("Failed to write report", "path", target, "error", err)
		return "", fmt.Errorf("write report: %w", err)
	}

	slog.Debug("Saved report", "path", target, "changed", changes != "")

	return changes, nil
}

func reportDiff(name, previous, current string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(current),
		FromFile: name + " (previous)",
		ToFile:   name,
		Context:  1,
	})
}

// SaveCSV implements ReportStore.
func (s *LocalReportStore) SaveCSV(ctx context.Context, path m.Path, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// #nosec G304 - path is built from the submissions directory
	file, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return file.Close()
}
