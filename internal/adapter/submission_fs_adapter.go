// Package adapter contains the filesystem, configuration and persistence
// adapters used by the grading workflow.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

const notebookExt = ".ipynb"

// ErrNotFound is returned when an expected submission file is absent.
var ErrNotFound = errors.New("not found")

// SubmissionFSAdapter abstracts the filesystem layout of a submissions
// directory so the workflow can be tested without touching the disk.
type SubmissionFSAdapter interface {
	// ListStudents discovers student folders under root. In multi mode only
	// Name_ID folders count; otherwise root itself is the fallback submission.
	ListStudents(ctx context.Context, root m.Path, multi bool, dirPattern string) ([]m.Student, error)

	// FindNotebook returns the notebook of an activity folder. With several
	// notebooks present the first one whose name contains pattern wins.
	FindNotebook(ctx context.Context, activityDir m.Path, pattern string) (m.Path, error)

	// HasFiles reports whether dir exists and contains at least one entry.
	HasFiles(ctx context.Context, dir m.Path) (bool, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSubmissionFSAdapter is the os-backed SubmissionFSAdapter.
type LocalSubmissionFSAdapter struct{}

// NewLocalSubmissionFSAdapter constructs a LocalSubmissionFSAdapter.
func NewLocalSubmissionFSAdapter() *LocalSubmissionFSAdapter {
	return &LocalSubmissionFSAdapter{}
}

// ListStudents implements SubmissionFSAdapter.
func (a *LocalSubmissionFSAdapter) ListStudents(ctx context.Context, root m.Path, multi bool, dirPattern string) ([]m.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootStr := string(root)

	info, err := os.Stat(rootStr)
	if err != nil {
		return nil, fmt.Errorf("submissions directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("submissions directory %s: not a directory", rootStr)
	}

	entries, err := os.ReadDir(rootStr)
	if err != nil {
		return nil, fmt.Errorf("read submissions directory: %w", err)
	}

	var students []m.Student

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name, id, ok := ParseStudentDir(entry.Name())
		if !ok {
			continue
		}

		students = append(students, m.Student{
			ID:   id,
			Name: name,
			Dir:  m.Path(filepath.Join(rootStr, entry.Name())),
		})
	}

	if len(students) == 0 && !multi {
		students = fallbackStudent(rootStr, dirPattern)
	}

	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	return students, nil
}

// ParseStudentDir splits a Name_ID folder name. The id is the last
// underscore-separated part and must be all digits.
func ParseStudentDir(dirName string) (string, string, bool) {
	idx := strings.LastIndex(dirName, "_")
	if idx <= 0 || idx == len(dirName)-1 {
		return "", "", false
	}

	id := dirName[idx+1:]
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}

	return dirName[:idx], id, true
}

func fallbackStudent(root, dirPattern string) []m.Student {
	if dirPattern != "" {
		re, err := regexp.Compile(dirPattern)
		if err == nil {
			if match := re.FindStringSubmatch(root); len(match) > 1 {
				name := strings.TrimSuffix(match[0], "_"+match[1])
				return []m.Student{{ID: match[1], Name: name, Dir: m.Path(root)}}
			}
		}
	}

	return []m.Student{{
		ID:   "0",
		Name: filepath.Base(strings.TrimRight(root, string(filepath.Separator))),
		Dir:  m.Path(root),
	}}
}

// FindNotebook implements SubmissionFSAdapter.
func (a *LocalSubmissionFSAdapter) FindNotebook(ctx context.Context, activityDir m.Path, pattern string) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(string(activityDir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("activity directory %s: %w", activityDir, ErrNotFound)
		}

		return "", err
	}

	var notebooks []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), notebookExt) {
			notebooks = append(notebooks, entry.Name())
		}
	}

	sort.Strings(notebooks)

	switch {
	case len(notebooks) == 1:
		return m.Path(filepath.Join(string(activityDir), notebooks[0])), nil
	case len(notebooks) > 1:
		for _, name := range notebooks {
			if strings.Contains(name, pattern) {
				return m.Path(filepath.Join(string(activityDir), name)), nil
			}
		}

		return "", fmt.Errorf("no notebook matching %q in %s: %w", pattern, activityDir, ErrNotFound)
	default:
		return "", fmt.Errorf("no notebooks in %s: %w", activityDir, ErrNotFound)
	}
}

// HasFiles implements SubmissionFSAdapter.
func (a *LocalSubmissionFSAdapter) HasFiles(ctx context.Context, dir m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return len(entries) > 0, nil
}

// ReadFile implements SubmissionFSAdapter.
func (a *LocalSubmissionFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// JoinPath implements SubmissionFSAdapter.
func (a *LocalSubmissionFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
