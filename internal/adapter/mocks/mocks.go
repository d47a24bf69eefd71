// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nbgrade.dev/pkg/nbgrade/internal/adapter"
	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// MockSubmissionFSAdapter is a mock of adapter.SubmissionFSAdapter.
type MockSubmissionFSAdapter struct {
	mock.Mock
}

// ListStudents provides a mock function.
func (_m *MockSubmissionFSAdapter) ListStudents(ctx context.Context, root m.Path, multi bool, dirPattern string) ([]m.Student, error) {
	ret := _m.Called(ctx, root, multi, dirPattern)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, bool, string) ([]m.Student, error)); ok {
		return rf(ctx, root, multi, dirPattern)
	}

	students, _ := ret.Get(0).([]m.Student)

	return students, ret.Error(1)
}

// FindNotebook provides a mock function.
func (_m *MockSubmissionFSAdapter) FindNotebook(ctx context.Context, activityDir m.Path, pattern string) (m.Path, error) {
	ret := _m.Called(ctx, activityDir, pattern)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, string) (m.Path, error)); ok {
		return rf(ctx, activityDir, pattern)
	}

	return ret.Get(0).(m.Path), ret.Error(1)
}

// HasFiles provides a mock function.
func (_m *MockSubmissionFSAdapter) HasFiles(ctx context.Context, dir m.Path) (bool, error) {
	ret := _m.Called(ctx, dir)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) (bool, error)); ok {
		return rf(ctx, dir)
	}

	return ret.Bool(0), ret.Error(1)
}

// ReadFile provides a mock function.
func (_m *MockSubmissionFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	ret := _m.Called(ctx, path)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) ([]byte, error)); ok {
		return rf(ctx, path)
	}

	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

// JoinPath provides a mock function.
func (_m *MockSubmissionFSAdapter) JoinPath(elem ...string) m.Path {
	args := make([]interface{}, len(elem))
	for i, e := range elem {
		args[i] = e
	}

	ret := _m.Called(args...)

	if rf, ok := ret.Get(0).(func(...string) m.Path); ok {
		return rf(elem...)
	}

	return ret.Get(0).(m.Path)
}

// MockReportStore is a mock of adapter.ReportStore.
type MockReportStore struct {
	mock.Mock
}

// SaveReport provides a mock function.
func (_m *MockReportStore) SaveReport(ctx context.Context, path m.Path, text string) (string, error) {
	ret := _m.Called(ctx, path, text)
	return ret.String(0), ret.Error(1)
}

// SaveCSV provides a mock function.
func (_m *MockReportStore) SaveCSV(ctx context.Context, path m.Path, rows [][]string) error {
	ret := _m.Called(ctx, path, rows)
	return ret.Error(0)
}

// MockGradebookOpener is a mock of adapter.GradebookOpener.
type MockGradebookOpener struct {
	mock.Mock
}

// Open provides a mock function.
func (_m *MockGradebookOpener) Open(ctx context.Context, driver adapter.GradebookDriver, dsn string) (adapter.GradebookStore, error) {
	ret := _m.Called(ctx, driver, dsn)

	store, _ := ret.Get(0).(adapter.GradebookStore)

	return store, ret.Error(1)
}

// MockGradebookStore is a mock of adapter.GradebookStore.
type MockGradebookStore struct {
	mock.Mock
}

// SaveRun provides a mock function.
func (_m *MockGradebookStore) SaveRun(ctx context.Context, run m.GradebookRun) (string, error) {
	ret := _m.Called(ctx, run)
	return ret.String(0), ret.Error(1)
}

// LatestRun provides a mock function.
func (_m *MockGradebookStore) LatestRun(ctx context.Context, course string) (m.GradebookRun, error) {
	ret := _m.Called(ctx, course)
	return ret.Get(0).(m.GradebookRun), ret.Error(1)
}

// Close provides a mock function.
func (_m *MockGradebookStore) Close() error {
	return _m.Called().Error(0)
}

var (
	_ adapter.SubmissionFSAdapter = (*MockSubmissionFSAdapter)(nil)
	_ adapter.ReportStore         = (*MockReportStore)(nil)
	_ adapter.GradebookOpener     = (*MockGradebookOpener)(nil)
	_ adapter.GradebookStore      = (*MockGradebookStore)(nil)
)
