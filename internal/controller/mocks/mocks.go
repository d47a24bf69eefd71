// Package mocks provides testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nbgrade.dev/pkg/nbgrade/internal/controller"
	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// DisplayGradingStarted provides a mock function.
func (_m *MockUI) DisplayGradingStarted(ctx context.Context, course m.Course, students int, threads int) {
	_m.Called(ctx, course, students, threads)
}

// DisplayStudentGraded provides a mock function.
func (_m *MockUI) DisplayStudentGraded(ctx context.Context, report m.StudentReport, showDiff bool) {
	_m.Called(ctx, report, showDiff)
}

// DisplayClassSummary provides a mock function.
func (_m *MockUI) DisplayClassSummary(ctx context.Context, summary m.ClassSummary) error {
	return _m.Called(ctx, summary).Error(0)
}

// DisplaySubmissions provides a mock function.
func (_m *MockUI) DisplaySubmissions(ctx context.Context, course m.Course, listings []m.SubmissionListing) error {
	return _m.Called(ctx, course, listings).Error(0)
}

// DisplayCourse provides a mock function.
func (_m *MockUI) DisplayCourse(ctx context.Context, course m.Course) error {
	return _m.Called(ctx, course).Error(0)
}

// DisplayGradebookRun provides a mock function.
func (_m *MockUI) DisplayGradebookRun(ctx context.Context, run m.GradebookRun) error {
	return _m.Called(ctx, run).Error(0)
}

var _ controller.UI = (*MockUI)(nil)
