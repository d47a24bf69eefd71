package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeCmd_MultiStudent(t *testing.T) {
	root := classFixture(t)

	output, err := executeCommand(t, newGradeCmd(), "grade", root, "-m", "--no-gradebook")
	require.NoError(t, err)

	assert.Contains(t, output, "Grading completed for 2 student(s).")
	assert.Contains(t, output, "Class average:")

	reportPath := filepath.Join(root, "Alice_101", "Alice_101_GL4U-RNAseq_Grades.txt")
	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Alice (ID: 101)")
	assert.Contains(t, string(report), "HANDS-ON_ACTIVITY_1: 3/40 (7.5%)")
	assert.Contains(t, string(report), "GL4U_RNAseq_On-Demand_Pre-Course_Survey: 1/1")

	assert.FileExists(t, filepath.Join(root, "Bob_102", "Bob_102_GL4U-RNAseq_Grades.txt"))
	assert.FileExists(t, filepath.Join(root, "GL4U-RNAseq_All_Grades.txt"))
	assert.FileExists(t, filepath.Join(root, "GL4U-RNAseq_Grading_Summary.csv"))
}

func TestGradeCmd_VerboseAddsBreakdown(t *testing.T) {
	root := classFixture(t)

	_, err := executeCommand(t, newGradeCmd(), "grade", root, "-m", "-v", "--no-gradebook")
	require.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(root, "Alice_101", "Alice_101_GL4U-RNAseq_Grades.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Code cells: 2/5")
	assert.Contains(t, string(report), "Raw cells: 1/2")
}

func TestGradeCmd_EmptyDirectoryFails(t *testing.T) {
	_, err := executeCommand(t, newGradeCmd(), "grade", t.TempDir(), "-m", "--no-gradebook")
	require.Error(t, err)
}

func TestGradeCmd_UnknownCourseFile(t *testing.T) {
	_, err := executeCommand(t, newGradeCmd(), "grade", t.TempDir(),
		"--course", filepath.Join(t.TempDir(), "missing.yaml"), "--no-gradebook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load course")
}
