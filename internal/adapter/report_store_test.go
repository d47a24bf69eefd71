package adapter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func TestLocalReportStore_SaveReport(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	path := m.Path(filepath.Join(t.TempDir(), "Alice_101", "Alice_101_X_Grades.txt"))

	changes, err := store.SaveReport(ctx, path, "score 1\nsame\n")
	require.NoError(t, err)
	assert.Empty(t, changes, "first write has nothing to compare")

	changes, err = store.SaveReport(ctx, path, "score 1\nsame\n")
	require.NoError(t, err)
	assert.Empty(t, changes, "unchanged report")

	changes, err = store.SaveReport(ctx, path, "score 2\nsame\n")
	require.NoError(t, err)
	assert.Contains(t, changes, "-score 1")
	assert.Contains(t, changes, "+score 2")
	assert.Contains(t, changes, "Alice_101_X_Grades.txt (previous)")

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "score 2\nsame\n", string(data))
}

func TestLocalReportStore_SaveReportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReportStore().SaveReport(ctx, m.Path(filepath.Join(t.TempDir(), "r.txt")), "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalReportStore_SaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	rows := [][]string{
		{"Student", "ID", "Notebook Total"},
		{"Alice, A.", "101", "3/4 (75.0%)"},
	}

	require.NoError(t, NewReportStore().SaveCSV(context.Background(), m.Path(path), rows))

	file, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = file.Close() }()

	got, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
