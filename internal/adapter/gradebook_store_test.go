package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

func openTestGradebook(t *testing.T) GradebookStore {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "gradebook.db")

	store, err := NewSQLGradebookOpener().Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSQLGradebook_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	store := openTestGradebook(t)

	older := m.GradebookRun{
		Course:    "demo",
		StartedAt: time.UnixMilli(1_700_000_000_000),
		Rows:      []m.GradebookRow{{StudentID: "101", Name: "Alice", Activity: "ACT_1", Score: 1, Expected: 4}},
	}
	newer := m.GradebookRun{
		Course:    "demo",
		StartedAt: time.UnixMilli(1_700_000_500_000),
		Rows: []m.GradebookRow{
			{StudentID: "102", Name: "Bob", Activity: "ACT_1", Expected: 4, Missing: true},
			{StudentID: "101", Name: "Alice", Activity: "ACT_1", Notebook: "demo.ipynb", Score: 3, Expected: 4},
		},
	}
	other := m.GradebookRun{Course: "other", StartedAt: time.UnixMilli(1_800_000_000_000)}

	olderID, err := store.SaveRun(ctx, older)
	require.NoError(t, err)
	assert.NotEmpty(t, olderID)

	newerID, err := store.SaveRun(ctx, newer)
	require.NoError(t, err)
	assert.NotEqual(t, olderID, newerID)

	_, err = store.SaveRun(ctx, other)
	require.NoError(t, err)

	run, err := store.LatestRun(ctx, "demo")
	require.NoError(t, err)

	assert.Equal(t, newerID, run.ID)
	assert.Equal(t, "demo", run.Course)
	assert.Equal(t, newer.StartedAt.UnixMilli(), run.StartedAt.UnixMilli())
	assert.Equal(t, []m.GradebookRow{newer.Rows[1], newer.Rows[0]}, run.Rows, "rows ordered by student id")
}

func TestSQLGradebook_NoRuns(t *testing.T) {
	_, err := openTestGradebook(t).LatestRun(context.Background(), "demo")
	require.ErrorIs(t, err, ErrNoRuns)
}

func TestOpenSQLGradebook_Drivers(t *testing.T) {
	ctx := context.Background()

	_, err := OpenSQLGradebook(ctx, "oracle", "x")
	require.Error(t, err)

	_, err = OpenSQLGradebook(ctx, DriverPostgres, "")
	require.Error(t, err)
}
