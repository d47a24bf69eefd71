package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourse_Assets(t *testing.T) {
	course := Course{Assets: Assets{
		{ID: "B_Shot", Type: AssetScreenshot},
		{ID: "ACT_2", Type: AssetNotebook},
		{ID: "A_Shot", Type: AssetScreenshot, Required: true},
		{ID: "ACT_1", Type: AssetNotebook},
	}}

	ids := func(assets []Asset) []string {
		out := make([]string, len(assets))
		for i, asset := range assets {
			out[i] = asset.ID
		}

		return out
	}

	assert.Equal(t, []string{"ACT_2", "ACT_1"}, ids(course.Notebooks()), "notebooks keep course order")
	assert.Equal(t, []string{"A_Shot", "B_Shot"}, ids(course.Screenshots()), "screenshots sorted by id")

	asset, ok := course.Asset("A_Shot")
	require.True(t, ok)
	assert.True(t, asset.Required)

	_, ok = course.Asset("missing")
	assert.False(t, ok)
}

func TestStudentReport_Totals(t *testing.T) {
	report := StudentReport{
		Activities: []ActivityResult{
			{AssetID: "ACT_1", Score: 3, Expected: 4},
			{AssetID: "ACT_2", Missing: true, Expected: 6},
		},
		Screenshots: []ScreenshotStatus{
			{AssetID: "A", Completed: true, Required: true},
			{AssetID: "B", Required: true},
			{AssetID: "C"},
		},
	}

	score, expected := report.NotebookTotal()
	assert.Equal(t, 3, score)
	assert.Equal(t, 10, expected)
	assert.InDelta(t, 30.0, report.Percentage(), 0.001)
	assert.Equal(t, 1, report.ScreenshotsCompleted())
	assert.Equal(t, 1, report.RequiredScreenshotsMissing())

	assert.Zero(t, ActivityResult{}.Percentage())
	assert.InDelta(t, 75.0, report.Activities[0].Percentage(), 0.001)
}
