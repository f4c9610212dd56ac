package reporting_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidravi1/vote2020/pkg/reporting"
)

func TestStorage_SaveListLoadReport(t *testing.T) {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelInfo,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 10, logger)
	require.NoError(t, err)

	report := &reporting.RunReport{
		RunID:         "run-12345",
		Mode:          reporting.ModeGreedy,
		StartTime:     time.Now().Add(-2 * time.Minute),
		EndTime:       time.Now(),
		Duration:      "2m0s",
		Status:        reporting.StatusCompleted,
		Success:       true,
		PrecinctCount: 120,
		ObserverCount: 340,
		SlotCounts: []reporting.ShiftSlotCount{
			{Shift: "inside", Legal: true, Filled: 40, Unfilled: 2},
		},
		Shortfalls: []string{"outside_pm legal=true: wanted 40, got 38"},
	}

	path, err := storage.SaveReport(report)
	require.NoError(t, err)
	assert.FileExists(t, path)

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, report.RunID, summaries[0].RunID)
	assert.Equal(t, reporting.ModeGreedy, summaries[0].Mode)

	loaded, err := storage.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, loaded.RunID)
	assert.Equal(t, report.PrecinctCount, loaded.PrecinctCount)
	assert.Equal(t, report.Shortfalls, loaded.Shortfalls)

	found, err := storage.FindReportByRunID(report.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, found.RunID)
}

func TestStorage_CleanupOldReports(t *testing.T) {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelWarn,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	dir := t.TempDir()
	storage, err := reporting.NewStorage(dir, 2, logger)
	require.NoError(t, err)

	base := time.Now().Add(-1 * time.Hour)
	for i := 0; i < 4; i++ {
		report := &reporting.RunReport{
			RunID:     string(rune('a' + i)),
			Mode:      reporting.ModeGreedy,
			StartTime: base.Add(time.Duration(i) * time.Minute),
			Status:    reporting.StatusCompleted,
			Success:   true,
		}
		_, err := storage.SaveReport(report)
		require.NoError(t, err)
	}

	summaries, err := storage.ListReports()
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}
