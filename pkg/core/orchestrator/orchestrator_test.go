package orchestrator_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/core/orchestrator"
	"github.com/sidravi1/vote2020/pkg/reporting"
)

func writeSheet(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testCfg() *config.Config {
	cfg := config.DefaultConfig()
	for _, name := range config.RequiredShifts {
		cfg.Shifts[name] = config.ShiftParams{}
	}
	cols := map[string]string{
		"outside_am_output": "outside_am_observer",
		"outside_pm_output": "outside_pm_observer",
		"inside_am_output":  "inside_observer",
		"inside_pm_output":  "inside_observer",
	}
	for _, name := range config.RequiredOutputShifts {
		cfg.OutputShifts[name] = config.OutputShiftParams{County: "Travis", ObserverCol: cols[name]}
	}
	cfg.ColumnsMap = map[string]config.ColumnMapping{
		"date_entered":       {ColNum: 1},
		"name":               {ColNum: 2},
		"phone_number":       {ColNum: 3},
		"email":              {ColNum: 4},
		"post_code":          {ColNum: 5},
		"election_day":       {ColNum: 6},
		"legal_background":   {ColNum: 7},
		"ev_2020_experience": {ColNum: 8},
		"is_rover":           {ColNum: 9, FillMissing: "0"},
	}
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg *config.Config) *orchestrator.Orchestrator {
	t.Helper()
	logger := reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError})
	progress := reporting.NewProgressReporter(reporting.FormatJSON, logger)
	storage, err := reporting.NewStorage(t.TempDir(), 10, logger)
	require.NoError(t, err)
	return orchestrator.New(cfg, logger, progress, storage)
}

func TestExecute_GreedyModeCompletesAndWritesOutputs(t *testing.T) {
	observerPath := writeSheet(t,
		[]string{"date_entered", "name", "phone", "email", "zip", "election_day", "legal", "experience", "rover"},
		[][]string{
			{"2020-11-01", "Ann", "555-0001", "ann@example.com", "78701", "Inside", "Yes", "1", "0"},
		},
	)
	precinctPath := writeSheet(t,
		[]string{"Priority", "Polling Place Name", "Zip"},
		[][]string{{"1", "Precinct 7", "78701"}},
	)

	orch := newTestOrchestrator(t, testCfg())
	outDir := t.TempDir()

	report, err := orch.Execute(context.Background(), orchestrator.Request{
		Mode:              reporting.ModeGreedy,
		ObserverSheetPath: observerPath,
		PrecinctPath:      precinctPath,
		PrecinctOutPath:   filepath.Join(outDir, "precincts.xlsx"),
		ObserverOutPath:   filepath.Join(outDir, "observers.xlsx"),
		LBJOutputPath:     filepath.Join(outDir, "lbj.xlsx"),
		MetricsPath:       filepath.Join(outDir, "metrics.snap"),
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, reporting.StatusCompleted, report.Status)
	assert.Equal(t, 1, report.PrecinctCount)
	assert.Equal(t, 1, report.ObserverCount)
	assert.Equal(t, 0, report.TTCPhasesResolved)
}

func TestExecute_OptimizeModeRunsTTC(t *testing.T) {
	observerPath := writeSheet(t,
		[]string{"date_entered", "name", "phone", "email", "zip", "election_day", "legal", "experience", "rover"},
		[][]string{
			{"2020-11-01", "Ann", "555-0001", "ann@example.com", "78701", "Inside", "No", "0", "0"},
		},
	)
	precinctPath := writeSheet(t,
		[]string{"Priority", "Polling Place Name", "Zip"},
		[][]string{{"1", "Precinct 7", "78701"}},
	)

	orch := newTestOrchestrator(t, testCfg())
	outDir := t.TempDir()

	report, err := orch.Execute(context.Background(), orchestrator.Request{
		Mode:              reporting.ModeOptimize,
		ObserverSheetPath: observerPath,
		PrecinctPath:      precinctPath,
		PrecinctOutPath:   filepath.Join(outDir, "precincts.xlsx"),
		ObserverOutPath:   filepath.Join(outDir, "observers.xlsx"),
		LBJOutputPath:     filepath.Join(outDir, "lbj.xlsx"),
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.GreaterOrEqual(t, report.TTCPhasesResolved, 1)
}

func TestExecute_ManualModeSkipsAllocate(t *testing.T) {
	observerPath := writeSheet(t,
		[]string{"date_entered", "name", "phone", "email", "zip", "election_day", "legal", "experience", "rover"},
		[][]string{
			{"2020-11-01", "Ann", "555-0001", "ann@example.com", "78701", "Inside", "Yes", "1", "0"},
		},
	)
	manualPath := writeSheet(t,
		[]string{
			"Priority", "Polling Place Name", "Zip",
			"inside_observer", "outside_am_observer", "outside_pm_observer",
			"inside_legal", "outside_am_legal", "outside_pm_legal",
		},
		[][]string{{"1", "Precinct 7", "78701", "Ann", "", "", "1", "0", "0"}},
	)

	orch := newTestOrchestrator(t, testCfg())

	report, err := orch.Execute(context.Background(), orchestrator.Request{
		Mode:              reporting.ModeOptimizeManual,
		ObserverSheetPath: observerPath,
		PrecinctPath:      manualPath,
		ManualMode:        true,
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Empty(t, report.Shortfalls)
}

func TestExecute_IngestFailureProducesFailedReport(t *testing.T) {
	orch := newTestOrchestrator(t, testCfg())

	report, err := orch.Execute(context.Background(), orchestrator.Request{
		Mode:              reporting.ModeGreedy,
		ObserverSheetPath: filepath.Join(t.TempDir(), "missing.xlsx"),
		PrecinctPath:      filepath.Join(t.TempDir(), "missing.xlsx"),
	})

	require.Error(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, reporting.StatusFailed, report.Status)
	assert.NotEmpty(t, report.Errors)
}
