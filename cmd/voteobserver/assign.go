package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidravi1/vote2020/pkg/core/orchestrator"
	"github.com/sidravi1/vote2020/pkg/reporting"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Run an observer-to-precinct assignment pass",
}

var assignGreedyCmd = &cobra.Command{
	Use:   "greedy",
	Args:  cobra.NoArgs,
	Short: "Fill every precinct shift slot by priority order, greedily",
	Long: `Runs the eight-phase greedy allocator only: for each shift, in legal-
background-first then by-priority order, draws available observers from the
pool until every precinct's slot for that shift is filled or the pool for
that shift is exhausted.`,
	RunE: runAssignGreedy,
}

var assignOptimizeCmd = &cobra.Command{
	Use:   "optimize",
	Args:  cobra.NoArgs,
	Short: "Run the greedy pass, then Top Trading Cycles to shorten commutes",
	Long: `Runs the greedy allocator, then reshuffles its output with Top Trading
Cycles: each already-filled slot trades with another filled slot if doing so
gets both observers closer to their assigned precinct, down to a Pareto-
optimal allocation within each of TTC's eight subsets. No previously filled
slot is ever emptied.`,
	RunE: runAssignOptimize,
}

func init() {
	assignCmd.AddCommand(assignGreedyCmd)
	assignCmd.AddCommand(assignOptimizeCmd)

	for _, cmd := range []*cobra.Command{assignGreedyCmd, assignOptimizeCmd} {
		cmd.Flags().String("observers", "", "path to the observer sign-up workbook (xlsx)")
		cmd.Flags().String("precincts", "", "path to the precinct workbook (xlsx)")
		cmd.Flags().String("precincts-out", "assigned_precincts.xlsx", "path to write the assigned precinct roster")
		cmd.Flags().String("observers-out", "assigned_observers.xlsx", "path to write the assigned observer pool")
		cmd.Flags().String("lbj-out", "lbj_output.xlsx", "path to write the flattened scheduling export")
		cmd.Flags().String("metrics-out", "", "path to write a Prometheus text-exposition metrics snapshot (default: metrics.snapshot_path from the config)")
		cmd.Flags().String("format", "text", "progress output format (text, json, tui)")
		cmd.MarkFlagRequired("observers")
		cmd.MarkFlagRequired("precincts")
	}

	assignOptimizeCmd.Flags().String("manual", "", "path to a human-edited precinct workbook to optimize in place of running greedy first")
}

func runAssignGreedy(cmd *cobra.Command, args []string) error {
	return runAssign(cmd, reporting.ModeGreedy, "")
}

func runAssignOptimize(cmd *cobra.Command, args []string) error {
	manual, _ := cmd.Flags().GetString("manual")
	mode := reporting.ModeOptimize
	if manual != "" {
		mode = reporting.ModeOptimizeManual
	}
	return runAssign(cmd, mode, manual)
}

func runAssign(cmd *cobra.Command, mode reporting.RunMode, manualPrecinctPath string) error {
	observersPath, _ := cmd.Flags().GetString("observers")
	precinctsPath, _ := cmd.Flags().GetString("precincts")
	precinctsOut, _ := cmd.Flags().GetString("precincts-out")
	observersOut, _ := cmd.Flags().GetString("observers-out")
	lbjOut, _ := cmd.Flags().GetString("lbj-out")
	metricsOut, _ := cmd.Flags().GetString("metrics-out")
	outputFormat, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if metricsOut == "" {
		metricsOut = cfg.Metrics.SnapshotPath
	}

	logLevel := reporting.LogLevel(cfg.Logging.Level)
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(cfg.Logging.Format),
		Output: os.Stdout,
	})

	progress := reporting.NewProgressReporter(reporting.OutputFormat(outputFormat), logger)

	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create report storage: %w", err)
	}

	logger.Info("starting assignment run", "mode", mode)

	orch := orchestrator.New(cfg, logger, progress, storage)

	req := orchestrator.Request{
		Mode:              mode,
		ObserverSheetPath: observersPath,
		PrecinctPath:      precinctsPath,
		ManualMode:        manualPrecinctPath != "",
		PrecinctOutPath:   precinctsOut,
		ObserverOutPath:   observersOut,
		LBJOutputPath:     lbjOut,
		MetricsPath:       metricsOut,
	}
	if req.ManualMode {
		req.PrecinctPath = manualPrecinctPath
	}

	report, err := orch.Execute(context.Background(), req)
	if err != nil {
		return fmt.Errorf("assignment run failed: %w", err)
	}

	if !report.Success {
		return fmt.Errorf("assignment run did not complete: %s", report.Message)
	}

	logger.Info("assignment run completed", "run_id", report.RunID)
	return nil
}
