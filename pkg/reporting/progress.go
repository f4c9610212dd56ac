package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputFormat is the progress reporter's rendering mode.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// ProgressReporter reports an in-flight run's phase transitions and final
// summary to the terminal, in one of three formats.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{
		format: format,
		logger: logger,
	}
}

// ReportState reports the orchestrator's current phase and elapsed time.
func (pr *ProgressReporter) ReportState(state LiveRunState) {
	switch pr.format {
	case FormatJSON:
		pr.reportJSON(state)
	case FormatTUI:
		pr.reportTUI(state)
	default:
		pr.reportText(state)
	}
}

// ReportStateTransition reports a phase boundary (e.g. Ingest -> Allocate).
func (pr *ProgressReporter) ReportStateTransition(from, to string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":      "state_transition",
			"from_state": from,
			"to_state":   to,
			"timestamp":  time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("-> %s -> %s\n", from, to)
	default:
		fmt.Printf("[STATE] %s -> %s\n", from, to)
	}
}

// ReportShortfall reports an EmptyResult surfaced during the greedy or TTC
// phase: a shift/legal bucket that could not be fully filled.
func (pr *ProgressReporter) ReportShortfall(message string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "shortfall",
			"message":   message,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("shortfall: %s\n", message)
	default:
		fmt.Printf("[SHORTFALL] %s\n", message)
	}
}

// ReportRunCompleted reports the terminal outcome of a run.
func (pr *ProgressReporter) ReportRunCompleted(report *RunReport) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"report":    report,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printRunSummary(report)
	default:
		pr.printTextSummary(report)
	}
}

func (pr *ProgressReporter) reportText(state LiveRunState) {
	fmt.Printf("[%s] %s | elapsed: %s\n",
		time.Now().Format("15:04:05"),
		state.State,
		state.Elapsed.Round(time.Second),
	)
}

func (pr *ProgressReporter) reportJSON(state LiveRunState) {
	data, err := json.Marshal(state)
	if err != nil {
		pr.logger.Error("failed to marshal state", "error", err)
		return
	}
	fmt.Println(string(data))
}

func (pr *ProgressReporter) reportTUI(state LiveRunState) {
	pr.clearScreen()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("   run: %s (%s)\n", state.RunID, state.Mode)
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println()
	fmt.Printf("phase:   %s\n", state.State)
	fmt.Printf("elapsed: %s\n", state.Elapsed.Round(time.Second))
	fmt.Println()
	fmt.Println(strings.Repeat("-", 72))
}

func (pr *ProgressReporter) printRunSummary(report *RunReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("   RUN SUMMARY")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println()

	statusText := "COMPLETED"
	if !report.Success {
		statusText = "FAILED"
	}
	if report.Status == StatusStopped {
		statusText = "STOPPED"
	}

	fmt.Printf("run %s\n", statusText)
	fmt.Printf("   mode:     %s\n", report.Mode)
	fmt.Printf("   run id:   %s\n", report.RunID)
	fmt.Printf("   duration: %s\n", report.Duration)
	fmt.Println()

	fmt.Printf("precincts: %d, observers: %d\n", report.PrecinctCount, report.ObserverCount)
	if len(report.SlotCounts) > 0 {
		fmt.Println("slots filled/unfilled:")
		for _, sc := range report.SlotCounts {
			fmt.Printf("   %s legal=%v: %d/%d\n", sc.Shift, sc.Legal, sc.Filled, sc.Filled+sc.Unfilled)
		}
	}

	if report.TTCPhasesResolved > 0 {
		fmt.Println()
		fmt.Printf("ttc phases resolved: %d (self=%d, non-trivial=%d)\n",
			report.TTCPhasesResolved, report.TTCSelfCycles, report.TTCNonTrivialCycles)
		fmt.Printf("distance before/after: %d / %d\n", report.DistanceBeforeTTC, report.DistanceAfterTTC)
	}

	if len(report.Shortfalls) > 0 {
		fmt.Println()
		fmt.Printf("shortfalls (%d):\n", len(report.Shortfalls))
		for _, s := range report.Shortfalls {
			fmt.Printf("   - %s\n", s)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
}

func (pr *ProgressReporter) printTextSummary(report *RunReport) {
	status := "COMPLETED"
	if !report.Success {
		status = "FAILED"
	}
	if report.Status == StatusStopped {
		status = "STOPPED"
	}

	fmt.Printf("\n[RUN SUMMARY] %s\n", status)
	fmt.Printf("  mode:     %s\n", report.Mode)
	fmt.Printf("  run id:   %s\n", report.RunID)
	fmt.Printf("  duration: %s\n", report.Duration)
	fmt.Printf("  precincts: %d, observers: %d\n", report.PrecinctCount, report.ObserverCount)
	if len(report.Shortfalls) > 0 {
		fmt.Printf("  shortfalls: %d\n", len(report.Shortfalls))
	}
	fmt.Println()
}

func (pr *ProgressReporter) clearScreen() {
	fmt.Print("\033[2J\033[H")
}

func (pr *ProgressReporter) clearLine() {
	fmt.Print("\033[K")
}
