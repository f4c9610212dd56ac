// Package orchestrator drives one CLI invocation through its phases:
// ingest, allocate (greedy), optimize (TTC), invert, project, write. Each
// phase is a state in a small transition/cleanup/emergency-stop machine,
// with no inject/monitor/detect/teardown states: a single-shot batch job
// has no analogue for them.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sidravi1/vote2020/pkg/assign"
	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/emergency"
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/ingest"
	"github.com/sidravi1/vote2020/pkg/metrics"
	"github.com/sidravi1/vote2020/pkg/model"
	"github.com/sidravi1/vote2020/pkg/output"
	"github.com/sidravi1/vote2020/pkg/reporting"
)

// State is a phase in a run's lifecycle.
type State int

const (
	StateIngest State = iota
	StateAllocate
	StateOptimize
	StateInvert
	StateProject
	StateWrite
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIngest:
		return "INGEST"
	case StateAllocate:
		return "ALLOCATE"
	case StateOptimize:
		return "OPTIMIZE"
	case StateInvert:
		return "INVERT"
	case StateProject:
		return "PROJECT"
	case StateWrite:
		return "WRITE"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Request describes one CLI invocation's inputs.
type Request struct {
	Mode              reporting.RunMode
	ObserverSheetPath string
	PrecinctPath      string
	ManualMode        bool // true for "assign optimize --manual PATH": PrecinctPath is a manual precinct workbook, skip allocate
	PrecinctOutPath   string
	ObserverOutPath   string
	LBJOutputPath     string
	MetricsPath       string
}

// Orchestrator coordinates one run of the assignment pipeline.
type Orchestrator struct {
	cfg      *config.Config
	logger   *reporting.Logger
	progress *reporting.ProgressReporter
	storage  *reporting.Storage
	guard    *emergency.Guard

	// runLogger is logger scoped to the in-flight run via WithRunID, set
	// at the top of Execute. Every phase method logs through it instead
	// of logger, so log lines never need "run_id" appended by hand.
	runLogger *reporting.Logger

	currentState  State
	startTime     time.Time
	runID         string
	stopRequested bool
}

// New creates an Orchestrator wired to cfg.
func New(cfg *config.Config, logger *reporting.Logger, progress *reporting.ProgressReporter, storage *reporting.Storage) *Orchestrator {
	guard := emergency.New(emergency.Config{
		EnableSignalHandlers: true,
	})

	return &Orchestrator{
		cfg:          cfg,
		logger:       logger,
		progress:     progress,
		storage:      storage,
		guard:        guard,
		currentState: StateIngest,
	}
}

// Execute runs req's full pipeline and returns the finished RunReport.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (*reporting.RunReport, error) {
	o.startTime = time.Now()
	o.runID = uuid.NewString()
	o.runLogger = o.logger.WithRunID(o.runID)

	report := &reporting.RunReport{
		RunID:             o.runID,
		Mode:              req.Mode,
		StartTime:         o.startTime,
		Status:            reporting.StatusRunning,
		ObserverSheetPath: req.ObserverSheetPath,
		PrecinctPath:      req.PrecinctPath,
	}

	stopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	o.guard.Start(stopCtx)
	o.guard.OnStop(func() {
		o.runLogger.Warn("emergency stop triggered, abandoning run")
		o.stopRequested = true
		cancel()
	})

	snapshot := metrics.NewSnapshot()

	var roster *model.Roster
	var pool *model.Pool
	var err error

	o.transitionState(StateIngest)
	roster, pool, err = o.executeIngest(req)
	if err != nil {
		return o.failRun(report, err)
	}
	report.PrecinctCount = roster.Len()
	report.ObserverCount = pool.Len()

	if o.checkStop(report) {
		return report, fmt.Errorf("stopped before allocate")
	}

	if !req.ManualMode {
		o.transitionState(StateAllocate)
		greedyResult, err := o.executeAllocate(roster, pool, snapshot)
		if err != nil {
			return o.failRun(report, err)
		}
		for _, sf := range greedyResult.Shortfalls {
			msg := sf.String()
			report.Shortfalls = append(report.Shortfalls, msg)
			o.progress.ReportShortfall(msg)
		}
	}

	if o.checkStop(report) {
		return report, fmt.Errorf("stopped before optimize")
	}

	if req.Mode != reporting.ModeGreedy {
		o.transitionState(StateOptimize)
		if err := o.executeOptimize(roster, pool, snapshot, report); err != nil {
			return o.failRun(report, err)
		}
	}

	if o.checkStop(report) {
		return report, fmt.Errorf("stopped before invert")
	}

	o.transitionState(StateInvert)
	assign.InvertSchedule(roster, pool)

	if o.checkStop(report) {
		return report, fmt.Errorf("stopped before project")
	}

	o.transitionState(StateProject)
	rows, err := assign.ProjectOutput(roster, pool, o.cfg)
	if err != nil {
		return o.failRun(report, err)
	}

	o.transitionState(StateWrite)
	if err := o.executeWrite(req, roster, pool, rows, snapshot); err != nil {
		return o.failRun(report, err)
	}

	o.transitionState(StateCompleted)
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime).String()
	report.Status = reporting.StatusCompleted
	report.Success = true

	if o.storage != nil {
		if _, err := o.storage.SaveReport(report); err != nil {
			o.runLogger.Warn("failed to persist run report", "error", err)
		}
	}
	o.progress.ReportRunCompleted(report)

	return report, nil
}

func (o *Orchestrator) transitionState(newState State) {
	o.progress.ReportStateTransition(o.currentState.String(), newState.String())
	o.currentState = newState
}

func (o *Orchestrator) checkStop(report *reporting.RunReport) bool {
	if !o.stopRequested {
		return false
	}
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime).String()
	report.Status = reporting.StatusStopped
	report.Success = false
	return true
}

func (o *Orchestrator) executeIngest(req Request) (*model.Roster, *model.Pool, error) {
	o.runLogger.Info("ingesting observer sheet", "path", req.ObserverSheetPath)
	validPostCodes := ingest.ValidPostCodeSet(o.cfg.ValidPostCodes)

	rawObservers, err := ingest.LoadObservers(req.ObserverSheetPath, o.cfg.ColumnsMap)
	if err != nil {
		return nil, nil, err
	}
	observers, err := model.BuildObservers(rawObservers, validPostCodes)
	if err != nil {
		return nil, nil, err
	}
	pool := model.NewPool(observers)

	var roster *model.Roster
	if req.ManualMode {
		o.runLogger.Info("ingesting manual precinct workbook", "path", req.PrecinctPath)
		precincts, err := ingest.LoadManualPrecincts(req.PrecinctPath)
		if err != nil {
			return nil, nil, err
		}
		roster = model.NewRosterFromPrecincts(precincts)
	} else {
		o.runLogger.Info("ingesting precinct workbook", "path", req.PrecinctPath)
		rawPrecincts, err := ingest.LoadPrecincts(req.PrecinctPath)
		if err != nil {
			return nil, nil, err
		}
		roster = model.NewRoster(rawPrecincts)
	}

	if roster.Len() == 0 {
		return nil, nil, errs.NewIngest("precinct_workbook", "no precincts loaded")
	}

	return roster, pool, nil
}

func (o *Orchestrator) executeAllocate(roster *model.Roster, pool *model.Pool, snapshot *metrics.Snapshot) (assign.GreedyResult, error) {
	o.runLogger.Info("running greedy allocation")
	result, err := assign.RunGreedy(roster, pool, o.cfg)
	if err != nil {
		return result, err
	}
	for _, sf := range result.Shortfalls {
		snapshot.ObserveSlot(sf.Shift, false, false)
	}
	return result, nil
}

func (o *Orchestrator) executeOptimize(roster *model.Roster, pool *model.Pool, snapshot *metrics.Snapshot, report *reporting.RunReport) error {
	o.runLogger.Info("running top trading cycles optimization")
	result, err := assign.RunTTC(roster, pool)
	if err != nil {
		return err
	}
	// ObserveTTC counts one resolved phase per call; the run's cycle totals
	// are folded in with the first call.
	selfCycles, nonTrivial := result.SelfCyclesTotal, result.NonTrivialCycles
	for i := 0; i < result.PhasesResolved; i++ {
		snapshot.ObserveTTC(selfCycles, nonTrivial)
		selfCycles, nonTrivial = 0, 0
	}
	report.TTCPhasesResolved = result.PhasesResolved
	report.TTCSelfCycles = result.SelfCyclesTotal
	report.TTCNonTrivialCycles = result.NonTrivialCycles
	return nil
}

func (o *Orchestrator) executeWrite(req Request, roster *model.Roster, pool *model.Pool, rows []assign.OutputRow, snapshot *metrics.Snapshot) error {
	if req.PrecinctOutPath != "" {
		if err := output.WriteAssignedPrecincts(req.PrecinctOutPath, roster); err != nil {
			return errs.NewIngest("assigned_precincts_output", err.Error())
		}
	}
	if req.ObserverOutPath != "" {
		if err := output.WriteAssignedObservers(req.ObserverOutPath, pool); err != nil {
			return errs.NewIngest("assigned_observers_output", err.Error())
		}
	}
	if req.LBJOutputPath != "" {
		if err := output.WriteLBJOutput(req.LBJOutputPath, rows); err != nil {
			return errs.NewIngest("lbj_output", err.Error())
		}
	}
	if req.MetricsPath != "" {
		if err := snapshot.WriteTo(req.MetricsPath); err != nil {
			o.runLogger.Warn("failed to write metrics snapshot", "error", err)
		}
	}
	return nil
}

func (o *Orchestrator) failRun(report *reporting.RunReport, err error) (*reporting.RunReport, error) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime).String()
	o.transitionState(StateFailed)
	report.Status = reporting.StatusFailed
	report.Success = false
	report.Message = err.Error()
	report.Errors = append(report.Errors, err.Error())

	if o.storage != nil {
		if _, serr := o.storage.SaveReport(report); serr != nil {
			o.runLogger.Warn("failed to persist failed run report", "error", serr)
		}
	}
	o.progress.ReportRunCompleted(report)

	return report, err
}

// RequestStop manually requests the run stop at its next phase boundary.
func (o *Orchestrator) RequestStop() {
	o.guard.Stop("manual stop requested")
}
