package assign

import (
	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// phase is one step of the fixed eight-step greedy machine: a shift tag
// paired with the legal-background requirement for that step. Order is
// semantically load-bearing — earlier phases have first claim on supply.
type phase struct {
	shift model.Shift
	legal bool
}

// phaseOrder is the eight-phase table the design notes call for: legal
// passes for all four shifts, then non-legal passes for all four. Driven
// from one table rather than inline repetition per the fixed-order phase
// machine design note.
var phaseOrder = []phase{
	{model.ShiftInside, true},
	{model.ShiftOutsideBoth, true},
	{model.ShiftOutsideAM, true},
	{model.ShiftOutsidePM, true},
	{model.ShiftInside, false},
	{model.ShiftOutsideBoth, false},
	{model.ShiftOutsideAM, false},
	{model.ShiftOutsidePM, false},
}

// GreedyResult carries the non-fatal EmptyResult conditions collected
// across a greedy pass, for the run report.
type GreedyResult struct {
	Shortfalls []errs.EmptyResult
}

// RunGreedy executes the eight-phase greedy allocator (C4) against roster
// and pool, draining pool's consumption state as it goes. cfg supplies the
// from_county requirement per shift.
func RunGreedy(roster *model.Roster, pool *model.Pool, cfg *config.Config) (GreedyResult, error) {
	var result GreedyResult

	for _, ph := range phaseOrder {
		params, ok := cfg.Shifts[string(ph.shift)]
		if !ok {
			return result, errs.NewConfig("shifts."+string(ph.shift), "missing shift parameter block")
		}

		empty := emptyRows(roster, ph.shift)
		if len(empty) == 0 {
			continue
		}

		taken := Take(pool, ph.shift, ph.legal, params.FromCounty, len(empty))
		if shortfall := ShortfallFor(ph.shift, len(empty), taken); shortfall != nil {
			result.Shortfalls = append(result.Shortfalls, *shortfall)
		}

		for i, rowIdx := range empty {
			name := taken.Names[i]
			roster.SetCell(rowIdx, ph.shift, name, ph.legal)
			if name == "" {
				continue
			}
			precinct := roster.All()[rowIdx]
			pool.Resolve(name, ph.shift, precinct.Name)
		}
	}

	return result, nil
}

// emptyRows returns, in priority order, the roster row indices whose shift
// cell is still the empty-string sentinel.
func emptyRows(roster *model.Roster, shift model.Shift) []int {
	var rows []int
	for i := 0; i < roster.Len(); i++ {
		observer, _ := roster.Cell(i, shift)
		if observer == "" {
			rows = append(rows, i)
		}
	}
	return rows
}
