package assign

import (
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// ttcPhase is one of the eight subsets the TTC pass resolves, mirroring
// the greedy allocator's phase bucketing but keyed off which cell(s) a
// precinct's current occupancy pattern puts it in: an all-day outside
// assignment (am == pm observer, same occupant both shifts) trades as one
// unit; an am-only or pm-only outside assignment trades its own column
// independently, since it has no partner shift to keep in lockstep.
type ttcPhase struct {
	name       string
	writeShift model.Shift
	mask       func(model.Precinct) bool
}

var ttcPhases = []ttcPhase{
	{
		name:       "inside legal",
		writeShift: model.ShiftInside,
		mask: func(p model.Precinct) bool {
			return p.InsideLegal && p.InsideObserver != ""
		},
	},
	{
		name:       "outside all-day legal",
		writeShift: model.ShiftOutsideBoth,
		mask: func(p model.Precinct) bool {
			return p.OutsideAMLegal && p.OutsideAMObserver == p.OutsidePMObserver && p.OutsideAMObserver != ""
		},
	},
	{
		name:       "outside am-only legal",
		writeShift: model.ShiftOutsideAM,
		mask: func(p model.Precinct) bool {
			return p.OutsideAMLegal && p.OutsideAMObserver != p.OutsidePMObserver && p.OutsideAMObserver != ""
		},
	},
	{
		name:       "outside pm-only legal",
		writeShift: model.ShiftOutsidePM,
		mask: func(p model.Precinct) bool {
			return p.OutsidePMLegal && p.OutsideAMObserver != p.OutsidePMObserver && p.OutsidePMObserver != ""
		},
	},
	{
		name:       "inside non-legal",
		writeShift: model.ShiftInside,
		mask: func(p model.Precinct) bool {
			return !p.InsideLegal && p.InsideObserver != ""
		},
	},
	{
		name:       "outside all-day non-legal",
		writeShift: model.ShiftOutsideBoth,
		mask: func(p model.Precinct) bool {
			return !p.OutsideAMLegal && p.OutsideAMObserver == p.OutsidePMObserver && p.OutsideAMObserver != ""
		},
	},
	{
		name:       "outside am-only non-legal",
		writeShift: model.ShiftOutsideAM,
		mask: func(p model.Precinct) bool {
			return !p.OutsideAMLegal && p.OutsideAMObserver != p.OutsidePMObserver && p.OutsideAMObserver != ""
		},
	},
	{
		name:       "outside pm-only non-legal",
		writeShift: model.ShiftOutsidePM,
		mask: func(p model.Precinct) bool {
			return !p.OutsidePMLegal && p.OutsideAMObserver != p.OutsidePMObserver && p.OutsidePMObserver != ""
		},
	},
}

// TTCResult carries per-phase statistics for the metrics snapshot and run
// report: how many cycles (including self-cycles) each phase resolved.
type TTCResult struct {
	PhasesResolved   int
	SelfCyclesTotal  int
	NonTrivialCycles int
}

// RunTTC executes all eight TTC subsets over roster, reassigning names
// within each independently while leaving legal flags and rows outside
// every subset untouched.
func RunTTC(roster *model.Roster, pool *model.Pool) (TTCResult, error) {
	var result TTCResult

	for _, ph := range ttcPhases {
		var precinctIdx []int
		var owner []string
		for i, p := range roster.All() {
			if !ph.mask(p) {
				continue
			}
			name := p.InsideObserver
			if ph.writeShift != model.ShiftInside {
				name = p.OutsideAMObserver
			}
			precinctIdx = append(precinctIdx, i)
			owner = append(owner, name)
		}
		if len(precinctIdx) == 0 {
			continue
		}

		assignment, stats, err := resolveTTCSubset(roster, pool, precinctIdx, owner)
		if err != nil {
			return result, err
		}

		result.PhasesResolved++
		result.SelfCyclesTotal += stats.selfCycles
		result.NonTrivialCycles += stats.nonTrivialCycles

		for k, idx := range precinctIdx {
			roster.SetObserver(idx, ph.writeShift, assignment[k])
		}
	}
	return result, nil
}

type subsetStats struct {
	selfCycles       int
	nonTrivialCycles int
}

// resolveTTCSubset runs the Top Trading Cycles loop over one subset and
// returns, parallel to precinctIdx, the new owner name for each precinct —
// self-cycles included, so every precinct in the subset gets a write.
// Terminates within len(precinctIdx) rounds (§4.6); exceeding that bound
// is an InvariantError, since it would mean the preference function is
// not total over the active subset.
func resolveTTCSubset(roster *model.Roster, pool *model.Pool, precinctIdx []int, owner []string) ([]string, subsetStats, error) {
	n := len(precinctIdx)
	result := make([]string, n)
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	var stats subsetStats
	remaining := n
	for round := 0; remaining > 0; round++ {
		if round >= n {
			return nil, stats, errs.NewInvariant("ttc_termination", "TTC pass did not terminate within |subset| iterations")
		}

		preferred := computePreferred(roster, pool, precinctIdx, owner, active)

		var matched []int
		for k := 0; k < n; k++ {
			if active[k] && preferred[k] == k {
				matched = append(matched, k)
			}
		}

		if len(matched) > 0 {
			stats.selfCycles += len(matched)
		} else {
			matched = findCycle(preferred, active)
			stats.nonTrivialCycles++
		}

		for _, k := range matched {
			result[preferred[k]] = owner[k]
			active[k] = false
		}
		remaining -= len(matched)
	}

	return result, stats, nil
}
