// Package assign implements the allocation core: the availability filter
// (C3), the greedy priority-ordered allocator (C4), the preference graph
// (C5), the Top Trading Cycles resolver (C6), the schedule inverter (C7),
// and the output projection (C8).
package assign

import (
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// TakeResult is the explicit assignment payload C3 hands back to the
// greedy allocator: either one name per row, or — for shifts that fill two
// precinct columns at once — a paired result where the caller writes the
// same Names slice into both columns. Modelling the payload this way (per
// the side-effecting-filter design note) makes "both columns written
// identically" a property of the type rather than of caller discipline.
type TakeResult struct {
	Names  []string
	Paired bool
}

func availabilityFlag(o model.Observer, shift model.Shift) bool {
	switch shift {
	case model.ShiftInside:
		return o.InsideAllDay
	case model.ShiftOutsideBoth:
		return o.OutsideAllDay
	case model.ShiftOutsideAM:
		return o.OutsideAM
	case model.ShiftOutsidePM:
		return o.OutsidePM
	}
	return false
}

func slotsFree(o model.Observer, shift model.Shift) bool {
	switch shift {
	case model.ShiftOutsideAM:
		return o.AssignedAM == ""
	case model.ShiftOutsidePM:
		return o.AssignedPM == ""
	case model.ShiftInside, model.ShiftOutsideBoth:
		return o.AssignedAM == "" && o.AssignedPM == ""
	}
	return false
}

// Take implements C3: it walks the pool in its fixed consumption order,
// collects up to n eligible free observers for (shift, needLegal,
// needFromCounty), marks their consumption slots occupied, and pads the
// result to length n with the empty-string sentinel. Observers are never
// returned twice across the pool's lifetime because eligibility requires
// the relevant slots to still be free.
//
// An invalid shift tag is a programming error and panics; n == 0 is a
// no-op returning an empty result.
func Take(pool *model.Pool, shift model.Shift, needLegal, needFromCounty bool, n int) TakeResult {
	if !shift.Valid() {
		panic("assign: invalid shift tag: " + string(shift))
	}

	paired := shift == model.ShiftOutsideBoth

	if n == 0 {
		return TakeResult{Names: []string{}, Paired: paired}
	}

	names := make([]string, 0, n)
	for _, o := range pool.All() {
		if len(names) >= n {
			break
		}
		if !availabilityFlag(o, shift) {
			continue
		}
		if o.LegalBackground != needLegal {
			continue
		}
		if needFromCounty && !o.FromCounty {
			continue
		}
		if !slotsFree(o, shift) {
			continue
		}
		names = append(names, o.Name)
		pool.Reserve(o.Name, shift)
	}

	for len(names) < n {
		names = append(names, "")
	}

	return TakeResult{Names: names, Paired: paired}
}

// ShortfallFor reports the EmptyResult condition for a Take call, or nil
// if the request was fully satisfied. Non-fatal by design (§7): the caller
// logs it and the shortfall shows up only as empty cells in the output.
func ShortfallFor(shift model.Shift, requested int, result TakeResult) *errs.EmptyResult {
	found := 0
	for _, n := range result.Names {
		if n != "" {
			found++
		}
	}
	if found >= requested {
		return nil
	}
	return &errs.EmptyResult{Shift: string(shift), Requested: requested, Found: found}
}
