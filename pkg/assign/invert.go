package assign

import "github.com/sidravi1/vote2020/pkg/model"

// InvertSchedule is C7: a left join observer ← precinct on each of the
// three assignment columns, writing the three per-observer location
// columns. Run once, after the greedy allocator and (if used) the TTC
// resolver have both finished mutating the roster — deriving locations
// from final roster state rather than updating them incrementally means a
// TTC reassignment can never leave a stale location behind.
func InvertSchedule(roster *model.Roster, pool *model.Pool) {
	for _, p := range roster.All() {
		if p.InsideObserver != "" {
			pool.SetLocation(p.InsideObserver, model.ShiftInside, p.Name)
		}
		if p.OutsideAMObserver != "" {
			pool.SetLocation(p.OutsideAMObserver, model.ShiftOutsideAM, p.Name)
		}
		if p.OutsidePMObserver != "" {
			pool.SetLocation(p.OutsidePMObserver, model.ShiftOutsidePM, p.Name)
		}
	}
}
