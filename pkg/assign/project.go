package assign

import (
	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// OutputRow is one row of the lbj_output table: County, Rank,
// LocationName, Date, Start Time, End Time, Area, Name, Phone Number,
// Email Address, in that fixed order (§6).
type OutputRow struct {
	County       string
	Rank         int
	LocationName string
	Date         string
	StartTime    string
	EndTime      string
	Area         string
	Name         string
	PhoneNumber  string
	EmailAddress string
}

// ProjectOutput is C8: it flattens the roster into one row per
// (precinct, shift) for each of the four output shifts in turn, joined to
// observer contact info, and enforces the invariant that each shift
// contributes exactly one row per precinct.
func ProjectOutput(roster *model.Roster, pool *model.Pool, cfg *config.Config) ([]OutputRow, error) {
	rows := make([]OutputRow, 0, 4*roster.Len())

	for _, shiftName := range config.RequiredOutputShifts {
		params, ok := cfg.OutputShifts[shiftName]
		if !ok {
			return nil, errs.NewConfig("output_shifts."+shiftName, "missing output shift parameter block")
		}

		produced := 0
		for _, p := range roster.All() {
			name := observerColumnValue(p, params.ObserverCol)

			var phone, email string
			if name != "" {
				if o, found := pool.Get(name); found {
					phone = o.Phone
					email = o.Email
				}
			}

			rows = append(rows, OutputRow{
				County:       params.County,
				Rank:         p.Rank,
				LocationName: p.Name,
				Date:         params.Date,
				StartTime:    params.StartTime,
				EndTime:      params.EndTime,
				Area:         params.Area,
				Name:         name,
				PhoneNumber:  phone,
				EmailAddress: email,
			})
			produced++
		}

		if produced != roster.Len() {
			return nil, errs.NewInvariant("output_row_count", "shift "+shiftName+" produced a different row count than the precinct roster")
		}
	}

	if len(rows) != 4*roster.Len() {
		return nil, errs.NewInvariant("output_row_count", "lbj_output total row count is not 4x the precinct count")
	}

	return rows, nil
}

func observerColumnValue(p model.Precinct, column string) string {
	switch column {
	case "inside_observer":
		return p.InsideObserver
	case "outside_am_observer":
		return p.OutsideAMObserver
	case "outside_pm_observer":
		return p.OutsidePMObserver
	}
	return ""
}
