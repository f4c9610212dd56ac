// Package output renders the three output artifacts (§6) to xlsx workbooks
// via excelize: assigned_precincts, assigned_observers, and lbj_output.
package output

import (
	"github.com/xuri/excelize/v2"

	"github.com/sidravi1/vote2020/pkg/assign"
	"github.com/sidravi1/vote2020/pkg/model"
)

// WriteAssignedPrecincts renders the precinct roster, extended with the
// nine assignment/legal/supporting columns, to one sheet.
func WriteAssignedPrecincts(path string, roster *model.Roster) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []string{
		"Priority", "Polling Place Name", "Zip",
		"inside_observer", "outside_am_observer", "outside_pm_observer",
		"inside_legal", "outside_am_legal", "outside_pm_legal",
	}
	writeRow(f, sheet, 1, toAny(header))

	for i, p := range roster.All() {
		row := []interface{}{
			p.Rank, p.Name, p.PostCode,
			p.InsideObserver, p.OutsideAMObserver, p.OutsidePMObserver,
			p.InsideLegal, p.OutsideAMLegal, p.OutsidePMLegal,
		}
		writeRow(f, sheet, i+2, row)
	}

	return saveAs(f, path)
}

// WriteAssignedObservers renders the observer pool, extended with the
// three location columns, to one sheet.
func WriteAssignedObservers(path string, pool *model.Pool) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []string{
		"name", "phone_number", "email", "post_code", "legal_background",
		"inside_location", "outside_am_location", "outside_pm_location",
	}
	writeRow(f, sheet, 1, toAny(header))

	for i, o := range pool.All() {
		row := []interface{}{
			o.Name, o.Phone, o.Email, o.PostCode, o.LegalBackground,
			o.InsideLocation, o.OutsideAMLocation, o.OutsidePMLocation,
		}
		writeRow(f, sheet, i+2, row)
	}

	return saveAs(f, path)
}

// WriteLBJOutput renders C8's flattened output rows to one sheet with the
// fixed column order: County, Rank, LocationName, Date, Start Time, End
// Time, Area, Name, Phone Number, Email Address.
func WriteLBJOutput(path string, rows []assign.OutputRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []string{
		"County", "Rank", "LocationName", "Date", "Start Time", "End Time",
		"Area", "Name", "Phone Number", "Email Address",
	}
	writeRow(f, sheet, 1, toAny(header))

	for i, r := range rows {
		row := []interface{}{
			r.County, r.Rank, r.LocationName, r.Date, r.StartTime, r.EndTime,
			r.Area, r.Name, r.PhoneNumber, r.EmailAddress,
		}
		writeRow(f, sheet, i+2, row)
	}

	return saveAs(f, path)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func saveAs(f *excelize.File, path string) error {
	return f.SaveAs(path)
}
