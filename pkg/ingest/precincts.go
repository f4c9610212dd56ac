package ingest

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// LoadPrecincts reads the precinct workbook's first worksheet, requiring
// Priority, Polling Place Name, and Zip columns; any assignment/legal
// columns are created empty/false by pkg/model, not read here.
func LoadPrecincts(path string) ([]model.RawPrecinct, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.NewIngest("precinct_workbook", "cannot open: "+err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errs.NewIngest("precinct_workbook", "cannot read rows: "+err.Error())
	}
	if len(rows) == 0 {
		return nil, errs.NewIngest("precinct_workbook", "sheet has no rows")
	}

	col, err := indexHeaders(rows[0], "Priority", "Polling Place Name", "Zip")
	if err != nil {
		return nil, err
	}

	precincts := make([]model.RawPrecinct, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rank, err := atoiCell(row, col["Priority"])
		if err != nil {
			return nil, errs.NewIngest("precinct_workbook", "Priority: "+err.Error())
		}
		zip, err := atoiCell(row, col["Zip"])
		if err != nil {
			return nil, errs.NewIngest("precinct_workbook", "Zip: "+err.Error())
		}
		precincts = append(precincts, model.RawPrecinct{
			Rank:     rank,
			Name:     cellAt(row, col["Polling Place Name"]),
			PostCode: zip,
		})
	}

	return precincts, nil
}

// LoadManualPrecincts reads a human-edited precinct workbook in place of
// the greedy pass, for the manual-override CLI entry point. The workbook
// already carries the nine assignment/legal columns the greedy allocator
// would otherwise have produced.
func LoadManualPrecincts(path string) ([]model.Precinct, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.NewIngest("manual_precinct_workbook", "cannot open: "+err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errs.NewIngest("manual_precinct_workbook", "cannot read rows: "+err.Error())
	}
	if len(rows) == 0 {
		return nil, errs.NewIngest("manual_precinct_workbook", "sheet has no rows")
	}

	required := []string{
		"Priority", "Polling Place Name", "Zip",
		"inside_observer", "outside_am_observer", "outside_pm_observer",
		"inside_legal", "outside_am_legal", "outside_pm_legal",
	}
	col, err := indexHeaders(rows[0], required...)
	if err != nil {
		return nil, err
	}

	precincts := make([]model.Precinct, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rank, err := atoiCell(row, col["Priority"])
		if err != nil {
			return nil, errs.NewIngest("manual_precinct_workbook", "Priority: "+err.Error())
		}
		zip, err := atoiCell(row, col["Zip"])
		if err != nil {
			return nil, errs.NewIngest("manual_precinct_workbook", "Zip: "+err.Error())
		}
		precincts = append(precincts, model.Precinct{
			Rank:              rank,
			Name:              cellAt(row, col["Polling Place Name"]),
			PostCode:          zip,
			InsideObserver:    cellAt(row, col["inside_observer"]),
			OutsideAMObserver: cellAt(row, col["outside_am_observer"]),
			OutsidePMObserver: cellAt(row, col["outside_pm_observer"]),
			InsideLegal:       truthy(cellAt(row, col["inside_legal"])),
			OutsideAMLegal:    truthy(cellAt(row, col["outside_am_legal"])),
			OutsidePMLegal:    truthy(cellAt(row, col["outside_pm_legal"])),
		})
	}

	return precincts, nil
}

func indexHeaders(headerRow []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		idx[strings.TrimSpace(h)] = i
	}
	col := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			return nil, errs.NewIngest("workbook", "missing required column: "+name)
		}
		col[name] = i
	}
	return col, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func atoiCell(row []string, i int) (int, error) {
	return strconv.Atoi(strings.TrimSpace(cellAt(row, i)))
}
