// Package ingest reads the observer sheet and precinct workbook (xlsx, via
// excelize) into the raw row types pkg/model normalises, and the config
// package's column mapping tells it where to find each logical field.
package ingest

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/errs"
	"github.com/sidravi1/vote2020/pkg/model"
)

// dateLayouts are tried in order when parsing the date_entered column; the
// source sheet is a spreadsheet export, and exact formatting varies by
// export tool.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// LoadObservers reads the observer sheet's first worksheet using the
// (col_num, fill_missing) pairs from columns_map, producing raw rows for
// pkg/model's normalisation contract. Row 1 is headers and is skipped.
func LoadObservers(path string, columnsMap map[string]config.ColumnMapping) ([]model.RawObserver, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.NewIngest("observer_sheet", "cannot open: "+err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errs.NewIngest("observer_sheet", "cannot read rows: "+err.Error())
	}
	if len(rows) == 0 {
		return nil, errs.NewIngest("observer_sheet", "sheet has no rows")
	}

	get := func(row []string, field string) string {
		mapping := columnsMap[field]
		if mapping.ColNum < 1 || mapping.ColNum-1 >= len(row) || row[mapping.ColNum-1] == "" {
			return mapping.FillMissing
		}
		return row[mapping.ColNum-1]
	}

	observers := make([]model.RawObserver, 0, len(rows)-1)
	for _, row := range rows[1:] {
		raw := model.RawObserver{
			DateEntered:     parseDate(get(row, "date_entered")),
			Name:            get(row, "name"),
			Phone:           get(row, "phone_number"),
			Email:           get(row, "email"),
			PostCode:        get(row, "post_code"),
			ElectionDay:     model.ElectionDay(get(row, "election_day")),
			LegalBackground: get(row, "legal_background"),
			Experienced:     truthy(get(row, "ev_2020_experience")),
			Rover:           get(row, "is_rover") == "1",
		}
		observers = append(observers, raw)
	}

	return observers, nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// ValidPostCodeSet converts the configured valid_post_codes list into the
// lookup set model.BuildObservers expects.
func ValidPostCodeSet(codes []int) map[int]bool {
	set := make(map[int]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
