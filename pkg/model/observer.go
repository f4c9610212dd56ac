// Package model holds the core domain types: the observer pool (C1) and the
// precinct roster (C2), along with the normalisation and ordering rules that
// govern how raw ingest rows become the records the allocator consumes.
package model

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sidravi1/vote2020/pkg/errs"
)

// ElectionDay is the raw availability string an observer selects on intake.
type ElectionDay string

const (
	ElectionDayInside        ElectionDay = "Inside"
	ElectionDayOutsideAM     ElectionDay = "Outside AM"
	ElectionDayOutsidePM     ElectionDay = "Outside PM"
	ElectionDayOutsideAllDay ElectionDay = "Outside All Day"
	ElectionDayNone          ElectionDay = ""
)

// RawObserver is an ingest row prior to normalisation: every field is still
// in whatever shape the source sheet held it.
type RawObserver struct {
	DateEntered     time.Time
	Name            string
	Phone           string
	Email           string
	PostCode        string
	ElectionDay     ElectionDay
	LegalBackground string // "Yes" or anything else
	Experienced     bool
	Rover           bool
}

// Observer is a normalised pool member: stable identity, availability
// flags derived from ElectionDay, and the two consumption slots the
// allocator drains.
type Observer struct {
	Name            string
	Phone           string
	Email           string
	PostCode        int
	DateEntered     time.Time
	LegalBackground bool
	Experienced     bool
	FromCounty      bool

	InsideAllDay  bool
	OutsideAM     bool
	OutsidePM     bool
	OutsideAllDay bool

	// AssignedAM/AssignedPM hold the name of the precinct occupying that
	// shift of this observer, or "" while free. Once set, that slot is no
	// longer offerable by the availability filter (C3).
	AssignedAM string
	AssignedPM string

	// Location columns written by the schedule inverter (C7).
	InsideLocation    string
	OutsideAMLocation string
	OutsidePMLocation string
}

var nonDigit = regexp.MustCompile(`[^0-9]`)

// normalise applies the C1 normalisation contract to one raw row: phone
// reduced to digits, name trimmed, email lowercased, postal code split on
// "-" with the first piece parsed as an integer. Returns false if the row
// has no name and should be dropped.
func normalise(raw RawObserver, validPostCodes map[int]bool) (Observer, bool, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Observer{}, false, nil
	}

	head := raw.PostCode
	if idx := strings.IndexByte(head, '-'); idx >= 0 {
		head = head[:idx]
	}
	postCode, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return Observer{}, false, errs.NewIngest("observer.post_code", "not an integer: "+raw.PostCode)
	}

	o := Observer{
		Name:            name,
		Phone:           nonDigit.ReplaceAllString(raw.Phone, ""),
		Email:           strings.ToLower(raw.Email),
		PostCode:        postCode,
		DateEntered:     raw.DateEntered,
		LegalBackground: raw.LegalBackground == "Yes",
		Experienced:     raw.Experienced,
		FromCounty:      validPostCodes[postCode],

		InsideAllDay:  raw.ElectionDay == ElectionDayInside,
		OutsideAM:     raw.ElectionDay == ElectionDayOutsideAM || raw.ElectionDay == ElectionDayOutsideAllDay,
		OutsidePM:     raw.ElectionDay == ElectionDayOutsidePM || raw.ElectionDay == ElectionDayOutsideAllDay,
		OutsideAllDay: raw.ElectionDay == ElectionDayOutsideAllDay,
	}

	return o, true, nil
}

// BuildObservers normalises raw rows into the pool ordering: rovers are
// dropped, rows with no name are dropped, duplicates are resolved by
// DateEntered ascending (last row per name, then per email wins; rows with
// no email are not merged by email), and the
// survivors are sorted (Experienced desc, OutsideAllDay desc) so both C3
// queues draw the most available, most experienced observers first.
func BuildObservers(raw []RawObserver, validPostCodes map[int]bool) ([]Observer, error) {
	normalised := make([]Observer, 0, len(raw))
	for _, r := range raw {
		if r.Rover {
			continue
		}
		o, ok, err := normalise(r, validPostCodes)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		normalised = append(normalised, o)
	}

	sort.SliceStable(normalised, func(i, j int) bool {
		return normalised[i].DateEntered.Before(normalised[j].DateEntered)
	})

	byName := dedupLast(normalised, func(o Observer) string { return o.Name })
	byEmail := dedupLast(byName, func(o Observer) string { return o.Email })

	sort.SliceStable(byEmail, func(i, j int) bool {
		a, b := byEmail[i], byEmail[j]
		if a.Experienced != b.Experienced {
			return a.Experienced && !b.Experienced
		}
		return a.OutsideAllDay && !b.OutsideAllDay
	})

	return byEmail, nil
}

// dedupLast keeps, per key, the surviving row with the latest DateEntered
// (the input must already be sorted by DateEntered ascending, so the last
// occurrence of each key in iteration order is the one to keep). The
// result is re-sorted by DateEntered ascending before being returned
// instead of left in first-occurrence order. BuildObservers chains two
// dedupLast passes (name, then email); the second pass needs date-ascending
// input to pick the correct latest-dated row per email, and first-occurrence
// order does not guarantee that once a key's kept row has been overwritten
// by a later, differently-positioned duplicate. Rows whose key is empty
// (an observer with no email) are not duplicates of each other and are all
// kept.
func dedupLast(in []Observer, key func(Observer) string) []Observer {
	last := make(map[string]Observer, len(in))
	var keyless []Observer
	for _, o := range in {
		k := key(o)
		if k == "" {
			keyless = append(keyless, o)
			continue
		}
		last[k] = o
	}

	out := make([]Observer, 0, len(last)+len(keyless))
	out = append(out, keyless...)
	for _, o := range last {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateEntered.Equal(out[j].DateEntered) {
			return out[i].DateEntered.Before(out[j].DateEntered)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
