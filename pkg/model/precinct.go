package model

import "sort"

// RawPrecinct is an ingest row before roster ordering is applied.
type RawPrecinct struct {
	Rank     int
	Name     string
	PostCode int
}

// Precinct is one polling place's roster entry: its priority rank, identity,
// and the three assignment cells the greedy allocator and TTC resolver
// write into. Empty cells are the literal empty string, never a null —
// the allocator relies on that to detect already-filled vs. still-open.
type Precinct struct {
	Rank     int
	Name     string
	PostCode int

	InsideObserver    string
	OutsideAMObserver string
	OutsidePMObserver string

	InsideLegal    bool
	OutsideAMLegal bool
	OutsidePMLegal bool
}

// Roster owns the ordered precinct list (C2). It is sorted ascending by
// Rank at construction and never re-sorted: priority order is load-bearing
// for the greedy allocator's fill order.
type Roster struct {
	precincts []Precinct
}

// NewRoster builds a roster from raw rows, sorting ascending by Rank.
func NewRoster(raw []RawPrecinct) *Roster {
	precincts := make([]Precinct, len(raw))
	for i, r := range raw {
		precincts[i] = Precinct{Rank: r.Rank, Name: r.Name, PostCode: r.PostCode}
	}
	sort.SliceStable(precincts, func(i, j int) bool { return precincts[i].Rank < precincts[j].Rank })
	return &Roster{precincts: precincts}
}

// NewRosterFromPrecincts wraps an already-assigned precinct slice (the
// manual-override entry point reads one from a human-edited workbook). It
// is still re-sorted ascending by Rank for consistency with the greedy path.
func NewRosterFromPrecincts(precincts []Precinct) *Roster {
	sorted := make([]Precinct, len(precincts))
	copy(sorted, precincts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	return &Roster{precincts: sorted}
}

// Len returns the number of precincts on the roster.
func (r *Roster) Len() int { return len(r.precincts) }

// All returns the roster's precincts in priority order.
func (r *Roster) All() []Precinct { return r.precincts }

// Cell reads the assignment cell and legal flag for a shift on precinct i.
// For ShiftOutsideBoth it reports the AM cell/flag (both columns are kept
// identical by construction, so either suffices for membership tests).
func (r *Roster) Cell(i int, shift Shift) (observer string, legal bool) {
	p := r.precincts[i]
	switch shift {
	case ShiftInside:
		return p.InsideObserver, p.InsideLegal
	case ShiftOutsideAM, ShiftOutsideBoth:
		return p.OutsideAMObserver, p.OutsideAMLegal
	case ShiftOutsidePM:
		return p.OutsidePMObserver, p.OutsidePMLegal
	}
	return "", false
}

// SetCell writes name/legal into the column(s) addressed by shift on
// precinct i. ShiftOutsideBoth writes both outside columns identically,
// making the "both columns written together" invariant unforgeable by
// construction rather than by caller discipline.
func (r *Roster) SetCell(i int, shift Shift, name string, legal bool) {
	switch shift {
	case ShiftInside:
		r.precincts[i].InsideObserver = name
		r.precincts[i].InsideLegal = legal
	case ShiftOutsideAM:
		r.precincts[i].OutsideAMObserver = name
		r.precincts[i].OutsideAMLegal = legal
	case ShiftOutsidePM:
		r.precincts[i].OutsidePMObserver = name
		r.precincts[i].OutsidePMLegal = legal
	case ShiftOutsideBoth:
		r.precincts[i].OutsideAMObserver = name
		r.precincts[i].OutsideAMLegal = legal
		r.precincts[i].OutsidePMObserver = name
		r.precincts[i].OutsidePMLegal = legal
	}
}

// SetObserver rewrites the observer name in the column(s) addressed by
// shift on precinct i, leaving the legal flag(s) untouched. Used by the
// TTC resolver (C6), which reassigns names within an already-filled,
// already-legal-flagged subset.
func (r *Roster) SetObserver(i int, shift Shift, name string) {
	switch shift {
	case ShiftInside:
		r.precincts[i].InsideObserver = name
	case ShiftOutsideAM:
		r.precincts[i].OutsideAMObserver = name
	case ShiftOutsidePM:
		r.precincts[i].OutsidePMObserver = name
	case ShiftOutsideBoth:
		r.precincts[i].OutsideAMObserver = name
		r.precincts[i].OutsidePMObserver = name
	}
}
