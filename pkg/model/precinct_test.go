package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidravi1/vote2020/pkg/model"
)

func TestNewRoster_SortsByRankAscending(t *testing.T) {
	raw := []model.RawPrecinct{
		{Rank: 3, Name: "Third"},
		{Rank: 1, Name: "First"},
		{Rank: 2, Name: "Second"},
	}

	roster := model.NewRoster(raw)
	require := assert.New(t)
	require.Equal(3, roster.Len())
	require.Equal("First", roster.All()[0].Name)
	require.Equal("Second", roster.All()[1].Name)
	require.Equal("Third", roster.All()[2].Name)
}

func TestRoster_SetCellOutsideBothWritesBothColumns(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})

	roster.SetCell(0, model.ShiftOutsideBoth, "Ann", true)

	p := roster.All()[0]
	assert.Equal(t, "Ann", p.OutsideAMObserver)
	assert.Equal(t, "Ann", p.OutsidePMObserver)
	assert.True(t, p.OutsideAMLegal)
	assert.True(t, p.OutsidePMLegal)
}

func TestRoster_SetObserverPreservesLegalFlag(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})
	roster.SetCell(0, model.ShiftInside, "Ann", true)

	roster.SetObserver(0, model.ShiftInside, "Bob")

	p := roster.All()[0]
	assert.Equal(t, "Bob", p.InsideObserver)
	assert.True(t, p.InsideLegal)
}

func TestRoster_Cell(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})
	roster.SetCell(0, model.ShiftOutsidePM, "Ann", false)

	observer, legal := roster.Cell(0, model.ShiftOutsidePM)
	assert.Equal(t, "Ann", observer)
	assert.False(t, legal)
}
