package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidravi1/vote2020/pkg/model"
)

func newTestPool() *model.Pool {
	return model.NewPool([]model.Observer{
		{Name: "Ann", OutsideAM: true, OutsidePM: true},
		{Name: "Bob", InsideAllDay: true},
	})
}

func TestPool_ReserveThenResolve(t *testing.T) {
	pool := newTestPool()

	pool.Reserve("Ann", model.ShiftOutsideAM)
	ann, ok := pool.Get("Ann")
	require.True(t, ok)
	assert.Equal(t, "Ann", ann.AssignedAM)
	assert.Equal(t, "", ann.AssignedPM)

	pool.Resolve("Ann", model.ShiftOutsideAM, "Precinct 7")
	ann, _ = pool.Get("Ann")
	assert.Equal(t, "Precinct 7", ann.AssignedAM)
}

func TestPool_ReserveInsideSetsBothSlots(t *testing.T) {
	pool := newTestPool()

	pool.Reserve("Bob", model.ShiftInside)
	bob, _ := pool.Get("Bob")
	assert.Equal(t, "Bob", bob.AssignedAM)
	assert.Equal(t, "Bob", bob.AssignedPM)

	pool.Resolve("Bob", model.ShiftInside, "Precinct 3")
	bob, _ = pool.Get("Bob")
	assert.Equal(t, "Precinct 3", bob.AssignedAM)
	assert.Equal(t, "Precinct 3", bob.AssignedPM)
}

func TestPool_SetLocation(t *testing.T) {
	pool := newTestPool()

	pool.SetLocation("Ann", model.ShiftOutsideAM, "Precinct 7")
	ann, _ := pool.Get("Ann")
	assert.Equal(t, "Precinct 7", ann.OutsideAMLocation)
	assert.Equal(t, "", ann.OutsidePMLocation)
}

func TestPool_GetUnknownName(t *testing.T) {
	pool := newTestPool()
	_, ok := pool.Get("Nobody")
	assert.False(t, ok)
}
