package assign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidravi1/vote2020/pkg/assign"
	"github.com/sidravi1/vote2020/pkg/config"
	"github.com/sidravi1/vote2020/pkg/model"
)

func testConfigWithOutputShifts() *config.Config {
	cfg := testConfig()
	cols := map[string]string{
		"outside_am_output": "outside_am_observer",
		"outside_pm_output": "outside_pm_observer",
		"inside_am_output":  "inside_observer",
		"inside_pm_output":  "inside_observer",
	}
	for _, name := range config.RequiredOutputShifts {
		cfg.OutputShifts[name] = config.OutputShiftParams{
			County:      "Travis",
			Date:        "2020-11-03",
			ObserverCol: cols[name],
		}
	}
	return cfg
}

func TestProjectOutput_ProducesFourRowsPerPrecinct(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{
		{Rank: 1, Name: "P1"},
		{Rank: 2, Name: "P2"},
	})
	roster.SetCell(0, model.ShiftInside, "Ann", false)
	roster.SetCell(0, model.ShiftOutsideBoth, "Bob", false)

	pool := model.NewPool([]model.Observer{
		{Name: "Ann", Phone: "555-0001", Email: "ann@example.com"},
		{Name: "Bob", Phone: "555-0002", Email: "bob@example.com"},
	})

	rows, err := assign.ProjectOutput(roster, pool, testConfigWithOutputShifts())
	require.NoError(t, err)
	assert.Len(t, rows, 4*roster.Len())
}

func TestProjectOutput_JoinsContactInfoByName(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})
	roster.SetCell(0, model.ShiftInside, "Ann", false)

	pool := model.NewPool([]model.Observer{
		{Name: "Ann", Phone: "555-0001", Email: "ann@example.com"},
	})

	rows, err := assign.ProjectOutput(roster, pool, testConfigWithOutputShifts())
	require.NoError(t, err)

	var found bool
	for _, r := range rows {
		if r.Name == "Ann" {
			found = true
			assert.Equal(t, "555-0001", r.PhoneNumber)
			assert.Equal(t, "ann@example.com", r.EmailAddress)
		}
	}
	assert.True(t, found)
}

func TestProjectOutput_EmptyObserverLeavesContactBlank(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})
	pool := model.NewPool(nil)

	rows, err := assign.ProjectOutput(roster, pool, testConfigWithOutputShifts())
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, "", r.Name)
		assert.Equal(t, "", r.PhoneNumber)
	}
}

func TestProjectOutput_MissingOutputShiftConfigErrors(t *testing.T) {
	roster := model.NewRoster([]model.RawPrecinct{{Rank: 1, Name: "P1"}})
	pool := model.NewPool(nil)

	_, err := assign.ProjectOutput(roster, pool, testConfig())
	assert.Error(t, err)
}
