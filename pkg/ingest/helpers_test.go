package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate_TriesEachLayoutInOrder(t *testing.T) {
	assert.Equal(t, 2020, parseDate("2020-11-03").Year())
	assert.Equal(t, time.November, parseDate("11/3/2020").Month())
	assert.True(t, parseDate("not a date").IsZero())
}

func TestTruthy_RecognisesCommonAffirmatives(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes", "y", " Y "} {
		assert.True(t, truthy(s), "expected %q to be truthy", s)
	}
	for _, s := range []string{"0", "false", "no", "", "n"} {
		assert.False(t, truthy(s), "expected %q to be falsy", s)
	}
}

func TestIndexHeaders_ErrorsOnMissingColumn(t *testing.T) {
	_, err := indexHeaders([]string{"Priority", "Zip"}, "Priority", "Polling Place Name", "Zip")
	assert.Error(t, err)
}

func TestIndexHeaders_TrimsHeaderWhitespace(t *testing.T) {
	col, err := indexHeaders([]string{" Priority ", "Zip"}, "Priority", "Zip")
	assert.NoError(t, err)
	assert.Equal(t, 0, col["Priority"])
	assert.Equal(t, 1, col["Zip"])
}

func TestAtoiCell_TrimsAndParses(t *testing.T) {
	n, err := atoiCell([]string{" 42 "}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestAtoiCell_OutOfRangeErrors(t *testing.T) {
	_, err := atoiCell([]string{"1"}, 5)
	assert.Error(t, err)
}

func TestCellAt_OutOfRangeReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", cellAt([]string{"a"}, 3))
	assert.Equal(t, "a", cellAt([]string{"a"}, 0))
}

func TestValidPostCodeSet_BuildsLookup(t *testing.T) {
	set := ValidPostCodeSet([]int{1, 2, 3})
	assert.True(t, set[2])
	assert.False(t, set[9])
}
