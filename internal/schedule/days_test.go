package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
)

func TestNormalizeDay(t *testing.T) {
	day, ok := NormalizeDay("Mon")
	require.True(t, ok)
	assert.Equal(t, models.DayMo, day)

	day, ok = NormalizeDay(" thursday ")
	require.True(t, ok)
	assert.Equal(t, models.DayTh, day)

	// Registrar single letters: T is Tuesday, R is Thursday.
	day, ok = NormalizeDay("T")
	require.True(t, ok)
	assert.Equal(t, models.DayTu, day)

	day, ok = NormalizeDay("R")
	require.True(t, ok)
	assert.Equal(t, models.DayTh, day)

	_, ok = NormalizeDay("someday")
	assert.False(t, ok)
}

func TestParseDaysEquivalentSpellings(t *testing.T) {
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}

	assert.Equal(t, want, ParseDays("Mo,We,Fr"))
	assert.Equal(t, want, ParseDays("MWF"))
	assert.Equal(t, want, ParseDays("Monday/Wednesday/Friday"))
	assert.Equal(t, want, ParseDays("mon wed fri"))
}

func TestParseDaysConcatenatedTwoLetter(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, ParseDays("TuTh"))
}

func TestParseDaysIgnoresUnknownTokens(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday}, ParseDays("Mo, TBA"))
	assert.Empty(t, ParseDays("xyz"))
	assert.Empty(t, ParseDays(""))
}

func TestParseDaysDeduplicates(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday}, ParseDays("Mo, Mon, Monday"))
}

func TestParseHHMM(t *testing.T) {
	h, m, err := ParseHHMM("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseHHMM("9:05")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	_, _, err = ParseHHMM("25:00")
	assert.Error(t, err)

	_, _, err = ParseHHMM("noon")
	assert.Error(t, err)
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2025-09-01", "10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 30, 0, 0, time.Local), got)

	got, err = CombineDateTime("2025-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local), got)

	_, err = CombineDateTime("", "10:30")
	assert.Error(t, err)

	_, err = CombineDateTime("September 1st", "10:30")
	assert.Error(t, err)
}
