package analytics

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestResolve(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{Week, time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)},
		{Month, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Quarter, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Year, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			rng := Resolve(tt.period, now)
			assert.Equal(t, tt.start, rng.Start)
			assert.Equal(t, now, rng.End)
		})
	}
}

func TestResolveQuarterBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		want  time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.July, time.July},
		{time.September, time.July},
		{time.October, time.October},
		{time.December, time.October},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			now := time.Date(2023, tt.month, 15, 9, 0, 0, 0, time.UTC)
			rng := Resolve(Quarter, now)
			assert.Equal(t, time.Date(2023, tt.want, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		})
	}
}

func TestResolveUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2024, 3, 1, 1, 0, 0, 0, loc)

	rng := Resolve(Month, now)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), rng.Start)
}

func TestResolveStartNeverAfterEnd(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range instants {
		for _, p := range append(Periods, Period("fortnight")) {
			rng := Resolve(p, now)
			assert.False(t, rng.Start.After(rng.End), "%s at %s", p, now)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, Week, ParsePeriod("week"))
	assert.Equal(t, Quarter, ParsePeriod(" Quarter "))
	assert.Equal(t, Year, ParsePeriod("YEAR"))
	assert.Equal(t, Month, ParsePeriod("month"))
	assert.Equal(t, Month, ParsePeriod("fortnight"))
	assert.Equal(t, Month, ParsePeriod(""))
}

func TestResolveUnknownFallsBackToMonth(t *testing.T) {
	assert.Equal(t, Resolve(Month, januaryNow), Resolve(Period("decade"), januaryNow))
}

func TestRangeContainsInclusive(t *testing.T) {
	rng := Range{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	assert.True(t, rng.Contains(date(2024, 1, 1)))
	assert.True(t, rng.Contains(date(2024, 1, 31)))
	assert.True(t, rng.Contains(date(2024, 1, 15)))
	assert.False(t, rng.Contains(date(2023, 12, 31)))
	assert.False(t, rng.Contains(date(2024, 1, 31).Add(time.Nanosecond)))
}
