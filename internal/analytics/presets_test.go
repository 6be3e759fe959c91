package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsCatalogue(t *testing.T) {
	var got []string
	for _, p := range Presets() {
		got = append(got, p.Key)
		assert.NotEmpty(t, p.Label)
	}
	assert.Equal(t, []string{"today", "last_7_days", "last_30_days", "last_90_days", "last_365_days", "all_time"}, got)

	// callers cannot mutate the catalogue
	list := Presets()
	list[0].Key = "mutated"
	p, ok := Lookup("today")
	assert.True(t, ok)
	assert.Equal(t, "Today", p.Label)
}

func TestResolveFallsBackPerCallSite(t *testing.T) {
	assert.Equal(t, Last30Days, Resolve("last_30_days", Last7Days))
	assert.Equal(t, Last7Days, Resolve("", Last7Days))
	assert.Equal(t, Last7Days, Resolve("next_week", Last7Days))
	assert.Equal(t, AllTime, Resolve("LAST_7_DAYS", AllTime))
}

func TestPresetRange(t *testing.T) {
	now := time.Date(2024, 8, 15, 16, 30, 0, 0, time.UTC)

	r := Last7Days.Range(now, time.UTC)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2024, 8, 9, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, now, *r.End)

	series := AggregateByDay(Window{Range: r}, []sale{}, saleTime, countOne)
	assert.Len(t, series, 7)

	today := Today.Range(now, nil)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), *today.Start)

	all := AllTime.Range(now, time.UTC)
	assert.Nil(t, all.Start)
	assert.Nil(t, all.End)
}

func TestPresetRangeAcrossSkippedMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2018, 11, 10, 12, 0, 0, 0, loc)

	r := Last7Days.Range(now, loc)
	require.NotNil(t, r.Start)
	assert.Equal(t, "2018-11-04 01:00 -02", r.Start.Format("2006-01-02 15:04 -07"))

	series := AggregateByDay(Window{Range: r, Location: loc}, []sale{}, saleTime, countOne)
	require.Len(t, series, 7)
	assert.Equal(t, "2018-11-04", series[0].Date)
	assert.Equal(t, "2018-11-10", series[6].Date)
}

func TestPresetView(t *testing.T) {
	now := time.Date(2024, 8, 15, 16, 30, 0, 0, time.UTC)

	v := Last30Days.View(now, time.UTC)
	assert.Equal(t, "last_30_days", v.Key)
	assert.Equal(t, "Last 30 Days", v.Label)
	assert.Equal(t, time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC), *v.Start)

	all := AllTime.View(now, time.UTC)
	assert.Nil(t, all.Start)
	assert.Nil(t, all.End)
}
