// Package analytics turns timestamped records into per-day dashboard series.
package analytics

import (
	"time"
)

// DayKeyLayout formats the calendar day a bucket represents
const DayKeyLayout = "2006-01-02"

// DateRange bounds an aggregation. A nil Start means "since the earliest
// record"; a nil End means "through now".
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

func Between(start, end time.Time) DateRange {
	return DateRange{Start: &start, End: &end}
}

// Unbounded is the open range covering every record
func Unbounded() DateRange {
	return DateRange{}
}

// DailyBucket holds the accumulated metric for one calendar day
type DailyBucket[M any] struct {
	Date  string `json:"date"`
	Value M      `json:"value"`
}

// Window describes the days an aggregation covers. Location decides where
// a day starts; Now stands in for an open end.
type Window struct {
	Range    DateRange
	Location *time.Location
	Now      time.Time
}

func (w Window) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// StartOfDay returns the first instant of the calendar day t falls on in
// loc. That is midnight unless a DST jump skips it.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return startOfDate(y, m, d, loc)
}

// startOfDate normalises y-m-d like time.Date does
func startOfDate(y int, m time.Month, d int, loc *time.Location) time.Time {
	key := civilDate(y, m, d).Format(DayKeyLayout)
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	// a skipped midnight resolves to the previous evening
	for DayKey(t, loc) < key {
		t = t.Add(time.Hour)
	}
	return t
}

// civilDate pins a calendar date to noon UTC so day arithmetic never
// crosses a zone transition
func civilDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// DayKey is the bucket key of the day t falls on in loc
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// AggregateByDay builds one zero-valued bucket per calendar day of the
// window, oldest first, then folds every record into the bucket of the day
// its timestamp falls on. Records outside the window are skipped. With an
// open start and no records there are no days to report.
func AggregateByDay[R, M any](w Window, records []R, timestamp func(R) time.Time, accumulate func(M, R) M) []DailyBucket[M] {
	loc := w.location()

	end := w.Now
	if w.Range.End != nil {
		end = *w.Range.End
	}

	var start time.Time
	switch {
	case w.Range.Start != nil:
		start = *w.Range.Start
	case len(records) > 0:
		start = earliest(records, timestamp)
	default:
		return []DailyBucket[M]{}
	}

	buckets, index := daySkeleton[M](start.In(loc), end.In(loc))

	for _, record := range records {
		i, ok := index[DayKey(timestamp(record), loc)]
		if !ok {
			continue
		}
		buckets[i].Value = accumulate(buckets[i].Value, record)
	}

	return buckets
}

// daySkeleton walks the calendar dates of start and end, not their
// midnights, so zones whose DST jump skips midnight get no duplicate day
func daySkeleton[M any](start, end time.Time) ([]DailyBucket[M], map[string]int) {
	buckets := []DailyBucket[M]{}
	index := make(map[string]int)

	last := civilDate(end.Date())
	for day := civilDate(start.Date()); !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(DayKeyLayout)
		index[key] = len(buckets)
		buckets = append(buckets, DailyBucket[M]{Date: key})
	}

	return buckets, index
}

func earliest[R any](records []R, timestamp func(R) time.Time) time.Time {
	first := timestamp(records[0])
	for _, record := range records[1:] {
		if ts := timestamp(record); ts.Before(first) {
			first = ts
		}
	}
	return first
}
