package analytics

import "time"

// RangePreset is a named date range callers select by key
type RangePreset struct {
	Key   string
	Label string
	// days covered including today; zero means unbounded
	days int
}

var (
	Today       = RangePreset{Key: "today", Label: "Today", days: 1}
	Last7Days   = RangePreset{Key: "last_7_days", Label: "Last 7 Days", days: 7}
	Last30Days  = RangePreset{Key: "last_30_days", Label: "Last 30 Days", days: 30}
	Last90Days  = RangePreset{Key: "last_90_days", Label: "Last 90 Days", days: 90}
	Last365Days = RangePreset{Key: "last_365_days", Label: "Last 365 Days", days: 365}
	AllTime     = RangePreset{Key: "all_time", Label: "All Time"}
)

var presets = []RangePreset{Today, Last7Days, Last30Days, Last90Days, Last365Days, AllTime}

// Presets lists every preset in display order
func Presets() []RangePreset {
	return append([]RangePreset(nil), presets...)
}

func Lookup(key string) (RangePreset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return RangePreset{}, false
}

// Resolve returns the preset named by key, or fallback when key is empty or
// unknown
func Resolve(key string, fallback RangePreset) RangePreset {
	if p, ok := Lookup(key); ok {
		return p
	}
	return fallback
}

// Range materialises the preset relative to now. Bounded presets start at
// the start of a day in loc so that "last 7 days" spans exactly seven
// calendar days.
func (p RangePreset) Range(now time.Time, loc *time.Location) DateRange {
	if p.days == 0 {
		return Unbounded()
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	start := startOfDate(y, m, d-(p.days-1), loc)
	return Between(start, now)
}

// PresetView is the enumerable form of a preset handed to clients
type PresetView struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

func (p RangePreset) View(now time.Time, loc *time.Location) PresetView {
	r := p.Range(now, loc)
	return PresetView{Key: p.Key, Label: p.Label, Start: r.Start, End: r.End}
}
