package analytics

// Summary carries headline figures over a whole record set
type Summary struct {
	Count      int64 `json:"count"`
	TotalCents int64 `json:"total_cents"`
}

func Summarize[R any](records []R, cents func(R) int64) Summary {
	var s Summary
	for _, record := range records {
		s.Count++
		s.TotalCents += cents(record)
	}
	return s
}

// TotalMajor is the total in major currency units
func (s Summary) TotalMajor() float64 {
	return float64(s.TotalCents) / 100
}

// AveragePerEntity spreads totalCents over entities in major units, 0 when
// there are no entities
func AveragePerEntity(totalCents, entities int64) float64 {
	if entities == 0 {
		return 0
	}
	return float64(totalCents) / float64(entities) / 100
}
