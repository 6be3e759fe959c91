package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"cents", 0.5, "$0.50"},
		{"hundreds", 123.4, "$123.40"},
		{"thousands", 1234.5, "$1,234.50"},
		{"millions", 1234567.891, "$1,234,567.89"},
		{"negative", -42.1, "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.amount))
		})
	}
}

func TestCurrencyFromCents(t *testing.T) {
	assert.Equal(t, "$10.00", CurrencyFromCents(1000))
	assert.Equal(t, "$0.01", CurrencyFromCents(1))
	assert.Equal(t, "$12,345.67", CurrencyFromCents(1234567))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, "1,000", Number(1000))
	assert.Equal(t, "12,345,678", Number(12345678))
	assert.Equal(t, "-1,500", Number(-1500))
}
