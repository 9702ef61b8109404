package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitConversions(t *testing.T) {
	daily := decimal.NewFromInt(100)

	assert.True(t, DailyToWeekly(daily).Equal(decimal.NewFromInt(700)))
	assert.True(t, DailyToMonthly(daily).Equal(decimal.NewFromInt(3044)))

	assert.True(t, WeeklyToDaily(decimal.NewFromInt(700)).Equal(decimal.NewFromInt(100)))
	assert.True(t, MonthlyToDaily(decimal.NewFromInt(3044)).Equal(decimal.NewFromInt(100)))
}

func TestConversionsRoundTrip(t *testing.T) {
	daily := decimal.NewFromFloat(37.21)

	weekly := DailyToWeekly(daily)
	assert.True(t, WeeklyToDaily(weekly).Sub(daily).Abs().LessThan(decimal.NewFromFloat(0.01)))

	monthly := DailyToMonthly(daily)
	assert.True(t, MonthlyToDaily(monthly).Sub(daily).Abs().LessThan(decimal.NewFromFloat(0.01)))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(0), "$0"},
		{decimal.NewFromInt(999), "$999"},
		{decimal.NewFromInt(1000), "$1,000"},
		{decimal.NewFromInt(1234567), "$1,234,567"},
		{decimal.NewFromFloat(1234567.89), "$1,234,568"},
		{decimal.NewFromInt(-1234), "$-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
	}
}

func TestFormatDailyCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.NewFromFloat(5.5), "$5.50"},
		{decimal.NewFromInt(100), "$100.00"},
		{decimal.NewFromFloat(1234.5), "$1,234.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDailyCurrency(tt.amount))
	}
}

func TestClamp(t *testing.T) {
	lo, hi := decimal.NewFromInt(25), decimal.NewFromInt(90)
	assert.True(t, clampDecimal(decimal.NewFromInt(10), lo, hi).Equal(lo))
	assert.True(t, clampDecimal(decimal.NewFromInt(95), lo, hi).Equal(hi))
	assert.True(t, clampDecimal(decimal.NewFromInt(50), lo, hi).Equal(decimal.NewFromInt(50)))

	assert.Equal(t, 0.1, clampFloat(0.05, 0.1, 0.9))
	assert.Equal(t, 0.9, clampFloat(1.5, 0.1, 0.9))
	assert.Equal(t, 0.4, clampFloat(0.4, 0.1, 0.9))
}
