package calculation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Average month length in days, used for all daily/monthly conversions.
var daysPerMonth = decimal.NewFromFloat(30.44)

var (
	daysPerWeek = decimal.NewFromInt(7)
	hundred     = decimal.NewFromInt(100)
)

// DailyToWeekly converts a daily amount to its weekly equivalent.
func DailyToWeekly(daily decimal.Decimal) decimal.Decimal {
	return daily.Mul(daysPerWeek).Round(2)
}

// DailyToMonthly converts a daily amount to its monthly equivalent using
// the 30.44-day average month.
func DailyToMonthly(daily decimal.Decimal) decimal.Decimal {
	return daily.Mul(daysPerMonth).Round(2)
}

// WeeklyToDaily converts a weekly amount back to a daily amount.
func WeeklyToDaily(weekly decimal.Decimal) decimal.Decimal {
	return weekly.Div(daysPerWeek).Round(2)
}

// MonthlyToDaily converts a monthly amount back to a daily amount.
func MonthlyToDaily(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Div(daysPerMonth).Round(2)
}

// FormatCurrency renders an amount as whole US dollars with thousands
// separators.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + groupThousands(amount.Round(0).String())
}

// FormatDailyCurrency renders a daily amount with two decimal places.
func FormatDailyCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	dot := strings.LastIndexByte(fixed, '.')
	return "$" + groupThousands(fixed[:dot]) + fixed[dot:]
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// clampDecimal bounds v to [lo, hi].
func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// clampFloat bounds v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
