package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dream is a named savings goal with a target amount and date.
type Dream struct {
	Name          string          `yaml:"name" json:"name"`
	TargetAmount  decimal.Decimal `yaml:"target_amount" json:"targetAmount"`
	TargetDate    time.Time       `yaml:"target_date" json:"-"`
	CurrentAmount decimal.Decimal `yaml:"current_amount" json:"currentAmount"`
}

// Remaining returns the amount still to be saved, floored at zero.
func (d Dream) Remaining() decimal.Decimal {
	r := d.TargetAmount.Sub(d.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// ProgressPercent returns current/target as a percentage, 0 when the
// target is not positive.
func (d Dream) ProgressPercent() decimal.Decimal {
	if !d.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return d.CurrentAmount.Div(d.TargetAmount).Mul(decimal.NewFromInt(100))
}

// Goals describes the someday target consumed by the projection engine.
type Goals struct {
	TotalRequired  decimal.Decimal `yaml:"total_required" json:"totalRequired"`
	YearsToSomeday int             `yaml:"years_to_someday" json:"yearsToSomeday"`
}
