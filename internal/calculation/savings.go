package calculation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// Pace multipliers applied to the base day count for each strategy.
var (
	aggressivePace = 0.75
	relaxedPace    = 1.5
)

// Savings-to-target projections terminate after 50 years regardless of
// contribution size.
const maxProjectionDays = 50 * 365

// SavingsStrategy is one daily/weekly/monthly savings plan for a goal.
// WeeklyAmount and MonthlyAmount are always derived from DailyAmount
// with the fixed x7 and x30.44 multipliers, never set independently.
type SavingsStrategy struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Intensity          string          `json:"intensity"`
	DailyAmount        decimal.Decimal `json:"dailyAmount"`
	WeeklyAmount       decimal.Decimal `json:"weeklyAmount"`
	MonthlyAmount      decimal.Decimal `json:"monthlyAmount"`
	AdjustedTargetDate string          `json:"adjustedTargetDate"`
	TotalDays          int             `json:"totalDays"`
}

// StrategyMetadata describes the inputs a strategy set was derived from.
type StrategyMetadata struct {
	DreamAmount        decimal.Decimal `json:"dreamAmount"`
	OriginalTargetDate string          `json:"originalTargetDate"`
	CalculatedOn       string          `json:"calculatedOn"`
	BaseDays           int             `json:"baseDays"`
}

// StrategySet holds the three pacing options for one goal.
type StrategySet struct {
	Aggressive SavingsStrategy  `json:"aggressive"`
	Balanced   SavingsStrategy  `json:"balanced"`
	Relaxed    SavingsStrategy  `json:"relaxed"`
	Metadata   StrategyMetadata `json:"metadata"`
}

// SavingsCalculator generates savings strategies for dream goals.
type SavingsCalculator struct {
	logger Logger
}

// NewSavingsCalculator creates a savings calculator.
func NewSavingsCalculator(logger Logger) *SavingsCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &SavingsCalculator{logger: logger}
}

// DaysBetween returns the number of days from 'from' to 'to', rounding
// any partial day up.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// CalculateStrategies produces aggressive, balanced, and relaxed plans
// for saving dreamAmount by targetDate. The aggressive plan compresses
// the timeline to 75% of the base days and the relaxed plan stretches it
// to 150%.
func (sc *SavingsCalculator) CalculateStrategies(dreamAmount decimal.Decimal, targetDate, now time.Time) (*StrategySet, error) {
	if !dreamAmount.IsPositive() {
		return nil, &InvalidGoalError{Field: "dreamAmount", Message: "must be positive"}
	}
	baseDays := DaysBetween(now, targetDate)
	if baseDays <= 0 {
		return nil, &InvalidGoalError{Field: "targetDate", Message: "must be in the future"}
	}

	aggressiveDays := int(math.Ceil(float64(baseDays) * aggressivePace))
	relaxedDays := int(math.Ceil(float64(baseDays) * relaxedPace))

	sc.logger.Debugf("strategies for %s over %d base days", dreamAmount.StringFixed(2), baseDays)

	set := &StrategySet{
		Aggressive: buildStrategy(dreamAmount, aggressiveDays, now,
			"Aggressive", "Reach your dream sooner with higher daily savings", "high"),
		Balanced: buildStrategy(dreamAmount, baseDays, now,
			"Balanced", "Steady progress on your original timeline", "medium"),
		Relaxed: buildStrategy(dreamAmount, relaxedDays, now,
			"Relaxed", "Smaller daily amounts over a longer stretch", "low"),
		Metadata: StrategyMetadata{
			DreamAmount:        dreamAmount,
			OriginalTargetDate: domain.FormatDate(targetDate),
			CalculatedOn:       domain.FormatDate(now),
			BaseDays:           baseDays,
		},
	}
	return set, nil
}

func buildStrategy(amount decimal.Decimal, days int, now time.Time, name, description, intensity string) SavingsStrategy {
	daily := amount.Div(decimal.NewFromInt(int64(days))).Round(2)
	return SavingsStrategy{
		Name:               name,
		Description:        description,
		Intensity:          intensity,
		DailyAmount:        daily,
		WeeklyAmount:       DailyToWeekly(daily),
		MonthlyAmount:      DailyToMonthly(daily),
		AdjustedTargetDate: domain.FormatDate(now.AddDate(0, 0, days)),
		TotalDays:          days,
	}
}

// TargetDateResult is the inverse calculation: the date a goal is
// reached at a fixed daily contribution.
type TargetDateResult struct {
	TargetDate  string          `json:"targetDate"`
	TotalDays   int             `json:"totalDays"`
	DailyAmount decimal.Decimal `json:"dailyAmount"`
	Capped      bool            `json:"capped"`
}

// CalculateTargetDate projects when dreamAmount is reached when saving
// dailySavings per day. The projection is capped at 50 years.
func (sc *SavingsCalculator) CalculateTargetDate(dreamAmount, dailySavings decimal.Decimal, now time.Time) (*TargetDateResult, error) {
	if !dreamAmount.IsPositive() {
		return nil, &InvalidGoalError{Field: "dreamAmount", Message: "must be positive"}
	}
	if !dailySavings.IsPositive() {
		return nil, &InvalidGoalError{Field: "dailySavings", Message: "must be positive"}
	}

	days := int(dreamAmount.Div(dailySavings).Ceil().IntPart())
	capped := false
	if days > maxProjectionDays {
		days = maxProjectionDays
		capped = true
	}
	return &TargetDateResult{
		TargetDate:  domain.FormatDate(now.AddDate(0, 0, days)),
		TotalDays:   days,
		DailyAmount: dailySavings.Round(2),
		Capped:      capped,
	}, nil
}
