package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// PayoffStrategy selects the order debts are listed in a payoff
// schedule. Each debt still receives its own payment every month; the
// ordering matters for reporting and for the strategy comparison.
type PayoffStrategy string

const (
	PayoffMinimum   PayoffStrategy = "minimum"   // original order
	PayoffAvalanche PayoffStrategy = "avalanche" // highest interest rate first
	PayoffSnowball  PayoffStrategy = "snowball"  // smallest balance first
)

// Amortization terminates after 50 years even when payments never cover
// accruing interest.
const maxPayoffMonths = 600

// PayoffSchedule summarizes a month-by-month amortization simulation.
type PayoffSchedule struct {
	Strategy      PayoffStrategy  `json:"strategy"`
	TotalMonths   int             `json:"totalMonths"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	PayoffOrder   []string        `json:"payoffOrder"`
	Capped        bool            `json:"capped"`
}

// DebtAnalysis is the aggregate view over a debt set.
type DebtAnalysis struct {
	TotalBalance         decimal.Decimal           `json:"totalBalance"`
	TotalMonthlyPayments decimal.Decimal           `json:"totalMonthlyPayments"`
	TotalMinimumPayments decimal.Decimal           `json:"totalMinimumPayments"`
	DebtToIncomeRatio    decimal.Decimal           `json:"debtToIncomeRatio"`
	AverageInterestRate  decimal.Decimal           `json:"averageInterestRate"`
	PayoffSchedules      map[string]PayoffSchedule `json:"payoffSchedules"`
	HighInterestCount    int                       `json:"highInterestCount"`
	DebtCount            int                       `json:"debtCount"`
	Recommendations      []Recommendation          `json:"recommendations"`
}

// AnalyzeDebts aggregates a debt set and simulates all three payoff
// strategies against net monthly income.
func AnalyzeDebts(debts []domain.Debt, netMonthlyIncome decimal.Decimal) DebtAnalysis {
	if len(debts) == 0 {
		return DebtAnalysis{PayoffSchedules: map[string]PayoffSchedule{}}
	}

	totalBalance := decimal.Zero
	totalPayments := decimal.Zero
	totalMinimums := decimal.Zero
	weightedRate := decimal.Zero
	highInterest := 0
	for _, d := range debts {
		totalBalance = totalBalance.Add(d.CurrentBalance)
		totalPayments = totalPayments.Add(d.Payment())
		min := d.MinimumPayment
		if !min.IsPositive() {
			min = d.MonthlyPayment
		}
		totalMinimums = totalMinimums.Add(min)
		weightedRate = weightedRate.Add(d.InterestRate.Mul(d.CurrentBalance))
		if d.InterestRate.GreaterThan(decimal.NewFromInt(15)) {
			highInterest++
		}
	}

	avgRate := decimal.Zero
	if totalBalance.IsPositive() {
		avgRate = weightedRate.Div(totalBalance)
	}
	dti := decimal.Zero
	if netMonthlyIncome.IsPositive() {
		dti = totalPayments.Div(netMonthlyIncome).Mul(hundred)
	}

	schedules := map[string]PayoffSchedule{
		string(PayoffMinimum):   CalculatePayoffSchedule(debts, PayoffMinimum),
		string(PayoffAvalanche): CalculatePayoffSchedule(debts, PayoffAvalanche),
		string(PayoffSnowball):  CalculatePayoffSchedule(debts, PayoffSnowball),
	}

	analysis := DebtAnalysis{
		TotalBalance:         totalBalance.Round(2),
		TotalMonthlyPayments: totalPayments.Round(2),
		TotalMinimumPayments: totalMinimums.Round(2),
		DebtToIncomeRatio:    dti.Round(2),
		AverageInterestRate:  avgRate.Round(2),
		PayoffSchedules:      schedules,
		HighInterestCount:    highInterest,
		DebtCount:            len(debts),
	}
	analysis.Recommendations = debtRecommendations(analysis, schedules)
	return analysis
}

func debtRecommendations(analysis DebtAnalysis, schedules map[string]PayoffSchedule) []Recommendation {
	var recs []Recommendation
	forty := decimal.NewFromInt(40)
	twenty := decimal.NewFromInt(20)

	if analysis.DebtToIncomeRatio.GreaterThan(forty) {
		recs = append(recs, Recommendation{
			Category: "debt",
			Type:     "debt_consolidation",
			Priority: PriorityHigh,
			Title:    "Consider Debt Consolidation",
			Message:  "Consider debt consolidation to reduce monthly payments",
		})
	}
	if analysis.DebtToIncomeRatio.GreaterThan(twenty) {
		saved := schedules[string(PayoffMinimum)].TotalInterest.Sub(schedules[string(PayoffAvalanche)].TotalInterest)
		recs = append(recs, Recommendation{
			Category:         "debt",
			Type:             "avalanche_strategy",
			Priority:         PriorityMedium,
			Title:            "Use the Avalanche Method",
			Message:          "Use the avalanche method to save on interest payments",
			PotentialSavings: saved,
		})
	}
	if analysis.HighInterestCount > 0 {
		recs = append(recs, Recommendation{
			Category: "debt",
			Type:     "high_interest_focus",
			Priority: PriorityHigh,
			Title:    "Prioritize High-Interest Debt",
			Message:  "Prioritize paying off high-interest debt (over 15% APR)",
		})
	}
	return recs
}

// CalculatePayoffSchedule runs a month-by-month amortization of the debt
// set under the given ordering. Each month, interest accrues on every
// remaining balance and that debt's payment reduces principal, floored
// at zero.
func CalculatePayoffSchedule(debts []domain.Debt, strategy PayoffStrategy) PayoffSchedule {
	if len(debts) == 0 {
		return PayoffSchedule{Strategy: strategy}
	}

	type workingDebt struct {
		name      string
		remaining decimal.Decimal
		rate      decimal.Decimal
		payment   decimal.Decimal
	}
	working := make([]workingDebt, len(debts))
	for i, d := range debts {
		working[i] = workingDebt{
			name:      d.Name,
			remaining: d.CurrentBalance,
			rate:      d.InterestRate,
			payment:   d.Payment(),
		}
	}

	switch strategy {
	case PayoffAvalanche:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].rate.GreaterThan(working[j].rate)
		})
	case PayoffSnowball:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].remaining.LessThan(working[j].remaining)
		})
	}

	order := make([]string, len(working))
	for i, d := range working {
		order[i] = d.name
	}

	twelve := decimal.NewFromInt(12)
	totalInterest := decimal.Zero
	totalPayments := decimal.Zero
	months := 0

	anyRemaining := func() bool {
		for _, d := range working {
			if d.remaining.IsPositive() {
				return true
			}
		}
		return false
	}

	for anyRemaining() && months < maxPayoffMonths {
		months++
		for i := range working {
			d := &working[i]
			if !d.remaining.IsPositive() {
				continue
			}
			monthlyRate := d.rate.Div(hundred).Div(twelve)
			interest := d.remaining.Mul(monthlyRate)
			principal := d.payment.Sub(interest)
			if principal.IsNegative() {
				principal = decimal.Zero
			}
			principal = decimal.Min(principal, d.remaining)

			d.remaining = d.remaining.Sub(principal)
			totalInterest = totalInterest.Add(interest)
			totalPayments = totalPayments.Add(d.payment)
		}
	}

	return PayoffSchedule{
		Strategy:      strategy,
		TotalMonths:   months,
		TotalInterest: totalInterest.Round(0),
		TotalPayments: totalPayments.Round(0),
		PayoffOrder:   order,
		Capped:        months == maxPayoffMonths && anyRemaining(),
	}
}
