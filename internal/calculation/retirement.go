package calculation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Retirement sizing follows the 4% safe-withdrawal rule: the portfolio
// required at retirement is the inflation-adjusted annual expense figure
// divided by 0.04. Existing savings are grown at the fixed default
// return regardless of the supplied inflation rate, and the three
// savings strategies each assume their own expected return. The model
// does not reconcile real vs nominal returns; the numbers match the
// published planning assumptions.
var (
	SafeWithdrawalRate   = decimal.NewFromFloat(0.04)
	DefaultInflationRate = decimal.NewFromFloat(0.03)
	DefaultReturn        = decimal.NewFromFloat(0.07)
	ConservativeReturn   = decimal.NewFromFloat(0.05)
	AggressiveReturn     = decimal.NewFromFloat(0.09)
)

// DefaultRetirementLength is the assumed years in retirement when the
// caller does not specify one.
const DefaultRetirementLength = 30

// RetirementInput carries the parameters for a retirement-need
// calculation. Zero-valued optional fields take the documented defaults.
type RetirementInput struct {
	AnnualExpenses           decimal.Decimal `yaml:"annual_expenses" json:"annualExpenses"`
	YearsUntilRetirement     int             `yaml:"years_until_retirement" json:"yearsUntilRetirement"`
	ExpectedRetirementLength int             `yaml:"expected_retirement_length" json:"expectedRetirementLength"`
	InflationRate            decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	CurrentAge               int             `yaml:"current_age" json:"currentAge"`
	CurrentSavings           decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
}

// RetirementStrategy is one risk-tiered monthly savings plan toward the
// retirement portfolio target.
type RetirementStrategy struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ExpectedReturn     decimal.Decimal `json:"expectedReturn"`
	RiskLevel          string          `json:"riskLevel"`
	AssetAllocation    map[string]int  `json:"assetAllocation"`
	MonthlySavings     decimal.Decimal `json:"monthlySavings"`
	AnnualSavings      decimal.Decimal `json:"annualSavings"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	SuccessProbability decimal.Decimal `json:"successProbability"`
}

// PurchasingPowerAnalysis shows the inflation impact on today's prices.
type PurchasingPowerAnalysis struct {
	CurrentExpenses     decimal.Decimal `json:"currentExpenses"`
	FutureExpenses      decimal.Decimal `json:"futureExpenses"`
	InflationImpact     decimal.Decimal `json:"inflationImpact"`
	InflationMultiplier decimal.Decimal `json:"inflationMultiplier"`
	DollarValueInFuture decimal.Decimal `json:"dollarValueInFuture"`
	CumulativeInflation decimal.Decimal `json:"cumulativeInflation"`
	CoffeeToday         decimal.Decimal `json:"coffeeToday"`
	CoffeeInFuture      decimal.Decimal `json:"coffeeInFuture"`
	GroceriesToday      decimal.Decimal `json:"groceriesToday"`
	GroceriesInFuture   decimal.Decimal `json:"groceriesInFuture"`
}

// WithdrawalYear is one row of the portfolio depletion schedule.
type WithdrawalYear struct {
	Year            int             `json:"year"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Growth          decimal.Decimal `json:"growth"`
	Withdrawal      decimal.Decimal `json:"withdrawal"`
	EndingBalance   decimal.Decimal `json:"endingBalance"`
	Depleted        bool            `json:"portfolioDepleted"`
}

// RetirementStrategies groups the three risk tiers.
type RetirementStrategies struct {
	Conservative RetirementStrategy `json:"conservative"`
	Balanced     RetirementStrategy `json:"balanced"`
	Aggressive   RetirementStrategy `json:"aggressive"`
}

// RetirementResult is the full output of the sizing engine.
type RetirementResult struct {
	CurrentAnnualExpenses     decimal.Decimal         `json:"currentAnnualExpenses"`
	FutureAnnualExpenses      decimal.Decimal         `json:"futureAnnualExpenses"`
	RequiredPortfolioSize     decimal.Decimal         `json:"requiredPortfolioSize"`
	NetAmountNeeded           decimal.Decimal         `json:"netAmountNeeded"`
	CurrentSavings            decimal.Decimal         `json:"currentSavings"`
	FutureValueCurrentSavings decimal.Decimal         `json:"futureValueCurrentSavings"`
	SavingsGapPercentage      decimal.Decimal         `json:"savingsGapPercentage"`
	Strategies                RetirementStrategies    `json:"savingsStrategies"`
	YearsUntilRetirement      int                     `json:"yearsUntilRetirement"`
	ExpectedRetirementLength  int                     `json:"expectedRetirementLength"`
	RetirementAge             int                     `json:"retirementAge,omitempty"`
	EndOfRetirementAge        int                     `json:"endOfRetirementAge,omitempty"`
	InflationRatePercent      decimal.Decimal         `json:"inflationRate"`
	SafeWithdrawalRatePercent decimal.Decimal         `json:"safeWithdrawalRate"`
	PurchasingPower           PurchasingPowerAnalysis `json:"purchasingPowerAnalysis"`
	WithdrawalSchedule        []WithdrawalYear        `json:"withdrawalSchedule"`
	InflationImpact           decimal.Decimal         `json:"inflationImpact"`
	YearsOfExpensesCovered    int                     `json:"yearsOfExpensesCovered"`
	IsAchievable              bool                    `json:"isAchievable"`
	CalculatedAt              string                  `json:"calculatedAt"`
}

// RetirementCalculator sizes retirement portfolios.
type RetirementCalculator struct {
	logger Logger
}

// NewRetirementCalculator creates a retirement calculator.
func NewRetirementCalculator(logger Logger) *RetirementCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &RetirementCalculator{logger: logger}
}

// CalculateTotalRetirementNeed sizes the portfolio required to fund the
// given annual expenses through retirement and derives three monthly
// savings strategies to close the gap.
func (rc *RetirementCalculator) CalculateTotalRetirementNeed(input RetirementInput, now time.Time) (*RetirementResult, error) {
	if err := validateRetirementInput(input); err != nil {
		return nil, err
	}

	inflation := input.InflationRate
	if inflation.IsZero() {
		inflation = DefaultInflationRate
	}
	length := input.ExpectedRetirementLength
	if length == 0 {
		length = DefaultRetirementLength
	}
	years := input.YearsUntilRetirement

	one := decimal.NewFromInt(1)
	yearsD := decimal.NewFromInt(int64(years))

	futureAnnualExpenses := input.AnnualExpenses.Mul(one.Add(inflation).Pow(yearsD))
	requiredPortfolioSize := futureAnnualExpenses.Div(SafeWithdrawalRate)

	// Current savings grow at the fixed default return, not at the
	// supplied inflation rate.
	futureValueCurrentSavings := input.CurrentSavings.Mul(one.Add(DefaultReturn).Pow(yearsD))
	netAmountNeeded := requiredPortfolioSize.Sub(futureValueCurrentSavings)
	if netAmountNeeded.IsNegative() {
		netAmountNeeded = decimal.Zero
	}

	rc.logger.Debugf("retirement need: future expenses %s, portfolio %s",
		futureAnnualExpenses.Round(0), requiredPortfolioSize.Round(0))

	strategies := rc.buildStrategies(requiredPortfolioSize, input.CurrentSavings, years)

	gapPct := hundred
	if input.CurrentSavings.IsPositive() && requiredPortfolioSize.IsPositive() {
		gapPct = netAmountNeeded.Div(requiredPortfolioSize).Mul(hundred).Round(2)
	}

	result := &RetirementResult{
		CurrentAnnualExpenses:     input.AnnualExpenses.Round(0),
		FutureAnnualExpenses:      futureAnnualExpenses.Round(0),
		RequiredPortfolioSize:     requiredPortfolioSize.Round(0),
		NetAmountNeeded:           netAmountNeeded.Round(0),
		CurrentSavings:            input.CurrentSavings.Round(0),
		FutureValueCurrentSavings: futureValueCurrentSavings.Round(0),
		SavingsGapPercentage:      gapPct,
		Strategies:                strategies,
		YearsUntilRetirement:      years,
		ExpectedRetirementLength:  length,
		InflationRatePercent:      inflation.Mul(hundred),
		SafeWithdrawalRatePercent: SafeWithdrawalRate.Mul(hundred),
		PurchasingPower:           purchasingPowerAnalysis(input.AnnualExpenses, futureAnnualExpenses, years, inflation),
		WithdrawalSchedule:        withdrawalSchedule(requiredPortfolioSize, futureAnnualExpenses, length, inflation),
		InflationImpact:           futureAnnualExpenses.Sub(input.AnnualExpenses).Round(0),
		YearsOfExpensesCovered:    int(requiredPortfolioSize.Div(futureAnnualExpenses).Round(0).IntPart()),
		CalculatedAt:              now.Format(time.RFC3339),
	}
	if input.CurrentAge > 0 {
		result.RetirementAge = input.CurrentAge + years
		result.EndOfRetirementAge = result.RetirementAge + length
	}

	// Achievability heuristic: the target is reachable when it fits
	// inside twice the aggressive plan's lifetime contributions.
	aggressiveTotal := strategies.Aggressive.MonthlySavings.
		Mul(decimal.NewFromInt(12)).
		Mul(decimal.NewFromInt(int64(years))).
		Mul(decimal.NewFromInt(2))
	result.IsAchievable = netAmountNeeded.LessThanOrEqual(aggressiveTotal)

	return result, nil
}

func validateRetirementInput(input RetirementInput) error {
	if !input.AnnualExpenses.IsPositive() {
		return &InvalidRetirementInputError{Field: "annualExpenses", Message: "must be positive"}
	}
	if input.YearsUntilRetirement <= 0 {
		return &InvalidRetirementInputError{Field: "yearsUntilRetirement", Message: "must be positive"}
	}
	if input.YearsUntilRetirement > 50 {
		return &InvalidRetirementInputError{Field: "yearsUntilRetirement", Message: "must be 50 or fewer"}
	}
	if input.ExpectedRetirementLength < 0 || input.ExpectedRetirementLength > 50 {
		return &InvalidRetirementInputError{Field: "expectedRetirementLength", Message: "must be between 0 and 50"}
	}
	if input.InflationRate.IsNegative() || input.InflationRate.GreaterThan(decimal.NewFromFloat(0.15)) {
		return &InvalidRetirementInputError{Field: "inflationRate", Message: "must be between 0 and 0.15"}
	}
	if input.CurrentAge != 0 && (input.CurrentAge < 18 || input.CurrentAge > 80) {
		return &InvalidRetirementInputError{Field: "currentAge", Message: "must be between 18 and 80"}
	}
	if input.CurrentSavings.IsNegative() {
		return &InvalidRetirementInputError{Field: "currentSavings", Message: "cannot be negative"}
	}
	return nil
}

func (rc *RetirementCalculator) buildStrategies(target, currentSavings decimal.Decimal, years int) RetirementStrategies {
	return RetirementStrategies{
		Conservative: buildRetirementStrategy("Conservative",
			"Lower risk, steady growth with bonds and stable investments",
			ConservativeReturn, "Low", map[string]int{"stocks": 30, "bonds": 60, "cash": 10},
			target, currentSavings, years),
		Balanced: buildRetirementStrategy("Balanced",
			"Moderate risk with diversified stock and bond portfolio",
			DefaultReturn, "Medium", map[string]int{"stocks": 60, "bonds": 30, "cash": 10},
			target, currentSavings, years),
		Aggressive: buildRetirementStrategy("Aggressive",
			"Higher risk, higher potential returns with stock-heavy portfolio",
			AggressiveReturn, "High", map[string]int{"stocks": 80, "bonds": 15, "cash": 5},
			target, currentSavings, years),
	}
}

func buildRetirementStrategy(name, description string, expectedReturn decimal.Decimal, riskLevel string, allocation map[string]int, target, currentSavings decimal.Decimal, years int) RetirementStrategy {
	one := decimal.NewFromInt(1)
	yearsD := decimal.NewFromInt(int64(years))
	totalMonths := years * 12

	// Each tier grows today's savings at its own expected return before
	// sizing the annuity payment.
	futureCurrentSavings := currentSavings.Mul(one.Add(expectedReturn).Pow(yearsD))
	netNeeded := target.Sub(futureCurrentSavings)
	if netNeeded.IsNegative() {
		netNeeded = decimal.Zero
	}

	monthly := AnnuityPayment(netNeeded, expectedReturn, totalMonths)

	return RetirementStrategy{
		Name:               name,
		Description:        description,
		ExpectedReturn:     expectedReturn,
		RiskLevel:          riskLevel,
		AssetAllocation:    allocation,
		MonthlySavings:     monthly,
		AnnualSavings:      monthly.Mul(decimal.NewFromInt(12)).Round(2),
		TotalContributions: monthly.Mul(decimal.NewFromInt(int64(totalMonths))).Round(2),
		SuccessProbability: successProbability(riskLevel, years),
	}
}

// AnnuityPayment solves PMT = FV*r / ((1+r)^n - 1) for the monthly
// contribution that reaches futureValue in totalMonths at the given
// annual return, falling back to linear division when the rate is zero.
func AnnuityPayment(futureValue, annualReturn decimal.Decimal, totalMonths int) decimal.Decimal {
	if !futureValue.IsPositive() || totalMonths <= 0 {
		return decimal.Zero
	}
	monthlyRate := annualReturn.Div(decimal.NewFromInt(12))
	if monthlyRate.IsZero() {
		return futureValue.Div(decimal.NewFromInt(int64(totalMonths))).Round(2)
	}
	one := decimal.NewFromInt(1)
	denominator := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(totalMonths))).Sub(one)
	return futureValue.Mul(monthlyRate).Div(denominator).Round(2)
}

func successProbability(riskLevel string, years int) decimal.Decimal {
	base := map[string]float64{"Low": 85, "Medium": 75, "High": 65}[riskLevel]
	bonus := math.Min(float64(years)*0.5, 15)
	return decimal.NewFromFloat(math.Min(95, base+bonus))
}

func purchasingPowerAnalysis(current, future decimal.Decimal, years int, inflation decimal.Decimal) PurchasingPowerAnalysis {
	one := decimal.NewFromInt(1)
	multiplier := one.Add(inflation).Pow(decimal.NewFromInt(int64(years)))
	coffee := decimal.NewFromInt(5)
	groceries := decimal.NewFromInt(100)
	return PurchasingPowerAnalysis{
		CurrentExpenses:     current.Round(0),
		FutureExpenses:      future.Round(0),
		InflationImpact:     future.Sub(current).Round(0),
		InflationMultiplier: multiplier.Round(2),
		DollarValueInFuture: one.Div(multiplier).Round(2),
		CumulativeInflation: multiplier.Sub(one).Mul(hundred).Round(2),
		CoffeeToday:         coffee,
		CoffeeInFuture:      coffee.Mul(multiplier).Round(2),
		GroceriesToday:      groceries,
		GroceriesInFuture:   groceries.Mul(multiplier).Round(2),
	}
}

// withdrawalSchedule projects year-by-year depletion assuming flat 4%
// growth with inflation-adjusted withdrawals from year 2 on. Capped at
// 30 rows or until the portfolio runs out.
func withdrawalSchedule(portfolio, annualWithdrawal decimal.Decimal, retirementYears int, inflation decimal.Decimal) []WithdrawalYear {
	one := decimal.NewFromInt(1)
	maxYears := retirementYears
	if maxYears > 30 {
		maxYears = 30
	}

	schedule := make([]WithdrawalYear, 0, maxYears)
	remaining := portfolio
	withdrawal := annualWithdrawal

	for year := 1; year <= maxYears; year++ {
		if year > 1 {
			withdrawal = withdrawal.Mul(one.Add(inflation))
		}
		starting := remaining
		growth := remaining.Mul(SafeWithdrawalRate)
		remaining = remaining.Add(growth).Sub(withdrawal)

		ending := remaining
		if ending.IsNegative() {
			ending = decimal.Zero
		}
		schedule = append(schedule, WithdrawalYear{
			Year:            year,
			StartingBalance: starting.Round(0),
			Growth:          growth.Round(0),
			Withdrawal:      withdrawal.Round(0),
			EndingBalance:   ending.Round(0),
			Depleted:        remaining.LessThanOrEqual(decimal.Zero),
		})
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
	}
	return schedule
}

// StrategyRecommendation is age- and risk-based allocation guidance.
type StrategyRecommendation struct {
	AssetAllocation map[string]int `json:"assetAllocation"`
	SavingsRate     SavingsRates   `json:"savingsRate"`
	Recommendations []string       `json:"recommendations"`
}

// SavingsRates are recommended savings percentages of gross income.
type SavingsRates struct {
	Recommended int `json:"recommended"`
	Minimum     int `json:"minimum"`
	Aggressive  int `json:"aggressive"`
}

// RecommendStrategy produces allocation and savings-rate guidance from
// the 100-minus-age rule adjusted for risk tolerance.
func (rc *RetirementCalculator) RecommendStrategy(currentAge int, riskTolerance string, yearsUntilRetirement int) StrategyRecommendation {
	stockPct := 100 - currentAge
	if stockPct < 20 {
		stockPct = 20
	}
	if stockPct > 90 {
		stockPct = 90
	}
	adjustments := map[string]int{"conservative": -20, "moderate": 0, "aggressive": 15}
	stockPct += adjustments[riskTolerance]
	if stockPct < 10 {
		stockPct = 10
	}
	if stockPct > 95 {
		stockPct = 95
	}
	bonds := 100 - stockPct - 5
	if bonds < 5 {
		bonds = 5
	}

	rec := StrategyRecommendation{
		AssetAllocation: map[string]int{"stocks": stockPct, "bonds": bonds, "cash": 5},
	}

	switch {
	case yearsUntilRetirement >= 30:
		rec.SavingsRate = SavingsRates{Recommended: 15, Minimum: 10, Aggressive: 20}
		rec.Recommendations = append(rec.Recommendations,
			"You have time on your side; focus on consistent saving and growth investments")
	case yearsUntilRetirement >= 20:
		rec.SavingsRate = SavingsRates{Recommended: 20, Minimum: 15, Aggressive: 25}
		rec.Recommendations = append(rec.Recommendations,
			"Increase savings rate and maintain a balanced growth strategy")
	case yearsUntilRetirement >= 10:
		rec.SavingsRate = SavingsRates{Recommended: 25, Minimum: 20, Aggressive: 35}
		rec.Recommendations = append(rec.Recommendations,
			"Time is getting shorter; consider increasing savings significantly")
	default:
		rec.SavingsRate = SavingsRates{Recommended: 35, Minimum: 30, Aggressive: 50}
		rec.Recommendations = append(rec.Recommendations,
			"Retirement is approaching; maximize savings and consider catch-up contributions")
	}

	switch {
	case currentAge < 30:
		rec.Recommendations = append(rec.Recommendations,
			"Take advantage of compound growth with aggressive investments",
			"Consider a Roth IRA for tax-free retirement income")
	case currentAge < 50:
		rec.Recommendations = append(rec.Recommendations,
			"Balance growth and stability in your portfolio",
			"Maximize employer 401(k) matching")
	default:
		rec.Recommendations = append(rec.Recommendations,
			"Consider catch-up contributions if available",
			"Begin shifting toward more conservative investments")
	}
	return rec
}
