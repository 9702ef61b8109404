package calculation

import (
	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one actionable suggestion derived from the analysis.
type Recommendation struct {
	Category         string          `json:"category"`
	Type             string          `json:"type"`
	Priority         Priority        `json:"priority"`
	Title            string          `json:"title"`
	Message          string          `json:"message"`
	Suggestions      []string        `json:"suggestions,omitempty"`
	PotentialSavings decimal.Decimal `json:"potentialSavings,omitempty"`
}

// IncomeBreakdown shows gross, taxable, and net income at annual and
// monthly granularity.
type IncomeBreakdown struct {
	GrossAnnual    decimal.Decimal `json:"grossAnnual"`
	GrossMonthly   decimal.Decimal `json:"grossMonthly"`
	PreTax         decimal.Decimal `json:"preTaxDeductions"`
	TaxableAnnual  decimal.Decimal `json:"taxableAnnual"`
	TaxableMonthly decimal.Decimal `json:"taxableMonthly"`
	NetAnnual      decimal.Decimal `json:"netAnnual"`
	NetMonthly     decimal.Decimal `json:"netMonthly"`
}

// ExpenseAnalysis is the fixed-expense view against net monthly income.
type ExpenseAnalysis struct {
	Breakdown         domain.FixedExpenses `json:"breakdown"`
	TotalFixed        decimal.Decimal      `json:"totalFixedExpenses"`
	HousingRatio      decimal.Decimal      `json:"housingRatio"`
	TotalExpenseRatio decimal.Decimal      `json:"totalExpenseRatio"`
	Recommendations   []Recommendation     `json:"recommendations"`
}

// CapacityLevel grades how much room remains for savings.
type CapacityLevel string

const (
	CapacityExcellent    CapacityLevel = "excellent"
	CapacityGood         CapacityLevel = "good"
	CapacityModerate     CapacityLevel = "moderate"
	CapacityLimited      CapacityLevel = "limited"
	CapacityInsufficient CapacityLevel = "insufficient"
)

// SavingsCapacity estimates what is left for savings after debt, fixed
// expenses, an estimated variable-expense share, and an emergency
// buffer.
type SavingsCapacity struct {
	NetMonthlyIncome     decimal.Decimal `json:"netMonthlyIncome"`
	DebtPayments         decimal.Decimal `json:"debtPayments"`
	FixedExpenses        decimal.Decimal `json:"fixedExpenses"`
	VariableExpenses     decimal.Decimal `json:"estimatedVariableExpenses"`
	EmergencyBuffer      decimal.Decimal `json:"emergencyBuffer"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	AvailableForSavings  decimal.Decimal `json:"availableForSavings"`
	SavingsRate          decimal.Decimal `json:"savingsRate"`
	CapacityLevel        CapacityLevel   `json:"capacityLevel"`
	ConservativeEstimate bool            `json:"isConservativeEstimate"`
}

// FinancialRatios are the headline percentages of the analysis.
type FinancialRatios struct {
	EffectiveTaxRate  decimal.Decimal `json:"effectiveTaxRate"`
	DebtToIncomeRatio decimal.Decimal `json:"debtToIncomeRatio"`
	HousingRatio      decimal.Decimal `json:"housingRatio"`
	SavingsRate       decimal.Decimal `json:"savingsRate"`
	ExpenseRatio      decimal.Decimal `json:"expenseRatio"`
}

// IncomeAnalysisResult is the complete income, tax, debt, and savings
// picture for one household.
type IncomeAnalysisResult struct {
	Income          IncomeBreakdown  `json:"income"`
	Taxes           TaxResult        `json:"taxes"`
	Debts           DebtAnalysis     `json:"debts"`
	Expenses        ExpenseAnalysis  `json:"expenses"`
	SavingsCapacity SavingsCapacity  `json:"savingsCapacity"`
	Recommendations []Recommendation `json:"recommendations"`
	Ratios          FinancialRatios  `json:"ratios"`
}

// AnalysisOptions tune the income analysis.
type AnalysisOptions struct {
	ConservativeEstimate bool `yaml:"conservative_estimate" json:"conservativeEstimate"`
}

// IncomeAnalyzer combines the tax calculator with debt and expense
// analysis.
type IncomeAnalyzer struct {
	taxes  *TaxCalculator
	logger Logger
}

// NewIncomeAnalyzer creates an analyzer backed by the 2024 tax tables.
func NewIncomeAnalyzer(logger Logger) *IncomeAnalyzer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &IncomeAnalyzer{taxes: NewTaxCalculator2024(), logger: logger}
}

// Analyze runs the full income, tax, debt, expense, and savings-capacity
// analysis.
func (ia *IncomeAnalyzer) Analyze(income domain.IncomeData, debts []domain.Debt, fixed domain.FixedExpenses, opts AnalysisOptions) (*IncomeAnalysisResult, error) {
	if !income.GrossAnnualIncome.IsPositive() {
		return nil, &InvalidIncomeError{Field: "grossAnnualIncome", Message: "must be provided and positive"}
	}

	twelve := decimal.NewFromInt(12)
	taxable := income.GrossAnnualIncome.Sub(income.PreTaxDeductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	taxes := ia.taxes.Calculate(taxable, income.FilingStatus, income.State)

	netAnnual := income.GrossAnnualIncome.Sub(taxes.TotalTaxes).Sub(income.PreTaxDeductions)
	netMonthly := netAnnual.Div(twelve)

	ia.logger.Debugf("income analysis: gross %s, net monthly %s",
		income.GrossAnnualIncome.Round(0), netMonthly.Round(0))

	debtAnalysis := AnalyzeDebts(debts, netMonthly)
	expenseAnalysis := analyzeFixedExpenses(fixed, netMonthly)
	capacity := calculateSavingsCapacity(netMonthly, debtAnalysis.TotalMonthlyPayments, expenseAnalysis.TotalFixed, opts.ConservativeEstimate)

	result := &IncomeAnalysisResult{
		Income: IncomeBreakdown{
			GrossAnnual:    income.GrossAnnualIncome,
			GrossMonthly:   income.GrossAnnualIncome.Div(twelve).Round(2),
			PreTax:         income.PreTaxDeductions,
			TaxableAnnual:  taxable,
			TaxableMonthly: taxable.Div(twelve).Round(2),
			NetAnnual:      netAnnual.Round(2),
			NetMonthly:     netMonthly.Round(2),
		},
		Taxes:           taxes,
		Debts:           debtAnalysis,
		Expenses:        expenseAnalysis,
		SavingsCapacity: capacity,
		Ratios: FinancialRatios{
			EffectiveTaxRate:  safeRatio(taxes.TotalTaxes, income.GrossAnnualIncome),
			DebtToIncomeRatio: safeRatio(debtAnalysis.TotalMonthlyPayments, netMonthly),
			HousingRatio:      safeRatio(fixed.Housing, netMonthly),
			SavingsRate:       safeRatio(capacity.AvailableForSavings, netMonthly),
			ExpenseRatio:      safeRatio(debtAnalysis.TotalMonthlyPayments.Add(expenseAnalysis.TotalFixed), netMonthly),
		},
	}
	result.Recommendations = ia.buildRecommendations(result)
	return result, nil
}

// safeRatio returns a/b as a percentage, zero when b is not positive.
func safeRatio(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b).Mul(hundred).Round(2)
}

func analyzeFixedExpenses(fixed domain.FixedExpenses, netMonthly decimal.Decimal) ExpenseAnalysis {
	total := fixed.Total()
	housingRatio := safeRatio(fixed.Housing, netMonthly)
	totalRatio := safeRatio(total, netMonthly)

	var recs []Recommendation
	if housingRatio.GreaterThan(decimal.NewFromInt(30)) {
		recs = append(recs, Recommendation{
			Category: "expenses",
			Type:     "housing_cost",
			Priority: PriorityHigh,
			Title:    "Reduce Housing Costs",
			Message:  "Housing costs exceed 30% of income; consider downsizing or increasing income",
		})
	}
	if totalRatio.GreaterThan(decimal.NewFromInt(70)) {
		recs = append(recs, Recommendation{
			Category: "expenses",
			Type:     "expense_reduction",
			Priority: PriorityHigh,
			Title:    "Reduce Fixed Expenses",
			Message:  "Fixed expenses are too high; review and reduce where possible",
		})
	}
	if fixed.Subscriptions.GreaterThan(netMonthly.Mul(decimal.NewFromFloat(0.05))) {
		recs = append(recs, Recommendation{
			Category: "expenses",
			Type:     "subscription_audit",
			Priority: PriorityLow,
			Title:    "Audit Subscriptions",
			Message:  "Review subscriptions and cancel unused services",
		})
	}

	return ExpenseAnalysis{
		Breakdown:         fixed,
		TotalFixed:        total.Round(2),
		HousingRatio:      housingRatio,
		TotalExpenseRatio: totalRatio,
		Recommendations:   recs,
	}
}

func calculateSavingsCapacity(netMonthly, debtPayments, fixedExpenses decimal.Decimal, conservative bool) SavingsCapacity {
	variableRatio := decimal.NewFromFloat(0.20)
	bufferRatio := decimal.NewFromFloat(0.03)
	if conservative {
		variableRatio = decimal.NewFromFloat(0.25)
		bufferRatio = decimal.NewFromFloat(0.05)
	}

	variable := netMonthly.Mul(variableRatio)
	buffer := netMonthly.Mul(bufferRatio)
	totalExpenses := debtPayments.Add(fixedExpenses).Add(variable).Add(buffer)

	available := netMonthly.Sub(totalExpenses)
	if available.IsNegative() {
		available = decimal.Zero
	}
	rate := safeRatio(available, netMonthly)

	level := CapacityInsufficient
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		level = CapacityExcellent
	case rate.GreaterThanOrEqual(decimal.NewFromInt(15)):
		level = CapacityGood
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		level = CapacityModerate
	case rate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		level = CapacityLimited
	}

	return SavingsCapacity{
		NetMonthlyIncome:     netMonthly.Round(2),
		DebtPayments:         debtPayments.Round(2),
		FixedExpenses:        fixedExpenses.Round(2),
		VariableExpenses:     variable.Round(2),
		EmergencyBuffer:      buffer.Round(2),
		TotalExpenses:        totalExpenses.Round(2),
		AvailableForSavings:  available.Round(2),
		SavingsRate:          rate,
		CapacityLevel:        level,
		ConservativeEstimate: conservative,
	}
}

func (ia *IncomeAnalyzer) buildRecommendations(r *IncomeAnalysisResult) []Recommendation {
	var recs []Recommendation

	if r.SavingsCapacity.SavingsRate.LessThan(decimal.NewFromInt(15)) {
		recs = append(recs, Recommendation{
			Category: "income",
			Type:     "increase_income",
			Priority: PriorityHigh,
			Title:    "Increase Your Income",
			Message:  "Your current savings rate is below the recommended 15%. Focus on increasing income.",
			Suggestions: []string{
				"Ask for a raise or promotion at your current job",
				"Develop new skills for higher-paying positions",
				"Start a side hustle or freelance work",
				"Rent out a room or parking space",
			},
		})
	}
	if r.Ratios.EffectiveTaxRate.GreaterThan(decimal.NewFromInt(20)) {
		recs = append(recs, Recommendation{
			Category: "taxes",
			Type:     "tax_optimization",
			Priority: PriorityMedium,
			Title:    "Optimize Your Tax Strategy",
			Message:  "You may be able to reduce your tax burden through strategic planning.",
			Suggestions: []string{
				"Maximize 401(k) contributions to reduce taxable income",
				"Consider HSA contributions if eligible",
				"Consult a tax professional for advanced strategies",
			},
		})
	}
	if r.Ratios.DebtToIncomeRatio.GreaterThan(decimal.NewFromInt(20)) {
		recs = append(recs, Recommendation{
			Category: "debt",
			Type:     "debt_optimization",
			Priority: PriorityHigh,
			Title:    "Optimize Your Debt Strategy",
			Message:  "Reducing debt payments will free up money for savings.",
			Suggestions: []string{
				"Use the avalanche method to minimize interest payments",
				"Consider debt consolidation for lower rates",
				"Negotiate with creditors for better terms",
			},
		})
	}
	if r.Ratios.ExpenseRatio.GreaterThan(decimal.NewFromInt(60)) {
		recs = append(recs, Recommendation{
			Category: "expenses",
			Type:     "expense_reduction",
			Priority: PriorityMedium,
			Title:    "Reduce Fixed Expenses",
			Message:  "Your fixed expenses are consuming too much of your income.",
			Suggestions: []string{
				"Review and negotiate insurance rates",
				"Audit and cancel unnecessary subscriptions",
				"Shop around for better utility rates",
			},
		})
	}
	return recs
}

// RealityCheckSuggestion is one path to closing a dream funding gap.
type RealityCheckSuggestion struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Difficulty  string   `json:"difficulty"`
	Steps       []string `json:"steps"`
	Recommended bool     `json:"recommended,omitempty"`
}

// RealityCheck compares total dream costs to savings capacity.
type RealityCheck struct {
	IsAchievable       bool                     `json:"isAchievable"`
	TotalCost          decimal.Decimal          `json:"totalCost"`
	MonthlyRequirement decimal.Decimal          `json:"monthlyRequirement"`
	AvailableCapacity  decimal.Decimal          `json:"availableCapacity"`
	Gap                decimal.Decimal          `json:"gap"`
	Suggestions        []RealityCheckSuggestion `json:"suggestions"`
}

// PerformDreamRealityCheck tests whether the given dreams fit inside the
// household's savings capacity over the time horizon and suggests
// adjustments when they do not.
func (ia *IncomeAnalyzer) PerformDreamRealityCheck(dreams []domain.Dream, analysis *IncomeAnalysisResult, timeHorizonYears int) RealityCheck {
	available := analysis.SavingsCapacity.AvailableForSavings
	if len(dreams) == 0 {
		return RealityCheck{IsAchievable: true, AvailableCapacity: available}
	}
	if timeHorizonYears <= 0 {
		timeHorizonYears = 30
	}

	totalCost := decimal.Zero
	for _, d := range dreams {
		totalCost = totalCost.Add(d.TargetAmount)
	}
	months := decimal.NewFromInt(int64(timeHorizonYears * 12))
	monthlyRequirement := totalCost.Div(months)
	gap := monthlyRequirement.Sub(available)
	achievable := !gap.IsPositive()

	check := RealityCheck{
		IsAchievable:       achievable,
		TotalCost:          totalCost.Round(0),
		MonthlyRequirement: monthlyRequirement.Round(0),
		AvailableCapacity:  available.Round(0),
		Gap:                gap.Round(0),
	}

	if achievable {
		check.Suggestions = []RealityCheckSuggestion{{
			Type:        "acceleration",
			Title:       "Accelerate Your Dreams",
			Description: "Your dreams are achievable. Consider ways to reach them faster.",
			Impact:      "Earlier achievement of goals",
			Difficulty:  "optional",
			Steps: []string{
				"Increase savings rate further",
				"Optimize investment strategy",
				"Look for additional income opportunities",
			},
		}}
		return check
	}

	check.Suggestions = []RealityCheckSuggestion{
		{
			Type:        "increase_income",
			Title:       "Increase Annual Income",
			Description: "Raise gross income enough to cover the monthly gap after taxes",
			Impact:      "Maintains current timeline",
			Difficulty:  "medium",
			Steps: []string{
				"Negotiate a raise or seek promotion",
				"Develop high-value skills",
				"Start a profitable side business",
			},
		},
		{
			Type:        "extend_timeline",
			Title:       "Extend Timeline",
			Description: "Stretch the goal timeline until the monthly requirement fits capacity",
			Impact:      "Additional years before achievement",
			Difficulty:  "easy",
			Steps: []string{
				"Adjust expectations for goal achievement",
				"Focus on compound growth over time",
				"Celebrate smaller milestones along the way",
			},
		},
		{
			Type:        "reduce_costs",
			Title:       "Reduce Dream Costs",
			Description: "Trim total dream costs to fit the current capacity",
			Impact:      "Maintains current timeline and income",
			Difficulty:  "medium",
			Steps: []string{
				"Prioritize most important dreams",
				"Find more affordable alternatives",
				"Phase dreams over longer periods",
			},
		},
		{
			Type:        "hybrid_approach",
			Title:       "Balanced Approach",
			Description: "Combine moderate changes across income, timeline, and costs",
			Impact:      "Achievable with reasonable effort",
			Difficulty:  "medium",
			Recommended: true,
			Steps: []string{
				"Increase income moderately",
				"Extend the timeline slightly",
				"Reduce costs where it hurts least",
			},
		},
	}
	return check
}

// OptimizationScenario is one modeled improvement to savings capacity.
type OptimizationScenario struct {
	Name                     string          `json:"name"`
	AdditionalMonthlySavings decimal.Decimal `json:"additionalMonthlySavings"`
	TimeToImplement          string          `json:"timeToImplement"`
	Difficulty               string          `json:"difficulty"`
}

// OptimizationScenarios models the savings impact of an income raise,
// debt elimination, expense cuts, tax optimization, and a combined
// approach.
func (ia *IncomeAnalyzer) OptimizationScenarios(analysis *IncomeAnalysisResult) map[string]OptimizationScenario {
	twelve := decimal.NewFromInt(12)
	gross := analysis.Income.GrossAnnual

	// A raise nets roughly 70% after taxes.
	raise := gross.Mul(decimal.NewFromFloat(0.1)).Mul(decimal.NewFromFloat(0.7)).Div(twelve)
	expenseCut := analysis.Expenses.TotalFixed.Mul(decimal.NewFromFloat(0.15))
	taxSavings := gross.Mul(decimal.NewFromFloat(0.03)).Div(twelve)

	avalancheYears := (analysis.Debts.PayoffSchedules[string(PayoffAvalanche)].TotalMonths + 11) / 12

	scenarios := map[string]OptimizationScenario{
		"incomeIncrease10": {
			Name:                     "10% Income Increase",
			AdditionalMonthlySavings: raise.Round(2),
			TimeToImplement:          "6-12 months",
			Difficulty:               "medium",
		},
		"debtElimination": {
			Name:                     "Eliminate All Debt",
			AdditionalMonthlySavings: analysis.Debts.TotalMonthlyPayments,
			TimeToImplement:          formatYears(avalancheYears),
			Difficulty:               "high",
		},
		"expenseReduction": {
			Name:                     "15% Expense Reduction",
			AdditionalMonthlySavings: expenseCut.Round(2),
			TimeToImplement:          "3-6 months",
			Difficulty:               "medium",
		},
		"taxOptimization": {
			Name:                     "Tax Strategy Optimization",
			AdditionalMonthlySavings: taxSavings.Round(2),
			TimeToImplement:          "1-3 months",
			Difficulty:               "low",
		},
	}
	combined := raise.Mul(decimal.NewFromFloat(0.5)).
		Add(expenseCut.Mul(decimal.NewFromFloat(0.7))).
		Add(taxSavings)
	scenarios["combined"] = OptimizationScenario{
		Name:                     "Combined Optimization",
		AdditionalMonthlySavings: combined.Round(2),
		TimeToImplement:          "6-18 months",
		Difficulty:               "high",
	}
	return scenarios
}

func formatYears(years int) string {
	if years <= 1 {
		return "1 year"
	}
	return decimal.NewFromInt(int64(years)).String() + " years"
}
