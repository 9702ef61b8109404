package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/domain"
)

func testIncomeData() domain.IncomeData {
	return domain.IncomeData{
		GrossAnnualIncome: decimal.NewFromInt(85000),
		FilingStatus:      domain.FilingSingle,
		State:             "Colorado",
		PreTaxDeductions:  decimal.NewFromInt(5000),
	}
}

func testFixedExpenses() domain.FixedExpenses {
	return domain.FixedExpenses{
		Housing:        decimal.NewFromInt(1500),
		Transportation: decimal.NewFromInt(400),
		Insurance:      decimal.NewFromInt(200),
		Utilities:      decimal.NewFromInt(150),
		Subscriptions:  decimal.NewFromInt(50),
	}
}

func TestAnalyzeIncome(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	result, err := ia.Analyze(testIncomeData(), nil, testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)

	income := result.Income
	assert.True(t, income.GrossAnnual.Equal(decimal.NewFromInt(85000)))
	assert.True(t, income.TaxableAnnual.Equal(decimal.NewFromInt(80000)))
	assert.True(t, income.NetAnnual.LessThan(income.TaxableAnnual))
	assert.True(t, income.NetAnnual.IsPositive())
	assert.True(t, income.NetMonthly.Mul(decimal.NewFromInt(12)).Sub(income.NetAnnual).Abs().
		LessThan(decimal.NewFromFloat(0.1)))

	assert.True(t, result.Ratios.EffectiveTaxRate.IsPositive())
	assert.True(t, result.Expenses.TotalFixed.Equal(decimal.NewFromInt(2300)))
}

func TestAnalyzeIncomeValidation(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	_, err := ia.Analyze(domain.IncomeData{}, nil, domain.FixedExpenses{}, AnalysisOptions{})
	var incomeErr *InvalidIncomeError
	require.ErrorAs(t, err, &incomeErr)
	assert.Equal(t, "grossAnnualIncome", incomeErr.Field)
}

func TestAnalyzeIncomePreTaxExceedsGross(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	data := testIncomeData()
	data.PreTaxDeductions = decimal.NewFromInt(100000)
	result, err := ia.Analyze(data, nil, domain.FixedExpenses{}, AnalysisOptions{})
	require.NoError(t, err)
	assert.True(t, result.Income.TaxableAnnual.IsZero())
}

func TestSavingsCapacityConservative(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	standard, err := ia.Analyze(testIncomeData(), nil, testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)
	conservative, err := ia.Analyze(testIncomeData(), nil, testFixedExpenses(),
		AnalysisOptions{ConservativeEstimate: true})
	require.NoError(t, err)

	// Conservative estimates hold back more for variable expenses and
	// buffer, leaving less available.
	assert.True(t, conservative.SavingsCapacity.AvailableForSavings.
		LessThan(standard.SavingsCapacity.AvailableForSavings))
	assert.True(t, conservative.SavingsCapacity.ConservativeEstimate)
}

func TestSavingsCapacityLevels(t *testing.T) {
	tests := []struct {
		name     string
		net      int64
		fixed    int64
		expected CapacityLevel
	}{
		{"excellent", 10000, 2000, CapacityExcellent},
		{"insufficient", 5000, 4000, CapacityInsufficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capacity := calculateSavingsCapacity(decimal.NewFromInt(tt.net),
				decimal.Zero, decimal.NewFromInt(tt.fixed), false)
			assert.Equal(t, tt.expected, capacity.CapacityLevel)
		})
	}
}

func TestHighDebtTriggersRecommendation(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	debts := []domain.Debt{{
		Name:           "Credit Card",
		CurrentBalance: decimal.NewFromInt(30000),
		InterestRate:   decimal.NewFromInt(24),
		MonthlyPayment: decimal.NewFromInt(1200),
	}}
	result, err := ia.Analyze(testIncomeData(), debts, testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)

	types := make(map[string]bool)
	for _, rec := range result.Recommendations {
		types[rec.Type] = true
	}
	assert.True(t, types["debt_optimization"], "recs: %v", result.Recommendations)
}

func TestDreamRealityCheckAchievable(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	analysis, err := ia.Analyze(testIncomeData(), nil, testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)

	dreams := []domain.Dream{{
		Name:         "Sailboat",
		TargetAmount: decimal.NewFromInt(30000),
	}}
	check := ia.PerformDreamRealityCheck(dreams, analysis, 30)

	// $30k over 30 years is well within capacity.
	assert.True(t, check.IsAchievable)
	require.Len(t, check.Suggestions, 1)
	assert.Equal(t, "acceleration", check.Suggestions[0].Type)
}

func TestDreamRealityCheckGap(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	analysis, err := ia.Analyze(testIncomeData(), nil, testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)

	dreams := []domain.Dream{{
		Name:         "Chateau",
		TargetAmount: decimal.NewFromInt(5000000),
	}}
	check := ia.PerformDreamRealityCheck(dreams, analysis, 10)

	assert.False(t, check.IsAchievable)
	assert.True(t, check.Gap.IsPositive())
	require.Len(t, check.Suggestions, 4)

	recommended := 0
	for _, s := range check.Suggestions {
		if s.Recommended {
			recommended++
			assert.Equal(t, "hybrid_approach", s.Type)
		}
	}
	assert.Equal(t, 1, recommended)
}

func TestOptimizationScenarios(t *testing.T) {
	ia := NewIncomeAnalyzer(nil)

	analysis, err := ia.Analyze(testIncomeData(), testDebts(), testFixedExpenses(), AnalysisOptions{})
	require.NoError(t, err)

	scenarios := ia.OptimizationScenarios(analysis)
	for _, key := range []string{"incomeIncrease10", "debtElimination", "expenseReduction", "taxOptimization", "combined"} {
		s, ok := scenarios[key]
		require.True(t, ok, key)
		assert.NotEmpty(t, s.Name, key)
	}

	// A 10% raise nets about 70% after taxes, spread monthly.
	raise := scenarios["incomeIncrease10"].AdditionalMonthlySavings
	expected := decimal.NewFromInt(85000).Mul(decimal.NewFromFloat(0.1)).
		Mul(decimal.NewFromFloat(0.7)).Div(decimal.NewFromInt(12)).Round(2)
	assert.True(t, raise.Equal(expected), "got %s want %s", raise, expected)

	assert.True(t, scenarios["debtElimination"].AdditionalMonthlySavings.Equal(analysis.Debts.TotalMonthlyPayments))
}
