package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/domain"
)

func testDebts() []domain.Debt {
	return []domain.Debt{
		{
			Name:           "Credit Card",
			CurrentBalance: decimal.NewFromInt(8000),
			InterestRate:   decimal.NewFromInt(22),
			MonthlyPayment: decimal.NewFromInt(300),
		},
		{
			Name:           "Car Loan",
			CurrentBalance: decimal.NewFromInt(15000),
			InterestRate:   decimal.NewFromInt(6),
			MonthlyPayment: decimal.NewFromInt(400),
		},
		{
			Name:           "Student Loan",
			CurrentBalance: decimal.NewFromInt(25000),
			InterestRate:   decimal.NewFromInt(5),
			MonthlyPayment: decimal.NewFromInt(280),
		},
	}
}

func TestAnalyzeDebts(t *testing.T) {
	analysis := AnalyzeDebts(testDebts(), decimal.NewFromInt(5000))

	assert.True(t, analysis.TotalBalance.Equal(decimal.NewFromInt(48000)))
	assert.True(t, analysis.TotalMonthlyPayments.Equal(decimal.NewFromInt(980)))
	assert.Equal(t, 3, analysis.DebtCount)
	assert.Equal(t, 1, analysis.HighInterestCount)
	// 980 / 5000 * 100
	assert.True(t, analysis.DebtToIncomeRatio.Equal(decimal.NewFromFloat(19.6)),
		"got %s", analysis.DebtToIncomeRatio)

	require.Len(t, analysis.PayoffSchedules, 3)
	for _, strategy := range []PayoffStrategy{PayoffMinimum, PayoffAvalanche, PayoffSnowball} {
		s, ok := analysis.PayoffSchedules[string(strategy)]
		require.True(t, ok, strategy)
		assert.True(t, s.TotalMonths > 0)
		assert.False(t, s.Capped)
	}
}

func TestAnalyzeDebtsEmpty(t *testing.T) {
	analysis := AnalyzeDebts(nil, decimal.NewFromInt(5000))
	assert.Equal(t, 0, analysis.DebtCount)
	assert.Empty(t, analysis.PayoffSchedules)
	assert.True(t, analysis.TotalBalance.IsZero())
}

func TestPayoffOrdering(t *testing.T) {
	debts := testDebts()

	avalanche := CalculatePayoffSchedule(debts, PayoffAvalanche)
	assert.Equal(t, []string{"Credit Card", "Car Loan", "Student Loan"}, avalanche.PayoffOrder)

	snowball := CalculatePayoffSchedule(debts, PayoffSnowball)
	assert.Equal(t, []string{"Credit Card", "Car Loan", "Student Loan"}, snowball.PayoffOrder)

	minimum := CalculatePayoffSchedule(debts, PayoffMinimum)
	assert.Equal(t, []string{"Credit Card", "Car Loan", "Student Loan"}, minimum.PayoffOrder)
}

func TestAvalancheNeverCostsMore(t *testing.T) {
	debts := testDebts()

	minimum := CalculatePayoffSchedule(debts, PayoffMinimum)
	avalanche := CalculatePayoffSchedule(debts, PayoffAvalanche)

	assert.True(t, avalanche.TotalInterest.LessThanOrEqual(minimum.TotalInterest),
		"avalanche %s vs minimum %s", avalanche.TotalInterest, minimum.TotalInterest)
}

func TestSingleDebtStrategiesAgree(t *testing.T) {
	single := []domain.Debt{{
		Name:           "Only Debt",
		CurrentBalance: decimal.NewFromInt(5000),
		InterestRate:   decimal.NewFromInt(10),
		MonthlyPayment: decimal.NewFromInt(200),
	}}

	avalanche := CalculatePayoffSchedule(single, PayoffAvalanche)
	snowball := CalculatePayoffSchedule(single, PayoffSnowball)

	assert.Equal(t, avalanche.TotalMonths, snowball.TotalMonths)
	assert.True(t, avalanche.TotalInterest.Equal(snowball.TotalInterest))
}

func TestPayoffCappedWhenPaymentsTooSmall(t *testing.T) {
	underwater := []domain.Debt{{
		Name:           "Underwater",
		CurrentBalance: decimal.NewFromInt(50000),
		InterestRate:   decimal.NewFromInt(30),
		MonthlyPayment: decimal.NewFromInt(100),
	}}

	schedule := CalculatePayoffSchedule(underwater, PayoffMinimum)
	assert.True(t, schedule.Capped)
	assert.Equal(t, maxPayoffMonths, schedule.TotalMonths)
}

func TestPaymentFallsBackToMinimum(t *testing.T) {
	d := domain.Debt{
		CurrentBalance: decimal.NewFromInt(1000),
		MinimumPayment: decimal.NewFromInt(50),
	}
	assert.True(t, d.Payment().Equal(decimal.NewFromInt(50)))

	d.MonthlyPayment = decimal.NewFromInt(75)
	assert.True(t, d.Payment().Equal(decimal.NewFromInt(75)))
}

func TestDebtRecommendations(t *testing.T) {
	// High DTI triggers consolidation and avalanche recommendations.
	analysis := AnalyzeDebts(testDebts(), decimal.NewFromInt(2000))

	types := make(map[string]bool)
	for _, rec := range analysis.Recommendations {
		types[rec.Type] = true
	}
	assert.True(t, types["debt_consolidation"])
	assert.True(t, types["avalanche_strategy"])
	assert.True(t, types["high_interest_focus"])
}
