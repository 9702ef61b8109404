package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

const validPlanYAML = `
profile:
  age: 32
  monthly_income: 6000
  monthly_expenses: 4000
  current_assets: 25000
  emergency_fund: 12000
  asset_allocation:
    stocks: 70
    bonds: 20
    cash: 10
dream:
  name: "Coastal cottage"
  target_amount: 50000
  target_date: 2028-06-01
  current_amount: 5000
income:
  gross_annual_income: 85000
  filing_status: single
  state: Colorado
  pre_tax_deductions: 5000
fixed_expenses:
  housing: 1500
  transportation: 400
  insurance: 200
  utilities: 150
debts:
  - name: Credit Card
    current_balance: 8000
    interest_rate: 22
    monthly_payment: 300
    minimum_payment: 200
retirement:
  annual_expenses: 60000
  years_until_retirement: 30
  current_age: 32
  current_savings: 50000
strategy: balanced
projection:
  simulations: 1000
  seed: 42
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileValid(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, validPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, 32, plan.Profile.Age)
	assert.True(t, plan.Profile.MonthlyIncome.Equal(decimal.NewFromInt(6000)))
	require.NotNil(t, plan.Dream)
	assert.Equal(t, "Coastal cottage", plan.Dream.Name)
	assert.Equal(t, "2028-06-01", domain.FormatDate(plan.Dream.TargetDate))
	require.NotNil(t, plan.Income)
	assert.Equal(t, domain.FilingSingle, plan.Income.FilingStatus)
	require.Len(t, plan.Debts, 1)
	assert.Equal(t, "Credit Card", plan.Debts[0].Name)
	require.NotNil(t, plan.Retirement)
	assert.Equal(t, 30, plan.Retirement.YearsUntilRetirement)
	require.NotNil(t, plan.Projection)
	assert.Equal(t, int64(42), plan.Projection.Seed)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFileBadYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(writePlanFile(t, "profile: [not a mapping"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidatePlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Plan)
		wantErr string
	}{
		{
			name:    "negative monthly income",
			mutate:  func(p *Plan) { p.Profile.MonthlyIncome = decimal.NewFromInt(-1) },
			wantErr: "monthly income cannot be negative",
		},
		{
			name: "allocation does not sum to 100",
			mutate: func(p *Plan) {
				p.Profile.Allocation = &domain.AssetAllocation{
					Stocks: decimal.NewFromInt(60),
					Bonds:  decimal.NewFromInt(20),
					Cash:   decimal.NewFromInt(10),
				}
			},
			wantErr: "asset allocation must sum to 100",
		},
		{
			name:    "dream without name",
			mutate:  func(p *Plan) { p.Dream.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "dream target amount not positive",
			mutate:  func(p *Plan) { p.Dream.TargetAmount = decimal.Zero },
			wantErr: "target amount must be positive",
		},
		{
			name:    "income filing status unknown",
			mutate:  func(p *Plan) { p.Income.FilingStatus = "common_law" },
			wantErr: "filing status",
		},
		{
			name:    "debt negative balance",
			mutate:  func(p *Plan) { p.Debts[0].CurrentBalance = decimal.NewFromInt(-500) },
			wantErr: "current balance cannot be negative",
		},
		{
			name:    "retirement expenses not positive",
			mutate:  func(p *Plan) { p.Retirement.AnnualExpenses = decimal.Zero },
			wantErr: "annual expenses must be positive",
		},
		{
			name:    "unknown strategy",
			mutate:  func(p *Plan) { p.Strategy = "yolo" },
			wantErr: "strategy must be",
		},
		{
			name:    "too many simulations",
			mutate:  func(p *Plan) { p.Projection.Simulations = 200000 },
			wantErr: "simulations must be between",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parser.LoadFromFile(writePlanFile(t, validPlanYAML))
			require.NoError(t, err)

			tt.mutate(plan)
			err = parser.ValidatePlan(plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEffectiveStrategy(t *testing.T) {
	plan := &Plan{}
	assert.Equal(t, calculation.StrategyBalanced, plan.EffectiveStrategy())

	plan.Strategy = "aggressive"
	assert.Equal(t, calculation.StrategyAggressive, plan.EffectiveStrategy())
}

func TestEffectiveProjection(t *testing.T) {
	plan := &Plan{}
	opts := plan.EffectiveProjection()
	assert.Equal(t, 10000, opts.Simulations)
	assert.True(t, opts.IncludeLifeEvents)

	plan.Projection = &calculation.ProjectionOptions{Seed: 7}
	opts = plan.EffectiveProjection()
	assert.Equal(t, 10000, opts.Simulations)
	assert.Equal(t, int64(7), opts.Seed)

	plan.Projection.Simulations = 500
	assert.Equal(t, 500, plan.EffectiveProjection().Simulations)
}

func TestEffectiveGoals(t *testing.T) {
	plan := &Plan{}
	assert.True(t, plan.EffectiveGoals().TotalRequired.IsZero())

	plan.Dream = &domain.Dream{TargetAmount: decimal.NewFromInt(50000)}
	assert.True(t, plan.EffectiveGoals().TotalRequired.Equal(decimal.NewFromInt(50000)))

	plan.Goals = &domain.Goals{TotalRequired: decimal.NewFromInt(900000), YearsToSomeday: 20}
	goals := plan.EffectiveGoals()
	assert.True(t, goals.TotalRequired.Equal(decimal.NewFromInt(900000)))
	assert.Equal(t, 20, goals.YearsToSomeday)
}
