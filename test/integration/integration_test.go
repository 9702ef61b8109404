package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/calculation"
	"dreamplan/internal/config"
	"dreamplan/internal/output"
)

const examplePlan = "../testdata/example_plan.yaml"

func loadExamplePlan(t *testing.T) *config.Plan {
	t.Helper()
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(examplePlan)
	require.NoError(t, err, "Should load plan file successfully")
	require.NotNil(t, plan)
	return plan
}

// TestPlanEndToEnd runs the full pipeline: load a plan file, run every
// engine it configures, and render the combined report in each format.
func TestPlanEndToEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("configuration_loading", func(t *testing.T) {
		plan := loadExamplePlan(t)

		assert.Equal(t, 32, plan.Profile.Age)
		require.NotNil(t, plan.Dream)
		assert.Equal(t, "Coastal cottage down payment", plan.Dream.Name)
		assert.Equal(t, "2028-06-01", plan.Dream.TargetDate.Format("2006-01-02"))
		require.NotNil(t, plan.Income)
		require.NotNil(t, plan.Retirement)
		require.Len(t, plan.Debts, 2)
		assert.Equal(t, calculation.StrategyBalanced, plan.EffectiveStrategy())
	})

	t.Run("savings_strategies", func(t *testing.T) {
		plan := loadExamplePlan(t)

		calculator := calculation.NewSavingsCalculator(nil)
		set, err := calculator.CalculateStrategies(plan.Dream.Remaining(), plan.Dream.TargetDate, now)
		require.NoError(t, err)

		assert.True(t, set.Aggressive.DailyAmount.GreaterThan(set.Balanced.DailyAmount))
		assert.True(t, set.Balanced.DailyAmount.GreaterThan(set.Relaxed.DailyAmount))
		assert.True(t, set.Metadata.DreamAmount.Equal(decimal.NewFromInt(44000)))
	})

	t.Run("milestones_and_progress", func(t *testing.T) {
		plan := loadExamplePlan(t)

		set, err := calculation.CalculateMilestones(plan.Dream.TargetAmount, now, plan.Dream.TargetDate)
		require.NoError(t, err)
		require.Len(t, set.Milestones, 5)

		progress := calculation.CheckMilestoneProgress(set, plan.Dream.CurrentAmount)
		assert.Equal(t, 1, progress.CompletedCount)
		require.NotNil(t, progress.NextMilestone)
		assert.Equal(t, 25, progress.NextMilestone.Percentage)
	})

	t.Run("bucket_allocation", func(t *testing.T) {
		plan := loadExamplePlan(t)

		allocator := calculation.NewBucketAllocator(nil)
		result, err := allocator.AllocateFunds(calculation.AllocationInput{
			AvailableMonthly: plan.Profile.MonthlySavings(),
			Profile:          plan.Profile,
			Dream:            plan.Dream,
		}, plan.EffectiveStrategy())
		require.NoError(t, err)

		rounding := result.Foundation.Add(result.Dream).Add(result.Life).Sub(result.Total).Abs()
		assert.True(t, rounding.LessThan(decimal.NewFromInt(2)))
		assert.InDelta(t, 100.0, result.Percentages.Sum().InexactFloat64(), 0.5)
	})

	t.Run("retirement_sizing", func(t *testing.T) {
		plan := loadExamplePlan(t)

		calculator := calculation.NewRetirementCalculator(nil)
		result, err := calculator.CalculateTotalRetirementNeed(*plan.Retirement, now)
		require.NoError(t, err)

		assert.True(t, result.RequiredPortfolioSize.GreaterThan(result.CurrentSavings))
		assert.True(t, result.Strategies.Conservative.MonthlySavings.GreaterThan(result.Strategies.Aggressive.MonthlySavings))
	})

	t.Run("income_analysis", func(t *testing.T) {
		plan := loadExamplePlan(t)

		analyzer := calculation.NewIncomeAnalyzer(nil)
		result, err := analyzer.Analyze(*plan.Income, plan.Debts, plan.FixedExpenses, calculation.AnalysisOptions{})
		require.NoError(t, err)

		assert.True(t, result.Income.NetAnnual.LessThan(result.Income.GrossAnnual))
		assert.True(t, result.Taxes.TotalTaxes.IsPositive())
		assert.Equal(t, 2, result.Debts.DebtCount)
	})

	t.Run("someday_projection", func(t *testing.T) {
		plan := loadExamplePlan(t)

		engine := calculation.NewProjectionEngine(nil)
		result, err := engine.RunSomedayProjection(context.Background(), plan.Profile, plan.EffectiveGoals(), plan.EffectiveProjection())
		require.NoError(t, err)

		assert.Equal(t, 500, result.ProjectionData.Simulations)
		assert.True(t, result.Analysis.SuccessRate.GreaterThanOrEqual(decimal.Zero))
		assert.NotEmpty(t, result.Analysis.Percentiles)
	})

	t.Run("output_generation", func(t *testing.T) {
		plan := loadExamplePlan(t)

		calculator := calculation.NewSavingsCalculator(nil)
		strategies, err := calculator.CalculateStrategies(plan.Dream.Remaining(), plan.Dream.TargetDate, now)
		require.NoError(t, err)

		milestones, err := calculation.CalculateMilestones(plan.Dream.TargetAmount, now, plan.Dream.TargetDate)
		require.NoError(t, err)

		report := &output.PlanReport{
			GeneratedAt: now,
			Dream:       plan.Dream,
			Strategies:  strategies,
			Milestones:  milestones,
		}

		var console bytes.Buffer
		require.NoError(t, output.GenerateReport(&console, report, "console"))
		assert.Contains(t, console.String(), "Coastal cottage down payment")

		var jsonBuf bytes.Buffer
		require.NoError(t, output.GenerateReport(&jsonBuf, report, "json"))
		assert.Contains(t, jsonBuf.String(), "\"strategies\"")

		var csvBuf bytes.Buffer
		require.NoError(t, output.GenerateReport(&csvBuf, report, "csv"))
		assert.True(t, strings.HasPrefix(csvBuf.String(), "Strategy,"))

		var pdfBuf bytes.Buffer
		require.NoError(t, output.GenerateReport(&pdfBuf, report, "pdf"))
		assert.True(t, strings.HasPrefix(pdfBuf.String(), "%PDF"))
	})
}

// TestCrisisReprojection exercises the crisis engines against the
// example plan's profile figures.
func TestCrisisReprojection(t *testing.T) {
	plan := loadExamplePlan(t)
	engine := calculation.NewCrisisEngine(nil)

	jobLoss := engine.JobLoss(calculation.JobLossParams{
		CurrentIncome:    plan.Profile.MonthlyIncome,
		MonthlySavings:   plan.Profile.MonthlySavings(),
		HasEmergencyFund: true,
	})
	require.NotNil(t, jobLoss)
	assert.Equal(t, calculation.CrisisJobLoss, jobLoss.Type)
	assert.NotEmpty(t, jobLoss.ImmediateActions)
	assert.NotEmpty(t, jobLoss.RecoveryMilestones)

	medical := engine.MedicalEmergency(calculation.MedicalEmergencyParams{
		EmergencyCost:      decimal.NewFromInt(8000),
		HasHealthInsurance: true,
		CurrentIncome:      plan.Profile.MonthlyIncome,
	})
	require.NotNil(t, medical)
	assert.Equal(t, calculation.CrisisMedicalEmergency, medical.Type)
}
