package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/domain"
)

func TestMinFoundationPct(t *testing.T) {
	tests := []struct {
		name       string
		required   int64
		disposable int64
		expected   int64
	}{
		{"in range", 2000, 4000, 50},
		{"clamped to lower bound", 500, 4000, 25},
		{"clamped to upper bound", 10000, 4000, 90},
		{"exactly at lower bound", 1000, 4000, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := MinFoundationPct(decimal.NewFromInt(tt.required), decimal.NewFromInt(tt.disposable))
			assert.True(t, pct.Equal(decimal.NewFromInt(tt.expected)), "got %s", pct)
		})
	}

	// Falls back to 40 when disposable income is not positive.
	assert.True(t, MinFoundationPct(decimal.NewFromInt(2000), decimal.Zero).Equal(decimal.NewFromInt(40)))
}

func TestRecomputeDragRedistribution(t *testing.T) {
	ba := NewBucketAllocator(nil)
	minFoundation := decimal.NewFromInt(25)

	// Dragging foundation 60 -> 70 takes the difference from dream and
	// life in proportion to their shares.
	result := ba.Recompute(domain.DefaultBucketAllocation(), domain.BucketFoundation,
		decimal.NewFromInt(70), minFoundation)

	assert.True(t, result.Foundation.Equal(decimal.NewFromInt(70)), "got %s", result.Foundation)
	assert.True(t, result.Dream.Equal(decimal.NewFromFloat(18.75)), "got %s", result.Dream)
	assert.True(t, result.Life.Equal(decimal.NewFromFloat(11.25)), "got %s", result.Life)
	assert.True(t, result.Sum().Equal(decimal.NewFromInt(100)))
}

func TestRecomputeSumsToHundred(t *testing.T) {
	ba := NewBucketAllocator(nil)
	minFoundation := decimal.NewFromInt(25)
	tolerance := decimal.NewFromFloat(0.1)

	changes := []struct {
		bucket domain.BucketName
		value  int64
	}{
		{domain.BucketFoundation, 30},
		{domain.BucketFoundation, 85},
		{domain.BucketDream, 10},
		{domain.BucketDream, 40},
		{domain.BucketLife, 30},
		{domain.BucketLife, 5},
	}
	for _, c := range changes {
		result := ba.Recompute(domain.DefaultBucketAllocation(), c.bucket,
			decimal.NewFromInt(c.value), minFoundation)
		diff := result.Sum().Sub(decimal.NewFromInt(100)).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"%s=%d: sum %s", c.bucket, c.value, result.Sum())
	}
}

func TestRecomputeEnforcesFloors(t *testing.T) {
	ba := NewBucketAllocator(nil)
	minFoundation := decimal.NewFromInt(25)

	// Pushing dream far up squeezes foundation and life down to their
	// floors but never below.
	result := ba.Recompute(domain.DefaultBucketAllocation(), domain.BucketDream,
		decimal.NewFromInt(95), minFoundation)

	assert.True(t, result.Foundation.GreaterThanOrEqual(minFoundation),
		"foundation %s below floor", result.Foundation)
	assert.True(t, result.Dream.GreaterThanOrEqual(decimal.NewFromInt(5)))
	assert.True(t, result.Life.GreaterThanOrEqual(decimal.NewFromInt(5)),
		"life %s below floor", result.Life)

	// The changed bucket is capped by what the other floors leave room for.
	assert.True(t, result.Dream.LessThanOrEqual(decimal.NewFromInt(70)))
}

func TestRaiseFoundationFloor(t *testing.T) {
	ba := NewBucketAllocator(nil)

	alloc := domain.BucketAllocation{
		Foundation: decimal.NewFromInt(40),
		Dream:      decimal.NewFromInt(35),
		Life:       decimal.NewFromInt(25),
	}
	result := ba.RaiseFoundationFloor(alloc, decimal.NewFromInt(60))

	// Deficit of 20 is split evenly between dream and life.
	assert.True(t, result.Foundation.Equal(decimal.NewFromInt(60)), "got %s", result.Foundation)
	assert.True(t, result.Dream.Equal(decimal.NewFromInt(25)), "got %s", result.Dream)
	assert.True(t, result.Life.Equal(decimal.NewFromInt(15)), "got %s", result.Life)
}

func TestRaiseFoundationFloorNoChange(t *testing.T) {
	ba := NewBucketAllocator(nil)

	result := ba.RaiseFoundationFloor(domain.DefaultBucketAllocation(), decimal.NewFromInt(50))
	assert.True(t, result.Foundation.Equal(decimal.NewFromInt(60)))
	assert.True(t, result.Sum().Equal(decimal.NewFromInt(100)))
}

func TestDreamBucketTimeline(t *testing.T) {
	tests := []struct {
		name        string
		remaining   int64
		monthly     int64
		months      int
		achievable  bool
		description string
	}{
		{"already funded", 0, 500, 0, true, "Already funded"},
		{"under a year", 5000, 1000, 5, true, "5 months"},
		{"over a year", 30000, 1000, 30, true, "2 years, 6 months"},
		{"no contribution", 5000, 0, 0, false, NeverAtCurrentRate},
		{"past fifty years", 100000, 100, 0, false, NeverAtCurrentRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline := DreamBucketTimeline(decimal.NewFromInt(tt.remaining), decimal.NewFromInt(tt.monthly))
			assert.Equal(t, tt.achievable, timeline.Achievable)
			assert.Equal(t, tt.months, timeline.Months)
			assert.Equal(t, tt.description, timeline.Description)
		})
	}
}

func allocationTestInput() AllocationInput {
	dream := &domain.Dream{
		Name:         "Lake cabin",
		TargetAmount: decimal.NewFromInt(36000),
		TargetDate:   time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return AllocationInput{
		AvailableMonthly: decimal.NewFromInt(2000),
		Profile: domain.FinancialProfile{
			Age:             30,
			MonthlyIncome:   decimal.NewFromInt(6000),
			MonthlyExpenses: decimal.NewFromInt(4000),
			CurrentAssets:   decimal.NewFromInt(10000),
			EmergencyFund:   decimal.NewFromInt(24000),
		},
		Dream:       dream,
		YearsToGoal: 3,
	}
}

func TestAllocateFunds(t *testing.T) {
	ba := NewBucketAllocator(nil)
	input := allocationTestInput()

	result, err := ba.AllocateFunds(input, StrategyBalanced)
	require.NoError(t, err)

	assert.True(t, result.Foundation.IsPositive())
	assert.True(t, result.Dream.IsPositive())
	assert.True(t, result.Life.IsPositive())
	assert.True(t, result.Total.LessThanOrEqual(input.AvailableMonthly.Add(decimal.NewFromFloat(0.05))),
		"total %s exceeds available", result.Total)

	// The dream bucket respects the strategy's cap.
	maxDream := input.AvailableMonthly.Mul(StrategyConfig(StrategyBalanced).MaxDreamAllocation)
	assert.True(t, result.Dream.LessThanOrEqual(maxDream.Add(decimal.NewFromFloat(0.01))),
		"dream %s exceeds cap %s", result.Dream, maxDream)

	// Foundation never falls below 80% of its computed minimum.
	safeMin := result.MinimumFoundation.Mul(decimal.NewFromFloat(0.8))
	assert.True(t, result.Foundation.GreaterThanOrEqual(safeMin.Sub(decimal.NewFromFloat(0.01))))

	require.NotNil(t, result.DreamTimeline)
}

func TestAllocateFundsNoFunds(t *testing.T) {
	ba := NewBucketAllocator(nil)
	input := allocationTestInput()
	input.AvailableMonthly = decimal.Zero

	_, err := ba.AllocateFunds(input, StrategyBalanced)
	var planErr *PlanError
	require.ErrorAs(t, err, &planErr)
}

func TestCompareStrategies(t *testing.T) {
	ba := NewBucketAllocator(nil)
	input := allocationTestInput()

	comparison, err := ba.CompareStrategies(input)
	require.NoError(t, err)
	require.Len(t, comparison, 3)

	conservative := comparison[StrategyConservative]
	aggressive := comparison[StrategyAggressive]
	require.NotNil(t, conservative)
	require.NotNil(t, aggressive)

	// Aggressive funds the dream harder than conservative does.
	assert.True(t, aggressive.Dream.GreaterThan(conservative.Dream),
		"aggressive %s vs conservative %s", aggressive.Dream, conservative.Dream)
}

func TestAllocateFundsEmergencyGap(t *testing.T) {
	ba := NewBucketAllocator(nil)
	input := allocationTestInput()
	input.Profile.EmergencyFund = decimal.Zero

	result, err := ba.AllocateFunds(input, StrategyBalanced)
	require.NoError(t, err)

	types := make(map[string]bool)
	for _, rec := range result.Recommendations {
		types[rec.Type] = true
	}
	assert.True(t, types["build_emergency_fund"])
}

func TestStrategyConfigFallsBackToBalanced(t *testing.T) {
	unknown := StrategyConfig(BucketStrategy("bogus"))
	balanced := StrategyConfig(StrategyBalanced)
	assert.Equal(t, balanced, unknown)
}
