package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMilestonesCheckpoints(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, 1000)

	set, err := CalculateMilestones(decimal.NewFromInt(50000), start, target)
	require.NoError(t, err)
	require.Len(t, set.Milestones, 5)

	expected := []struct {
		pct    int
		amount int64
		days   int
	}{
		{10, 5000, 100},
		{25, 12500, 250},
		{50, 25000, 500},
		{75, 37500, 750},
		{90, 45000, 900},
	}
	for i, want := range expected {
		m := set.Milestones[i]
		assert.Equal(t, want.pct, m.Percentage)
		assert.True(t, m.Amount.Equal(decimal.NewFromInt(want.amount)), "amount at %d%%", want.pct)
		assert.Equal(t, want.days, m.DaysFromStart)
		assert.Equal(t, 100-want.pct, m.RemainingPercentage)
		assert.True(t, m.RemainingAmount.Equal(decimal.NewFromInt(50000-want.amount)))
	}
}

func TestCalculateMilestonesMonotonic(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(2, 7, 11)

	set, err := CalculateMilestones(decimal.NewFromFloat(33333.33), start, target)
	require.NoError(t, err)

	for i := 1; i < len(set.Milestones); i++ {
		prev, cur := set.Milestones[i-1], set.Milestones[i]
		assert.True(t, cur.Amount.GreaterThan(prev.Amount), "amounts must increase")
		assert.True(t, cur.DaysFromStart >= prev.DaysFromStart, "dates must not regress")
		assert.True(t, cur.ExpectedDate >= prev.ExpectedDate)
	}
}

func TestCalculateMilestonesValidation(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var goalErr *InvalidGoalError
	_, err := CalculateMilestones(decimal.Zero, start, start.AddDate(1, 0, 0))
	require.ErrorAs(t, err, &goalErr)

	_, err = CalculateMilestones(decimal.NewFromInt(1000), start, start)
	require.ErrorAs(t, err, &goalErr)
	assert.Equal(t, "targetDate", goalErr.Field)
}

func TestCheckMilestoneProgress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	set, err := CalculateMilestones(decimal.NewFromInt(10000), start, start.AddDate(0, 0, 1000))
	require.NoError(t, err)

	tests := []struct {
		name           string
		current        decimal.Decimal
		completedCount int
		completionPct  int
		nextPct        int
		progressToNext string
		hasNext        bool
	}{
		{"nothing saved", decimal.Zero, 0, 0, 10, "0", true},
		{"past first", decimal.NewFromInt(1500), 1, 10, 25, "33.33", true},
		{"exactly at half", decimal.NewFromInt(5000), 3, 50, 75, "0", true},
		{"all complete", decimal.NewFromInt(10000), 5, 90, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := CheckMilestoneProgress(set, tt.current)
			assert.Equal(t, tt.completedCount, progress.CompletedCount)
			assert.Equal(t, tt.completionPct, progress.CompletionPercentage)
			assert.Equal(t, 5, progress.TotalMilestones)
			if !tt.hasNext {
				assert.Nil(t, progress.NextMilestone)
				assert.Empty(t, progress.Remaining)
				return
			}
			require.NotNil(t, progress.NextMilestone)
			assert.Equal(t, tt.nextPct, progress.NextMilestone.Percentage)
			require.NotNil(t, progress.ProgressToNext)
			assert.Equal(t, tt.progressToNext, progress.ProgressToNext.Percentage.String())
		})
	}
}

func TestCheckMilestoneProgressClamped(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	set, err := CalculateMilestones(decimal.NewFromInt(10000), start, start.AddDate(0, 0, 100))
	require.NoError(t, err)

	progress := CheckMilestoneProgress(set, decimal.NewFromInt(999))
	require.NotNil(t, progress.ProgressToNext)
	pct := progress.ProgressToNext.Percentage
	assert.True(t, pct.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, pct.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.True(t, progress.ProgressToNext.AmountNeeded.Equal(decimal.NewFromInt(1)))
}
