package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// Milestone is a percentage-of-goal checkpoint with a projected date.
type Milestone struct {
	Percentage          int             `json:"percentage"`
	Amount              decimal.Decimal `json:"amount"`
	ExpectedDate        string          `json:"expectedDate"`
	CelebrationMessage  string          `json:"celebrationMessage"`
	DaysFromStart       int             `json:"daysFromStart"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	RemainingPercentage int             `json:"remainingPercentage"`
}

// MilestoneMetadata describes the goal the milestones were derived from.
type MilestoneMetadata struct {
	DreamAmount        decimal.Decimal `json:"dreamAmount"`
	StartDate          string          `json:"startDate"`
	TargetDate         string          `json:"targetDate"`
	TotalDays          int             `json:"totalDays"`
	AverageDailyAmount decimal.Decimal `json:"averageDailyAmount"`
	GeneratedOn        string          `json:"generatedOn"`
}

// MilestoneSet is the full checkpoint schedule for one goal.
type MilestoneSet struct {
	Milestones []Milestone       `json:"milestones"`
	Metadata   MilestoneMetadata `json:"metadata"`
}

var milestoneCheckpoints = []struct {
	percentage int
	message    string
}{
	{10, "First milestone! You're officially on your way!"},
	{25, "Quarter of the way there! Your discipline is paying off!"},
	{50, "Halfway point achieved! You're crushing this goal!"},
	{75, "Three quarters complete! The finish line is in sight!"},
	{90, "Almost there! Just a final push to make your dream reality!"},
}

// CalculateMilestones divides a goal into the 10/25/50/75/90% checkpoints
// with dates placed proportionally along the start-to-target timeline.
// Checkpoints are monotonic in both amount and date by construction.
func CalculateMilestones(dreamAmount decimal.Decimal, startDate, targetDate time.Time) (*MilestoneSet, error) {
	if !dreamAmount.IsPositive() {
		return nil, &InvalidGoalError{Field: "dreamAmount", Message: "must be positive"}
	}
	if !targetDate.After(startDate) {
		return nil, &InvalidGoalError{Field: "targetDate", Message: "must be after start date"}
	}

	totalDays := DaysBetween(startDate, targetDate)

	milestones := make([]Milestone, 0, len(milestoneCheckpoints))
	for _, cp := range milestoneCheckpoints {
		pct := decimal.NewFromInt(int64(cp.percentage))
		amount := dreamAmount.Mul(pct).Div(hundred).Round(2)
		daysToMilestone := totalDays * cp.percentage / 100
		milestones = append(milestones, Milestone{
			Percentage:          cp.percentage,
			Amount:              amount,
			ExpectedDate:        domain.FormatDate(startDate.AddDate(0, 0, daysToMilestone)),
			CelebrationMessage:  cp.message,
			DaysFromStart:       daysToMilestone,
			RemainingAmount:     dreamAmount.Sub(amount).Round(2),
			RemainingPercentage: 100 - cp.percentage,
		})
	}

	return &MilestoneSet{
		Milestones: milestones,
		Metadata: MilestoneMetadata{
			DreamAmount:        dreamAmount,
			StartDate:          domain.FormatDate(startDate),
			TargetDate:         domain.FormatDate(targetDate),
			TotalDays:          totalDays,
			AverageDailyAmount: dreamAmount.Div(decimal.NewFromInt(int64(totalDays))).Round(2),
			GeneratedOn:        domain.FormatDate(startDate),
		},
	}, nil
}

// ProgressToNext describes how far along the saver is toward the next
// uncompleted milestone.
type ProgressToNext struct {
	Percentage   decimal.Decimal `json:"percentage"`
	AmountNeeded decimal.Decimal `json:"amountNeeded"`
}

// MilestoneProgress partitions a milestone schedule against an actual
// saved amount.
type MilestoneProgress struct {
	Completed            []Milestone     `json:"completed"`
	Remaining            []Milestone     `json:"remaining"`
	NextMilestone        *Milestone      `json:"nextMilestone,omitempty"`
	ProgressToNext       *ProgressToNext `json:"progressToNext,omitempty"`
	CompletionPercentage int             `json:"completionPercentage"`
	TotalMilestones      int             `json:"totalMilestones"`
	CompletedCount       int             `json:"completedCount"`
}

// CheckMilestoneProgress splits milestones into completed and remaining
// for the given saved amount. Progress toward the next milestone is the
// fraction of the gap between the last completed amount and the next
// milestone amount, clamped to [0, 100].
func CheckMilestoneProgress(set *MilestoneSet, currentAmount decimal.Decimal) MilestoneProgress {
	var completed, remaining []Milestone
	for _, m := range set.Milestones {
		if currentAmount.GreaterThanOrEqual(m.Amount) {
			completed = append(completed, m)
		} else {
			remaining = append(remaining, m)
		}
	}

	progress := MilestoneProgress{
		Completed:       completed,
		Remaining:       remaining,
		TotalMilestones: len(set.Milestones),
		CompletedCount:  len(completed),
	}
	if len(completed) > 0 {
		progress.CompletionPercentage = completed[len(completed)-1].Percentage
	}
	if len(remaining) == 0 {
		return progress
	}

	next := remaining[0]
	progress.NextMilestone = &next

	previousAmount := decimal.Zero
	if len(completed) > 0 {
		previousAmount = completed[len(completed)-1].Amount
	}
	totalNeeded := next.Amount.Sub(previousAmount)
	pct := decimal.Zero
	if totalNeeded.IsPositive() {
		pct = currentAmount.Sub(previousAmount).Div(totalNeeded).Mul(hundred)
	}
	progress.ProgressToNext = &ProgressToNext{
		Percentage:   clampDecimal(pct, decimal.Zero, hundred).Round(2),
		AmountNeeded: next.Amount.Sub(currentAmount).Round(2),
	}
	return progress
}
