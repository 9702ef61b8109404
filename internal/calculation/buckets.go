package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// BucketStrategy selects a risk profile for the fund allocator.
type BucketStrategy string

const (
	StrategyConservative BucketStrategy = "conservative"
	StrategyBalanced     BucketStrategy = "balanced"
	StrategyAggressive   BucketStrategy = "aggressive"
)

// BucketStrategyConfig tunes how the allocator weighs the three buckets.
type BucketStrategyConfig struct {
	FoundationWeight    decimal.Decimal `json:"foundationWeight"`
	DreamWeight         decimal.Decimal `json:"dreamWeight"`
	LifeWeight          decimal.Decimal `json:"lifeWeight"`
	RiskMultiplier      decimal.Decimal `json:"riskMultiplier"`
	EmergencyFundMonths int             `json:"emergencyFundMonths"`
	MaxDreamAllocation  decimal.Decimal `json:"maxDreamAllocation"`
}

// StrategyConfig returns the configuration for a strategy, falling back
// to balanced for unknown names.
func StrategyConfig(strategy BucketStrategy) BucketStrategyConfig {
	switch strategy {
	case StrategyConservative:
		return BucketStrategyConfig{
			FoundationWeight:    decimal.NewFromFloat(0.6),
			DreamWeight:         decimal.NewFromFloat(0.25),
			LifeWeight:          decimal.NewFromFloat(0.15),
			RiskMultiplier:      decimal.NewFromFloat(0.8),
			EmergencyFundMonths: 6,
			MaxDreamAllocation:  decimal.NewFromFloat(0.3),
		}
	case StrategyAggressive:
		return BucketStrategyConfig{
			FoundationWeight:    decimal.NewFromFloat(0.4),
			DreamWeight:         decimal.NewFromFloat(0.45),
			LifeWeight:          decimal.NewFromFloat(0.15),
			RiskMultiplier:      decimal.NewFromFloat(1.2),
			EmergencyFundMonths: 3,
			MaxDreamAllocation:  decimal.NewFromFloat(0.5),
		}
	default:
		return BucketStrategyConfig{
			FoundationWeight:    decimal.NewFromFloat(0.5),
			DreamWeight:         decimal.NewFromFloat(0.35),
			LifeWeight:          decimal.NewFromFloat(0.15),
			RiskMultiplier:      decimal.NewFromInt(1),
			EmergencyFundMonths: 4,
			MaxDreamAllocation:  decimal.NewFromFloat(0.4),
		}
	}
}

var (
	bucketFloor        = decimal.NewFromInt(5)
	minFoundationLower = decimal.NewFromInt(25)
	minFoundationUpper = decimal.NewFromInt(90)
	defaultMinFoundPct = decimal.NewFromInt(40)
	sumTolerance       = decimal.NewFromFloat(0.01)
	maxTimelineMonths  = 600
	NeverAtCurrentRate = "Never at current rate"
)

// MinFoundationPct derives the foundation bucket's floor from the
// required monthly retirement savings as a share of disposable income,
// clamped to [25, 90]. Falls back to 40 when disposable income is not
// positive.
func MinFoundationPct(requiredMonthlySavings, disposableIncome decimal.Decimal) decimal.Decimal {
	if !disposableIncome.IsPositive() {
		return defaultMinFoundPct
	}
	pct := requiredMonthlySavings.Div(disposableIncome).Mul(hundred)
	return clampDecimal(pct, minFoundationLower, minFoundationUpper).Round(0)
}

// bucketFloorFor returns the floor percentage for the named bucket.
func bucketFloorFor(name domain.BucketName, minFoundation decimal.Decimal) decimal.Decimal {
	if name == domain.BucketFoundation {
		return minFoundation
	}
	return bucketFloor
}

// BucketAllocator rebalances and allocates the three-bucket split.
type BucketAllocator struct {
	logger Logger
}

func NewBucketAllocator(logger Logger) *BucketAllocator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &BucketAllocator{logger: logger}
}

// Recompute applies a single-bucket change and redistributes the
// difference across the other two buckets in proportion to their current
// share. Every bucket is held at or above its floor, and the result is
// normalized so the parts sum to 100.
func (ba *BucketAllocator) Recompute(alloc domain.BucketAllocation, changed domain.BucketName, newValue, minFoundationPct decimal.Decimal) domain.BucketAllocation {
	others := otherBuckets(changed)

	// The changed bucket cannot exceed what the other buckets' floors
	// leave room for.
	maxValue := hundred.
		Sub(bucketFloorFor(others[0], minFoundationPct)).
		Sub(bucketFloorFor(others[1], minFoundationPct))
	newValue = clampDecimal(newValue, bucketFloorFor(changed, minFoundationPct), maxValue)

	difference := newValue.Sub(alloc.Get(changed))
	result := alloc.With(changed, newValue)

	otherTotal := alloc.Get(others[0]).Add(alloc.Get(others[1]))
	for _, name := range others {
		var share decimal.Decimal
		if otherTotal.IsPositive() {
			share = alloc.Get(name).Div(otherTotal)
		} else {
			share = decimal.NewFromFloat(0.5)
		}
		adjusted := alloc.Get(name).Sub(difference.Mul(share))
		floor := bucketFloorFor(name, minFoundationPct)
		if adjusted.LessThan(floor) {
			adjusted = floor
		}
		result = result.With(name, adjusted)
	}

	return ba.normalize(result, minFoundationPct)
}

// RaiseFoundationFloor forces the foundation bucket up to a new minimum,
// taking the deficit equally from dream and life.
func (ba *BucketAllocator) RaiseFoundationFloor(alloc domain.BucketAllocation, minFoundationPct decimal.Decimal) domain.BucketAllocation {
	if alloc.Foundation.GreaterThanOrEqual(minFoundationPct) {
		return ba.normalize(alloc, minFoundationPct)
	}
	deficit := minFoundationPct.Sub(alloc.Foundation)
	half := deficit.Div(decimal.NewFromInt(2))

	alloc.Foundation = minFoundationPct
	alloc.Dream = decimal.Max(bucketFloor, alloc.Dream.Sub(half))
	alloc.Life = decimal.Max(bucketFloor, alloc.Life.Sub(half))

	ba.logger.Debugf("foundation floor raised to %s%%", minFoundationPct)
	return ba.normalize(alloc, minFoundationPct)
}

// normalize scales the allocation to sum to 100 and re-clamps floors.
func (ba *BucketAllocator) normalize(alloc domain.BucketAllocation, minFoundationPct decimal.Decimal) domain.BucketAllocation {
	total := alloc.Sum()
	if total.Sub(hundred).Abs().LessThanOrEqual(sumTolerance) || !total.IsPositive() {
		return roundAllocation(alloc)
	}
	scale := hundred.Div(total)
	alloc.Foundation = decimal.Max(minFoundationPct, alloc.Foundation.Mul(scale))
	alloc.Dream = decimal.Max(bucketFloor, alloc.Dream.Mul(scale))
	alloc.Life = decimal.Max(bucketFloor, alloc.Life.Mul(scale))
	return roundAllocation(alloc)
}

func roundAllocation(alloc domain.BucketAllocation) domain.BucketAllocation {
	alloc.Foundation = alloc.Foundation.Round(2)
	alloc.Dream = alloc.Dream.Round(2)
	alloc.Life = alloc.Life.Round(2)
	return alloc
}

func otherBuckets(changed domain.BucketName) [2]domain.BucketName {
	switch changed {
	case domain.BucketFoundation:
		return [2]domain.BucketName{domain.BucketDream, domain.BucketLife}
	case domain.BucketDream:
		return [2]domain.BucketName{domain.BucketFoundation, domain.BucketLife}
	default:
		return [2]domain.BucketName{domain.BucketFoundation, domain.BucketDream}
	}
}

// DreamTimeline describes how long the dream bucket takes to fund the
// goal at a given monthly contribution.
type DreamTimeline struct {
	Months      int    `json:"months"`
	Achievable  bool   `json:"achievable"`
	Description string `json:"description"`
}

// DreamBucketTimeline projects months until the remaining dream amount
// is covered by the monthly contribution. Contributions at or below
// zero, or timelines past fifty years, report as never achievable.
func DreamBucketTimeline(remaining, monthlyContribution decimal.Decimal) DreamTimeline {
	if !remaining.IsPositive() {
		return DreamTimeline{Months: 0, Achievable: true, Description: "Already funded"}
	}
	if !monthlyContribution.IsPositive() {
		return DreamTimeline{Achievable: false, Description: NeverAtCurrentRate}
	}
	months := int(remaining.Div(monthlyContribution).Ceil().IntPart())
	if months > maxTimelineMonths {
		return DreamTimeline{Achievable: false, Description: NeverAtCurrentRate}
	}
	years := months / 12
	rem := months % 12
	desc := fmt.Sprintf("%d months", months)
	if years > 0 {
		desc = fmt.Sprintf("%d years, %d months", years, rem)
	}
	return DreamTimeline{Months: months, Achievable: true, Description: desc}
}

// AllocationWarning flags a risk in a computed allocation.
type AllocationWarning struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// AllocationInput carries everything the fund allocator needs.
type AllocationInput struct {
	AvailableMonthly decimal.Decimal
	Profile          domain.FinancialProfile
	Dream            *domain.Dream
	YearsToGoal      int
	RetirementAge    int
}

// AllocationResult is the dollar-denominated outcome of AllocateFunds.
type AllocationResult struct {
	Foundation        decimal.Decimal         `json:"foundation"`
	Dream             decimal.Decimal         `json:"dream"`
	Life              decimal.Decimal         `json:"life"`
	Total             decimal.Decimal         `json:"total"`
	Strategy          BucketStrategy          `json:"strategy"`
	Percentages       domain.BucketAllocation `json:"percentages"`
	MinimumFoundation decimal.Decimal         `json:"minimumFoundation"`
	Warnings          []AllocationWarning     `json:"warnings,omitempty"`
	Recommendations   []Recommendation        `json:"recommendations,omitempty"`
	DreamTimeline     *DreamTimeline          `json:"dreamTimeline,omitempty"`
}

// AllocateFunds distributes available monthly funds across the three
// buckets for the given strategy. The foundation bucket is sized first
// from the retirement minimum, the dream bucket from the goal timeline,
// and the life bucket from the emergency fund gap, then strategy
// weights reshape the split.
func (ba *BucketAllocator) AllocateFunds(input AllocationInput, strategy BucketStrategy) (*AllocationResult, error) {
	if !input.AvailableMonthly.IsPositive() {
		return nil, &PlanError{Operation: "allocate funds", Message: "no funds available for allocation"}
	}
	config := StrategyConfig(strategy)
	available := input.AvailableMonthly

	minimumFoundation := ba.minimumFoundationAmount(input)
	foundation := decimal.Min(minimumFoundation, available.Mul(decimal.NewFromFloat(0.8)))

	remaining := decimal.Max(decimal.Zero, available.Sub(foundation))
	dream := ba.dreamAmount(input, remaining)

	remaining = decimal.Max(decimal.Zero, remaining.Sub(dream))
	life := ba.lifeAmount(input, remaining, strategy, config)

	foundation, dream, life = applyStrategyWeights(foundation, dream, life, available, config)

	// Foundation never drops below 80% of its computed minimum.
	safeFoundation := minimumFoundation.Mul(decimal.NewFromFloat(0.8))
	if foundation.LessThan(safeFoundation) {
		shortfall := safeFoundation.Sub(foundation)
		foundation = safeFoundation
		totalOthers := dream.Add(life)
		if totalOthers.IsPositive() {
			factor := decimal.Max(decimal.Zero, totalOthers.Sub(shortfall).Div(totalOthers))
			dream = dream.Mul(factor)
			life = life.Mul(factor)
		}
	}

	total := foundation.Add(dream).Add(life)
	if total.GreaterThan(available) {
		factor := available.Div(total)
		foundation = foundation.Mul(factor)
		dream = dream.Mul(factor)
		life = life.Mul(factor)
	}

	foundation = foundation.Round(2)
	dream = dream.Round(2)
	life = life.Round(2)

	result := &AllocationResult{
		Foundation:        foundation,
		Dream:             dream,
		Life:              life,
		Total:             foundation.Add(dream).Add(life),
		Strategy:          strategy,
		MinimumFoundation: minimumFoundation.Round(2),
		Percentages: domain.BucketAllocation{
			Foundation: safeRatio(foundation, available).Round(0),
			Dream:      safeRatio(dream, available).Round(0),
			Life:       safeRatio(life, available).Round(0),
		},
	}
	ba.annotate(result, input, strategy, config)
	return result, nil
}

// CompareStrategies runs AllocateFunds under all three strategies.
func (ba *BucketAllocator) CompareStrategies(input AllocationInput) (map[BucketStrategy]*AllocationResult, error) {
	comparison := make(map[BucketStrategy]*AllocationResult, 3)
	for _, strategy := range []BucketStrategy{StrategyConservative, StrategyBalanced, StrategyAggressive} {
		result, err := ba.AllocateFunds(input, strategy)
		if err != nil {
			return nil, err
		}
		comparison[strategy] = result
	}
	return comparison, nil
}

// minimumFoundationAmount is the higher of 15% of gross income and the
// monthly payment needed to reach $1M by the retirement age.
func (ba *BucketAllocator) minimumFoundationAmount(input AllocationInput) decimal.Decimal {
	fifteenPercent := input.Profile.MonthlyIncome.Mul(decimal.NewFromFloat(0.15))

	age := input.Profile.Age
	if age <= 0 {
		age = 30
	}
	retirementAge := input.RetirementAge
	if retirementAge <= 0 {
		retirementAge = 65
	}
	years := retirementAge - age
	if years < 1 {
		years = 1
	}
	months := years * 12

	monthlyReturn := DefaultReturn.Div(decimal.NewFromInt(12))
	growthFactor := decimal.NewFromInt(1).Add(monthlyReturn).Pow(decimal.NewFromInt(int64(months)))
	futureCurrent := input.Profile.CurrentAssets.Mul(growthFactor)

	million := decimal.NewFromInt(1000000)
	additionalNeeded := decimal.Max(decimal.Zero, million.Sub(futureCurrent))

	monthlyForMillion := decimal.Zero
	if additionalNeeded.IsPositive() {
		monthlyForMillion = AnnuityPayment(additionalNeeded, DefaultReturn, months)
	}
	return decimal.Max(fifteenPercent, monthlyForMillion)
}

func (ba *BucketAllocator) dreamAmount(input AllocationInput, remaining decimal.Decimal) decimal.Decimal {
	if input.Dream == nil || input.YearsToGoal <= 0 {
		return remaining.Mul(decimal.NewFromFloat(0.3))
	}
	months := decimal.NewFromInt(int64(input.YearsToGoal * 12))
	monthlyNeeded := input.Dream.Remaining().Div(months)
	return decimal.Min(monthlyNeeded, remaining)
}

func (ba *BucketAllocator) lifeAmount(input AllocationInput, remaining decimal.Decimal, strategy BucketStrategy, config BucketStrategyConfig) decimal.Decimal {
	requiredFund := input.Profile.MonthlyExpenses.Mul(decimal.NewFromInt(int64(config.EmergencyFundMonths)))
	gap := decimal.Max(decimal.Zero, requiredFund.Sub(input.Profile.EmergencyFund))

	tenPercent := remaining.Mul(decimal.NewFromFloat(0.1))
	if gap.IsPositive() {
		monthly := decimal.Min(gap.Div(decimal.NewFromInt(6)), remaining.Mul(decimal.NewFromFloat(0.5)))
		return decimal.Max(monthly, tenPercent)
	}

	multiplier := decimal.NewFromInt(1)
	switch strategy {
	case StrategyConservative:
		multiplier = decimal.NewFromFloat(1.5)
	case StrategyAggressive:
		multiplier = decimal.NewFromFloat(0.8)
	}
	recommended := decimal.Max(tenPercent.Mul(multiplier), tenPercent)
	return decimal.Min(recommended, remaining.Mul(decimal.NewFromFloat(0.2)))
}

func applyStrategyWeights(foundation, dream, life, available decimal.Decimal, config BucketStrategyConfig) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	totalBase := foundation.Add(dream).Add(life)
	if totalBase.GreaterThan(available) {
		factor := available.Div(totalBase)
		foundation = foundation.Mul(factor)
		dream = dream.Mul(factor)
		life = life.Mul(factor)
	}

	weightedTotal := foundation.Mul(config.FoundationWeight).
		Add(dream.Mul(config.DreamWeight)).
		Add(life.Mul(config.LifeWeight))
	if weightedTotal.IsPositive() {
		adjustment := available.Mul(config.RiskMultiplier).Div(weightedTotal)
		foundation = foundation.Mul(config.FoundationWeight.Mul(adjustment))
		dream = dream.Mul(config.DreamWeight.Mul(adjustment))
		life = life.Mul(config.LifeWeight.Mul(adjustment))
	}

	maxDream := available.Mul(config.MaxDreamAllocation)
	if dream.GreaterThan(maxDream) {
		excess := dream.Sub(maxDream)
		dream = maxDream
		foundation = foundation.Add(excess.Mul(decimal.NewFromFloat(0.7)))
		life = life.Add(excess.Mul(decimal.NewFromFloat(0.3)))
	}
	return foundation, dream, life
}

func (ba *BucketAllocator) annotate(result *AllocationResult, input AllocationInput, strategy BucketStrategy, config BucketStrategyConfig) {
	if result.Foundation.LessThan(result.MinimumFoundation) {
		result.Warnings = append(result.Warnings, AllocationWarning{
			Type:     "foundation_below_minimum",
			Message:  fmt.Sprintf("Foundation allocation is below the recommended minimum of $%s/month", result.MinimumFoundation.Round(0)),
			Severity: "high",
		})
	}
	if result.Percentages.Foundation.LessThan(decimal.NewFromInt(40)) {
		result.Recommendations = append(result.Recommendations, Recommendation{
			Category: "buckets",
			Type:     "increase_foundation",
			Priority: PriorityMedium,
			Title:    "Increase Foundation Allocation",
			Message:  "Consider increasing Foundation allocation for better long-term security",
		})
	}

	if input.Dream != nil {
		timeline := DreamBucketTimeline(input.Dream.Remaining(), result.Dream)
		result.DreamTimeline = &timeline
		if input.YearsToGoal > 0 {
			months := decimal.NewFromInt(int64(input.YearsToGoal * 12))
			requiredMonthly := input.Dream.Remaining().Div(months)
			if result.Dream.LessThan(requiredMonthly.Mul(decimal.NewFromFloat(0.8))) {
				result.Warnings = append(result.Warnings, AllocationWarning{
					Type:     "dream_underfunded",
					Message:  fmt.Sprintf("Current Dream allocation may not meet the goal timeline. Consider allocating $%s/month", requiredMonthly.Round(0)),
					Severity: "medium",
				})
			}
		}
	}

	if input.Profile.MonthlyExpenses.IsPositive() {
		fundMonths := input.Profile.EmergencyFund.Div(input.Profile.MonthlyExpenses)
		if fundMonths.LessThan(decimal.NewFromInt(3)) {
			result.Recommendations = append(result.Recommendations, Recommendation{
				Category: "buckets",
				Type:     "build_emergency_fund",
				Priority: PriorityHigh,
				Title:    "Build Emergency Fund",
				Message:  "Priority: build the emergency fund to at least 3 months of expenses",
			})
		}
	}
}
