package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// CrisisType identifies one of the supported crisis scenarios.
type CrisisType string

const (
	CrisisJobLoss            CrisisType = "job-loss"
	CrisisMedicalEmergency   CrisisType = "medical-emergency"
	CrisisRelationshipChange CrisisType = "relationship-change"
)

// ParseCrisisType validates a crisis discriminator.
func ParseCrisisType(s string) (CrisisType, error) {
	switch CrisisType(s) {
	case CrisisJobLoss, CrisisMedicalEmergency, CrisisRelationshipChange:
		return CrisisType(s), nil
	}
	return "", &UnknownCrisisTypeError{Type: s}
}

// CrisisTypeInfo describes one crisis scenario for listings.
type CrisisTypeInfo struct {
	ID          CrisisType `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
}

// AvailableCrisisTypes lists the supported crisis scenarios.
func AvailableCrisisTypes() []CrisisTypeInfo {
	return []CrisisTypeInfo{
		{
			ID:          CrisisJobLoss,
			Title:       "Job Loss",
			Description: "Unemployment with strategies to maintain savings through benefits and gig work",
			Severity:    "high",
		},
		{
			ID:          CrisisMedicalEmergency,
			Title:       "Medical Emergency",
			Description: "Health crisis management using the Life bucket while protecting Foundation",
			Severity:    "high",
		},
		{
			ID:          CrisisRelationshipChange,
			Title:       "Relationship Change",
			Description: "Divorce or separation with financial recalculation for independence",
			Severity:    "medium",
		},
	}
}

// AdjustedBuckets is the crisis-mode bucket split. This redistribution
// is deliberately more protective than the allocator's drag rebalance:
// foundation is floored at 70% of its former share, dream takes the
// largest cut, life a moderate one.
type AdjustedBuckets struct {
	Allocation  domain.BucketAllocation `json:"allocation"`
	IncomeRatio decimal.Decimal         `json:"incomeRatio"`
}

// AdjustBuckets recomputes the bucket split for a drop (or rise) in
// income during a crisis.
func AdjustBuckets(originalIncome, newIncome decimal.Decimal, original domain.BucketAllocation) AdjustedBuckets {
	incomeRatio := decimal.NewFromInt(1)
	if originalIncome.IsPositive() {
		incomeRatio = newIncome.Div(originalIncome)
	}
	foundationProtection := decimal.Max(decimal.NewFromFloat(0.7), incomeRatio)

	return AdjustedBuckets{
		Allocation: domain.BucketAllocation{
			Foundation: original.Foundation.Mul(foundationProtection).Round(0),
			Dream:      original.Dream.Mul(incomeRatio).Mul(decimal.NewFromFloat(0.6)).Round(0),
			Life:       original.Life.Mul(incomeRatio).Mul(decimal.NewFromFloat(0.8)).Round(0),
		},
		IncomeRatio: incomeRatio,
	}
}

// MonthlyAmounts converts the adjusted split into dollar amounts of a
// crisis savings figure, normalized over the adjusted percentages.
func (ab AdjustedBuckets) MonthlyAmounts(monthlySavings decimal.Decimal) domain.BucketAmounts {
	total := ab.Allocation.Sum()
	adjustedSavings := monthlySavings.Mul(ab.IncomeRatio)
	if !total.IsPositive() {
		return domain.BucketAmounts{}
	}
	return domain.BucketAmounts{
		Foundation: adjustedSavings.Mul(ab.Allocation.Foundation).Div(total).Round(2),
		Dream:      adjustedSavings.Mul(ab.Allocation.Dream).Div(total).Round(2),
		Life:       adjustedSavings.Mul(ab.Allocation.Life).Div(total).Round(2),
	}
}

// CrisisAction is one prioritized step to take right away.
type CrisisAction struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Details  string `json:"details"`
	Timeline string `json:"timeline"`
	Why      string `json:"why"`
}

// LongTermAdjustment is one slower-moving change to the plan.
type LongTermAdjustment struct {
	Category   string `json:"category"`
	Adjustment string `json:"adjustment"`
	Details    string `json:"details"`
	Timeline   string `json:"timeline"`
	Impact     string `json:"impact"`
}

// CrisisPerspective frames the crisis against the long-term plan.
type CrisisPerspective struct {
	MainMessage string `json:"mainMessage"`
	Context     string `json:"context"`
	Timeframe   string `json:"timeframe"`
	Impact      string `json:"impact"`
}

// CrisisBucketStrategy explains how the buckets shift during recovery.
type CrisisBucketStrategy struct {
	CrisisAllocation    domain.BucketAllocation `json:"crisisAllocation"`
	MonthlyAmounts      domain.BucketAmounts    `json:"monthlyAmounts"`
	Reasoning           map[string]string       `json:"reasoning"`
	TotalMonthlySavings decimal.Decimal         `json:"totalMonthlySavings"`
	ComparedToPrevious  string                  `json:"comparedToPrevious,omitempty"`
}

// CrisisTimeline sketches the expected recovery phases.
type CrisisTimeline struct {
	Immediate  string `json:"immediate"`
	ShortTerm  string `json:"shortTerm"`
	MediumTerm string `json:"mediumTerm"`
	Recovery   string `json:"recovery"`
}

// CrisisEncouragement keeps the response constructive.
type CrisisEncouragement struct {
	Perspective string   `json:"perspective"`
	Strengths   []string `json:"strengths"`
	Progress    string   `json:"progress"`
}

// CrisisResource points at outside help.
type CrisisResource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// RecoveryMilestone marks progress through the crisis.
type RecoveryMilestone struct {
	Timeframe   string `json:"timeframe"`
	Milestone   string `json:"milestone"`
	Celebration string `json:"celebration"`
}

// CrisisResponse is the full structured plan for one crisis scenario.
type CrisisResponse struct {
	Type                CrisisType           `json:"type"`
	Title               string               `json:"title"`
	Perspective         CrisisPerspective    `json:"perspective"`
	ImmediateActions    []CrisisAction       `json:"immediateActions"`
	LongTermAdjustments []LongTermAdjustment `json:"longTermAdjustments"`
	BucketStrategy      CrisisBucketStrategy `json:"bucketStrategy"`
	Timeline            CrisisTimeline       `json:"timeline"`
	Encouragement       CrisisEncouragement  `json:"encouragement"`
	Resources           []CrisisResource     `json:"resources"`
	RecoveryMilestones  []RecoveryMilestone  `json:"recoveryMilestones"`
	GeneratedAt         string               `json:"generatedAt"`
}

// CrisisEngine builds crisis re-projection plans.
type CrisisEngine struct {
	logger Logger
}

func NewCrisisEngine(logger Logger) *CrisisEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &CrisisEngine{logger: logger}
}

// JobLossParams configure the job-loss scenario. Zero values take the
// documented defaults.
type JobLossParams struct {
	CurrentIncome       decimal.Decimal `yaml:"current_income" json:"currentIncome"`
	MonthlySavings      decimal.Decimal `yaml:"monthly_savings" json:"monthlySavings"`
	UnemploymentBenefit decimal.Decimal `yaml:"unemployment_benefit" json:"unemploymentBenefit"`
	HasEmergencyFund    bool            `yaml:"has_emergency_fund" json:"hasEmergencyFund"`
	EmergencyFundMonths int             `yaml:"emergency_fund_months" json:"emergencyFundMonths"`
	GigSkills           []string        `yaml:"gig_skills" json:"gigSkills"`
}

func (p *JobLossParams) applyDefaults() {
	if p.CurrentIncome.IsZero() {
		p.CurrentIncome = decimal.NewFromInt(5242)
		p.HasEmergencyFund = true
	}
	if p.MonthlySavings.IsZero() {
		p.MonthlySavings = decimal.NewFromInt(2000)
	}
	if p.UnemploymentBenefit.IsZero() {
		p.UnemploymentBenefit = decimal.NewFromFloat(0.4)
	}
	if p.EmergencyFundMonths == 0 {
		p.EmergencyFundMonths = 6
	}
	if len(p.GigSkills) == 0 {
		p.GigSkills = []string{"marketing", "design"}
	}
}

// JobLoss builds the unemployment recovery plan.
func (ce *CrisisEngine) JobLoss(params JobLossParams) *CrisisResponse {
	params.applyDefaults()

	unemploymentMonthly := params.CurrentIncome.Mul(params.UnemploymentBenefit)
	gigIncome := params.CurrentIncome.Mul(decimal.NewFromFloat(0.3))
	crisisIncome := unemploymentMonthly.Add(gigIncome)
	reductionPct := decimal.NewFromInt(1).Sub(crisisIncome.Div(params.CurrentIncome)).Mul(hundred).Round(0)

	crisisSavings := decimal.Max(decimal.Zero, params.MonthlySavings.Mul(decimal.NewFromFloat(0.4)))
	adjusted := AdjustBuckets(params.CurrentIncome, crisisIncome, domain.DefaultBucketAllocation())
	amounts := adjusted.MonthlyAmounts(crisisSavings)
	savedShare := crisisSavings.Div(params.MonthlySavings).Mul(hundred).Round(0)

	ce.logger.Debugf("job loss plan: crisis income %s, savings capacity %s", crisisIncome.Round(0), crisisSavings.Round(0))

	emergencyDetails := "Consider temporary family support or credit line"
	if params.HasEmergencyFund {
		emergencyDetails = fmt.Sprintf("Use %d months of expenses to bridge the income gap", params.EmergencyFundMonths)
	}

	return &CrisisResponse{
		Type:  CrisisJobLoss,
		Title: "Job Loss Recovery Strategy",
		Perspective: CrisisPerspective{
			MainMessage: "This is a 6-month pause on a 20-year journey.",
			Context:     fmt.Sprintf("You're not behind, you're navigating. A %s%% income reduction is manageable with the right strategy.", reductionPct),
			Timeframe:   "Most people find new employment within 3-6 months",
			Impact:      "Your dream may shift by 6-12 months, but it's still yours to claim.",
		},
		ImmediateActions: []CrisisAction{
			{
				Priority: "urgent",
				Action:   "File for unemployment benefits immediately",
				Details:  fmt.Sprintf("Estimated benefit: %s/month", FormatCurrency(unemploymentMonthly)),
				Timeline: "Apply within 1 week",
				Why:      "This replaces a large share of your income automatically",
			},
			{
				Priority: "urgent",
				Action:   "Activate emergency fund strategically",
				Details:  emergencyDetails,
				Timeline: "Immediate",
				Why:      "Protects your Foundation bucket from being touched",
			},
			{
				Priority: "high",
				Action:   "Launch gig work immediately",
				Details:  fmt.Sprintf("Target %s/month through %s freelancing", FormatCurrency(gigIncome), strings.Join(params.GigSkills, ", ")),
				Timeline: "Start within 2 weeks",
				Why:      "Maintains dignity and income while job searching",
			},
			{
				Priority: "medium",
				Action:   "Pause non-essential subscriptions",
				Details:  "Cancel gym, streaming services, premium apps temporarily",
				Timeline: "This week",
				Why:      "Free up $100-200/month for essentials",
			},
			{
				Priority: "medium",
				Action:   "Communicate with creditors",
				Details:  "Inform credit card companies and loan servicers about temporary hardship",
				Timeline: "Within 2 weeks",
				Why:      "Many offer deferment programs to prevent damage to credit",
			},
		},
		LongTermAdjustments: []LongTermAdjustment{
			{
				Category:   "Career Strategy",
				Adjustment: "Treat job search as full-time work",
				Details:    "Dedicate 40 hours/week to applications, networking, and skill development",
				Timeline:   "3-6 months",
				Impact:     "Accelerates return to full income",
			},
			{
				Category:   "Income Diversification",
				Adjustment: "Build freelance client base",
				Details:    "Even after a new job, maintain 1-2 clients for extra income security",
				Timeline:   "Ongoing",
				Impact:     "Adds 10-15% income buffer for future savings acceleration",
			},
			{
				Category:   "Expense Optimization",
				Adjustment: "Negotiate fixed expenses",
				Details:    "Call internet, insurance, phone providers for reduced rates",
				Timeline:   "Month 2-3",
				Impact:     "Permanent $50-150/month savings",
			},
			{
				Category:   "Bucket Strategy",
				Adjustment: "Gradual savings restoration",
				Details:    "Return to normal allocation over 6 months after reemployment",
				Timeline:   "6-12 months post-employment",
				Impact:     "Protects long-term goals while managing the crisis",
			},
		},
		BucketStrategy: CrisisBucketStrategy{
			CrisisAllocation: adjusted.Allocation,
			MonthlyAmounts:   amounts,
			Reasoning: map[string]string{
				"foundation": "Reduced but protected, retirement security maintained",
				"dream":      "Significantly reduced but not eliminated, keeps the goal alive",
				"life":       "Moderately reduced, covers essential milestones only",
			},
			TotalMonthlySavings: crisisSavings.Round(2),
			ComparedToPrevious:  fmt.Sprintf("%s%% of previous savings rate", savedShare),
		},
		Timeline: CrisisTimeline{
			Immediate:  "Weeks 1-2: File unemployment, activate emergency strategies",
			ShortTerm:  "Months 1-3: Job search plus gig work, reduced but consistent savings",
			MediumTerm: "Months 3-6: Likely reemployment, gradual savings restoration",
			Recovery:   "Months 6-12: Back to full savings capacity, potential catch-up phase",
		},
		Encouragement: CrisisEncouragement{
			Perspective: "This is a detour, not a destination. Your dream is still waiting.",
			Strengths: []string{
				"You have an emergency fund (smart planning)",
				"Your skills translate to gig work",
				"You understand bucket strategy (protects Foundation)",
				"You're proactive about seeking help",
			},
			Progress: "Even 40% savings keeps you moving toward the goal, just at a gentler pace.",
		},
		Resources: []CrisisResource{
			{Type: "unemployment", Name: "State Unemployment Office", Description: "File benefits, understand extensions", Urgency: "immediate"},
			{Type: "gig-work", Name: "Freelance marketplaces", Description: fmt.Sprintf("Platforms for %s freelancing", strings.Join(params.GigSkills, ", ")), Urgency: "immediate"},
			{Type: "job-search", Name: "Local job search meetups", Description: "Networking groups for your area", Urgency: "week-1"},
			{Type: "financial", Name: "Credit counseling services", Description: "Free advice on managing payments during unemployment", Urgency: "if-needed"},
		},
		RecoveryMilestones: []RecoveryMilestone{
			{Timeframe: "2 weeks", Milestone: "Unemployment filed, gig work launched", Celebration: "You've activated your safety nets!"},
			{Timeframe: "1 month", Milestone: "First gig payment received", Celebration: "Income diversification in action!"},
			{Timeframe: "3 months", Milestone: "Maintained some savings despite the crisis", Celebration: "Your dream fund survived the storm!"},
			{Timeframe: "6 months", Milestone: "New job secured or gig work stabilized", Celebration: "Back on track, stronger and more resilient!"},
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// MedicalEmergencyParams configure the medical-emergency scenario.
type MedicalEmergencyParams struct {
	EmergencyCost      decimal.Decimal `yaml:"emergency_cost" json:"emergencyCost"`
	LifeBucketBalance  decimal.Decimal `yaml:"life_bucket_balance" json:"lifeBucketBalance"`
	HasHealthInsurance bool            `yaml:"has_health_insurance" json:"hasHealthInsurance"`
	MaxOutOfPocket     decimal.Decimal `yaml:"max_out_of_pocket" json:"maxOutOfPocket"`
	RecoveryTimeMonths int             `yaml:"recovery_time_months" json:"recoveryTimeMonths"`
	IncomeImpact       decimal.Decimal `yaml:"income_impact" json:"incomeImpact"`
	CurrentIncome      decimal.Decimal `yaml:"current_income" json:"currentIncome"`
}

func (p *MedicalEmergencyParams) applyDefaults() {
	if p.EmergencyCost.IsZero() {
		p.EmergencyCost = decimal.NewFromInt(15000)
		p.HasHealthInsurance = true
	}
	if p.LifeBucketBalance.IsZero() {
		p.LifeBucketBalance = decimal.NewFromInt(5000)
	}
	if p.MaxOutOfPocket.IsZero() {
		p.MaxOutOfPocket = decimal.NewFromInt(8000)
	}
	if p.RecoveryTimeMonths == 0 {
		p.RecoveryTimeMonths = 3
	}
	if p.IncomeImpact.IsZero() {
		p.IncomeImpact = decimal.NewFromFloat(0.2)
	}
	if p.CurrentIncome.IsZero() {
		p.CurrentIncome = decimal.NewFromInt(5242)
	}
}

// MedicalEmergency builds the health-crisis funding and recovery plan.
func (ce *CrisisEngine) MedicalEmergency(params MedicalEmergencyParams) *CrisisResponse {
	params.applyDefaults()

	insuranceCovered := decimal.Zero
	if params.HasHealthInsurance {
		insuranceCovered = decimal.Max(decimal.Zero, params.EmergencyCost.Sub(params.MaxOutOfPocket))
	}
	outOfPocket := params.EmergencyCost.Sub(insuranceCovered)
	lifeBucketCovers := decimal.Min(outOfPocket, params.LifeBucketBalance)
	remainingNeed := decimal.Max(decimal.Zero, outOfPocket.Sub(lifeBucketCovers))

	recoveryIncome := params.CurrentIncome.Mul(decimal.NewFromInt(1).Sub(params.IncomeImpact))
	adjusted := AdjustBuckets(params.CurrentIncome, recoveryIncome, domain.DefaultBucketAllocation())

	usedShare := decimal.Zero
	if params.LifeBucketBalance.IsPositive() {
		usedShare = lifeBucketCovers.Div(params.LifeBucketBalance).Mul(hundred).Round(0)
	}

	gapAction := CrisisAction{
		Priority: "high",
		Action:   "Focus on recovery",
		Details:  "Life bucket covers everything, focus entirely on healing",
		Timeline: "Week 1",
		Why:      "Stress-free recovery",
	}
	if remainingNeed.IsPositive() {
		gapAction = CrisisAction{
			Priority: "high",
			Action:   "Address remaining funding gap",
			Details:  fmt.Sprintf("Need additional %s, consider a payment plan with the provider", FormatCurrency(remainingNeed)),
			Timeline: "Week 1",
			Why:      "Prevents a Foundation bucket raid",
		}
	}

	insuranceDetails := "Apply for hospital financial assistance programs immediately"
	if params.HasHealthInsurance {
		insuranceDetails = fmt.Sprintf("Insurance covers %s, your max out-of-pocket: %s", FormatCurrency(insuranceCovered), FormatCurrency(params.MaxOutOfPocket))
	}

	return &CrisisResponse{
		Type:  CrisisMedicalEmergency,
		Title: "Medical Emergency Response Plan",
		Perspective: CrisisPerspective{
			MainMessage: "Health comes first. Your Life bucket was built for exactly this moment.",
			Context:     fmt.Sprintf("%s medical cost is significant but manageable with your three-bucket system.", FormatCurrency(outOfPocket)),
			Timeframe:   fmt.Sprintf("%d-month recovery period with strategic bucket usage", params.RecoveryTimeMonths),
			Impact:      "Your Foundation stays protected, the goal timeline is barely affected.",
		},
		ImmediateActions: []CrisisAction{
			{
				Priority: "urgent",
				Action:   "Use Life bucket for medical costs",
				Details:  fmt.Sprintf("Deploy %s from the Life bucket (%s%% of balance)", FormatCurrency(lifeBucketCovers), usedShare),
				Timeline: "Immediate",
				Why:      "This is exactly what the Life bucket is designed for",
			},
			{
				Priority: "urgent",
				Action:   "Maximize insurance benefits",
				Details:  insuranceDetails,
				Timeline: "Within 48 hours",
				Why:      "Reduces actual cost significantly",
			},
			gapAction,
			{
				Priority: "medium",
				Action:   "Temporarily reduce Dream bucket",
				Details:  "Redirect Dream contributions to rebuild the Life bucket during recovery",
				Timeline: fmt.Sprintf("Next %d months", params.RecoveryTimeMonths),
				Why:      "Maintains emergency protection while preserving Foundation",
			},
			{
				Priority: "low",
				Action:   "Document all medical expenses",
				Details:  "Track everything for tax deductions and HSA reimbursements",
				Timeline: "Ongoing",
				Why:      "Potential tax savings and HSA benefits",
			},
		},
		LongTermAdjustments: []LongTermAdjustment{
			{
				Category:   "Health Strategy",
				Adjustment: "Prioritize preventive care",
				Details:    "Increase HSA contributions, focus on preventive health measures",
				Timeline:   "Post-recovery",
				Impact:     "Reduces future medical crisis risk",
			},
			{
				Category:   "Emergency Preparedness",
				Adjustment: "Rebuild Life bucket faster",
				Details:    "Increase Life bucket contributions until the balance is restored",
				Timeline:   "6-12 months",
				Impact:     "Stronger protection for future emergencies",
			},
			{
				Category:   "Income Recovery",
				Adjustment: "Gradual return to full earning capacity",
				Details:    "Phase back to a full work schedule as health permits",
				Timeline:   fmt.Sprintf("%d months", params.RecoveryTimeMonths),
				Impact:     "Returns all buckets to normal allocation",
			},
			{
				Category:   "Insurance Review",
				Adjustment: "Evaluate coverage gaps",
				Details:    "Consider supplemental insurance, review deductibles",
				Timeline:   "Next open enrollment",
				Impact:     "Better protection for future medical needs",
			},
		},
		BucketStrategy: CrisisBucketStrategy{
			CrisisAllocation: adjusted.Allocation,
			MonthlyAmounts:   adjusted.MonthlyAmounts(decimal.Zero),
			Reasoning: map[string]string{
				"foundation": "Untouched, your retirement security intact",
				"dream":      "The goal is delayed by 2-3 months at most",
				"life":       "Fulfilling its purpose, this is why it exists",
			},
			TotalMonthlySavings: lifeBucketCovers.Round(2),
		},
		Timeline: CrisisTimeline{
			Immediate:  "Week 1: Use Life bucket, maximize insurance, focus on treatment",
			ShortTerm:  "Months 1-3: Recovery period with reduced earnings, bucket rebuilding",
			MediumTerm: "Months 3-6: Return to full capacity, Life bucket restoration",
			Recovery:   "Months 6+: Normal bucket allocation resumed, stronger emergency preparedness",
		},
		Encouragement: CrisisEncouragement{
			Perspective: "This is exactly why you built the three-bucket system. It's working.",
			Strengths: []string{
				"Your Life bucket absorbed the shock (as designed)",
				"Foundation bucket stays protected",
				"You have health insurance working for you",
				"Your planning anticipated this exact scenario",
			},
			Progress: "The goal is barely affected, maybe 2-3 months later, but still yours.",
		},
		Resources: []CrisisResource{
			{Type: "insurance", Name: "Insurance Navigator", Description: "Help maximizing health insurance benefits", Urgency: "immediate"},
			{Type: "financial", Name: "Hospital Financial Counselor", Description: "Payment plans and financial assistance programs", Urgency: "immediate"},
			{Type: "tax", Name: "HSA Administrator", Description: "Reimbursements and tax-advantaged medical spending", Urgency: "week-1"},
			{Type: "support", Name: "Patient Advocate", Description: "Navigate the medical system and insurance claims", Urgency: "if-needed"},
		},
		RecoveryMilestones: []RecoveryMilestone{
			{Timeframe: "1 week", Milestone: "Medical costs covered without touching Foundation", Celebration: "Your bucket system protected your future!"},
			{Timeframe: "1 month", Milestone: "Treatment progressing, Life bucket rebuilding started", Celebration: "Health improving, finances stable!"},
			{Timeframe: "3 months", Milestone: "Recovery complete, normal earnings resumed", Celebration: "Back to full strength, physically and financially!"},
			{Timeframe: "6 months", Milestone: "Life bucket fully restored, goal back on track", Celebration: "Stronger than before, with proven crisis resilience!"},
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// RelationshipChangeParams configure the separation scenario. Income
// figures are monthly.
type RelationshipChangeParams struct {
	WasMarried        bool            `yaml:"was_married" json:"wasMarried"`
	SharedIncome      decimal.Decimal `yaml:"shared_income" json:"sharedIncome"`
	YourIncome        decimal.Decimal `yaml:"your_income" json:"yourIncome"`
	SharedExpenses    decimal.Decimal `yaml:"shared_expenses" json:"sharedExpenses"`
	YourNewExpenses   decimal.Decimal `yaml:"your_new_expenses" json:"yourNewExpenses"`
	SharedAssets      decimal.Decimal `yaml:"shared_assets" json:"sharedAssets"`
	YourShare         decimal.Decimal `yaml:"your_share" json:"yourShare"`
	HasChildren       bool            `yaml:"has_children" json:"hasChildren"`
	ChildSupport      decimal.Decimal `yaml:"child_support" json:"childSupport"`
	MonthsToStabilize int             `yaml:"months_to_stabilize" json:"monthsToStabilize"`
}

func (p *RelationshipChangeParams) applyDefaults() {
	if p.SharedIncome.IsZero() {
		p.SharedIncome = decimal.NewFromInt(12083)
		p.WasMarried = true
	}
	if p.YourIncome.IsZero() {
		p.YourIncome = decimal.NewFromInt(7083)
	}
	if p.SharedExpenses.IsZero() {
		p.SharedExpenses = decimal.NewFromInt(4500)
	}
	if p.YourNewExpenses.IsZero() {
		p.YourNewExpenses = decimal.NewFromInt(2800)
	}
	if p.SharedAssets.IsZero() {
		p.SharedAssets = decimal.NewFromInt(120000)
	}
	if p.YourShare.IsZero() {
		p.YourShare = decimal.NewFromFloat(0.5)
	}
	if p.MonthsToStabilize == 0 {
		p.MonthsToStabilize = 6
	}
}

// RelationshipChange builds the financial reset plan for a separation.
func (ce *CrisisEngine) RelationshipChange(params RelationshipChangeParams) *CrisisResponse {
	params.applyDefaults()

	assetGain := params.SharedAssets.Mul(params.YourShare)
	oldDisposable := params.SharedIncome.Sub(params.SharedExpenses)
	newDisposable := params.YourIncome.Sub(params.YourNewExpenses).Sub(params.ChildSupport)

	adjusted := AdjustBuckets(oldDisposable, newDisposable, domain.DefaultBucketAllocation())
	amounts := adjusted.MonthlyAmounts(newDisposable.Mul(decimal.NewFromFloat(0.6)))

	housingDetails := "Secure housing that fits your solo budget"
	if params.WasMarried {
		housingDetails = "Evaluate keeping vs. selling the shared home, or find an appropriately-sized rental"
	}

	childAction := CrisisAction{
		Priority: "medium",
		Action:   "Focus on personal goals",
		Details:  "Channel energy into personal financial growth",
		Timeline: "Month 1-2",
		Why:      "Positive focus during the transition",
	}
	if params.HasChildren {
		childAction = CrisisAction{
			Priority: "medium",
			Action:   "Establish child support and custody financials",
			Details:  fmt.Sprintf("Factor %s/month into budget planning", FormatCurrency(params.ChildSupport)),
			Timeline: "Month 1-2",
			Why:      "Legal clarity and budget accuracy",
		}
	}

	return &CrisisResponse{
		Type:  CrisisRelationshipChange,
		Title: "Relationship Change Financial Reset",
		Perspective: CrisisPerspective{
			MainMessage: "This is a 6-month reset on a 20-year journey. You're redesigning, not starting over.",
			Context:     fmt.Sprintf("You have %s in assets and reduced expenses to work with.", FormatCurrency(assetGain)),
			Timeframe:   fmt.Sprintf("%d months to establish a new financial rhythm", params.MonthsToStabilize),
			Impact:      "The goal timeline adjusts, but your independence makes it even more meaningful.",
		},
		ImmediateActions: []CrisisAction{
			{
				Priority: "urgent",
				Action:   "Establish separate financial accounts",
				Details:  "Open individual checking, savings, and investment accounts",
				Timeline: "Within 1 week",
				Why:      "Financial independence and clear asset separation",
			},
			{
				Priority: "urgent",
				Action:   "Asset division strategy",
				Details:  fmt.Sprintf("Your share: %s, prioritize liquid assets for a Life bucket boost", FormatCurrency(assetGain)),
				Timeline: "Within 30 days",
				Why:      "Strengthen your individual emergency protection",
			},
			{
				Priority: "high",
				Action:   "Housing optimization",
				Details:  housingDetails,
				Timeline: "Month 1-2",
				Why:      "Housing is the biggest expense factor in the new budget",
			},
			{
				Priority: "high",
				Action:   "Update all financial accounts",
				Details:  "Remove the ex-partner from accounts, update beneficiaries and insurance",
				Timeline: "Month 1",
				Why:      "Legal protection and a clean financial slate",
			},
			childAction,
		},
		LongTermAdjustments: []LongTermAdjustment{
			{
				Category:   "Income Strategy",
				Adjustment: "Optimize your earning potential",
				Details:    "Focus entirely on your career growth without compromise",
				Timeline:   "6-12 months",
				Impact:     "Potential for income increases without household negotiation",
			},
			{
				Category:   "Expense Optimization",
				Adjustment: "Right-size your lifestyle",
				Details:    fmt.Sprintf("Target monthly expenses of %s with room for personal priorities", FormatCurrency(params.YourNewExpenses)),
				Timeline:   "3-6 months",
				Impact:     "Higher savings rate possible with intentional spending",
			},
			{
				Category:   "Goal Refinement",
				Adjustment: "Personalize your someday life",
				Details:    "The goal is now yours alone, design it exactly as you want",
				Timeline:   "Ongoing",
				Impact:     "Stronger emotional connection to goals",
			},
			{
				Category:   "Emergency Preparedness",
				Adjustment: "Build a robust individual safety net",
				Details:    "A larger emergency fund is needed as the sole income earner",
				Timeline:   "12 months",
				Impact:     "Greater financial security and confidence",
			},
		},
		BucketStrategy: CrisisBucketStrategy{
			CrisisAllocation: adjusted.Allocation,
			MonthlyAmounts:   amounts,
			Reasoning: map[string]string{
				"foundation": "Higher priority as the sole earner, robust retirement security needed",
				"dream":      "Slower but steady, the goal becomes a symbol of independence",
				"life":       "Maintained for travel and personal growth",
			},
			TotalMonthlySavings: newDisposable.Mul(decimal.NewFromFloat(0.6)).Round(2),
		},
		Timeline: CrisisTimeline{
			Immediate:  "Months 1-2: Legal and financial separation, housing decisions, asset division",
			ShortTerm:  "Months 3-6: Establish a new financial rhythm, optimize expenses",
			MediumTerm: "Months 6-12: Income optimization, relationship with money stabilizes",
			Recovery:   "Year 2+: Accelerated progress toward personalized goals",
		},
		Encouragement: CrisisEncouragement{
			Perspective: "Your dream will be 100% yours, earned through your strength and planning.",
			Strengths: []string{
				"You have your own income and career",
				"Asset division provides a foundation boost",
				"Lower expenses create opportunities",
				"Complete control over financial decisions",
			},
			Progress: "Independence often accelerates goal achievement, no compromising on your dreams.",
		},
		Resources: []CrisisResource{
			{Type: "legal", Name: "Family Law Attorney", Description: "Asset division and legal separation guidance", Urgency: "immediate"},
			{Type: "financial", Name: "Fee-Only Financial Planner", Description: "Objective advice for your new financial situation", Urgency: "month-1"},
			{Type: "emotional", Name: "Therapist or Support Group", Description: "Emotional support during the transition", Urgency: "as-needed"},
			{Type: "practical", Name: "Solo Living Communities", Description: "Meetups and groups for single professionals", Urgency: "month-2"},
		},
		RecoveryMilestones: []RecoveryMilestone{
			{Timeframe: "1 month", Milestone: "Separate finances established, asset division initiated", Celebration: "Financial independence activated!"},
			{Timeframe: "3 months", Milestone: "New living situation stabilized, budget optimized", Celebration: "Your new life rhythm is working!"},
			{Timeframe: "6 months", Milestone: "Savings rate restored or improved", Celebration: "The dream fund is growing strong again!"},
			{Timeframe: "12 months", Milestone: "Emotionally and financially stable, goals clarified", Celebration: "Stronger, more focused, and unstoppable!"},
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
