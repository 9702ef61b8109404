// Package config loads and validates plan files. A plan file is a YAML
// document carrying the household snapshot plus whichever optional
// sections (dream, income, debts, retirement, projection) the caller
// wants the engines to consume.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

// Plan is the top-level document in a plan file. Only Profile is
// required; every other section is optional and enables the
// corresponding engine.
type Plan struct {
	Profile       domain.FinancialProfile        `yaml:"profile" json:"profile"`
	Dream         *domain.Dream                  `yaml:"dream,omitempty" json:"dream,omitempty"`
	Goals         *domain.Goals                  `yaml:"goals,omitempty" json:"goals,omitempty"`
	Income        *domain.IncomeData             `yaml:"income,omitempty" json:"income,omitempty"`
	FixedExpenses domain.FixedExpenses           `yaml:"fixed_expenses,omitempty" json:"fixedExpenses,omitempty"`
	Debts         []domain.Debt                  `yaml:"debts,omitempty" json:"debts,omitempty"`
	Retirement    *calculation.RetirementInput   `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	Strategy      string                         `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Projection    *calculation.ProjectionOptions `yaml:"projection,omitempty" json:"projection,omitempty"`
}

// EffectiveStrategy returns the configured bucket strategy, defaulting
// to balanced.
func (p *Plan) EffectiveStrategy() calculation.BucketStrategy {
	if p.Strategy == "" {
		return calculation.StrategyBalanced
	}
	return calculation.BucketStrategy(p.Strategy)
}

// EffectiveProjection returns the configured projection options, or the
// defaults when the section is absent.
func (p *Plan) EffectiveProjection() calculation.ProjectionOptions {
	if p.Projection == nil {
		return calculation.DefaultProjectionOptions()
	}
	opts := *p.Projection
	if opts.Simulations <= 0 {
		opts.Simulations = calculation.DefaultProjectionOptions().Simulations
	}
	return opts
}

// EffectiveGoals returns the goals section, deriving one from the dream
// when no explicit goals are present.
func (p *Plan) EffectiveGoals() domain.Goals {
	if p.Goals != nil {
		return *p.Goals
	}
	if p.Dream != nil {
		return domain.Goals{TotalRequired: p.Dream.TargetAmount}
	}
	return domain.Goals{}
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates a loaded plan.
func (ip *InputParser) ValidatePlan(plan *Plan) error {
	if err := ip.validateProfile(&plan.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if plan.Dream != nil {
		if err := ip.validateDream(plan.Dream); err != nil {
			return fmt.Errorf("dream validation failed: %w", err)
		}
	}
	if plan.Goals != nil {
		if err := ip.validateGoals(plan.Goals); err != nil {
			return fmt.Errorf("goals validation failed: %w", err)
		}
	}
	if plan.Income != nil {
		if err := ip.validateIncome(plan.Income); err != nil {
			return fmt.Errorf("income validation failed: %w", err)
		}
	}
	for i, debt := range plan.Debts {
		if err := ip.validateDebt(&debt); err != nil {
			return fmt.Errorf("debt %d (%s) validation failed: %w", i, debt.Name, err)
		}
	}
	if plan.Retirement != nil {
		if err := ip.validateRetirement(plan.Retirement); err != nil {
			return fmt.Errorf("retirement validation failed: %w", err)
		}
	}
	if err := ip.validateStrategy(plan.Strategy); err != nil {
		return fmt.Errorf("strategy validation failed: %w", err)
	}
	if plan.Projection != nil {
		if err := ip.validateProjection(plan.Projection); err != nil {
			return fmt.Errorf("projection validation failed: %w", err)
		}
	}
	return nil
}

// validateProfile validates the household snapshot.
func (ip *InputParser) validateProfile(profile *domain.FinancialProfile) error {
	if profile.Age < 0 || profile.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120")
	}
	if profile.MonthlyIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if profile.MonthlyExpenses.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly expenses cannot be negative")
	}
	if profile.CurrentAssets.LessThan(decimal.Zero) {
		return fmt.Errorf("current assets cannot be negative")
	}
	if profile.EmergencyFund.LessThan(decimal.Zero) {
		return fmt.Errorf("emergency fund cannot be negative")
	}
	if profile.Allocation != nil && !profile.Allocation.IsZero() {
		if !profile.Allocation.Sum().Equal(decimal.NewFromInt(100)) {
			return fmt.Errorf("asset allocation must sum to 100")
		}
		if profile.Allocation.Stocks.LessThan(decimal.Zero) ||
			profile.Allocation.Bonds.LessThan(decimal.Zero) ||
			profile.Allocation.Cash.LessThan(decimal.Zero) {
			return fmt.Errorf("asset allocation components cannot be negative")
		}
	}
	return nil
}

// validateDream validates a savings goal.
func (ip *InputParser) validateDream(dream *domain.Dream) error {
	if dream.Name == "" {
		return fmt.Errorf("name is required")
	}
	if dream.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("target amount must be positive")
	}
	if dream.TargetDate.IsZero() {
		return fmt.Errorf("target date is required")
	}
	if dream.CurrentAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("current amount cannot be negative")
	}
	return nil
}

// validateGoals validates the someday goals section.
func (ip *InputParser) validateGoals(goals *domain.Goals) error {
	if goals.TotalRequired.LessThan(decimal.Zero) {
		return fmt.Errorf("total required cannot be negative")
	}
	if goals.YearsToSomeday < 0 || goals.YearsToSomeday > 100 {
		return fmt.Errorf("years to someday must be between 0 and 100")
	}
	return nil
}

// validateIncome validates the income analyzer inputs.
func (ip *InputParser) validateIncome(income *domain.IncomeData) error {
	if income.GrossAnnualIncome.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("gross annual income must be positive")
	}
	if income.FilingStatus != "" && !income.FilingStatus.Valid() {
		return fmt.Errorf("filing status must be 'single', 'married_joint', 'married_separate', or 'head_of_household'")
	}
	if income.PreTaxDeductions.LessThan(decimal.Zero) {
		return fmt.Errorf("pre-tax deductions cannot be negative")
	}
	return nil
}

// validateDebt validates a single debt entry.
func (ip *InputParser) validateDebt(debt *domain.Debt) error {
	if debt.Name == "" {
		return fmt.Errorf("name is required")
	}
	if debt.CurrentBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("current balance cannot be negative")
	}
	if debt.InterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("interest rate cannot be negative")
	}
	if debt.MonthlyPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly payment cannot be negative")
	}
	if debt.MinimumPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("minimum payment cannot be negative")
	}
	return nil
}

// validateRetirement validates the retirement sizing inputs. The
// calculator revalidates with defaults applied, so only hard errors are
// caught here.
func (ip *InputParser) validateRetirement(input *calculation.RetirementInput) error {
	if input.AnnualExpenses.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("annual expenses must be positive")
	}
	if input.YearsUntilRetirement < 0 {
		return fmt.Errorf("years until retirement cannot be negative")
	}
	if input.CurrentAge < 0 || input.CurrentAge > 120 {
		return fmt.Errorf("current age must be between 0 and 120")
	}
	if input.CurrentSavings.LessThan(decimal.Zero) {
		return fmt.Errorf("current savings cannot be negative")
	}
	if input.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	return nil
}

// validateStrategy validates the bucket strategy name.
func (ip *InputParser) validateStrategy(strategy string) error {
	switch calculation.BucketStrategy(strategy) {
	case "", calculation.StrategyConservative, calculation.StrategyBalanced, calculation.StrategyAggressive:
		return nil
	}
	return fmt.Errorf("strategy must be 'conservative', 'balanced', or 'aggressive'")
}

// validateProjection validates the projection options.
func (ip *InputParser) validateProjection(opts *calculation.ProjectionOptions) error {
	if opts.Simulations < 0 || opts.Simulations > 100000 {
		return fmt.Errorf("simulations must be between 0 and 100000")
	}
	if opts.YearsToProject < 0 || opts.YearsToProject > 100 {
		return fmt.Errorf("years to project must be between 0 and 100")
	}
	return nil
}
