package domain

import "github.com/shopspring/decimal"

// Debt is a single outstanding balance. InterestRate is an annual
// percentage (20 means 20% APR).
type Debt struct {
	Name           string          `yaml:"name" json:"name"`
	CurrentBalance decimal.Decimal `yaml:"current_balance" json:"currentBalance"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	MonthlyPayment decimal.Decimal `yaml:"monthly_payment" json:"monthlyPayment"`
	MinimumPayment decimal.Decimal `yaml:"minimum_payment" json:"minimumPayment"`
}

// Payment returns the monthly payment, falling back to the minimum when
// no explicit payment was set.
func (d Debt) Payment() decimal.Decimal {
	if d.MonthlyPayment.IsPositive() {
		return d.MonthlyPayment
	}
	return d.MinimumPayment
}

// FilingStatus selects a federal bracket table and standard deduction.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// Valid reports whether the status names a known filing status.
func (f FilingStatus) Valid() bool {
	switch f {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	}
	return false
}

// IncomeData is the input to the income analyzer.
type IncomeData struct {
	GrossAnnualIncome decimal.Decimal `yaml:"gross_annual_income" json:"grossAnnualIncome"`
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	State             string          `yaml:"state" json:"state"`
	PreTaxDeductions  decimal.Decimal `yaml:"pre_tax_deductions" json:"preTaxDeductions"`
}

// FixedExpenses is the monthly fixed-expense breakdown used by the
// savings capacity estimate.
type FixedExpenses struct {
	Housing        decimal.Decimal `yaml:"housing" json:"housing"`
	Transportation decimal.Decimal `yaml:"transportation" json:"transportation"`
	Insurance      decimal.Decimal `yaml:"insurance" json:"insurance"`
	Utilities      decimal.Decimal `yaml:"utilities" json:"utilities"`
	Subscriptions  decimal.Decimal `yaml:"subscriptions" json:"subscriptions"`
	Childcare      decimal.Decimal `yaml:"childcare" json:"childcare"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Total returns the sum of all fixed expense categories.
func (f FixedExpenses) Total() decimal.Decimal {
	return f.Housing.Add(f.Transportation).Add(f.Insurance).Add(f.Utilities).
		Add(f.Subscriptions).Add(f.Childcare).Add(f.Other)
}
