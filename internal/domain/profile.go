// Package domain contains the value types shared by the planning engines.
// Every type here is a plain value object: created per calculation, never
// mutated after construction, no identity beyond its fields.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ISODate is the date layout used at every API boundary.
const ISODate = "2006-01-02"

// FormatDate renders a time as a yyyy-MM-dd string.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// AssetAllocation is a portfolio split in whole percentage points.
// Stocks + Bonds + Cash must equal 100 when the allocation is present.
type AssetAllocation struct {
	Stocks decimal.Decimal `yaml:"stocks" json:"stocks"`
	Bonds  decimal.Decimal `yaml:"bonds" json:"bonds"`
	Cash   decimal.Decimal `yaml:"cash" json:"cash"`
}

// Sum returns stocks + bonds + cash.
func (a AssetAllocation) Sum() decimal.Decimal {
	return a.Stocks.Add(a.Bonds).Add(a.Cash)
}

// IsZero reports whether no allocation was provided.
func (a AssetAllocation) IsZero() bool {
	return a.Stocks.IsZero() && a.Bonds.IsZero() && a.Cash.IsZero()
}

// DefaultAssetAllocation is the 70/20/10 split assumed when a profile
// carries no explicit allocation.
func DefaultAssetAllocation() AssetAllocation {
	return AssetAllocation{
		Stocks: decimal.NewFromInt(70),
		Bonds:  decimal.NewFromInt(20),
		Cash:   decimal.NewFromInt(10),
	}
}

// FinancialProfile is a snapshot of a household's finances. All monetary
// fields are non-negative monthly or total dollar amounts.
type FinancialProfile struct {
	Age             int              `yaml:"age" json:"age"`
	MonthlyIncome   decimal.Decimal  `yaml:"monthly_income" json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal  `yaml:"monthly_expenses" json:"monthlyExpenses"`
	CurrentAssets   decimal.Decimal  `yaml:"current_assets" json:"currentAssets"`
	EmergencyFund   decimal.Decimal  `yaml:"emergency_fund" json:"emergencyFund"`
	Allocation      *AssetAllocation `yaml:"asset_allocation,omitempty" json:"assetAllocation,omitempty"`
}

// MonthlySavings returns max(0, income - expenses).
func (p FinancialProfile) MonthlySavings() decimal.Decimal {
	s := p.MonthlyIncome.Sub(p.MonthlyExpenses)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// EffectiveAllocation returns the profile's allocation, or the default
// 70/20/10 split when none was supplied.
func (p FinancialProfile) EffectiveAllocation() AssetAllocation {
	if p.Allocation == nil || p.Allocation.IsZero() {
		return DefaultAssetAllocation()
	}
	return *p.Allocation
}
