package calculation

// Tax computation assumptions (2024 tax year):
// - Federal income tax uses the 2024 progressive brackets with the
//   standard deduction for the filing status.
// - FICA: 6.2% Social Security up to the 2024 wage base, 1.45% Medicare
//   on all wages, plus the 0.9% additional Medicare tax above $200,000.
// - State income tax is a simplified flat average rate per state applied
//   to federal taxable income; unlisted states default to 5%.
// - State disability insurance applies only in CA, NY, and NJ as a
//   simplified 0.9% capped at $1,500.
// The tables are point-in-time real-world facts and are versioned by
// constructor name.

import (
	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// TaxBracket is one marginal bracket. The top bracket's Max is the
// unbounded sentinel.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

var bracketUnbounded = decimal.NewFromInt(1_000_000_000_000)

func bracket(min, max int64, rate float64) TaxBracket {
	maxD := bracketUnbounded
	if max > 0 {
		maxD = decimal.NewFromInt(max)
	}
	return TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  maxD,
		Rate: decimal.NewFromFloat(rate),
	}
}

// FICAConfig holds payroll tax rates and thresholds.
type FICAConfig struct {
	SocialSecurityRate     decimal.Decimal
	SocialSecurityWageBase decimal.Decimal
	MedicareRate           decimal.Decimal
	AdditionalMedicareRate decimal.Decimal
	HighIncomeThreshold    decimal.Decimal
}

// TaxCalculator computes federal, FICA, and state taxes from static
// versioned tables.
type TaxCalculator struct {
	year               int
	brackets           map[domain.FilingStatus][]TaxBracket
	standardDeductions map[domain.FilingStatus]decimal.Decimal
	stateRates         map[string]decimal.Decimal
	defaultStateRate   decimal.Decimal
	fica               FICAConfig
	sdiStates          map[string]bool
	sdiRate            decimal.Decimal
	sdiCap             decimal.Decimal
}

// NewTaxCalculator2024 creates a calculator loaded with the 2024 federal
// brackets, standard deductions, FICA thresholds, and state rate table.
func NewTaxCalculator2024() *TaxCalculator {
	single := []TaxBracket{
		bracket(0, 11600, 0.10),
		bracket(11600, 47150, 0.12),
		bracket(47150, 100525, 0.22),
		bracket(100525, 191950, 0.24),
		bracket(191950, 243725, 0.32),
		bracket(243725, 609350, 0.35),
		bracket(609350, 0, 0.37),
	}
	marriedJoint := []TaxBracket{
		bracket(0, 23200, 0.10),
		bracket(23200, 94300, 0.12),
		bracket(94300, 201050, 0.22),
		bracket(201050, 383900, 0.24),
		bracket(383900, 487450, 0.32),
		bracket(487450, 731200, 0.35),
		bracket(731200, 0, 0.37),
	}

	return &TaxCalculator{
		year: 2024,
		brackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:       single,
			domain.FilingMarriedJoint: marriedJoint,
			// Separate filers and heads of household share the single
			// brackets in this simplified model.
			domain.FilingMarriedSeparate: single,
			domain.FilingHeadOfHousehold: single,
		},
		standardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(14600),
			domain.FilingMarriedJoint:    decimal.NewFromInt(29200),
			domain.FilingMarriedSeparate: decimal.NewFromInt(14600),
			domain.FilingHeadOfHousehold: decimal.NewFromInt(21900),
		},
		stateRates:       stateTaxRates2024(),
		defaultStateRate: decimal.NewFromFloat(0.05),
		fica: FICAConfig{
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			SocialSecurityWageBase: decimal.NewFromInt(160200),
			MedicareRate:           decimal.NewFromFloat(0.0145),
			AdditionalMedicareRate: decimal.NewFromFloat(0.009),
			HighIncomeThreshold:    decimal.NewFromInt(200000),
		},
		sdiStates: map[string]bool{"California": true, "New York": true, "New Jersey": true},
		sdiRate:   decimal.NewFromFloat(0.009),
		sdiCap:    decimal.NewFromInt(1500),
	}
}

func stateTaxRates2024() map[string]decimal.Decimal {
	raw := map[string]float64{
		// No state income tax
		"Alaska": 0, "Florida": 0, "Nevada": 0, "New Hampshire": 0,
		"South Dakota": 0, "Tennessee": 0, "Texas": 0, "Washington": 0, "Wyoming": 0,

		// Low tax states
		"Arizona": 0.025, "Colorado": 0.0463, "Illinois": 0.0495, "Indiana": 0.0323,
		"Iowa": 0.0453, "Kentucky": 0.045, "Michigan": 0.0425, "Mississippi": 0.04,
		"Missouri": 0.0395, "Montana": 0.0475, "New Mexico": 0.049, "North Carolina": 0.0475,
		"North Dakota": 0.0295, "Ohio": 0.0399, "Oklahoma": 0.04, "Pennsylvania": 0.0307,
		"South Carolina": 0.04, "Utah": 0.0495, "West Virginia": 0.0465, "Wisconsin": 0.0465,

		// Medium tax states
		"Alabama": 0.04, "Arkansas": 0.0515, "Connecticut": 0.0599, "Delaware": 0.0555,
		"Georgia": 0.0549, "Idaho": 0.058, "Kansas": 0.057, "Louisiana": 0.0425,
		"Maine": 0.0715, "Maryland": 0.0575, "Massachusetts": 0.05, "Minnesota": 0.0598,
		"Nebraska": 0.0584, "New Jersey": 0.0637, "Rhode Island": 0.0599, "Vermont": 0.066,
		"Virginia": 0.0575,

		// High tax states
		"California": 0.093, "Hawaii": 0.08, "New York": 0.0685, "Oregon": 0.087,
		"Washington DC": 0.0575,
	}
	rates := make(map[string]decimal.Decimal, len(raw))
	for state, rate := range raw {
		rates[state] = decimal.NewFromFloat(rate)
	}
	return rates
}

// FederalTaxes breaks out the federal side of the tax bill.
type FederalTaxes struct {
	IncomeTax          decimal.Decimal `json:"incomeTax"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
	Total              decimal.Decimal `json:"total"`
}

// StateTaxes breaks out the state side of the tax bill.
type StateTaxes struct {
	IncomeTax  decimal.Decimal `json:"incomeTax"`
	Disability decimal.Decimal `json:"disability"`
	Total      decimal.Decimal `json:"total"`
}

// TaxResult is the complete tax breakdown for one year of income.
type TaxResult struct {
	Federal           FederalTaxes    `json:"federal"`
	State             StateTaxes      `json:"state"`
	TotalTaxes        decimal.Decimal `json:"totalTaxes"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"`
	MarginalRate      decimal.Decimal `json:"marginalRate"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	TaxYear           int             `json:"taxYear"`
}

// Calculate computes the full tax breakdown for the given taxable income
// (gross minus pre-tax deductions), filing status, and state.
func (tc *TaxCalculator) Calculate(taxableIncome decimal.Decimal, status domain.FilingStatus, state string) TaxResult {
	if !status.Valid() {
		status = domain.FilingSingle
	}

	standardDeduction := tc.standardDeductions[status]
	federalTaxable := taxableIncome.Sub(standardDeduction)
	if federalTaxable.IsNegative() {
		federalTaxable = decimal.Zero
	}

	federalTax := tc.federalIncomeTax(federalTaxable, status)

	ss := decimal.Min(taxableIncome, tc.fica.SocialSecurityWageBase).Mul(tc.fica.SocialSecurityRate)
	if ss.IsNegative() {
		ss = decimal.Zero
	}
	medicare := taxableIncome.Mul(tc.fica.MedicareRate)
	additionalMedicare := decimal.Zero
	if taxableIncome.GreaterThan(tc.fica.HighIncomeThreshold) {
		additionalMedicare = taxableIncome.Sub(tc.fica.HighIncomeThreshold).Mul(tc.fica.AdditionalMedicareRate)
	}

	stateRate := tc.stateRate(state)
	stateTax := federalTaxable.Mul(stateRate)

	sdi := decimal.Zero
	if tc.sdiStates[state] {
		sdi = decimal.Min(taxableIncome.Mul(tc.sdiRate), tc.sdiCap)
	}

	federalTotal := federalTax.Add(ss).Add(medicare).Add(additionalMedicare)
	stateTotal := stateTax.Add(sdi)
	total := federalTotal.Add(stateTotal)

	effectiveRate := decimal.Zero
	if taxableIncome.IsPositive() {
		effectiveRate = total.Div(taxableIncome).Mul(hundred)
	}

	return TaxResult{
		Federal: FederalTaxes{
			IncomeTax:          federalTax.Round(2),
			SocialSecurity:     ss.Round(2),
			Medicare:           medicare.Round(2),
			AdditionalMedicare: additionalMedicare.Round(2),
			Total:              federalTotal.Round(2),
		},
		State: StateTaxes{
			IncomeTax:  stateTax.Round(2),
			Disability: sdi.Round(2),
			Total:      stateTotal.Round(2),
		},
		TotalTaxes:        total.Round(2),
		EffectiveRate:     effectiveRate.Round(2),
		MarginalRate:      tc.marginalRate(federalTaxable, status, stateRate).Mul(hundred).Round(2),
		StandardDeduction: standardDeduction,
		TaxYear:           tc.year,
	}
}

// federalIncomeTax walks the progressive brackets, taxing only the
// income that falls within each one.
func (tc *TaxCalculator) federalIncomeTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range tc.brackets[status] {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		incomeInBracket := decimal.Min(taxableIncome, b.Max).Sub(b.Min)
		tax = tax.Add(incomeInBracket.Mul(b.Rate))
		if taxableIncome.LessThanOrEqual(b.Max) {
			break
		}
	}
	return tax
}

// marginalRate is the top federal bracket rate plus the state rate plus
// the applicable FICA rate.
func (tc *TaxCalculator) marginalRate(federalTaxable decimal.Decimal, status domain.FilingStatus, stateRate decimal.Decimal) decimal.Decimal {
	brackets := tc.brackets[status]
	federalMarginal := brackets[0].Rate
	for _, b := range brackets {
		if federalTaxable.GreaterThan(b.Min) {
			federalMarginal = b.Rate
		} else {
			break
		}
	}

	ficaRate := tc.fica.MedicareRate
	if federalTaxable.LessThan(tc.fica.SocialSecurityWageBase) {
		ficaRate = ficaRate.Add(tc.fica.SocialSecurityRate)
	}
	return federalMarginal.Add(stateRate).Add(ficaRate)
}

func (tc *TaxCalculator) stateRate(state string) decimal.Decimal {
	if rate, ok := tc.stateRates[state]; ok {
		return rate
	}
	return tc.defaultStateRate
}
