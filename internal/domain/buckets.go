package domain

import "github.com/shopspring/decimal"

// BucketName identifies one of the three allocation buckets.
type BucketName string

const (
	BucketFoundation BucketName = "foundation" // retirement security
	BucketDream      BucketName = "dream"      // the named goal
	BucketLife       BucketName = "life"       // near-term milestones and buffers
)

// BucketAllocation is a percentage split of disposable income across the
// three buckets. The engines guarantee the parts sum to 100 and that each
// bucket stays at or above its floor.
type BucketAllocation struct {
	Foundation decimal.Decimal `yaml:"foundation" json:"foundation"`
	Dream      decimal.Decimal `yaml:"dream" json:"dream"`
	Life       decimal.Decimal `yaml:"life" json:"life"`
}

// DefaultBucketAllocation is the 60/25/15 starting split.
func DefaultBucketAllocation() BucketAllocation {
	return BucketAllocation{
		Foundation: decimal.NewFromInt(60),
		Dream:      decimal.NewFromInt(25),
		Life:       decimal.NewFromInt(15),
	}
}

// Sum returns foundation + dream + life.
func (b BucketAllocation) Sum() decimal.Decimal {
	return b.Foundation.Add(b.Dream).Add(b.Life)
}

// Get returns the percentage for the named bucket.
func (b BucketAllocation) Get(name BucketName) decimal.Decimal {
	switch name {
	case BucketFoundation:
		return b.Foundation
	case BucketDream:
		return b.Dream
	case BucketLife:
		return b.Life
	}
	return decimal.Zero
}

// With returns a copy with the named bucket set to value.
func (b BucketAllocation) With(name BucketName, value decimal.Decimal) BucketAllocation {
	switch name {
	case BucketFoundation:
		b.Foundation = value
	case BucketDream:
		b.Dream = value
	case BucketLife:
		b.Life = value
	}
	return b
}

// MonthlyAmounts converts the percentage split into dollar amounts of the
// given disposable income, rounded to whole dollars.
func (b BucketAllocation) MonthlyAmounts(disposable decimal.Decimal) BucketAmounts {
	hundred := decimal.NewFromInt(100)
	return BucketAmounts{
		Foundation: b.Foundation.Mul(disposable).Div(hundred).Round(0),
		Dream:      b.Dream.Mul(disposable).Div(hundred).Round(0),
		Life:       b.Life.Mul(disposable).Div(hundred).Round(0),
	}
}

// BucketAmounts is a dollar-denominated bucket split.
type BucketAmounts struct {
	Foundation decimal.Decimal `json:"foundation"`
	Dream      decimal.Decimal `json:"dream"`
	Life       decimal.Decimal `json:"life"`
}
