package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToLifeEquivalents(t *testing.T) {
	equivalents := ConvertToLifeEquivalents(decimal.NewFromInt(5))
	require.NotEmpty(t, equivalents)
	assert.LessOrEqual(t, len(equivalents), 5)

	// A $5 daily amount matches the coffee habit exactly.
	best := equivalents[0]
	assert.Equal(t, EquivalentDaily, best.Kind)
	assert.Contains(t, best.Description, "per day")
	assert.True(t, best.Amount.Equal(decimal.NewFromInt(5)))
}

func TestConvertToLifeEquivalentsSortedByAccuracy(t *testing.T) {
	daily := decimal.NewFromFloat(13.50)
	equivalents := ConvertToLifeEquivalents(daily)
	require.NotEmpty(t, equivalents)

	target, _ := daily.Float64()
	prevErr := -1.0
	for _, e := range equivalents {
		amount, _ := e.Amount.Float64()
		err := amount - target
		if err < 0 {
			err = -err
		}
		if prevErr >= 0 {
			assert.GreaterOrEqual(t, err, prevErr, "equivalents must be ordered by accuracy")
		}
		prevErr = err
	}
}

func TestConvertToLifeEquivalentsZero(t *testing.T) {
	equivalents := ConvertToLifeEquivalents(decimal.Zero)
	require.Len(t, equivalents, 1)
	assert.Equal(t, EquivalentNone, equivalents[0].Kind)

	negative := ConvertToLifeEquivalents(decimal.NewFromInt(-10))
	require.Len(t, negative, 1)
	assert.Equal(t, EquivalentNone, negative[0].Kind)
}

func TestConvertToLifeEquivalentsLargeAmount(t *testing.T) {
	// Very large dailies still produce at least a comparison framing.
	equivalents := ConvertToLifeEquivalents(decimal.NewFromInt(10000))
	require.NotEmpty(t, equivalents)
	for _, e := range equivalents {
		assert.NotEmpty(t, e.Description)
	}
}

func TestConvertToLifeEquivalentsNoDuplicates(t *testing.T) {
	equivalents := ConvertToLifeEquivalents(decimal.NewFromInt(30))
	seen := make(map[string]bool)
	for _, e := range equivalents {
		assert.False(t, seen[e.Description], "duplicate: %s", e.Description)
		seen[e.Description] = true
	}
}
