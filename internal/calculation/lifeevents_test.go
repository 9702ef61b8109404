package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLifeEventType(t *testing.T) {
	for _, valid := range []string{"jobLoss", "majorExpense", "healthIssue", "promotion", "windfall"} {
		parsed, err := ParseLifeEventType(valid)
		require.NoError(t, err)
		assert.Equal(t, LifeEventType(valid), parsed)
	}

	_, err := ParseLifeEventType("alienInvasion")
	var unknownErr *UnknownLifeEventError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "alienInvasion", unknownErr.Type)
}

func TestSeededSourceReproducible(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNormalRandomDistribution(t *testing.T) {
	src := NewSeededSource(7)

	n := 20000
	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		v := normalRandom(src, 10, 2)
		require.False(t, math.IsNaN(v))
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	stdDev := math.Sqrt(sumSq/float64(n) - mean*mean)

	assert.InDelta(t, 10, mean, 0.1)
	assert.InDelta(t, 2, stdDev, 0.1)
}

func TestUniformBetweenBounds(t *testing.T) {
	src := NewSeededSource(3)
	for i := 0; i < 1000; i++ {
		v := uniformBetween(src, 2000, 25000)
		assert.GreaterOrEqual(t, v, 2000.0)
		assert.Less(t, v, 25000.0)
	}
}

func TestDrawLifeEventsDeterministic(t *testing.T) {
	a := NewSeededSource(99)
	b := NewSeededSource(99)

	for year := 0; year < 50; year++ {
		eventsA := drawLifeEvents(a, year)
		eventsB := drawLifeEvents(b, year)
		assert.Equal(t, eventsA, eventsB, "year %d", year)
	}
}

func TestDrawLifeEventsImpactBounds(t *testing.T) {
	src := NewSeededSource(123)

	for year := 0; year < 500; year++ {
		for _, event := range drawLifeEvents(src, year) {
			switch event.Type {
			case EventJobLoss:
				// Between 1 and 12 months of lost income.
				assert.GreaterOrEqual(t, event.IncomeImpact, -1.0)
				assert.LessOrEqual(t, event.IncomeImpact, -1.0/12)
				assert.Equal(t, "career", event.Category)
			case EventMajorExpense:
				assert.GreaterOrEqual(t, event.OneTimeCost, 2000.0)
				assert.Less(t, event.OneTimeCost, 25000.0)
			case EventHealthIssue:
				assert.GreaterOrEqual(t, event.OneTimeCost, 3000.0)
				assert.Less(t, event.OneTimeCost, 50000.0)
			case EventPromotion:
				assert.GreaterOrEqual(t, event.IncomeImpact, 0.05)
				assert.Less(t, event.IncomeImpact, 0.30)
			case EventWindfall:
				// Windfalls are negative one-time costs, i.e. gains.
				assert.LessOrEqual(t, event.OneTimeCost, -5000.0)
				assert.Greater(t, event.OneTimeCost, -75000.0)
			}
			assert.Equal(t, year+1, event.Year)
			assert.NotEmpty(t, event.Name)
		}
	}
}
