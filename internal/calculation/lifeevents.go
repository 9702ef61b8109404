package calculation

import (
	"math"
	"math/rand"
)

// RandomSource supplies uniform draws for the projection engine. A
// *rand.Rand satisfies it, which keeps simulations reproducible when
// the caller seeds one explicitly.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible random source.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// normalRandom draws from a normal distribution using the Box-Muller
// transform.
func normalRandom(src RandomSource, mean, stdDev float64) float64 {
	var u, v float64
	for u == 0 {
		u = src.Float64()
	}
	for v == 0 {
		v = src.Float64()
	}
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*stdDev + mean
}

// uniformBetween draws uniformly from [min, max).
func uniformBetween(src RandomSource, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// LifeEventType identifies one of the modeled random life events.
type LifeEventType string

const (
	EventJobLoss      LifeEventType = "jobLoss"
	EventMajorExpense LifeEventType = "majorExpense"
	EventHealthIssue  LifeEventType = "healthIssue"
	EventPromotion    LifeEventType = "promotion"
	EventWindfall     LifeEventType = "windfall"
)

// ParseLifeEventType validates an event discriminator.
func ParseLifeEventType(s string) (LifeEventType, error) {
	switch LifeEventType(s) {
	case EventJobLoss, EventMajorExpense, EventHealthIssue, EventPromotion, EventWindfall:
		return LifeEventType(s), nil
	}
	return "", &UnknownLifeEventError{Type: s}
}

// LifeEvent is one random event applied during a simulation year.
// IncomeImpact is a multiplier delta on annual income for the year of
// the event (promotions persist), ExpenseImpact likewise on expenses,
// and OneTimeCost is deducted from assets (negative values are gains).
type LifeEvent struct {
	Type          LifeEventType `json:"type"`
	Year          int           `json:"year"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	IncomeImpact  float64       `json:"incomeImpact,omitempty"`
	ExpenseImpact float64       `json:"expenseImpact,omitempty"`
	OneTimeCost   float64       `json:"oneTimeCost,omitempty"`
	Severity      string        `json:"severity"`
	Category      string        `json:"category"`
}

// lifeEventOdds holds the annual probability and impact bounds for each
// event type.
type lifeEventOdds struct {
	annualProbability float64
	durationMonths    float64 // job loss only
	recoveryFactor    float64 // job loss only
	minAmount         float64
	maxAmount         float64
	minBoost          float64
	maxBoost          float64
}

var lifeEventTable = map[LifeEventType]lifeEventOdds{
	EventJobLoss:      {annualProbability: 0.03, durationMonths: 6, recoveryFactor: 0.95},
	EventMajorExpense: {annualProbability: 0.15, minAmount: 2000, maxAmount: 25000},
	EventHealthIssue:  {annualProbability: 0.08, minAmount: 3000, maxAmount: 50000},
	EventPromotion:    {annualProbability: 0.12, minBoost: 0.05, maxBoost: 0.30},
	EventWindfall:     {annualProbability: 0.05, minAmount: 5000, maxAmount: 75000},
}

// eventOrder keeps per-year draws deterministic under a fixed seed.
var eventOrder = []LifeEventType{
	EventJobLoss, EventMajorExpense, EventHealthIssue, EventPromotion, EventWindfall,
}

// drawLifeEvents runs one Bernoulli trial per event type for a
// simulation year and materializes the impacts of those that occur.
func drawLifeEvents(src RandomSource, year int) []LifeEvent {
	var events []LifeEvent
	for _, eventType := range eventOrder {
		odds := lifeEventTable[eventType]
		if src.Float64() >= odds.annualProbability {
			continue
		}
		events = append(events, materializeEvent(src, eventType, odds, year))
	}
	return events
}

func materializeEvent(src RandomSource, eventType LifeEventType, odds lifeEventOdds, year int) LifeEvent {
	event := LifeEvent{Type: eventType, Year: year + 1}
	switch eventType {
	case EventJobLoss:
		months := math.Floor(normalRandom(src, odds.durationMonths, 2))
		months = math.Max(1, math.Min(12, months))
		event.Name = "Job Loss"
		event.Description = "Temporary unemployment period"
		event.IncomeImpact = -months / 12
		event.Severity = "high"
		event.Category = "career"
	case EventMajorExpense:
		event.Name = "Major Unexpected Expense"
		event.Description = "Large unplanned one-time cost"
		event.OneTimeCost = uniformBetween(src, odds.minAmount, odds.maxAmount)
		event.Severity = "medium"
		event.Category = "expense"
	case EventHealthIssue:
		event.Name = "Major Medical Expense"
		event.Description = "Unexpected health-related costs"
		event.OneTimeCost = uniformBetween(src, odds.minAmount, odds.maxAmount)
		event.Severity = "medium"
		event.Category = "health"
	case EventPromotion:
		event.Name = "Job Promotion"
		event.Description = "Career advancement with salary increase"
		event.IncomeImpact = uniformBetween(src, odds.minBoost, odds.maxBoost)
		event.Severity = "positive"
		event.Category = "career"
	case EventWindfall:
		event.Name = "Financial Windfall"
		event.Description = "Inheritance, bonus, or other lump sum"
		event.OneTimeCost = -uniformBetween(src, odds.minAmount, odds.maxAmount)
		event.Severity = "positive"
		event.Category = "windfall"
	}
	return event
}
