package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// EquivalentKind classifies how a life equivalent frames the daily amount.
type EquivalentKind string

const (
	EquivalentDaily       EquivalentKind = "daily"
	EquivalentWeekly      EquivalentKind = "weekly"
	EquivalentMultiple    EquivalentKind = "multiple"
	EquivalentMonthly     EquivalentKind = "monthly"
	EquivalentCombination EquivalentKind = "combination"
	EquivalentComparison  EquivalentKind = "comparison"
	EquivalentNone        EquivalentKind = "none"
)

// kindRank orders equivalents of equal accuracy: daily frames read best,
// combinations worst.
func kindRank(k EquivalentKind) int {
	switch k {
	case EquivalentDaily:
		return 1
	case EquivalentWeekly:
		return 2
	case EquivalentMultiple:
		return 3
	case EquivalentMonthly:
		return 4
	case EquivalentCombination:
		return 5
	}
	return 6
}

// LifeEquivalent is one relatable framing of a daily savings amount.
type LifeEquivalent struct {
	Description string          `json:"description"`
	Kind        EquivalentKind  `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   int             `json:"frequency,omitempty"`
}

type equivalentItem struct {
	daily       float64
	description string
}

// Everyday purchase prices used to translate abstract daily amounts into
// skippable habits. Subscription items carry their per-day cost.
var lifeEquivalentItems = []equivalentItem{
	{5, "coffee"},
	{15, "lunch"},
	{0.50, "Netflix subscription"},
	{0.33, "Spotify subscription"},
	{1.67, "gym membership"},
	{60, "restaurant dinner"},
	{25, "Uber ride"},
	{12, "movie ticket"},
	{6, "bubble tea"},
	{8, "deli sandwich"},
	{4, "gallon of gas"},
	{7, "craft beer"},
	{9, "smoothie"},
	{10, "parking fee"},
	{3, "snack"},
	{3.5, "energy drink"},
	{2, "donut"},
	{4, "pizza slice"},
	{5, "ice cream"},
	{5, "magazine"},
}

// ConvertToLifeEquivalents translates a daily dollar amount into up to
// five relatable "skip this habit" framings. Candidates are drawn from
// near-exact daily matches, weekly and monthly frequencies, small
// multiples, and two-item combinations for larger amounts, then ranked
// by how closely they track the requested amount.
func ConvertToLifeEquivalents(dailyAmount decimal.Decimal) []LifeEquivalent {
	daily, _ := dailyAmount.Float64()
	if daily <= 0 {
		return []LifeEquivalent{{Description: "No savings needed", Kind: EquivalentNone, Amount: decimal.Zero}}
	}

	items := make([]equivalentItem, len(lifeEquivalentItems))
	copy(items, lifeEquivalentItems)
	sort.Slice(items, func(i, j int) bool { return items[i].daily < items[j].daily })

	var candidates []LifeEquivalent

	for _, item := range items {
		if math.Abs(item.daily-daily) < 0.50 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip one %s per day", item.description),
				Kind:        EquivalentDaily,
				Amount:      decimal.NewFromFloat(item.daily),
			})
		}
	}

	weekly := daily * 7
	for _, item := range items {
		timesPerWeek := weekly / item.daily
		if timesPerWeek < 1 || timesPerWeek > 7 {
			continue
		}
		times := int(math.Round(timesPerWeek))
		if times == 1 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip one %s per week", item.description),
				Kind:        EquivalentWeekly,
				Amount:      decimal.NewFromFloat(item.daily),
				Frequency:   1,
			})
		} else if times <= 7 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip %s %d times per week", item.description, times),
				Kind:        EquivalentWeekly,
				Amount:      decimal.NewFromFloat(item.daily * float64(times)),
				Frequency:   times,
			})
		}
	}

	monthly := daily * 30
	for _, item := range items {
		timesPerMonth := monthly / item.daily
		if timesPerMonth < 1 || timesPerMonth > 30 {
			continue
		}
		times := int(math.Round(timesPerMonth))
		if times == 1 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip one %s per month", item.description),
				Kind:        EquivalentMonthly,
				Amount:      decimal.NewFromFloat(item.daily),
				Frequency:   1,
			})
		} else if times <= 10 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip %s %d times per month", item.description, times),
				Kind:        EquivalentMonthly,
				Amount:      decimal.NewFromFloat(item.daily * float64(times)),
				Frequency:   times,
			})
		}
	}

	if daily > 20 {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				combo := items[i].daily + items[j].daily
				if math.Abs(combo-daily) < 2 {
					candidates = append(candidates, LifeEquivalent{
						Description: fmt.Sprintf("Skip one %s and one %s per day", items[i].description, items[j].description),
						Kind:        EquivalentCombination,
						Amount:      decimal.NewFromFloat(combo),
					})
				}
			}
		}
	}

	for _, item := range items {
		multiple := int(math.Round(daily / item.daily))
		if multiple >= 2 && multiple <= 5 && math.Abs(item.daily*float64(multiple)-daily) < 1 {
			candidates = append(candidates, LifeEquivalent{
				Description: fmt.Sprintf("Skip %d %ss per day", multiple, item.description),
				Kind:        EquivalentMultiple,
				Amount:      decimal.NewFromFloat(item.daily * float64(multiple)),
				Frequency:   multiple,
			})
		}
	}

	unique := dedupeEquivalents(candidates)
	sort.SliceStable(unique, func(i, j int) bool {
		ai, _ := unique[i].Amount.Float64()
		aj, _ := unique[j].Amount.Float64()
		accI := math.Abs(ai - daily)
		accJ := math.Abs(aj - daily)
		if accI != accJ {
			return accI < accJ
		}
		return kindRank(unique[i].Kind) < kindRank(unique[j].Kind)
	})
	if len(unique) > 5 {
		unique = unique[:5]
	}

	if len(unique) == 0 {
		return []LifeEquivalent{fallbackComparison(items, daily)}
	}
	return unique
}

func dedupeEquivalents(in []LifeEquivalent) []LifeEquivalent {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, e := range in {
		if seen[e.Description] {
			continue
		}
		seen[e.Description] = true
		out = append(out, e)
	}
	return out
}

func fallbackComparison(items []equivalentItem, daily float64) LifeEquivalent {
	closest := items[0]
	for _, item := range items[1:] {
		if math.Abs(item.daily-daily) < math.Abs(closest.daily-daily) {
			closest = item
		}
	}
	if daily < closest.daily {
		return LifeEquivalent{
			Description: fmt.Sprintf("Less than one %s per day", closest.description),
			Kind:        EquivalentComparison,
			Amount:      decimal.NewFromFloat(closest.daily),
		}
	}
	return LifeEquivalent{
		Description: fmt.Sprintf("About %.1f %ss per day", daily/closest.daily, closest.description),
		Kind:        EquivalentComparison,
		Amount:      decimal.NewFromFloat(daily),
	}
}
