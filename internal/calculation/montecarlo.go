package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/domain"
)

// AssetClassParams describes the return distribution of one asset class.
type AssetClassParams struct {
	MeanReturn float64 `yaml:"mean_return" json:"meanReturn"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
	MinReturn  float64 `yaml:"min_return" json:"minReturn"`
	MaxReturn  float64 `yaml:"max_return" json:"maxReturn"`
}

// MarketAssumptions bundles the distributions behind every simulation.
type MarketAssumptions struct {
	Stocks    AssetClassParams `yaml:"stocks" json:"stocks"`
	Bonds     AssetClassParams `yaml:"bonds" json:"bonds"`
	Cash      AssetClassParams `yaml:"cash" json:"cash"`
	Inflation AssetClassParams `yaml:"inflation" json:"inflation"`
}

// DefaultMarketAssumptions uses conservative historical averages.
func DefaultMarketAssumptions() MarketAssumptions {
	return MarketAssumptions{
		Stocks:    AssetClassParams{MeanReturn: 0.07, Volatility: 0.15, MinReturn: -0.35, MaxReturn: 0.30},
		Bonds:     AssetClassParams{MeanReturn: 0.04, Volatility: 0.05, MinReturn: -0.08, MaxReturn: 0.12},
		Cash:      AssetClassParams{MeanReturn: 0.02, Volatility: 0.005, MinReturn: 0.001, MaxReturn: 0.045},
		Inflation: AssetClassParams{MeanReturn: 0.03, Volatility: 0.015, MinReturn: -0.02, MaxReturn: 0.08},
	}
}

// portfolioReturnBound caps any single year's blended return.
const portfolioReturnBound = 0.50

// ProjectionOptions configure a someday projection run.
type ProjectionOptions struct {
	Simulations       int   `yaml:"simulations" json:"simulations"`
	YearsToProject    int   `yaml:"years_to_project" json:"yearsToProject"`
	IncludeLifeEvents bool  `yaml:"include_life_events" json:"includeLifeEvents"`
	Seed              int64 `yaml:"seed" json:"seed"`
}

// DefaultProjectionOptions runs 10,000 simulations with life events.
func DefaultProjectionOptions() ProjectionOptions {
	return ProjectionOptions{
		Simulations:       10000,
		IncludeLifeEvents: true,
		Seed:              time.Now().UnixNano(),
	}
}

// YearSnapshot is one year of a single simulation path.
type YearSnapshot struct {
	Year         int         `json:"year"`
	Assets       float64     `json:"assets"`
	Income       float64     `json:"income"`
	Expenses     float64     `json:"expenses"`
	Savings      float64     `json:"savings"`
	MarketReturn float64     `json:"marketReturn"`
	Inflation    float64     `json:"inflation"`
	Events       []LifeEvent `json:"events,omitempty"`
}

// SimulationPath is the outcome of one Monte Carlo run.
type SimulationPath struct {
	Success       bool           `json:"success"`
	FinalAssets   float64        `json:"finalAssets"`
	SuccessMargin float64        `json:"successMargin"`
	TotalReturn   float64        `json:"totalReturn"`
	Yearly        []YearSnapshot `json:"yearlyResults"`
	LifeEvents    []LifeEvent    `json:"lifeEvents"`
}

// ConfidenceLevel classifies a success rate for presentation.
type ConfidenceLevel struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// FailureAnalysis summarizes what went wrong in failing runs.
type FailureAnalysis struct {
	CommonCauses     []string        `json:"commonCauses"`
	AverageShortfall decimal.Decimal `json:"averageShortfall"`
	EarlyFailureRate decimal.Decimal `json:"earlyFailureRate"`
	LifeEventImpact  decimal.Decimal `json:"lifeEventImpact"`
}

// ProjectionAverages are mean outcomes across all runs.
type ProjectionAverages struct {
	FinalAssets             decimal.Decimal `json:"finalAssets"`
	TotalReturn             decimal.Decimal `json:"totalReturn"`
	LifeEventsPerSimulation decimal.Decimal `json:"lifeEventsPerSimulation"`
}

// ProjectionAnalysis aggregates the simulation distribution.
type ProjectionAnalysis struct {
	SuccessRate     decimal.Decimal            `json:"successRate"`
	Percentiles     map[string]decimal.Decimal `json:"percentiles"`
	Averages        ProjectionAverages         `json:"averages"`
	FailureAnalysis FailureAnalysis            `json:"failureAnalysis"`
	Confidence      ConfidenceLevel            `json:"confidenceLevel"`
	RiskFactors     []string                   `json:"riskFactors"`
}

// ScenarioOutcomes are the numbers behind one named scenario.
type ScenarioOutcomes struct {
	FinalAssets         decimal.Decimal `json:"finalAssets"`
	SuccessProbability  decimal.Decimal `json:"successProbability"`
	YearsToGoal         int             `json:"yearsToGoal"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	TotalContributions  decimal.Decimal `json:"totalContributions"`
	InvestmentGrowth    decimal.Decimal `json:"investmentGrowth"`
}

// Scenario is one of the three named outcomes presented to the user.
type Scenario struct {
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Assumptions map[string]string `json:"assumptions"`
	Outcomes    ScenarioOutcomes  `json:"outcomes"`
	KeyInsights []string          `json:"keyInsights"`
	ActionItems []string          `json:"actionItems"`
}

// ScenarioSet groups the optimistic, realistic, and pessimistic views.
type ScenarioSet struct {
	Optimistic  Scenario `json:"optimistic"`
	Realistic   Scenario `json:"realistic"`
	Pessimistic Scenario `json:"pessimistic"`
}

// ImprovementSuggestion is one threshold-triggered plan adjustment.
type ImprovementSuggestion struct {
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Actions     []string `json:"actions"`
	Timeframe   string   `json:"timeframe"`
	Difficulty  string   `json:"difficulty"`
}

// ProjectionData echoes the inputs of a run.
type ProjectionData struct {
	Simulations    int             `json:"simulations"`
	YearsProjected int             `json:"yearsProjected"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	CurrentAmount  decimal.Decimal `json:"currentAmount"`
}

// ProjectionResult is the complete output of a someday projection.
type ProjectionResult struct {
	ConfidenceLevel decimal.Decimal         `json:"confidenceLevel"`
	Scenarios       ScenarioSet             `json:"scenarios"`
	Improvements    []ImprovementSuggestion `json:"improvements"`
	Analysis        ProjectionAnalysis      `json:"analysis"`
	ProjectionData  ProjectionData          `json:"projectionData"`
	CalculatedAt    string                  `json:"calculatedAt"`
}

// ProjectionEngine runs Monte Carlo someday projections.
type ProjectionEngine struct {
	assumptions MarketAssumptions
	logger      Logger
}

// NewProjectionEngine creates an engine with default market assumptions.
func NewProjectionEngine(logger Logger) *ProjectionEngine {
	return NewProjectionEngineWithAssumptions(DefaultMarketAssumptions(), logger)
}

func NewProjectionEngineWithAssumptions(assumptions MarketAssumptions, logger Logger) *ProjectionEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ProjectionEngine{assumptions: assumptions, logger: logger}
}

// RunSomedayProjection runs the full Monte Carlo projection for the
// profile and goals. Simulations are fanned out across workers, each
// with its own seeded random source so a fixed Seed reproduces the run.
func (pe *ProjectionEngine) RunSomedayProjection(ctx context.Context, profile domain.FinancialProfile, goals domain.Goals, opts ProjectionOptions) (*ProjectionResult, error) {
	if opts.Simulations <= 0 {
		opts.Simulations = 10000
	}
	years := opts.YearsToProject
	if years <= 0 {
		years = goals.YearsToSomeday
	}
	if years <= 0 {
		years = 30
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	pe.logger.Infof("running %d Monte Carlo simulations over %d years", opts.Simulations, years)

	paths, err := pe.runSimulations(ctx, profile, goals, years, opts)
	if err != nil {
		return nil, err
	}

	analysis := pe.analyzeResults(paths, goals)
	result := &ProjectionResult{
		ConfidenceLevel: analysis.SuccessRate,
		Scenarios: ScenarioSet{
			Optimistic:  buildScenario(paths, "optimistic", profile, goals, years),
			Realistic:   buildScenario(paths, "realistic", profile, goals, years),
			Pessimistic: buildScenario(paths, "pessimistic", profile, goals, years),
		},
		Improvements: pe.improvementSuggestions(analysis, profile),
		Analysis:     analysis,
		ProjectionData: ProjectionData{
			Simulations:    opts.Simulations,
			YearsProjected: years,
			TargetAmount:   goals.TotalRequired,
			CurrentAmount:  profile.CurrentAssets,
		},
		CalculatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return result, nil
}

func (pe *ProjectionEngine) runSimulations(ctx context.Context, profile domain.FinancialProfile, goals domain.Goals, years int, opts ProjectionOptions) ([]SimulationPath, error) {
	workers := runtime.NumCPU()
	if workers > opts.Simulations {
		workers = opts.Simulations
	}

	pathChan := make(chan SimulationPath, opts.Simulations)
	errChan := make(chan error, workers)
	var wg sync.WaitGroup

	perWorker := opts.Simulations / workers
	extra := opts.Simulations % workers

	for w := 0; w < workers; w++ {
		count := perWorker
		if w < extra {
			count++
		}
		wg.Add(1)
		go func(workerID, count int) {
			defer wg.Done()
			src := rand.New(rand.NewSource(opts.Seed + int64(workerID)))
			for i := 0; i < count; i++ {
				select {
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				default:
				}
				pathChan <- pe.runSinglePath(src, profile, goals, years, opts.IncludeLifeEvents)
			}
		}(w, count)
	}

	go func() {
		wg.Wait()
		close(pathChan)
		close(errChan)
	}()

	paths := make([]SimulationPath, 0, opts.Simulations)
	for path := range pathChan {
		paths = append(paths, path)
	}
	if err := <-errChan; err != nil {
		return nil, &PlanError{Operation: "someday projection", Message: "simulation canceled", Cause: err}
	}
	return paths, nil
}

// runSinglePath simulates one possible future year by year.
func (pe *ProjectionEngine) runSinglePath(src RandomSource, profile domain.FinancialProfile, goals domain.Goals, years int, includeLifeEvents bool) SimulationPath {
	assets, _ := profile.CurrentAssets.Float64()
	monthlyIncome, _ := profile.MonthlyIncome.Float64()
	monthlyExpenses, _ := profile.MonthlyExpenses.Float64()
	target, _ := goals.TotalRequired.Float64()
	startingAssets := assets

	allocation := profile.EffectiveAllocation()
	stocksRaw, _ := allocation.Stocks.Float64()
	bondsRaw, _ := allocation.Bonds.Float64()
	cashRaw, _ := allocation.Cash.Float64()
	stocksPct, bondsPct, cashPct := stocksRaw/100, bondsRaw/100, cashRaw/100

	yearly := make([]YearSnapshot, 0, years)
	var allEvents []LifeEvent

	for year := 0; year < years; year++ {
		portfolioReturn := pe.drawPortfolioReturn(src, stocksPct, bondsPct, cashPct)
		inflation := pe.drawInflation(src)

		var yearEvents []LifeEvent
		recoveredIncome := 0.0
		if includeLifeEvents {
			yearEvents = drawLifeEvents(src, year)
			allEvents = append(allEvents, yearEvents...)
			for _, event := range yearEvents {
				switch {
				case event.Type == EventJobLoss:
					// Income comes back at the recovery factor once
					// the unemployment gap ends.
					recoveredIncome = monthlyIncome * lifeEventTable[EventJobLoss].recoveryFactor
					monthlyIncome *= 1 + event.IncomeImpact
				case event.IncomeImpact != 0:
					monthlyIncome *= 1 + event.IncomeImpact
				}
				if event.ExpenseImpact != 0 {
					monthlyExpenses *= 1 + event.ExpenseImpact
				}
				if event.OneTimeCost != 0 {
					assets -= event.OneTimeCost
				}
			}
		}

		monthlyExpenses *= 1 + inflation
		monthlySavings := math.Max(0, monthlyIncome-monthlyExpenses)
		assets += monthlySavings * 12
		assets *= 1 + portfolioReturn
		assets = math.Max(0, assets)

		yearly = append(yearly, YearSnapshot{
			Year:         year + 1,
			Assets:       assets,
			Income:       monthlyIncome * 12,
			Expenses:     monthlyExpenses * 12,
			Savings:      monthlySavings * 12,
			MarketReturn: portfolioReturn,
			Inflation:    inflation,
			Events:       yearEvents,
		})

		if recoveredIncome > 0 {
			monthlyIncome = recoveredIncome
		}
	}

	success := assets >= target
	var margin float64
	if target > 0 {
		margin = (assets - target) / target
	}
	var totalReturn float64
	if startingAssets > 0 {
		totalReturn = (assets - startingAssets) / startingAssets
	}
	return SimulationPath{
		Success:       success,
		FinalAssets:   assets,
		SuccessMargin: margin,
		TotalReturn:   totalReturn,
		Yearly:        yearly,
		LifeEvents:    allEvents,
	}
}

func (pe *ProjectionEngine) drawPortfolioReturn(src RandomSource, stocksPct, bondsPct, cashPct float64) float64 {
	stocks := clampFloat(normalRandom(src, pe.assumptions.Stocks.MeanReturn, pe.assumptions.Stocks.Volatility), pe.assumptions.Stocks.MinReturn, pe.assumptions.Stocks.MaxReturn)
	bonds := clampFloat(normalRandom(src, pe.assumptions.Bonds.MeanReturn, pe.assumptions.Bonds.Volatility), pe.assumptions.Bonds.MinReturn, pe.assumptions.Bonds.MaxReturn)
	cash := clampFloat(normalRandom(src, pe.assumptions.Cash.MeanReturn, pe.assumptions.Cash.Volatility), pe.assumptions.Cash.MinReturn, pe.assumptions.Cash.MaxReturn)

	portfolio := stocks*stocksPct + bonds*bondsPct + cash*cashPct
	return clampFloat(portfolio, -portfolioReturnBound, portfolioReturnBound)
}

func (pe *ProjectionEngine) drawInflation(src RandomSource) float64 {
	inflation := normalRandom(src, pe.assumptions.Inflation.MeanReturn, pe.assumptions.Inflation.Volatility)
	return clampFloat(inflation, pe.assumptions.Inflation.MinReturn, pe.assumptions.Inflation.MaxReturn)
}

func (pe *ProjectionEngine) analyzeResults(paths []SimulationPath, goals domain.Goals) ProjectionAnalysis {
	successful := 0
	finalAssets := make([]decimal.Decimal, len(paths))
	sumFinal, sumReturn, sumEvents := 0.0, 0.0, 0.0

	for i, path := range paths {
		if path.Success {
			successful++
		}
		finalAssets[i] = decimal.NewFromFloat(path.FinalAssets)
		sumFinal += path.FinalAssets
		sumReturn += path.TotalReturn
		sumEvents += float64(len(path.LifeEvents))
	}

	n := float64(len(paths))
	successRate := decimal.NewFromFloat(float64(successful) / n * 100).Round(2)

	var failed []SimulationPath
	for _, path := range paths {
		if !path.Success {
			failed = append(failed, path)
		}
	}

	return ProjectionAnalysis{
		SuccessRate: successRate,
		Percentiles: assetPercentiles(finalAssets),
		Averages: ProjectionAverages{
			FinalAssets:             decimal.NewFromFloat(sumFinal / n).Round(0),
			TotalReturn:             decimal.NewFromFloat(sumReturn / n).Round(4),
			LifeEventsPerSimulation: decimal.NewFromFloat(sumEvents / n).Round(2),
		},
		FailureAnalysis: analyzeFailurePatterns(failed),
		Confidence:      confidenceLevel(successRate),
		RiskFactors:     identifyRiskFactors(paths),
	}
}

// assetPercentiles returns the p10 through p90 markers of the final
// asset distribution with linear interpolation between samples.
func assetPercentiles(values []decimal.Decimal) map[string]decimal.Decimal {
	if len(values) == 0 {
		return map[string]decimal.Decimal{
			"p10": decimal.Zero, "p25": decimal.Zero, "p50": decimal.Zero,
			"p75": decimal.Zero, "p90": decimal.Zero,
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	return map[string]decimal.Decimal{
		"p10": percentileOf(values, 0.10),
		"p25": percentileOf(values, 0.25),
		"p50": percentileOf(values, 0.50),
		"p75": percentileOf(values, 0.75),
		"p90": percentileOf(values, 0.90),
	}
}

func percentileOf(sorted []decimal.Decimal, percentile float64) decimal.Decimal {
	index := percentile * float64(len(sorted)-1)
	if index == float64(int(index)) {
		return sorted[int(index)].Round(0)
	}
	lower := sorted[int(index)]
	upper := sorted[int(index)+1]
	fraction := decimal.NewFromFloat(index - float64(int(index)))
	return lower.Add(upper.Sub(lower).Mul(fraction)).Round(0)
}

func analyzeFailurePatterns(failed []SimulationPath) FailureAnalysis {
	if len(failed) == 0 {
		return FailureAnalysis{CommonCauses: []string{}}
	}

	var totalShortfall float64
	earlyFailures, lifeEventFailures, crashFailures := 0, 0, 0

	for _, path := range failed {
		totalShortfall += math.Abs(path.SuccessMargin)

		if len(path.Yearly) > 0 {
			firstYearAssets := path.Yearly[0].Assets
			limit := len(path.Yearly)
			if limit > 10 {
				limit = 10
			}
			for _, snapshot := range path.Yearly[:limit] {
				if snapshot.Assets < firstYearAssets*0.5 {
					earlyFailures++
					break
				}
			}
		}
		if len(path.LifeEvents) > 3 {
			lifeEventFailures++
		}
		for _, snapshot := range path.Yearly {
			if snapshot.MarketReturn < -0.20 {
				crashFailures++
				break
			}
		}
	}

	n := float64(len(failed))
	causes := []string{}
	if float64(earlyFailures) > n*0.3 {
		causes = append(causes, "Early market volatility")
	}
	if float64(lifeEventFailures) > n*0.4 {
		causes = append(causes, "Multiple life events")
	}
	if float64(crashFailures) > n*0.5 {
		causes = append(causes, "Market downturns")
	}

	return FailureAnalysis{
		CommonCauses:     causes,
		AverageShortfall: decimal.NewFromFloat(totalShortfall / n).Round(4),
		EarlyFailureRate: decimal.NewFromFloat(float64(earlyFailures) / n * 100).Round(2),
		LifeEventImpact:  decimal.NewFromFloat(float64(lifeEventFailures) / n * 100).Round(2),
	}
}

func confidenceLevel(successRate decimal.Decimal) ConfidenceLevel {
	rate, _ := successRate.Float64()
	switch {
	case rate >= 85:
		return ConfidenceLevel{Level: "very_high", Description: "Very High Confidence"}
	case rate >= 75:
		return ConfidenceLevel{Level: "high", Description: "High Confidence"}
	case rate >= 65:
		return ConfidenceLevel{Level: "good", Description: "Good Confidence"}
	case rate >= 50:
		return ConfidenceLevel{Level: "moderate", Description: "Moderate Confidence"}
	default:
		return ConfidenceLevel{Level: "needs_improvement", Description: "Needs Improvement"}
	}
}

func identifyRiskFactors(paths []SimulationPath) []string {
	factors := []string{}
	n := float64(len(paths))
	if n == 0 {
		return factors
	}

	volatile, inflated, eventful := 0, 0, 0
	for _, path := range paths {
		for _, snapshot := range path.Yearly {
			if math.Abs(snapshot.MarketReturn) > 0.20 {
				volatile++
				break
			}
		}
		for _, snapshot := range path.Yearly {
			if snapshot.Inflation > 0.05 {
				inflated++
				break
			}
		}
		if len(path.LifeEvents) > 2 {
			eventful++
		}
	}

	if float64(volatile)/n > 0.3 {
		factors = append(factors, "market_volatility")
	}
	if float64(inflated)/n > 0.2 {
		factors = append(factors, "inflation_risk")
	}
	if float64(eventful)/n > 0.4 {
		factors = append(factors, "life_events")
	}
	return factors
}

func buildScenario(paths []SimulationPath, scenarioType string, profile domain.FinancialProfile, goals domain.Goals, years int) Scenario {
	var percentile float64
	var description string
	var assumptions map[string]string
	var successProbability int64

	switch scenarioType {
	case "optimistic":
		percentile = 0.75
		description = "Things go better than expected"
		successProbability = 85
		assumptions = map[string]string{
			"marketReturns": "Above average market performance (8-12% annually)",
			"inflation":     "Low inflation environment (2-3% annually)",
			"lifeEvents":    "Minimal unexpected expenses, possible career growth",
			"economy":       "Stable economic growth with few recessions",
		}
	case "pessimistic":
		percentile = 0.25
		description = "Challenging but manageable circumstances"
		successProbability = 45
		assumptions = map[string]string{
			"marketReturns": "Below average performance (4-7% annually)",
			"inflation":     "Higher inflation periods (4-6% annually)",
			"lifeEvents":    "More frequent unexpected expenses",
			"economy":       "Multiple recessions and slower growth periods",
		}
	default:
		percentile = 0.50
		description = "Most likely outcome based on historical patterns"
		successProbability = 65
		assumptions = map[string]string{
			"marketReturns": "Historical average returns (7-10% annually)",
			"inflation":     "Normal inflation levels (3-4% annually)",
			"lifeEvents":    "Typical life events (job changes, health expenses)",
			"economy":       "Normal economic cycles with occasional downturns",
		}
	}

	sorted := make([]SimulationPath, len(paths))
	copy(sorted, paths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FinalAssets < sorted[j].FinalAssets })
	samplePath := sorted[int(float64(len(sorted))*percentile)]

	monthlySavings := profile.MonthlySavings()
	totalContributions := monthlySavings.Mul(decimal.NewFromInt(int64(years * 12)))
	finalAssets := decimal.NewFromFloat(samplePath.FinalAssets).Round(0)

	target, _ := goals.TotalRequired.Float64()
	yearsToGoal := years
	for i, snapshot := range samplePath.Yearly {
		if snapshot.Assets >= target {
			yearsToGoal = i + 1
			break
		}
	}

	return Scenario{
		Type:        scenarioType,
		Description: description,
		Assumptions: assumptions,
		Outcomes: ScenarioOutcomes{
			FinalAssets:         finalAssets,
			SuccessProbability:  decimal.NewFromInt(successProbability),
			YearsToGoal:         yearsToGoal,
			MonthlyContribution: monthlySavings.Round(0),
			TotalContributions:  totalContributions.Round(0),
			InvestmentGrowth:    finalAssets.Sub(profile.CurrentAssets.Add(totalContributions)).Round(0),
		},
		KeyInsights: scenarioInsights(scenarioType, yearsToGoal, years),
		ActionItems: scenarioActions(scenarioType),
	}
}

func scenarioInsights(scenarioType string, yearsToGoal, plannedYears int) []string {
	switch scenarioType {
	case "optimistic":
		insights := []string{
			"Market conditions favor long-term investors",
			"Career growth opportunities accelerate progress",
			"Compound growth works powerfully in your favor",
		}
		if yearsToGoal < plannedYears {
			insights = append(insights, fmt.Sprintf("Could reach goal %d years early", plannedYears-yearsToGoal))
		}
		return insights
	case "pessimistic":
		return []string{
			"Even in challenging times, progress continues",
			"Multiple market downturns are survivable",
			"Emergency fund provides crucial protection",
			"Patience and persistence pay off long-term",
		}
	default:
		return []string{
			"Historical patterns suggest this is most likely",
			"Normal market cycles are factored in",
			"Typical life events are manageable",
			"Steady progress toward your someday life",
		}
	}
}

func scenarioActions(scenarioType string) []string {
	switch scenarioType {
	case "optimistic":
		return []string{
			"Stay the course with current strategy",
			"Consider increasing savings if income grows",
			"Rebalance portfolio to maintain target allocation",
			"Prepare for potential early achievement",
		}
	case "pessimistic":
		return []string{
			"Consider increasing monthly savings by 10-20%",
			"Build larger emergency fund (8-12 months expenses)",
			"Diversify income sources when possible",
			"Focus on reducing unnecessary expenses",
		}
	default:
		return []string{
			"Maintain consistent monthly contributions",
			"Review progress annually and adjust as needed",
			"Keep emergency fund well-funded",
			"Stay disciplined during market volatility",
		}
	}
}

func (pe *ProjectionEngine) improvementSuggestions(analysis ProjectionAnalysis, profile domain.FinancialProfile) []ImprovementSuggestion {
	var suggestions []ImprovementSuggestion
	rate, _ := analysis.SuccessRate.Float64()
	monthlySavings := profile.MonthlySavings()

	if rate < 70 {
		boost := monthlySavings.Mul(decimal.NewFromFloat(0.2)).Ceil()
		suggestions = append(suggestions, ImprovementSuggestion{
			Category:    "savings",
			Priority:    PriorityHigh,
			Title:       "Increase Monthly Savings",
			Description: "Boost your confidence level by saving more each month",
			Impact:      "Could improve success rate by 15-25%",
			Actions: []string{
				fmt.Sprintf("Increase monthly savings by $%s", boost),
				"Automate savings to make it effortless",
				"Review and reduce non-essential expenses",
				"Consider a side income stream",
			},
			Timeframe:  "1-3 months to implement",
			Difficulty: "moderate",
		})
	}
	if rate < 60 {
		suggestions = append(suggestions, ImprovementSuggestion{
			Category:    "timeline",
			Priority:    PriorityMedium,
			Title:       "Extend Timeline Slightly",
			Description: "Give compound growth more time to work in your favor",
			Impact:      "Could improve success rate by 20-30%",
			Actions: []string{
				"Consider extending timeline by 2-3 years",
				"Use extra time for career growth opportunities",
				"Allow for more conservative withdrawal rates",
				"Reduce pressure on monthly savings requirements",
			},
			Timeframe:  "Immediate adjustment",
			Difficulty: "easy",
		})
	}
	for _, factor := range analysis.RiskFactors {
		if factor == "market_volatility" {
			suggestions = append(suggestions, ImprovementSuggestion{
				Category:    "risk",
				Priority:    PriorityMedium,
				Title:       "Optimize Asset Allocation",
				Description: "Balance growth potential with stability",
				Impact:      "Could reduce volatility by 10-15%",
				Actions: []string{
					"Consider age-appropriate stock/bond allocation",
					"Add international diversification",
					"Include some inflation-protected securities",
					"Rebalance portfolio annually",
				},
				Timeframe:  "1-2 months to implement",
				Difficulty: "moderate",
			})
		}
	}
	if profile.EmergencyFund.LessThan(profile.MonthlyExpenses.Mul(decimal.NewFromInt(6))) {
		target := profile.MonthlyExpenses.Mul(decimal.NewFromInt(6)).Ceil()
		suggestions = append(suggestions, ImprovementSuggestion{
			Category:    "protection",
			Priority:    PriorityHigh,
			Title:       "Build Emergency Fund",
			Description: "Protect your long-term savings from unexpected expenses",
			Impact:      "Prevents derailing your someday timeline",
			Actions: []string{
				fmt.Sprintf("Build emergency fund to $%s", target),
				"Keep emergency fund in high-yield savings",
				"Separate from investment accounts",
				"Replenish immediately after use",
			},
			Timeframe:  "6-12 months",
			Difficulty: "moderate",
		})
	}
	suggestions = append(suggestions, ImprovementSuggestion{
		Category:    "income",
		Priority:    PriorityMedium,
		Title:       "Optimize Income Growth",
		Description: "Accelerate progress through strategic career moves",
		Impact:      "Could improve timeline by 3-5 years",
		Actions: []string{
			"Negotiate salary increases annually",
			"Develop high-value skills",
			"Consider career advancement opportunities",
			"Explore passive income streams",
		},
		Timeframe:  "6-24 months",
		Difficulty: "challenging",
	})

	priorityRank := map[Priority]int{PriorityHigh: 3, PriorityMedium: 2, PriorityLow: 1}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank[suggestions[i].Priority] > priorityRank[suggestions[j].Priority]
	})
	return suggestions
}
