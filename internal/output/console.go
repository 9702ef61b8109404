package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"dreamplan/internal/calculation"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// GenerateConsoleReport renders the report as styled console text.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, report *PlanReport) error {
	var b strings.Builder

	title := "Dream Plan"
	if report.Dream != nil {
		title = fmt.Sprintf("Dream Plan: %s", report.Dream.Name)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if report.Dream != nil {
		writeRow(&b, "Target", calculation.FormatCurrency(report.Dream.TargetAmount))
		writeRow(&b, "Saved so far", calculation.FormatCurrency(report.Dream.CurrentAmount))
		writeRow(&b, "Progress", FormatPercentage(report.Dream.ProgressPercent().Round(2)))
	}

	if report.Strategies != nil {
		renderStrategies(&b, report.Strategies)
	}
	if len(report.Equivalents) > 0 {
		renderEquivalents(&b, report.Equivalents)
	}
	if report.Milestones != nil {
		renderMilestones(&b, report.Milestones, report.Progress)
	}
	if report.Allocation != nil {
		renderAllocation(&b, report.Allocation)
	}
	if report.Retirement != nil {
		renderRetirement(&b, report.Retirement)
	}
	if report.Income != nil {
		renderIncome(&b, report.Income)
	}
	if report.Projection != nil {
		renderProjection(&b, report.Projection)
	}
	if report.Crisis != nil {
		renderCrisis(&b, report.Crisis)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Generated %s", report.GeneratedAt.Format("2006-01-02 15:04"))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func renderStrategies(b *strings.Builder, set *calculation.StrategySet) {
	b.WriteString(sectionStyle.Render("Savings Strategies"))
	b.WriteString("\n")

	for _, s := range []calculation.SavingsStrategy{set.Aggressive, set.Balanced, set.Relaxed} {
		b.WriteString(valueStyle.Render(s.Name))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s)", s.Description)))
		b.WriteString("\n")
		writeRow(b, "  Daily", calculation.FormatDailyCurrency(s.DailyAmount))
		writeRow(b, "  Weekly", calculation.FormatDailyCurrency(s.WeeklyAmount))
		writeRow(b, "  Monthly", calculation.FormatDailyCurrency(s.MonthlyAmount))
		writeRow(b, "  Done by", s.AdjustedTargetDate)
	}
}

func renderEquivalents(b *strings.Builder, equivalents []calculation.LifeEquivalent) {
	b.WriteString(sectionStyle.Render("That Daily Amount Is"))
	b.WriteString("\n")
	for _, eq := range equivalents {
		b.WriteString(valueStyle.Render("- " + eq.Description))
		b.WriteString("\n")
	}
}

func renderMilestones(b *strings.Builder, set *calculation.MilestoneSet, progress *calculation.MilestoneProgress) {
	b.WriteString(sectionStyle.Render("Milestones"))
	b.WriteString("\n")

	completed := map[int]bool{}
	if progress != nil {
		for _, m := range progress.Completed {
			completed[m.Percentage] = true
		}
	}

	for _, m := range set.Milestones {
		marker := "[ ]"
		style := valueStyle
		if completed[m.Percentage] {
			marker = "[x]"
			style = successStyle
		}
		line := fmt.Sprintf("%s %3d%%  %-12s by %s", marker, m.Percentage,
			calculation.FormatCurrency(m.Amount), m.ExpectedDate)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if progress != nil && progress.NextMilestone != nil {
		next := fmt.Sprintf("Next: %d%% milestone, %s to go",
			progress.NextMilestone.Percentage,
			calculation.FormatCurrency(progress.ProgressToNext.AmountNeeded))
		b.WriteString(warningStyle.Render(next))
		b.WriteString("\n")
	}
}

func renderAllocation(b *strings.Builder, result *calculation.AllocationResult) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Bucket Allocation (%s)", result.Strategy)))
	b.WriteString("\n")

	writeRow(b, "Foundation", fmt.Sprintf("%s  (%s%%)",
		calculation.FormatDailyCurrency(result.Foundation), result.Percentages.Foundation.Round(0)))
	writeRow(b, "Dream", fmt.Sprintf("%s  (%s%%)",
		calculation.FormatDailyCurrency(result.Dream), result.Percentages.Dream.Round(0)))
	writeRow(b, "Life", fmt.Sprintf("%s  (%s%%)",
		calculation.FormatDailyCurrency(result.Life), result.Percentages.Life.Round(0)))
	writeRow(b, "Total monthly", calculation.FormatDailyCurrency(result.Total))

	if result.DreamTimeline != nil {
		writeRow(b, "Dream funded", result.DreamTimeline.Description)
	}
	for _, warning := range result.Warnings {
		style := warningStyle
		if warning.Severity == "high" {
			style = dangerStyle
		}
		b.WriteString(style.Render("! " + warning.Message))
		b.WriteString("\n")
	}
}

func renderRetirement(b *strings.Builder, result *calculation.RetirementResult) {
	b.WriteString(sectionStyle.Render("Retirement"))
	b.WriteString("\n")

	writeRow(b, "Portfolio needed", calculation.FormatCurrency(result.RequiredPortfolioSize))
	writeRow(b, "Future annual expenses", calculation.FormatCurrency(result.FutureAnnualExpenses))
	writeRow(b, "Current savings will grow to", calculation.FormatCurrency(result.FutureValueCurrentSavings))
	writeRow(b, "Still to fund", calculation.FormatCurrency(result.NetAmountNeeded))

	b.WriteString(mutedStyle.Render("Monthly savings by strategy:"))
	b.WriteString("\n")
	for _, s := range []calculation.RetirementStrategy{
		result.Strategies.Conservative,
		result.Strategies.Balanced,
		result.Strategies.Aggressive,
	} {
		writeRow(b, "  "+s.Name, fmt.Sprintf("%s/mo at %s%% return",
			calculation.FormatCurrency(s.MonthlySavings),
			s.ExpectedReturn.Mul(decimal.NewFromInt(100)).Round(0)))
	}

	if result.IsAchievable {
		b.WriteString(successStyle.Render("On track: current savings cover the target on their own."))
		b.WriteString("\n")
	}
}

func renderIncome(b *strings.Builder, result *calculation.IncomeAnalysisResult) {
	b.WriteString(sectionStyle.Render("Income & Taxes"))
	b.WriteString("\n")

	writeRow(b, "Gross annual", calculation.FormatCurrency(result.Income.GrossAnnual))
	writeRow(b, "Net annual", calculation.FormatCurrency(result.Income.NetAnnual))
	writeRow(b, "Net monthly", calculation.FormatCurrency(result.Income.NetMonthly))
	writeRow(b, "Total taxes", calculation.FormatCurrency(result.Taxes.TotalTaxes))
	writeRow(b, "Effective rate", FormatPercentage(result.Taxes.EffectiveRate))

	if result.Debts.DebtCount > 0 {
		writeRow(b, "Total debt", calculation.FormatCurrency(result.Debts.TotalBalance))
		writeRow(b, "Debt-to-income", FormatPercentage(result.Debts.DebtToIncomeRatio))
	}

	capacity := result.SavingsCapacity
	writeRow(b, "Available for savings", calculation.FormatCurrency(capacity.AvailableForSavings))
	levelStyle := successStyle
	switch capacity.CapacityLevel {
	case calculation.CapacityLimited:
		levelStyle = warningStyle
	case calculation.CapacityInsufficient:
		levelStyle = dangerStyle
	}
	b.WriteString(labelStyle.Render("Capacity"))
	b.WriteString(levelStyle.Render(string(capacity.CapacityLevel)))
	b.WriteString("\n")

	for _, rec := range result.Recommendations {
		if rec.Priority != calculation.PriorityHigh {
			continue
		}
		b.WriteString(warningStyle.Render("! " + rec.Title + ": " + rec.Message))
		b.WriteString("\n")
	}
}

func renderProjection(b *strings.Builder, result *calculation.ProjectionResult) {
	b.WriteString(sectionStyle.Render("Someday Projection"))
	b.WriteString("\n")

	rate := result.Analysis.SuccessRate
	rateStyle := successStyle
	if rate.LessThan(decimal.NewFromInt(50)) {
		rateStyle = dangerStyle
	} else if rate.LessThan(decimal.NewFromInt(75)) {
		rateStyle = warningStyle
	}
	b.WriteString(labelStyle.Render("Success rate"))
	b.WriteString(rateStyle.Render(FormatPercentage(rate)))
	b.WriteString("\n")
	writeRow(b, "Confidence", result.Analysis.Confidence.Level)
	writeRow(b, "Simulations", fmt.Sprintf("%d over %d years",
		result.ProjectionData.Simulations, result.ProjectionData.YearsProjected))

	b.WriteString(mutedStyle.Render("Final asset percentiles:"))
	b.WriteString("\n")
	for _, key := range []string{"p10", "p25", "p50", "p75", "p90"} {
		if v, ok := result.Analysis.Percentiles[key]; ok {
			writeRow(b, "  "+key, calculation.FormatCurrency(v))
		}
	}

	for _, s := range []calculation.Scenario{
		result.Scenarios.Optimistic,
		result.Scenarios.Realistic,
		result.Scenarios.Pessimistic,
	} {
		writeRow(b, titleCase(s.Type), calculation.FormatCurrency(s.Outcomes.FinalAssets))
	}

	for _, imp := range result.Improvements {
		if imp.Priority != calculation.PriorityHigh {
			continue
		}
		b.WriteString(warningStyle.Render("! " + imp.Title + ": " + imp.Description))
		b.WriteString("\n")
	}
}

func renderCrisis(b *strings.Builder, response *calculation.CrisisResponse) {
	b.WriteString(sectionStyle.Render(response.Title))
	b.WriteString("\n")

	b.WriteString(valueStyle.Render(response.Perspective.MainMessage))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(response.Perspective.Context))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Immediate Actions"))
	b.WriteString("\n")
	for i, action := range response.ImmediateActions {
		style := valueStyle
		if action.Priority == "urgent" {
			style = dangerStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d. %s", i+1, action.Action)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("   " + action.Details))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Crisis Budget"))
	b.WriteString("\n")
	strategy := response.BucketStrategy
	writeRow(b, "Foundation", calculation.FormatDailyCurrency(strategy.MonthlyAmounts.Foundation))
	writeRow(b, "Dream", calculation.FormatDailyCurrency(strategy.MonthlyAmounts.Dream))
	writeRow(b, "Life", calculation.FormatDailyCurrency(strategy.MonthlyAmounts.Life))

	b.WriteString(sectionStyle.Render("Recovery Milestones"))
	b.WriteString("\n")
	for _, m := range response.RecoveryMilestones {
		writeRow(b, m.Timeframe, m.Milestone)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
