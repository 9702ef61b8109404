package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"dreamplan/internal/calculation"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *PlanReport
}

// GeneratePDFReport renders the report as a PDF document and returns
// its bytes.
func (rg *ReportGenerator) GeneratePDFReport(report *PlanReport) ([]byte, error) {
	r := &pdfReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		report: report,
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)

	r.addTitlePage()
	if report.Strategies != nil {
		r.addStrategiesSection()
	}
	if report.Milestones != nil {
		r.addMilestonesSection()
	}
	if report.Allocation != nil {
		r.addAllocationSection()
	}
	if report.Retirement != nil {
		r.addRetirementSection()
	}
	if report.Projection != nil {
		r.addProjectionSection()
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(76, 29, 149)
	r.pdf.Ln(50)
	r.pdf.CellFormat(contentWidth, 15, "Dream Plan", "", 1, "C", false, 0, "")

	if r.report.Dream != nil {
		r.pdf.SetFont("Arial", "", 14)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.Ln(10)
		r.pdf.CellFormat(contentWidth, 10, r.report.Dream.Name, "", 1, "C", false, 0, "")

		r.pdf.Ln(20)
		r.pdf.SetFillColor(245, 243, 255)
		r.pdf.SetDrawColor(200, 200, 200)

		r.pdf.SetFont("Arial", "B", 12)
		r.pdf.SetTextColor(76, 29, 149)
		r.pdf.CellFormat(contentWidth, 8, "Goal Summary", "1", 1, "C", true, 0, "")

		r.pdf.SetFont("Arial", "", 11)
		r.pdf.SetTextColor(50, 50, 50)
		rows := []string{
			fmt.Sprintf("Target: %s", calculation.FormatCurrency(r.report.Dream.TargetAmount)),
			fmt.Sprintf("Saved so far: %s", calculation.FormatCurrency(r.report.Dream.CurrentAmount)),
			fmt.Sprintf("Remaining: %s", calculation.FormatCurrency(r.report.Dream.Remaining())),
		}
		for _, row := range rows {
			r.pdf.CellFormat(contentWidth, 7, row, "LR", 1, "C", true, 0, "")
		}
		r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")
	}

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.Ln(15)
	r.pdf.CellFormat(contentWidth, 8,
		fmt.Sprintf("Generated: %s", r.report.GeneratedAt.Format("2 January 2006")),
		"", 1, "C", false, 0, "")

	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.MultiCell(contentWidth, 4.5,
		"This document is for informational purposes only and does not constitute financial advice. "+
			"Projections are based on the assumptions provided and actual results may vary.", "", "C", false)
}

func (r *pdfReport) addStrategiesSection() {
	r.pdf.AddPage()
	r.drawSectionHeader("Savings Strategies")

	set := r.report.Strategies
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("Goal: %s by %s (%d days)",
			calculation.FormatCurrency(set.Metadata.DreamAmount),
			set.Metadata.OriginalTargetDate, set.Metadata.BaseDays),
		"", 1, "L", false, 0, "")
	r.pdf.Ln(3)

	widths := []float64{35, 30, 30, 30, 55}
	r.drawTableHeader([]string{"Strategy", "Daily", "Weekly", "Monthly", "Done By"}, widths)

	for _, s := range []calculation.SavingsStrategy{set.Aggressive, set.Balanced, set.Relaxed} {
		r.drawTableRow([]string{
			s.Name,
			calculation.FormatDailyCurrency(s.DailyAmount),
			calculation.FormatDailyCurrency(s.WeeklyAmount),
			calculation.FormatDailyCurrency(s.MonthlyAmount),
			s.AdjustedTargetDate,
		}, widths, false)
	}
}

func (r *pdfReport) addMilestonesSection() {
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	} else {
		r.pdf.Ln(10)
	}
	r.drawSectionHeader("Milestones")

	widths := []float64{30, 45, 50, 55}
	r.drawTableHeader([]string{"Checkpoint", "Amount", "Expected Date", "Remaining"}, widths)

	for _, m := range r.report.Milestones.Milestones {
		r.drawTableRow([]string{
			fmt.Sprintf("%d%%", m.Percentage),
			calculation.FormatCurrency(m.Amount),
			m.ExpectedDate,
			calculation.FormatCurrency(m.RemainingAmount),
		}, widths, false)
	}
}

func (r *pdfReport) addAllocationSection() {
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	} else {
		r.pdf.Ln(10)
	}
	r.drawSectionHeader("Bucket Allocation")

	result := r.report.Allocation
	widths := []float64{50, 65, 65}
	r.drawTableHeader([]string{"Bucket", "Monthly Amount", "Share"}, widths)

	rows := [][]string{
		{"Foundation", calculation.FormatDailyCurrency(result.Foundation), result.Percentages.Foundation.Round(0).String() + "%"},
		{"Dream", calculation.FormatDailyCurrency(result.Dream), result.Percentages.Dream.Round(0).String() + "%"},
		{"Life", calculation.FormatDailyCurrency(result.Life), result.Percentages.Life.Round(0).String() + "%"},
	}
	for _, row := range rows {
		r.drawTableRow(row, widths, false)
	}
	r.drawTableRow([]string{"TOTAL", calculation.FormatDailyCurrency(result.Total), ""}, widths, true)

	if result.DreamTimeline != nil {
		r.pdf.Ln(3)
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(50, 50, 50)
		r.pdf.CellFormat(contentWidth, 5,
			fmt.Sprintf("Dream bucket timeline: %s", result.DreamTimeline.Description),
			"", 1, "L", false, 0, "")
	}
	for _, warning := range result.Warnings {
		r.pdf.SetFont("Arial", "I", 9)
		r.pdf.SetTextColor(200, 100, 0)
		r.pdf.CellFormat(contentWidth, 5, "! "+warning.Message, "", 1, "L", false, 0, "")
	}
}

func (r *pdfReport) addRetirementSection() {
	r.pdf.AddPage()
	r.drawSectionHeader("Retirement Outlook")

	result := r.report.Retirement
	widths := []float64{100, 80}
	r.drawTableHeader([]string{"Metric", "Value"}, widths)
	r.drawTableRow([]string{"Required Portfolio", calculation.FormatCurrency(result.RequiredPortfolioSize)}, widths, false)
	r.drawTableRow([]string{"Future Annual Expenses", calculation.FormatCurrency(result.FutureAnnualExpenses)}, widths, false)
	r.drawTableRow([]string{"Future Value of Current Savings", calculation.FormatCurrency(result.FutureValueCurrentSavings)}, widths, false)
	r.drawTableRow([]string{"Still To Fund", calculation.FormatCurrency(result.NetAmountNeeded)}, widths, true)

	r.pdf.Ln(5)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(76, 29, 149)
	r.pdf.CellFormat(contentWidth, 7, "Monthly Savings by Strategy", "", 1, "L", false, 0, "")

	stratWidths := []float64{45, 45, 45, 45}
	r.drawTableHeader([]string{"Strategy", "Monthly", "Return", "Risk"}, stratWidths)
	for _, s := range []calculation.RetirementStrategy{
		result.Strategies.Conservative,
		result.Strategies.Balanced,
		result.Strategies.Aggressive,
	} {
		r.drawTableRow([]string{
			s.Name,
			calculation.FormatCurrency(s.MonthlySavings),
			fmt.Sprintf("%s%%", s.ExpectedReturn.Mul(decimal.NewFromInt(100)).Round(0)),
			s.RiskLevel,
		}, stratWidths, false)
	}
}

func (r *pdfReport) addProjectionSection() {
	r.pdf.AddPage()
	r.drawSectionHeader("Someday Projection")

	result := r.report.Projection
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("%d simulations over %d years, success rate %s",
			result.ProjectionData.Simulations,
			result.ProjectionData.YearsProjected,
			FormatPercentage(result.Analysis.SuccessRate)),
		"", 1, "L", false, 0, "")
	r.pdf.Ln(3)

	widths := []float64{60, 120}
	r.drawTableHeader([]string{"Percentile", "Final Assets"}, widths)
	for _, key := range []string{"p10", "p25", "p50", "p75", "p90"} {
		if v, ok := result.Analysis.Percentiles[key]; ok {
			r.drawTableRow([]string{key, calculation.FormatCurrency(v)}, widths, false)
		}
	}

	r.pdf.Ln(5)
	scenWidths := []float64{50, 65, 65}
	r.drawTableHeader([]string{"Scenario", "Final Assets", "Years To Goal"}, scenWidths)
	for _, s := range []calculation.Scenario{
		result.Scenarios.Optimistic,
		result.Scenarios.Realistic,
		result.Scenarios.Pessimistic,
	} {
		yearsStr := "-"
		if s.Outcomes.YearsToGoal > 0 {
			yearsStr = fmt.Sprintf("%d", s.Outcomes.YearsToGoal)
		}
		r.drawTableRow([]string{
			titleCase(s.Type),
			calculation.FormatCurrency(s.Outcomes.FinalAssets),
			yearsStr,
		}, scenWidths, false)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(76, 29, 149)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(76, 29, 149)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(76, 29, 149)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
