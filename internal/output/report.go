// Package output renders plan results as console text, JSON, CSV, and
// PDF reports.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

// PlanReport aggregates the results of a plan run. Every section is
// optional; renderers skip nil sections.
type PlanReport struct {
	GeneratedAt time.Time                         `json:"generatedAt"`
	Dream       *domain.Dream                     `json:"dream,omitempty"`
	Strategies  *calculation.StrategySet          `json:"strategies,omitempty"`
	Milestones  *calculation.MilestoneSet         `json:"milestones,omitempty"`
	Progress    *calculation.MilestoneProgress    `json:"progress,omitempty"`
	Equivalents []calculation.LifeEquivalent      `json:"equivalents,omitempty"`
	Allocation  *calculation.AllocationResult     `json:"allocation,omitempty"`
	Retirement  *calculation.RetirementResult     `json:"retirement,omitempty"`
	Income      *calculation.IncomeAnalysisResult `json:"income,omitempty"`
	Projection  *calculation.ProjectionResult     `json:"projection,omitempty"`
	Crisis      *calculation.CrisisResponse       `json:"crisis,omitempty"`
}

// ReportGenerator handles report generation in various formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes the report to w in the specified format. The
// pdf format produces binary output and should be directed to a file.
func GenerateReport(w io.Writer, report *PlanReport, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.GenerateConsoleReport(w, report)
	case "json":
		return generator.GenerateJSONReport(w, report)
	case "csv":
		return generator.GenerateCSVReport(w, report)
	case "pdf":
		data, err := generator.GeneratePDFReport(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateJSONReport writes the report as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, report *PlanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// FormatPercentage formats a decimal as a percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
