package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamplan/internal/calculation"
	"dreamplan/internal/domain"
)

func testReport(t *testing.T) *PlanReport {
	t.Helper()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(2, 0, 0)
	amount := decimal.NewFromInt(50000)

	strategies, err := calculation.NewSavingsCalculator(nil).CalculateStrategies(amount, target, now)
	require.NoError(t, err)

	milestones, err := calculation.CalculateMilestones(amount, now, target)
	require.NoError(t, err)

	retirement, err := calculation.NewRetirementCalculator(nil).CalculateTotalRetirementNeed(calculation.RetirementInput{
		AnnualExpenses:       decimal.NewFromInt(60000),
		YearsUntilRetirement: 30,
		CurrentAge:           35,
		CurrentSavings:       decimal.NewFromInt(50000),
	}, now)
	require.NoError(t, err)

	return &PlanReport{
		GeneratedAt: now,
		Dream: &domain.Dream{
			Name:          "Coastal cottage",
			TargetAmount:  amount,
			TargetDate:    target,
			CurrentAmount: decimal.NewFromInt(5000),
		},
		Strategies: strategies,
		Milestones: milestones,
		Retirement: retirement,
	}
}

func TestGenerateConsoleReport(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	err := GenerateReport(&buf, report, "console")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Coastal cottage")
	assert.Contains(t, out, "Savings Strategies")
	assert.Contains(t, out, "Aggressive")
	assert.Contains(t, out, "Milestones")
	assert.Contains(t, out, "Retirement")
	assert.Contains(t, out, "$3,640,894")
}

func TestGenerateJSONReport(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	err := GenerateReport(&buf, report, "json")
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "dream")
	assert.Contains(t, decoded, "strategies")
	assert.Contains(t, decoded, "milestones")
	assert.Contains(t, decoded, "retirement")
	assert.NotContains(t, decoded, "crisis")
}

func TestGenerateCSVReport(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	err := GenerateReport(&buf, report, "csv")
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Strategy header plus 3 rows, milestone header plus 5 rows, then
	// the withdrawal schedule.
	require.Greater(t, len(records), 9)
	assert.Equal(t, "Strategy", records[0][0])
	assert.Equal(t, "Aggressive", records[1][0])
	assert.Equal(t, "Percentage", records[4][0])
	assert.Equal(t, "10", records[5][0])
}

func TestGeneratePDFReport(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	err := GenerateReport(&buf, report, "pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Greater(t, buf.Len(), 1000)
}

func TestGenerateReportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, testReport(t), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPercentage(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}
