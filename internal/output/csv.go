package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"dreamplan/internal/calculation"
)

// GenerateCSVReport writes the report's tabular sections as CSV. Each
// section is emitted as its own block with a header row.
func (rg *ReportGenerator) GenerateCSVReport(w io.Writer, report *PlanReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if report.Strategies != nil {
		if err := writeStrategyRows(writer, report.Strategies); err != nil {
			return err
		}
	}
	if report.Milestones != nil {
		if err := writeMilestoneRows(writer, report.Milestones); err != nil {
			return err
		}
	}
	if report.Retirement != nil {
		if err := writeWithdrawalRows(writer, report.Retirement); err != nil {
			return err
		}
	}
	if report.Income != nil && report.Income.Debts.DebtCount > 0 {
		if err := writePayoffRows(writer, report.Income.Debts); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeStrategyRows(writer *csv.Writer, set *calculation.StrategySet) error {
	header := []string{"Strategy", "Daily", "Weekly", "Monthly", "Total Days", "Target Date"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, s := range []calculation.SavingsStrategy{set.Aggressive, set.Balanced, set.Relaxed} {
		row := []string{
			s.Name,
			s.DailyAmount.StringFixed(2),
			s.WeeklyAmount.StringFixed(2),
			s.MonthlyAmount.StringFixed(2),
			strconv.Itoa(s.TotalDays),
			s.AdjustedTargetDate,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeMilestoneRows(writer *csv.Writer, set *calculation.MilestoneSet) error {
	header := []string{"Percentage", "Amount", "Expected Date", "Days From Start", "Remaining"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, m := range set.Milestones {
		row := []string{
			strconv.Itoa(m.Percentage),
			m.Amount.StringFixed(2),
			m.ExpectedDate,
			strconv.Itoa(m.DaysFromStart),
			m.RemainingAmount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePayoffRows(writer *csv.Writer, debts calculation.DebtAnalysis) error {
	header := []string{"Payoff Strategy", "Months", "Total Interest", "Total Payments", "Capped"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, strategy := range []calculation.PayoffStrategy{
		calculation.PayoffMinimum,
		calculation.PayoffAvalanche,
		calculation.PayoffSnowball,
	} {
		schedule := debts.PayoffSchedules[string(strategy)]
		row := []string{
			string(schedule.Strategy),
			strconv.Itoa(schedule.TotalMonths),
			schedule.TotalInterest.StringFixed(2),
			schedule.TotalPayments.StringFixed(2),
			strconv.FormatBool(schedule.Capped),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeWithdrawalRows(writer *csv.Writer, result *calculation.RetirementResult) error {
	header := []string{"Year", "Starting Balance", "Growth", "Withdrawal", "Ending Balance"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, year := range result.WithdrawalSchedule {
		row := []string{
			strconv.Itoa(year.Year),
			year.StartingBalance.StringFixed(2),
			year.Growth.StringFixed(2),
			year.Withdrawal.StringFixed(2),
			year.EndingBalance.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
