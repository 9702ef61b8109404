package main

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dreamplan/internal/calculation"
	"dreamplan/internal/config"
	"dreamplan/internal/output"
)

func initCrisisCommand() {
	crisisCmd := &cobra.Command{
		Use:   "crisis",
		Short: "Re-project a dream plan through a financial crisis",
		Long:  "Crisis planning for job loss, medical emergencies, and relationship changes. Parameters default from the plan's financial profile when an input file is given.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the supported crisis scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range calculation.AvailableCrisisTypes() {
				fmt.Printf("%s (%s severity)\n  %s\n", info.ID, info.Severity, info.Description)
			}
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [type] [input-file]",
		Short: "Build a crisis plan for the given scenario",
		Long:  "Build a crisis plan. Types: job-loss, medical-emergency, relationship-change.\n\nWhen an input file is given, income and emergency fund figures come from its profile; flags override them.",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			crisisType, err := calculation.ParseCrisisType(args[0])
			if err != nil {
				log.Fatal(err)
			}

			var plan *config.Plan
			if len(args) == 2 {
				plan = loadPlan(args[1])
			}

			engine := calculation.NewCrisisEngine(engineLogger(cmd))

			var response *calculation.CrisisResponse
			switch crisisType {
			case calculation.CrisisJobLoss:
				response = engine.JobLoss(jobLossParams(cmd, plan))
			case calculation.CrisisMedicalEmergency:
				response = engine.MedicalEmergency(medicalParams(cmd, plan))
			case calculation.CrisisRelationshipChange:
				response = engine.RelationshipChange(relationshipParams(cmd, plan))
			}

			writeReport(cmd, &output.PlanReport{GeneratedAt: time.Now(), Crisis: response})
		},
	}

	runCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, pdf)")
	runCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	runCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	runCmd.Flags().Float64("income", 0, "Monthly income (overrides the plan profile)")
	runCmd.Flags().Float64("cost", 0, "Emergency cost for medical-emergency scenarios")
	runCmd.Flags().Bool("insured", true, "Whether health insurance covers part of a medical emergency")
	runCmd.Flags().Bool("married", false, "Whether the relationship change involves a marriage")
	runCmd.Flags().Bool("children", false, "Whether children are involved in a relationship change")

	crisisCmd.AddCommand(listCmd)
	crisisCmd.AddCommand(runCmd)
	rootCmd.AddCommand(crisisCmd)
}

func monthlyIncome(cmd *cobra.Command, plan *config.Plan) decimal.Decimal {
	if income, _ := cmd.Flags().GetFloat64("income"); income > 0 {
		return decimal.NewFromFloat(income)
	}
	if plan != nil {
		return plan.Profile.MonthlyIncome
	}
	return decimal.Zero
}

func jobLossParams(cmd *cobra.Command, plan *config.Plan) calculation.JobLossParams {
	params := calculation.JobLossParams{CurrentIncome: monthlyIncome(cmd, plan)}
	if plan == nil {
		return params
	}

	params.MonthlySavings = plan.Profile.MonthlySavings()
	if plan.Profile.EmergencyFund.IsPositive() {
		params.HasEmergencyFund = true
		if plan.Profile.MonthlyExpenses.IsPositive() {
			params.EmergencyFundMonths = int(plan.Profile.EmergencyFund.Div(plan.Profile.MonthlyExpenses).IntPart())
		}
	}
	return params
}

func medicalParams(cmd *cobra.Command, plan *config.Plan) calculation.MedicalEmergencyParams {
	insured, _ := cmd.Flags().GetBool("insured")
	params := calculation.MedicalEmergencyParams{
		CurrentIncome:      monthlyIncome(cmd, plan),
		HasHealthInsurance: insured,
	}
	if cost, _ := cmd.Flags().GetFloat64("cost"); cost > 0 {
		params.EmergencyCost = decimal.NewFromFloat(cost)
	}
	return params
}

func relationshipParams(cmd *cobra.Command, plan *config.Plan) calculation.RelationshipChangeParams {
	married, _ := cmd.Flags().GetBool("married")
	children, _ := cmd.Flags().GetBool("children")
	params := calculation.RelationshipChangeParams{
		YourIncome:  monthlyIncome(cmd, plan),
		WasMarried:  married,
		HasChildren: children,
	}
	if plan != nil {
		params.YourNewExpenses = plan.Profile.MonthlyExpenses
	}
	return params
}
