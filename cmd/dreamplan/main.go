package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/calculation"
	"dreamplan/internal/config"
	"dreamplan/internal/output"
	"dreamplan/internal/server"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "dreamplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func engineLogger(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return nil
}

func loadPlan(path string) *config.Plan {
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return plan
}

// writeReport renders the report to stdout, or to the file named by the
// --output flag. The pdf format requires --output.
func writeReport(cmd *cobra.Command, report *output.PlanReport) {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		if format == "pdf" {
			log.Fatal("pdf format requires --output to name the destination file")
		}
		if err := output.GenerateReport(os.Stdout, report, format); err != nil {
			log.Fatal(err)
		}
		return
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := output.GenerateReport(f, report, format); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Report written to %s\n", outputPath)
}

var rootCmd = &cobra.Command{
	Use:   "dreamplan",
	Short: "Dream Planning Calculator CLI",
	Long:  "Financial dream planning calculator: savings strategies, milestones, bucket allocation, income analysis, retirement sizing, and someday projections",
}

var planCmd = &cobra.Command{
	Use:   "plan [input-file]",
	Short: "Run the full plan for a dream config file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])
		logger := engineLogger(cmd)
		now := time.Now()

		report := &output.PlanReport{GeneratedAt: now, Dream: plan.Dream}

		if plan.Dream != nil {
			calculator := calculation.NewSavingsCalculator(logger)
			strategies, err := calculator.CalculateStrategies(plan.Dream.Remaining(), plan.Dream.TargetDate, now)
			if err != nil {
				log.Fatal(err)
			}
			report.Strategies = strategies
			report.Equivalents = calculation.ConvertToLifeEquivalents(strategies.Balanced.DailyAmount)

			milestones, err := calculation.CalculateMilestones(plan.Dream.TargetAmount, now, plan.Dream.TargetDate)
			if err != nil {
				log.Fatal(err)
			}
			report.Milestones = milestones
			if plan.Dream.CurrentAmount.IsPositive() {
				progress := calculation.CheckMilestoneProgress(milestones, plan.Dream.CurrentAmount)
				report.Progress = &progress
			}

			allocator := calculation.NewBucketAllocator(logger)
			allocation, err := allocator.AllocateFunds(calculation.AllocationInput{
				AvailableMonthly: plan.Profile.MonthlySavings(),
				Profile:          plan.Profile,
				Dream:            plan.Dream,
			}, plan.EffectiveStrategy())
			if err != nil {
				log.Fatal(err)
			}
			report.Allocation = allocation
		}

		if plan.Retirement != nil {
			calculator := calculation.NewRetirementCalculator(logger)
			retirement, err := calculator.CalculateTotalRetirementNeed(*plan.Retirement, now)
			if err != nil {
				log.Fatal(err)
			}
			report.Retirement = retirement
		}

		if plan.Income != nil {
			analyzer := calculation.NewIncomeAnalyzer(logger)
			income, err := analyzer.Analyze(*plan.Income, plan.Debts, plan.FixedExpenses, calculation.AnalysisOptions{})
			if err != nil {
				log.Fatal(err)
			}
			report.Income = income
		}

		if project, _ := cmd.Flags().GetBool("project"); project || plan.Projection != nil {
			engine := calculation.NewProjectionEngine(logger)
			projection, err := engine.RunSomedayProjection(context.Background(), plan.Profile, plan.EffectiveGoals(), plan.EffectiveProjection())
			if err != nil {
				log.Fatal(err)
			}
			report.Projection = projection
		}

		writeReport(cmd, report)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a dream config file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadPlan(args[0])
		fmt.Printf("Configuration file %s is valid\n", args[0])
	},
}

var retirementCmd = &cobra.Command{
	Use:   "retirement [input-file]",
	Short: "Size the retirement portion of a dream plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])
		if plan.Retirement == nil {
			log.Fatal("config has no retirement section")
		}

		calculator := calculation.NewRetirementCalculator(engineLogger(cmd))
		retirement, err := calculator.CalculateTotalRetirementNeed(*plan.Retirement, time.Now())
		if err != nil {
			log.Fatal(err)
		}

		writeReport(cmd, &output.PlanReport{GeneratedAt: time.Now(), Retirement: retirement})
	},
}

var incomeCmd = &cobra.Command{
	Use:   "income [input-file]",
	Short: "Analyze income, taxes, debts, and savings capacity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])
		if plan.Income == nil {
			log.Fatal("config has no income section")
		}

		conservative, _ := cmd.Flags().GetBool("conservative")
		analyzer := calculation.NewIncomeAnalyzer(engineLogger(cmd))
		income, err := analyzer.Analyze(*plan.Income, plan.Debts, plan.FixedExpenses,
			calculation.AnalysisOptions{ConservativeEstimate: conservative})
		if err != nil {
			log.Fatal(err)
		}

		writeReport(cmd, &output.PlanReport{GeneratedAt: time.Now(), Income: income})
	},
}

var projectCmd = &cobra.Command{
	Use:   "project [input-file]",
	Short: "Run the Monte Carlo someday projection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])

		opts := plan.EffectiveProjection()
		if simulations, _ := cmd.Flags().GetInt("simulations"); simulations > 0 {
			opts.Simulations = simulations
		}
		if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
			opts.Seed = seed
		}
		if noEvents, _ := cmd.Flags().GetBool("no-life-events"); noEvents {
			opts.IncludeLifeEvents = false
		}

		engine := calculation.NewProjectionEngine(engineLogger(cmd))
		projection, err := engine.RunSomedayProjection(context.Background(), plan.Profile, plan.EffectiveGoals(), opts)
		if err != nil {
			log.Fatal(err)
		}

		writeReport(cmd, &output.PlanReport{GeneratedAt: time.Now(), Projection: projection})
	},
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets [input-file]",
	Short: "Allocate monthly savings across the three buckets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])
		allocator := calculation.NewBucketAllocator(engineLogger(cmd))

		input := calculation.AllocationInput{
			AvailableMonthly: plan.Profile.MonthlySavings(),
			Profile:          plan.Profile,
			Dream:            plan.Dream,
		}

		if compare, _ := cmd.Flags().GetBool("compare"); compare {
			results, err := allocator.CompareStrategies(input)
			if err != nil {
				log.Fatal(err)
			}
			for _, strategy := range []calculation.BucketStrategy{
				calculation.StrategyConservative,
				calculation.StrategyBalanced,
				calculation.StrategyAggressive,
			} {
				result := results[strategy]
				fmt.Printf("%s: foundation $%s, dream $%s, life $%s\n",
					strategy,
					result.Foundation.StringFixed(2),
					result.Dream.StringFixed(2),
					result.Life.StringFixed(2))
			}
			return
		}

		allocation, err := allocator.AllocateFunds(input, plan.EffectiveStrategy())
		if err != nil {
			log.Fatal(err)
		}

		writeReport(cmd, &output.PlanReport{GeneratedAt: time.Now(), Allocation: allocation})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			if port := os.Getenv("PORT"); port != "" {
				addr = ":" + port
			}
		}
		srv := server.New(simpleCLILogger{})
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	for _, cmd := range []*cobra.Command{planCmd, retirementCmd, incomeCmd, projectCmd, bucketsCmd} {
		cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, pdf)")
		cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
		cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	}

	planCmd.Flags().Bool("project", false, "Include the someday projection even without a projection section")
	incomeCmd.Flags().Bool("conservative", false, "Apply a conservative haircut to the savings capacity estimate")
	projectCmd.Flags().IntP("simulations", "s", 0, "Number of simulations to run (overrides config)")
	projectCmd.Flags().Int64("seed", 0, "Random seed for reproducible projections")
	projectCmd.Flags().Bool("no-life-events", false, "Project without random life events")
	serveCmd.Flags().String("addr", ":8080", "Listen address for the HTTP API (PORT env overrides the default)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(retirementCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())

	initCrisisCommand()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
