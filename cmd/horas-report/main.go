package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"horas/internal/backend"
	"horas/internal/cli"
	"horas/internal/config"
	"horas/internal/core"
	applog "horas/internal/log"
	"horas/internal/report"
	"horas/internal/services"
)

var (
	cfg       *config.Config
	logger    *applog.Logger
	be        *backend.BackendResult
	dashboard *services.DashboardService
	format    report.Format

	formatFlag string
	yearFlag   int
)

var rootCmd = &cobra.Command{
	Use:           "horas-report",
	Short:         "Print work-hour summaries from the timesheet",
	Long:          `horas-report fetches the configured timesheet once and prints month, year or row-issue reports as a table, JSON or YAML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if format, err = report.ParseFormat(formatFlag); err != nil {
			return err
		}

		cfg = cli.LoadConfig()
		if yearFlag != 0 {
			cfg.TimesheetYear = yearFlag
		}
		// Logs go to stderr so the report can be piped.
		lc, lerr := applog.ConfigFrom(cfg.LogLevel, cfg.LogFormat)
		lc.Output = os.Stderr
		lc.Component = applog.ComponentReport
		logger = applog.New(lc)
		if lerr != nil {
			logger.Warn("Ignoring LOG_LEVEL", applog.FieldError, lerr)
		}

		// Reports are one-shot; the journal is not used.
		cfg.Journal = config.JournalNone
		if err := cfg.Validate(); err != nil {
			return err
		}
		bcfg, err := backend.FromAppConfig(cfg)
		if err != nil {
			return err
		}
		be, err = backend.NewFactory(logger.Logger).CreateBackend(cmd.Context(), bcfg)
		if err != nil {
			return err
		}

		dashboard = services.NewDashboardService(be.Reader, cfg.TimesheetYear, core.MustLocale(cfg.Locale),
			services.WithLogger(logger),
			services.WithFetchTimeout(cfg.FetchTimeout))
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
		defer cancel()
		if _, err := dashboard.Load(ctx); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return be.Close()
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Month summary with week totals and lunch days",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := dashboard.InitialSelection()
		if m, _ := cmd.Flags().GetInt("month"); m != 0 {
			sel.Month = time.Month(m)
		}
		if w, _ := cmd.Flags().GetInt("week"); w != 0 {
			sel.WeekIndex = w - 1
		}
		if sel.Month < time.January || sel.Month > time.December {
			return fmt.Errorf("month must be between 1 and 12, got %d", sel.Month)
		}

		summary, _, err := dashboard.Month(sel)
		if err != nil {
			return err
		}
		return report.Month(cmd.OutOrStdout(), format, services.NewMonthView(summary, dashboard.Locale(), format != report.FormatTable))
	},
}

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Yearly summary with month totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := dashboard.Year()
		if err != nil {
			return err
		}
		return report.Year(cmd.OutOrStdout(), format, services.NewYearView(summary, dashboard.Locale()))
	},
}

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Rows that were dropped or could not be fully parsed",
	RunE: func(cmd *cobra.Command, args []string) error {
		last, ok := dashboard.LastReport()
		if !ok {
			return services.ErrNotLoaded
		}
		return report.Issues(cmd.OutOrStdout(), format, last)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", string(report.FormatTable), "output format: table, json or yaml")
	rootCmd.PersistentFlags().IntVar(&yearFlag, "year", 0, "timesheet year (defaults to TIMESHEET_YEAR)")

	monthCmd.Flags().IntP("month", "m", 0, "month number 1-12 (defaults to the current month)")
	monthCmd.Flags().IntP("week", "w", 0, "week of the month to detail, 1-based")

	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(issuesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
