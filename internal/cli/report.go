package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/srplumbing/srbill/internal/dates"
	"github.com/srplumbing/srbill/internal/reports"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	Date  string
	Month string
	CSV   string
}

func newReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate sales reports",
	}

	cmd.AddCommand(
		newReportDailyCommand(rootOpts),
		newReportMonthlyCommand(rootOpts),
	)

	return cmd
}

func newReportDailyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily sales report",
		Long: `Daily sales report: invoice count, total billed amount and a
per-method payment breakdown for one calendar day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dailyReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "also write the report as CSV to this path")

	return cmd
}

func dailyReport(opts *ReportOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	date := opts.Date
	if date == "" {
		date = dates.Format(time.Now())
	}

	rep, err := a.reports.DailyReport(date)
	if err != nil {
		return WrapExitError(ExitCommandError, "building daily report", err)
	}

	if opts.CSV != "" {
		out, err := os.Create(opts.CSV)
		if err != nil {
			return WrapExitError(ExitCommandError, "creating CSV file", err)
		}
		if err := reports.WriteCSV(out, rep); err != nil {
			out.Close()
			return WrapExitError(ExitCommandError, "writing CSV", err)
		}
		if err := out.Close(); err != nil {
			return WrapExitError(ExitCommandError, "writing CSV file", err)
		}
	}

	var b strings.Builder
	if err := a.render.DailyReport(&b, rep); err != nil {
		return WrapExitError(ExitCommandError, "rendering report", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(b.String(), rep)
}

func newReportMonthlyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly sales report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return monthlyReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Month, "month", "", "report month (YYYY-MM, required)")
	cmd.MarkFlagRequired("month")

	return cmd
}

func monthlyReport(opts *ReportOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	rep, err := a.reports.MonthlyReport(opts.Month)
	if err != nil {
		return WrapExitError(ExitFailure,
			fmt.Sprintf("building monthly report for %s", opts.Month), err)
	}

	var b strings.Builder
	if err := a.render.MonthlyReport(&b, rep); err != nil {
		return WrapExitError(ExitCommandError, "rendering report", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(b.String(), rep)
}
