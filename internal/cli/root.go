package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	Database   string
	Format     string
	Verbose    bool
}

// NewRootCommand creates the root srbill command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "srbill",
		Short: "Billing and reporting for a small plumbing and electrical shop",
		Long: `srbill manages a product catalog, invoices and payments on top of
a local SQLite database, and produces daily and monthly sales reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "json" && opts.Format != "text" {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q (must be json or text)", opts.Format))
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format: json or text")
	cmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(
		newItemCommand(opts),
		newInvoiceCommand(opts),
		newPaymentCommand(opts),
		newReportCommand(opts),
		newInitCommand(opts),
		newResetCommand(opts),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
