package cli

import (
	"github.com/spf13/cobra"
)

func newInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the billing database",
		Long: `Initialize the billing database.

Creates the database file and empty collections. Safe to run again:
existing data is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initDatabase(rootOpts, cmd)
		},
	}
	return cmd
}

func initDatabase(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	return f.SuccessText("database ready at "+a.cfg.Database+"\n",
		map[string]string{"database": a.cfg.Database})
}

func newResetCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all items, invoices and payments",
		Long: `Delete all items, invoices and payments.

Settings, including the payment history passphrase, are kept.
Requires --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return NewExitError(ExitCommandError, "refusing to reset without --force")
			}
			return resetDatabase(rootOpts, cmd)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deleting all records")

	return cmd
}

func resetDatabase(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(); err != nil {
		return WrapExitError(ExitCommandError, "clearing store", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText("all records deleted\n", map[string]string{"status": "cleared"})
}
