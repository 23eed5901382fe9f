package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srplumbing/srbill/internal/payments"
)

// PaymentOptions holds flags for the payment subcommands.
type PaymentOptions struct {
	*RootOptions
	Method     string
	Amount     string
	Status     string
	Date       string
	Notes      string
	UPIID      string
	Passphrase string
	Limit      int
	Current    string
	Next       string
}

func newPaymentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record payments and review payment history",
	}

	cmd.AddCommand(
		newPaymentRecordCommand(rootOpts),
		newPaymentRecentCommand(rootOpts),
		newPaymentListCommand(rootOpts),
		newPaymentPasswdCommand(rootOpts),
	)

	return cmd
}

func newPaymentRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PaymentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a received payment",
		Long: `Record a received payment.

Example:
  srbill payment record --method upi --amount 450 --notes "invoice INV-20250601-000003"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordPayment(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Method, "method", payments.MethodUPI, "payment method (card or upi)")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "payment amount (required)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "status (default pending)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "payment timestamp (default now)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.UPIID, "upi", "", "payer UPI id")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func recordPayment(opts *PaymentOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	p := payments.Payment{
		Method: opts.Method,
		Amount: parseAmount(opts.Amount),
		Status: opts.Status,
		Date:   opts.Date,
		Notes:  opts.Notes,
		UPIID:  opts.UPIID,
	}
	id, err := a.payments.Add(p)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidAmount) {
			return WrapExitError(ExitFailure, "recording payment", err)
		}
		return WrapExitError(ExitCommandError, "recording payment", err)
	}

	// Read back the stored record so the output carries the defaults
	// the service filled in.
	stored, err := a.payments.Recent(1)
	if err != nil || len(stored) == 0 {
		p.ID = id
		stored = []payments.Payment{p}
	}

	f := opts.formatter(cmd)
	return f.SuccessText(
		fmt.Sprintf("recorded payment %s (%s)\n", id, a.render.Currency(stored[0].Amount)),
		stored[0])
}

func newPaymentRecentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PaymentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent payments (passphrase protected)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return recentPayments(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "number of payments to show")
	cmd.Flags().StringVar(&opts.Passphrase, "passphrase", "", "history passphrase (required)")
	cmd.MarkFlagRequired("passphrase")

	return cmd
}

func recentPayments(opts *PaymentOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.gate.Unlock(opts.Passphrase); err != nil {
		if errors.Is(err, payments.ErrWrongPassphrase) {
			return NewExitError(ExitFailure, "wrong passphrase")
		}
		return WrapExitError(ExitCommandError, "checking passphrase", err)
	}

	pays, err := a.payments.Recent(opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading payments", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(paymentTable(a, pays), pays)
}

func newPaymentListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PaymentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments on a given date (passphrase protected)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPayments(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "payments on this date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.Passphrase, "passphrase", "", "history passphrase (required)")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("passphrase")

	return cmd
}

func listPayments(opts *PaymentOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.gate.Unlock(opts.Passphrase); err != nil {
		if errors.Is(err, payments.ErrWrongPassphrase) {
			return NewExitError(ExitFailure, "wrong passphrase")
		}
		return WrapExitError(ExitCommandError, "checking passphrase", err)
	}

	pays, err := a.payments.GetByDate(opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading payments", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(paymentTable(a, pays), pays)
}

func paymentTable(a *app, pays []payments.Payment) string {
	var b strings.Builder
	for _, p := range pays {
		fmt.Fprintf(&b, "%s  %-6s %-10s %10s  %s\n",
			p.ID, p.Method, p.Status, a.render.Currency(p.Amount), p.Date)
	}
	if len(pays) == 0 {
		b.WriteString("no payments\n")
	}
	return b.String()
}

func newPaymentPasswdCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PaymentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the payment history passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changePassphrase(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Current, "current", "", "current passphrase (required)")
	cmd.Flags().StringVar(&opts.Next, "new", "", "new passphrase (required)")
	cmd.MarkFlagRequired("current")
	cmd.MarkFlagRequired("new")

	return cmd
}

func changePassphrase(opts *PaymentOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.gate.Change(opts.Current, opts.Next); err != nil {
		switch {
		case errors.Is(err, payments.ErrWrongPassphrase):
			return NewExitError(ExitFailure, "wrong passphrase")
		case errors.Is(err, payments.ErrShortPassphrase):
			return WrapExitError(ExitFailure, "changing passphrase", err)
		default:
			return WrapExitError(ExitCommandError, "changing passphrase", err)
		}
	}

	f := opts.formatter(cmd)
	return f.SuccessText("passphrase changed\n", map[string]string{"status": "changed"})
}
