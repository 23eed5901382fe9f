package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srplumbing/srbill/internal/invoices"
	"github.com/srplumbing/srbill/internal/storage"
)

// InvoiceOptions holds flags for the invoice subcommands.
type InvoiceOptions struct {
	*RootOptions
	Date  string
	Items []string
	PDF   string
}

func newInvoiceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create and inspect invoices",
	}

	cmd.AddCommand(
		newInvoiceCreateCommand(rootOpts),
		newInvoiceListCommand(rootOpts),
		newInvoiceShowCommand(rootOpts),
		newInvoiceUpdateCommand(rootOpts),
		newInvoiceDeleteCommand(rootOpts),
	)

	return cmd
}

func newInvoiceCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvoiceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice from catalog items",
		Long: `Create an invoice from catalog items.

Each --item flag names a catalog item id, with an optional quantity
after a colon. The invoice date defaults to today.

Example:
  srbill invoice create --item a1b2:3 --item c3d4 --date 2025-06-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createInvoice(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Items, "item", nil, "catalog item id, optionally id:quantity (repeatable)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "invoice date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("item")

	return cmd
}

func createInvoice(opts *InvoiceOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	cart := invoices.NewCart()
	for _, spec := range opts.Items {
		id, qty := splitItemSpec(spec)
		it, ok, err := a.catalog.Get(id)
		if err != nil {
			return WrapExitError(ExitCommandError, "reading item", err)
		}
		if !ok {
			return NewExitError(ExitFailure, fmt.Sprintf("item %s not found", id))
		}
		cart.AddItem(it)
		if qty > 1 {
			cart.SetQuantity(cart.Len()-1, qty)
		}
	}
	if cart.Len() == 0 {
		return NewExitError(ExitFailure, "no items in cart")
	}

	inv := a.invoices.Checkout(cart, opts.Date)
	id, err := a.invoices.Add(inv)
	if err != nil {
		return WrapExitError(ExitCommandError, "saving invoice", err)
	}
	inv.ID = id

	f := opts.formatter(cmd)
	return f.SuccessText(
		fmt.Sprintf("created invoice %s (%s)\n", id, a.render.Currency(inv.TotalAmount)),
		inv)
}

// splitItemSpec parses "id" or "id:qty". A missing or unparseable
// quantity means 1.
func splitItemSpec(spec string) (string, int) {
	id, rest, found := strings.Cut(spec, ":")
	if !found {
		return id, 1
	}
	qty, err := strconv.Atoi(rest)
	if err != nil || qty < 1 {
		return id, 1
	}
	return id, qty
}

func newInvoiceListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvoiceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listInvoices(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "only invoices on this date (YYYY-MM-DD)")

	return cmd
}

func listInvoices(opts *InvoiceOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		invs []invoices.Invoice
	)
	if opts.Date != "" {
		invs, err = a.invoices.GetByDate(opts.Date)
	} else {
		invs, err = a.invoices.ListRecent()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "listing invoices", err)
	}

	var b strings.Builder
	for _, inv := range invs {
		fmt.Fprintf(&b, "%s  %s  %2d items  %s\n",
			inv.ID, inv.Date, len(inv.Lines), a.render.Currency(inv.TotalAmount))
	}
	if len(invs) == 0 {
		b.WriteString("no invoices\n")
	}

	f := opts.formatter(cmd)
	return f.SuccessText(b.String(), invs)
}

func newInvoiceShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvoiceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a full invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showInvoice(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PDF, "pdf", "", "also write the invoice as a PDF to this path")

	return cmd
}

func showInvoice(opts *InvoiceOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	inv, ok, err := a.invoices.Get(id)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading invoice", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("invoice %s not found", id))
	}

	if opts.PDF != "" {
		out, err := os.Create(opts.PDF)
		if err != nil {
			return WrapExitError(ExitCommandError, "creating PDF file", err)
		}
		if err := a.render.InvoicePDF(out, inv); err != nil {
			out.Close()
			return WrapExitError(ExitCommandError, "rendering PDF", err)
		}
		if err := out.Close(); err != nil {
			return WrapExitError(ExitCommandError, "writing PDF file", err)
		}
	}

	var b strings.Builder
	if err := a.render.Invoice(&b, inv); err != nil {
		return WrapExitError(ExitCommandError, "rendering invoice", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(b.String(), inv)
}

func newInvoiceUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvoiceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an invoice's date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateInvoice(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "new invoice date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("date")

	return cmd
}

func updateInvoice(opts *InvoiceOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.invoices.Update(id, storage.Record{"date": opts.Date})
	if err != nil {
		return WrapExitError(ExitCommandError, "updating invoice", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("invoice %s not found", id))
	}

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("updated invoice %s\n", id), map[string]string{"id": id})
}

func newInvoiceDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteInvoice(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func deleteInvoice(opts *RootOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.invoices.Delete(id)
	if err != nil {
		return WrapExitError(ExitCommandError, "deleting invoice", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("invoice %s not found", id))
	}

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("deleted invoice %s\n", id), map[string]string{"id": id})
}
