package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/srplumbing/srbill/internal/catalog"
)

// ItemOptions holds flags for the item subcommands.
type ItemOptions struct {
	*RootOptions
	Name     string
	SizeInch string
	SizeMm   string
	ItemCode string
	Rate     string
	Photo    string
	File     string
}

func newItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the product catalog",
	}

	cmd.AddCommand(
		newItemAddCommand(rootOpts),
		newItemListCommand(rootOpts),
		newItemShowCommand(rootOpts),
		newItemUpdateCommand(rootOpts),
		newItemDeleteCommand(rootOpts),
		newItemExportCommand(rootOpts),
		newItemImportCommand(rootOpts),
	)

	return cmd
}

func newItemAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the catalog",
		Long: `Add an item to the catalog.

Example:
  srbill item add --name "PVC Pipe" --size-inch '1/2"' --size-mm "15 mm" --rate 120.50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addItem(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "item name (required)")
	cmd.Flags().StringVar(&opts.SizeInch, "size-inch", "", "size in inches")
	cmd.Flags().StringVar(&opts.SizeMm, "size-mm", "", "size in millimetres")
	cmd.Flags().StringVar(&opts.ItemCode, "code", "", "item code")
	cmd.Flags().StringVar(&opts.Rate, "rate", "0", "unit rate")
	cmd.Flags().StringVar(&opts.Photo, "photo", "", "photo data or path reference")
	cmd.MarkFlagRequired("name")

	return cmd
}

func addItem(opts *ItemOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	it := catalog.Item{
		Name:     opts.Name,
		SizeInch: opts.SizeInch,
		SizeMm:   opts.SizeMm,
		ItemCode: opts.ItemCode,
		Rate:     parseAmount(opts.Rate),
		Photo:    opts.Photo,
	}
	id, err := a.catalog.Add(it)
	if err != nil {
		return WrapExitError(ExitCommandError, "saving item", err)
	}
	it.ID = id

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("added item %s\n", id), it)
}

func newItemListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listItems(rootOpts, cmd)
		},
	}
	return cmd
}

func listItems(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.catalog.List()
	if err != nil {
		return WrapExitError(ExitCommandError, "listing items", err)
	}

	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %-30s %10s  %s\n",
			it.ID, it.Name, a.render.Currency(it.Rate), itemSize(it))
	}
	if len(items) == 0 {
		b.WriteString("no items\n")
	}

	f := opts.formatter(cmd)
	return f.SuccessText(b.String(), items)
}

func itemSize(it catalog.Item) string {
	switch {
	case it.SizeInch != "" && it.SizeMm != "":
		return fmt.Sprintf("%s / %s", it.SizeInch, it.SizeMm)
	case it.SizeInch != "":
		return it.SizeInch
	default:
		return it.SizeMm
	}
}

func newItemShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showItem(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func showItem(opts *RootOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	it, ok, err := a.catalog.Get(id)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading item", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("item %s not found", id))
	}

	text := fmt.Sprintf("%s\n  name: %s\n  size: %s\n  code: %s\n  rate: %s\n",
		it.ID, it.Name, itemSize(it), it.ItemCode, a.render.Currency(it.Rate))

	f := opts.formatter(cmd)
	return f.SuccessText(text, it)
}

func newItemUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a catalog item",
		Long: `Update fields of a catalog item. Only the flags given change;
every other field keeps its stored value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateItem(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "item name")
	cmd.Flags().StringVar(&opts.SizeInch, "size-inch", "", "size in inches")
	cmd.Flags().StringVar(&opts.SizeMm, "size-mm", "", "size in millimetres")
	cmd.Flags().StringVar(&opts.ItemCode, "code", "", "item code")
	cmd.Flags().StringVar(&opts.Rate, "rate", "", "unit rate")
	cmd.Flags().StringVar(&opts.Photo, "photo", "", "photo data or path reference")

	return cmd
}

func updateItem(opts *ItemOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	var p catalog.Patch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &opts.Name
	}
	if flags.Changed("size-inch") {
		p.SizeInch = &opts.SizeInch
	}
	if flags.Changed("size-mm") {
		p.SizeMm = &opts.SizeMm
	}
	if flags.Changed("code") {
		p.ItemCode = &opts.ItemCode
	}
	if flags.Changed("rate") {
		rate := parseAmount(opts.Rate)
		p.Rate = &rate
	}
	if flags.Changed("photo") {
		p.Photo = &opts.Photo
	}

	ok, err := a.catalog.Update(id, p)
	if err != nil {
		return WrapExitError(ExitCommandError, "updating item", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("item %s not found", id))
	}

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("updated item %s\n", id), map[string]string{"id": id})
}

func newItemDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteItem(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func deleteItem(opts *RootOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.catalog.Delete(id)
	if err != nil {
		return WrapExitError(ExitCommandError, "deleting item", err)
	}
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("item %s not found", id))
	}

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("deleted item %s\n", id), map[string]string{"id": id})
}

func newItemExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ItemOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportItems(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "out", "o", "", "write to file instead of stdout")

	return cmd
}

func exportItems(opts *ItemOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.catalog.ExportJSON()
	if err != nil {
		return WrapExitError(ExitCommandError, "exporting catalog", err)
	}

	if opts.File != "" {
		if err := os.WriteFile(opts.File, data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing export file", err)
		}
		f := opts.formatter(cmd)
		return f.SuccessText(fmt.Sprintf("exported catalog to %s\n", opts.File),
			map[string]string{"file": opts.File})
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newItemImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import catalog items from a JSON file",
		Long: `Import catalog items from a JSON file.

The file must contain a JSON array of item objects. Imported items
receive fresh ids and are appended to the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importItems(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func importItems(opts *RootOptions, path string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading import file", err)
	}

	n, err := a.catalog.ImportJSON(data)
	if err != nil {
		return WrapExitError(ExitFailure, "importing catalog", err)
	}

	f := opts.formatter(cmd)
	return f.SuccessText(fmt.Sprintf("imported %d items\n", n),
		map[string]int{"imported": n})
}

// parseAmount converts flag input to a decimal amount, treating
// anything unparseable as zero.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
