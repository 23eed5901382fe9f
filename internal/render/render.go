// Package render produces the printable surfaces of the application:
// invoice and report text for the terminal, and PDF invoices for
// printing. Layout mirrors the shop's paper bill: letterhead, numbered
// item lines with sizes, grand total, slogan footer.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/srplumbing/srbill/internal/config"
	"github.com/srplumbing/srbill/internal/invoices"
	"github.com/srplumbing/srbill/internal/reports"
)

const rule = "============================================================"

// Renderer formats invoices and reports using the configured company
// profile and locale.
type Renderer struct {
	company config.Company
	symbol  string
	printer *message.Printer
}

// New creates a renderer from configuration. An unknown locale tag
// falls back to en-IN, whose digit grouping matches the original
// application's currency display.
func New(cfg config.Config) *Renderer {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}
	return &Renderer{
		company: cfg.Company,
		symbol:  cfg.CurrencySymbol,
		printer: message.NewPrinter(tag),
	}
}

// Currency formats an amount with the configured symbol and
// locale-aware digit grouping, always with two fraction digits.
func (r *Renderer) Currency(d decimal.Decimal) string {
	f, _ := d.Float64()
	return r.printer.Sprintf("%s%v", r.symbol,
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Invoice writes the printable text form of an invoice.
func (r *Renderer) Invoice(w io.Writer, inv invoices.Invoice) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(r.company.Name + "\n")
	if r.company.Address != "" {
		b.WriteString(r.company.Address + "\n")
	}
	if r.company.Phone != "" {
		b.WriteString("Phone: " + r.company.Phone + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString("Invoice Number: " + inv.ID + "\n")
	b.WriteString("Date: " + inv.Date + "\n")
	b.WriteString("\n")

	for i, line := range inv.Lines {
		b.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, line.Name, sizeNote(line)))
		b.WriteString(fmt.Sprintf("   Rate: %s  Qty: %d  Total: %s\n",
			r.Currency(line.Rate), line.Quantity, r.Currency(line.Total)))
	}

	b.WriteString("\n")
	b.WriteString("Grand Total: " + r.Currency(inv.TotalAmount) + "\n")
	if r.company.Slogan != "" {
		b.WriteString(rule + "\n")
		b.WriteString(r.company.Slogan + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DailyReport writes the text form of a daily report.
func (r *Renderer) DailyReport(w io.Writer, d reports.Daily) error {
	var b strings.Builder

	b.WriteString("Daily Report: " + d.Date + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Total Invoices: %d\n", d.TotalInvoices))
	b.WriteString("Total Amount: " + r.Currency(d.TotalAmount) + "\n")
	b.WriteString("\n")

	if len(d.Invoices) == 0 {
		b.WriteString("No invoices found for this date.\n")
	} else {
		b.WriteString("Invoices:\n")
		for _, inv := range d.Invoices {
			b.WriteString(fmt.Sprintf("  %s  %s  %d item(s)  %s\n",
				inv.ID, inv.Date, len(inv.Lines), r.Currency(inv.TotalAmount)))
		}
	}
	b.WriteString("\n")
	r.writeMethods(&b, d.PaymentMethods, "No payment methods recorded for this date.")

	_, err := io.WriteString(w, b.String())
	return err
}

// MonthlyReport writes the text form of a monthly report.
func (r *Renderer) MonthlyReport(w io.Writer, m reports.Monthly) error {
	var b strings.Builder

	b.WriteString("Monthly Report: " + m.Month + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Total Invoices: %d\n", m.TotalInvoices))
	b.WriteString("Total Amount: " + r.Currency(m.TotalAmount) + "\n")
	b.WriteString(fmt.Sprintf("Total Payments: %d\n", m.TotalPayments))
	b.WriteString("\n")
	r.writeMethods(&b, m.PaymentMethods, "No payment methods recorded for this month.")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeMethods renders the per-method breakdown in sorted order so
// output is deterministic.
func (r *Renderer) writeMethods(b *strings.Builder, methods map[string]decimal.Decimal, empty string) {
	if len(methods) == 0 {
		b.WriteString(empty + "\n")
		return
	}
	b.WriteString("Payment Methods:\n")
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("  " + name + ": " + r.Currency(methods[name]) + "\n")
	}
}

// sizeNote renders the size annotation of a line, matching the paper
// bill's `(1/2", 15 mm)` style. Lines without sizes get no note.
func sizeNote(line invoices.Line) string {
	switch {
	case line.SizeInch != "" && line.SizeMm != "":
		return fmt.Sprintf(" (%s\", %s mm)", line.SizeInch, line.SizeMm)
	case line.SizeInch != "":
		return fmt.Sprintf(" (%s\")", line.SizeInch)
	case line.SizeMm != "":
		return fmt.Sprintf(" (%s mm)", line.SizeMm)
	}
	return ""
}
