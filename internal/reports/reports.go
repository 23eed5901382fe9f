// Package reports derives daily and monthly aggregates from the
// invoice and payment services.
//
// The engine only reads. Totals come from each invoice's stored
// totalAmount (trusted, never recomputed from lines) and from payment
// amounts; anything unparseable was already coerced to zero by the
// typed service views, so aggregation never throws and never skips a
// record.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/srplumbing/srbill/internal/dates"
	"github.com/srplumbing/srbill/internal/invoices"
	"github.com/srplumbing/srbill/internal/payments"
)

// UnknownMethod labels payments recorded without a method in the
// per-method breakdown.
const UnknownMethod = "Unknown"

// Daily summarizes one calendar day.
type Daily struct {
	Date           string                     `json:"date"`
	TotalInvoices  int                        `json:"totalInvoices"`
	TotalAmount    decimal.Decimal            `json:"totalAmount"`
	Invoices       []invoices.Invoice         `json:"invoices"`
	Payments       []payments.Payment         `json:"payments"`
	PaymentMethods map[string]decimal.Decimal `json:"paymentMethods"`
}

// Monthly summarizes one calendar month, first to last day inclusive.
type Monthly struct {
	Month          string                     `json:"month"`
	TotalInvoices  int                        `json:"totalInvoices"`
	TotalAmount    decimal.Decimal            `json:"totalAmount"`
	TotalPayments  int                        `json:"totalPayments"`
	Invoices       []invoices.Invoice         `json:"invoices"`
	Payments       []payments.Payment         `json:"payments"`
	PaymentMethods map[string]decimal.Decimal `json:"paymentMethods"`
}

// Engine combines invoice and payment queries into reports.
type Engine struct {
	invoices *invoices.Service
	payments *payments.Service
}

// NewEngine creates a report engine reading through the given services.
func NewEngine(inv *invoices.Service, pay *payments.Service) *Engine {
	return &Engine{invoices: inv, payments: pay}
}

// DailyReport aggregates the invoices and payments of one calendar day.
func (e *Engine) DailyReport(date string) (Daily, error) {
	invs, err := e.invoices.GetByDate(date)
	if err != nil {
		return Daily{}, err
	}
	pays, err := e.payments.GetByDate(date)
	if err != nil {
		return Daily{}, err
	}

	return Daily{
		Date:           date,
		TotalInvoices:  len(invs),
		TotalAmount:    sumInvoices(invs),
		Invoices:       invs,
		Payments:       pays,
		PaymentMethods: methodBreakdown(pays),
	}, nil
}

// MonthlyReport aggregates everything dated within "YYYY-MM".
func (e *Engine) MonthlyReport(yearMonth string) (Monthly, error) {
	first, last, err := dates.MonthRange(yearMonth)
	if err != nil {
		return Monthly{}, err
	}

	allInvs, err := e.invoices.List()
	if err != nil {
		return Monthly{}, err
	}
	invs := make([]invoices.Invoice, 0)
	for _, inv := range allInvs {
		if dates.InRange(inv.Date, first, last) {
			invs = append(invs, inv)
		}
	}

	allPays, err := e.payments.List()
	if err != nil {
		return Monthly{}, err
	}
	pays := make([]payments.Payment, 0)
	for _, p := range allPays {
		if dates.InRange(p.Date, first, last) {
			pays = append(pays, p)
		}
	}

	return Monthly{
		Month:          yearMonth,
		TotalInvoices:  len(invs),
		TotalAmount:    sumInvoices(invs),
		TotalPayments:  len(pays),
		Invoices:       invs,
		Payments:       pays,
		PaymentMethods: methodBreakdown(pays),
	}, nil
}

func sumInvoices(invs []invoices.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invs {
		sum = sum.Add(inv.TotalAmount)
	}
	return sum
}

func methodBreakdown(pays []payments.Payment) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, p := range pays {
		method := p.Method
		if method == "" {
			method = UnknownMethod
		}
		breakdown[method] = breakdown[method].Add(p.Amount)
	}
	return breakdown
}
