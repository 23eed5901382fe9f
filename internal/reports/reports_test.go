package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srplumbing/srbill/internal/invoices"
	"github.com/srplumbing/srbill/internal/payments"
	"github.com/srplumbing/srbill/internal/storage"
	"github.com/srplumbing/srbill/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, *invoices.Service, *payments.Service, *storage.Store) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	st := storage.New(storage.NewMemSubstrate(), storage.WithClock(clock.Now))
	require.NoError(t, st.Init())
	inv := invoices.NewService(st)
	pay := payments.NewService(st)
	return NewEngine(inv, pay), inv, pay, st
}

func addInvoice(t *testing.T, svc *invoices.Service, date string, total int64) {
	t.Helper()
	amount := decimal.NewFromInt(total)
	_, err := svc.Add(invoices.Invoice{
		Date:  date,
		Lines: []invoices.Line{{Name: "Work", Rate: amount, Quantity: 1, Total: amount}},
	})
	require.NoError(t, err)
}

func addPayment(t *testing.T, svc *payments.Service, date, method string, amount int64) {
	t.Helper()
	_, err := svc.Add(payments.Payment{
		Method: method,
		Amount: decimal.NewFromInt(amount),
		Date:   date,
	})
	require.NoError(t, err)
}

func TestDailyReportTotals(t *testing.T) {
	eng, inv, _, _ := newTestEngine(t)

	addInvoice(t, inv, "2024-03-01", 500)
	addInvoice(t, inv, "2024-03-01", 300)
	addInvoice(t, inv, "2024-03-02", 100)

	d, err := eng.DailyReport("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.Date)
	assert.Equal(t, 2, d.TotalInvoices)
	assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(800)))
	assert.Len(t, d.Invoices, 2)
}

func TestDailyReportPaymentMethods(t *testing.T) {
	eng, _, pay, _ := newTestEngine(t)

	addPayment(t, pay, "2024-03-01", "CARD", 200)
	addPayment(t, pay, "2024-03-01", "UPI", 300)
	addPayment(t, pay, "2024-03-02", "CARD", 999)

	d, err := eng.DailyReport("2024-03-01")
	require.NoError(t, err)
	require.Len(t, d.PaymentMethods, 2)
	assert.True(t, d.PaymentMethods["CARD"].Equal(decimal.NewFromInt(200)))
	assert.True(t, d.PaymentMethods["UPI"].Equal(decimal.NewFromInt(300)))
}

func TestDailyReportMethodTotalsMatchPaymentSum(t *testing.T) {
	eng, _, pay, st := newTestEngine(t)

	addPayment(t, pay, "2024-03-01", "CARD", 200)
	addPayment(t, pay, "2024-03-01", "CARD", 150)
	addPayment(t, pay, "2024-03-01", "UPI", 300)
	// Records written behind the service's back: no method, bad amount.
	_, err := st.Save(storage.Payments, storage.Record{"date": "2024-03-01", "amount": 50})
	require.NoError(t, err)
	_, err = st.Save(storage.Payments, storage.Record{"date": "2024-03-01", "method": "CASH", "amount": "bad"})
	require.NoError(t, err)

	d, err := eng.DailyReport("2024-03-01")
	require.NoError(t, err)

	methodSum := decimal.Zero
	for _, amount := range d.PaymentMethods {
		methodSum = methodSum.Add(amount)
	}
	paymentSum := decimal.Zero
	for _, p := range d.Payments {
		paymentSum = paymentSum.Add(p.Amount)
	}
	assert.True(t, methodSum.Equal(paymentSum), "breakdown must sum to the payment total")
	assert.True(t, methodSum.Equal(decimal.NewFromInt(700)), "bad amount counts as 0")

	assert.True(t, d.PaymentMethods[UnknownMethod].Equal(decimal.NewFromInt(50)))
	assert.True(t, d.PaymentMethods["CASH"].IsZero())
}

func TestDailyReportNonNumericInvoiceTotalCountsAsZero(t *testing.T) {
	eng, inv, _, st := newTestEngine(t)

	addInvoice(t, inv, "2024-03-01", 500)
	_, err := st.Save(storage.Invoices, storage.Record{"date": "2024-03-01", "totalAmount": "garbage"})
	require.NoError(t, err)

	d, err := eng.DailyReport("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalInvoices, "bad record is counted, not skipped")
	assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func TestDailyReportEmptyDay(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	d, err := eng.DailyReport("2024-03-09")
	require.NoError(t, err)
	assert.Zero(t, d.TotalInvoices)
	assert.True(t, d.TotalAmount.IsZero())
	assert.Empty(t, d.Invoices)
	assert.Empty(t, d.Payments)
	assert.Empty(t, d.PaymentMethods)
}

func TestMonthlyReportRange(t *testing.T) {
	eng, inv, pay, _ := newTestEngine(t)

	addInvoice(t, inv, "2024-02-29", 90) // leap day, prior month
	addInvoice(t, inv, "2024-03-01", 500)
	addInvoice(t, inv, "2024-03-31", 300)
	addInvoice(t, inv, "2024-04-01", 777)
	addPayment(t, pay, "2024-03-15", "CARD", 450)
	addPayment(t, pay, "2024-04-02", "UPI", 10)

	m, err := eng.MonthlyReport("2024-03")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalInvoices)
	assert.True(t, m.TotalAmount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 1, m.TotalPayments)
	assert.True(t, m.PaymentMethods["CARD"].Equal(decimal.NewFromInt(450)))
}

func TestMonthlyReportInvalidMonth(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	_, err := eng.MonthlyReport("March 2024")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	eng, inv, _, _ := newTestEngine(t)

	addInvoice(t, inv, "2024-03-01", 500)
	addInvoice(t, inv, "2024-03-01", 300)

	d, err := eng.DailyReport("2024-03-01")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, d))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Date,2024-03-01", lines[0])
	assert.Equal(t, "Total Invoices,2", lines[1])
	assert.Equal(t, "Total Amount,800.00", lines[2])
	assert.Equal(t, "Invoice Number,Date,Items,Total Amount", lines[4])
	assert.Contains(t, lines[5], ",2024-03-01,1,500.00")
	assert.Contains(t, lines[6], ",2024-03-01,1,300.00")
}
