package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV renders a daily report as CSV: a summary block followed by
// one row per invoice. Amounts are written as plain decimals so
// spreadsheets parse them as numbers.
func WriteCSV(w io.Writer, d Daily) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Date", d.Date},
		{"Total Invoices", strconv.Itoa(d.TotalInvoices)},
		{"Total Amount", d.TotalAmount.StringFixed(2)},
		{},
		{"Invoice Number", "Date", "Items", "Total Amount"},
	}
	for _, inv := range d.Invoices {
		rows = append(rows, []string{
			inv.ID,
			inv.Date,
			strconv.Itoa(len(inv.Lines)),
			inv.TotalAmount.StringFixed(2),
		})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write report csv: %w", err)
	}
	return nil
}
