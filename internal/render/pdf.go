package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/srplumbing/srbill/internal/invoices"
)

// InvoicePDF writes an A4 PDF of the invoice. Amounts are rendered as
// plain decimals: the core PDF fonts cover latin-1 only, so the
// configured currency symbol (₹ by default) stays out of the PDF.
func (r *Renderer) InvoicePDF(w io.Writer, inv invoices.Invoice) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Letterhead.
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, r.company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if r.company.Address != "" {
		pdf.CellFormat(0, 5, r.company.Address, "", 1, "C", false, 0, "")
	}
	if r.company.Phone != "" {
		pdf.CellFormat(0, 5, "Phone: "+r.company.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Invoice Number: "+inv.ID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+inv.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Item table.
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 7, "Sl.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(98, 7, "Item (size inch, mm)", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, line := range inv.Lines {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 7, line.Name+pdfSizeNote(line), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, line.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, line.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, inv.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	if r.company.Slogan != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, r.company.Slogan, "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice pdf: %w", err)
	}
	return nil
}

// pdfSizeNote matches sizeNote but without the inch quote mark, which
// reads badly next to the table's own quoting.
func pdfSizeNote(line invoices.Line) string {
	switch {
	case line.SizeInch != "" && line.SizeMm != "":
		return fmt.Sprintf(" (%s in, %s mm)", line.SizeInch, line.SizeMm)
	case line.SizeInch != "":
		return fmt.Sprintf(" (%s in)", line.SizeInch)
	case line.SizeMm != "":
		return fmt.Sprintf(" (%s mm)", line.SizeMm)
	}
	return ""
}
