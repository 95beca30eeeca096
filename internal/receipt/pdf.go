// internal/receipt/pdf.go
package receipt

import (
	"bytes"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/go-pdf/fpdf"
)

// PDF renders the receipt as an A5 PDF document.
func PDF(d *models.ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(14, 16, 14)
	pdf.AddPage()

	// Core PDF fonts are cp1252; the naira sign needs translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "PhCityRent", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(14, pdf.GetY(), 134, pdf.GetY())
	pdf.Ln(4)

	for _, r := range rows(d) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(40, 7, tr(r.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 7, tr(r.Value), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Thank you for paying with PhCityRent.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}
