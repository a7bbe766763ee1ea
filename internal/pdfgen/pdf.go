// Package pdfgen renders bills and purchase orders as A4 PDFs for download.
package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/diewo77/retail-pos/internal/receipt"
)

// Document renders the shared receipt layout (header, item table, totals)
// to PDF bytes. It accepts the same prepared data as the HTML renderer so
// both outputs always agree.
func Document(d receipt.Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if d.Store != nil {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 8, d.Store.Name, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, d.Store.Address, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "VAT: "+d.Store.VATNumber, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s #%d - %s", d.Title, d.DocNumber, d.Date), "T", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	party := d.PartyLabel + ": " + d.PartyName
	if d.PayMode != "" {
		party += " (" + d.PayMode + ")"
	}
	pdf.CellFormat(0, 6, party, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	colW := []float64{70, 20, 15, 25, 25, 30}
	headers := []string{"Item", "Size", "Qty", "Rate", "Tax", "Amount"}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, l := range d.Lines {
		pdf.CellFormat(colW[0], 6, l.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 6, l.Size, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 6, fmt.Sprintf("%d", l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 6, fmt.Sprintf("%.2f", l.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 6, fmt.Sprintf("%.2f", l.GST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[5], 6, fmt.Sprintf("%.2f", l.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 9)
	labelW := colW[0] + colW[1] + colW[2] + colW[3] + colW[4]
	for _, t := range d.TotalRows {
		pdf.CellFormat(labelW, 6, t.Label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[5], 6, fmt.Sprintf("%.2f", t.Value), "1", 1, "R", false, 0, "")
	}
	if d.Remarks != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 4, d.Remarks, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
