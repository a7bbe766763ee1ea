// Package receipt renders printable documents for bills and purchase
// orders: a styled standalone HTML page suitable for the browser print
// dialog. PDF output lives in internal/pdfgen.
package receipt

import (
	"html/template"
	"io"

	"github.com/diewo77/retail-pos/internal/models"
)

type Line struct {
	Name     string
	Size     string
	Quantity int
	Rate     float64
	GST      float64
	Amount   float64
}

type Data struct {
	Title      string
	DocNumber  uint
	Date       string
	PartyLabel string
	PartyName  string
	PayMode    string
	Remarks    string
	Lines      []Line
	TotalRows  []TotalRow
	Store      *models.StoreInfo
}

type TotalRow struct {
	Label string
	Value float64
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} #{{.DocNumber}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 2em; color: #222; }
header { text-align: center; border-bottom: 2px solid #222; padding-bottom: .5em; }
header h1 { margin: 0; font-size: 1.4em; }
header p { margin: .2em 0; font-size: .85em; }
.meta { display: flex; justify-content: space-between; margin: 1em 0; font-size: .9em; }
table { width: 100%; border-collapse: collapse; font-size: .9em; }
th, td { border: 1px solid #999; padding: .35em .6em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tfoot td { font-weight: bold; }
.remarks { margin-top: 1em; font-size: .8em; color: #555; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
{{if .Store}}<h1>{{.Store.Name}}</h1><p>{{.Store.Address}}</p><p>VAT: {{.Store.VATNumber}}</p>{{else}}<h1>{{.Title}}</h1>{{end}}
</header>
<div class="meta">
<span>{{.Title}} #{{.DocNumber}} &mdash; {{.Date}}</span>
<span>{{.PartyLabel}}: {{.PartyName}}{{if .PayMode}} ({{.PayMode}}){{end}}</span>
</div>
<table>
<thead><tr><th>Item</th><th>Size</th><th>Qty</th><th>Rate</th><th>Tax</th><th>Amount</th></tr></thead>
<tbody>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Size}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Rate}}</td><td>{{printf "%.2f" .GST}}</td><td>{{printf "%.2f" .Amount}}</td></tr>
{{end}}</tbody>
<tfoot>
{{range .TotalRows}}<tr><td colspan="5">{{.Label}}</td><td>{{printf "%.2f" .Value}}</td></tr>
{{end}}</tfoot>
</table>
{{if .Remarks}}<p class="remarks">{{.Remarks}}</p>{{end}}
</body>
</html>
`

var pageTpl = template.Must(template.New("receipt").Parse(page))

// Render writes the document page for the prepared data.
func Render(w io.Writer, d Data) error { return pageTpl.Execute(w, d) }

// ForBill maps a loaded bill (items with products preloaded) to renderable
// data.
func ForBill(b *models.Bill, store *models.StoreInfo) Data {
	d := Data{
		Title:      "Bill",
		DocNumber:  b.ID,
		Date:       b.BillDate,
		PartyLabel: "Customer",
		PartyName:  b.CustomerName,
		PayMode:    b.PayMode,
		Remarks:    b.Remarks,
		Store:      store,
		TotalRows: []TotalRow{
			{Label: "Sub-Total", Value: b.SubTotal},
			{Label: "Total GST", Value: b.TotalGST},
			{Label: "Grand Total", Value: b.GrandTotal},
		},
	}
	for _, it := range b.Items {
		d.Lines = append(d.Lines, Line{
			Name: it.Product.Name, Size: it.Product.Size,
			Quantity: it.Quantity, Rate: it.Rate, GST: it.GSTAmount, Amount: it.Amount,
		})
	}
	return d
}

// ForPurchaseOrder maps a loaded order (vendor and item products preloaded).
func ForPurchaseOrder(po *models.PurchaseOrder, store *models.StoreInfo) Data {
	d := Data{
		Title:      "Purchase Order",
		DocNumber:  po.ID,
		Date:       po.PurchaseDate,
		PartyLabel: "Vendor",
		PartyName:  po.Vendor.Name,
		Remarks:    po.Remarks,
		Store:      store,
		TotalRows: []TotalRow{
			{Label: "Total Amount", Value: po.TotalAmount},
			{Label: "Total GST", Value: po.TotalGST},
			{Label: "Total TCS", Value: po.TotalTCS},
			{Label: "Grand Total", Value: po.GrandTotal},
		},
	}
	for _, it := range po.Items {
		d.Lines = append(d.Lines, Line{
			Name: it.Product.Name, Size: it.Product.Size,
			Quantity: it.Quantity, Rate: it.Rate, GST: it.GSTAmount, Amount: it.Amount,
		})
	}
	return d
}
