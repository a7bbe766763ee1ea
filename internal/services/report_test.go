package services

import (
	"testing"
)

func TestStockReportWithDatesOpeningIdentity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	p := seedProduct(t, db, "Old Oak", 0)
	v := seedVendor(t, db, "Acme Distributors")
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	if _, err := docs.CreatePurchaseOrder(PurchaseOrderInput{
		VendorID: v.ID, Date: "2026-03-02",
		Items: []LineInput{{ProductID: p.ID, Quantity: 10, Rate: 60}},
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := docs.CreateBill(BillInput{
		Date:  "2026-03-05",
		Items: []LineInput{{ProductID: p.ID, Quantity: 4, Rate: 100}},
	}); err != nil {
		t.Fatalf("bill: %v", err)
	}

	rows, err := reports.StockReportWithDates("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	// closing = 0 + 10 - 4 = 6; opening = closing + sold - bought = 0
	if r.ClosingStock != 6 || r.OpeningStock != 0 {
		t.Fatalf("opening=%d closing=%d, want 0/6", r.OpeningStock, r.ClosingStock)
	}
	if r.SalesQty != 4 || r.PurchaseQty != 10 {
		t.Fatalf("sales=%d purchases=%d, want 4/10", r.SalesQty, r.PurchaseQty)
	}
}

func TestProductWiseSalesOrdersByQuantity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	slow := seedProduct(t, db, "Slow Mover", 100)
	fast := seedProduct(t, db, "Fast Mover", 100)
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	if _, err := docs.CreateBill(BillInput{Date: "2026-03-01", Items: []LineInput{
		{ProductID: slow.ID, Quantity: 2, Rate: 100},
		{ProductID: fast.ID, Quantity: 9, Rate: 100},
	}}); err != nil {
		t.Fatalf("bill: %v", err)
	}

	rows, err := reports.ProductWiseSales("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ProductName != "Fast Mover" || rows[0].Quantity != 9 {
		t.Fatalf("first row = %+v, want Fast Mover qty 9", rows[0])
	}
}

func TestPurchaseReportVendorFilter(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	p := seedProduct(t, db, "Old Oak", 0)
	v1 := seedVendor(t, db, "Acme Distributors")
	v2 := seedVendor(t, db, "Beta Beverages")
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	for _, vid := range []uint{v1.ID, v2.ID} {
		if _, err := docs.CreatePurchaseOrder(PurchaseOrderInput{
			VendorID: vid, Date: "2026-02-10",
			Items: []LineInput{{ProductID: p.ID, Quantity: 1, Rate: 60}},
		}); err != nil {
			t.Fatalf("purchase: %v", err)
		}
	}

	all, err := reports.PurchaseReport("2026-02-01", "2026-02-28", 0)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered rows = %d, want 2", len(all))
	}
	only, err := reports.PurchaseReport("2026-02-01", "2026-02-28", v2.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(only) != 1 || only[0].VendorName != "Beta Beverages" {
		t.Fatalf("filtered rows = %+v", only)
	}
}

func TestBillReportRangeIsInclusive(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	p := seedProduct(t, db, "Old Oak", 100)
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	for _, date := range []string{"2026-02-28", "2026-03-01", "2026-03-31", "2026-04-01"} {
		if _, err := docs.CreateBill(BillInput{Date: date, Items: []LineInput{
			{ProductID: p.ID, Quantity: 1, Rate: 100},
		}}); err != nil {
			t.Fatalf("bill %s: %v", date, err)
		}
	}

	rows, err := reports.BillReport("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want both boundary dates included and nothing else", len(rows))
	}
}

func TestSizeToLitres(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"750ml", 0.75},
		{"330ML", 0.33},
		{"1.5L", 1.5},
		{" 2 l ", 2},
		{"1l", 1},
		{"bottle", 0},
		{"", 0},
		{"xl", 0},
	}
	for _, c := range cases {
		if got := SizeToLitres(c.in); !approx(got, c.want) {
			t.Fatalf("SizeToLitres(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBulkLitreReport(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	bottle := seedProduct(t, db, "Old Oak", 100) // 750ml
	keg := seedProduct(t, db, "Keg Lager", 100)
	db.Model(&keg).Update("size", "1.5L")
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	if _, err := docs.CreateBill(BillInput{Date: "2026-03-01", Items: []LineInput{
		{ProductID: bottle.ID, Quantity: 4, Rate: 100}, // 3.0 L
		{ProductID: keg.ID, Quantity: 3, Rate: 100},    // 4.5 L
	}}); err != nil {
		t.Fatalf("bill: %v", err)
	}

	rows, err := reports.BulkLitreReport("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ProductName != "Keg Lager" || !approx(rows[0].TotalLitres, 4.5) {
		t.Fatalf("first row = %+v, want Keg Lager 4.5L", rows[0])
	}
	if rows[1].ProductName != "Old Oak" || !approx(rows[1].TotalLitres, 3) {
		t.Fatalf("second row = %+v, want Old Oak 3L", rows[1])
	}
}

func TestPurchaseOrderSummaryInvoiceSearch(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedTax(t, db, "VAT 18", 18)
	p := seedProduct(t, db, "Old Oak", 0)
	v := seedVendor(t, db, "Acme Distributors")
	docs := NewDocumentService(db)
	reports := NewReportService(db)

	for _, inv := range []string{"INV-100", "INV-101", "OTHER-5"} {
		if _, err := docs.CreatePurchaseOrder(PurchaseOrderInput{
			VendorID: v.ID, Date: "2026-02-10", InvoiceNumber: inv,
			Items: []LineInput{{ProductID: p.ID, Quantity: 1, Rate: 60}},
		}); err != nil {
			t.Fatalf("purchase %s: %v", inv, err)
		}
	}

	rows, err := reports.PurchaseOrderSummary("INV-10")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// newest first
	if rows[0].InvoiceNumber != "INV-101" {
		t.Fatalf("first row = %+v, want INV-101", rows[0])
	}
}
