package receipt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/diewo77/retail-pos/internal/models"
)

func sampleBill() *models.Bill {
	return &models.Bill{
		ID: 7, BillDate: "2026-03-05", CustomerName: "Walk-in", PayMode: "Cash",
		SubTotal: 169.49, TotalGST: 30.51, GrandTotal: 200,
		Items: []models.BillItem{{
			Product:  models.Product{Name: "Old Oak", Size: "750ml"},
			Quantity: 2, Rate: 100, GSTAmount: 30.51, Amount: 200,
		}},
	}
}

func TestRenderBillWithStore(t *testing.T) {
	store := &models.StoreInfo{Name: "Corner Wines", Address: "12 High St", VATNumber: "VAT-001"}
	d := ForBill(sampleBill(), store)

	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Corner Wines", "VAT-001", "Bill #7", "Old Oak", "Walk-in", "(Cash)", "Grand Total", "200.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestRenderBillWithoutStoreFallsBackToTitle(t *testing.T) {
	d := ForBill(sampleBill(), nil)

	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<h1>Bill</h1>") {
		t.Fatal("expected title header when store is unconfigured")
	}
}

func TestForPurchaseOrderTotals(t *testing.T) {
	po := &models.PurchaseOrder{
		ID: 3, PurchaseDate: "2026-02-15",
		Vendor:      models.Vendor{Name: "Acme Distributors"},
		TotalAmount: 200, TotalGST: 36, TotalTCS: 2.36, GrandTotal: 238.36,
		Items: []models.PurchaseOrderItem{{
			Product:  models.Product{Name: "Old Oak", Size: "750ml"},
			Quantity: 2, Rate: 100, GSTAmount: 36, Amount: 200,
		}},
	}
	d := ForPurchaseOrder(po, nil)
	if d.PartyName != "Acme Distributors" || d.PartyLabel != "Vendor" {
		t.Fatalf("party = %s/%s", d.PartyLabel, d.PartyName)
	}
	if len(d.TotalRows) != 4 || d.TotalRows[2].Label != "Total TCS" {
		t.Fatalf("total rows = %+v", d.TotalRows)
	}

	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "238.36") {
		t.Fatal("grand total missing from output")
	}
}
