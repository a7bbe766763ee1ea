package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/db"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(conn)
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/health", "/healthz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"ok"`) {
			t.Fatalf("%s body = %s", path, rec.Body.String())
		}
	}
}

func TestMethodNotAllowedOnCollections(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET,POST" {
		t.Fatalf("Allow = %q", allow)
	}
}

func TestUnknownPathReturnsJSONError(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRootBanner(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Retail POS API") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestEndToEndPurchaseThenSale(t *testing.T) {
	h := newTestRouter(t)

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := post("/taxes", `{"name":"VAT 18","value":18,"type":"GST"}`); rec.Code != http.StatusCreated {
		t.Fatalf("tax: %d %s", rec.Code, rec.Body.String())
	}
	if rec := post("/products", `{"name":"Old Oak","size":"750ml","purchase_price":60,"selling_price":100,"gst_category":"VAT 18"}`); rec.Code != http.StatusCreated {
		t.Fatalf("product: %d %s", rec.Code, rec.Body.String())
	}
	if rec := post("/vendors", `{"name":"Acme Distributors"}`); rec.Code != http.StatusCreated {
		t.Fatalf("vendor: %d %s", rec.Code, rec.Body.String())
	}
	if rec := post("/purchase-orders", `{"vendor_id":1,"date":"2026-02-01","invoice_number":"INV-1","items":[{"product_id":1,"quantity":10,"rate":60}]}`); rec.Code != http.StatusCreated {
		t.Fatalf("purchase: %d %s", rec.Code, rec.Body.String())
	}
	if rec := post("/bills", `{"date":"2026-02-02","customer_name":"Walk-in","items":[{"product_id":1,"quantity":4,"rate":100}]}`); rec.Code != http.StatusCreated {
		t.Fatalf("bill: %d %s", rec.Code, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/stock", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stock report: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"available_stock":6`) {
		t.Fatalf("stock report body = %s", rec.Body.String())
	}
}
