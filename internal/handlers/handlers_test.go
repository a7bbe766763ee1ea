package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.TaxRate{}, &models.Product{}, &models.Customer{}, &models.Vendor{},
		&models.PurchaseOrder{}, &models.PurchaseOrderItem{},
		&models.Bill{}, &models.BillItem{}, &models.StoreInfo{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name: name, Size: "750ml", Type: "Whisky",
		PurchasePrice: 60, SellingPrice: 100,
		GSTCategory: "VAT 18", Stock: stock,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedTax(t *testing.T, db *gorm.DB, name string, value float64) {
	t.Helper()
	if err := db.Create(&models.TaxRate{Name: name, Value: value, Type: "GST"}).Error; err != nil {
		t.Fatalf("seed tax: %v", err)
	}
}

func jsonReq(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
