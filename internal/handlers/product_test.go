package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/retail-pos/internal/models"
)

func TestProductCreateJSON(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/products", map[string]any{
		"name": "Old Oak", "size": "750ml", "type": "Whisky",
		"purchase_price": 60, "selling_price": 100, "gst_category": "VAT 18",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var p models.Product
	decodeBody(t, rec, &p)
	if p.ID == 0 || p.Stock != 0 {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestProductCreateForm(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)

	form := url.Values{}
	form.Set("name", "Old Oak")
	form.Set("size", "1L")
	form.Set("purchase_price", "60")
	form.Set("selling_price", "100")
	form.Set("gst_category", "VAT 18")
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestProductCreateDuplicateNameSize(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)
	seedProduct(t, db, "Old Oak", 0)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/products", map[string]any{
		"name": "Old Oak", "size": "750ml",
		"purchase_price": 60, "selling_price": 100, "gst_category": "VAT 18",
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/products", map[string]any{
		"name": "", "selling_price": 0,
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "validation_failed" || resp.Details["name"] != "required" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestProductListSearch(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)
	seedProduct(t, db, "Old Oak", 0)
	p2 := seedProduct(t, db, "River Gin", 0)
	db.Model(&p2).Update("size", "1L")

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/products?q=gin", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	decodeBody(t, rec, &resp)
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Name != "River Gin" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestProductUpdateMergesFields(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)
	p := seedProduct(t, db, "Old Oak", 7)

	rec := httptest.NewRecorder()
	h.Update(rec, jsonReq(t, http.MethodPost, "/products/update?id=1", map[string]any{
		"selling_price": 120,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var got models.Product
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.SellingPrice != 120 || got.Name != "Old Oak" {
		t.Fatalf("merge failed: %+v", got)
	}
	// stock is only moved by documents
	if got.Stock != 7 {
		t.Fatalf("stock changed by master-data update: %d", got.Stock)
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)

	rec := httptest.NewRecorder()
	h.Update(rec, jsonReq(t, http.MethodPost, "/products/update?id=99", map[string]any{"name": "X"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestProductDelete(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewProductHandler(db)
	p := seedProduct(t, db, "Old Oak", 0)

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/products/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatal("product still present after delete")
	}
}
