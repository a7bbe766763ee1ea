package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/retail-pos/internal/models"
)

func TestCustomerCreateAndDuplicateMobile(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewCustomerHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/customers", map[string]any{
		"name": "Asha", "mobile": "9876543210", "city": "Pune",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/customers", map[string]any{
		"name": "Someone Else", "mobile": "9876543210",
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate mobile status = %d, want 409", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "mobile_already_exists" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewCustomerHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/customers", map[string]any{"name": "NoMobile"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCustomerUpdate(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewCustomerHandler(db)
	c := models.Customer{Name: "Asha", Mobile: "9876543210"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Update(rec, jsonReq(t, http.MethodPost, "/customers/update?id=1", map[string]any{
		"name": "Asha K", "mobile": "9876543210", "city": "Mumbai",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var got models.Customer
	if err := db.First(&got, c.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Asha K" || got.City != "Mumbai" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestVendorCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewVendorHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/vendors", map[string]any{
		"name": "Acme Distributors", "gst_number": "27AAA1234",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/vendors", map[string]any{
		"name": "Acme Distributors",
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate name status = %d, want 409", rec.Code)
	}
}

func TestVendorsWithoutGSTDoNotCollide(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewVendorHandler(db)

	for _, name := range []string{"First Supplier", "Second Supplier"} {
		rec := httptest.NewRecorder()
		h.Create(rec, jsonReq(t, http.MethodPost, "/vendors", map[string]any{"name": name}))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status = %d body=%s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestTaxCRUD(t *testing.T) {
	db := setupTestDB(t, t.Name())
	h := NewTaxHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/taxes", map[string]any{
		"name": "VAT 18", "value": 18, "type": "GST",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/taxes", map[string]any{
		"name": "VAT 18", "value": 12,
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate name status = %d, want 409", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Create(rec, jsonReq(t, http.MethodPost, "/taxes", map[string]any{
		"name": "Bad", "value": 180,
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range value status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/taxes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
}
