package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/models"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

// BillHandler exposes the sales side of the document engine.
type BillHandler struct {
	DB   *gorm.DB
	Docs *services.DocumentService
	Auto *services.AutoBillService
}

func NewBillHandler(db *gorm.DB, docs *services.DocumentService, auto *services.AutoBillService) *BillHandler {
	return &BillHandler{DB: db, Docs: docs, Auto: auto}
}

// documentError maps service-layer failures onto the uniform HTTP surface.
func documentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoItems):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "required"})
	case errors.Is(err, services.ErrInvalidItem):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "invalid_product_or_quantity"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_reference", map[string]string{"detail": err.Error()})
	case services.IsConstraint(err):
		httpx.JSONError(w, http.StatusConflict, "constraint_violation", map[string]string{"detail": err.Error()})
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "operation_failed", nil)
	}
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	dbq := h.DB.Model(&models.Bill{})
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start != "" && end != "" {
		dbq = dbq.Where("bill_date BETWEEN ? AND ?", start, end)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := "%" + strings.ToLower(searchSanitizer.ReplaceAllString(q, "")) + "%"
		dbq = dbq.Where("lower(customer_name) LIKE ?", like)
	}
	var total int64
	dbq.Count(&total)
	var bills []models.Bill
	if err := dbq.Preload("Items").Order("id desc").Limit(limit).Offset(offset).Find(&bills).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_bills", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": bills, "total": total, "limit": limit, "offset": offset})
}

func decodeBillInput(r *http.Request) (services.BillInput, validation.Violations, error) {
	var in services.BillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, nil, err
	}
	v := validation.Violations{}
	validation.Required("date", in.Date, v)
	if in.Date != "" {
		validation.ISODate("date", in.Date, v)
	}
	if len(in.Items) == 0 {
		v["items"] = "required"
	}
	return in, v, nil
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, v, err := decodeBillInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	bill, err := h.Docs.CreateBill(in)
	if err != nil {
		documentError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, bill)
}

func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	in, v, err := decodeBillInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	bill, err := h.Docs.UpdateBill(id, in)
	if err != nil {
		// A bare not-found means the bill id itself; wrapped ones name a product.
		if errors.Is(err, gorm.ErrRecordNotFound) && !strings.Contains(err.Error(), "product") {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		documentError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Docs.DeleteBill(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	bill, err := h.Docs.GetBill(id)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

// AutoGenerate synthesizes daily cash bills for one product over a range.
func (h *BillHandler) AutoGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID     uint   `json:"product_id"`
		Start         string `json:"start"`
		End           string `json:"end"`
		TotalQuantity int    `json:"total_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.ISODate("start", req.Start, v)
	validation.ISODate("end", req.End, v)
	validation.PositiveInt("total_quantity", req.TotalQuantity, v)
	if req.ProductID == 0 {
		v["product_id"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	results, err := h.Auto.Generate(req.Start, req.End, req.ProductID, req.TotalQuantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientStock):
			httpx.JSONError(w, http.StatusBadRequest, "insufficient_stock", map[string]string{"detail": err.Error()})
		case errors.Is(err, services.ErrInvalidDateRange):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date_range", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "auto_generate_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"bills": results, "count": len(results)})
}
