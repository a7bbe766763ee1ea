package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

// PurchaseOrderHandler exposes the restocking side of the document engine.
// There is deliberately no delete route; see DocumentService.
type PurchaseOrderHandler struct {
	Docs    *services.DocumentService
	Reports *services.ReportService
}

func NewPurchaseOrderHandler(docs *services.DocumentService, reports *services.ReportService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{Docs: docs, Reports: reports}
}

// List returns the order summary (header + vendor name), newest first, with
// optional ?invoice= substring search.
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Reports.PurchaseOrderSummary(strings.TrimSpace(r.URL.Query().Get("invoice")))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	po, err := h.Docs.GetPurchaseOrder(id)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

func decodePOInput(r *http.Request) (services.PurchaseOrderInput, validation.Violations, error) {
	var in services.PurchaseOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, nil, err
	}
	v := validation.Violations{}
	validation.Required("date", in.Date, v)
	if in.Date != "" {
		validation.ISODate("date", in.Date, v)
	}
	if in.VendorID == 0 {
		v["vendor_id"] = "required"
	}
	if len(in.Items) == 0 {
		v["items"] = "required"
	}
	return in, v, nil
}

func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, v, err := decodePOInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	po, err := h.Docs.CreatePurchaseOrder(in)
	if err != nil {
		documentError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, po)
}

func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	in, v, err := decodePOInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	po, err := h.Docs.UpdatePurchaseOrder(id, in)
	if err != nil {
		// A bare not-found means the order id; wrapped ones name the
		// missing product or vendor.
		if errors.Is(err, gorm.ErrRecordNotFound) && !strings.Contains(err.Error(), "product") && !strings.Contains(err.Error(), "vendor") {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		documentError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}
