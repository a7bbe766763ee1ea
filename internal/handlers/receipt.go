package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/pdfgen"
	"github.com/diewo77/retail-pos/internal/receipt"
	"github.com/diewo77/retail-pos/internal/services"
)

// ReceiptHandler renders bills and purchase orders as printable HTML pages
// or downloadable PDFs. The store_info record, when configured, becomes the
// document letterhead.
type ReceiptHandler struct {
	Docs  *services.DocumentService
	Store *services.StoreService
}

func NewReceiptHandler(docs *services.DocumentService, store *services.StoreService) *ReceiptHandler {
	return &ReceiptHandler{Docs: docs, Store: store}
}

func (h *ReceiptHandler) billData(w http.ResponseWriter, r *http.Request) (receipt.Data, bool) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return receipt.Data{}, false
	}
	bill, err := h.Docs.GetBill(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "bill_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "bill_lookup_failed", nil)
		}
		return receipt.Data{}, false
	}
	store, err := h.Store.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_lookup_failed", nil)
		return receipt.Data{}, false
	}
	return receipt.ForBill(bill, store), true
}

func (h *ReceiptHandler) poData(w http.ResponseWriter, r *http.Request) (receipt.Data, bool) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return receipt.Data{}, false
	}
	po, err := h.Docs.GetPurchaseOrder(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "purchase_order_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "purchase_order_lookup_failed", nil)
		}
		return receipt.Data{}, false
	}
	store, err := h.Store.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_lookup_failed", nil)
		return receipt.Data{}, false
	}
	return receipt.ForPurchaseOrder(po, store), true
}

// BillHTML serves GET /bills/receipt?id=N.
func (h *ReceiptHandler) BillHTML(w http.ResponseWriter, r *http.Request) {
	d, ok := h.billData(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := receipt.Render(w, d); err != nil {
		// headers are gone by now; nothing useful left to send
		return
	}
}

// BillPDF serves GET /bills/receipt.pdf?id=N.
func (h *ReceiptHandler) BillPDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.billData(w, r)
	if !ok {
		return
	}
	servePDF(w, d, fmt.Sprintf("bill_%d.pdf", d.DocNumber))
}

// PurchaseOrderPDF serves GET /purchase-orders/document.pdf?id=N.
func (h *ReceiptHandler) PurchaseOrderPDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.poData(w, r)
	if !ok {
		return
	}
	servePDF(w, d, fmt.Sprintf("purchase_order_%d.pdf", d.DocNumber))
}

func servePDF(w http.ResponseWriter, d receipt.Data, filename string) {
	buf, err := pdfgen.Document(d)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	_, _ = w.Write(buf)
}
