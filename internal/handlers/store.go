package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

// StoreHandler reads and writes the single store_info record that receipts
// and printed documents are headed with.
type StoreHandler struct {
	Svc *services.StoreService
}

func NewStoreHandler(svc *services.StoreService) *StoreHandler { return &StoreHandler{Svc: svc} }

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.Svc.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_lookup_failed", nil)
		return
	}
	if info == nil {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *StoreHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name      string `json:"name"`
		Address   string `json:"address"`
		VATNumber string `json:"vat_number"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in.Name = r.FormValue("name")
		in.Address = r.FormValue("address")
		in.VATNumber = r.FormValue("vat_number")
	}

	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("address", in.Address, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	info, err := h.Svc.Upsert(strings.TrimSpace(in.Name), strings.TrimSpace(in.Address), strings.TrimSpace(in.VATNumber))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_save_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *StoreHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPost, http.MethodPut:
		h.Upsert(w, r)
	default:
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}
