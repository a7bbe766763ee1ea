package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/models"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

type TaxHandler struct {
	DB *gorm.DB
}

func NewTaxHandler(db *gorm.DB) *TaxHandler { return &TaxHandler{DB: db} }

func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	var rates []models.TaxRate
	if err := h.DB.Order("tax_name").Find(&rates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_taxes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rates, "total": len(rates)})
}

func validateTax(tr *models.TaxRate) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", tr.Name, v)
	validation.RangeFloat("value", tr.Value, 0, 100, v)
	return v
}

func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tr models.TaxRate
	if err := json.NewDecoder(r.Body).Decode(&tr); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateTax(&tr); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tr.ID = 0
	if err := h.DB.Create(&tr).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "tax_name_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "tax_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tr)
}

func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var tr models.TaxRate
	if err := h.DB.First(&tr, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var in models.TaxRate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateTax(&in); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	tr.Name, tr.Value, tr.Type = in.Name, in.Value, in.Type
	if err := h.DB.Save(&tr).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "tax_name_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, tr)
}

func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.TaxRate{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
