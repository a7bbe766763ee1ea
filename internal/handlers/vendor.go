package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/models"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

type VendorHandler struct {
	DB *gorm.DB
}

func NewVendorHandler(db *gorm.DB) *VendorHandler { return &VendorHandler{DB: db} }

type vendorInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Area      string `json:"area"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number"`
}

func (in *vendorInput) apply(v *models.Vendor) {
	v.Name = strings.TrimSpace(in.Name)
	v.Address, v.Area, v.City = in.Address, in.Area, in.City
	v.State, v.Pincode = in.State, in.Pincode
	v.Mobile, v.Email = in.Mobile, in.Email
	if g := strings.TrimSpace(in.GSTNumber); g != "" {
		v.GSTNumber = &g
	} else {
		v.GSTNumber = nil
	}
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	dbq := h.DB.Model(&models.Vendor{})
	if q != "" {
		like := "%" + strings.ToLower(searchSanitizer.ReplaceAllString(q, "")) + "%"
		dbq = dbq.Where("lower(name) LIKE ?", like)
	}
	var total int64
	dbq.Count(&total)
	var vendors []models.Vendor
	if err := dbq.Order("name").Limit(limit).Offset(offset).Find(&vendors).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_vendors", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": vendors, "total": total, "limit": limit, "offset": offset})
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in vendorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var vendor models.Vendor
	in.apply(&vendor)
	if err := h.DB.Create(&vendor).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "name_or_gst_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "vendor_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var vendor models.Vendor
	if err := h.DB.First(&vendor, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var in vendorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in.apply(&vendor)
	if err := h.DB.Save(&vendor).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "name_or_gst_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Vendor{}, id).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "record_in_use", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
