package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/httpx"
	"github.com/diewo77/retail-pos/internal/models"
	"github.com/diewo77/retail-pos/internal/services"
	"github.com/diewo77/retail-pos/internal/validation"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

var searchSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_.]`)

// pageParams reads limit/page query params with the shared defaults.
func pageParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}

func idParam(r *http.Request) uint {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	id, _ := strconv.Atoi(idStr)
	if id < 0 {
		return 0
	}
	return uint(id)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	dbq := h.DB.Model(&models.Product{})
	if q != "" {
		like := "%" + strings.ToLower(searchSanitizer.ReplaceAllString(q, "")) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(category) LIKE ?", like, like)
	}
	var total int64
	dbq.Count(&total)
	var products []models.Product
	if err := dbq.Order("name").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": total, "limit": limit, "offset": offset})
}

type productInput struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Size          string  `json:"size"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	Category      string  `json:"category"`
	GSTCategory   string  `json:"gst_category"`
	Barcode1      string  `json:"barcode1"`
	Barcode2      string  `json:"barcode2"`
	Barcode3      string  `json:"barcode3"`
}

func (in *productInput) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("gst_category", in.GSTCategory, v)
	validation.PositiveFloat("purchase_price", in.PurchasePrice, v)
	validation.PositiveFloat("selling_price", in.SellingPrice, v)
	return v
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input productInput
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		input.Name = r.FormValue("name")
		input.Type = r.FormValue("type")
		input.Size = r.FormValue("size")
		input.PurchasePrice, _ = strconv.ParseFloat(r.FormValue("purchase_price"), 64)
		input.SellingPrice, _ = strconv.ParseFloat(r.FormValue("selling_price"), 64)
		input.Category = r.FormValue("category")
		input.GSTCategory = r.FormValue("gst_category")
		input.Barcode1 = r.FormValue("barcode1")
		input.Barcode2 = r.FormValue("barcode2")
		input.Barcode3 = r.FormValue("barcode3")
	}
	if v := input.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{
		Name: strings.TrimSpace(input.Name), Type: input.Type, Size: strings.TrimSpace(input.Size),
		PurchasePrice: input.PurchasePrice, SellingPrice: input.SellingPrice,
		Category: input.Category, GSTCategory: input.GSTCategory,
		Barcode2: input.Barcode2, Barcode3: input.Barcode3,
	}
	if b := strings.TrimSpace(input.Barcode1); b != "" {
		p.Barcode1 = &b
	}
	if err := h.DB.Create(&p).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "product_name_size_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update merges the provided fields into the stored row. Stock is immutable
// here: only the document engine moves it.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Product
	if err := h.DB.First(&p, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Name          *string  `json:"name"`
		Type          *string  `json:"type"`
		Size          *string  `json:"size"`
		PurchasePrice *float64 `json:"purchase_price"`
		SellingPrice  *float64 `json:"selling_price"`
		Category      *string  `json:"category"`
		GSTCategory   *string  `json:"gst_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Name != nil {
		p.Name = strings.TrimSpace(*body.Name)
	}
	if body.Type != nil {
		p.Type = *body.Type
	}
	if body.Size != nil {
		p.Size = strings.TrimSpace(*body.Size)
	}
	if body.PurchasePrice != nil {
		p.PurchasePrice = *body.PurchasePrice
	}
	if body.SellingPrice != nil {
		p.SellingPrice = *body.SellingPrice
	}
	if body.Category != nil {
		p.Category = *body.Category
	}
	if body.GSTCategory != nil {
		p.GSTCategory = *body.GSTCategory
	}
	if err := h.DB.Save(&p).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "product_name_size_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		if services.IsConstraint(err) {
			httpx.JSONError(w, http.StatusConflict, "record_in_use", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
