package models

import "time"

// PurchaseOrder is a restocking document: one header plus an owned set of
// line items. Totals are derived from the items and recomputed on every
// save. Line prices are tax-exclusive; GST is added on top of the rate and a
// TCS surcharge is applied on (amount + gst).
type PurchaseOrder struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	VendorID uint   `gorm:"not null;index" json:"vendor_id"`
	Vendor   Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	// ISO-8601 date (yyyy-mm-dd). Stored as text so BETWEEN filters compare
	// lexically, which for this format equals chronological order.
	PurchaseDate  string              `gorm:"not null" json:"purchase_date"`
	InvoiceNumber string              `json:"invoice_number"`
	TotalAmount   float64             `json:"total_amount"`
	TotalGST      float64             `gorm:"column:total_gst" json:"total_gst"`
	TotalTCS      float64             `gorm:"column:total_tcs;default:0" json:"total_tcs"`
	GrandTotal    float64             `json:"grand_total"`
	Remarks       string              `json:"remarks"`
	Items         []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PurchaseOrderItem is owned exclusively by one purchase order and replaced
// wholesale on edit.
type PurchaseOrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint    `gorm:"not null;index" json:"purchase_order_id"`
	ProductID       uint    `gorm:"not null" json:"product_id"`
	Product         Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	Rate            float64 `gorm:"not null" json:"rate"`
	GSTPercent      float64 `gorm:"column:gst_percent" json:"gst_percent"`
	GSTAmount       float64 `gorm:"column:gst_amount" json:"gst_amount"`
	Amount          float64 `json:"amount"`
}
