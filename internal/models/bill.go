package models

import "time"

// Bill is a sales document. Unlike purchase orders the customer is free
// text, not a foreign key: walk-in sales are recorded as "Cash Customer"
// without a directory entry. Line prices are tax-inclusive; the GST share is
// extracted backward out of the rate.
type Bill struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BillDate     string     `gorm:"not null" json:"bill_date"` // yyyy-mm-dd, see PurchaseOrder.PurchaseDate
	CustomerName string     `json:"customer_name"`
	PayMode      string     `json:"pay_mode"`
	Remarks      string     `json:"remarks"`
	SubTotal     float64    `json:"sub_total"`
	TotalGST     float64    `gorm:"column:total_gst" json:"total_gst"`
	GrandTotal   float64    `json:"grand_total"`
	Items        []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type BillItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	BillID     uint    `gorm:"not null;index" json:"bill_id"`
	ProductID  uint    `gorm:"not null" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Rate       float64 `gorm:"not null" json:"rate"`
	GSTPercent float64 `gorm:"column:gst_percent" json:"gst_percent"`
	GSTAmount  float64 `gorm:"column:gst_amount" json:"gst_amount"`
	Amount     float64 `json:"amount"`
}
