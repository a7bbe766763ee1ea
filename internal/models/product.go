package models

import "time"

// Product is master data for one sellable item. A product is identified by
// its (name, size) pair; the same label in 750ml and 1L bottles is two rows.
// Stock is a plain counter mutated only by the document engine (purchase
// orders restock, bills deplete); master-data edits never touch it.
type Product struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null;index:idx_product_name_size,unique,priority:1" json:"name"`
	Type          string  `json:"type"`
	Size          string  `gorm:"index:idx_product_name_size,unique,priority:2" json:"size"`
	PurchasePrice float64 `gorm:"not null" json:"purchase_price"`
	SellingPrice  float64 `gorm:"not null" json:"selling_price"`
	Category      string  `json:"category"`
	// GSTCategory names a row in tax_config. Resolved at document compute
	// time, not enforced as a foreign key: deleting a tax rate leaves
	// products pointing at it, and their lines then compute with 0%.
	GSTCategory string    `gorm:"not null" json:"gst_category"`
	Barcode1    *string   `gorm:"unique" json:"barcode1,omitempty"`
	Barcode2    string    `json:"barcode2,omitempty"`
	Barcode3    string    `json:"barcode3,omitempty"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
