package models

import "time"

// StoreInfoID is the fixed primary key of the singleton store_info row.
const StoreInfoID = 1

// StoreInfo holds the letterhead of the (single) store: printed on receipts
// and purchase documents. Exactly one row, upserted with id = StoreInfoID.
type StoreInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	VATNumber string    `gorm:"column:vat_number;not null" json:"vat_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreInfo) TableName() string { return "store_info" }
