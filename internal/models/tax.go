package models

import "time"

// TaxRate is one configurable percentage. Products reference rates by name
// through their GSTCategory. The special name "TCS" holds the surcharge
// applied on purchase orders.
type TaxRate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:tax_name;not null;unique" json:"name"`
	Value     float64   `gorm:"column:tax_value;not null" json:"value"`
	Type      string    `gorm:"column:tax_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the historical table name.
func (TaxRate) TableName() string { return "tax_config" }

// TCSRateName is the tax_config row consulted for the purchase-order
// surcharge.
const TCSRateName = "TCS"
