package models

import "time"

// Customer directory entry. Mobile doubles as the natural key when searching
// at the counter, hence unique and required.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Area      string    `json:"area"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Mobile    string    `gorm:"not null;unique" json:"mobile"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vendor is a supplier referenced by purchase orders.
type Vendor struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;unique" json:"name"`
	Address string `json:"address"`
	Area    string `json:"area"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	// Pointer so vendors without a registered tax id don't collide on the
	// unique index.
	GSTNumber *string   `gorm:"unique" json:"gst_number,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
