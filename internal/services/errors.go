package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNoItems rejects documents submitted without line items.
	ErrNoItems = errors.New("document requires at least one line item")
	// ErrInvalidItem rejects non-positive quantity or rate.
	ErrInvalidItem = errors.New("line item has non-positive quantity or rate")
	// ErrInsufficientStock aborts auto-billing before anything is written.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	// ErrInvalidDateRange rejects ranges whose end precedes the start.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// IsConstraint reports whether err is a uniqueness or foreign-key violation
// surfaced by the store. The message sniffing covers SQLite, whose driver
// errors gorm does not translate into its sentinel values.
func IsConstraint(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "duplicate")
}
