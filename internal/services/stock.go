package services

import (
	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/models"
)

// StockService is the single mutation path for the per-product stock
// counter. It keeps no history: the reporting side reconstructs opening
// stock arithmetically when asked for a dated range.
type StockService struct{}

// Adjust adds delta (positive or negative) to the product's stock counter.
// No floor check here: callers validate sufficient stock before issuing a
// negative delta. tx is the surrounding document transaction so the counter
// moves atomically with the document rows.
func (StockService) Adjust(tx *gorm.DB, productID uint, delta int) error {
	res := tx.Model(&models.Product{}).Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
