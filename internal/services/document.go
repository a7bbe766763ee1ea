package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/models"
)

// DocumentService creates, edits, and deletes the two paired document kinds
// (purchase orders and bills). Both share one shape — header plus an owned,
// ordered set of line items — and differ in the tax direction: bill rates
// are tax-inclusive (GST extracted backward), purchase rates are
// tax-exclusive (GST added forward, plus the TCS surcharge on top).
//
// Every operation runs inside one transaction spanning header, items, and
// stock deltas, so a failure anywhere rolls the whole document back.
type DocumentService struct {
	DB    *gorm.DB
	Stock StockService
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db}
}

// LineInput is one requested line. Rate is the unit price as entered at the
// counter; clients send the product's list price explicitly when that is
// what they mean.
type LineInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Rate      float64 `json:"rate"`
}

type BillInput struct {
	Date         string      `json:"date"`
	CustomerName string      `json:"customer_name"`
	PayMode      string      `json:"pay_mode"`
	Remarks      string      `json:"remarks"`
	Items        []LineInput `json:"items"`
}

type PurchaseOrderInput struct {
	VendorID      uint        `json:"vendor_id"`
	Date          string      `json:"date"`
	InvoiceNumber string      `json:"invoice_number"`
	Remarks       string      `json:"remarks"`
	Items         []LineInput `json:"items"`
}

func validateLines(items []LineInput) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if it.ProductID == 0 || it.Quantity <= 0 || it.Rate <= 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// gstPercentFor resolves a product's tax category name to its percentage.
// A missing category computes as 0%, matching documents whose rate was
// deleted after product creation.
func gstPercentFor(tx *gorm.DB, category string) (float64, error) {
	var tr models.TaxRate
	err := tx.Where("tax_name = ?", category).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return tr.Value, nil
}

// tcsRate returns the purchase-order surcharge percentage, defaulting to 1.0
// when no TCS row is configured.
func tcsRate(tx *gorm.DB) (float64, error) {
	var tr models.TaxRate
	err := tx.Where("tax_name = ?", models.TCSRateName).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1.0, nil
	}
	if err != nil {
		return 0, err
	}
	return tr.Value, nil
}

type billTotals struct {
	SubTotal   float64
	TotalGST   float64
	GrandTotal float64
}

// buildBillItems computes per-line amounts with the tax-inclusive formula:
// amount = rate*qty, gst = amount - amount/(1+p/100).
func (s *DocumentService) buildBillItems(tx *gorm.DB, inputs []LineInput) ([]models.BillItem, billTotals, error) {
	items := make([]models.BillItem, 0, len(inputs))
	var t billTotals
	for _, in := range inputs {
		var p models.Product
		if err := tx.First(&p, in.ProductID).Error; err != nil {
			return nil, t, fmt.Errorf("product %d: %w", in.ProductID, err)
		}
		pct, err := gstPercentFor(tx, p.GSTCategory)
		if err != nil {
			return nil, t, err
		}
		amount := in.Rate * float64(in.Quantity)
		gst := amount - amount/(1+pct/100)
		items = append(items, models.BillItem{
			ProductID:  p.ID,
			Quantity:   in.Quantity,
			Rate:       in.Rate,
			GSTPercent: pct,
			GSTAmount:  gst,
			Amount:     amount,
		})
		t.SubTotal += amount - gst
		t.TotalGST += gst
		t.GrandTotal += amount
	}
	return items, t, nil
}

type poTotals struct {
	TotalAmount float64
	TotalGST    float64
	TotalTCS    float64
	GrandTotal  float64
}

// buildPOItems computes per-line amounts with the tax-exclusive formula:
// amount = rate*qty, gst = amount*p/100. TCS is applied once across the
// document on (amount + gst).
func (s *DocumentService) buildPOItems(tx *gorm.DB, inputs []LineInput) ([]models.PurchaseOrderItem, poTotals, error) {
	items := make([]models.PurchaseOrderItem, 0, len(inputs))
	var t poTotals
	for _, in := range inputs {
		var p models.Product
		if err := tx.First(&p, in.ProductID).Error; err != nil {
			return nil, t, fmt.Errorf("product %d: %w", in.ProductID, err)
		}
		pct, err := gstPercentFor(tx, p.GSTCategory)
		if err != nil {
			return nil, t, err
		}
		amount := in.Rate * float64(in.Quantity)
		gst := amount * pct / 100
		items = append(items, models.PurchaseOrderItem{
			ProductID:  p.ID,
			Quantity:   in.Quantity,
			Rate:       in.Rate,
			GSTPercent: pct,
			GSTAmount:  gst,
			Amount:     amount,
		})
		t.TotalAmount += amount
		t.TotalGST += gst
	}
	rate, err := tcsRate(tx)
	if err != nil {
		return nil, t, err
	}
	t.TotalTCS = (t.TotalAmount + t.TotalGST) * rate / 100
	t.GrandTotal = t.TotalAmount + t.TotalGST + t.TotalTCS
	return items, t, nil
}

// CreateBill persists the bill with computed totals and depletes stock by
// each line's quantity.
func (s *DocumentService) CreateBill(in BillInput) (*models.Bill, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	var out models.Bill
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		items, totals, err := s.buildBillItems(tx, in.Items)
		if err != nil {
			return err
		}
		out = models.Bill{
			BillDate:     in.Date,
			CustomerName: in.CustomerName,
			PayMode:      in.PayMode,
			Remarks:      in.Remarks,
			SubTotal:     totals.SubTotal,
			TotalGST:     totals.TotalGST,
			GrandTotal:   totals.GrandTotal,
			Items:        items,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}
		for _, it := range out.Items {
			if err := s.Stock.Adjust(tx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBill replaces the bill's item set wholesale: reverse the original
// stock impact, delete-all/insert-new items, recompute totals exactly as
// CreateBill, apply the new deltas. Net stock effect equals a fresh create
// with the new items.
func (s *DocumentService) UpdateBill(id uint, in BillInput) (*models.Bill, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var orig models.Bill
		if err := tx.Preload("Items").First(&orig, id).Error; err != nil {
			return err
		}
		for _, it := range orig.Items {
			if err := s.Stock.Adjust(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		items, totals, err := s.buildBillItems(tx, in.Items)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"bill_date":     in.Date,
			"customer_name": in.CustomerName,
			"pay_mode":      in.PayMode,
			"remarks":       in.Remarks,
			"sub_total":     totals.SubTotal,
			"total_gst":     totals.TotalGST,
			"grand_total":   totals.GrandTotal,
		}
		if err := tx.Model(&models.Bill{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for _, it := range items {
			if err := s.Stock.Adjust(tx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetBill(id)
}

// DeleteBill restocks each line's quantity, then removes items and header.
func (s *DocumentService) DeleteBill(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.Preload("Items").First(&bill, id).Error; err != nil {
			return err
		}
		for _, it := range bill.Items {
			if err := s.Stock.Adjust(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bill{}, id).Error
	})
}

// GetBill loads one bill with items and their products.
func (s *DocumentService) GetBill(id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.DB.Preload("Items.Product").First(&bill, id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// CreatePurchaseOrder persists the order with computed totals (including
// TCS) and restocks by each line's quantity.
func (s *DocumentService) CreatePurchaseOrder(in PurchaseOrderInput) (*models.PurchaseOrder, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	var out models.PurchaseOrder
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.First(&vendor, in.VendorID).Error; err != nil {
			return fmt.Errorf("vendor %d: %w", in.VendorID, err)
		}
		items, totals, err := s.buildPOItems(tx, in.Items)
		if err != nil {
			return err
		}
		out = models.PurchaseOrder{
			VendorID:      in.VendorID,
			PurchaseDate:  in.Date,
			InvoiceNumber: in.InvoiceNumber,
			Remarks:       in.Remarks,
			TotalAmount:   totals.TotalAmount,
			TotalGST:      totals.TotalGST,
			TotalTCS:      totals.TotalTCS,
			GrandTotal:    totals.GrandTotal,
			Items:         items,
		}
		if err := tx.Omit("Vendor").Create(&out).Error; err != nil {
			return err
		}
		for _, it := range out.Items {
			if err := s.Stock.Adjust(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePurchaseOrder mirrors UpdateBill with the purchase-side deltas
// (reverse = subtract, reapply = add).
func (s *DocumentService) UpdatePurchaseOrder(id uint, in PurchaseOrderInput) (*models.PurchaseOrder, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var orig models.PurchaseOrder
		if err := tx.Preload("Items").First(&orig, id).Error; err != nil {
			return err
		}
		var vendor models.Vendor
		if err := tx.First(&vendor, in.VendorID).Error; err != nil {
			return fmt.Errorf("vendor %d: %w", in.VendorID, err)
		}
		for _, it := range orig.Items {
			if err := s.Stock.Adjust(tx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("purchase_order_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		items, totals, err := s.buildPOItems(tx, in.Items)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"vendor_id":      in.VendorID,
			"purchase_date":  in.Date,
			"invoice_number": in.InvoiceNumber,
			"remarks":        in.Remarks,
			"total_amount":   totals.TotalAmount,
			"total_gst":      totals.TotalGST,
			"total_tcs":      totals.TotalTCS,
			"grand_total":    totals.GrandTotal,
		}
		if err := tx.Model(&models.PurchaseOrder{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseOrderID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for _, it := range items {
			if err := s.Stock.Adjust(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPurchaseOrder(id)
}

// Purchase-order deletion is intentionally absent: the workflow treats
// received stock as booked once a PO is saved. Corrections go through edit.

// GetPurchaseOrder loads one order with vendor, items, and their products.
func (s *DocumentService) GetPurchaseOrder(id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := s.DB.Preload("Vendor").Preload("Items.Product").First(&po, id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}
