package services

import (
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/models"
)

// ReportService exposes the read-only projections. All date parameters are
// ISO-8601 (yyyy-mm-dd) strings, compared lexically against the stored
// document dates, and every range is inclusive on both ends.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{DB: db} }

type BillReportRow struct {
	BillID       uint    `gorm:"column:bill_id" json:"bill_no"`
	BillDate     string  `json:"bill_date"`
	ProductName  string  `json:"product_name"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	CustomerName string  `json:"customer_name"`
	BillTotal    float64 `json:"bill_total"`
}

// BillReport lists every sold line in the range together with its bill
// header fields.
func (s *ReportService) BillReport(start, end string) ([]BillReportRow, error) {
	var rows []BillReportRow
	err := s.DB.Table("bills b").
		Select("b.id as bill_id, b.bill_date, p.name as product_name, p.size, bi.quantity, bi.rate, bi.amount, b.customer_name, b.grand_total as bill_total").
		Joins("JOIN bill_items bi ON b.id = bi.bill_id").
		Joins("JOIN products p ON bi.product_id = p.id").
		Where("b.bill_date BETWEEN ? AND ?", start, end).
		Order("b.id").
		Scan(&rows).Error
	return rows, err
}

type PurchaseReportRow struct {
	POID         uint    `gorm:"column:po_id" json:"po_no"`
	PurchaseDate string  `json:"purchase_date"`
	VendorName   string  `json:"vendor"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"total_amount"`
	GrandTotal   float64 `json:"po_grand_total"`
}

// PurchaseReport lists purchased lines in the range, optionally scoped to
// one vendor (vendorID 0 means all).
func (s *ReportService) PurchaseReport(start, end string, vendorID uint) ([]PurchaseReportRow, error) {
	q := s.DB.Table("purchase_orders po").
		Select("po.id as po_id, po.purchase_date, v.name as vendor_name, p.name as product_name, poi.quantity, poi.rate, poi.amount, po.grand_total").
		Joins("JOIN vendors v ON po.vendor_id = v.id").
		Joins("JOIN purchase_order_items poi ON po.id = poi.purchase_order_id").
		Joins("JOIN products p ON poi.product_id = p.id").
		Where("po.purchase_date BETWEEN ? AND ?", start, end)
	if vendorID != 0 {
		q = q.Where("po.vendor_id = ?", vendorID)
	}
	var rows []PurchaseReportRow
	err := q.Order("po.id").Scan(&rows).Error
	return rows, err
}

type StockReportRow struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"`
	SellingPrice float64 `json:"selling_price"`
	Stock        int     `json:"available_stock"`
}

// StockReport is the point-in-time stock counter per product.
func (s *ReportService) StockReport() ([]StockReportRow, error) {
	var rows []StockReportRow
	err := s.DB.Table("products p").
		Select("p.id as product_id, p.name as product_name, p.type, p.size, p.selling_price, p.stock").
		Order("p.name").
		Scan(&rows).Error
	return rows, err
}

type StockRangeRow struct {
	ProductName  string `json:"product_name"`
	Type         string `json:"type"`
	Size         string `json:"size"`
	OpeningStock int    `json:"opening_stock"`
	ClosingStock int    `json:"closing_stock"`
	SalesQty     int    `json:"sales_period"`
	PurchaseQty  int    `json:"purchases_period"`
}

// StockReportWithDates reconstructs opening stock for the range via
// opening = current + sales_in_range - purchases_in_range, since no dated
// snapshot is stored. The identity only holds exactly when the range ends at
// "now" and nothing outside the document engine moved the counter.
func (s *ReportService) StockReportWithDates(start, end string) ([]StockRangeRow, error) {
	var products []models.Product
	if err := s.DB.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}

	type qtyRow struct {
		ProductID uint
		Qty       int
	}
	var sales []qtyRow
	err := s.DB.Table("bill_items bi").
		Select("bi.product_id, SUM(bi.quantity) as qty").
		Joins("JOIN bills b ON bi.bill_id = b.id").
		Where("b.bill_date BETWEEN ? AND ?", start, end).
		Group("bi.product_id").
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}
	var purchases []qtyRow
	err = s.DB.Table("purchase_order_items poi").
		Select("poi.product_id, SUM(poi.quantity) as qty").
		Joins("JOIN purchase_orders po ON poi.purchase_order_id = po.id").
		Where("po.purchase_date BETWEEN ? AND ?", start, end).
		Group("poi.product_id").
		Scan(&purchases).Error
	if err != nil {
		return nil, err
	}

	soldBy := make(map[uint]int, len(sales))
	for _, r := range sales {
		soldBy[r.ProductID] = r.Qty
	}
	boughtBy := make(map[uint]int, len(purchases))
	for _, r := range purchases {
		boughtBy[r.ProductID] = r.Qty
	}

	rows := make([]StockRangeRow, 0, len(products))
	for _, p := range products {
		sold := soldBy[p.ID]
		bought := boughtBy[p.ID]
		rows = append(rows, StockRangeRow{
			ProductName:  p.Name,
			Type:         p.Type,
			Size:         p.Size,
			OpeningStock: p.Stock + sold - bought,
			ClosingStock: p.Stock,
			SalesQty:     sold,
			PurchaseQty:  bought,
		})
	}
	return rows, nil
}

type ProductTotalRow struct {
	ProductName string  `json:"product_name"`
	Size        string  `json:"size"`
	Quantity    int     `gorm:"column:total_qty" json:"total_quantity"`
	Value       float64 `gorm:"column:total_value" json:"total_value"`
}

// ProductWiseSales sums sold quantity and value per (product, size),
// highest movers first.
func (s *ReportService) ProductWiseSales(start, end string) ([]ProductTotalRow, error) {
	var rows []ProductTotalRow
	err := s.DB.Table("bill_items bi").
		Select("p.name as product_name, p.size, SUM(bi.quantity) as total_qty, SUM(bi.amount) as total_value").
		Joins("JOIN products p ON bi.product_id = p.id").
		Joins("JOIN bills b ON bi.bill_id = b.id").
		Where("b.bill_date BETWEEN ? AND ?", start, end).
		Group("p.name, p.size").
		Order("total_qty DESC").
		Scan(&rows).Error
	return rows, err
}

// ProductWisePurchases is the purchase-side mirror of ProductWiseSales.
func (s *ReportService) ProductWisePurchases(start, end string) ([]ProductTotalRow, error) {
	var rows []ProductTotalRow
	err := s.DB.Table("purchase_order_items poi").
		Select("p.name as product_name, p.size, SUM(poi.quantity) as total_qty, SUM(poi.amount) as total_value").
		Joins("JOIN products p ON poi.product_id = p.id").
		Joins("JOIN purchase_orders po ON poi.purchase_order_id = po.id").
		Where("po.purchase_date BETWEEN ? AND ?", start, end).
		Group("p.name, p.size").
		Order("total_qty DESC").
		Scan(&rows).Error
	return rows, err
}

type LitreReportRow struct {
	ProductName string  `json:"product_name"`
	TotalLitres float64 `json:"total_litres_sold"`
}

// BulkLitreReport converts each sold line's pack size to litres and sums per
// product name. Sizes that don't parse ("bottle", empty) contribute 0.
func (s *ReportService) BulkLitreReport(start, end string) ([]LitreReportRow, error) {
	type lineRow struct {
		Name     string
		Size     string
		Quantity int
	}
	var lines []lineRow
	err := s.DB.Table("bills b").
		Select("p.name, p.size, bi.quantity").
		Joins("JOIN bill_items bi ON b.id = bi.bill_id").
		Joins("JOIN products p ON bi.product_id = p.id").
		Where("b.bill_date BETWEEN ? AND ?", start, end).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	totals := map[string]float64{}
	for _, l := range lines {
		totals[l.Name] += float64(l.Quantity) * SizeToLitres(l.Size)
	}
	rows := make([]LitreReportRow, 0, len(totals))
	for name, litres := range totals {
		rows = append(rows, LitreReportRow{ProductName: name, TotalLitres: litres})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalLitres != rows[j].TotalLitres {
			return rows[i].TotalLitres > rows[j].TotalLitres
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}

// SizeToLitres parses pack-size labels like "750ml", "1.5L", " 2 l ".
// The ml check comes first so "750ml" is not misread as litres.
func SizeToLitres(size string) float64 {
	s := strings.ToLower(strings.TrimSpace(size))
	if strings.HasSuffix(s, "ml") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "ml")), 64)
		if err != nil {
			return 0
		}
		return v / 1000
	}
	if strings.HasSuffix(s, "l") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "l")), 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

type POSummaryRow struct {
	ID            uint    `json:"id"`
	VendorName    string  `json:"vendor_name"`
	PurchaseDate  string  `json:"purchase_date"`
	InvoiceNumber string  `json:"invoice_number"`
	GrandTotal    float64 `json:"grand_total"`
}

// PurchaseOrderSummary lists order headers newest first, optionally filtered
// by a substring of the invoice number.
func (s *ReportService) PurchaseOrderSummary(invoiceSearch string) ([]POSummaryRow, error) {
	q := s.DB.Table("purchase_orders po").
		Select("po.id, v.name as vendor_name, po.purchase_date, po.invoice_number, po.grand_total").
		Joins("JOIN vendors v ON po.vendor_id = v.id")
	if invoiceSearch != "" {
		q = q.Where("po.invoice_number LIKE ?", "%"+invoiceSearch+"%")
	}
	var rows []POSummaryRow
	err := q.Order("po.id DESC").Scan(&rows).Error
	return rows, err
}
