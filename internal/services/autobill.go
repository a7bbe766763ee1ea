package services

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/retail-pos/internal/models"
)

// AutoBillService is the synthetic-data utility: it spreads a target sales
// quantity for one product across the days of a range and issues one bill
// per day with a nonzero allocation.
type AutoBillService struct {
	DB   *gorm.DB
	Docs *DocumentService
	// Rand is injectable for deterministic tests; nil falls back to a
	// time-seeded source.
	Rand *rand.Rand
}

func NewAutoBillService(db *gorm.DB, docs *DocumentService) *AutoBillService {
	return &AutoBillService{DB: db, Docs: docs}
}

type AutoBillResult struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
	BillID   uint   `json:"bill_id"`
}

const dateLayout = "2006-01-02"

// Generate validates the request against current stock before writing
// anything: an over-stock request fails without creating a single bill.
// Distribution: one unit on totalQty random days when totalQty < days,
// otherwise a uniform multinomial split.
func (s *AutoBillService) Generate(start, end string, productID uint, totalQty int) ([]AutoBillResult, error) {
	if totalQty <= 0 {
		return nil, ErrInvalidItem
	}
	startDay, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDay, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	days := int(endDay.Sub(startDay).Hours()/24) + 1
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}

	var product models.Product
	if err := s.DB.First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("product %d: %w", productID, err)
	}
	if totalQty > product.Stock {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, totalQty, product.Stock)
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	daily := make([]int, days)
	if totalQty < days {
		for _, day := range rng.Perm(days)[:totalQty] {
			daily[day] = 1
		}
	} else {
		for i := 0; i < totalQty; i++ {
			daily[rng.Intn(days)]++
		}
	}

	results := make([]AutoBillResult, 0, days)
	for i, qty := range daily {
		if qty == 0 {
			continue
		}
		date := startDay.AddDate(0, 0, i).Format(dateLayout)
		bill, err := s.Docs.CreateBill(BillInput{
			Date:         date,
			CustomerName: "Cash Customer",
			PayMode:      "Cash",
			Remarks:      "auto-generated",
			Items:        []LineInput{{ProductID: productID, Quantity: qty, Rate: product.SellingPrice}},
		})
		if err != nil {
			return results, err
		}
		results = append(results, AutoBillResult{Date: date, Quantity: qty, BillID: bill.ID})
	}
	return results, nil
}
