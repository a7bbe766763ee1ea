package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/retail-pos/internal/models"
)

// StoreService manages the singleton store_info row printed on receipts.
type StoreService struct{ DB *gorm.DB }

func NewStoreService(db *gorm.DB) *StoreService { return &StoreService{DB: db} }

// Get returns the store record if configured, otherwise nil.
func (s *StoreService) Get() (*models.StoreInfo, error) {
	var info models.StoreInfo
	err := s.DB.First(&info, models.StoreInfoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert inserts or updates the fixed-id row.
func (s *StoreService) Upsert(name, address, vatNumber string) (*models.StoreInfo, error) {
	info := models.StoreInfo{ID: models.StoreInfoID, Name: name, Address: address, VATNumber: vatNumber}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "vat_number"}),
	}).Create(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}
