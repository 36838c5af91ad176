// Package addressrepo answers address ownership questions from the addresses
// table maintained by the address book.
package addressrepo

import (
	"context"

	"gorm.io/gorm"
)

// AddressDTO carries the columns the engine needs from addresses.
type AddressDTO struct {
	ID      int64 `gorm:"primaryKey"`
	OwnerID int64 `gorm:"not null;index"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressStore implements ports.AddressStore.
type GormAddressStore struct {
	db *gorm.DB
}

func NewGormAddressStore(db *gorm.DB) *GormAddressStore {
	return &GormAddressStore{db: db}
}

func (s *GormAddressStore) BelongsTo(ctx context.Context, customerID int64, addressID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("id = ? AND owner_id = ?", addressID, customerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
