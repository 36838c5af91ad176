// Package customerrepo resolves customer phone numbers from the users table.
package customerrepo

import (
	"context"
	"errors"
	"strconv"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// UserDTO carries the columns the engine needs from users.
type UserDTO struct {
	ID          int64  `gorm:"primaryKey"`
	PhoneNumber string `gorm:"type:varchar(20);not null;uniqueIndex"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormCustomerDirectory implements ports.CustomerDirectory.
type GormCustomerDirectory struct {
	db *gorm.DB
}

func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

func (d *GormCustomerDirectory) PhoneNumber(ctx context.Context, customerID int64) (string, error) {
	var dto UserDTO
	if err := d.db.WithContext(ctx).Select("id", "phone_number").First(&dto, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("customer", strconv.FormatInt(customerID, 10))
		}
		return "", err
	}
	return dto.PhoneNumber, nil
}
