// Package catalogrepo reads menu prices and names from the menu_items table
// owned by the restaurant catalog.
package catalogrepo

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItemDTO is the catalog row. The engine only reads it.
type MenuItemDTO struct {
	ID          int64           `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsAvailable bool            `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuCatalog implements ports.MenuCatalog over menu_items.
type GormMenuCatalog struct {
	db *gorm.DB
}

func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// Lookup loads the rows for ids in one query. Storage failures are reported
// as ports.ErrCatalogUnavailable.
func (c *GormMenuCatalog) Lookup(ctx context.Context, ids []int64) (map[int64]menu.Item, error) {
	result := make(map[int64]menu.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var dtos []MenuItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCatalogUnavailable, err)
	}

	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result[item.ID()] = item
	}
	return result, nil
}

func toDomain(dto MenuItemDTO) (menu.Item, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return menu.Item{}, err
	}
	return menu.NewItem(dto.ID, dto.Name, price, dto.IsAvailable)
}
