package postgres

import (
	"fmt"

	"marketplace/internal/adapters/out/postgres/addressrepo"
	"marketplace/internal/adapters/out/postgres/agentrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/customerrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends the tables the engine owns. The catalog, address
// and user tables belong to neighbouring services; they are only created when
// missing so a standalone deployment can start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&agentrepo.AgentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	); err != nil {
		return fmt.Errorf("migrate engine tables: %w", err)
	}

	for _, dto := range []any{&catalogrepo.MenuItemDTO{}, &addressrepo.AddressDTO{}, &customerrepo.UserDTO{}} {
		if db.Migrator().HasTable(dto) {
			continue
		}
		if err := db.Migrator().CreateTable(dto); err != nil {
			return fmt.Errorf("create collaborator table: %w", err)
		}
	}

	return nil
}
