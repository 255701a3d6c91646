package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/migration"
)

func init() {
	migration.Register("20260115000000_create_users_and_roles", &CreateUsersAndRoles{})
	migration.Register("20260115000001_create_catalog", &CreateCatalog{})
	migration.Register("20260115000002_create_orders", &CreateOrders{})
}

// -------- 0001: users and roles --------

type CreateUsersAndRoles struct{}

func (m *CreateUsersAndRoles) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{})
}

func (m *CreateUsersAndRoles) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("user_roles", "users", "roles")
}

// -------- 0002: catalog --------

type CreateCatalog struct{}

func (m *CreateCatalog) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalog) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_categories", "products", "categories")
}

// -------- 0003: orders, items, payments --------

type CreateOrders struct{}

func (m *CreateOrders) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Payment{})
}

func (m *CreateOrders) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("payments", "order_items", "orders")
}
