package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/database"
)

// setupDB opens a private in-memory database and installs it as the global
// connection used by services and repositories.
func setupDB(t *testing.T) {
	t.Helper()

	// A named shared in-memory database: every pooled connection must see
	// the same schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))

	database.DB = db
	t.Cleanup(func() { database.DB = nil })
}

type fixture struct {
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	payments *repositories.PaymentRepository

	orderSvc   *OrderService
	paymentSvc *PaymentService

	client      models.User
	clientIdent auth.Identity
	adminIdent  auth.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	setupDB(t)

	f := &fixture{
		users:    repositories.NewUserRepository(),
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
		payments: repositories.NewPaymentRepository(),
	}
	f.orderSvc = NewOrderService(f.orders, f.products, f.payments, f.users)
	f.paymentSvc = NewPaymentService(f.orders, f.payments, f.users)

	for _, code := range models.AllRoleCodes() {
		require.NoError(t, database.DB.Create(&models.Role{Code: code}).Error)
	}

	var userRole models.Role
	require.NoError(t, database.DB.Where("code = ?", models.RoleUser).First(&userRole).Error)

	f.client = models.User{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Password: "x",
		Roles:    []models.Role{userRole},
	}
	require.NoError(t, f.users.Create(&f.client))

	f.clientIdent = auth.Identity{Email: f.client.Email, Roles: []string{models.RoleUser}}
	f.adminIdent = auth.Identity{Email: "admin@example.com", Roles: []string{models.RoleAdmin}}
	return f
}

func (f *fixture) createProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price}
	require.NoError(t, f.products.Create(&p))
	return p
}

func (f *fixture) createOrder(t *testing.T) models.Order {
	t.Helper()
	order, err := f.orderSvc.Create(f.clientIdent, CreateOrderInput{})
	require.NoError(t, err)
	return order
}
