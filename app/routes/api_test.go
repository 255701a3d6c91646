package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/policy"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/middleware"
	"github.com/shashiranjanraj/vypar/pkg/rbac"
	"github.com/shashiranjanraj/vypar/pkg/router"
	"github.com/shashiranjanraj/vypar/pkg/testkit"
)

// setupAPI boots the full HTTP surface against an in-memory database.
func setupAPI(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	))
	database.DB = db
	t.Cleanup(func() { database.DB = nil })

	for _, code := range models.AllRoleCodes() {
		require.NoError(t, db.Create(&models.Role{Code: code}).Error)
	}

	rbac.SetPolicy(policy.Table())
	tokens := auth.NewTokenService("test-secret", "vypar-test", time.Hour, 3*time.Hour)

	r := router.New()
	r.Use(middleware.Recovery)
	RegisterAPI(r, tokens)
	return r.Handler(), tokens
}

type tokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func registerAndLogin(t *testing.T, h http.Handler, email string) tokenData {
	t.Helper()

	rec := testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Maria Silva", "email": email, "password": "super-secret-1",
	}))
	testkit.AssertStatus(t, rec, http.StatusCreated)

	rec = testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "super-secret-1",
	}))
	testkit.AssertStatus(t, rec, http.StatusOK)

	var body struct {
		Data tokenData `json:"data"`
	}
	testkit.DecodeBody(t, rec, &body)
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data
}

func TestRegisterLoginRefresh(t *testing.T) {
	h, _ := setupAPI(t)
	creds := registerAndLogin(t, h, "maria@example.com")

	// Wrong password is a 401 with the standard error body.
	rec := testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "maria@example.com", "password": "wrong",
	}))
	testkit.AssertErrorBody(t, rec, http.StatusUnauthorized, "Unauthorized")

	// Refresh with matching email works; a mismatched email does not.
	rec = testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/refresh", map[string]string{
		"email": "maria@example.com", "refresh_token": creds.RefreshToken,
	}))
	testkit.AssertStatus(t, rec, http.StatusOK)

	rec = testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/refresh", map[string]string{
		"email": "other@example.com", "refresh_token": creds.RefreshToken,
	}))
	testkit.AssertErrorBody(t, rec, http.StatusUnauthorized, "Unauthorized")
}

func TestRegisterValidation(t *testing.T) {
	h, _ := setupAPI(t)

	rec := testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "M", "email": "not-an-email", "password": "short",
	}))
	testkit.AssertErrorBody(t, rec, http.StatusBadRequest, "Validation error")

	var body struct {
		Errors []string `json:"errors"`
	}
	testkit.DecodeBody(t, rec, &body)
	require.Len(t, body.Errors, 3)
}

func TestProtectedRoutesRequireRole(t *testing.T) {
	h, _ := setupAPI(t)
	creds := registerAndLogin(t, h, "maria@example.com")

	// Anonymous order creation → 401.
	rec := testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/orders", map[string]string{}))
	testkit.AssertErrorBody(t, rec, http.StatusUnauthorized, "Unauthorized")

	// Authenticated USER can create an order.
	req := testkit.WithBearer(testkit.Request(t, http.MethodPost, "/api/orders", map[string]string{}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	// But cannot create products (staff gate) → 403.
	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.9,
	}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusForbidden)
}

func TestManagerCanWriteCatalog(t *testing.T) {
	h, _ := setupAPI(t)

	rec := testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Joana Prado", "email": "joana@example.com", "password": "super-secret-1",
	}))
	testkit.AssertStatus(t, rec, http.StatusCreated)

	// Promote before logging in so the token carries the MANAGER role.
	var user models.User
	require.NoError(t, database.DB.Where("email = ?", "joana@example.com").First(&user).Error)
	var manager models.Role
	require.NoError(t, database.DB.Where("code = ?", models.RoleManager).First(&manager).Error)
	require.NoError(t, database.DB.Model(&user).Association("Roles").Replace(&manager))

	rec = testkit.Exec(h, testkit.Request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "joana@example.com", "password": "super-secret-1",
	}))
	testkit.AssertStatus(t, rec, http.StatusOK)

	var body struct {
		Data tokenData `json:"data"`
	}
	testkit.DecodeBody(t, rec, &body)

	req := testkit.WithBearer(testkit.Request(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Standing Desk", "price": 350.0,
	}), body.Data.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name": "Furniture",
	}), body.Data.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusCreated)
}

func TestPublicCatalogReads(t *testing.T) {
	h, _ := setupAPI(t)

	rec := testkit.Exec(h, testkit.Request(t, http.MethodGet, "/api/products", nil))
	testkit.AssertStatus(t, rec, http.StatusOK)

	rec = testkit.Exec(h, testkit.Request(t, http.MethodGet, "/api/products/999", nil))
	testkit.AssertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
}

func TestPaymentFlowOverHTTP(t *testing.T) {
	h, _ := setupAPI(t)
	creds := registerAndLogin(t, h, "maria@example.com")

	// Seed a product directly; this client holds only USER.
	product := models.Product{Name: "Keyboard", Price: 10}
	require.NoError(t, database.DB.Create(&product).Error)

	// Create an order and add 2 units.
	req := testkit.WithBearer(testkit.Request(t, http.MethodPost, "/api/orders", map[string]string{}), creds.AccessToken)
	rec := testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	var created struct {
		Data models.Order `json:"data"`
	}
	testkit.DecodeBody(t, rec, &created)
	orderURL := "/api/orders/" + itoa(created.Data.ID)

	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, orderURL+"/items", map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusOK)

	// Pay: amount is the order total.
	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, orderURL+"/payment", map[string]string{
		"type": "PIX",
	}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	var paid struct {
		Data models.Payment `json:"data"`
	}
	testkit.DecodeBody(t, rec, &paid)
	require.Equal(t, 20.0, paid.Data.Amount)

	// A second payment conflicts.
	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, orderURL+"/payment", map[string]string{
		"type": "CREDIT_CARD",
	}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertErrorBody(t, rec, http.StatusConflict, "Conflict")

	// Item mutation on a paid order → 409 AlreadyPaid.
	req = testkit.WithBearer(testkit.Request(t, http.MethodPost, orderURL+"/items", map[string]interface{}{
		"product_id": product.ID, "quantity": 1,
	}), creds.AccessToken)
	rec = testkit.Exec(h, req)
	testkit.AssertErrorBody(t, rec, http.StatusConflict, "Order already paid")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
