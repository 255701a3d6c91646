package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	tx *gorm.DB
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// WithTx returns a copy of the repository bound to a transaction handle.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{tx: tx}
}

func (r *OrderRepository) q() *orm.Query {
	if r.tx != nil {
		return orm.Wrap(r.tx)
	}
	return orm.DB()
}

// FindByID looks up an order by primary key, eager-loading the named
// associations ("Items", "Items.Product", "Payment", "Client").
func (r *OrderRepository) FindByID(id uint, with ...string) (models.Order, error) {
	var order models.Order
	err := r.q().Model(&models.Order{}).With(with...).Where("id = ?", id).First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, apperr.NotFound("order", id)
	}
	return order, err
}

// All returns one page of orders with items and payment loaded.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := r.q().Model(&models.Order{}).
		With("Items", "Items.Product", "Payment").
		Order("id DESC").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// AllByClient returns one page of the given client's orders.
func (r *OrderRepository) AllByClient(clientID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := r.q().Model(&models.Order{}).
		With("Items", "Items.Product", "Payment").
		Where("client_id = ?", clientID).
		Order("id DESC").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

func (r *OrderRepository) Create(order *models.Order) error {
	return r.q().Create(order)
}

func (r *OrderRepository) Update(order *models.Order) error {
	return r.q().Save(order)
}

// UpdateStatus writes only the status column.
func (r *OrderRepository) UpdateStatus(orderID uint, status models.OrderStatus) error {
	db := r.dbHandle()
	return db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

func (r *OrderRepository) Delete(order *models.Order) error {
	return r.q().Delete(order)
}

// ── Order items ──────────────────────────────────────────────────────────────

// FindItem looks up one order line by its composite key.
func (r *OrderRepository) FindItem(orderID, productID uint) (models.OrderItem, error) {
	var item models.OrderItem
	err := r.q().Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, apperr.NotFound("order item", productID)
	}
	return item, err
}

func (r *OrderRepository) CreateItem(item *models.OrderItem) error {
	return r.q().Create(item)
}

func (r *OrderRepository) UpdateItem(item *models.OrderItem) error {
	db := r.dbHandle()
	return db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", item.OrderID, item.ProductID).
		Updates(map[string]interface{}{"quantity": item.Quantity, "price": item.Price}).Error
}

func (r *OrderRepository) DeleteItem(item *models.OrderItem) error {
	db := r.dbHandle()
	return db.Where("order_id = ? AND product_id = ?", item.OrderID, item.ProductID).
		Delete(&models.OrderItem{}).Error
}

func (r *OrderRepository) dbHandle() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}
	return orm.DB().Raw()
}
