package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// PaymentRepository handles database operations for Payment. The payment row
// keys on the order id, so "one payment per order" is checked by the primary
// key and a racing second insert comes back as a duplicate-key error.
type PaymentRepository struct {
	tx *gorm.DB
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// WithTx returns a copy of the repository bound to a transaction handle.
func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{tx: tx}
}

func (r *PaymentRepository) q() *orm.Query {
	if r.tx != nil {
		return orm.Wrap(r.tx)
	}
	return orm.DB()
}

// FindByOrder returns the payment row for an order.
func (r *PaymentRepository) FindByOrder(orderID uint) (models.Payment, error) {
	var payment models.Payment
	err := r.q().Model(&models.Payment{}).Where("order_id = ?", orderID).First(&payment)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payment, apperr.NotFound("payment", orderID)
	}
	return payment, err
}

// ExistsByOrder reports whether the order already has a payment.
func (r *PaymentRepository) ExistsByOrder(orderID uint) (bool, error) {
	var count int64
	err := r.q().Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&count)
	return count > 0, err
}

// Create inserts the payment row. Losing an insert race surfaces as a
// duplicate-key violation, which callers see as a conflict.
func (r *PaymentRepository) Create(payment *models.Payment) error {
	err := r.q().Create(payment)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("order already has a payment")
	}
	return err
}

// Delete removes the payment row for an order.
func (r *PaymentRepository) Delete(orderID uint) error {
	db := r.q().Raw()
	return db.Where("order_id = ?", orderID).Delete(&models.Payment{}).Error
}
