package services

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/jobs"
	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/logger"
	"github.com/shashiranjanraj/vypar/pkg/metrics"
	"github.com/shashiranjanraj/vypar/pkg/queue"
)

// PaymentService is the only writer of the PAID status. Recording a payment
// and flipping the order to PAID happen in one transaction; deleting a
// payment and reverting to WAITING_PAYMENT likewise. The payment row keys on
// the order id, so two clients racing to pay the same order cannot both
// succeed: the loser's insert hits the primary key and comes back a conflict.
type PaymentService struct {
	orders   *repositories.OrderRepository
	payments *repositories.PaymentRepository
	users    *repositories.UserRepository
}

func NewPaymentService(
	orders *repositories.OrderRepository,
	payments *repositories.PaymentRepository,
	users *repositories.UserRepository,
) *PaymentService {
	return &PaymentService{orders: orders, payments: payments, users: users}
}

// RecordPaymentInput names the payment method.
type RecordPaymentInput struct {
	Type string `json:"type" validate:"required,in=CREDIT_CARD,PIX"`
}

// Record enters a payment for the order. The amount is the order total at
// this moment, captured into the row; the order becomes PAID in the same
// transaction. A receipt job goes out only after the commit.
func (s *PaymentService) Record(ident auth.Identity, orderID uint, in RecordPaymentInput) (models.Payment, error) {
	var payment models.Payment
	var clientEmail string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID, "Items", "Client")
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if order.Status == models.StatusCanceled {
			return apperr.Conflict("cannot pay a canceled order")
		}

		payment = models.Payment{
			OrderID: orderID,
			Type:    models.PaymentType(in.Type),
			Amount:  order.Total(),
		}
		if err := s.payments.WithTx(tx).Create(&payment); err != nil {
			return err
		}
		clientEmail = order.Client.Email
		return orders.UpdateStatus(orderID, models.StatusPaid)
	})
	if err != nil {
		return models.Payment{}, err
	}

	metrics.PaymentsRecorded.WithLabelValues(in.Type).Inc()
	s.dispatchReceipt(payment, clientEmail)
	return payment, nil
}

// Find returns the payment for an order.
func (s *PaymentService) Find(ident auth.Identity, orderID uint) (models.Payment, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Payment{}, err
	}
	if err := s.authorize(ident, &order); err != nil {
		return models.Payment{}, err
	}
	return s.payments.FindByOrder(orderID)
}

// Delete removes the order's payment and reverts the order to
// WAITING_PAYMENT, both in one transaction, so no reader ever sees a PAID
// order without its payment or the reverse.
func (s *PaymentService) Delete(ident auth.Identity, orderID uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if _, err := s.payments.WithTx(tx).FindByOrder(orderID); err != nil {
			return err
		}

		if err := orders.UpdateStatus(orderID, models.StatusWaitingPayment); err != nil {
			return err
		}
		return s.payments.WithTx(tx).Delete(orderID)
	})
	if err != nil {
		return err
	}

	metrics.PaymentsReverted.Inc()
	return nil
}

// RetargetPaymentInput moves a payment onto a different order.
type RetargetPaymentInput struct {
	OrderID uint   `json:"order_id" validate:"required,gte=1"`
	Type    string `json:"type" validate:"nullable,in=CREDIT_CARD,PIX"`
}

// Retarget moves the payment on fromOrderID to the order named in the input.
// The old order reverts to WAITING_PAYMENT, the new order becomes PAID, and
// the amount is recomputed from the new order's total. Both sides change in
// one transaction.
func (s *PaymentService) Retarget(ident auth.Identity, fromOrderID uint, in RetargetPaymentInput) (models.Payment, error) {
	var payment models.Payment

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		payments := s.payments.WithTx(tx)

		oldOrder, err := orders.FindByID(fromOrderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &oldOrder); err != nil {
			return err
		}
		existing, err := payments.FindByOrder(fromOrderID)
		if err != nil {
			return err
		}

		if in.OrderID == fromOrderID {
			// Same order: only the payment type can change.
			if in.Type != "" {
				existing.Type = models.PaymentType(in.Type)
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			}
			payment = existing
			return nil
		}

		newOrder, err := orders.FindByID(in.OrderID, "Items")
		if err != nil {
			return err
		}
		if newOrder.Status == models.StatusCanceled {
			return apperr.Conflict("cannot pay a canceled order")
		}

		if err := payments.Delete(fromOrderID); err != nil {
			return err
		}
		if err := orders.UpdateStatus(fromOrderID, models.StatusWaitingPayment); err != nil {
			return err
		}

		ptype := existing.Type
		if in.Type != "" {
			ptype = models.PaymentType(in.Type)
		}
		payment = models.Payment{
			OrderID: newOrder.ID,
			Type:    ptype,
			Amount:  newOrder.Total(),
		}
		// The primary key rejects this insert when the new order already has
		// a payment of its own.
		if err := payments.Create(&payment); err != nil {
			return err
		}
		return orders.UpdateStatus(newOrder.ID, models.StatusPaid)
	})
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *PaymentService) dispatchReceipt(payment models.Payment, email string) {
	job := jobs.PaymentReceiptJob{
		OrderID: payment.OrderID,
		Email:   email,
		Type:    string(payment.Type),
		Amount:  payment.Amount,
	}
	if err := queue.Dispatch(job); err != nil {
		// The payment is committed; a lost receipt job is only a log line.
		logger.Warn("payment receipt dispatch failed", "order_id", payment.OrderID, "error", err)
	}
}

// authorize lets admins and managers through, and the order's owner.
func (s *PaymentService) authorize(ident auth.Identity, order *models.Order) error {
	if ident.HasAnyRole(models.RoleAdmin, models.RoleManager) {
		return nil
	}
	client, err := s.users.FindByEmail(ident.Email)
	if err != nil {
		return err
	}
	if order.ClientID != client.ID {
		return apperr.AccessDenied("order belongs to another client")
	}
	return nil
}
