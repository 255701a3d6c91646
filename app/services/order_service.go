package services

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// OrderService implements the order lifecycle: creation, status transitions
// and item mutation. Two rules hold everywhere:
//
//   - an order is PAID exactly when its payment row exists, so no path here
//     may set PAID directly (that is the payment service's job), and
//   - items freeze the moment a payment exists.
//
// Item mutations run inside a transaction with the payment-existence check.
// The check fully excludes a concurrent payment insert only under
// serializable isolation (sqlite); read-committed backends leave a narrow
// window there, while double payment inserts stay arbitrated by the payment
// row's primary key either way.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	payments *repositories.PaymentRepository
	users    *repositories.UserRepository
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	payments *repositories.PaymentRepository,
	users *repositories.UserRepository,
) *OrderService {
	return &OrderService{orders: orders, products: products, payments: payments, users: users}
}

// orderWith is the association list for full order reads.
var orderWith = []string{"Items", "Items.Product", "Payment", "Client"}

// CreateOrderInput is the order creation payload. Status is optional and
// defaults to WAITING_PAYMENT. PAID passes validation on purpose: the
// service rejects it with payment-required rather than a generic 400.
type CreateOrderInput struct {
	Status string `json:"status" validate:"nullable,in=WAITING_PAYMENT,PAID,SHIPPED,DELIVERED,CANCELED"`
}

// Create opens a new order for the caller. An order can never be born PAID:
// the payment that would justify it cannot exist yet.
func (s *OrderService) Create(ident auth.Identity, in CreateOrderInput) (models.Order, error) {
	status := models.StatusWaitingPayment
	if in.Status != "" {
		status = models.OrderStatus(in.Status)
	}
	if status == models.StatusPaid {
		return models.Order{}, apperr.NotPaid(0)
	}

	client, err := s.users.FindByEmail(ident.Email)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{Status: status, ClientID: client.ID}
	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}
	order.Client = client
	return order, nil
}

// Find returns one order with items and payment. Clients see only their own
// orders; admins and managers see all.
func (s *OrderService) Find(ident auth.Identity, id uint) (models.Order, error) {
	order, err := s.orders.FindByID(id, orderWith...)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.authorize(ident, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// List returns one page of orders: all of them for admins and managers,
// only the caller's own otherwise.
func (s *OrderService) List(ident auth.Identity, page, limit int) ([]models.Order, orm.Pagination, error) {
	if ident.HasAnyRole(models.RoleAdmin, models.RoleManager) {
		return s.orders.All(page, limit)
	}
	client, err := s.users.FindByEmail(ident.Email)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	return s.orders.AllByClient(client.ID, page, limit)
}

// UpdateStatusInput names the target lifecycle state.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,in=WAITING_PAYMENT,PAID,SHIPPED,DELIVERED,CANCELED"`
}

// UpdateStatus sets an order's status. Two gates, both tied to the payment:
// PAID requires the payment row to exist already (else payment-required),
// and while a payment exists the status cannot move away from PAID except by
// deleting the payment. Unpaid orders move freely between the other states.
func (s *OrderService) UpdateStatus(ident auth.Identity, id uint, in UpdateStatusInput) (models.Order, error) {
	target := models.OrderStatus(in.Status)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}

		paid, err := s.payments.WithTx(tx).ExistsByOrder(id)
		if err != nil {
			return err
		}

		if target == models.StatusPaid {
			if !paid {
				return apperr.NotPaid(id)
			}
			return nil // payment exists, order is already PAID
		}
		if paid {
			return apperr.AlreadyPaid(id)
		}
		if order.Status == target {
			return nil
		}
		return orders.UpdateStatus(id, target)
	})
	if err != nil {
		return models.Order{}, err
	}

	return s.orders.FindByID(id, orderWith...)
}

// ── Items ────────────────────────────────────────────────────────────────────

// ItemInput is the add/update payload for one order line.
type ItemInput struct {
	ProductID uint `json:"product_id" validate:"required,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// AddItem puts a product on the order. A repeated product increments the
// existing line's quantity; a new product snapshots the current catalog
// price into the line. Frozen once a payment exists.
func (s *OrderService) AddItem(ident auth.Identity, orderID uint, in ItemInput) (models.Order, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if err := s.ensureMutable(tx, orderID); err != nil {
			return err
		}

		item, err := orders.FindItem(orderID, in.ProductID)
		switch {
		case err == nil:
			item.Quantity += in.Quantity
			return orders.UpdateItem(&item)
		case apperr.IsKind(err, apperr.KindNotFound):
			product, err := s.products.WithTx(tx).FindByID(in.ProductID)
			if err != nil {
				return err
			}
			line := models.OrderItem{
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  in.Quantity,
				Price:     product.Price,
			}
			return orders.CreateItem(&line)
		default:
			return err
		}
	})
	if err != nil {
		return models.Order{}, err
	}

	return s.orders.FindByID(orderID, orderWith...)
}

// UpdateItemInput replaces a line's quantity.
type UpdateItemInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// UpdateItem sets a line's quantity outright. The price snapshot never moves.
func (s *OrderService) UpdateItem(ident auth.Identity, orderID, productID uint, in UpdateItemInput) (models.Order, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if err := s.ensureMutable(tx, orderID); err != nil {
			return err
		}

		item, err := orders.FindItem(orderID, productID)
		if err != nil {
			return err
		}
		item.Quantity = in.Quantity
		return orders.UpdateItem(&item)
	})
	if err != nil {
		return models.Order{}, err
	}

	return s.orders.FindByID(orderID, orderWith...)
}

// DeleteItem removes a line from the order.
func (s *OrderService) DeleteItem(ident auth.Identity, orderID, productID uint) (models.Order, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if err := s.ensureMutable(tx, orderID); err != nil {
			return err
		}

		item, err := orders.FindItem(orderID, productID)
		if err != nil {
			return err
		}
		return orders.DeleteItem(&item)
	})
	if err != nil {
		return models.Order{}, err
	}

	return s.orders.FindByID(orderID, orderWith...)
}

// Delete removes an order that was never paid.
func (s *OrderService) Delete(ident auth.Identity, orderID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindByID(orderID)
		if err != nil {
			return err
		}
		if err := s.authorize(ident, &order); err != nil {
			return err
		}
		if err := s.ensureMutable(tx, orderID); err != nil {
			return err
		}
		return orders.Delete(&order)
	})
}

// ensureMutable fails with AlreadyPaid when the order's payment exists.
func (s *OrderService) ensureMutable(tx *gorm.DB, orderID uint) error {
	paid, err := s.payments.WithTx(tx).ExistsByOrder(orderID)
	if err != nil {
		return err
	}
	if paid {
		return apperr.AlreadyPaid(orderID)
	}
	return nil
}

// authorize lets admins and managers through, and owners of the order.
func (s *OrderService) authorize(ident auth.Identity, order *models.Order) error {
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
