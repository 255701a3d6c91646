package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
)

func TestCreateOrderDefaultsToWaitingPayment(t *testing.T) {
	f := newFixture(t)

	order, err := f.orderSvc.Create(f.clientIdent, CreateOrderInput{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingPayment, order.Status)
	assert.Equal(t, f.client.ID, order.ClientID)
	assert.False(t, order.Moment.IsZero())
}

func TestAddItemSnapshotsPriceAndIncrementsQuantity(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Keyboard", 10.0)
	order := f.createOrder(t)

	// First add: quantity 2 at unit price 10 → total 20.
	got, err := f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 10.0, got.Items[0].Price)
	assert.Equal(t, 20.0, got.Total())

	// Catalog price changes after the snapshot.
	product.Price = 99.0
	require.NoError(t, f.products.Update(&product))

	// Same product again: quantity increments, the snapshot price holds.
	got, err = f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.Equal(t, 10.0, got.Items[0].Price)
	assert.Equal(t, 50.0, got.Total())
}

func TestPaymentFlowFreezesItemsAndDeletionReverts(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Mouse", 10.0)
	order := f.createOrder(t)

	_, err := f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	// Record the payment: amount captures the current total, order goes PAID.
	payment, err := f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "PIX"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, payment.Amount)
	assert.Equal(t, models.PaymentPix, payment.Type)

	got, err := f.orderSvc.Find(f.clientIdent, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
	require.NotNil(t, got.Payment)

	// Items are frozen while the payment exists.
	_, err = f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))
	_, err = f.orderSvc.UpdateItem(f.clientIdent, order.ID, product.ID, UpdateItemInput{Quantity: 9})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))
	_, err = f.orderSvc.DeleteItem(f.clientIdent, order.ID, product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))

	// Deleting the payment reverts the order and unfreezes the items.
	require.NoError(t, f.paymentSvc.Delete(f.clientIdent, order.ID))

	got, err = f.orderSvc.Find(f.clientIdent, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingPayment, got.Status)
	assert.Nil(t, got.Payment)

	_, err = f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	assert.NoError(t, err)
}

func TestSecondPaymentConflicts(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Desk", 100.0)
	order := f.createOrder(t)
	_, err := f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "CREDIT_CARD"})
	require.NoError(t, err)

	_, err = f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "PIX"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateStatusToPaidRequiresPayment(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	_, err := f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "PAID"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotPaid))

	// After a real payment the same request is a no-op, not an error.
	product := f.createProduct(t, "Chair", 10.0)
	_, err = f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "PIX"})
	require.NoError(t, err)

	got, err := f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "PAID"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Lamp", 25.0)
	order := f.createOrder(t)
	_, err := f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// Unpaid orders move freely between the non-PAID states.
	got, err := f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "SHIPPED"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)

	got, err = f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "WAITING_PAYMENT"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingPayment, got.Status)

	_, err = f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "PIX"})
	require.NoError(t, err)

	// While the payment exists, status cannot leave PAID by edit.
	_, err = f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "SHIPPED"})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))
	_, err = f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "CANCELED"})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))

	// Removing the payment is the only way out of PAID.
	require.NoError(t, f.paymentSvc.Delete(f.clientIdent, order.ID))
	got, err = f.orderSvc.UpdateStatus(f.adminIdent, order.ID, UpdateStatusInput{Status: "CANCELED"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, got.Status)
}

func TestOwnershipGate(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	// A second client cannot see or touch the order.
	require.NoError(t, f.users.Create(&models.User{
		Name: "Other", Email: "other@example.com", Password: "x",
	}))
	other := auth.Identity{Email: "other@example.com", Roles: []string{models.RoleUser}}

	_, err := f.orderSvc.Find(other, order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	_, err = f.paymentSvc.Record(other, order.ID, RecordPaymentInput{Type: "PIX"})
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// Admins and managers pass the gate.
	_, err = f.orderSvc.Find(f.adminIdent, order.ID)
	assert.NoError(t, err)
	manager := auth.Identity{Email: "mgr@example.com", Roles: []string{models.RoleManager}}
	_, err = f.orderSvc.Find(manager, order.ID)
	assert.NoError(t, err)
}

func TestListScopesByRole(t *testing.T) {
	f := newFixture(t)
	f.createOrder(t)
	f.createOrder(t)

	// Another client with one order of their own.
	require.NoError(t, f.users.Create(&models.User{
		Name: "Other", Email: "other@example.com", Password: "x",
	}))
	other := auth.Identity{Email: "other@example.com", Roles: []string{models.RoleUser}}
	_, err := f.orderSvc.Create(other, CreateOrderInput{})
	require.NoError(t, err)

	mine, _, err := f.orderSvc.List(f.clientIdent, 1, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, pagination, err := f.orderSvc.List(f.adminIdent, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), pagination.Total)
}

func TestCreateOrderCannotBePaid(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderSvc.Create(f.clientIdent, CreateOrderInput{Status: "PAID"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotPaid))
}

func TestDeletePaidOrderBlocked(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Monitor", 200.0)
	order := f.createOrder(t)
	_, err := f.orderSvc.AddItem(f.clientIdent, order.ID, ItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.paymentSvc.Record(f.clientIdent, order.ID, RecordPaymentInput{Type: "PIX"})
	require.NoError(t, err)

	err = f.orderSvc.Delete(f.clientIdent, order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyPaid))
}
