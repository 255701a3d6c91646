package models

import "testing"

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: 12.5}
	if got := item.Subtotal(); got != 37.5 {
		t.Errorf("Subtotal() = %v, want 37.5", got)
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, Price: 10.0},
			{Quantity: 1, Price: 5.5},
		},
	}
	if got := order.Total(); got != 25.5 {
		t.Errorf("Total() = %v, want 25.5", got)
	}
}

func TestOrderTotalEmpty(t *testing.T) {
	var order Order
	if got := order.Total(); got != 0 {
		t.Errorf("Total() on empty order = %v, want 0", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusWaitingPayment, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("REFUNDED").Valid() {
		t.Error("REFUNDED should not be valid")
	}
	if OrderStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}

func TestPaymentTypeValid(t *testing.T) {
	if !PaymentCreditCard.Valid() || !PaymentPix.Valid() {
		t.Error("known payment types should be valid")
	}
	if PaymentType("CASH").Valid() {
		t.Error("CASH should not be valid")
	}
}
