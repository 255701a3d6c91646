package models

import "time"

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusWaitingPayment OrderStatus = "WAITING_PAYMENT"
	StatusPaid           OrderStatus = "PAID"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCanceled       OrderStatus = "CANCELED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusWaitingPayment, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// PaymentType is the accepted payment method.
type PaymentType string

const (
	PaymentCreditCard PaymentType = "CREDIT_CARD"
	PaymentPix        PaymentType = "PIX"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentCreditCard || t == PaymentPix
}

// Order is a client's order. Status and the Payment row move together:
// an order is PAID exactly when its Payment exists, and both sides of that
// equivalence are only ever written inside one transaction.
type Order struct {
	ID       uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Moment   time.Time   `gorm:"autoCreateTime" json:"moment"`
	Status   OrderStatus `gorm:"size:50;not null;default:WAITING_PAYMENT" json:"status"`
	ClientID uint        `gorm:"not null;index" json:"client_id"`
	Client   User        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment  *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// Total is the sum of item subtotals. Always derived, never stored.
func (o *Order) Total() float64 {
	var total float64
	for i := range o.Items {
		total += o.Items[i].Subtotal()
	}
	return total
}

// HasPayment reports whether a loaded Payment association exists.
func (o *Order) HasPayment() bool {
	return o.Payment != nil
}

// OrderItem is one product line in an order. The composite (order, product)
// key means a product appears at most once per order; adding it again
// increments Quantity instead. Price is the snapshot taken when the line was
// first inserted and never changes afterwards.
type OrderItem struct {
	OrderID   uint    `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // unit price at insertion
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Subtotal is Quantity × the snapshot price. Always derived.
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// Payment shares its primary key with the order it pays for: OrderID is both
// PK and FK, which makes "at most one payment per order" a structural fact
// the database enforces. A duplicate insert surfaces as a key violation, not
// as a missed existence check.
type Payment struct {
	OrderID uint        `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	Moment  time.Time   `gorm:"autoCreateTime" json:"moment"`
	Type    PaymentType `gorm:"size:50;not null" json:"type"`
	Amount  float64     `gorm:"not null" json:"amount"`
}
