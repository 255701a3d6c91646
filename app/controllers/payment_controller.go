package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/bind"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// PaymentController exposes the payment ledger under each order.
type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// Record handles POST /api/orders/{id}/payment.
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.RecordPaymentInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	payment, err := c.payments.Record(ident, id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Created(w, payment)
}

// Show handles GET /api/orders/{id}/payment.
func (c *PaymentController) Show(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	payment, err := c.payments.Find(ident, id)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, payment)
}

// Update handles PUT /api/orders/{id}/payment: moving the payment onto a
// different order, or changing its type in place.
func (c *PaymentController) Update(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.RetargetPaymentInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	payment, err := c.payments.Retarget(ident, id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, payment)
}

// Delete handles DELETE /api/orders/{id}/payment.
func (c *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	if err := c.payments.Delete(ident, id); err != nil {
		response.AppError(w, r, err)
		return
	}
	response.NoContent(w)
}
