package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/bind"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// OrderController exposes the order lifecycle and item mutations.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /api/orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.CreateOrderInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	order, err := c.orders.Create(ident, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Created(w, order)
}

// Show handles GET /api/orders/{id}.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
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
	order, err := c.orders.Find(ident, id)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, order)
}

// List handles GET /api/orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	page, limit := pageParams(r)
	orders, pagination, err := c.orders.List(ident, page, limit)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// UpdateStatus handles PUT /api/orders/{id}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	var in services.UpdateStatusInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	order, err := c.orders.UpdateStatus(ident, id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, order)
}

// AddItem handles POST /api/orders/{id}/items.
func (c *OrderController) AddItem(w http.ResponseWriter, r *http.Request) {
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
	var in services.ItemInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	order, err := c.orders.AddItem(ident, id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, order)
}

// UpdateItem handles PUT /api/orders/{id}/items/{productId}.
func (c *OrderController) UpdateItem(w http.ResponseWriter, r *http.Request) {
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
	productID, err := pathID(r, "productId")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.UpdateItemInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	order, err := c.orders.UpdateItem(ident, id, productID, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, order)
}

// DeleteItem handles DELETE /api/orders/{id}/items/{productId}.
func (c *OrderController) DeleteItem(w http.ResponseWriter, r *http.Request) {
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
	productID, err := pathID(r, "productId")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	order, err := c.orders.DeleteItem(ident, id, productID)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, order)
}

// Delete handles DELETE /api/orders/{id}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.orders.Delete(ident, id); err != nil {
		response.AppError(w, r, err)
		return
	}
	response.NoContent(w)
}
