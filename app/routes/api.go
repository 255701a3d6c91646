// Package routes wires controllers onto the router. Authentication runs on
// every /api route; each protected operation carries its rbac gate by name,
// matching the capability table in app/policy.
package routes

import (
	"github.com/shashiranjanraj/vypar/app/controllers"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/middleware"
	"github.com/shashiranjanraj/vypar/pkg/rbac"
	"github.com/shashiranjanraj/vypar/pkg/router"
)

// RegisterAPI builds the full dependency graph and mounts every route.
func RegisterAPI(r *router.Router, tokens *auth.TokenService) {
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()
	categories := repositories.NewCategoryRepository()
	orders := repositories.NewOrderRepository()
	payments := repositories.NewPaymentRepository()

	authC := controllers.NewAuthController(services.NewAuthService(users, tokens))
	userC := controllers.NewUserController(services.NewUserService(users))
	productC := controllers.NewProductController(services.NewProductService(products, categories))
	categoryC := controllers.NewCategoryController(services.NewCategoryService(categories))
	orderC := controllers.NewOrderController(services.NewOrderService(orders, products, payments, users))
	paymentC := controllers.NewPaymentController(services.NewPaymentService(orders, payments, users))

	api := r.Group("/api", middleware.Authn(tokens))

	// Anonymous surface.
	api.Post("/auth/register", "auth.register", authC.Register)
	api.Post("/auth/login", "auth.login", authC.Login)
	api.Post("/auth/refresh", "auth.refresh", authC.Refresh)

	// Catalog reads are public.
	api.Get("/products", "products.list", productC.List)
	api.Get("/products/{id}", "products.show", productC.Show)
	api.Get("/categories", "categories.list", categoryC.List)
	api.Get("/categories/{id}", "categories.show", categoryC.Show)

	// Catalog writes, managers and admins.
	api.Post("/products", "products.create", productC.Create, rbac.Authorize("products.create"))
	api.Put("/products/{id}", "products.update", productC.Update, rbac.Authorize("products.update"))
	api.Delete("/products/{id}", "products.delete", productC.Delete, rbac.Authorize("products.delete"))
	api.Post("/categories", "categories.create", categoryC.Create, rbac.Authorize("categories.create"))
	api.Put("/categories/{id}", "categories.update", categoryC.Update, rbac.Authorize("categories.update"))
	api.Delete("/categories/{id}", "categories.delete", categoryC.Delete, rbac.Authorize("categories.delete"))

	// Accounts.
	api.Get("/users/me", "users.profile", userC.Profile, rbac.Authorize("users.profile"))
	api.Put("/users/me", "users.update", userC.UpdateProfile, rbac.Authorize("users.update"))
	api.Get("/users", "users.list", userC.List, rbac.Authorize("users.list"))
	api.Get("/users/{id}", "users.show", userC.Show, rbac.Authorize("users.show"))
	api.Put("/users/{id}/roles", "users.roles", userC.SetRoles, rbac.Authorize("users.roles"))
	api.Delete("/users/{id}", "users.delete", userC.Delete, rbac.Authorize("users.delete"))

	// Orders and items.
	api.Post("/orders", "orders.create", orderC.Create, rbac.Authorize("orders.create"))
	api.Get("/orders", "orders.list", orderC.List, rbac.Authorize("orders.list"))
	api.Get("/orders/{id}", "orders.show", orderC.Show, rbac.Authorize("orders.show"))
	api.Put("/orders/{id}/status", "orders.status", orderC.UpdateStatus, rbac.Authorize("orders.status"))
	api.Delete("/orders/{id}", "orders.delete", orderC.Delete, rbac.Authorize("orders.delete"))
	api.Post("/orders/{id}/items", "orders.items.add", orderC.AddItem, rbac.Authorize("orders.items"))
	api.Put("/orders/{id}/items/{productId}", "orders.items.update", orderC.UpdateItem, rbac.Authorize("orders.items"))
	api.Delete("/orders/{id}/items/{productId}", "orders.items.delete", orderC.DeleteItem, rbac.Authorize("orders.items"))

	// Payments.
	api.Post("/orders/{id}/payment", "payments.record", paymentC.Record, rbac.Authorize("payments.record"))
	api.Get("/orders/{id}/payment", "payments.show", paymentC.Show, rbac.Authorize("payments.show"))
	api.Put("/orders/{id}/payment", "payments.update", paymentC.Update, rbac.Authorize("payments.update"))
	api.Delete("/orders/{id}/payment", "payments.delete", paymentC.Delete, rbac.Authorize("payments.delete"))
}
