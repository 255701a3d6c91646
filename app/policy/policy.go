// Package policy declares the capability table: which roles may perform
// which operation. Ownership checks (a client touching only their own
// orders and account) live in the services, behind these role gates.
package policy

import (
	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/rbac"
)

// Table is the full operation → roles map. Operations missing from this
// table are denied for everyone, so adding a route without a policy entry
// fails closed.
func Table() rbac.Policy {
	user := []string{models.RoleUser, models.RoleManager, models.RoleAdmin}
	staff := []string{models.RoleManager, models.RoleAdmin}
	admin := []string{models.RoleAdmin}

	return rbac.Policy{
		"users.profile": user,
		"users.show":    user,
		"users.update":  user,
		"users.delete":  user,
		"users.list":    admin,
		"users.roles":   admin,

		"categories.create": staff,
		"categories.update": staff,
		"categories.delete": staff,

		"products.create": staff,
		"products.update": staff,
		"products.delete": staff,

		"orders.create": user,
		"orders.show":   user,
		"orders.list":   user,
		"orders.status": staff,
		"orders.items":  user,
		"orders.delete": user,

		"payments.record": user,
		"payments.show":   user,
		"payments.update": staff,
		"payments.delete": staff,
	}
}
