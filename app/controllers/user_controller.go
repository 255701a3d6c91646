package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/bind"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// UserController exposes account reads and admin account management.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Profile handles GET /api/users/me.
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	user, err := c.users.Profile(ident)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, user)
}

// Show handles GET /api/users/{id}.
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
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
	user, err := c.users.Find(ident, id)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, user)
}

// List handles GET /api/users.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := c.users.List(page, limit)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Paginated(w, users, pagination)
}

// UpdateProfile handles PUT /api/users/me.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.UpdateProfileInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	user, err := c.users.UpdateProfile(ident, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, user)
}

// SetRoles handles PUT /api/users/{id}/roles.
func (c *UserController) SetRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.SetRolesInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	user, err := c.users.SetRoles(id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, user)
}

// Delete handles DELETE /api/users/{id}.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.users.Delete(ident, id); err != nil {
		response.AppError(w, r, err)
		return
	}
	response.NoContent(w)
}
