package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/bind"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// AuthController exposes registration, login and token refresh.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}

	user, err := c.auth.Register(in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Created(w, user)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}

	pair, err := c.auth.Login(in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, pair)
}

// Refresh handles POST /api/auth/refresh.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var in services.RefreshInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}

	pair, err := c.auth.Refresh(in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, pair)
}
