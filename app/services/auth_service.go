package services

import (
	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
)

// AuthService implements registration, credential login and token refresh.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"nullable,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Register creates a new account with the default USER role.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	exists, err := s.users.ExistsByEmail(in.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, apperr.Conflict("email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	role, err := s.users.FindRoleByCode(models.RoleUser)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hash,
		Roles:    []models.Role{role},
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the credential and issues a fresh token pair. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (auth.TokenPair, error) {
	user, err := s.users.FindByEmail(in.Email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return auth.TokenPair{}, apperr.Unauthenticated("invalid credentials")
		}
		return auth.TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return auth.TokenPair{}, apperr.Unauthenticated("invalid credentials")
	}

	return s.tokens.IssueTokenPair(user.Email, user.RoleCodes())
}

// RefreshInput carries the refresh token plus the email the caller claims.
type RefreshInput struct {
	Email        string `json:"email" validate:"required,email"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a refresh token for a new pair. Roles are re-read from
// the database so revocations take effect on the next refresh, not at expiry.
func (s *AuthService) Refresh(in RefreshInput) (auth.TokenPair, error) {
	return s.tokens.RefreshAccess(in.RefreshToken, in.Email, s.users)
}
