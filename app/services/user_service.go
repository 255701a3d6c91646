package services

import (
	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// UserService implements account reads and admin account management.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the account matching the authenticated identity.
func (s *UserService) Profile(ident auth.Identity) (models.User, error) {
	return s.users.FindByEmail(ident.Email)
}

// Find returns one account. Non-admins can only read their own.
func (s *UserService) Find(ident auth.Identity, id uint) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, err
	}
	if !ident.HasRole(models.RoleAdmin) && !ident.Is(user.Email) {
		return models.User{}, apperr.AccessDenied("cannot read another user's account")
	}
	return user, nil
}

// List returns one page of accounts. Admin only; the route gate enforces it,
// this is just the data path.
func (s *UserService) List(page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, limit)
}

// UpdateProfileInput is the self-service profile patch.
type UpdateProfileInput struct {
	Name  string `json:"name" validate:"nullable,min=2,max=120"`
	Phone string `json:"phone" validate:"nullable,max=32"`
}

// UpdateProfile patches the caller's own name/phone.
func (s *UserService) UpdateProfile(ident auth.Identity, in UpdateProfileInput) (models.User, error) {
	user, err := s.users.FindByEmail(ident.Email)
	if err != nil {
		return models.User{}, err
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetRolesInput names the full role set a user should hold.
type SetRolesInput struct {
	Roles []string `json:"roles" validate:"required"`
}

// SetRoles replaces a user's role set. Existing tokens keep their old roles
// until they expire or are refreshed.
func (s *UserService) SetRoles(id uint, in SetRolesInput) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, err
	}

	roles := make([]models.Role, 0, len(in.Roles))
	for _, code := range in.Roles {
		role, err := s.users.FindRoleByCode(code)
		if err != nil {
			return models.User{}, err
		}
		roles = append(roles, role)
	}

	if err := s.users.ReplaceRoles(&user, roles); err != nil {
		return models.User{}, err
	}
	user.Roles = roles
	return user, nil
}

// Delete removes an account. Admins can delete anyone; everyone else only
// themselves.
func (s *UserService) Delete(ident auth.Identity, id uint) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if !ident.HasRole(models.RoleAdmin) && !ident.Is(user.Email) {
		return apperr.AccessDenied("cannot delete another user's account")
	}
	return s.users.Delete(&user)
}
