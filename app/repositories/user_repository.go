package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// UserRepository handles database operations for User and Role.
type UserRepository struct {
	tx *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// WithTx returns a copy of the repository bound to a transaction handle.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{tx: tx}
}

func (r *UserRepository) q() *orm.Query {
	if r.tx != nil {
		return orm.Wrap(r.tx)
	}
	return orm.DB()
}

// FindByEmail looks up a user by email, roles included.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.q().Model(&models.User{}).With("Roles").Where("email = ?", email).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, apperr.NotFound("user", email)
	}
	return user, err
}

// FindByID looks up a user by primary key, roles included.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.q().Model(&models.User{}).With("Roles").Where("id = ?", id).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, apperr.NotFound("user", id)
	}
	return user, err
}

// ExistsByEmail reports whether any user holds the given email.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.q().Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0, err
}

// RolesByEmail returns the role codes held by the user with this email.
// Satisfies auth.RoleResolver for token refresh.
func (r *UserRepository) RolesByEmail(email string) ([]string, error) {
	user, err := r.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	return user.RoleCodes(), nil
}

// FindRoleByCode looks up a role by its code.
func (r *UserRepository) FindRoleByCode(code string) (models.Role, error) {
	var role models.Role
	err := r.q().Model(&models.Role{}).Where("code = ?", code).First(&role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return role, apperr.NotFound("role", code)
	}
	return role, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.q().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.q().Save(user)
}

// Delete removes a user.
func (r *UserRepository) Delete(user *models.User) error {
	return r.q().Delete(user)
}

// ReplaceRoles resets the user's role set to exactly roles.
func (r *UserRepository) ReplaceRoles(user *models.User, roles []models.Role) error {
	db := r.tx
	if db == nil {
		db = database.DB
	}
	return db.Model(user).Association("Roles").Replace(roles)
}

// All returns one page of users with their roles.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.q().Model(&models.User{}).With("Roles").GetWithPagination(&users, page, limit)
	return users, pagination, err
}
