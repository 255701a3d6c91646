package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/config"
	"github.com/shashiranjanraj/vypar/pkg/auth"
)

func init() {
	Register("roles", SeedRoles)
	Register("admin", SeedAdmin)
}

// SeedRoles inserts the three role codes, skipping ones already present.
func SeedRoles(db *gorm.DB) error {
	for _, code := range models.AllRoleCodes() {
		var existing models.Role
		err := db.Where("code = ?", code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Role{Code: code}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the bootstrap administrator when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no account with that email exists yet.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	var adminRole models.Role
	if err := db.Where("code = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: hash,
		Roles:    []models.Role{adminRole},
	}
	return db.Create(&admin).Error
}
