package models

import "gorm.io/gorm"

// Role codes. Seeded at startup; never deleted in normal operation.
const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

// AllRoleCodes lists every role the system knows, in seed order.
func AllRoleCodes() []string {
	return []string{RoleUser, RoleAdmin, RoleManager}
}

// Role is a grantable authority.
type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"uniqueIndex;size:50;not null" json:"code"`
}

// User is the account model. Email is the global identity used as the token
// subject.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone    string `gorm:"size:50" json:"phone"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Roles    []Role `gorm:"many2many:user_roles" json:"roles"`
}

// RoleCodes returns the user's role codes in stored order.
func (u *User) RoleCodes() []string {
	codes := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		codes = append(codes, r.Code)
	}
	return codes
}

// HasRole reports whether the user holds the given role code.
func (u *User) HasRole(code string) bool {
	for _, r := range u.Roles {
		if r.Code == code {
			return true
		}
	}
	return false
}
