package user

import (
	"time"

	"gorm.io/gorm"
)

// Platform-level roles. Club-level roles live on club.Member.
const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"type:VARCHAR(20);default:'member'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}

// IsAdmin reports whether the user may drive payment transitions and club
// administration.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
