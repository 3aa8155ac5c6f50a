package models

import (
	"time"

	"attendly/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"uniqueIndex;size:64;not null;default:''" json:"username"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Role            string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | HR | STAFF
	FullName        string         `gorm:"size:255" json:"full_name"`
	EmployeeNo      string         `gorm:"uniqueIndex;size:32" json:"employee_no"`
	Position        string         `gorm:"size:128" json:"position"`
	BranchID        *uint          `gorm:"index" json:"branch_id"`
	AssignedOffice  *string        `gorm:"size:128" json:"assigned_office"` // nil = no assigned geofence, resolves to headquarters
	GoogleID        *string        `gorm:"uniqueIndex;size:255" json:"-"`   // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	HireDate        *time.Time     `json:"hire_date"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
func (u *User) IsHR() bool    { return u.Role == domain.RoleHR || u.Role == domain.RoleAdmin }
