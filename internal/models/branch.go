package models

import (
	"time"

	"gorm.io/gorm"
)

// Branch is a company branch; staff belong to one branch.
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Address   string         `gorm:"size:512" json:"address"`
	Phone     string         `gorm:"size:32" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Branch) TableName() string { return "branches" }
