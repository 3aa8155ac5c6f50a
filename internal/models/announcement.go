package models

import (
	"time"

	"gorm.io/gorm"
)

type Announcement struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Pinned    bool           `gorm:"default:false" json:"pinned"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Announcement) TableName() string { return "announcements" }
