package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Type       string         `gorm:"size:32;not null" json:"type"` // annual, sick, unpaid...
	StartDate  time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time      `gorm:"type:date;not null" json:"end_date"`
	Reason     string         `gorm:"type:text" json:"reason"`
	Status     string         `gorm:"size:16;not null;default:'PENDING';index" json:"status"` // PENDING | APPROVED | REJECTED
	ReviewerID *uint          `json:"reviewer_id"`
	ReviewNote string         `gorm:"size:512" json:"review_note"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }
