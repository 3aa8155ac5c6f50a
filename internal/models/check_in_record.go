package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckInRecord is an append-only attendance event. Rows are never updated.
// The (user_id, day_key, action_key) unique index enforces at most one
// success row per user, local calendar day and action; failed rows carry a
// nil day_key and are exempt.
type CheckInRecord struct {
	// ID is a uuid string.
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_records_user_time,priority:1;uniqueIndex:idx_records_daily,priority:1" json:"user_id"`
	Timestamp time.Time `gorm:"not null;index:idx_records_user_time,priority:2" json:"timestamp"`
	// SourceType is "location" or "ip"; Status is "success" or "failed";
	// Action is "check-in" or "check-out".
	SourceType string `gorm:"size:16;not null" json:"source_type"`
	Status     string `gorm:"size:16;not null;index" json:"status"`
	Action     string `gorm:"size:16;not null" json:"action"`
	// DayKey is the local YYYY-MM-DD; nil (with ActionKey) for failed rows.
	DayKey    *string `gorm:"size:10;uniqueIndex:idx_records_daily,priority:2" json:"-"`
	ActionKey *string `gorm:"size:16;uniqueIndex:idx_records_daily,priority:3" json:"-"`

	// Detail columns, all optional.
	Latitude        *float64 `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude       *float64 `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	DistanceMeters  *int     `json:"distance_meters,omitempty"`
	LocationName    string   `gorm:"size:128" json:"location_name,omitempty"`
	TargetLatitude  *float64 `gorm:"type:decimal(10,8)" json:"target_latitude,omitempty"`
	TargetLongitude *float64 `gorm:"type:decimal(11,8)" json:"target_longitude,omitempty"`
	TargetName      string   `gorm:"size:128" json:"target_name,omitempty"`
	IPAddress       string   `gorm:"size:45" json:"ip_address,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (CheckInRecord) TableName() string { return "check_in_records" }
