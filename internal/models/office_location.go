package models

import (
	"time"

	"gorm.io/gorm"
)

// OfficeLocation is a geofence directory entry. Latitude/longitude stay nil
// until the address has been geocoded, at which point GPSStatus flips from
// "pending" to "converted". Only converted locations with both coordinates
// are usable as check-in targets. A nil RadiusMeters means the system default
// applies.
type OfficeLocation struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Address        string         `gorm:"size:512" json:"address"`
	Latitude       *float64       `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude      *float64       `gorm:"type:decimal(11,8)" json:"longitude"`
	GPSStatus      string         `gorm:"size:16;not null;default:'pending'" json:"gps_status"`
	RadiusMeters   *int           `json:"radius_meters"`
	IsHeadquarters bool           `gorm:"default:false" json:"is_headquarters"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OfficeLocation) TableName() string { return "office_locations" }
