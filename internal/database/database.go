package database

import (
	"os"
	"strconv"

	"attendly/config"
	"attendly/internal/domain"
	"attendly/internal/models"
	"attendly/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.OfficeLocation{},
		&models.CheckInRecord{},
		&models.SystemSetting{},
		&models.Announcement{},
		&models.LeaveRequest{},
	)
}

// Seed inserts the records the check-in engine depends on: the default
// distance limit, the headquarters geofence and a bootstrap admin account.
func Seed(db *gorm.DB) {
	settings := repository.NewSettingRepository(db)
	if err := settings.SeedDefaults(map[string]string{
		domain.SettingCheckInDistanceLimit: "500",
	}); err != nil {
		logrus.WithError(err).Warn("seeding default settings failed")
	}

	var hqCount int64
	db.Model(&models.OfficeLocation{}).Where("is_headquarters = ?", true).Count(&hqCount)
	if hqCount == 0 {
		lat := getenvFloat("HQ_LATITUDE", -1.286389)
		lng := getenvFloat("HQ_LONGITUDE", 36.817223)
		hq := &models.OfficeLocation{
			Name:           domain.HeadquartersName,
			Latitude:       &lat,
			Longitude:      &lng,
			GPSStatus:      domain.GPSStatusConverted,
			IsHeadquarters: true,
		}
		if err := db.Create(hq).Error; err != nil {
			logrus.WithError(err).Warn("seeding headquarters failed")
		}
	}

	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := &models.User{
			Email:        "admin@attendly.local",
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			FullName:     "System Administrator",
		}
		if err := db.Create(admin).Error; err != nil {
			logrus.WithError(err).Warn("seeding admin account failed")
		} else {
			logrus.Warn("seeded default admin account; change its password immediately")
		}
	}
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
