package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	CheckIn    CheckInConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CheckInConfig holds the attendance engine knobs that are not admin-editable
// at runtime (the distance limit itself lives in system_settings).
type CheckInConfig struct {
	IPLookupEndpoint string
	PositionTimeout  time.Duration
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "attendly:attendly@tcp(localhost:3306)/attendly?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        getenv("JWT_ISSUER", "attendly"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		CheckIn: CheckInConfig{
			IPLookupEndpoint: getenv("IP_LOOKUP_ENDPOINT", "https://api.ipify.org?format=json"),
			PositionTimeout:  getDuration("POSITION_TIMEOUT", 10*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
