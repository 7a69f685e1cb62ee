package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Storage modes supported by the ingestion pipeline.
const (
	StorageModeLocal  = "local"
	StorageModeRemote = "remote"
)

const devJWTSecret = "dev-only-insecure-secret-do-not-use-in-prod"
const defaultAdminPassword = "changeme123"

// Config holds all configuration values from environment.
type Config struct {
	AppPort     string
	Environment string
	FrontendURL string
	BackendURL  string

	AdminUsername string
	AdminPassword string
	JWTSecret     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// StorageMode selects where processed images live: "local" keeps
	// originals and variants on disk under UploadsDir, "remote" pushes
	// originals to MinIO behind an on-the-fly transform proxy.
	StorageMode string
	UploadsDir  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool

	// TransformBaseURL is the public base URL of the image proxy fronting
	// the MinIO bucket. Derived display/thumbnail URLs inject a transform
	// token path segment against this base.
	TransformBaseURL string
}

// LoadConfig loads configuration from environment variables. A .env file is
// honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	minioSSL := false
	if sslEnv := os.Getenv("MINIO_SSL"); sslEnv != "" {
		val, err := strconv.ParseBool(sslEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_SSL value: %v", err)
		}
		minioSSL = val
	}

	cfg := &Config{
		AppPort:     getEnv("PORT", "3001"),
		Environment: getEnv("APP_ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:  os.Getenv("BACKEND_URL"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		StorageMode: getEnv("STORAGE_MODE", StorageModeLocal),
		UploadsDir:  getEnv("UPLOADS_DIR", "./uploads"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    os.Getenv("MINIO_BUCKET"),
		MinioSSL:       minioSSL,

		TransformBaseURL: os.Getenv("TRANSFORM_BASE_URL"),
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:" + cfg.AppPort
	}

	if cfg.IsProduction() {
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be set and at least 32 characters in production")
		}
		if cfg.AdminPassword == "" || cfg.AdminPassword == defaultAdminPassword {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be changed from default in production")
		}
	} else {
		if cfg.JWTSecret == "" {
			log.Warn().Msg("JWT_SECRET not set, using insecure default (OK for development)")
			cfg.JWTSecret = devJWTSecret
		}
		if cfg.AdminPassword == "" {
			log.Warn().Msg("ADMIN_PASSWORD not set, using default (OK for development)")
			cfg.AdminPassword = defaultAdminPassword
		}
	}

	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	switch cfg.StorageMode {
	case StorageModeLocal:
		// UploadsDir always has a default
	case StorageModeRemote:
		if cfg.MinioEndpoint == "" || cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return nil, fmt.Errorf("minio configuration is incomplete")
		}
		if cfg.TransformBaseURL == "" {
			return nil, fmt.Errorf("TRANSFORM_BASE_URL is required in remote storage mode")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_MODE %q", cfg.StorageMode)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
