package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Email    EmailConfig
	Admin    AdminConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	Bucket string
	Region string
}

type EmailConfig struct {
	APIKey string
	From   string
}

type AdminConfig struct {
	// Email is the static administrator identity used by the fallback
	// authorization predicate when no role claim is present.
	Email string
}

type CacheConfig struct {
	ListingTTL time.Duration
	SessionTTL time.Duration
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "imovia-dev-secret"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("AWS_BUCKET_NAME", "imovia-images"),
			Region: getEnv("AWS_REGION", "sa-east-1"),
		},
		Email: EmailConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("EMAIL_FROM", "Imovia <no-reply@imovia.com.br>"),
		},
		Admin: AdminConfig{
			Email: getEnv("ADMIN_EMAIL", ""),
		},
		Cache: CacheConfig{
			ListingTTL: getDuration("LISTING_CACHE_TTL", 5*time.Minute),
			SessionTTL: getDuration("FAVORITES_SESSION_TTL", 30*24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
