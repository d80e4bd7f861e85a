package config

import (
	"os"
	"time"

	"crm-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Mongo
	MongoURI string
	MongoDB  string

	// Redis
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// Seed admin
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string

	// Attendance day boundary
	TimeZone string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "crm"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			Issuer:   "crm-service",
			Audience: "crm-users",
			TTL:      720 * time.Hour,
		},

		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		AdminFirstName: getEnv("ADMIN_FIRST_NAME", "Admin"),
		AdminLastName:  getEnv("ADMIN_LAST_NAME", "User"),

		TimeZone: getEnv("TIME_ZONE", "Asia/Kolkata"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
