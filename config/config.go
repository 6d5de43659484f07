package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseDSN    string
	GinMode        string
	AllowedOrigins string
	UploadDir      string
	AdminEmail     string
	AdminPassword  string
}

var AppConfig Config

// LoadConfig reads .env (if present) and fills AppConfig with environment
// values, falling back to development defaults.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = Config{
		Port:           getEnv("PORT", "8083"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=restaurant port=5432 sslmode=disable"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "./public/static/uploads"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "Admin2024!"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func IsRelease() bool {
	return AppConfig.GinMode == "release"
}
