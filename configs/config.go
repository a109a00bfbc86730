package configs

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the app reads from the environment.
type Config struct {
	AppEnv    string
	Port      string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	UploadDir string
	ExportDir string

	TokenTTLMinutes int
}

// LoadConfig reads the environment into a Config. godotenv is loaded by the
// entrypoints before this runs.
func LoadConfig() *Config {
	return &Config{
		AppEnv:    getEnv("APP_ENV", "production"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: getEnv("JWT_SECRET", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "oficina"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		ExportDir: getEnv("EXPORT_DIR", "./exports"),

		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 480),
	}
}

// DSN builds the postgres connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
