package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting, read once at startup.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     []byte
	TokenTTL      time.Duration
	ImageDir      string
	RedisAddr     string
	RedisPassword string
	GinMode       string
	LogLevel      string
}

// Load reads an optional .env file and then the process environment,
// falling back to defaults suitable for local development.
func Load() Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "foodees.db"),
		JWTSecret:     []byte(getEnv("JWT_SECRET", "foodees_dev_secret_change_me")),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		ImageDir:      getEnv("IMAGE_DIR", "images"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
