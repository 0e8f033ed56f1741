package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT            string
	DB_URL          string
	JWT_SECRET      string
	CORS_ORIGIN     string
	LOG_LEVEL       string
	PUBLIC_BASE_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	CHAT_PROVIDER string
	CHAT_API_KEY  string
	CHAT_BASE_URL string
	CHAT_MODEL    string

	ANALYTICS_RETENTION_DAYS int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	PUBLIC_BASE_URL = getEnv("PUBLIC_BASE_URL", "http://localhost:5173")

	// Google sign-in is optional; the routes answer 503 when unset
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	CHAT_PROVIDER = getEnv("CHAT_PROVIDER", "openai")
	CHAT_API_KEY = getEnv("CHAT_API_KEY", "")
	CHAT_BASE_URL = getEnv("CHAT_BASE_URL", "")
	CHAT_MODEL = getEnv("CHAT_MODEL", "")

	ANALYTICS_RETENTION_DAYS = getEnvInt("ANALYTICS_RETENTION_DAYS", 365)
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
