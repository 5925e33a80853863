package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
// Provider API keys are intentionally not validated here: a missing credential
// only surfaces when the corresponding provider is first invoked.
type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	SessionSecret string
	PublicBaseURL string
	StoragePath   string
	GeoIPDBPath   string

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIImageModel  string
	OpenAIVisionModel string

	ReplicateAPIToken string
	ReplicateBaseURL  string
	ReplicateModel    string

	ResendAPIKey string
	EmailFrom    string
	AdminEmail   string

	TelegramBotToken string
	TelegramChatID   int64

	AllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	GenerateTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		StoragePath:   getEnv("STORAGE_PATH", "./storage"),
		GeoIPDBPath:   os.Getenv("GEOIP_DB_PATH"),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIImageModel:  getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAIVisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),

		ReplicateAPIToken: os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateBaseURL:  getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		ReplicateModel:    getEnv("REPLICATE_MODEL", "black-forest-labs/flux-1.1-pro"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getEnv("EMAIL_FROM", "ExpoStand AI <noreply@expostand.example>"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 150)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		GenerateTimeout:  time.Second * time.Duration(getEnvInt("GENERATE_TIMEOUT_SECONDS", 120)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
