package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppPort               string
	AppEnv                string
	AppCorsAllowedOrigins []string
	TrustedProxyCIDRs     []string
	RequestTimeoutSecs    int

	APIBaseURL        string
	APITimeoutSeconds int
	APIJWKSURL        string
	APITokenIssuer    string

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	SessionSecret     string
	SessionTTLHours   int
	SessionCookieName string

	SearchDebounceMs     int
	ScrollDelayMs        int
	MessengerIdleMinutes int
	SendRateLimitPerSec  float64
	SendRateBurst        int
	AdminEmailDomain     string
	AdminLoginRateLimit  int
	AdminLoginWindowSecs int

	IdleMessengerCleanupCron string
}

func LoadAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading from system environment variables")
	}

	return &AppConfig{
		AppPort:               mustGetEnv("APP_PORT"),
		AppEnv:                mustGetEnv("APP_ENV"),
		AppCorsAllowedOrigins: strings.Split(getEnv("APP_CORS_ALLOWED_ORIGINS", "*"), ","),
		TrustedProxyCIDRs:     splitNonEmpty(getEnv("TRUSTED_PROXY_CIDRS", "")),
		RequestTimeoutSecs:    getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60),

		APIBaseURL:        strings.TrimRight(mustGetEnv("API_BASE_URL"), "/"),
		APITimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 15),
		APIJWKSURL:        getEnv("API_JWKS_URL", ""),
		APITokenIssuer:    getEnv("API_TOKEN_ISSUER", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SessionSecret:     mustGetEnv("SESSION_SECRET"),
		SessionTTLHours:   getEnvAsInt("SESSION_TTL_HOURS", 24),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "afrilance_session"),

		SearchDebounceMs:     getEnvAsInt("SEARCH_DEBOUNCE_MS", 300),
		ScrollDelayMs:        getEnvAsInt("SCROLL_DELAY_MS", 100),
		MessengerIdleMinutes: getEnvAsInt("MESSENGER_IDLE_MINUTES", 30),
		SendRateLimitPerSec:  getEnvAsFloat("SEND_RATE_LIMIT_PER_SECOND", 2.0),
		SendRateBurst:        getEnvAsInt("SEND_RATE_BURST", 3),
		AdminEmailDomain:     getEnv("ADMIN_EMAIL_DOMAIN", "afrilance.co.za"),
		AdminLoginRateLimit:  getEnvAsInt("ADMIN_LOGIN_RATE_LIMIT", 5),
		AdminLoginWindowSecs: getEnvAsInt("ADMIN_LOGIN_RATE_WINDOW_SECONDS", 60),

		IdleMessengerCleanupCron: getEnv("IDLE_MESSENGER_CLEANUP_CRON", "@every 5m"),
	}
}

func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c *AppConfig) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *AppConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

func (c *AppConfig) ScrollDelay() time.Duration {
	return time.Duration(c.ScrollDelayMs) * time.Millisecond
}

func (c *AppConfig) MessengerIdleTimeout() time.Duration {
	return time.Duration(c.MessengerIdleMinutes) * time.Minute
}

func (c *AppConfig) AdminLoginWindow() time.Duration {
	return time.Duration(c.AdminLoginWindowSecs) * time.Second
}

func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

func mustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		slog.Error("Environment variable is required but not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		slog.Warn("Environment variable must be a float, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		slog.Warn("Environment variable must be an integer, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func splitNonEmpty(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
