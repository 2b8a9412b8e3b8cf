package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSpoonacularURL = "https://api.spoonacular.com"
	defaultResultLimit    = 10
	defaultDatabasePath   = "data/recipe_finder.db"
	defaultPort           = "8080"
	defaultSessionTTL     = 7 * 24 * time.Hour
)

// Config holds the configuration for the application.
type Config struct {
	SpoonacularAPIKey      string
	SpoonacularURL         string
	SpoonacularResultLimit int

	DatabasePath string
	Port         string

	SessionSecret  string
	SessionTTL     time.Duration
	SecureCookies  bool
	AllowedOrigins []string

	// Redis Config (optional, replaces the SQLite response cache when set)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	apiKey := os.Getenv("SPOONACULAR_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable not set")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable not set")
	}

	resultLimit := defaultResultLimit
	if v := os.Getenv("SPOONACULAR_RESULT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SPOONACULAR_RESULT_LIMIT must be a positive integer, got %q", v)
		}
		resultLimit = n
	}

	sessionTTL := defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", v)
		}
		sessionTTL = d
	}

	var redisDB int
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer, got %q", v)
		}
		redisDB = n
	}

	secureCookies, _ := strconv.ParseBool(os.Getenv("SECURE_COOKIES"))

	return &Config{
		SpoonacularAPIKey:      apiKey,
		SpoonacularURL:         strings.TrimRight(getEnv("SPOONACULAR_API_URL", defaultSpoonacularURL), "/"),
		SpoonacularResultLimit: resultLimit,
		DatabasePath:           getEnv("DATABASE_PATH", defaultDatabasePath),
		Port:                   getEnv("PORT", defaultPort),
		SessionSecret:          sessionSecret,
		SessionTTL:             sessionTTL,
		SecureCookies:          secureCookies,
		AllowedOrigins:         splitList(os.Getenv("ALLOWED_ORIGINS")),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
