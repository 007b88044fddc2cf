package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port           string
	Env            string
	AllowedOrigins []string

	// PSX upstream
	PSXBaseURL     string
	RequestTimeout time.Duration
	UserAgent      string

	// Rate limiting (per client IP, analyze/compare routes)
	RateLimitPerMin int
	RateLimitBurst  int

	// Cache
	CacheDBPath  string
	StockListTTL time.Duration
	SnapshotTTL  time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173")),

		// PSX upstream
		PSXBaseURL: getEnv("PSX_BASE_URL", "https://dps.psx.com.pk"),
		UserAgent: getEnv("PSX_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
		RequestTimeout: getEnvDuration("PSX_REQUEST_TIMEOUT", 30*time.Second),

		// Rate limiting
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 5),

		// Cache
		CacheDBPath:  getEnv("CACHE_DB_PATH", "psxlens.db"),
		StockListTTL: getEnvDuration("STOCK_LIST_TTL", time.Hour),
		SnapshotTTL:  getEnvDuration("SNAPSHOT_TTL", 5*time.Minute),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
