package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	HTTPPort        int
	StorageType     string
	DataDir         string
	AllowListPath   string
	RedisURL        string
	AdminPassword   string
	SessionTTL      time.Duration
	LockoutWindow   time.Duration
	MaxCodeAttempts int
	RateLimitPerMin int
}

// Load returns application config populated from environment variables
// with sensible defaults. ADMIN_PASSWORD has no default; the factory
// rejects an empty value.
func Load() App {
	return App{
		HTTPPort:        intEnv("HTTP_PORT", 8080),
		StorageType:     getEnv("STORAGE_TYPE", "csv"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		AllowListPath:   getEnv("ALLOWLIST_PATH", "./data/allowlist.csv"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		SessionTTL:      durationEnv("SESSION_TTL", 12*time.Hour),
		LockoutWindow:   durationEnv("LOCKOUT_WINDOW", 15*time.Minute),
		MaxCodeAttempts: intEnv("MAX_CODE_ATTEMPTS", 5),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
