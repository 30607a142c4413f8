// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the server reads from the environment.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DatabaseURL is the Postgres connection string. Empty means run on
	// the in-memory store (single instance, volatile).
	DatabaseURL string
	// RedisAddr enables the Redis push notifier when set.
	RedisAddr string
	RedisDB   int
	// PollInterval is the fallback poll cadence for stage observers.
	PollInterval time.Duration
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset.
func Load() Config {
	return Config{
		Addr:         ":" + getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		PollInterval: getEnvDuration("POLL_INTERVAL", 3*time.Second),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return v
}
