// Package config loads the storefront settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const minJWTSecretLen = 32

// Config is read once at startup and treated as immutable.
type Config struct {
	// Server
	Port string

	// Storage
	StorageDriver string
	StorageDir    string
	DatabaseURL   string

	// Catalog
	CatalogPath string

	// Session
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Rate limit
	LoginRatePerMin    int
	RegisterRatePerMin int
	TrustForwardedFor  bool

	// Orders
	CheckoutDelay      time.Duration
	ResetOrdersOnStart bool

	// Observability
	MetricsToken string
	LogLevel     string
}

// Load reads Config from the environment. Missing or invalid required
// settings are reported together.
func Load() (*Config, error) {
	cfg := &Config{}

	var problems []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	switch {
	case cfg.JWTSecret == "":
		problems = append(problems, "JWT_SECRET is not set")
	case len(cfg.JWTSecret) < minJWTSecretLen:
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minJWTSecretLen))
	}

	cfg.StorageDriver = strings.ToLower(getEnvString("STORAGE_DRIVER", "file"))
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	switch cfg.StorageDriver {
	case "memory", "file":
	case "postgres":
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER %q is not one of memory, file, postgres", cfg.StorageDriver))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	cfg.Port = getEnvString("PORT", "8080")
	cfg.StorageDir = getEnvString("STORAGE_DIR", "./data")
	cfg.CatalogPath = getEnvString("CATALOG_PATH", "")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 0)
	cfg.LoginRatePerMin = getEnvInt("LOGIN_RATE_PER_MIN", 5)
	cfg.RegisterRatePerMin = getEnvInt("REGISTER_RATE_PER_MIN", 3)
	cfg.TrustForwardedFor = getEnvBool("TRUST_FORWARDED_FOR", false)
	cfg.CheckoutDelay = getEnvDuration("CHECKOUT_DELAY", 0)
	cfg.ResetOrdersOnStart = getEnvBool("RESET_ORDERS_ON_START", true)
	cfg.MetricsToken = getEnvString("METRICS_TOKEN", "")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
