package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"dmvcalc/internal/taxcalc"
)

const devJWTSecret = "default_super_secret_key"

// Config is the runtime configuration of the API server.
type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret   string
	CORSOrigins []string
	LogLevel    string

	Rounding      taxcalc.Rounding
	DefaultLocale string
}

// Load reads the given env files (missing files are not an error) and then
// the process environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "8080"),
		GinMode:       get("GIN_MODE", "debug"),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "5432"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    get("DB_PASSWORD", "postgres"),
		DBName:        get("DB_NAME", "postgres"),
		DBSslMode:     get("DB_SSLMODE", "disable"),
		JWTSecret:     get("JWT_SECRET", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		DefaultLocale: get("DMV_DEFAULT_LOCALE", "sl"),
		CORSOrigins:   splitList(get("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, errors.New("JWT_SECRET environment variable is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret // development fallback only
	}

	places, err := strconv.ParseInt(get("DMV_CURRENCY_PRECISION", "2"), 10, 32)
	if err != nil || places < 0 || places > 8 {
		return nil, fmt.Errorf("DMV_CURRENCY_PRECISION must be an integer between 0 and 8")
	}
	mode, err := taxcalc.ParseRoundingMode(get("DMV_ROUNDING_MODE", string(taxcalc.RoundHalfUp)))
	if err != nil {
		return nil, fmt.Errorf("invalid DMV_ROUNDING_MODE: %w", err)
	}
	cfg.Rounding = taxcalc.Rounding{Places: int32(places), Mode: mode}

	return cfg, nil
}

// DSN returns the postgres connection URL.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSslMode
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
