package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const devSecret = "bookworm-dev-secret"

type Config struct {
	Env            string
	Port           string
	DBDriver       string
	DBDSN          string
	SecretKey      string
	TokenTTL       time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
	CORSOrigin     string
	LogFile        string
	SeedBooks      bool
	TraceEndpoint  string
}

func Load() Config {
	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("PORT", "8000"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DBDSN:          getenv("DB_DSN", "bookworm.db"), // sqlite file in project root
		SecretKey:      os.Getenv("SECRET_KEY"),
		TokenTTL:       parseDuration(os.Getenv("TOKEN_TTL"), 24*time.Hour),
		BcryptCost:     parseInt(os.Getenv("BCRYPT_COST"), 12),
		RequestTimeout: parseDuration(os.Getenv("REQUEST_TIMEOUT"), 5*time.Second),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:3000"),
		LogFile:        os.Getenv("LOG_FILE"),
		SeedBooks:      parseBool(os.Getenv("SEED_BOOKS"), true),
		TraceEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if cfg.SecretKey == "" && cfg.Env == "dev" {
		log.Printf("[warn] SECRET_KEY not set, using the development secret")
		cfg.SecretKey = devSecret
	}

	log.Printf("[config] APP_ENV=%s PORT=%s DB_DRIVER=%s DB_DSN=%s TOKEN_TTL=%s REQUEST_TIMEOUT=%s LOG_FILE=%s",
		cfg.Env, cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.TokenTTL, cfg.RequestTimeout, cfg.LogFile)
	return cfg
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, errors.New("BCRYPT_COST out of range"))
	}
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, errors.New("DB_DRIVER must be sqlite or pgx"))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, errors.New("TOKEN_TTL must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func parseBool(v string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
