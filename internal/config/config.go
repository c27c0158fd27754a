package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	DBDriver   string
	DBDSN      string
	DBLogLevel string

	// RedisAddr empty keeps the materials cache in-process and disables idempotency.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int
	HistoryLimit int
	UploadMaxMB  int

	MetricsEnabled bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:     getenv("APP_ENV", "dev"),
		AppPort:    getenv("APP_PORT", "8080"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:      getenv("DB_DSN", "bicocont.db"),
		DBLogLevel: strings.ToLower(getenv("DB_LOG_LEVEL", "warn")),

		RedisAddr: getenv("REDIS_ADDR", ""),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		HistoryLimit: getenvInt("HISTORY_LIMIT", 1000),
		UploadMaxMB:  getenvInt("UPLOAD_MAX_MB", 10),

		MetricsEnabled: getenvBool("METRICS_ENABLED", true),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := strconv.Atoi(c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or mysql)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("missing DB_DSN")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.UploadMaxMB <= 0 {
		return fmt.Errorf("UPLOAD_MAX_MB must be positive, got %d", c.UploadMaxMB)
	}
	return nil
}

func (c *Config) UseRedis() bool { return c.RedisAddr != "" }

func (c *Config) UploadMaxBytes() int64 { return int64(c.UploadMaxMB) << 20 }
