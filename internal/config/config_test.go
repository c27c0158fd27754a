package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "DB_DRIVER", "DB_DSN", "REDIS_ADDR", "HISTORY_LIMIT", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" || c.DBDriver != "sqlite" || c.DBDSN != "bicocont.db" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.HistoryLimit != 1000 || !c.MetricsEnabled || c.UseRedis() {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_DSN", "u:p@tcp(db:3306)/bicocont")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HISTORY_LIMIT", "500")
	t.Setenv("UPLOAD_MAX_MB", "2")
	t.Setenv("METRICS_ENABLED", "false")

	c := Load()
	if c.AppPort != "9090" || c.DBDriver != "mysql" {
		t.Fatalf("unexpected: %+v", c)
	}
	if !c.UseRedis() || c.RedisDB != 3 {
		t.Fatalf("redis not picked up: %+v", c)
	}
	if c.HistoryLimit != 500 || c.MetricsEnabled {
		t.Fatalf("unexpected: %+v", c)
	}
	if got := c.UploadMaxBytes(); got != 2<<20 {
		t.Fatalf("UploadMaxBytes = %d", got)
	}
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	t.Setenv("HISTORY_LIMIT", "lots")
	c := Load()
	if c.RedisDB != 0 || c.HistoryLimit != 1000 {
		t.Fatalf("unexpected: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{AppPort: "8080", DBDriver: "sqlite", DBDSN: "x.db", HistoryLimit: 10, UploadMaxMB: 1}
	}
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"ok", func(c *Config) {}, ""},
		{"no port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"bad port", func(c *Config) { c.AppPort = "http" }, "invalid APP_PORT"},
		{"bad driver", func(c *Config) { c.DBDriver = "postgres" }, "DB_DRIVER"},
		{"no dsn", func(c *Config) { c.DBDSN = "" }, "DB_DSN"},
		{"zero limit", func(c *Config) { c.HistoryLimit = 0 }, "HISTORY_LIMIT"},
		{"zero upload", func(c *Config) { c.UploadMaxMB = 0 }, "UPLOAD_MAX_MB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}
