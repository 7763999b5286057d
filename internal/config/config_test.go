package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allKeys = []string{
	"ADDR", "WEB_DIR", "STORE", "DATABASE_URL", "SESSION_STORE", "SESSION_TTL",
	"TRUST_FORWARD_AUTH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.WebDir != "web" {
		t.Errorf("unexpected addr/webdir: %q %q", cfg.Addr, cfg.WebDir)
	}
	if cfg.Store != StorePostgres || cfg.SessionStore != SessionStoreDB {
		t.Errorf("unexpected stores: %q %q", cfg.Store, cfg.SessionStore)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.TrustForwardAuth {
		t.Error("forward auth must be off by default")
	}
	if cfg.OIDC.Enabled() {
		t.Error("OIDC must be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "Memory")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("TRUST_FORWARD_AUTH", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreMemory || cfg.SessionStore != SessionStoreRedis {
		t.Errorf("unexpected stores: %q %q", cfg.Store, cfg.SessionStore)
	}
	if cfg.SessionTTL != 90*time.Minute || !cfg.TrustForwardAuth || cfg.Redis.DB != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_BadValues(t *testing.T) {
	for _, kv := range [][2]string{
		{"SESSION_TTL", "tomorrow"},
		{"REDIS_DB", "one"},
		{"TRUST_FORWARD_AUTH", "maybe"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil || !strings.Contains(err.Error(), kv[0]) {
				t.Errorf("expected error naming %s, got %v", kv[0], err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"postgres without url", func(c *Config) {}, "DATABASE_URL"},
		{"postgres with url", func(c *Config) { c.DatabaseURL = "postgres://x" }, ""},
		{"memory", func(c *Config) { c.Store = StoreMemory }, ""},
		{"unknown store", func(c *Config) { c.Store = "sqlite"; c.DatabaseURL = "x" }, "unknown STORE"},
		{"unknown session store", func(c *Config) { c.Store = StoreMemory; c.SessionStore = "file" }, "unknown SESSION_STORE"},
		{"oidc without redirect", func(c *Config) {
			c.Store = StoreMemory
			c.OIDC = OIDCConfig{Issuer: "https://id", ClientID: "app"}
		}, "OIDC_REDIRECT_URL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Store: StorePostgres, SessionStore: SessionStoreDB, SessionTTL: time.Hour}
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("ADDR")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ADDR=:9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ADDR") })

	cfg, _ := Load()
	if cfg.Addr != ":9999" {
		t.Errorf("expected :9999 from .env, got %q", cfg.Addr)
	}
}
