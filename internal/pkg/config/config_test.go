package config

import (
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store, got %s", cfg.StoreDriver)
	}
	if cfg.JWT.TTL != time.Hour || cfg.JWT.BcryptCost != 10 || cfg.JWT.Issuer != "jwt-auth-api" {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if !cfg.Throttle.Enabled || cfg.Throttle.MaxAttempts != 5 || cfg.Throttle.Lockout != 15*time.Minute {
		t.Fatalf("unexpected throttle defaults: %+v", cfg.Throttle)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":             "secret",
		"JWT_TTL":                "30m",
		"STORE_DRIVER":           "memory",
		"LOGIN_THROTTLE_ENABLED": "false",
		"ENV":                    "production",
		"ADMIN_EMAIL":            "root@x.com",
		"ADMIN_PASSWORD":         "pw",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.TTL != 30*time.Minute || cfg.StoreDriver != StoreMemory || cfg.Throttle.Enabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
	if cfg.Admin.Email != "root@x.com" {
		t.Fatalf("admin email not read")
	}
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	if _, err := LoadFrom(envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadFrom_InvalidStore(t *testing.T) {
	_, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "secret",
		"STORE_DRIVER": "postgres",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}

func TestLoadFrom_PartialAdmin(t *testing.T) {
	_, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "secret",
		"ADMIN_EMAIL": "root@x.com",
	}))
	if err == nil {
		t.Fatalf("expected error for admin email without password")
	}
}

func TestLoadFrom_MemoryStoreDisablesThrottle(t *testing.T) {
	cfg, err := LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "secret",
		"STORE_DRIVER": "memory",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Throttle.Enabled {
		t.Fatalf("expected throttle off for the memory store")
	}

	cfg, err = LoadFrom(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":             "secret",
		"STORE_DRIVER":           "memory",
		"LOGIN_THROTTLE_ENABLED": "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Throttle.Enabled {
		t.Fatalf("explicit LOGIN_THROTTLE_ENABLED=true ignored")
	}
}
