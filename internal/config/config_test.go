package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/emr")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.TokenTTLHours != 24 {
		t.Errorf("expected default token TTL 24, got %d", cfg.TokenTTLHours)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected dev fallback JWT secret to be set")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/emr")
	os.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %d: %v", len(cfg.CORSOrigins), cfg.CORSOrigins)
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLHours: 24, DBMaxConns: 20, DBMinConns: 5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsDevSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: "dev-secret-do-not-use-in-production", TokenTTLHours: 24, DBMaxConns: 20}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for dev secret in production")
	}
}

func TestValidate_ConnBounds(t *testing.T) {
	cfg := &Config{Env: "development", JWTSecret: "x", TokenTTLHours: 24, DBMaxConns: 5, DBMinConns: 10}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when min conns exceed max conns")
	}
}
