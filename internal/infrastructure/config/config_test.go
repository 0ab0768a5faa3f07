package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.StoreDriver != StoreMongo || cfg.Storage.Driver != StorageGridFS {
		t.Errorf("expected mongo+gridfs defaults, got %s+%s", cfg.StoreDriver, cfg.Storage.Driver)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Notify.SendTimeout != 15*time.Second {
		t.Errorf("expected 15s notify timeout, got %s", cfg.Notify.SendTimeout)
	}
	if cfg.Storage.MaxResumeBytes != 5<<20 {
		t.Errorf("expected 5MiB resume limit, got %d", cfg.Storage.MaxResumeBytes)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PUBLIC_BASE_URL": "https://jobs.example.com/",
		"STORE_DRIVER":    "postgres",
		"STORAGE_DRIVER":  "s3",
		"S3_BUCKET":       "jobboard-files",
		"EMAIL_USER":      "noreply@example.com",
		"SMTP_PORT":       "465",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PublicBaseURL != "https://jobs.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
	if cfg.SMTP.Port != 465 {
		t.Errorf("expected smtp port 465, got %d", cfg.SMTP.Port)
	}
	if cfg.SMTP.Sender() != "noreply@example.com" {
		t.Errorf("expected sender to fall back to EMAIL_USER, got %q", cfg.SMTP.Sender())
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":      {"STORE_DRIVER": "sqlite"},
		"unknown storage":    {"STORAGE_DRIVER": "disk"},
		"s3 without bucket":  {"STORAGE_DRIVER": "s3"},
		"gridfs on postgres": {"STORE_DRIVER": "postgres"},
		"bad duration":       {"TOKEN_TTL": "forever"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMigrateWith_IgnoresStorage(t *testing.T) {
	env := map[string]string{
		"STORE_DRIVER":   "postgres",
		"STORAGE_DRIVER": "gridfs",
		"DATABASE_URL":   "postgres://u:p@db:5432/jobs",
		"LOG_LEVEL":      "debug",
	}
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatal("full config should reject gridfs on postgres")
	}

	cfg, err := LoadMigrateWith(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.DSN != "postgres://u:p@db:5432/jobs" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected migrate config: %+v", cfg)
	}
}

func TestLoadMigrateWith_Defaults(t *testing.T) {
	cfg, err := LoadMigrateWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(cfg.Postgres.DSN, "postgres://") || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
