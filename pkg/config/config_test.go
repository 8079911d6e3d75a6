package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
catalog:
  source: http
  kalshi:
    base_url: https://example.test/trade-api/v2
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Semantic.TopK != 100 {
		t.Fatalf("expected default topK, got %d", cfg.Semantic.TopK)
	}
	if cfg.Catalog.RefreshInterval != 10*time.Minute {
		t.Fatalf("expected default refresh interval, got %v", cfg.Catalog.RefreshInterval)
	}
	if cfg.Ranking.FallbackSize != 150 {
		t.Fatalf("expected default fallback size, got %d", cfg.Ranking.FallbackSize)
	}
}

func TestLoadRejectsBadCatalogSource(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
catalog:
  source: carrier-pigeon
`))
	if err == nil {
		t.Fatal("expected error for unknown catalog source")
	}
}

func TestLoadRejectsFileSourceWithoutFiles(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
catalog:
  source: file
`))
	if err == nil {
		t.Fatal("expected error for file source without files")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SEMANTIC_URL", "http://semantic.test")
	t.Setenv("REDIS_ADDR", "redis.test:6379")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Semantic.URL != "http://semantic.test" {
		t.Fatalf("semantic url not overridden: %s", cfg.Semantic.URL)
	}
	if !cfg.Preferences.Redis.Enabled || cfg.Preferences.Redis.Addr != "redis.test:6379" {
		t.Fatalf("redis not enabled by env override")
	}
}
