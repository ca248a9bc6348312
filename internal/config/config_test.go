package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.BaseURL != "https://www.olx.in/items/q-car-cover" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.OutputCSV != "olx_car_covers.csv" {
		t.Errorf("unexpected output path: %q", cfg.OutputCSV)
	}
	if cfg.MaxPages != 5 {
		t.Errorf("max pages = %d, want 5", cfg.MaxPages)
	}
	if cfg.PageDelay() != 1800*time.Millisecond {
		t.Errorf("page delay = %v, want 1.8s", cfg.PageDelay())
	}
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("timeout = %v, want 20s", cfg.Timeout())
	}
	if cfg.SeenTTL() != 48*time.Hour {
		t.Errorf("seen ttl = %v, want 48h", cfg.SeenTTL())
	}
	if cfg.MetricsAddr != "" || cfg.PostgresURL != "" || cfg.RedisAddr != "" {
		t.Error("optional components should default to disabled")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MAX_PAGES", "3")
	t.Setenv("OUTPUT_CSV", "custom.csv")
	t.Setenv("PAGE_DELAY_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxPages != 3 {
		t.Errorf("max pages = %d, want 3", cfg.MaxPages)
	}
	if cfg.OutputCSV != "custom.csv" {
		t.Errorf("output path = %q, want custom.csv", cfg.OutputCSV)
	}
	if cfg.PageDelay() != 250*time.Millisecond {
		t.Errorf("page delay = %v, want 250ms", cfg.PageDelay())
	}
}
