package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("carregar configuração: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, esperava 8080", cfg.Port)
	}
	if cfg.Database != "sqlite3" {
		t.Errorf("Database = %q, esperava sqlite3", cfg.Database)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, esperava 10s", cfg.HTTPTimeout)
	}
	if cfg.PixupAPIURL != "https://api.pixupbr.com/v2" {
		t.Errorf("PixupAPIURL = %q", cfg.PixupAPIURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_URL", "https://vendas.example.com")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("carregar configuração: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, esperava 9000", cfg.Port)
	}
	if cfg.BaseURL != "https://vendas.example.com" {
		t.Errorf("BaseURL = %q, override ignorado", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, esperava 3s", cfg.HTTPTimeout)
	}
}
