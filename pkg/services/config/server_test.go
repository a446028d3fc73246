package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServerConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `host: "0.0.0.0"
port: "9090"
db_path: "fleet.db"
admin_token: "topsecret"
shutdown_timeout: "30s"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadServerConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected Host=0.0.0.0, got %s", cfg.Host)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected Port=9090, got %s", cfg.Port)
	}
	if cfg.DBPath != "fleet.db" {
		t.Errorf("expected DBPath=fleet.db, got %s", cfg.DBPath)
	}
	if cfg.AdminToken != "topsecret" {
		t.Errorf("expected AdminToken=topsecret, got %s", cfg.AdminToken)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected ShutdownTimeout=30s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadServerConfig_EmptyFile_AppliesDefaults(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	err := os.WriteFile(path, []byte("host: \"127.0.0.1\""), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadServerConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default Port=8080, got %s", cfg.Port)
	}
	if cfg.DBPath != "costengine.db" {
		t.Errorf("expected default DBPath=costengine.db, got %s", cfg.DBPath)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected default ShutdownTimeout=15s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadServerConfig_InvalidYAML_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("host: example:443: bad"), 0o644)
	if err != nil {
		t.Fatalf("failed to write bad config: %v", err)
	}

	// When
	_, err = LoadServerConfig(path)

	// Then
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
