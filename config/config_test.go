package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("Expected port 4000, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected cache TTL 10m, got %v", cfg.CacheTTL)
	}
	if cfg.IsProduction() {
		t.Errorf("Expected development environment by default")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", " Production ")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "8081" {
		t.Errorf("Expected port 8081, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Expected production environment, got %q", cfg.Environment)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("Expected shutdown timeout 2s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_RejectsInvalidDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Errorf("Expected an error for an invalid duration")
	}
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")
	if _, err := Load(); err == nil {
		t.Errorf("Expected an error for a zero burst")
	}
}

func TestLoadDotenv_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := loadDotenv(filepath.Join(dir, ".env"), filepath.Join(dir, "parent.env")); err != nil {
		t.Errorf("Expected missing files to be skipped, got %v", err)
	}
}

func TestLoadDotenv_ReadsFirstExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("RENTVSBUY_DOTENV_CHECK=loaded\n"), 0o600); err != nil {
		t.Fatalf("Error writing .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("RENTVSBUY_DOTENV_CHECK") })

	if err := loadDotenv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := os.Getenv("RENTVSBUY_DOTENV_CHECK"); got != "loaded" {
		t.Errorf("Expected loaded, got %q", got)
	}
}

func TestLoadDotenv_ReturnsMalformedFileError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PORT=\"8080\n"), 0o600); err != nil {
		t.Fatalf("Error writing .env: %v", err)
	}

	if err := loadDotenv(path, filepath.Join(dir, "parent.env")); err == nil {
		t.Errorf("Expected an error for a malformed .env file")
	}
}
