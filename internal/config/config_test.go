package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Verifies that defaults are applied and a development secret is filled in.
func TestInitConfig_SetsDefaults(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("ECODRIP_SERVER_MODE", "debug")
	t.Setenv("ECODRIP_JWT_SECRET", "")

	InitConfig(dir)

	cfg := Get()
	if cfg.Server.Port == "" {
		t.Fatalf("expected default server.port to be set")
	}
	if cfg.JWT.Secret == "" {
		t.Fatalf("expected JWT secret to be set in non-release mode")
	}
	if cfg.Upload.MaxSize != 10 {
		t.Fatalf("expected upload.max_size 10, got %d", cfg.Upload.MaxSize)
	}
	if cfg.Upload.Path != "uploads/maps" {
		t.Fatalf("unexpected upload.path %q", cfg.Upload.Path)
	}
	if GetConfigDir() != dir {
		t.Fatalf("expected config dir %q, got %q", dir, GetConfigDir())
	}
}

// Verifies that ECODRIP_ environment variables override file and defaults.
func TestInitConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: \"9000\"\nupload:\n  max_size: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ECODRIP_SERVER_MODE", "debug")
	t.Setenv("ECODRIP_SERVER_PORT", "9100")
	t.Setenv("ECODRIP_JWT_SECRET", "from_env")

	InitConfig(dir)

	cfg := Get()
	if cfg.Server.Port != "9100" {
		t.Fatalf("expected env port 9100, got %q", cfg.Server.Port)
	}
	if cfg.Upload.MaxSize != 3 {
		t.Fatalf("expected file max_size 3, got %d", cfg.Upload.MaxSize)
	}
	if cfg.JWT.Secret != "from_env" {
		t.Fatalf("expected env secret, got %q", cfg.JWT.Secret)
	}
}

// Verifies that Set swaps the snapshot returned by Get.
func TestSet_ReplacesSnapshot(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	next := prev
	next.Upload.MaxSize = 42
	Set(next)

	if Get().Upload.MaxSize != 42 {
		t.Fatalf("expected max_size 42, got %d", Get().Upload.MaxSize)
	}
}
