package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "campuslink" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Theme != "auto" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.LoginDelay() != time.Second {
		t.Errorf("login delay = %v", cfg.LoginDelay())
	}
	if cfg.ReplyDelay() != 1500*time.Millisecond {
		t.Errorf("reply delay = %v", cfg.ReplyDelay())
	}
	if cfg.Logging.Enabled {
		t.Error("logging enabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != DefaultConfig().Version {
		t.Errorf("version = %q", cfg.Version)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "dark"
	cfg.Seed.Path = "/tmp/seed.yaml"
	cfg.Seed.Watch = true
	cfg.Timers.ReplyDelay = "2s"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "dark" {
		t.Errorf("theme = %q", loaded.Theme)
	}
	if loaded.Seed.Path != "/tmp/seed.yaml" || !loaded.Seed.Watch {
		t.Errorf("seed config = %+v", loaded.Seed)
	}
	if loaded.ReplyDelay() != 2*time.Second {
		t.Errorf("reply delay = %v", loaded.ReplyDelay())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed file succeeded")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CAMPUSLINK_SEED", "/custom/seed.yaml")
	t.Setenv("CAMPUSLINK_THEME", "light")
	t.Setenv("CAMPUSLINK_DEBUG", "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed.Path != "/custom/seed.yaml" {
		t.Errorf("seed path = %q", cfg.Seed.Path)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "debug" {
		t.Errorf("debug override not applied: %+v", cfg.Logging)
	}
}

func TestTimerFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timers.LoginDelay = "not-a-duration"
	cfg.Timers.ReplyDelay = "-5s"

	if cfg.LoginDelay() != time.Second {
		t.Errorf("bad login delay did not fall back: %v", cfg.LoginDelay())
	}
	if cfg.ReplyDelay() != 1500*time.Millisecond {
		t.Errorf("negative reply delay did not fall back: %v", cfg.ReplyDelay())
	}
}
