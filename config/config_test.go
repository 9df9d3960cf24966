package config

import (
	"path/filepath"
	"testing"

	"roombook/models"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "8080" || cfg.StoreDriver != "mongo" || cfg.ResetSchedule != "0 0 * * *" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StoreTimeout.Seconds() != 5 {
		t.Fatalf("StoreTimeout = %v, want 5s", cfg.StoreTimeout)
	}
	w, err := cfg.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if w != models.DefaultWindow() {
		t.Fatalf("Window = %+v, want %+v", w, models.DefaultWindow())
	}
	if len(cfg.Buildings) != 2 || cfg.Buildings[0].Name != "Videosecurity" || len(cfg.Buildings[1].Rooms) != 5 {
		t.Fatalf("unexpected buildings: %+v", cfg.Buildings)
	}
}

func TestLoadPortFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg, err := Load(fs, []string{"--port", "9191", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "9191" {
		t.Fatalf("AppPort = %q, want 9191", cfg.AppPort)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("DAY_START", "20:00")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if _, err := Load(fs, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for DAY_START after DAY_END")
	}
}
