package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/fencecalc/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultFenceHeight = "6"
	cfg.DefaultFenceType = model.FenceCommercial
	cfg.DefaultCorners = 2
	cfg.Pricing.TieWire = 0.15
	cfg.CurrencySymbol = "€"
	cfg.RecentJobs = []string{"a1b2c3d4", "e5f6a7b8"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultFenceHeight != "6" {
		t.Errorf("expected DefaultFenceHeight=6, got %q", loaded.DefaultFenceHeight)
	}
	if loaded.DefaultFenceType != model.FenceCommercial {
		t.Errorf("expected commercial, got %s", loaded.DefaultFenceType)
	}
	if loaded.DefaultCorners != 2 {
		t.Errorf("expected DefaultCorners=2, got %d", loaded.DefaultCorners)
	}
	if loaded.Pricing.TieWire != 0.15 {
		t.Errorf("expected TieWire=0.15, got %f", loaded.Pricing.TieWire)
	}
	if loaded.Pricing.LinePost != cfg.Pricing.LinePost {
		t.Errorf("expected LinePost=%f, got %f", cfg.Pricing.LinePost, loaded.Pricing.LinePost)
	}
	if loaded.CurrencySymbol != "€" {
		t.Errorf("expected currency €, got %s", loaded.CurrencySymbol)
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Pricing != defaults.Pricing {
		t.Errorf("expected default pricing, got %+v", cfg.Pricing)
	}
	if cfg.DefaultFenceType != model.FenceResidential {
		t.Errorf("expected residential, got %s", cfg.DefaultFenceType)
	}
	if cfg.DefaultEnds != 2 {
		t.Errorf("expected 2 ends, got %d", cfg.DefaultEnds)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"pricing":{"tie_wire":0.5},"default_fence_height":"5"}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	defaults := model.DefaultPricing()
	if cfg.Pricing.TieWire != 0.5 {
		t.Errorf("expected TieWire=0.5, got %f", cfg.Pricing.TieWire)
	}
	if cfg.Pricing.TensionBand != defaults.TensionBand {
		t.Errorf("expected default TensionBand=%f, got %f", defaults.TensionBand, cfg.Pricing.TensionBand)
	}
	if cfg.DefaultFenceHeight != "5" {
		t.Errorf("expected height 5, got %q", cfg.DefaultFenceHeight)
	}
	if cfg.DefaultEnds != 2 {
		t.Errorf("expected default ends, got %d", cfg.DefaultEnds)
	}
}

func TestLoadAppConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FENCECALC_PRICING_TIE_WIRE", "0.12")
	t.Setenv("FENCECALC_STRICT_VALIDATION", "true")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Pricing.TieWire != 0.12 {
		t.Errorf("expected env TieWire=0.12, got %f", cfg.Pricing.TieWire)
	}
	if !cfg.StrictValidation {
		t.Error("expected env to enable strict validation")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentJobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"default_fence_height":"4","recent_jobs":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil after loading")
	}
}
