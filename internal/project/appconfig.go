package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides of config keys, e.g.
// FENCECALC_PRICING_TIE_WIRE overrides pricing.tie_wire.
const EnvPrefix = "FENCECALC"

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.fencecalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fencecalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
//
// Priority (highest to lowest):
//  1. Environment variables with the FENCECALC_ prefix
//  2. The JSON file at path
//  3. DefaultAppConfig
//
// A missing file is not an error. Keys absent from the file keep their
// default values, so an old config picks up prices added later.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return model.AppConfig{}, err
	}

	v := newConfigViper()
	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return model.AppConfig{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	// Ensure RecentJobs is never nil
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

// newConfigViper returns a viper instance seeded with every default key so
// environment overrides apply even when the file does not mention the key.
func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")

	d := model.DefaultAppConfig()
	v.SetDefault("default_fence_height", d.DefaultFenceHeight)
	v.SetDefault("default_fence_type", string(d.DefaultFenceType))
	v.SetDefault("default_ends", d.DefaultEnds)
	v.SetDefault("default_corners", d.DefaultCorners)
	v.SetDefault("currency_symbol", d.CurrencySymbol)
	v.SetDefault("strict_validation", d.StrictValidation)
	v.SetDefault("recent_jobs", d.RecentJobs)

	p := d.Pricing
	v.SetDefault("pricing.fabric_per_foot", p.FabricPerFoot)
	v.SetDefault("pricing.line_post", p.LinePost)
	v.SetDefault("pricing.end_post", p.EndPost)
	v.SetDefault("pricing.corner_post", p.CornerPost)
	v.SetDefault("pricing.top_rail", p.TopRail)
	v.SetDefault("pricing.tie_wire", p.TieWire)
	v.SetDefault("pricing.loop_cap", p.LoopCap)
	v.SetDefault("pricing.post_cap", p.PostCap)
	v.SetDefault("pricing.brace_band", p.BraceBand)
	v.SetDefault("pricing.tension_bar", p.TensionBar)
	v.SetDefault("pricing.tension_band", p.TensionBand)
	v.SetDefault("pricing.nut_and_bolt", p.NutAndBolt)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
