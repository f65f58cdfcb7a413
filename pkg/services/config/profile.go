// Package config loads report profiles: the stable parameters (property,
// key file, selections) a user keeps between runs.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Profile holds defaults for report runs. CLI flags override any of it.
type Profile struct {
	PropertyID string   `mapstructure:"property_id"`
	KeyFile    string   `mapstructure:"key_file"`
	Metrics    []string `mapstructure:"metrics"`
	Channel    string   `mapstructure:"channel"`
	Channels   []string `mapstructure:"channels"`
	OutputDir  string   `mapstructure:"output_dir"`
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}
