package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/validate"
)

// appConfig holds settings shared by every command.
type appConfig struct {
	TickInterval time.Duration `mapstructure:"tick-interval"`
	Skin         string        `mapstructure:"skin"`
	ContentFile  string        `mapstructure:"content-file"`
	Layout       []string      `mapstructure:"layout"`
	ClockStyle   string        `mapstructure:"clock-style"`
	Font         string        `mapstructure:"font"`
	FontSize     float64       `mapstructure:"font-size"`
	RenderWidth  int           `mapstructure:"render-width"`
	RenderHeight int           `mapstructure:"render-height"`
	Gap          int           `mapstructure:"gap"`
	LogFile      string        `mapstructure:"log-file"`
}

// configDir is where the config file and user skins live.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pokerclock"), nil
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "pokerclock", "pokerclock.log")
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix("POKERCLOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("tick-interval", model.DefaultTickInterval)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("content-file", "")
	v.SetDefault("layout", []string{})
	v.SetDefault("clock-style", model.DefaultClockStyle)
	v.SetDefault("font", "")
	v.SetDefault("font-size", model.DefaultFontSize)
	v.SetDefault("render-width", model.DefaultRenderWidth)
	v.SetDefault("render-height", model.DefaultRenderHeight)
	v.SetDefault("gap", 1)
	v.SetDefault("log-file", defaultLogFile())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		dir, err := configDir()
		if err != nil {
			return cfg, err
		}
		v.SetConfigFile(filepath.Join(dir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c appConfig) check() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick-interval must be positive, got %s", c.TickInterval))
	}
	for _, v := range []struct {
		name  string
		value any
		tag   string
	}{
		{"clock-style", c.ClockStyle, "omitempty,oneof=24h 12h"},
		{"font-size", c.FontSize, "gt=0"},
		{"render-width", c.RenderWidth, "gt=0"},
		{"render-height", c.RenderHeight, "gt=0"},
		{"gap", c.Gap, "gte=0"},
	} {
		if err := validate.Var(v.name, v.value, v.tag); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c appConfig) layout() model.Layout {
	return model.Layout{Areas: c.Layout}
}
