// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of a gpuboot application:
// the window, adapter and swapchain settings and the log level.
// Values come from `default:` struct tags, then the values given by
// the application, then an optional TOML or YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/base/fsx"
	"cogentcore.org/gpuboot/base/logx"
	"cogentcore.org/gpuboot/base/reflectx"
	"cogentcore.org/gpuboot/gpu"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvFile is the environment variable naming an optional TOML or
// YAML config file that overrides the application values.
const EnvFile = "GPUBOOT_CONFIG"

// Config is the configuration of an application.
type Config struct {

	// Title is the window title.
	Title string `toml:"title" yaml:"title" default:"gpuboot"`

	// Width is the window and swapchain width in pixels.
	Width int `toml:"width" yaml:"width" default:"800"`

	// Height is the window and swapchain height in pixels.
	Height int `toml:"height" yaml:"height" default:"600"`

	// PowerPreference is the adapter power preference:
	// undefined, low-power or high-performance.
	PowerPreference string `toml:"power_preference" yaml:"power_preference" default:"undefined"`

	// ForceFallbackAdapter requests a software adapter.
	ForceFallbackAdapter bool `toml:"force_fallback_adapter" yaml:"force_fallback_adapter"`

	// PresentMode is the swapchain present mode: mailbox, fifo or immediate.
	PresentMode string `toml:"present_mode" yaml:"present_mode" default:"mailbox"`

	// LogLevel is the log level: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level" default:"info"`

	// ShaderDir is an optional directory from which shaders are
	// loaded instead of the embedded ones, and watched for changes.
	ShaderDir string `toml:"shader_dir" yaml:"shader_dir"`
}

// Default returns a new config with the default values.
func Default() *Config {
	c := &Config{}
	errors.Log(reflectx.SetFromDefaultTags(c))
	return c
}

// New returns a new config for an application with the given window
// title and size, overridden by the file named by [EnvFile] if it is set.
func New(title string, width, height int) (*Config, error) {
	c := Default()
	c.Title = title
	c.Width = width
	c.Height = height
	if file := os.Getenv(EnvFile); file != "" {
		if err := c.Open(file); err != nil {
			return c, err
		}
	}
	return c, c.Validate()
}

// Open reads the given config file over the current values. Files
// ending in .yaml or .yml are read as YAML, all others as TOML.
// A leading ~ in the file name is expanded to the home directory.
func (c *Config) Open(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(b, c)
	} else {
		err = toml.Unmarshal(b, c)
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if c.ShaderDir != "" {
		c.ShaderDir, err = homedir.Expand(c.ShaderDir)
	}
	return err
}

// Save writes the config to the given file, as YAML or TOML
// depending on its extension like [Config.Open].
func (c *Config) Save(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	var b []byte
	if isYAML(path) {
		b, err = yaml.Marshal(c)
	} else {
		b, err = toml.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{CaseSensitive: true, DeepCopy: true}))
	return nc
}

// Validate returns an error joining every invalid value.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height))
	}
	if _, err := ParsePowerPreference(c.PowerPreference); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParsePresentMode(c.PresentMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.ShaderDir != "" {
		ok, err := fsx.DirExists(c.ShaderDir)
		if err == nil && !ok {
			err = fmt.Errorf("config: shader directory %q does not exist", c.ShaderDir)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options returns the context options for this config.
// The config must be valid.
func (c *Config) Options(logger *slog.Logger) gpu.Options {
	pp, _ := ParsePowerPreference(c.PowerPreference)
	pm, _ := ParsePresentMode(c.PresentMode)
	return gpu.Options{
		Title:                c.Title,
		Width:                c.Width,
		Height:               c.Height,
		PowerPreference:      pp,
		ForceFallbackAdapter: c.ForceFallbackAdapter,
		PresentMode:          pm,
		Logger:               logger,
	}
}

// Level returns the log level, info if it is invalid.
func (c *Config) Level() slog.Level {
	lv, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lv
}

// ParsePowerPreference parses a power preference name.
func ParsePowerPreference(s string) (gpu.PowerPreference, error) {
	switch strings.ToLower(s) {
	case "", "undefined":
		return gpu.PowerPreferenceUndefined, nil
	case "low-power", "lowpower":
		return gpu.PowerPreferenceLowPower, nil
	case "high-performance", "highperformance":
		return gpu.PowerPreferenceHighPerformance, nil
	}
	return 0, fmt.Errorf("config: invalid power preference %q", s)
}

// ParsePresentMode parses a present mode name.
func ParsePresentMode(s string) (gpu.PresentMode, error) {
	switch strings.ToLower(s) {
	case "", "mailbox":
		return gpu.PresentModeMailbox, nil
	case "fifo":
		return gpu.PresentModeFifo, nil
	case "immediate":
		return gpu.PresentModeImmediate, nil
	}
	return 0, fmt.Errorf("config: invalid present mode %q", s)
}
