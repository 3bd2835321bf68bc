// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// structs for the vsyncd tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the default location of the config file.
const DefaultFile = "~/.config/vsyncd/config.toml"

// Drivers are the names of the available hosts.
var Drivers = []string{"offscreen", "desktop", "file"}

// Config is the main config struct
// that contains all of the configuration
// options for the vsyncd tool.
type Config struct {

	// the host to take displays and frame timing from:
	// offscreen, desktop, or file
	Driver string `toml:"driver"`

	// the refresh rate to use, in frames per second; if it is 0,
	// the rate is measured from the primary display and kept current
	FPS float32 `toml:"fps"`

	// the display file used by the file driver
	DisplayFile string `toml:"display_file"`

	// the address the vsync bridge listens on
	Listen string `toml:"listen"`

	// the log level: debug, info, warn, or error
	LogLevel string `toml:"log_level"`

	// the configuration options for the offscreen driver
	Offscreen Offscreen `toml:"offscreen"`
}

// Offscreen contains the configuration options for the offscreen driver.
type Offscreen struct {

	// the simulated screens; the first one is primary
	Screens []Screen `toml:"screens"`
}

// Screen is one simulated screen.
type Screen struct {

	// the name of the screen
	Name string `toml:"name"`

	// the refresh rate of the screen, in frames per second
	RefreshRate float32 `toml:"refresh_rate"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Driver:    "offscreen",
		Listen:    "localhost:7117",
		LogLevel:  "info",
		Offscreen: Offscreen{Screens: defaultScreens()},
	}
}

func defaultScreens() []Screen {
	return []Screen{{Name: "main", RefreshRate: 60}}
}

// Open returns the configuration in the given TOML file, on top of
// [Default]. A leading ~ in path is expanded. If path is empty,
// [DefaultFile] is used, and it is not an error for it not to exist.
func Open(path string) (*Config, error) {
	cfg := Default()
	optional := path == ""
	if optional {
		path = DefaultFile
	}
	full, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(full)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	// screens listed in the file replace the default screens
	cfg.Offscreen.Screens = nil
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", full, err)
	}
	if len(cfg.Offscreen.Screens) == 0 {
		cfg.Offscreen.Screens = defaultScreens()
	}
	return cfg, cfg.Validate()
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	switch c.Driver {
	case "offscreen":
		if len(c.Offscreen.Screens) == 0 {
			return errors.New("config: offscreen driver needs at least one screen")
		}
	case "desktop":
	case "file":
		if c.DisplayFile == "" {
			return errors.New("config: file driver needs display_file")
		}
	default:
		return fmt.Errorf("config: unknown driver %q, must be one of %v", c.Driver, Drivers)
	}
	if c.FPS < 0 {
		return fmt.Errorf("config: fps must not be negative, got %v", c.FPS)
	}
	return nil
}

// Save writes the configuration to the given TOML file.
func (c *Config) Save(path string) error {
	full, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(full, b, 0o644)
}
