// Package config loads the demo's TOML tuning file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tabstack/internal/stack"
)

// Config is the demo configuration. Zero fields fall back to Default.
type Config struct {
	Policy      string   `toml:"policy"`
	Orientation string   `toml:"orientation"`
	Locale      string   `toml:"locale"`
	Tabs        int      `toml:"tabs"`
	LogFile     string   `toml:"log_file"`
	DebugAddr   string   `toml:"debug_addr"`
	Viewport    Viewport `toml:"viewport"`
}

// Viewport is the simulated switcher size in pixels.
type Viewport struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	ChromeHeight float64 `toml:"chrome_height"`
}

// DefaultConfigToml documents every key with its default.
const DefaultConfigToml = `# tabstack configuration

policy = "overlapping"      # or "nonoverlapping"
orientation = "portrait"    # or "landscape"
locale = "en"               # BCP 47; right-to-left scripts flip discard
tabs = 4
log_file = "tabstack.log"
# debug_addr = "127.0.0.1:9876"

[viewport]
width = 360.0
height = 640.0
chrome_height = 56.0
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Policy:      "overlapping",
		Orientation: "portrait",
		Locale:      "en",
		Tabs:        4,
		LogFile:     "tabstack.log",
		Viewport:    Viewport{Width: 360, Height: 640, ChromeHeight: 56},
	}
}

// Load reads path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals TOML over cfg and rejects unknown keys.
func Decode(raw []byte, cfg *Config) error {
	md, err := toml.Decode(string(raw), cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return nil
}

// Resolved is Config translated into engine types.
type Resolved struct {
	Policy      stack.PolicyKind
	Orientation stack.Orientation
	Direction   stack.LayoutDirection
	Viewport    stack.Viewport
	Tabs        int
}

// Resolve validates c and converts it.
func (c Config) Resolve() (Resolved, error) {
	policy, err := stack.ParsePolicyKind(c.Policy)
	if err != nil {
		return Resolved{}, err
	}
	orientation, err := stack.ParseOrientation(c.Orientation)
	if err != nil {
		return Resolved{}, err
	}
	direction, err := stack.DirectionForLocale(c.Locale)
	if err != nil {
		return Resolved{}, err
	}
	if c.Tabs < 0 {
		return Resolved{}, fmt.Errorf("tabs must be non-negative, got %d", c.Tabs)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return Resolved{}, fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.ChromeHeight < 0 || c.Viewport.ChromeHeight >= c.Viewport.Height {
		return Resolved{}, fmt.Errorf("chrome height %v outside [0,%v)", c.Viewport.ChromeHeight, c.Viewport.Height)
	}
	return Resolved{
		Policy:      policy,
		Orientation: orientation,
		Direction:   direction,
		Viewport: stack.Viewport{
			Width:        c.Viewport.Width,
			Height:       c.Viewport.Height,
			ChromeHeight: c.Viewport.ChromeHeight,
		},
		Tabs: c.Tabs,
	}, nil
}
