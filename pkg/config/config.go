// Package config loads and validates trustpane configuration.
//
// Configuration is read from TOML (preferred) or YAML, chosen by file
// extension, and overlaid on [Default]. Unknown keys are rejected so typos
// surface as INVALID_CONFIG errors instead of silently falling back to
// defaults.
//
//	[display]
//	width = 336
//	height = 536
//	small_line_height = 12
//	regular_line_height = 14
//
//	[status]
//	height = 32
//	trust = 255
//
//	[registry]
//	capacity = 32
//
//	[layout]
//	kind = "conversation"
//	base_trust = 254
//
//	[render]
//	light = "#ffffff"
//	dark = "#000000"
//	labels = true
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
)

const appName = "trustpane"

// minCapacity leaves room for the status canvas plus one full conversation layout.
const minCapacity = 4

// Config is the complete trustpane configuration.
type Config struct {
	Display  gfx.Metrics    `toml:"display" yaml:"display" json:"display"`
	Status   StatusConfig   `toml:"status" yaml:"status" json:"status"`
	Registry RegistryConfig `toml:"registry" yaml:"registry" json:"registry"`
	Layout   LayoutConfig   `toml:"layout" yaml:"layout" json:"layout"`
	Render   RenderConfig   `toml:"render" yaml:"render" json:"render"`
}

// StatusConfig describes the status bar canvas owned by the shell.
type StatusConfig struct {
	Height int `toml:"height" yaml:"height" json:"height"`
	Trust  int `toml:"trust" yaml:"trust" json:"trust"`
}

// RegistryConfig sizes the canvas registry.
type RegistryConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity" json:"capacity"`
}

// LayoutConfig selects the default layout for commands that create one.
type LayoutConfig struct {
	Kind      string `toml:"kind" yaml:"kind" json:"kind"`
	BaseTrust int    `toml:"base_trust" yaml:"base_trust" json:"base_trust"`
}

// RenderConfig controls PNG output.
type RenderConfig struct {
	Light  string `toml:"light" yaml:"light" json:"light"`
	Dark   string `toml:"dark" yaml:"dark" json:"dark"`
	Labels bool   `toml:"labels" yaml:"labels" json:"labels"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display:  gfx.DefaultMetrics,
		Status:   StatusConfig{Height: 32, Trust: int(canvas.MaxTrust)},
		Registry: RegistryConfig{Capacity: canvas.DefaultCapacity},
		Layout:   LayoutConfig{Kind: layout.Conversation.String(), BaseTrust: 254},
		Render:   RenderConfig{Light: "#ffffff", Dark: "#000000", Labels: true},
	}
}

// Load reads path and overlays it on Default. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns Default otherwise.
// An empty path also yields Default.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml %s", path)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}
	return nil
}

// Save writes cfg to path as TOML or YAML, chosen by extension.
func Save(path string, cfg Config) error {
	data, err := Marshal(format(path), cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create config dir")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write config %s", path)
	}
	return nil
}

// Marshal encodes cfg as "toml" or "yaml".
func Marshal(format string, cfg Config) ([]byte, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal yaml")
		}
		return data, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal toml")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config format %q", format)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "toml"
}

// Validate checks dimensions, trust ordering and the layout kind.
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"display.width", c.Display.Width},
		{"display.height", c.Display.Height},
		{"display.small_line_height", c.Display.SmallLineHeight},
		{"display.regular_line_height", c.Display.RegularLineHeight},
		{"status.height", c.Status.Height},
	}
	for _, chk := range checks {
		if err := errors.ValidateDimension(chk.name, chk.v); err != nil {
			return err
		}
	}
	if c.Status.Height >= c.Display.Height {
		return errors.New(errors.ErrCodeInvalidConfig,
			"status.height %d leaves no room on a %d px screen", c.Status.Height, c.Display.Height)
	}
	if c.Status.Trust < 0 || c.Status.Trust > int(canvas.MaxTrust) {
		return errors.New(errors.ErrCodeInvalidConfig, "status.trust must be in [0, 255], got %d", c.Status.Trust)
	}
	if c.Registry.Capacity < minCapacity {
		return errors.New(errors.ErrCodeInvalidConfig,
			"registry.capacity must be at least %d, got %d", minCapacity, c.Registry.Capacity)
	}
	if _, err := layout.ParseKind(c.Layout.Kind); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.kind")
	}
	if err := errors.ValidateTrust(c.Layout.BaseTrust, c.Status.Trust); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.base_trust")
	}
	if err := errors.ValidateColor("render.light", c.Render.Light); err != nil {
		return err
	}
	return errors.ValidateColor("render.dark", c.Render.Dark)
}

// LayoutKind returns the parsed default layout kind.
func (c Config) LayoutKind() layout.Kind {
	k, err := layout.ParseKind(c.Layout.Kind)
	if err != nil {
		return layout.Conversation
	}
	return k
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/trustpane/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
