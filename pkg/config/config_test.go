package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
	if Default().LayoutKind() != layout.Conversation {
		t.Error("default layout should be conversation")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "trustpane.toml", `
[display]
width = 240
height = 320

[layout]
kind = "menu"
base_trust = 100
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Display.Width != 240 || cfg.Display.Height != 320 {
		t.Errorf("display = %dx%d, want 240x320", cfg.Display.Width, cfg.Display.Height)
	}
	// Unset keys keep their defaults.
	if cfg.Display.SmallLineHeight != 12 {
		t.Errorf("small_line_height = %d, want default 12", cfg.Display.SmallLineHeight)
	}
	if cfg.LayoutKind() != layout.Menu {
		t.Errorf("LayoutKind() = %v, want menu", cfg.LayoutKind())
	}
	if cfg.Layout.BaseTrust != 100 {
		t.Errorf("base_trust = %d, want 100", cfg.Layout.BaseTrust)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "trustpane.yaml", `
status:
  height: 20
  trust: 200
registry:
  capacity: 8
layout:
  base_trust: 150
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Status.Height != 20 || cfg.Status.Trust != 200 {
		t.Errorf("status = %+v", cfg.Status)
	}
	if cfg.Registry.Capacity != 8 {
		t.Errorf("capacity = %d, want 8", cfg.Registry.Capacity)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"toml", "c.toml", "[display]\nwidht = 10\n"},
		{"yaml", "c.yml", "display:\n  widht: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), "widht") {
				t.Errorf("error should name the bad key: %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadOrDefault(\"\") = %+v, %v", cfg, err)
	}
	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadOrDefault(absent) = %+v, %v", cfg, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"negative line height", func(c *Config) { c.Display.RegularLineHeight = -1 }},
		{"status fills screen", func(c *Config) { c.Status.Height = c.Display.Height }},
		{"status trust out of range", func(c *Config) { c.Status.Trust = 300 }},
		{"tiny registry", func(c *Config) { c.Registry.Capacity = 3 }},
		{"unknown kind", func(c *Config) { c.Layout.Kind = "sidebar" }},
		{"base above status", func(c *Config) { c.Status.Trust = 100; c.Layout.BaseTrust = 101 }},
		{"bad color", func(c *Config) { c.Render.Dark = "black" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Display.Width = 400
	cfg.Layout.Kind = "menu"

	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := Save(path, cfg); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got, cfg) {
				t.Errorf("round trip = %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestMarshalUnknownFormat(t *testing.T) {
	if _, err := Marshal("ini", Default()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Marshal(ini) error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "trustpane", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
