// Package config stores persistent application settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// EnvPath names an environment variable that overrides the config file
// location.
const EnvPath = "OPENTRACELAYOUT_CONFIG"

// AppConfig stores persistent application settings
type AppConfig struct {
	Theme         string  `json:"theme"`
	PixelsPerInch float64 `json:"pixels_per_inch"`
	Board         string  `json:"board"` // preset used for new layouts
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:         render.ThemeClassic.String(),
		PixelsPerInch: measure.DefaultPixelsPerInch,
		Board:         board.VeroBoard().Name,
	}
}

// Validate fills zero fields with defaults and rejects unknown names.
func (c *AppConfig) Validate() error {
	def := DefaultConfig()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.PixelsPerInch == 0 {
		c.PixelsPerInch = def.PixelsPerInch
	}
	if c.Board == "" {
		c.Board = def.Board
	}

	if _, err := render.ParseTheme(c.Theme); err != nil {
		return err
	}
	if c.PixelsPerInch < 0 {
		return fmt.Errorf("pixels_per_inch must be positive, got %v", c.PixelsPerInch)
	}
	if _, ok := board.Lookup(c.Board); !ok {
		return fmt.Errorf("unknown board preset %q", c.Board)
	}
	return nil
}

// ColorTheme returns the configured theme. Call Validate first.
func (c *AppConfig) ColorTheme() render.ColorTheme {
	t, err := render.ParseTheme(c.Theme)
	if err != nil {
		return render.ThemeClassic
	}
	return t
}

// Apply installs the render scale process-wide and returns the palette of
// the configured theme.
func (c *AppConfig) Apply() (render.Palette, error) {
	if err := measure.SetPixelsPerInch(c.PixelsPerInch); err != nil {
		return render.Palette{}, err
	}
	return render.PaletteFor(c.ColorTheme()), nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}

	var configDir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\OpenTraceLayout
		configDir = filepath.Join(appData, "OpenTraceLayout")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "opentracelayout")
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadDefault loads the configuration from Path.
func LoadDefault() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), err
	}
	return Load(path)
}

// SaveDefault saves cfg to Path.
func SaveDefault(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return Save(path, cfg)
}
