// Package config loads the user's board settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

const (
	dirName  = ".kolamboard"
	fileName = "settings.toml"
)

type Settings struct {
	Canvas   Canvas  `toml:"canvas"`
	Brush    Brush   `toml:"brush"`
	Gallery  Gallery `toml:"gallery"`
	LogLevel string  `toml:"log_level"`
}

type Canvas struct {
	Size          float64 `toml:"size"`
	Padding       float64 `toml:"padding"`
	SnapThreshold float64 `toml:"snap_threshold"`
	Grid          int     `toml:"grid"`
}

type Brush struct {
	Color     string  `toml:"color"`
	Thickness float64 `toml:"thickness"`
	Fold      int     `toml:"fold"`
}

type Gallery struct {
	// Dir holds drawings saved locally and by the gallery host.
	Dir string `toml:"dir"`
	// Addr is the gallery host used for saving. Empty saves to Dir;
	// "auto" looks the host up over mDNS.
	Addr string `toml:"addr"`
	Port int    `toml:"port"`
}

func Defaults() Settings {
	return Settings{
		Canvas: Canvas{
			Size:          800,
			Padding:       60,
			SnapThreshold: 25,
			Grid:          7,
		},
		Brush: Brush{
			Color:     "#000000",
			Thickness: 4,
			Fold:      6,
		},
		Gallery: Gallery{
			Dir:  filepath.Join("~", dirName, "kolams"),
			Port: 8888,
		},
		LogLevel: "info",
	}
}

// DefaultPath is ~/.kolamboard/settings.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	c := s.Canvas
	if !(c.Size > 0) {
		return fmt.Errorf("canvas size must be positive, got %v", c.Size)
	}
	if c.Padding < 0 || 2*c.Padding >= c.Size {
		return fmt.Errorf("padding %v does not fit canvas %v", c.Padding, c.Size)
	}
	if !(c.SnapThreshold > 0) {
		return fmt.Errorf("snap threshold must be positive, got %v", c.SnapThreshold)
	}
	if err := state.GridSize(c.Grid).Validate(); err != nil {
		return err
	}
	if s.Brush.Fold < 1 {
		return fmt.Errorf("%w: brush fold %d is below 1", state.ErrInvalidFold, s.Brush.Fold)
	}
	if err := state.Fold(s.Brush.Fold).Validate(); err != nil {
		return err
	}
	if _, err := state.ParseHexColor(s.Brush.Color); err != nil {
		return err
	}
	if err := state.ValidateThickness(s.Brush.Thickness); err != nil {
		return err
	}
	if s.Gallery.Port < 0 || s.Gallery.Port > 65535 {
		return fmt.Errorf("gallery port %d out of range", s.Gallery.Port)
	}
	return nil
}

// GalleryDir expands a leading "~" in Gallery.Dir.
func (s Settings) GalleryDir() (string, error) {
	return homedir.Expand(s.Gallery.Dir)
}

// Save writes s to path, creating the directory.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
