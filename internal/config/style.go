package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itoshima-fieldlab/surveymap/internal/units"
)

// StyleConfig holds optional map styling loaded from a JSON file. All fields
// are pointers so a partial config only overrides what it names; the Get*
// methods supply defaults for anything omitted.
type StyleConfig struct {
	// Framing
	Margin *float64 `json:"margin,omitempty"` // bounding-box expansion fraction

	// Page geometry
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Unit   *string  `json:"unit,omitempty"` // in, cm, mm, px
	DPI    *int     `json:"dpi,omitempty"`

	// Decoration
	Title       *string `json:"title,omitempty"`
	LabelPoints *bool   `json:"label_points,omitempty"`

	// Basemap
	TileProvider *string `json:"tile_provider,omitempty"`
}

// Defaults matching the original field-survey figure.
const (
	DefaultMargin = 0.10
	DefaultWidth  = 7.0
	DefaultHeight = 5.0
	DefaultDPI    = 300
	DefaultTitle  = "Survey waypoints"
)

// EmptyStyleConfig returns a StyleConfig with all fields unset.
func EmptyStyleConfig() *StyleConfig {
	return &StyleConfig{}
}

// LoadStyleConfig loads a StyleConfig from a JSON file. The file must have a
// .json extension and stay under the max file size. Fields omitted from the
// JSON retain their defaults, so partial configs are safe.
func LoadStyleConfig(path string) (*StyleConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyStyleConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderers cannot use.
func (c *StyleConfig) Validate() error {
	if c.Unit != nil && !units.IsValid(*c.Unit) {
		return fmt.Errorf("invalid unit %q (valid: %s)", *c.Unit, units.GetValidUnitsString())
	}
	if c.Width != nil && *c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %f", *c.Width)
	}
	if c.Height != nil && *c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %f", *c.Height)
	}
	if c.DPI != nil && *c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", *c.DPI)
	}
	return nil
}

func (c *StyleConfig) GetMargin() float64 {
	if c.Margin != nil {
		return *c.Margin
	}
	return DefaultMargin
}

func (c *StyleConfig) GetWidth() float64 {
	if c.Width != nil {
		return *c.Width
	}
	return DefaultWidth
}

func (c *StyleConfig) GetHeight() float64 {
	if c.Height != nil {
		return *c.Height
	}
	return DefaultHeight
}

func (c *StyleConfig) GetUnit() string {
	if c.Unit != nil {
		return *c.Unit
	}
	return units.Inch
}

func (c *StyleConfig) GetDPI() int {
	if c.DPI != nil {
		return *c.DPI
	}
	return DefaultDPI
}

func (c *StyleConfig) GetTitle() string {
	if c.Title != nil {
		return *c.Title
	}
	return DefaultTitle
}

func (c *StyleConfig) GetLabelPoints() bool {
	if c.LabelPoints != nil {
		return *c.LabelPoints
	}
	return true
}

func (c *StyleConfig) GetTileProvider() string {
	if c.TileProvider != nil {
		return *c.TileProvider
	}
	return ""
}
