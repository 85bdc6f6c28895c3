package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/lmaccart/hack-rice15/game/world"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Validate checks field ranges and hotspot definitions, reporting every
// problem found. Geometry (overlap, interior, spawn) is checked by ValidateScene.
func Validate(config *SceneConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var errs error
	if config.Name == "" {
		errs = multierr.Append(errs, errors.New("name is required"))
	}
	if config.Cols < world.MinGridSize || config.Cols > world.MaxGridSize {
		errs = multierr.Append(errs, fmt.Errorf("cols must be between %d and %d, got %d", world.MinGridSize, world.MaxGridSize, config.Cols))
	}
	if config.Rows < world.MinGridSize || config.Rows > world.MaxGridSize {
		errs = multierr.Append(errs, fmt.Errorf("rows must be between %d and %d, got %d", world.MinGridSize, world.MaxGridSize, config.Rows))
	}
	if config.TileSize != 0 && (config.TileSize < world.MinTileSize || config.TileSize > world.MaxTileSize) {
		errs = multierr.Append(errs, fmt.Errorf("tile_size must be between %d and %d, got %d", world.MinTileSize, world.MaxTileSize, config.TileSize))
	}
	if config.DecorationCount != nil && *config.DecorationCount < 0 {
		errs = multierr.Append(errs, fmt.Errorf("decoration_count must not be negative, got %d", *config.DecorationCount))
	}
	if config.MaxAttemptsPerDecoration < 0 {
		errs = multierr.Append(errs, fmt.Errorf("max_attempts_per_decoration must not be negative, got %d", config.MaxAttemptsPerDecoration))
	}
	if config.Speed < 0 {
		errs = multierr.Append(errs, fmt.Errorf("speed must be positive, got %v", config.Speed))
	}
	for i, kind := range config.DecorationPalette {
		if kind == "" {
			errs = multierr.Append(errs, fmt.Errorf("decoration_palette entry %d is empty", i))
		}
	}

	if len(config.Hotspots) == 0 {
		errs = multierr.Append(errs, errors.New("at least one hotspot is required"))
	}
	seen := make(map[string]bool, len(config.Hotspots))
	for i, h := range config.Hotspots {
		if h.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %d: name is required", i))
		} else if seen[h.Name] {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q: duplicate name", h.Name))
		}
		seen[h.Name] = true

		if h.AnchorX <= 0 || h.AnchorX >= 1 || h.AnchorY <= 0 || h.AnchorY >= 1 {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q: anchors must lie strictly between 0 and 1, got (%v,%v)", h.Name, h.AnchorX, h.AnchorY))
		}
		if h.WidthTiles < 1 || h.HeightTiles < 1 {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q: width_tiles and height_tiles must be at least 1", h.Name))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// ValidateScene runs Validate and then checks that the layout can be built
func ValidateScene(config *SceneConfig) error {
	if err := Validate(config); err != nil {
		return err
	}
	if err := config.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
