package config

import (
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/world"
)

// HotspotConfig places one point of interest in a scene
type HotspotConfig struct {
	Name        string  `json:"name" yaml:"name" jsonschema:"required,description=Unique hotspot identifier"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty" jsonschema:"description=Display name used in the Inspect prompt"`
	Overlay     string  `json:"overlay,omitempty" yaml:"overlay,omitempty" jsonschema:"description=Identifier of the informational overlay"`
	AnchorX     float64 `json:"anchor_x" yaml:"anchor_x" jsonschema:"required,exclusiveMinimum=0,exclusiveMaximum=1,description=Horizontal center as a fraction of the world width"`
	AnchorY     float64 `json:"anchor_y" yaml:"anchor_y" jsonschema:"required,exclusiveMinimum=0,exclusiveMaximum=1,description=Vertical center as a fraction of the world height"`
	WidthTiles  int     `json:"width_tiles" yaml:"width_tiles" jsonschema:"required,minimum=1"`
	HeightTiles int     `json:"height_tiles" yaml:"height_tiles" jsonschema:"required,minimum=1"`
}

// SceneConfig represents a scene configuration loaded from JSON or YAML
type SceneConfig struct {
	Name                     string          `json:"name" yaml:"name" jsonschema:"required"`
	Description              string          `json:"description" yaml:"description"`
	Cols                     int             `json:"cols" yaml:"cols" jsonschema:"required,minimum=8,maximum=200"`
	Rows                     int             `json:"rows" yaml:"rows" jsonschema:"required,minimum=8,maximum=200"`
	TileSize                 int             `json:"tile_size,omitempty" yaml:"tile_size,omitempty" jsonschema:"minimum=8,maximum=256,default=40"`
	Seed                     string          `json:"seed,omitempty" yaml:"seed,omitempty" jsonschema:"description=Seed for decoration scatter; empty picks a new one per scene"`
	DecorationCount          *int            `json:"decoration_count,omitempty" yaml:"decoration_count,omitempty" jsonschema:"minimum=0,default=100"`
	DecorationPalette        []string        `json:"decoration_palette,omitempty" yaml:"decoration_palette,omitempty"`
	MaxAttemptsPerDecoration int             `json:"max_attempts_per_decoration,omitempty" yaml:"max_attempts_per_decoration,omitempty" jsonschema:"minimum=0,default=64"`
	SpawnOffsetRows          *int            `json:"spawn_offset_rows,omitempty" yaml:"spawn_offset_rows,omitempty" jsonschema:"default=1"`
	Speed                    float64         `json:"speed,omitempty" yaml:"speed,omitempty" jsonschema:"minimum=0,default=160"`
	Hotspots                 []HotspotConfig `json:"hotspots" yaml:"hotspots" jsonschema:"required,minItems=1"`
}

// ConfigInfo provides information about a scene configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	Hotspots    int    `json:"hotspots"`
}

// Layout converts the configuration into map construction inputs
func (c *SceneConfig) Layout() world.Layout {
	layout := world.Layout{
		Cols:                  c.Cols,
		Rows:                  c.Rows,
		TileSize:              c.TileSize,
		Seed:                  c.Seed,
		DecorationCount:       world.DefaultDecorationCount,
		Palette:               append([]string(nil), c.DecorationPalette...),
		AttemptsPerDecoration: c.MaxAttemptsPerDecoration,
		SpawnOffsetRows:       world.DefaultSpawnOffsetRows,
	}
	if c.DecorationCount != nil {
		layout.DecorationCount = *c.DecorationCount
	}
	if c.SpawnOffsetRows != nil {
		layout.SpawnOffsetRows = *c.SpawnOffsetRows
	}
	for _, h := range c.Hotspots {
		layout.Hotspots = append(layout.Hotspots, world.HotspotSpec{
			Name:        h.Name,
			Label:       h.Label,
			Overlay:     h.Overlay,
			AnchorX:     h.AnchorX,
			AnchorY:     h.AnchorY,
			WidthTiles:  h.WidthTiles,
			HeightTiles: h.HeightTiles,
		})
	}
	return layout.WithDefaults()
}

// Options returns the engine options for a scene built from this configuration
func (c *SceneConfig) Options() engine.Options {
	return engine.Options{Layout: c.Layout(), Speed: c.Speed}
}

// DefaultConfig returns the built-in town used when no configuration files exist
func DefaultConfig() *SceneConfig {
	layout := world.DefaultLayout()
	count := layout.DecorationCount
	offset := layout.SpawnOffsetRows

	cfg := &SceneConfig{
		Name:                     "town",
		Description:              "Six financial literacy buildings around a central crossroads",
		Cols:                     layout.Cols,
		Rows:                     layout.Rows,
		TileSize:                 layout.TileSize,
		DecorationCount:          &count,
		DecorationPalette:        layout.Palette,
		MaxAttemptsPerDecoration: layout.AttemptsPerDecoration,
		SpawnOffsetRows:          &offset,
	}
	for _, h := range layout.Hotspots {
		cfg.Hotspots = append(cfg.Hotspots, HotspotConfig{
			Name:        h.Name,
			Label:       h.Label,
			Overlay:     h.Overlay,
			AnchorX:     h.AnchorX,
			AnchorY:     h.AnchorY,
			WidthTiles:  h.WidthTiles,
			HeightTiles: h.HeightTiles,
		})
	}
	return cfg
}
