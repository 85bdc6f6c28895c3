package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lmaccart/hack-rice15/game/world"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *SceneConfig)
		wantErr string
	}{
		{"valid", func(c *SceneConfig) {}, ""},
		{"missing name", func(c *SceneConfig) { c.Name = "" }, "name is required"},
		{"grid too small", func(c *SceneConfig) { c.Cols = 7 }, "cols must be between"},
		{"grid too large", func(c *SceneConfig) { c.Rows = 201 }, "rows must be between"},
		{"tile too large", func(c *SceneConfig) { c.TileSize = 512 }, "tile_size"},
		{"negative decorations", func(c *SceneConfig) { n := -5; c.DecorationCount = &n }, "decoration_count"},
		{"negative attempts", func(c *SceneConfig) { c.MaxAttemptsPerDecoration = -1 }, "max_attempts_per_decoration"},
		{"negative speed", func(c *SceneConfig) { c.Speed = -10 }, "speed"},
		{"empty palette entry", func(c *SceneConfig) { c.DecorationPalette = []string{"tree", ""} }, "decoration_palette"},
		{"no hotspots", func(c *SceneConfig) { c.Hotspots = nil }, "at least one hotspot"},
		{"unnamed hotspot", func(c *SceneConfig) { c.Hotspots[0].Name = "" }, "name is required"},
		{"duplicate hotspot", func(c *SceneConfig) { c.Hotspots[1].Name = "bank" }, "duplicate name"},
		{"anchor out of range", func(c *SceneConfig) { c.Hotspots[0].AnchorX = 1.2 }, "anchors must lie"},
		{"zero footprint", func(c *SceneConfig) { c.Hotspots[0].HeightTiles = 0 }, "width_tiles and height_tiles"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.modify(config)

			err := Validate(config)
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil config, got %v", err)
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	config := createValidConfig()
	config.Name = ""
	config.Cols = 2
	config.Speed = -1

	err := Validate(config)
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, want := range []string{"name is required", "cols must be between", "speed"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}

func TestValidateScene_Geometry(t *testing.T) {
	config := createValidConfig()
	config.Hotspots = append(config.Hotspots, HotspotConfig{Name: "kiosk", AnchorX: 0.5, AnchorY: 0.55, WidthTiles: 1, HeightTiles: 1})

	err := ValidateScene(config)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, world.ErrLayoutInvalid) {
		t.Fatalf("Expected spawn-in-hotspot layout error, got %v", err)
	}
	if !strings.Contains(err.Error(), "spawn cell") {
		t.Errorf("Expected spawn cell error, got %v", err)
	}
}

func TestSceneConfig_Layout(t *testing.T) {
	config := createValidConfig()
	layout := config.Layout()

	if layout.TileSize != world.DefaultTileSize {
		t.Errorf("Expected default tile size, got %d", layout.TileSize)
	}
	if layout.DecorationCount != 20 {
		t.Errorf("Expected 20 decorations, got %d", layout.DecorationCount)
	}
	if layout.SpawnOffsetRows != world.DefaultSpawnOffsetRows {
		t.Errorf("Expected default spawn offset, got %d", layout.SpawnOffsetRows)
	}
	if layout.AttemptsPerDecoration != world.DefaultAttemptsPerDecoration {
		t.Errorf("Expected default attempt budget, got %d", layout.AttemptsPerDecoration)
	}
	if len(layout.Hotspots) != 2 || layout.Hotspots[0].Label != "Bank" {
		t.Errorf("Unexpected hotspots: %+v", layout.Hotspots)
	}

	config.DecorationCount = nil
	zero := 0
	config.SpawnOffsetRows = &zero
	layout = config.Layout()
	if layout.DecorationCount != world.DefaultDecorationCount {
		t.Errorf("Expected default decoration count, got %d", layout.DecorationCount)
	}
	if layout.SpawnOffsetRows != 0 {
		t.Errorf("Expected explicit zero spawn offset, got %d", layout.SpawnOffsetRows)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := ValidateScene(config); err != nil {
		t.Fatalf("Expected built-in default to be valid, got %v", err)
	}
	if config.Options().Layout.Cols != 24 {
		t.Errorf("Expected 24 columns, got %d", config.Options().Layout.Cols)
	}
}

func TestSchema(t *testing.T) {
	schema := Schema()
	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"hotspots"`, `"anchor_x"`, `"decoration_count"`, `"required"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected schema to mention %s", want)
		}
	}
	if schema.Title != "Scene Configuration" {
		t.Errorf("Unexpected schema title %q", schema.Title)
	}
}
