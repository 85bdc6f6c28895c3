package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lmaccart/hack-rice15/game/world"
)

func createValidConfig() *SceneConfig {
	count := 20
	return &SceneConfig{
		Name:            "Test Config",
		Description:     "Test configuration",
		Cols:            20,
		Rows:            15,
		Seed:            "test",
		DecorationCount: &count,
		Hotspots: []HotspotConfig{
			{Name: "bank", Label: "Bank", AnchorX: 0.25, AnchorY: 0.25, WidthTiles: 2, HeightTiles: 2},
			{Name: "school", Label: "School", AnchorX: 0.75, AnchorY: 0.25, WidthTiles: 2, HeightTiles: 2},
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *SceneConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

const yamlConfig = `name: Plaza
description: Two buildings facing a square
cols: 16
rows: 12
seed: plaza
decoration_count: 10
decoration_palette: [rock, flowers]
hotspots:
  - name: library
    label: Library
    anchor_x: 0.25
    anchor_y: 0.3
    width_tiles: 2
    height_tiles: 2
  - name: market
    anchor_x: 0.75
    anchor_y: 0.3
    width_tiles: 2
    height_tiles: 2
`

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "town", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Test Config" {
			t.Errorf("Expected town.json as default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got error: %v", err)
		}
		def := manager.GetDefault()
		if def == nil || def.Name != "town" || len(def.Hotspots) != 6 {
			t.Errorf("Expected built-in town default, got %+v", def)
		}
	})

	t.Run("first valid config becomes default", func(t *testing.T) {
		dir := t.TempDir()
		other := createValidConfig()
		other.Name = "Other"
		writeConfigFile(t, dir, "other", other)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Other" {
			t.Errorf("Expected Other as default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "valid", createValidConfig())
	if err := os.WriteFile(filepath.Join(dir, "plaza.yaml"), []byte(yamlConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	overlapping := createValidConfig()
	overlapping.Hotspots[1].AnchorX = 0.3
	writeConfigFile(t, dir, "overlapping", overlapping)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		config, err := manager.LoadConfig("valid")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Cols != 20 || len(config.Hotspots) != 2 {
			t.Errorf("Unexpected config: %+v", config)
		}
	})

	t.Run("with extension", func(t *testing.T) {
		if _, err := manager.LoadConfig("valid.json"); err != nil {
			t.Errorf("Expected name with extension to load, got %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		config, err := manager.LoadConfig("plaza")
		if err != nil {
			t.Fatalf("Failed to load yaml config: %v", err)
		}
		if config.Name != "Plaza" || *config.DecorationCount != 10 || len(config.DecorationPalette) != 2 {
			t.Errorf("Unexpected yaml config: %+v", config)
		}
		if config.Hotspots[0].Label != "Library" || config.Hotspots[1].AnchorX != 0.75 {
			t.Errorf("Unexpected hotspots: %+v", config.Hotspots)
		}
	})

	t.Run("cached", func(t *testing.T) {
		first, _ := manager.LoadConfig("valid")
		second, _ := manager.LoadConfig("valid")
		if first != second {
			t.Error("Expected cached config to be returned")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := manager.LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		_, err := manager.LoadConfig("../valid")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := manager.LoadConfig("broken")
		if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})

	t.Run("layout violation", func(t *testing.T) {
		_, err := manager.LoadConfig("overlapping")
		if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, world.ErrLayoutInvalid) {
			t.Errorf("Expected invalid config wrapping a layout error, got %v", err)
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "valid", createValidConfig())
	if err := os.WriteFile(filepath.Join(dir, "plaza.yml"), []byte(yamlConfig), 0644); err != nil {
		t.Fatal(err)
	}
	invalid := createValidConfig()
	invalid.Cols = 3
	writeConfigFile(t, dir, "invalid", invalid)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "plaza" || configs[1].ConfigID != "valid" {
		t.Errorf("Expected sorted config IDs, got %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[0].Filename != "plaza.yml" || configs[0].Hotspots != 2 || configs[0].Cols != 16 {
		t.Errorf("Unexpected config info: %+v", configs[0])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	manager.RefreshCache()
	loaded, err := manager.LoadConfig("saved")
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.Name != config.Name || *loaded.DecorationCount != 20 {
		t.Errorf("Saved config did not round trip: %+v", loaded)
	}

	invalid := createValidConfig()
	invalid.Hotspots = nil
	if err := manager.SaveConfig("bad", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected invalid name to be rejected, got %v", err)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "valid", createValidConfig())
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
	if err := manager.SetDefault("valid"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Test Config" {
		t.Errorf("Expected Test Config as default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "valid", createValidConfig())
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("valid"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Concurrent load failed: %v", err)
	}
}
