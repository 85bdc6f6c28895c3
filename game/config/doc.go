// Package config provides scene configuration management.
//
// The config package handles:
//   - Loading scene configurations from JSON or YAML files
//   - Field and layout validation with every problem reported at once
//   - Default configuration management
//   - Configuration discovery and listing
//   - The JSON Schema of the configuration format
//
// Configuration Format:
//
// Scene configurations are stored as <id>.json, <id>.yaml or <id>.yml files
// in the configs directory. Each configuration defines:
//   - Grid size in tiles and the tile size in pixels
//   - Decoration count, palette and scatter attempt budget
//   - Hotspots placed by anchor (a fraction of the world size) and footprint
//   - Actor speed and spawn offset
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sceneConfig, err := manager.LoadConfig("town")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scene, err := engine.NewSceneEngine(sceneConfig.Options(), nil)
package config
