// Command validate checks the scene configuration files in a directory.
// For every .json, .yaml and .yml file it checks:
//   - the file decodes
//   - field ranges and hotspot definitions
//   - layout geometry: footprints inside the interior, no shared cells, access
//     cells inside the interior, spawn clear of buildings
//   - connectivity: every building's access cell is reachable from the spawn
//     point along the carved path network
//
// It exits with a non-zero status if any file is invalid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/multierr"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/world"
)

// ValidationResult captures the outcome of validating a single file.
// Errors lists the problems found; Info lists facts about a valid file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(problems ...string) {
	r.Valid = false
	r.Errors = append(r.Errors, problems...)
}

// problems flattens a validation error into one message per problem
func problems(err error) []string {
	if err == nil {
		return nil
	}
	wrapped, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	for _, e := range wrapped.Unwrap() {
		if errors.Is(e, config.ErrInvalidConfig) || errors.Is(e, world.ErrLayoutInvalid) {
			continue
		}
		for _, p := range multierr.Errors(e) {
			out = append(out, problems(p)...)
		}
	}
	if len(out) == 0 {
		return []string{err.Error()}
	}
	return out
}

// validateConfig loads and validates a single configuration file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail(fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	cfg, err := config.Decode(data, filepath.Ext(filePath))
	if err != nil {
		result.fail(fmt.Sprintf("Invalid %s: %v", strings.TrimPrefix(filepath.Ext(filePath), "."), err))
		return result
	}

	if err := config.Validate(cfg); err != nil {
		result.fail(problems(err)...)
		return result
	}

	layout := cfg.Layout()
	if err := layout.Validate(); err != nil {
		result.fail(problems(err)...)
		return result
	}

	m, err := world.Build(layout, nil)
	if err != nil {
		result.fail(fmt.Sprintf("Failed to build scene: %v", err))
		return result
	}

	connectivity := validateConnectivity(m)
	if !connectivity.Valid {
		result.fail(connectivity.Errors...)
		return result
	}

	stats := m.Stats()
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", cfg.Name),
		fmt.Sprintf("✓ Grid: %dx%d (tile %dpx)", stats.Cols, stats.Rows, stats.TileSize),
		fmt.Sprintf("✓ Buildings: %d", stats.Hotspots),
		fmt.Sprintf("✓ Paths: %d cells", stats.PathCells),
		fmt.Sprintf("✓ Decorations: %d/%d", stats.Decorations, stats.DecorationTarget),
	)
	result.Info = append(result.Info, connectivity.Info...)
	return result
}

// validateConnectivity ensures every building's access cell is reachable
// from the spawn cell by 4-directional movement over path cells
func validateConnectivity(m *world.Map) ValidationResult {
	result := ValidationResult{Valid: true}

	spawn := world.CellAt(m.Spawn, m.TileSize)
	if !m.IsPath(spawn) {
		result.fail(fmt.Sprintf("Spawn cell (%d,%d) is not on a path", spawn.Col, spawn.Row))
		return result
	}

	visited := mapset.New[world.Cell]()
	queue := []world.Cell{spawn}
	visited.Put(spawn)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range []world.Cell{
			{Col: c.Col - 1, Row: c.Row},
			{Col: c.Col + 1, Row: c.Row},
			{Col: c.Col, Row: c.Row - 1},
			{Col: c.Col, Row: c.Row + 1},
		} {
			if !visited.Has(n) && m.IsPath(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	var unreachable []string
	hotspots := m.Hotspots.All()
	for _, h := range hotspots {
		access := h.AccessCell(m.TileSize)
		if !visited.Has(access) {
			unreachable = append(unreachable, fmt.Sprintf("Unreachable: %s (access cell %d,%d)", h.Label, access.Col, access.Row))
		}
	}

	if len(unreachable) > 0 {
		result.fail(fmt.Sprintf("Connectivity failure: %d/%d buildings unreachable from spawn", len(unreachable), len(hotspots)))
		result.fail(unreachable...)
		return result
	}
	result.Info = append(result.Info, fmt.Sprintf("✓ Connectivity: All %d buildings reachable from spawn", len(hotspots)))
	return result
}

// configFiles lists the scene config files in dir
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates each config file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := flag.String("config-dir", "../configs", "Directory containing scene configurations")
	flag.Parse()

	files, err := configFiles(*configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
