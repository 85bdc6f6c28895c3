// Command analyze builds every scene configuration in a directory and prints
// what construction produced: grid dimensions, free ground, path and
// decoration counts, and whether each building's access cell can be reached
// along the path network from the spawn point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/world"
)

// HotspotReport describes one building of a built map
type HotspotReport struct {
	Name      string
	Label     string
	Access    world.Cell
	OnPath    bool
	Reachable bool
}

// Report summarizes one built map
type Report struct {
	Name        string
	Seed        string
	Stats       world.Stats
	Spawn       world.Cell
	Hotspots    []HotspotReport
	Saturated   bool
	Unreachable int
}

var configDir = flag.String("config-dir", "configs", "Directory containing scene configurations")

func main() {
	flag.Parse()

	paths, err := configFiles(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		cfg, err := config.LoadFile(path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}
		report, err := Analyze(cfg)
		if err != nil {
			fmt.Printf("Error building scene: %v\n", err)
			continue
		}
		report.Print(os.Stdout)
	}
}

// configFiles lists the config files in dir in name order
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || config.ConfigID(entry.Name()) == entry.Name() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Analyze builds the scene described by cfg and reports on it
func Analyze(cfg *config.SceneConfig) (*Report, error) {
	m, err := world.Build(cfg.Layout(), nil)
	if err != nil {
		return nil, err
	}

	spawn := world.CellAt(m.Spawn, m.TileSize)
	reached := reachableAlongPaths(m, spawn)

	r := &Report{
		Name:      cfg.Name,
		Seed:      m.Seed,
		Stats:     m.Stats(),
		Spawn:     spawn,
		Saturated: len(m.Decorations) < m.DecorationTarget,
	}
	for _, h := range m.Hotspots.All() {
		access := h.AccessCell(m.TileSize)
		hr := HotspotReport{
			Name:      h.Name,
			Label:     h.Label,
			Access:    access,
			OnPath:    m.IsPath(access),
			Reachable: reached.Has(access),
		}
		if !hr.Reachable {
			r.Unreachable++
		}
		r.Hotspots = append(r.Hotspots, hr)
	}
	return r, nil
}

// reachableAlongPaths floods the path network outward from start
func reachableAlongPaths(m *world.Map, start world.Cell) mapset.Set[world.Cell] {
	seen := mapset.New[world.Cell]()
	if !m.IsPath(start) {
		return seen
	}

	q := queue.New[world.Cell]()
	q.Enqueue(start)
	seen.Put(start)
	for !q.Empty() {
		c := q.Dequeue()
		for _, n := range []world.Cell{
			{Col: c.Col + 1, Row: c.Row},
			{Col: c.Col - 1, Row: c.Row},
			{Col: c.Col, Row: c.Row + 1},
			{Col: c.Col, Row: c.Row - 1},
		} {
			if seen.Has(n) || !m.IsPath(n) {
				continue
			}
			seen.Put(n)
			q.Enqueue(n)
		}
	}
	return seen
}

// Print writes the report in a human-readable form
func (r *Report) Print(w io.Writer) {
	s := r.Stats
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Seed: %s\n", r.Seed)
	fmt.Fprintf(w, "Grid: %d x %d tiles of %dpx\n", s.Cols, s.Rows, s.TileSize)
	fmt.Fprintf(w, "Spawn cell: (%d, %d)\n", r.Spawn.Col, r.Spawn.Row)
	fmt.Fprintf(w, "Border cells: %d\n", s.BorderCells)
	fmt.Fprintf(w, "Building cells: %d (%d buildings)\n", s.FootprintCells, s.Hotspots)
	fmt.Fprintf(w, "Path cells: %d\n", s.PathCells)
	fmt.Fprintf(w, "Decorations: %d/%d\n", s.Decorations, s.DecorationTarget)
	fmt.Fprintf(w, "Free interior after construction: %d\n", s.FreeInterior)

	if r.Saturated {
		fmt.Fprintf(w, "⚠️  WARNING: interior filled up, %d decorations could not be placed\n",
			s.DecorationTarget-s.Decorations)
	}

	for _, h := range r.Hotspots {
		mark := "✅"
		if !h.Reachable {
			mark = "⚠️ "
		}
		fmt.Fprintf(w, "%s %s: access (%d, %d), on path: %v, reachable from spawn: %v\n",
			mark, h.Label, h.Access.Col, h.Access.Row, h.OnPath, h.Reachable)
	}

	if r.Unreachable == 0 {
		fmt.Fprintf(w, "✅ Every building is connected to the spawn point\n")
	} else {
		fmt.Fprintf(w, "⚠️  CRITICAL: %d buildings cannot be reached along paths\n", r.Unreachable)
	}
}
