package world

import (
	"math/rand"
	"strings"
	"testing"
)

func buildDefault(t *testing.T, seed string) (*Map, *recordingPlacer) {
	t.Helper()
	layout := DefaultLayout()
	layout.Seed = seed
	placer := newRecordingPlacer()
	m, err := Build(layout, placer)
	if err != nil {
		t.Fatalf("Failed to build default layout: %v", err)
	}
	return m, placer
}

func TestBuild_DefaultLayout(t *testing.T) {
	m, _ := buildDefault(t, "town")

	stats := m.Stats()
	if stats.Hotspots != 6 {
		t.Errorf("Expected 6 hotspots, got %d", stats.Hotspots)
	}
	if stats.BorderCells != 2*24+2*16 {
		t.Errorf("Expected 80 border cells, got %d", stats.BorderCells)
	}
	if stats.FootprintCells != 6*9 {
		t.Errorf("Expected 54 footprint cells, got %d", stats.FootprintCells)
	}
	if stats.PathCells != 67 {
		t.Errorf("Expected 67 path cells, got %d", stats.PathCells)
	}
	if stats.Decorations != 100 {
		t.Errorf("Expected 100 decorations, got %d", stats.Decorations)
	}
	if stats.FreeInterior != 131 {
		t.Errorf("Expected 131 free interior cells, got %d", stats.FreeInterior)
	}
	if stats.Occupied != 24*18-131 {
		t.Errorf("Expected %d occupied cells, got %d", 24*18-131, stats.Occupied)
	}
}

func TestBuild_BorderIsClosed(t *testing.T) {
	m, placer := buildDefault(t, "town")

	for col := 0; col < m.Cols; col++ {
		for _, row := range []int{0, m.Rows - 1} {
			c := Cell{Col: col, Row: row}
			if !m.Grid.IsOccupied(c) || placer.kinds[c] != TileFence {
				t.Errorf("Expected fence at %s", c.Key())
			}
		}
	}
	for row := 0; row < m.Rows; row++ {
		for _, col := range []int{0, m.Cols - 1} {
			c := Cell{Col: col, Row: row}
			if !m.Grid.IsOccupied(c) || placer.kinds[c] != TileFence {
				t.Errorf("Expected fence at %s", c.Key())
			}
		}
	}
}

func TestBuild_NoDecorationInFootprints(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "town", "42"} {
		t.Run(seed, func(t *testing.T) {
			m, _ := buildDefault(t, seed)
			for _, d := range m.Decorations {
				if name, ok := m.HotspotAt(d.Cell); ok {
					t.Errorf("Decoration %s at %s lies inside hotspot %s", d.Kind, d.Cell.Key(), name)
				}
				if m.IsPath(d.Cell) {
					t.Errorf("Decoration %s at %s lies on a path", d.Kind, d.Cell.Key())
				}
				if !m.Grid.IsInterior(d.Cell) {
					t.Errorf("Decoration %s at %s lies outside the interior", d.Kind, d.Cell.Key())
				}
			}
		})
	}
}

func TestBuild_PathsAvoidFootprints(t *testing.T) {
	m, _ := buildDefault(t, "town")
	for _, c := range m.Paths {
		if name, ok := m.HotspotAt(c); ok {
			t.Errorf("Path cell %s lies inside hotspot %s", c.Key(), name)
		}
	}
}

func TestBuild_EveryHotspotIsConnected(t *testing.T) {
	m, _ := buildDefault(t, "town")
	for _, h := range m.Hotspots.All() {
		access := h.AccessCell(m.TileSize)
		if !m.IsPath(access) {
			t.Errorf("Expected path at access cell %s of hotspot %s", access.Key(), h.Name)
		}
	}
}

func TestBuild_Spawn(t *testing.T) {
	m, _ := buildDefault(t, "town")

	spawn := CellAt(m.Spawn, m.TileSize)
	if spawn != (Cell{Col: 12, Row: 10}) {
		t.Errorf("Expected spawn cell (12,10), got %s", spawn.Key())
	}
	if !m.IsPath(spawn) {
		t.Error("Expected spawn on the vertical spine")
	}
	if _, ok := m.DecorationAt(spawn); ok {
		t.Error("Spawn cell must not carry a decoration")
	}
	if _, ok := m.HotspotAt(spawn); ok {
		t.Error("Spawn cell must not lie inside a hotspot")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	first, _ := buildDefault(t, "repeatable")
	second, _ := buildDefault(t, "repeatable")

	if len(first.Decorations) != len(second.Decorations) {
		t.Fatalf("Decoration counts differ: %d vs %d", len(first.Decorations), len(second.Decorations))
	}
	for i := range first.Decorations {
		if first.Decorations[i] != second.Decorations[i] {
			t.Errorf("Decoration %d differs: %v vs %v", i, first.Decorations[i], second.Decorations[i])
		}
	}

	other, _ := buildDefault(t, "different")
	same := true
	for i := range first.Decorations {
		if first.Decorations[i] != other.Decorations[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different seeds to scatter differently")
	}
}

func TestBuild_RandomSeedWhenEmpty(t *testing.T) {
	m, _ := buildDefault(t, "")
	if m.Seed == "" {
		t.Error("Expected a generated seed to be recorded on the map")
	}
}

func TestBuild_SpritesDrawn(t *testing.T) {
	_, placer := buildDefault(t, "town")

	counts := make(map[string]int)
	for _, key := range placer.sprites {
		counts[key]++
	}
	if counts[string(TileGrass)] != 1 {
		t.Errorf("Expected one grass backdrop, got %d", counts[string(TileGrass)])
	}
	for _, name := range DefaultLayout().Hotspots {
		if counts[BuildingSpriteKey(name.Name)] != 1 {
			t.Errorf("Expected one building sprite for %s", name.Name)
		}
	}
	decorations := 0
	for _, kind := range DefaultPalette {
		decorations += counts[kind]
	}
	if decorations != 100 {
		t.Errorf("Expected 100 decoration sprites, got %d", decorations)
	}
}

func TestBuild_InvalidLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.Hotspots = append(layout.Hotspots, HotspotSpec{Name: "copy", AnchorX: 0.25, AnchorY: 0.2, WidthTiles: 2, HeightTiles: 2})

	m, err := Build(layout, nil)
	if err == nil {
		t.Fatal("Expected overlapping hotspots to fail construction")
	}
	if m != nil {
		t.Error("Expected no map on failure")
	}
	if !strings.Contains(err.Error(), "shares cell") {
		t.Errorf("Expected overlap error, got %v", err)
	}
}

func TestScatter_StopsWhenGridFull(t *testing.T) {
	grid := NewOccupancyGrid(12, 12)
	// 100 interior cells; leave 50 free
	marked := 0
	for _, c := range grid.FreeInterior() {
		if marked == 50 {
			break
		}
		grid.Mark(c)
		marked++
	}

	placed := Scatter(grid, 100, DefaultAttemptsPerDecoration, nil, rand.New(rand.NewSource(1)), rand.New(rand.NewSource(2)))

	if len(placed) != 50 {
		t.Errorf("Expected exactly 50 decorations, got %d", len(placed))
	}
	if free := len(grid.FreeInterior()); free != 0 {
		t.Errorf("Expected no free interior cells, got %d", free)
	}
	seen := make(map[Cell]bool)
	for _, d := range placed {
		if seen[d.Cell] {
			t.Errorf("Cell %s decorated twice", d.Cell.Key())
		}
		seen[d.Cell] = true
	}
}

func TestScatter_SingleAttemptBudget(t *testing.T) {
	grid := NewOccupancyGrid(10, 10)
	placed := Scatter(grid, 64, 1, []string{"rock"}, rand.New(rand.NewSource(7)), rand.New(rand.NewSource(8)))

	if len(placed) != 64 {
		t.Errorf("Expected all 64 interior cells decorated, got %d", len(placed))
	}
	for _, d := range placed {
		if d.Kind != "rock" {
			t.Errorf("Expected palette kind rock, got %s", d.Kind)
		}
	}
}

func TestScatter_Zero(t *testing.T) {
	grid := NewOccupancyGrid(10, 10)
	if placed := Scatter(grid, 0, 64, nil, rand.New(rand.NewSource(1)), rand.New(rand.NewSource(1))); len(placed) != 0 {
		t.Errorf("Expected no decorations, got %d", len(placed))
	}
	if grid.Len() != 0 {
		t.Error("Expected grid untouched")
	}
}
