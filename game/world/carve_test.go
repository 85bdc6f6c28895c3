package world

import (
	"testing"
)

// recordingPlacer counts every tile and sprite drawn
type recordingPlacer struct {
	tiles   map[Cell]int
	kinds   map[Cell]TileKind
	sprites []string
}

func newRecordingPlacer() *recordingPlacer {
	return &recordingPlacer{
		tiles: make(map[Cell]int),
		kinds: make(map[Cell]TileKind),
	}
}

func (p *recordingPlacer) PlaceTile(kind TileKind, c Cell) {
	p.tiles[c]++
	p.kinds[c] = kind
}

func (p *recordingPlacer) PlaceSprite(key string, at Point) {
	p.sprites = append(p.sprites, key)
}

func cellPoint(col, row, tileSize int) Point {
	return CellCenter(Cell{Col: col, Row: row}, tileSize)
}

func TestCarve_HorizontalRun(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	placer := newRecordingPlacer()
	carver := NewCarver(grid, tile, placer)

	touched := carver.Carve(cellPoint(2, 2, tile), cellPoint(10, 2, tile))

	if touched.Size() != 9 {
		t.Errorf("Expected 9 touched cells, got %d", touched.Size())
	}
	for col := 2; col <= 10; col++ {
		c := Cell{Col: col, Row: 2}
		if !grid.IsOccupied(c) {
			t.Errorf("Expected cell %s to be occupied", c.Key())
		}
		if placer.tiles[c] != 1 {
			t.Errorf("Expected cell %s to be rendered exactly once, got %d", c.Key(), placer.tiles[c])
		}
		if placer.kinds[c] != TilePath {
			t.Errorf("Expected path tile at %s, got %s", c.Key(), placer.kinds[c])
		}
	}
	if grid.Len() != 9 {
		t.Errorf("Expected 9 occupied cells, got %d", grid.Len())
	}
}

func TestCarve_Idempotent(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	placer := newRecordingPlacer()
	carver := NewCarver(grid, tile, placer)

	carver.Carve(cellPoint(2, 2, tile), cellPoint(10, 2, tile))
	second := carver.Carve(cellPoint(2, 2, tile), cellPoint(10, 2, tile))

	if second.Size() != 0 {
		t.Errorf("Expected repeated carve to touch nothing, got %d cells", second.Size())
	}
	for c, count := range placer.tiles {
		if count != 1 {
			t.Errorf("Cell %s rendered %d times", c.Key(), count)
		}
	}
}

func TestCarve_HorizontalThenVertical(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	carver := NewCarver(grid, tile, nil)

	touched := carver.Carve(cellPoint(2, 2, tile), cellPoint(5, 6, tile))

	expected := []Cell{
		{2, 2}, {3, 2}, {4, 2}, {5, 2},
		{5, 3}, {5, 4}, {5, 5}, {5, 6},
	}
	if touched.Size() != len(expected) {
		t.Fatalf("Expected %d cells, got %d", len(expected), touched.Size())
	}
	for _, c := range expected {
		if !touched.Has(c) {
			t.Errorf("Expected L-shaped route to include %s", c.Key())
		}
	}
	if grid.IsOccupied(Cell{Col: 2, Row: 6}) {
		t.Error("Route must run along the column axis first, not the row axis")
	}
}

func TestCarve_ReverseDirection(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	carver := NewCarver(grid, tile, nil)

	touched := carver.Carve(cellPoint(10, 5, tile), cellPoint(3, 1, tile))

	if touched.Size() != 8+4 {
		t.Errorf("Expected 12 cells, got %d", touched.Size())
	}
	for _, c := range []Cell{{10, 5}, {3, 5}, {3, 1}} {
		if !touched.Has(c) {
			t.Errorf("Expected %s on the route", c.Key())
		}
	}
}

func TestCarve_SkipsOccupiedCells(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	blocked := Cell{Col: 4, Row: 2}
	grid.Mark(blocked)
	placer := newRecordingPlacer()
	carver := NewCarver(grid, tile, placer)

	touched := carver.Carve(cellPoint(2, 2, tile), cellPoint(6, 2, tile))

	if touched.Has(blocked) {
		t.Error("Occupied cell must not be reported as touched")
	}
	if placer.tiles[blocked] != 0 {
		t.Error("Occupied cell must not be rendered")
	}
	if !touched.Has(Cell{Col: 6, Row: 2}) {
		t.Error("Traversal must continue past occupied cells to the target")
	}
	if touched.Size() != 4 {
		t.Errorf("Expected 4 touched cells, got %d", touched.Size())
	}
}

func TestCarve_SameCell(t *testing.T) {
	const tile = 40
	grid := NewOccupancyGrid(20, 15)
	carver := NewCarver(grid, tile, nil)

	touched := carver.Carve(Point{X: 81, Y: 81}, Point{X: 119, Y: 119})
	if touched.Size() != 1 || !touched.Has(Cell{Col: 2, Row: 2}) {
		t.Errorf("Expected only the shared cell (2,2), got %d cells", touched.Size())
	}
}
