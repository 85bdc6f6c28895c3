package world

import "testing"

func TestOccupancyGrid_Mark(t *testing.T) {
	grid := NewOccupancyGrid(10, 8)
	c := Cell{Col: 3, Row: 4}

	if grid.IsOccupied(c) {
		t.Fatal("Expected new grid to be empty")
	}
	if !grid.Mark(c) {
		t.Error("Expected first mark to report a new cell")
	}
	if grid.Mark(c) {
		t.Error("Expected second mark to be a no-op")
	}
	if !grid.IsOccupied(c) {
		t.Error("Expected cell to be occupied")
	}
	if grid.Len() != 1 {
		t.Errorf("Expected 1 occupied cell, got %d", grid.Len())
	}
}

func TestOccupancyGrid_OutOfBounds(t *testing.T) {
	grid := NewOccupancyGrid(10, 8)

	tests := []struct {
		name string
		cell Cell
	}{
		{"negative column", Cell{Col: -1, Row: 0}},
		{"negative row", Cell{Col: 0, Row: -1}},
		{"column past edge", Cell{Col: 10, Row: 0}},
		{"row past edge", Cell{Col: 0, Row: 8}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if grid.Mark(test.cell) {
				t.Errorf("Mark(%s) should ignore out-of-bounds cells", test.cell.Key())
			}
			if grid.IsOccupied(test.cell) {
				t.Errorf("IsOccupied(%s) should be false", test.cell.Key())
			}
		})
	}
}

func TestOccupancyGrid_Interior(t *testing.T) {
	grid := NewOccupancyGrid(10, 8)

	tests := []struct {
		cell     Cell
		interior bool
	}{
		{Cell{0, 0}, false},
		{Cell{1, 1}, true},
		{Cell{8, 6}, true},
		{Cell{9, 6}, false},
		{Cell{8, 7}, false},
	}
	for _, test := range tests {
		if got := grid.IsInterior(test.cell); got != test.interior {
			t.Errorf("IsInterior(%s): expected %v, got %v", test.cell.Key(), test.interior, got)
		}
	}

	if free := len(grid.FreeInterior()); free != 8*6 {
		t.Errorf("Expected 48 free interior cells, got %d", free)
	}
	grid.Mark(Cell{Col: 1, Row: 1})
	grid.Mark(Cell{Col: 0, Row: 0})
	if free := len(grid.FreeInterior()); free != 47 {
		t.Errorf("Expected 47 free interior cells, got %d", free)
	}
}

func TestOccupancyGrid_CellsSorted(t *testing.T) {
	grid := NewOccupancyGrid(10, 8)
	grid.Mark(Cell{Col: 5, Row: 3})
	grid.Mark(Cell{Col: 1, Row: 3})
	grid.Mark(Cell{Col: 7, Row: 0})

	cells := grid.Cells()
	expected := []Cell{{7, 0}, {1, 3}, {5, 3}}
	if len(cells) != len(expected) {
		t.Fatalf("Expected %d cells, got %d", len(expected), len(cells))
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("Cell %d: expected %s, got %s", i, expected[i].Key(), cells[i].Key())
		}
	}
}

func TestCellConversions(t *testing.T) {
	if c := CellAt(Point{X: 119.9, Y: 40}, 40); c != (Cell{Col: 2, Row: 1}) {
		t.Errorf("Expected (2,1), got %s", c.Key())
	}
	if p := CellCenter(Cell{Col: 2, Row: 1}, 40); p != (Point{X: 100, Y: 60}) {
		t.Errorf("Expected (100,60), got (%v,%v)", p.X, p.Y)
	}
	if key := (Cell{Col: 12, Row: 7}).Key(); key != "12,7" {
		t.Errorf("Expected key 12,7, got %s", key)
	}
}
