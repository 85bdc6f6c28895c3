package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// OccupancyGrid records which cells of a bounded cols×rows grid are not free
// ground. Cells are only ever added; the grid is read-only once a map is built.
type OccupancyGrid struct {
	cols  int
	rows  int
	cells mapset.Set[Cell]
}

// NewOccupancyGrid creates an empty grid of the given dimensions
func NewOccupancyGrid(cols, rows int) *OccupancyGrid {
	return &OccupancyGrid{
		cols:  cols,
		rows:  rows,
		cells: mapset.New[Cell](),
	}
}

// Cols returns the number of columns
func (g *OccupancyGrid) Cols() int {
	return g.cols
}

// Rows returns the number of rows
func (g *OccupancyGrid) Rows() int {
	return g.rows
}

// InBounds reports whether the cell lies on the grid
func (g *OccupancyGrid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// IsInterior reports whether the cell lies inside the one-cell border
func (g *OccupancyGrid) IsInterior(c Cell) bool {
	return c.Col >= 1 && c.Col < g.cols-1 && c.Row >= 1 && c.Row < g.rows-1
}

// Mark adds a cell to the grid. It is idempotent and returns true only when
// the cell was not occupied before. Cells outside the grid are ignored.
func (g *OccupancyGrid) Mark(c Cell) bool {
	if !g.InBounds(c) || g.cells.Has(c) {
		return false
	}
	g.cells.Put(c)
	return true
}

// IsOccupied reports whether the cell has been marked
func (g *OccupancyGrid) IsOccupied(c Cell) bool {
	return g.cells.Has(c)
}

// Len returns the number of occupied cells
func (g *OccupancyGrid) Len() int {
	return g.cells.Size()
}

// Cells returns the occupied cells in row-major order
func (g *OccupancyGrid) Cells() []Cell {
	cells := make([]Cell, 0, g.cells.Size())
	g.cells.Each(func(c Cell) {
		cells = append(cells, c)
	})
	sortCells(cells)
	return cells
}

// FreeInterior returns every unoccupied interior cell in row-major order
func (g *OccupancyGrid) FreeInterior() []Cell {
	var free []Cell
	for row := 1; row < g.rows-1; row++ {
		for col := 1; col < g.cols-1; col++ {
			c := Cell{Col: col, Row: row}
			if !g.cells.Has(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// sortCells orders cells row-major so listings are stable
func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
