package world

import "github.com/zyedidia/generic/mapset"

// SpritePlacer is the part of the rendering substrate the map builder draws through
type SpritePlacer interface {
	// PlaceTile draws a ground or structure tile of the given kind at a cell
	PlaceTile(kind TileKind, c Cell)
	// PlaceSprite draws a named sprite centered at a world position
	PlaceSprite(key string, at Point)
}

// Carver draws L-shaped connective paths into an occupancy grid
type Carver struct {
	grid     *OccupancyGrid
	tileSize int
	placer   SpritePlacer
}

// NewCarver creates a carver bound to a grid. A nil placer carves without rendering.
func NewCarver(grid *OccupancyGrid, tileSize int, placer SpritePlacer) *Carver {
	return &Carver{grid: grid, tileSize: tileSize, placer: placer}
}

// Carve walks from one world position to another, first along the column axis
// and then along the row axis. Every cell on the route that is not yet occupied
// gets a path tile and is marked; occupied cells are skipped without stopping.
// The target cell is included. Carve returns the cells it newly marked.
func (c *Carver) Carve(from, to Point) mapset.Set[Cell] {
	touched := mapset.New[Cell]()
	cursor := CellAt(from, c.tileSize)
	target := CellAt(to, c.tileSize)

	c.visit(cursor, touched)
	for cursor.Col != target.Col {
		cursor.Col += step(cursor.Col, target.Col)
		c.visit(cursor, touched)
	}
	for cursor.Row != target.Row {
		cursor.Row += step(cursor.Row, target.Row)
		c.visit(cursor, touched)
	}

	return touched
}

// visit renders and marks a single cell if it is free
func (c *Carver) visit(cell Cell, touched mapset.Set[Cell]) {
	if !c.grid.Mark(cell) {
		return
	}
	if c.placer != nil {
		c.placer.PlaceTile(TilePath, cell)
	}
	touched.Put(cell)
}

// step returns the unit move from current toward target
func step(current, target int) int {
	if target > current {
		return 1
	}
	return -1
}
