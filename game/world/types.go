package world

import (
	"fmt"
	"math"
)

// TileKind identifies what a sprite placed on the map represents
type TileKind string

const (
	TileGrass      TileKind = "grass"
	TileFence      TileKind = "fence"
	TilePath       TileKind = "path"
	TileBuilding   TileKind = "building"
	TileDecoration TileKind = "decoration"

	// Construction limits
	MinGridSize                  = 8
	MaxGridSize                  = 200
	MinTileSize                  = 8
	MaxTileSize                  = 256
	DefaultTileSize              = 40
	DefaultDecorationCount       = 100
	DefaultAttemptsPerDecoration = 64
	DefaultSpawnOffsetRows       = 1
)

// DefaultPalette lists the decoration kinds scattered when a config names none
var DefaultPalette = []string{"tree", "pine", "bush", "rock", "flowers"}

// Cell is one grid unit addressed by column and row
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Key returns the canonical "col,row" form of the cell
func (c Cell) Key() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// Point is a world-space (pixel) coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CellAt converts a world coordinate to the cell containing it
func CellAt(p Point, tileSize int) Cell {
	ts := float64(tileSize)
	return Cell{
		Col: int(math.Floor(p.X / ts)),
		Row: int(math.Floor(p.Y / ts)),
	}
}

// CellCenter returns the world coordinate at the middle of a cell
func CellCenter(c Cell, tileSize int) Point {
	half := float64(tileSize) / 2
	return Point{
		X: float64(c.Col*tileSize) + half,
		Y: float64(c.Row*tileSize) + half,
	}
}

// Rect is an axis-aligned world-space rectangle described by its center and size
type Rect struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Bounds returns the min and max corners of the rectangle
func (r Rect) Bounds() (minX, minY, maxX, maxY float64) {
	return r.CenterX - r.Width/2, r.CenterY - r.Height/2, r.CenterX + r.Width/2, r.CenterY + r.Height/2
}

// Overlaps reports whether two rectangles share any interior area
func (r Rect) Overlaps(o Rect) bool {
	ax0, ay0, ax1, ay1 := r.Bounds()
	bx0, by0, bx1, by1 := o.Bounds()
	return ax0 < bx1 && ax1 > bx0 && ay0 < by1 && ay1 > by0
}

// Hotspot is a named point of interest the actor can approach
type Hotspot struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Overlay string  `json:"overlay"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Rect returns the hotspot footprint
func (h Hotspot) Rect() Rect {
	return Rect{CenterX: h.CenterX, CenterY: h.CenterY, Width: h.Width, Height: h.Height}
}

// FootprintCells returns every cell covered by the hotspot's bounding box,
// computed from center ± size/2 floor-divided by the tile size.
func (h Hotspot) FootprintCells(tileSize int) []Cell {
	minC, maxC := h.footprintRange(tileSize)
	cells := make([]Cell, 0, (maxC.Col-minC.Col+1)*(maxC.Row-minC.Row+1))
	for row := minC.Row; row <= maxC.Row; row++ {
		for col := minC.Col; col <= maxC.Col; col++ {
			cells = append(cells, Cell{Col: col, Row: row})
		}
	}
	return cells
}

// AccessCell is the cell directly below the footprint's bottom-center cell,
// where the connector path from the spine arrives.
func (h Hotspot) AccessCell(tileSize int) Cell {
	_, maxC := h.footprintRange(tileSize)
	center := CellAt(Point{X: h.CenterX, Y: h.CenterY}, tileSize)
	return Cell{Col: center.Col, Row: maxC.Row + 1}
}

// footprintRange returns the inclusive min/max cells of the footprint. Both
// edges are floor-divided, so an edge lying exactly on a tile boundary also
// claims the cell it touches.
func (h Hotspot) footprintRange(tileSize int) (Cell, Cell) {
	minX, minY, maxX, maxY := h.Rect().Bounds()
	return CellAt(Point{X: minX, Y: minY}, tileSize), CellAt(Point{X: maxX, Y: maxY}, tileSize)
}

// Decoration is a purely visual object scattered on free ground
type Decoration struct {
	Cell Cell   `json:"cell"`
	Kind string `json:"kind"`
}

// Stats summarizes how a map was constructed
type Stats struct {
	Cols             int `json:"cols"`
	Rows             int `json:"rows"`
	TileSize         int `json:"tile_size"`
	Occupied         int `json:"occupied"`
	FreeInterior     int `json:"free_interior"`
	BorderCells      int `json:"border_cells"`
	FootprintCells   int `json:"footprint_cells"`
	PathCells        int `json:"path_cells"`
	Decorations      int `json:"decorations"`
	DecorationTarget int `json:"decoration_target"`
	Hotspots         int `json:"hotspots"`
}
