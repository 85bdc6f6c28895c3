package world

import (
	"fmt"
	"log"
	"math/rand"
)

// Map is the result of construction. It is read-only once Build returns.
type Map struct {
	Cols             int
	Rows             int
	TileSize         int
	Seed             string
	Grid             *OccupancyGrid
	Hotspots         *Registry
	Border           []Cell
	Footprints       map[Cell]string
	Paths            []Cell
	Decorations      []Decoration
	DecorationTarget int
	Spawn            Point

	paths       map[Cell]bool
	decorations map[Cell]string
}

// Width returns the world width in pixels
func (m *Map) Width() float64 {
	return float64(m.Cols * m.TileSize)
}

// Height returns the world height in pixels
func (m *Map) Height() float64 {
	return float64(m.Rows * m.TileSize)
}

// IsPath reports whether a path tile was drawn at the cell
func (m *Map) IsPath(c Cell) bool {
	return m.paths[c]
}

// DecorationAt returns the decoration kind placed at the cell, if any
func (m *Map) DecorationAt(c Cell) (string, bool) {
	kind, ok := m.decorations[c]
	return kind, ok
}

// HotspotAt returns the name of the hotspot whose footprint covers the cell
func (m *Map) HotspotAt(c Cell) (string, bool) {
	name, ok := m.Footprints[c]
	return name, ok
}

// Stats summarizes the layers of the map
func (m *Map) Stats() Stats {
	return Stats{
		Cols:             m.Cols,
		Rows:             m.Rows,
		TileSize:         m.TileSize,
		Occupied:         m.Grid.Len(),
		FreeInterior:     len(m.Grid.FreeInterior()),
		BorderCells:      len(m.Border),
		FootprintCells:   len(m.Footprints),
		PathCells:        len(m.Paths),
		Decorations:      len(m.Decorations),
		DecorationTarget: m.DecorationTarget,
		Hotspots:         m.Hotspots.Len(),
	}
}

// Builder runs the single-pass map construction sequence
type Builder struct {
	layout Layout
	placer SpritePlacer
}

// NewBuilder creates a builder. A nil placer builds without rendering.
func NewBuilder(layout Layout, placer SpritePlacer) *Builder {
	if placer == nil {
		placer = nopPlacer{}
	}
	return &Builder{layout: layout.WithDefaults(), placer: placer}
}

// Build validates the layout and constructs the map. Construction runs to
// completion before returning; the returned map is never partially built.
func Build(layout Layout, placer SpritePlacer) (*Map, error) {
	return NewBuilder(layout, placer).Build()
}

// Build constructs the map: border, hotspot definition, footprint occupancy,
// path network, decoration scatter, building sprites, spawn.
func (b *Builder) Build() (*Map, error) {
	l := b.layout
	if err := l.Validate(); err != nil {
		return nil, err
	}

	seed := resolveSeed(l.Seed)
	m := &Map{
		Cols:             l.Cols,
		Rows:             l.Rows,
		TileSize:         l.TileSize,
		Seed:             seed,
		Grid:             NewOccupancyGrid(l.Cols, l.Rows),
		Footprints:       make(map[Cell]string),
		DecorationTarget: l.DecorationCount,
		paths:            make(map[Cell]bool),
		decorations:      make(map[Cell]string),
	}

	b.placer.PlaceSprite(string(TileGrass), Point{X: m.Width() / 2, Y: m.Height() / 2})

	// 1. Border
	b.placeBorder(m)

	// 2. Hotspot definition
	hotspots := make([]Hotspot, 0, len(l.Hotspots))
	for _, spec := range l.Hotspots {
		hotspots = append(hotspots, l.ResolveHotspot(spec))
	}
	m.Hotspots = NewRegistry(hotspots)

	// 3. Footprint occupancy, before paths and scatter
	for _, h := range m.Hotspots.All() {
		for _, c := range h.FootprintCells(l.TileSize) {
			if m.Grid.Mark(c) {
				m.Footprints[c] = h.Name
			}
		}
	}

	// 4. Path network
	b.carvePaths(m)

	// 5. Decoration scatter
	b.scatter(m, NewStreamRNG(seed, streamScatter), NewStreamRNG(seed, streamPalette))

	// Buildings are drawn over the ground layers; draw order has no effect on occupancy.
	for _, h := range m.Hotspots.All() {
		b.placer.PlaceSprite(BuildingSpriteKey(h.Name), Point{X: h.CenterX, Y: h.CenterY})
	}

	// 6. Spawn
	m.Spawn = CellCenter(l.SpawnCell(), l.TileSize)

	stats := m.Stats()
	log.Printf("Built map %dx%d (seed %s): %d hotspots, %d path cells, %d/%d decorations, %d free cells",
		m.Cols, m.Rows, seed, stats.Hotspots, stats.PathCells, stats.Decorations, stats.DecorationTarget, stats.FreeInterior)

	return m, nil
}

// BuildingSpriteKey names the sprite drawn for a hotspot's building
func BuildingSpriteKey(hotspot string) string {
	return fmt.Sprintf("building_%s", hotspot)
}

// placeBorder marks the one-cell-thick impassable boundary
func (b *Builder) placeBorder(m *Map) {
	for col := 0; col < m.Cols; col++ {
		b.borderCell(m, Cell{Col: col, Row: 0})
		b.borderCell(m, Cell{Col: col, Row: m.Rows - 1})
	}
	for row := 1; row < m.Rows-1; row++ {
		b.borderCell(m, Cell{Col: 0, Row: row})
		b.borderCell(m, Cell{Col: m.Cols - 1, Row: row})
	}
}

func (b *Builder) borderCell(m *Map, c Cell) {
	if m.Grid.Mark(c) {
		m.Border = append(m.Border, c)
		b.placer.PlaceTile(TileFence, c)
	}
}

// carvePaths carves the central spine end to end across the interior and one
// connector from the spine to each hotspot's access cell
func (b *Builder) carvePaths(m *Map) {
	ts := m.TileSize
	spineCol := b.layout.SpineCol()
	spineRow := b.layout.SpineRow()
	carver := NewCarver(m.Grid, ts, b.placer)

	record := func(from, to Cell) {
		touched := carver.Carve(CellCenter(from, ts), CellCenter(to, ts))
		cells := make([]Cell, 0, touched.Size())
		touched.Each(func(c Cell) {
			cells = append(cells, c)
		})
		sortCells(cells)
		for _, c := range cells {
			m.paths[c] = true
		}
		m.Paths = append(m.Paths, cells...)
	}

	record(Cell{Col: spineCol, Row: 1}, Cell{Col: spineCol, Row: m.Rows - 2})
	record(Cell{Col: 1, Row: spineRow}, Cell{Col: m.Cols - 2, Row: spineRow})

	for _, h := range m.Hotspots.All() {
		access := h.AccessCell(ts)
		record(Cell{Col: spineCol, Row: access.Row}, access)
	}
}

// scatter places the configured decorations and draws them
func (b *Builder) scatter(m *Map, rng, paletteRNG *rand.Rand) {
	decorations := Scatter(m.Grid, b.layout.DecorationCount, b.layout.AttemptsPerDecoration, b.layout.Palette, rng, paletteRNG)
	for _, d := range decorations {
		m.decorations[d.Cell] = d.Kind
		b.placer.PlaceSprite(d.Kind, CellCenter(d.Cell, m.TileSize))
	}
	m.Decorations = decorations
	if len(decorations) < b.layout.DecorationCount {
		log.Printf("Decoration scatter stopped at %d/%d: no free interior cells left", len(decorations), b.layout.DecorationCount)
	}
}

// Scatter places up to count decorations on free interior cells, marking each
// one occupied. Every decoration samples random interior cells until a free
// one turns up, with at most attempts samples; past that budget it picks from
// the remaining free cells, and scattering stops once none are left.
func Scatter(grid *OccupancyGrid, count, attempts int, palette []string, rng, paletteRNG *rand.Rand) []Decoration {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	var placed []Decoration
	for len(placed) < count {
		cell, ok := sampleFree(grid, attempts, rng)
		if !ok {
			break
		}
		grid.Mark(cell)
		placed = append(placed, Decoration{Cell: cell, Kind: palette[paletteRNG.Intn(len(palette))]})
	}
	return placed
}

// sampleFree rejection-samples one unoccupied interior cell
func sampleFree(grid *OccupancyGrid, attempts int, rng *rand.Rand) (Cell, bool) {
	interiorCols := grid.Cols() - 2
	interiorRows := grid.Rows() - 2
	if interiorCols <= 0 || interiorRows <= 0 {
		return Cell{}, false
	}

	for attempt := 0; attempt < attempts; attempt++ {
		c := Cell{Col: 1 + rng.Intn(interiorCols), Row: 1 + rng.Intn(interiorRows)}
		if !grid.IsOccupied(c) {
			return c, true
		}
	}

	free := grid.FreeInterior()
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}

type nopPlacer struct{}

func (nopPlacer) PlaceTile(TileKind, Cell) {}

func (nopPlacer) PlaceSprite(string, Point) {}
