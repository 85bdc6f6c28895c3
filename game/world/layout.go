package world

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrLayoutInvalid marks a construction-time layout configuration error
var ErrLayoutInvalid = errors.New("invalid layout")

// HotspotSpec places a named point of interest relative to the world size
type HotspotSpec struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Overlay     string  `json:"overlay"`
	AnchorX     float64 `json:"anchor_x"`
	AnchorY     float64 `json:"anchor_y"`
	WidthTiles  int     `json:"width_tiles"`
	HeightTiles int     `json:"height_tiles"`
}

// Layout holds every input of map construction
type Layout struct {
	Cols                  int
	Rows                  int
	TileSize              int
	Seed                  string
	DecorationCount       int
	Palette               []string
	AttemptsPerDecoration int
	SpawnOffsetRows       int
	Hotspots              []HotspotSpec
}

// DefaultHotspots is the six-building town arranged symmetrically about the grid center
func DefaultHotspots() []HotspotSpec {
	return []HotspotSpec{
		{Name: "budgeting", Label: "Budgeting Tool", Overlay: "budgeting-tool", AnchorX: 0.25, AnchorY: 0.2, WidthTiles: 2, HeightTiles: 2},
		{Name: "credituniversity", Label: "Credit University", Overlay: "credit-university", AnchorX: 0.75, AnchorY: 0.2, WidthTiles: 2, HeightTiles: 2},
		{Name: "creditscorecalculator", Label: "Credit Score Bank", Overlay: "credit-score-calculator", AnchorX: 0.25, AnchorY: 0.5, WidthTiles: 2, HeightTiles: 2},
		{Name: "alternativecreditreporting", Label: "Alternative Credit Reporting", Overlay: "alternative-credit-reporting", AnchorX: 0.75, AnchorY: 0.5, WidthTiles: 2, HeightTiles: 2},
		{Name: "townhall", Label: "Town Hall", Overlay: "town-hall", AnchorX: 0.25, AnchorY: 0.8, WidthTiles: 2, HeightTiles: 2},
		{Name: "wizard", Label: "Wizard's Tower", Overlay: "wizard-chat", AnchorX: 0.75, AnchorY: 0.8, WidthTiles: 2, HeightTiles: 2},
	}
}

// DefaultLayout returns the layout used when no configuration is supplied
func DefaultLayout() Layout {
	return Layout{
		Cols:                  24,
		Rows:                  18,
		TileSize:              DefaultTileSize,
		DecorationCount:       DefaultDecorationCount,
		Palette:               append([]string(nil), DefaultPalette...),
		AttemptsPerDecoration: DefaultAttemptsPerDecoration,
		SpawnOffsetRows:       DefaultSpawnOffsetRows,
		Hotspots:              DefaultHotspots(),
	}
}

// WithDefaults fills zero-valued optional fields
func (l Layout) WithDefaults() Layout {
	if l.TileSize == 0 {
		l.TileSize = DefaultTileSize
	}
	if len(l.Palette) == 0 {
		l.Palette = append([]string(nil), DefaultPalette...)
	}
	if l.AttemptsPerDecoration <= 0 {
		l.AttemptsPerDecoration = DefaultAttemptsPerDecoration
	}
	return l
}

// SpineCol is the column of the vertical spine path
func (l Layout) SpineCol() int {
	return l.Cols / 2
}

// SpineRow is the row of the horizontal spine path
func (l Layout) SpineRow() int {
	return l.Rows / 2
}

// SpawnCell is the fixed interior cell the actor starts on
func (l Layout) SpawnCell() Cell {
	return Cell{Col: l.SpineCol(), Row: l.SpineRow() + l.SpawnOffsetRows}
}

// ResolveHotspot converts a spec into a world-space hotspot. The footprint is
// snapped so its top-left corner lies on a tile boundary.
func (l Layout) ResolveHotspot(spec HotspotSpec) Hotspot {
	ts := float64(l.TileSize)
	minCol := math.Round(spec.AnchorX*float64(l.Cols) - float64(spec.WidthTiles)/2)
	minRow := math.Round(spec.AnchorY*float64(l.Rows) - float64(spec.HeightTiles)/2)
	width := float64(spec.WidthTiles) * ts
	height := float64(spec.HeightTiles) * ts

	label := spec.Label
	if label == "" {
		label = spec.Name
	}
	overlay := spec.Overlay
	if overlay == "" {
		overlay = spec.Name
	}

	return Hotspot{
		Name:    spec.Name,
		Label:   label,
		Overlay: overlay,
		CenterX: minCol*ts + width/2,
		CenterY: minRow*ts + height/2,
		Width:   width,
		Height:  height,
	}
}

// Validate checks the layout for invariant violations that make construction
// impossible: bad dimensions, duplicate or unnamed hotspots, footprints that
// leave the interior or share a cell, connectors whose access cell is off the
// interior, and a spawn cell inside a building. All problems are reported.
//
// Footprints include the cells under both edges of a building, so hotspots
// whose rectangles merely touch still conflict. Leave a one-tile gap.
func (l Layout) Validate() error {
	l = l.WithDefaults()

	var errs error
	if l.Cols < MinGridSize || l.Cols > MaxGridSize {
		errs = multierr.Append(errs, fmt.Errorf("cols must be between %d and %d, got %d", MinGridSize, MaxGridSize, l.Cols))
	}
	if l.Rows < MinGridSize || l.Rows > MaxGridSize {
		errs = multierr.Append(errs, fmt.Errorf("rows must be between %d and %d, got %d", MinGridSize, MaxGridSize, l.Rows))
	}
	if l.TileSize < MinTileSize || l.TileSize > MaxTileSize {
		errs = multierr.Append(errs, fmt.Errorf("tile_size must be between %d and %d, got %d", MinTileSize, MaxTileSize, l.TileSize))
	}
	if l.DecorationCount < 0 {
		errs = multierr.Append(errs, fmt.Errorf("decoration_count must not be negative, got %d", l.DecorationCount))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrLayoutInvalid, errs)
	}

	grid := NewOccupancyGrid(l.Cols, l.Rows)
	owners := make(map[Cell]string)
	seen := make(map[string]bool)
	spawn := l.SpawnCell()

	for i, spec := range l.Hotspots {
		if spec.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %d has no name", i))
			continue
		}
		if seen[spec.Name] {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q is defined more than once", spec.Name))
			continue
		}
		seen[spec.Name] = true

		if spec.WidthTiles < 1 || spec.HeightTiles < 1 {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q must be at least one tile wide and tall", spec.Name))
			continue
		}

		h := l.ResolveHotspot(spec)
		for _, c := range h.FootprintCells(l.TileSize) {
			if !grid.IsInterior(c) {
				errs = multierr.Append(errs, fmt.Errorf("hotspot %q footprint leaves the grid interior at (%d,%d)", spec.Name, c.Col, c.Row))
				break
			}
		}
		for _, c := range h.FootprintCells(l.TileSize) {
			if other, taken := owners[c]; taken {
				errs = multierr.Append(errs, fmt.Errorf("hotspot %q footprint shares cell (%d,%d) with hotspot %q", spec.Name, c.Col, c.Row, other))
				break
			}
		}
		for _, c := range h.FootprintCells(l.TileSize) {
			if _, taken := owners[c]; !taken {
				owners[c] = spec.Name
			}
		}

		access := h.AccessCell(l.TileSize)
		if !grid.IsInterior(access) {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q connector target (%d,%d) lies outside the grid interior", spec.Name, access.Col, access.Row))
		}
	}

	for _, spec := range l.Hotspots {
		if !seen[spec.Name] || spec.WidthTiles < 1 || spec.HeightTiles < 1 {
			continue
		}
		access := l.ResolveHotspot(spec).AccessCell(l.TileSize)
		if owner, taken := owners[access]; taken && owner != spec.Name {
			errs = multierr.Append(errs, fmt.Errorf("hotspot %q connector target (%d,%d) lies inside hotspot %q", spec.Name, access.Col, access.Row, owner))
		}
	}

	if !grid.IsInterior(spawn) {
		errs = multierr.Append(errs, fmt.Errorf("spawn cell (%d,%d) lies outside the grid interior", spawn.Col, spawn.Row))
	} else if owner, taken := owners[spawn]; taken {
		errs = multierr.Append(errs, fmt.Errorf("spawn cell (%d,%d) lies inside hotspot %q", spawn.Col, spawn.Row, owner))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrLayoutInvalid, errs)
	}
	return nil
}
