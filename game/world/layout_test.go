package world

import (
	"errors"
	"strings"
	"testing"
)

func TestLayout_DefaultIsValid(t *testing.T) {
	if err := DefaultLayout().Validate(); err != nil {
		t.Fatalf("Expected default layout to validate, got %v", err)
	}
}

func TestLayout_ResolveHotspot(t *testing.T) {
	l := DefaultLayout()
	h := l.ResolveHotspot(l.Hotspots[0])

	if h.CenterX != 240 || h.CenterY != 160 {
		t.Errorf("Expected center (240,160), got (%v,%v)", h.CenterX, h.CenterY)
	}
	if h.Width != 80 || h.Height != 80 {
		t.Errorf("Expected 80x80 footprint, got %vx%v", h.Width, h.Height)
	}
	if h.Label != "Budgeting Tool" {
		t.Errorf("Expected label Budgeting Tool, got %s", h.Label)
	}

	cells := h.FootprintCells(l.TileSize)
	if len(cells) != 9 {
		t.Errorf("Expected 9 footprint cells, got %d", len(cells))
	}
	if access := h.AccessCell(l.TileSize); access != (Cell{Col: 6, Row: 6}) {
		t.Errorf("Expected access cell (6,6), got %s", access.Key())
	}

	bare := l.ResolveHotspot(HotspotSpec{Name: "shed", AnchorX: 0.5, AnchorY: 0.5, WidthTiles: 1, HeightTiles: 1})
	if bare.Label != "shed" || bare.Overlay != "shed" {
		t.Errorf("Expected label and overlay to fall back to the name, got %q/%q", bare.Label, bare.Overlay)
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(l *Layout)
		wantErr string
	}{
		{
			name:    "grid too small",
			modify:  func(l *Layout) { l.Cols = 4 },
			wantErr: "cols must be between",
		},
		{
			name:    "grid too large",
			modify:  func(l *Layout) { l.Rows = 500 },
			wantErr: "rows must be between",
		},
		{
			name:    "tile too small",
			modify:  func(l *Layout) { l.TileSize = 2 },
			wantErr: "tile_size must be between",
		},
		{
			name:    "negative decorations",
			modify:  func(l *Layout) { l.DecorationCount = -1 },
			wantErr: "decoration_count",
		},
		{
			name: "unnamed hotspot",
			modify: func(l *Layout) {
				l.Hotspots = append(l.Hotspots, HotspotSpec{AnchorX: 0.5, AnchorY: 0.3, WidthTiles: 1, HeightTiles: 1})
			},
			wantErr: "has no name",
		},
		{
			name: "duplicate hotspot",
			modify: func(l *Layout) {
				l.Hotspots = append(l.Hotspots, l.Hotspots[0])
			},
			wantErr: "defined more than once",
		},
		{
			name: "zero sized hotspot",
			modify: func(l *Layout) {
				l.Hotspots[0].WidthTiles = 0
			},
			wantErr: "at least one tile",
		},
		{
			name: "overlapping hotspots",
			modify: func(l *Layout) {
				l.Hotspots[1].AnchorX = 0.3
			},
			wantErr: "footprint shares cell",
		},
		{
			name: "footprint outside interior",
			modify: func(l *Layout) {
				l.Hotspots[0].AnchorX = 0.0
			},
			wantErr: "leaves the grid interior",
		},
		{
			name: "connector target on the border",
			modify: func(l *Layout) {
				l.Hotspots[4].AnchorY = 0.85
			},
			wantErr: "connector target",
		},
		{
			name: "spawn inside hotspot",
			modify: func(l *Layout) {
				l.Hotspots = append(l.Hotspots, HotspotSpec{Name: "fountain", AnchorX: 0.5, AnchorY: 0.6, WidthTiles: 1, HeightTiles: 1})
			},
			wantErr: "spawn cell",
		},
		{
			name:    "spawn below interior",
			modify:  func(l *Layout) { l.SpawnOffsetRows = 20 },
			wantErr: "spawn cell",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := DefaultLayout()
			test.modify(&l)

			err := l.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrLayoutInvalid) {
				t.Errorf("Expected ErrLayoutInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestLayout_ValidateReportsAllProblems(t *testing.T) {
	l := DefaultLayout()
	l.Hotspots[1].AnchorX = 0.3
	l.SpawnOffsetRows = 20

	err := l.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "shares cell") || !strings.Contains(msg, "spawn cell") {
		t.Errorf("Expected both problems reported, got %v", err)
	}
}

func TestLayout_ValidateTouchingHotspots(t *testing.T) {
	l := DefaultLayout()
	l.Hotspots = []HotspotSpec{
		{Name: "west", AnchorX: 0.25, AnchorY: 0.25, WidthTiles: 2, HeightTiles: 2},
		{Name: "east", AnchorX: 8.0 / 24, AnchorY: 0.25, WidthTiles: 2, HeightTiles: 2},
	}

	west := l.ResolveHotspot(l.Hotspots[0])
	east := l.ResolveHotspot(l.Hotspots[1])
	if west.Rect().Overlaps(east.Rect()) {
		t.Fatalf("Expected rectangles to only touch: %+v %+v", west.Rect(), east.Rect())
	}

	err := l.Validate()
	if err == nil {
		t.Fatal("Expected touching footprints to conflict")
	}
	if !strings.Contains(err.Error(), `hotspot "east" footprint shares cell (7,4) with hotspot "west"`) {
		t.Errorf("Unexpected error: %v", err)
	}

	l.Hotspots[1].AnchorX = 9.0 / 24
	if err := l.Validate(); err != nil {
		t.Errorf("Expected a one-tile gap to validate, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry([]Hotspot{
		{Name: "bank", Label: "Bank"},
		{Name: "school", Label: "School"},
		{Name: "bank", Label: "Duplicate"},
	})

	if r.Len() != 2 {
		t.Errorf("Expected 2 hotspots, got %d", r.Len())
	}
	h, ok := r.Lookup("bank")
	if !ok || h.Label != "Bank" {
		t.Errorf("Expected first definition to win, got %+v", h)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Expected lookup of unknown hotspot to fail")
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "bank" || names[1] != "school" {
		t.Errorf("Expected definition order, got %v", names)
	}

	var empty *Registry
	if empty.Len() != 0 || empty.All() != nil {
		t.Error("Expected nil registry to be empty")
	}
}

func TestSeedValue_Stable(t *testing.T) {
	if SeedValue("town", "scatter") != SeedValue("town", "scatter") {
		t.Error("Expected identical seeds for identical inputs")
	}
	if SeedValue("town", "scatter") == SeedValue("town", "palette") {
		t.Error("Expected stream labels to separate seeds")
	}
}
