package ascii

import (
	"strings"
	"unicode"

	"github.com/lmaccart/hack-rice15/game/world"
)

// Glyphs for the fixed map layers
const (
	Border  = '#'
	Grass   = '.'
	Path    = '='
	Actor   = '@'
	Unknown = '?'
)

// DecorationGlyphs maps decoration kinds to their glyph. Kinds outside the
// default palette render as Unknown.
var DecorationGlyphs = map[string]rune{
	"tree":    'T',
	"pine":    'A',
	"bush":    '*',
	"rock":    'o',
	"flowers": '"',
}

// HotspotGlyph returns the glyph drawn over a hotspot's footprint
func HotspotGlyph(name string) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return Unknown
}

// CellGlyph returns the character for one cell of a built map, ignoring the actor
func CellGlyph(m *world.Map, c world.Cell) rune {
	if c.Col < 0 || c.Row < 0 || c.Col >= m.Cols || c.Row >= m.Rows {
		return Border
	}
	if c.Col == 0 || c.Row == 0 || c.Col == m.Cols-1 || c.Row == m.Rows-1 {
		return Border
	}
	if name, ok := m.HotspotAt(c); ok {
		return HotspotGlyph(name)
	}
	if m.IsPath(c) {
		return Path
	}
	if kind, ok := m.DecorationAt(c); ok {
		if glyph, ok := DecorationGlyphs[kind]; ok {
			return glyph
		}
		return Unknown
	}
	return Grass
}

// Render draws the whole map one line per row. A nil actor omits the '@'.
func Render(m *world.Map, actor *world.Point) []string {
	if m == nil {
		return nil
	}
	actorCell := world.Cell{Col: -1, Row: -1}
	if actor != nil {
		actorCell = world.CellAt(*actor, m.TileSize)
	}

	lines := make([]string, 0, m.Rows)
	for row := 0; row < m.Rows; row++ {
		var b strings.Builder
		for col := 0; col < m.Cols; col++ {
			c := world.Cell{Col: col, Row: row}
			if c == actorCell {
				b.WriteRune(Actor)
				continue
			}
			b.WriteRune(CellGlyph(m, c))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Window draws the (2*radius+1) square around the actor. Cells outside the
// grid render as border.
func Window(m *world.Map, actor world.Point, radius int) []string {
	if m == nil || radius < 0 {
		return nil
	}
	center := world.CellAt(actor, m.TileSize)
	lines := make([]string, 0, 2*radius+1)
	for dy := -radius; dy <= radius; dy++ {
		var b strings.Builder
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				b.WriteRune(Actor)
				continue
			}
			b.WriteRune(CellGlyph(m, world.Cell{Col: center.Col + dx, Row: center.Row + dy}))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Legend describes every glyph that can appear in a rendering of m
func Legend(m *world.Map) map[string]string {
	legend := map[string]string{
		string(Border): "fence",
		string(Grass):  "grass",
		string(Path):   "path",
		string(Actor):  "you",
	}
	for kind, glyph := range DecorationGlyphs {
		legend[string(glyph)] = kind
	}
	if m != nil {
		for _, h := range m.Hotspots.All() {
			key := string(HotspotGlyph(h.Name))
			if existing, ok := legend[key]; ok && existing != h.Label {
				legend[key] = existing + " / " + h.Label
				continue
			}
			legend[key] = h.Label
		}
	}
	return legend
}

// String joins rendered lines with newlines
func String(lines []string) string {
	return strings.Join(lines, "\n")
}
