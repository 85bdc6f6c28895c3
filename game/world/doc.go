// Package world lays out the tile map of a town scene.
//
// Construction is a single synchronous pass driven by a Layout:
//   - a one-cell fence border is placed and marked occupied
//   - hotspots (named points of interest) are resolved from anchors relative to
//     the world size and their footprints marked occupied
//   - a spine path crosses the map vertically and horizontally, and one L-shaped
//     connector joins the spine to each hotspot's access cell
//   - decorations are scattered on the remaining free interior cells
//   - the actor spawn is a fixed cell on the spine
//
// The OccupancyGrid is the single record of which cells are not free ground.
// It only grows, and it is read-only once Build returns.
//
// Usage:
//
//	m, err := world.Build(world.DefaultLayout(), placer)
//	if err != nil {
//		log.Fatal(err) // layout invariant violations are fatal
//	}
//	stats := m.Stats()
//
// Layout problems (overlapping footprints, connectors leaving the grid, a
// spawn inside a building) are reported together, wrapped in ErrLayoutInvalid.
package world
