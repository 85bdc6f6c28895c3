package engine

import (
	"math"

	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/world"
)

// ActorSize is the width and height of the actor's collision body
const ActorSize = 28.0

// SpriteRecord is one sprite placed on the map
type SpriteRecord struct {
	Key string      `json:"key"`
	At  world.Point `json:"at"`
}

type region struct {
	name        string
	rect        world.Rect
	overlapping bool
}

// HeadlessSubstrate is an in-memory arcade physics substrate. It integrates
// the actor at its velocity, keeps it inside the border, and fires overlap
// callbacks only when the actor enters or leaves a region.
type HeadlessSubstrate struct {
	width    float64
	height   float64
	margin   float64
	tiles    map[world.Cell]world.TileKind
	sprites  []SpriteRecord
	regions  []*region
	onBegin  func(string)
	onEnd    func(string)
	anims    map[string]motion.Animation
	spawned  bool
	position world.Point
	vx, vy   float64

	playing    string
	texture    string
	frame      int
	frameClock float64
	following  bool
}

// NewHeadlessSubstrate creates a substrate for a cols×rows map whose
// one-tile border the actor cannot enter
func NewHeadlessSubstrate(cols, rows, tileSize int) *HeadlessSubstrate {
	return &HeadlessSubstrate{
		width:  float64(cols * tileSize),
		height: float64(rows * tileSize),
		margin: float64(tileSize),
		tiles:  make(map[world.Cell]world.TileKind),
		anims:  make(map[string]motion.Animation),
	}
}

// PlaceTile records a ground tile
func (s *HeadlessSubstrate) PlaceTile(kind world.TileKind, c world.Cell) {
	s.tiles[c] = kind
}

// PlaceSprite records a sprite
func (s *HeadlessSubstrate) PlaceSprite(key string, at world.Point) {
	s.sprites = append(s.sprites, SpriteRecord{Key: key, At: at})
}

func (s *HeadlessSubstrate) RegisterAnimations(anims []motion.Animation) {
	for _, a := range anims {
		s.anims[a.Key] = a
	}
}

func (s *HeadlessSubstrate) CreateRegion(name string, rect world.Rect) {
	s.regions = append(s.regions, &region{name: name, rect: rect})
}

func (s *HeadlessSubstrate) OnOverlap(begin, end func(region string)) {
	s.onBegin = begin
	s.onEnd = end
}

func (s *HeadlessSubstrate) SpawnActor(at world.Point) {
	s.spawned = true
	s.position = s.clamp(at)
}

func (s *HeadlessSubstrate) FollowCamera() {
	s.following = true
}

func (s *HeadlessSubstrate) SetVelocity(vx, vy float64) {
	s.vx, s.vy = vx, vy
}

// PlayAnimation starts a registered animation from its first frame. Unknown
// keys are ignored.
func (s *HeadlessSubstrate) PlayAnimation(key string) {
	if _, ok := s.anims[key]; !ok {
		return
	}
	if s.playing == key {
		return
	}
	s.playing = key
	s.frame = 0
	s.frameClock = 0
}

func (s *HeadlessSubstrate) StopAnimation() {
	s.playing = ""
	s.frame = 0
	s.frameClock = 0
}

func (s *HeadlessSubstrate) SetTexture(key string) {
	s.texture = key
}

// Step moves the actor, advances the animation clock and reports overlap edges
func (s *HeadlessSubstrate) Step(dt float64) {
	if !s.spawned || dt <= 0 {
		return
	}

	s.position = s.clamp(world.Point{X: s.position.X + s.vx*dt, Y: s.position.Y + s.vy*dt})

	if anim, ok := s.anims[s.playing]; ok && anim.FrameRate > 0 && anim.Frames > 0 {
		s.frameClock += dt
		period := 1 / float64(anim.FrameRate)
		for s.frameClock >= period {
			s.frameClock -= period
			s.frame++
			if s.frame >= anim.Frames {
				if anim.Loop {
					s.frame = 0
				} else {
					s.frame = anim.Frames - 1
				}
			}
		}
	}

	body := s.actorRect()
	for _, r := range s.regions {
		inside := body.Overlaps(r.rect)
		switch {
		case inside && !r.overlapping:
			r.overlapping = true
			if s.onBegin != nil {
				s.onBegin(r.name)
			}
		case !inside && r.overlapping:
			r.overlapping = false
			if s.onEnd != nil {
				s.onEnd(r.name)
			}
		}
	}
}

// clamp keeps the actor body inside the border
func (s *HeadlessSubstrate) clamp(p world.Point) world.Point {
	half := ActorSize / 2
	p.X = math.Max(s.margin+half, math.Min(s.width-s.margin-half, p.X))
	p.Y = math.Max(s.margin+half, math.Min(s.height-s.margin-half, p.Y))
	return p
}

func (s *HeadlessSubstrate) actorRect() world.Rect {
	return world.Rect{CenterX: s.position.X, CenterY: s.position.Y, Width: ActorSize, Height: ActorSize}
}

func (s *HeadlessSubstrate) ActorPosition() world.Point {
	return s.position
}

// Velocity returns the actor's current velocity
func (s *HeadlessSubstrate) Velocity() (float64, float64) {
	return s.vx, s.vy
}

// Texture returns the actor's static texture key
func (s *HeadlessSubstrate) Texture() string {
	return s.texture
}

// Animation returns the playing animation key and its current frame
func (s *HeadlessSubstrate) Animation() (string, int) {
	return s.playing, s.frame
}

// TileAt returns the ground tile drawn at the cell
func (s *HeadlessSubstrate) TileAt(c world.Cell) (world.TileKind, bool) {
	kind, ok := s.tiles[c]
	return kind, ok
}

// Sprites returns every placed sprite in draw order
func (s *HeadlessSubstrate) Sprites() []SpriteRecord {
	return append([]SpriteRecord(nil), s.sprites...)
}

// Overlapping returns the names of regions the actor currently overlaps
func (s *HeadlessSubstrate) Overlapping() []string {
	var names []string
	for _, r := range s.regions {
		if r.overlapping {
			names = append(names, r.name)
		}
	}
	return names
}

// Camera returns the top-left world coordinate of a view of the given size
// centred on the actor and kept inside the world. Without FollowCamera the
// view stays at the origin.
func (s *HeadlessSubstrate) Camera(viewWidth, viewHeight float64) world.Point {
	if !s.following {
		return world.Point{}
	}
	return world.Point{
		X: cameraAxis(s.position.X, viewWidth, s.width),
		Y: cameraAxis(s.position.Y, viewHeight, s.height),
	}
}

func cameraAxis(center, view, extent float64) float64 {
	if view >= extent {
		return -(view - extent) / 2
	}
	return math.Max(0, math.Min(extent-view, center-view/2))
}
