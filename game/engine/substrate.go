package engine

import (
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/world"
)

// Substrate is the rendering and physics capability the scene runs on. It
// draws the map, moves and animates the actor, and reports when the actor
// starts or stops overlapping a named region.
type Substrate interface {
	world.SpritePlacer
	motion.Animator

	// RegisterAnimations declares the walk cycles before the actor is spawned
	RegisterAnimations(anims []motion.Animation)
	// CreateRegion adds an invisible region that reports overlaps with the actor
	CreateRegion(name string, rect world.Rect)
	// OnOverlap registers the callbacks fired on overlap begin and end edges
	OnOverlap(begin, end func(region string))
	SpawnActor(at world.Point)
	FollowCamera()
	// Step advances physics by dt seconds
	Step(dt float64)
	ActorPosition() world.Point
}
