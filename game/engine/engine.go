package engine

import (
	"fmt"

	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/game/world"
)

// Engine provides the main interface for scene operations
type Engine interface {
	// Simulation
	Tick(in motion.Input, dt float64)
	Step(in motion.Input, ticks int) int
	GetState() SceneState
	GetTick() uint64

	// User actions
	Inspect() bool
	CloseOverlay() bool

	// Interaction
	GetInteraction() proximity.InteractionState
	GetTransitionHistory() []proximity.Transition
	TransitionCount() uint64
	TransitionsSince(n uint64) []proximity.Transition
	Subscribe(fn func(proximity.Transition))

	// Map
	GetMap() *world.Map
	GetActorPosition() world.Point
}

// SceneEngine implements the Engine interface. It owns the built map, the
// motion and proximity controllers, and the substrate they run on.
type SceneEngine struct {
	scene     *world.Map
	substrate Substrate
	motion    *motion.Controller
	proximity *proximity.Controller
	tick      uint64
	elapsed   float64
	history   []proximity.Transition
	recorded  uint64
}

// NewSceneEngine builds the map onto the substrate and spawns the actor.
// Construction completes before the engine is returned. A nil substrate
// selects a HeadlessSubstrate sized to the layout.
func NewSceneEngine(opts Options, substrate Substrate) (*SceneEngine, error) {
	layout := opts.Layout.WithDefaults()
	if substrate == nil {
		substrate = NewHeadlessSubstrate(layout.Cols, layout.Rows, layout.TileSize)
	}

	substrate.RegisterAnimations(motion.WalkAnimations())

	scene, err := world.Build(layout, substrate)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	for _, h := range scene.Hotspots.All() {
		substrate.CreateRegion(h.Name, h.Rect())
	}
	substrate.SpawnActor(scene.Spawn)
	substrate.FollowCamera()

	e := &SceneEngine{
		scene:     scene,
		substrate: substrate,
		motion:    motion.NewController(substrate, opts.Speed),
		proximity: proximity.NewController(scene.Hotspots),
	}
	e.proximity.Subscribe(e.record)
	substrate.OnOverlap(
		func(name string) { e.proximity.OverlapBegin(name) },
		func(name string) { e.proximity.OverlapEnd(name) },
	)

	return e, nil
}

// NewDefaultSceneEngine creates a headless scene from the default layout
func NewDefaultSceneEngine() (*SceneEngine, error) {
	return NewSceneEngine(Options{Layout: world.DefaultLayout()}, nil)
}

// Tick advances the scene by one frame. Input is ignored while an overlay is open.
func (e *SceneEngine) Tick(in motion.Input, dt float64) {
	e.tick++
	e.proximity.SetTick(e.tick)

	if e.proximity.OverlayOpen() {
		e.motion.Suspend()
	} else {
		e.motion.Resume()
		e.motion.Update(in)
	}

	e.substrate.Step(dt)
	e.elapsed += dt
}

// Step runs up to ticks fixed-duration ticks holding the same input and
// returns how many ran
func (e *SceneEngine) Step(in motion.Input, ticks int) int {
	if ticks > MaxTicksPerStep {
		ticks = MaxTicksPerStep
	}
	for i := 0; i < ticks; i++ {
		e.Tick(in, TickDuration)
	}
	return max(ticks, 0)
}

// Inspect opens the overlay of the current hotspot and stops the actor
func (e *SceneEngine) Inspect() bool {
	if !e.proximity.Inspect() {
		return false
	}
	e.motion.Suspend()
	return true
}

// CloseOverlay closes the open overlay. Movement resumes on the next tick.
func (e *SceneEngine) CloseOverlay() bool {
	return e.proximity.Close()
}

// Subscribe registers fn to receive interaction transitions
func (e *SceneEngine) Subscribe(fn func(proximity.Transition)) {
	e.proximity.Subscribe(fn)
}

func (e *SceneEngine) record(t proximity.Transition) {
	e.recorded++
	e.history = append(e.history, t)
	if len(e.history) > MaxTransitionHistory {
		e.history = e.history[len(e.history)-MaxTransitionHistory:]
	}
}

// GetTransitionHistory returns the most recent interaction transitions
func (e *SceneEngine) GetTransitionHistory() []proximity.Transition {
	return append([]proximity.Transition(nil), e.history...)
}

// TransitionCount returns how many transitions have happened since construction
func (e *SceneEngine) TransitionCount() uint64 {
	return e.recorded
}

// TransitionsSince returns the retained transitions after the first n
func (e *SceneEngine) TransitionsSince(n uint64) []proximity.Transition {
	if n >= e.recorded {
		return nil
	}
	missing := e.recorded - n
	if missing > uint64(len(e.history)) {
		missing = uint64(len(e.history))
	}
	return append([]proximity.Transition(nil), e.history[uint64(len(e.history))-missing:]...)
}

// GetInteraction returns the interaction state
func (e *SceneEngine) GetInteraction() proximity.InteractionState {
	return e.proximity.State()
}

// GetTick returns the number of ticks simulated
func (e *SceneEngine) GetTick() uint64 {
	return e.tick
}

// GetMap returns the built map
func (e *SceneEngine) GetMap() *world.Map {
	return e.scene
}

// GetSubstrate returns the substrate the scene runs on
func (e *SceneEngine) GetSubstrate() Substrate {
	return e.substrate
}

// GetActorPosition returns the actor's world position
func (e *SceneEngine) GetActorPosition() world.Point {
	return e.substrate.ActorPosition()
}

// GetState returns a snapshot of the scene
func (e *SceneEngine) GetState() SceneState {
	pos := e.substrate.ActorPosition()
	state := SceneState{
		Tick:    e.tick,
		Elapsed: e.elapsed,
		Seed:    e.scene.Seed,
		Actor: ActorState{
			Position: pos,
			Cell:     world.CellAt(pos, e.scene.TileSize),
			Motion:   e.motion.State(),
		},
		Interaction: e.proximity.State(),
		Stats:       e.scene.Stats(),
	}
	if hs, ok := e.substrate.(*HeadlessSubstrate); ok {
		_, state.Actor.Frame = hs.Animation()
		state.Overlapping = hs.Overlapping()
	}
	return state
}
