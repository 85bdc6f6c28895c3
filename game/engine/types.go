package engine

import (
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/game/world"
)

const (
	// TickRate is the fixed simulation rate used by servers and front ends
	TickRate = 60
	// MaxTicksPerStep bounds a single bulk step request
	MaxTicksPerStep = 600
	// MaxTransitionHistory bounds the retained interaction transitions
	MaxTransitionHistory = 100
	// WebSocketBufferSize is the per-client outbound message buffer
	WebSocketBufferSize = 256
)

// TickDuration is the simulated time of one fixed tick in seconds
const TickDuration = 1.0 / TickRate

// Options configures a scene
type Options struct {
	Layout world.Layout
	Speed  float64
}

// ActorState describes the actor at the end of a tick
type ActorState struct {
	Position world.Point  `json:"position"`
	Cell     world.Cell   `json:"cell"`
	Motion   motion.State `json:"motion"`
	Frame    int          `json:"frame"`
}

// SceneState is a snapshot of the whole scene
type SceneState struct {
	Tick        uint64                     `json:"tick"`
	Elapsed     float64                    `json:"elapsed"`
	Seed        string                     `json:"seed"`
	Actor       ActorState                 `json:"actor"`
	Interaction proximity.InteractionState `json:"interaction"`
	Overlapping []string                   `json:"overlapping,omitempty"`
	Stats       world.Stats                `json:"stats"`
}
