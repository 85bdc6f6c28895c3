package proximity

import (
	"github.com/lmaccart/hack-rice15/game/world"
)

// Controller owns the interaction state. It holds at most one current hotspot
// and at most one open overlay, and is driven by overlap edges from the
// physics substrate and by the inspect and close user actions. Every method
// that cannot apply in the current phase is a no-op returning false.
type Controller struct {
	hotspots  *world.Registry
	phase     Phase
	current   world.Hotspot
	tick      uint64
	listeners []func(Transition)
}

// NewController creates an idle controller over a fixed hotspot registry
func NewController(hotspots *world.Registry) *Controller {
	return &Controller{hotspots: hotspots}
}

// Subscribe registers fn to receive every accepted transition
func (c *Controller) Subscribe(fn func(Transition)) {
	c.listeners = append(c.listeners, fn)
}

// SetTick stamps subsequent transitions with the simulation tick
func (c *Controller) SetTick(tick uint64) {
	c.tick = tick
}

// OverlapBegin makes the named hotspot current. It is ignored unless the
// controller is idle, so a second hotspot cannot displace the current one.
func (c *Controller) OverlapBegin(name string) bool {
	if c.phase != Idle {
		return false
	}
	h, ok := c.hotspots.Lookup(name)
	if !ok {
		return false
	}
	c.current = h
	c.transition(NearHotspot, CauseOverlapBegin)
	return true
}

// OverlapEnd clears the current hotspot when the actor leaves it. Ends are
// ignored while an overlay is open.
func (c *Controller) OverlapEnd(name string) bool {
	if c.phase != NearHotspot || c.current.Name != name {
		return false
	}
	c.transition(Idle, CauseOverlapEnd)
	c.current = world.Hotspot{}
	return true
}

// Inspect opens the overlay of the current hotspot
func (c *Controller) Inspect() bool {
	if c.phase != NearHotspot {
		return false
	}
	c.transition(OverlayOpen, CauseInspect)
	return true
}

// Close closes the overlay and clears the current hotspot with it. The actor
// must leave and re-enter a hotspot before it becomes current again.
func (c *Controller) Close() bool {
	if c.phase != OverlayOpen {
		return false
	}
	c.transition(Idle, CauseClose)
	c.current = world.Hotspot{}
	return true
}

func (c *Controller) transition(to Phase, cause Cause) {
	t := Transition{From: c.phase, To: to, Hotspot: c.current.Name, Cause: cause, Tick: c.tick}
	c.phase = to
	for _, fn := range c.listeners {
		fn(t)
	}
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// OverlayOpen reports whether movement and overlap processing are suspended
func (c *Controller) OverlayOpen() bool {
	return c.phase == OverlayOpen
}

// Current returns the current hotspot, if any
func (c *Controller) Current() (world.Hotspot, bool) {
	if c.phase == Idle {
		return world.Hotspot{}, false
	}
	return c.current, true
}

// State returns a snapshot for the UI layer
func (c *Controller) State() InteractionState {
	s := InteractionState{Phase: c.phase}
	switch c.phase {
	case NearHotspot:
		s.CurrentHotspot = c.current.Name
		s.CurrentLabel = c.current.Label
		s.Affordance = AffordanceText(c.current.Label)
	case OverlayOpen:
		s.CurrentHotspot = c.current.Name
		s.CurrentLabel = c.current.Label
		s.ActiveOverlay = c.current.Name
		s.OverlayID = c.current.Overlay
	}
	return s
}
