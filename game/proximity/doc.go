// Package proximity tracks which point of interest the actor is standing at
// and whether its informational overlay is open.
//
// The controller moves between three phases:
//
//	Idle --overlap begin--> NearHotspot --inspect--> OverlayOpen
//	NearHotspot --overlap end--> Idle
//	OverlayOpen --close--> Idle
//
// Overlays open only on an explicit inspect action, never on overlap alone.
// Closing an overlay clears the current hotspot too, so a stale "Inspect"
// prompt cannot survive after the actor has walked away.
package proximity
