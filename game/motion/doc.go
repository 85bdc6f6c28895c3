// Package motion converts directional input into actor velocity and runs the
// walk/idle animation state machine.
//
// Four held controls resolve to one of eight compass directions. While the
// actor moves, the walk cycle for its direction loops; when it stops, the idle
// texture for the last direction is shown so the actor keeps facing the way it
// was walking. A suspended controller ignores input until resumed.
package motion
