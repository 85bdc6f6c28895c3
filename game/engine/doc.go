// Package engine runs a scene: it builds the map onto a rendering and physics
// substrate, spawns the actor, and advances the simulation one tick at a time.
//
// Each tick the motion controller consumes input (or is held still while an
// overlay is open), then the substrate moves the actor and reports overlap
// edges against hotspot regions into the proximity controller.
//
// Usage:
//
//	scene, err := engine.NewSceneEngine(engine.Options{Layout: world.DefaultLayout()}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scene.Step(motion.Input{Up: true}, 30)
//	if scene.GetInteraction().Phase == proximity.NearHotspot {
//		scene.Inspect()
//	}
//	state := scene.GetState()
//
// HeadlessSubstrate is the in-memory substrate used by servers, tests and the
// terminal front end; the desktop window draws on top of it.
package engine
