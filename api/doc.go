// Package api serves the REST surface the UI layer uses to drive a scene.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a scene ({"config_id": "town"})
//   - GET    /api/sessions              list scenes (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET    /api/sessions/{id}         session info with scene state
//   - DELETE /api/sessions/{id}         drop a scene
//
// Scene:
//   - GET  /api/sessions/{id}/state     SceneState snapshot
//   - POST /api/sessions/{id}/step      hold input: {"input": {"up": true}, "ticks": 30}
//     or {"direction": "north-west", "ticks": 30}; at most 600 ticks per call
//   - POST /api/sessions/{id}/inspect   open the current hotspot's overlay
//   - POST /api/sessions/{id}/close     close the open overlay
//   - POST /api/sessions/{id}/reset     rebuild the scene with the same seed
//   - GET  /api/sessions/{id}/map       static map layers
//   - GET  /api/sessions/{id}/render    glyph rendering (?format=text for plain text)
//
// Configuration:
//   - GET  /api/configs                 available scene configs
//   - POST /api/configs                 save a config (?id=<config_id>)
//   - GET  /api/configs/schema          JSON Schema of a scene config
//   - GET  /api/configs/{name}          one config
//
// WebSocket:
//   - GET /ws?session={id}              state_update and interaction events
//
// Errors are JSON objects of the form {"error": "message"}. Unknown sessions
// and configs return 404, invalid input returns 400.
package api
