// Package websocket pushes scene updates to UI clients.
//
// A Hub groups clients by session ID. Clients connect with ?session=<id> and
// receive JSON Messages:
//
//	{"session_id": "ab12", "event": "state_update", "scene_state": {...}}
//	{"session_id": "ab12", "event": "interaction", "data": [SceneEvent, ...]}
//
// Clients never send input over the socket; the REST API drives the scene
// and the server broadcasts after every step, inspect, close and reset.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.BroadcastState(sessionID, &state)
package websocket
