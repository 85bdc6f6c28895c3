// Package mcp exposes the scene to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API and the JSON response is formatted as text for the agent.
//
// Tools:
//   - create_session, list_sessions, get_session, list_configs
//   - scene_state: actor position, cell, facing and interaction phase
//   - step: hold a direction for a number of ticks
//   - walk_route: several step segments in order
//   - inspect, close_overlay: open and close a building's overlay
//   - reset_scene: back to spawn on the same map
//   - view_map: ASCII rendering with legend
//   - list_hotspots: building centers and access cells
//   - scene_instructions: longer guide
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
