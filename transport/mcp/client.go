package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hack Rice Town",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hack Rice Town - MCP Interface

This is a thin client that proxies all requests to the REST API server.

THE SCENE:
A small top-down town. An actor (@) walks between buildings connected by
paths. Standing on a building shows an affordance such as
"Inspect Credit Score Bank"; inspecting opens that building's overlay,
which must be closed before walking again.

AVAILABLE TOOLS:
- create_session: Create a new scene session
- list_sessions / get_session: Inspect active sessions
- scene_state: Actor position, facing and interaction phase
- step: Hold a direction for a number of ticks (60 ticks = 1 second)
- walk_route: Run several step segments in order
- inspect: Open the overlay of the building you stand on
- close_overlay: Close the open overlay
- reset_scene: Put the actor back at the spawn point
- view_map: Text map with the actor, plus a legend
- list_hotspots: Buildings with their centers and footprints
- list_configs: Available scene configurations
- scene_instructions: Longer guide to moving around the town`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new scene session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active scene sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Scene operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scene_state",
		Description: "Get the current scene state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleSceneState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Hold a direction for a number of ticks. Movement is ignored while an overlay is open.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"direction": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"up", "down", "left", "right",
						"north", "north-east", "east", "south-east",
						"south", "south-west", "west", "north-west", "none",
					},
					"description": "Direction to hold",
				},
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of ticks to hold it (default 1, max %d)", engine.MaxTicksPerStep),
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "walk_route",
		Description: "Run several step segments in order, stopping at the first error",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"segments": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"direction": map[string]interface{}{"type": "string"},
							"ticks":     map[string]interface{}{"type": "integer"},
						},
						"required": []string{"direction"},
					},
					"description": "Segments such as {\"direction\":\"up\",\"ticks\":23}",
				},
			},
			Required: []string{"session_id", "segments"},
		},
	}, c.handleWalkRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "inspect",
		Description: "Open the overlay of the building the actor stands on",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleInspect)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "close_overlay",
		Description: "Close the open overlay and resume movement",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleCloseOverlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_scene",
		Description: "Reset the scene, keeping the same map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "view_map",
		Description: "Render the map as text with the actor (@) and a legend",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleViewMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_hotspots",
		Description: "List the buildings of a session's map with their centers, footprints and access cells",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleListHotspots)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available scene configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scene_instructions",
		Description: "Get a guide to moving around the town and using buildings",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSceneInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments as a map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument, falling back to def
func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// sessionPath builds a per-session API path
func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + sessionID + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatSceneState(&session.SceneState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&result, "- %s (Config: %s, Created: %s, Phase: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), s.SceneState.Interaction.Phase)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleSceneState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.SceneState
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSceneState(&state)), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/step")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{
		"direction": direction,
		"ticks":     intArg(args, "ticks", 1),
	}

	var result service.StepResult
	if err := c.apiCall(ctx, http.MethodPost, path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStepResult(&result)), nil
}

func (c *Client) handleWalkRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/step")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	segments, _ := args["segments"].([]interface{})
	if len(segments) == 0 {
		return mcp.NewToolResultError("segments must not be empty"), nil
	}

	var out strings.Builder
	var last *service.StepResult
	for i, raw := range segments {
		seg, _ := raw.(map[string]interface{})
		if seg == nil {
			return mcp.NewToolResultError(fmt.Sprintf("segment %d is not an object", i+1)), nil
		}
		direction, _ := seg["direction"].(string)
		body := map[string]interface{}{
			"direction": direction,
			"ticks":     intArg(seg, "ticks", 1),
		}

		var result service.StepResult
		if err := c.apiCall(ctx, http.MethodPost, path, body, &result); err != nil {
			fmt.Fprintf(&out, "Segment %d (%s) failed: %v\n", i+1, direction, err)
			break
		}
		last = &result
		fmt.Fprintf(&out, "%d. %s x%d: (%.1f,%.1f) -> (%.1f,%.1f)%s\n",
			i+1, direction, result.TicksRun,
			result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y,
			formatEventSuffix(result.Events))
	}

	if last != nil {
		out.WriteString("\n")
		out.WriteString(formatSceneState(&last.SceneState))
	}
	return mcp.NewToolResultText(out.String()), nil
}

func (c *Client) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/inspect")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleCloseOverlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/close")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string               `json:"message"`
		State   engine.SceneState    `json:"state"`
		Events  []service.SceneEvent `json:"events"`
	}
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message + formatEventSuffix(response.Events) + "\n\n" + formatSceneState(&response.State)), nil
}

func (c *Client) handleViewMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/render")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var view service.RenderView
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRenderView(&view)), nil
}

func (c *Client) handleListHotspots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/map")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var view service.MapView
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHotspots(&view)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&result, "- %s: %s (%dx%d, %d buildings)\n",
			cfg.ConfigID, cfg.Name, cfg.Cols, cfg.Rows, cfg.Hotspots)
		if cfg.Description != "" {
			fmt.Fprintf(&result, "  %s\n", cfg.Description)
		}
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleSceneInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Hack Rice Town - Guide

THE MAP:
The town is a grid of square tiles bordered by a fence. Buildings sit on
fixed anchors, paths connect each building to the plaza below the spawn
point, and trees, bushes and rocks are scattered over the free grass.

MAP LEGEND (view_map):
  #  fence / border
  .  grass
  =  path
  @  the actor
  A-Z  building footprints (first letter of the building name)
  T A * o "  decorations (tree, pine, bush, rock, flowers)

MOVEMENT:
- step holds a direction for a number of ticks; %d ticks make one second
- up/down/left/right and the eight compass names are accepted
- diagonals combine two axes at full speed on each
- a single step is capped at %d ticks; longer requests are truncated
- the actor cannot leave the fence; buildings and decorations do not block

INTERACTION:
- walking onto a building footprint shows "Inspect <building>"
- inspect opens the overlay and freezes movement
- close_overlay closes it; walking resumes on the next step
- leaving the footprint clears the affordance

TIPS:
- list_hotspots gives building centers in world pixels; divide by the tile
  size to get the column and row
- scene_state shows the current cell, so you can correct course
- walk_route chains several steps in one call

Have fun exploring the town!`, engine.TickRate, engine.MaxTicksPerStep)

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nLast access: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.LastAccessedAt.Format("2006-01-02 15:04:05"),
		formatSceneState(&session.SceneState))
}

func formatSceneState(state *engine.SceneState) string {
	if state == nil {
		return "No scene state available"
	}

	var result strings.Builder
	actor := state.Actor
	fmt.Fprintf(&result, "Position: (%.1f,%.1f) | Cell: (%d,%d) | Facing: %s | Tick: %d\n",
		actor.Position.X, actor.Position.Y, actor.Cell.Col, actor.Cell.Row,
		actor.Motion.Facing, state.Tick)

	in := state.Interaction
	fmt.Fprintf(&result, "Phase: %s\n", in.Phase)
	if in.CurrentLabel != "" {
		fmt.Fprintf(&result, "At: %s\n", in.CurrentLabel)
	}
	if in.Affordance != "" {
		fmt.Fprintf(&result, "Affordance: %s\n", in.Affordance)
	}
	if in.OverlayID != "" {
		fmt.Fprintf(&result, "Overlay open: %s\n", in.OverlayID)
	}
	if len(state.Overlapping) > 0 {
		fmt.Fprintf(&result, "Overlapping: %s\n", strings.Join(state.Overlapping, ", "))
	}

	return result.String()
}

func formatStepResult(result *service.StepResult) string {
	var out strings.Builder

	fmt.Fprintf(&out, "Ran %d/%d ticks: (%.1f,%.1f) -> (%.1f,%.1f)\n",
		result.TicksRun, result.RequestedTicks,
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y)
	if result.Truncated {
		fmt.Fprintf(&out, "Truncated to the %d tick limit\n", result.Limit)
	}
	for _, e := range result.Events {
		fmt.Fprintf(&out, "- %s\n", e.Message)
	}
	if result.Message != "" {
		fmt.Fprintf(&out, "Message: %s\n", result.Message)
	}
	out.WriteString("\n")
	out.WriteString(formatSceneState(&result.SceneState))

	return out.String()
}

func formatActionResult(result *service.ActionResult) string {
	var out strings.Builder

	if result.Success {
		out.WriteString("✓ ")
	} else {
		out.WriteString("✗ ")
	}
	out.WriteString(result.Message)
	out.WriteString("\n")
	for _, e := range result.Events {
		fmt.Fprintf(&out, "- %s\n", e.Message)
	}
	out.WriteString("\n")
	out.WriteString(formatSceneState(&result.SceneState))

	return out.String()
}

func formatEventSuffix(events []service.SceneEvent) string {
	if len(events) == 0 {
		return ""
	}
	msgs := make([]string, len(events))
	for i, e := range events {
		msgs[i] = e.Message
	}
	return " [" + strings.Join(msgs, "; ") + "]"
}

func formatRenderView(view *service.RenderView) string {
	var out strings.Builder

	out.WriteString(strings.Join(view.Lines, "\n"))
	out.WriteString("\n\nLegend:\n")
	for _, glyph := range sortedKeys(view.Legend) {
		fmt.Fprintf(&out, "  %s  %s\n", glyph, view.Legend[glyph])
	}
	if view.Interaction.Affordance != "" {
		fmt.Fprintf(&out, "\n%s\n", view.Interaction.Affordance)
	}

	return out.String()
}

func formatHotspots(view *service.MapView) string {
	var out strings.Builder

	fmt.Fprintf(&out, "Map %dx%d, tile %dpx, seed %q, spawn (%.0f,%.0f)\n\n",
		view.Cols, view.Rows, view.TileSize, view.Seed, view.Spawn.X, view.Spawn.Y)
	for _, h := range view.Hotspots {
		access := h.AccessCell(view.TileSize)
		fmt.Fprintf(&out, "- %s (%s): center (%.0f,%.0f), %vx%v px, access cell (%d,%d)\n",
			h.Label, h.Name, h.CenterX, h.CenterY, h.Width, h.Height, access.Col, access.Row)
	}

	return out.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
