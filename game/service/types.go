package service

import (
	"time"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/game/world"
)

// SessionInfo provides information about a scene session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	SceneState     engine.SceneState   `json:"scene_state"`
	SceneConfig    *config.SceneConfig `json:"scene_config"`
}

// StepResult contains the result of holding an input for a number of ticks
type StepResult struct {
	TicksRun       int               `json:"ticks_run"`
	RequestedTicks int               `json:"requested_ticks"`
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`
	Input          motion.Input      `json:"input"`
	StartPos       world.Point       `json:"start_pos"`
	EndPos         world.Point       `json:"end_pos"`
	SceneState     engine.SceneState `json:"scene_state"`
	Events         []SceneEvent      `json:"events"`
	Message        string            `json:"message,omitempty"`
}

// ActionResult contains the result of an inspect, close or reset action
type ActionResult struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	SceneState engine.SceneState `json:"scene_state"`
	Events     []SceneEvent      `json:"events"`
}

// Scene event types
const (
	EventHotspotEnter = "hotspot_enter"
	EventHotspotLeave = "hotspot_leave"
	EventOverlayOpen  = "overlay_open"
	EventOverlayClose = "overlay_close"
	EventReset        = "reset"
)

// SceneEvent represents an interaction that occurred during a request
type SceneEvent struct {
	Type      string    `json:"type"`
	Hotspot   string    `json:"hotspot,omitempty"`
	Message   string    `json:"message"`
	Tick      uint64    `json:"tick"`
	Timestamp time.Time `json:"timestamp"`
}

// MapView is the static layout of a session's map
type MapView struct {
	Cols        int                `json:"cols"`
	Rows        int                `json:"rows"`
	TileSize    int                `json:"tile_size"`
	Seed        string             `json:"seed"`
	Spawn       world.Point        `json:"spawn"`
	Hotspots    []world.Hotspot    `json:"hotspots"`
	Paths       []world.Cell       `json:"paths"`
	Decorations []world.Decoration `json:"decorations"`
	Stats       world.Stats        `json:"stats"`
}

// RenderView is a text rendering of a session's map with the actor
type RenderView struct {
	Lines       []string                   `json:"lines"`
	Legend      map[string]string          `json:"legend"`
	Interaction proximity.InteractionState `json:"interaction"`
}

// ConfigInfo provides information about a scene configuration
type ConfigInfo = config.ConfigInfo
