package service

import (
	"context"
	"time"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
)

// SceneService defines all scene-related operations
type SceneService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Scene Operations
	Step(ctx context.Context, sessionID string, input motion.Input, ticks int) (*StepResult, error)
	Inspect(ctx context.Context, sessionID string) (*ActionResult, error)
	CloseOverlay(ctx context.Context, sessionID string) (*ActionResult, error)
	Reset(ctx context.Context, sessionID string) (*ActionResult, error)

	// Scene State
	GetSceneState(ctx context.Context, sessionID string) (*engine.SceneState, error)
	GetMap(ctx context.Context, sessionID string) (*MapView, error)
	RenderMap(ctx context.Context, sessionID string) (*RenderView, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*config.SceneConfig, error)
	SaveConfig(ctx context.Context, configName string, cfg *config.SceneConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, cfg *config.SceneConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles scene configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*config.SceneConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *config.SceneConfig
	SaveConfig(name string, cfg *config.SceneConfig) error
}

// Session represents an active scene with its own engine
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.SceneEngine
	Config         *config.SceneConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
