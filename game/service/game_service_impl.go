package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/render/ascii"
)

// ErrInvalidTicks is returned when a step asks for fewer than one tick
var ErrInvalidTicks = errors.New("ticks must be at least 1")

// sceneServiceImpl implements the SceneService interface
type sceneServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
	now      func() time.Time
}

// NewSceneService creates a new scene service instance
func NewSceneService(sessions SessionManager, configs ConfigManager) SceneService {
	return &sceneServiceImpl{
		sessions: sessions,
		configs:  configs,
		now:      time.Now,
	}
}

// getConfigID returns the config_id for a given display name, used for consistent API responses
func (s *sceneServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return config.DefaultConfigName
	}
	return configName
}

// CreateSession builds a new scene from the named configuration
func (s *sceneServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg *config.SceneConfig
	var err error
	if configName != "" {
		cfg, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, config.ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, c := range availableConfigs {
						configIDs = append(configIDs, c.ConfigID)
					}
					return nil, fmt.Errorf("%w: config '%s' not found. Available configs: %v", config.ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations", config.ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		cfg = s.configs.GetDefault()
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(cfg.Name)
	}

	sess, err := s.sessions.Create("", configID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *sceneServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *sceneServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *sceneServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Step holds input for up to engine.MaxTicksPerStep fixed ticks
func (s *sceneServiceImpl) Step(ctx context.Context, sessionID string, input motion.Input, ticks int) (*StepResult, error) {
	if ticks < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidTicks, ticks)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	result := &StepResult{
		RequestedTicks: ticks,
		Input:          input,
		StartPos:       sess.Engine.GetActorPosition(),
	}
	if ticks > engine.MaxTicksPerStep {
		result.Truncated = true
		result.Limit = engine.MaxTicksPerStep
	}

	mark := sess.Engine.TransitionCount()
	result.TicksRun = sess.Engine.Step(input, ticks)
	result.EndPos = sess.Engine.GetActorPosition()
	result.SceneState = sess.Engine.GetState()
	result.Events = s.eventsSince(sess.Engine, mark)
	result.Message = stateMessage(result.SceneState.Interaction)

	return result, nil
}

// Inspect opens the overlay of the hotspot the actor stands at
func (s *sceneServiceImpl) Inspect(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	mark := sess.Engine.TransitionCount()
	ok := sess.Engine.Inspect()
	state := sess.Engine.GetState()

	result := &ActionResult{
		Success:    ok,
		SceneState: state,
		Events:     s.eventsSince(sess.Engine, mark),
	}
	switch {
	case ok:
		result.Message = fmt.Sprintf("Opened %s", state.Interaction.CurrentLabel)
	case state.Interaction.Phase == proximity.OverlayOpen:
		result.Message = "An overlay is already open"
	default:
		result.Message = "Nothing to inspect here"
	}
	return result, nil
}

// CloseOverlay closes the open overlay
func (s *sceneServiceImpl) CloseOverlay(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	mark := sess.Engine.TransitionCount()
	ok := sess.Engine.CloseOverlay()

	result := &ActionResult{
		Success:    ok,
		SceneState: sess.Engine.GetState(),
		Events:     s.eventsSince(sess.Engine, mark),
	}
	if ok {
		result.Message = "Overlay closed"
	} else {
		result.Message = "No overlay is open"
	}
	return result, nil
}

// Reset rebuilds the session's scene with the same seed, returning the actor to spawn
func (s *sceneServiceImpl) Reset(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	opts := sess.Config.Options()
	opts.Layout.Seed = sess.Engine.GetMap().Seed
	eng, err := engine.NewSceneEngine(opts, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild scene: %w", err)
	}
	sess.Engine = eng

	spawn := eng.GetMap().Spawn
	return &ActionResult{
		Success:    true,
		Message:    "Scene reset successfully",
		SceneState: eng.GetState(),
		Events: []SceneEvent{{
			Type:      EventReset,
			Message:   fmt.Sprintf("Back at spawn (%.0f,%.0f)", spawn.X, spawn.Y),
			Tick:      eng.GetTick(),
			Timestamp: s.now(),
		}},
	}, nil
}

// GetSceneState returns the current scene snapshot
func (s *sceneServiceImpl) GetSceneState(ctx context.Context, sessionID string) (*engine.SceneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	return &state, nil
}

// GetMap returns the static layers of the session's map
func (s *sceneServiceImpl) GetMap(ctx context.Context, sessionID string) (*MapView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	m := sess.Engine.GetMap()
	return &MapView{
		Cols:        m.Cols,
		Rows:        m.Rows,
		TileSize:    m.TileSize,
		Seed:        m.Seed,
		Spawn:       m.Spawn,
		Hotspots:    m.Hotspots.All(),
		Paths:       m.Paths,
		Decorations: m.Decorations,
		Stats:       m.Stats(),
	}, nil
}

// RenderMap draws the session's map and actor as text
func (s *sceneServiceImpl) RenderMap(ctx context.Context, sessionID string) (*RenderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	m := sess.Engine.GetMap()
	pos := sess.Engine.GetActorPosition()
	return &RenderView{
		Lines:       ascii.Render(m, &pos),
		Legend:      ascii.Legend(m),
		Interaction: sess.Engine.GetInteraction(),
	}, nil
}

// ListConfigs returns available scene configurations
func (s *sceneServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific scene configuration
func (s *sceneServiceImpl) LoadConfig(ctx context.Context, configName string) (*config.SceneConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a scene configuration to disk
func (s *sceneServiceImpl) SaveConfig(ctx context.Context, configName string, cfg *config.SceneConfig) error {
	return s.configs.SaveConfig(configName, cfg)
}

// touch looks up a session and refreshes its access time. Callers hold the
// write lock since the access time is read back without the manager's lock.
func (s *sceneServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// eventsSince converts the transitions recorded after mark into scene events
func (s *sceneServiceImpl) eventsSince(eng *engine.SceneEngine, mark uint64) []SceneEvent {
	transitions := eng.TransitionsSince(mark)
	events := make([]SceneEvent, 0, len(transitions))
	for _, t := range transitions {
		events = append(events, s.transitionEvent(eng, t))
	}
	return events
}

func (s *sceneServiceImpl) transitionEvent(eng *engine.SceneEngine, t proximity.Transition) SceneEvent {
	label := t.Hotspot
	if h, ok := eng.GetMap().Hotspots.Lookup(t.Hotspot); ok {
		label = h.Label
	}

	event := SceneEvent{Hotspot: t.Hotspot, Tick: t.Tick, Timestamp: s.now()}
	switch t.Cause {
	case proximity.CauseOverlapBegin:
		event.Type = EventHotspotEnter
		event.Message = fmt.Sprintf("Arrived at %s", label)
	case proximity.CauseOverlapEnd:
		event.Type = EventHotspotLeave
		event.Message = fmt.Sprintf("Left %s", label)
	case proximity.CauseInspect:
		event.Type = EventOverlayOpen
		event.Message = fmt.Sprintf("Opened %s", label)
	case proximity.CauseClose:
		event.Type = EventOverlayClose
		event.Message = fmt.Sprintf("Closed %s", label)
	default:
		event.Type = string(t.Cause)
		event.Message = fmt.Sprintf("%s: %s -> %s", t.Cause, t.From, t.To)
	}
	return event
}

// stateMessage summarizes what the UI layer should show
func stateMessage(state proximity.InteractionState) string {
	switch state.Phase {
	case proximity.NearHotspot:
		return state.Affordance
	case proximity.OverlayOpen:
		return fmt.Sprintf("Viewing %s", state.CurrentLabel)
	default:
		return ""
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		SceneState:     sess.Engine.GetState(),
		SceneConfig:    sess.Config,
	}
}
