package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/service"
	"github.com/lmaccart/hack-rice15/game/session"
	"github.com/lmaccart/hack-rice15/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.SceneService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(sceneService service.SceneService, hub *websocket.Hub) *Server {
	s := &Server{
		service: sceneService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Scene operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetSceneState).Methods("GET")
	api.HandleFunc("/sessions/{id}/step", s.handleStep).Methods("POST")
	api.HandleFunc("/sessions/{id}/inspect", s.handleInspect).Methods("POST")
	api.HandleFunc("/sessions/{id}/close", s.handleClose).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/map", s.handleGetMap).Methods("GET")
	api.HandleFunc("/sessions/{id}/render", s.handleRender).Methods("GET")

	// Configuration; the schema route must be registered before {name}
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/schema", s.handleConfigSchema).Methods("GET")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// Router exposes the underlying router so callers can mount extra handlers
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors onto HTTP status codes
func errorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, service.ErrInvalidTicks):
		return http.StatusBadRequest
	default:
		return fallback
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	info, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Scene Operation Handlers

func (s *Server) handleGetSceneState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetSceneState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// StepRequest holds input for a number of ticks. Direction, when set, takes
// precedence over Input.
type StepRequest struct {
	Input     motion.Input `json:"input"`
	Direction string       `json:"direction,omitempty"`
	Ticks     int          `json:"ticks,omitempty"`
}

// ResolveInput returns the held controls the request describes
func (req StepRequest) ResolveInput() (motion.Input, error) {
	if req.Direction == "" || req.Direction == motion.None.String() {
		return req.Input, nil
	}
	name := strings.ToLower(req.Direction)
	if alias, ok := directionAliases[name]; ok {
		return motion.InputFor(alias), nil
	}
	dir, err := motion.ParseDirection(name)
	if err != nil {
		return motion.Input{}, err
	}
	return motion.InputFor(dir), nil
}

// directionAliases accepts arrow-key names alongside compass names
var directionAliases = map[string]motion.Direction{
	"up":    motion.North,
	"down":  motion.South,
	"left":  motion.West,
	"right": motion.East,
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req StepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Ticks == 0 {
		req.Ticks = 1
	}

	input, err := req.ResolveInput()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Step(r.Context(), sessionID, input, req.Ticks)
	if err != nil {
		respondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	s.broadcast(sessionID, &result.SceneState, result.Events)

	log.Printf("[STEP] session=%s facing=%s ticks=%d/%d (%.1f,%.1f)->(%.1f,%.1f) phase=%s events=%d",
		sessionID, result.SceneState.Actor.Motion.Facing, result.TicksRun, result.RequestedTicks,
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y,
		result.SceneState.Interaction.Phase, len(result.Events))

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Inspect(r.Context(), sessionID)
	if err != nil {
		respondError(w, errorStatus(err, http.StatusNotFound), err.Error())
		return
	}

	s.broadcast(sessionID, &result.SceneState, result.Events)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.CloseOverlay(r.Context(), sessionID)
	if err != nil {
		respondError(w, errorStatus(err, http.StatusNotFound), err.Error())
		return
	}

	s.broadcast(sessionID, &result.SceneState, result.Events)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, errorStatus(err, http.StatusNotFound), err.Error())
		return
	}

	s.broadcast(sessionID, &result.SceneState, result.Events)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": result.Message,
		"state":   result.SceneState,
		"events":  result.Events,
	})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	view, err := s.service.GetMap(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	view, err := s.service.RenderMap(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, strings.Join(view.Lines, "\n"))
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// broadcast pushes the new state, and any interaction events, to WebSocket clients
func (s *Server) broadcast(sessionID string, state *engine.SceneState, events []service.SceneEvent) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastState(sessionID, state)
	if len(events) > 0 {
		s.hub.BroadcastEvent(sessionID, websocket.EventInteraction, events)
	}
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := config.ConfigID(mux.Vars(r)["name"])

	cfg, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleConfigSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, config.Schema())
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var sceneConfig config.SceneConfig

	if err := json.NewDecoder(r.Body).Decode(&sceneConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if sceneConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	configID := r.URL.Query().Get("id")
	if configID == "" {
		configID = sceneConfig.Name
	}

	if err := s.service.SaveConfig(r.Context(), configID, &sceneConfig); err != nil {
		respondError(w, errorStatus(err, http.StatusInternalServerError), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": config.ConfigID(configID),
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(context.Background(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
