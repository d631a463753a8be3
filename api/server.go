package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hashfront/skirmish-server/game/engine"
	"github.com/hashfront/skirmish-server/game/service"
	"github.com/hashfront/skirmish-server/game/session"
	ws "github.com/hashfront/skirmish-server/transport/websocket"
)

// callerHeader carries the authenticated player identity, injected by the
// hosting runtime. The server attributes actions to it without verifying it.
const callerHeader = "X-Player-Address"

// Server exposes the game service over REST and fans successful mutations
// out to the websocket hub.
type Server struct {
	service service.GameService
	hub     *ws.Hub
	router  *mux.Router
}

func NewServer(svc service.GameService, hub *ws.Hub) *Server {
	s := &Server{
		service: svc,
		hub:     hub,
		router:  mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Router returns the configured handler for mounting.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/templates", s.handleRegisterTemplate).Methods("POST")
	api.HandleFunc("/templates", s.handleListTemplates).Methods("GET")
	api.HandleFunc("/templates/{id}", s.handleGetTemplate).Methods("GET")

	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/join", s.handleJoin).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/attack", s.handleAttack).Methods("POST")
	api.HandleFunc("/sessions/{id}/capture", s.handleCapture).Methods("POST")
	api.HandleFunc("/sessions/{id}/build", s.handleBuild).Methods("POST")
	api.HandleFunc("/sessions/{id}/end-turn", s.handleEndTurn).Methods("POST")
	api.HandleFunc("/sessions/{id}/resign", s.handleResign).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

// respondError translates engine failures into the HTTP taxonomy: malformed
// input 400, wrong caller 403, stale client view 409, rule violations 422,
// unknown ids 404.
func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, engine.ErrTemplateNotFound) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	class := engine.ClassOf(err)
	status := http.StatusBadRequest
	switch class {
	case engine.ClassAuthorization:
		status = http.StatusForbidden
	case engine.ClassState:
		status = http.StatusConflict
	case engine.ClassRule:
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), Class: string(class)})
}

func badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

func caller(r *http.Request) string {
	return r.Header.Get(callerHeader)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return false
	}
	return true
}

// broadcast pushes a completed transition to the session's subscribers.
func (s *Server) broadcast(result *service.ActionResult) {
	if s.hub != nil && result != nil {
		s.hub.BroadcastToSession(result.SessionID, result.Events, result.Game)
	}
}

func (s *Server) handleRegisterTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl engine.MapTemplate
	if !decodeBody(w, r, &tpl) {
		return
	}
	info, err := s.service.RegisterTemplate(r.Context(), &tpl)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[TEMPLATE] registered id=%s name=%q %dx%d\n", info.ID, info.Name, info.Width, info.Height)
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.service.ListTemplates(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.service.GetTemplate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	info, err := s.service.CreateSession(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[CREATE] session=%s template=%s creator=%s\n", info.ID, info.TemplateID, caller(r))
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot int `json:"slot"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	result, err := s.service.JoinSession(r.Context(), caller(r), id, req.Slot)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[JOIN] session=%s slot=%d caller=%s\n", id, req.Slot, caller(r))
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID int               `json:"unit_id"`
		Path   []engine.Position `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	result, err := s.service.MoveUnit(r.Context(), caller(r), id, req.UnitID, req.Path)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[MOVE] session=%s unit=%d steps=%d\n", id, req.UnitID, len(req.Path))
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID   int `json:"unit_id"`
		TargetID int `json:"target_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	result, err := s.service.Attack(r.Context(), caller(r), id, req.UnitID, req.TargetID)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[ATTACK] session=%s unit=%d target=%d\n", id, req.UnitID, req.TargetID)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID int `json:"unit_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	result, err := s.service.Capture(r.Context(), caller(r), id, req.UnitID)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[CAPTURE] session=%s unit=%d\n", id, req.UnitID)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X    int             `json:"x"`
		Y    int             `json:"y"`
		Kind engine.UnitKind `json:"kind"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	result, err := s.service.BuildUnit(r.Context(), caller(r), id, engine.Position{X: req.X, Y: req.Y}, req.Kind)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[BUILD] session=%s factory=(%d,%d) kind=%s\n", id, req.X, req.Y, req.Kind)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, err := s.service.EndTurn(r.Context(), caller(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[END-TURN] session=%s round=%d next=%d\n", id, result.Game.Round, result.Game.CurrentSlot)
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, err := s.service.Resign(r.Context(), caller(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	fmt.Printf("[RESIGN] session=%s caller=%s\n", id, caller(r))
	s.broadcast(result)
	respondJSON(w, http.StatusOK, result)
}

// handleWebSocket validates the session before handing the connection to
// the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		badRequest(w, "session query parameter is required")
		return
	}
	if _, err := s.service.GetState(r.Context(), sessionID); err != nil {
		respondError(w, err)
		return
	}
	s.hub.ServeWS(w, r, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
