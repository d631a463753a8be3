package service

import (
	"context"
	"time"

	"github.com/hashfront/skirmish-server/game/engine"
	"github.com/hashfront/skirmish-server/game/session"
)

// GameService is the single write surface of the server. Every mutating
// method takes the caller's identity as supplied by the hosting transport;
// the service never authenticates, it only attributes.
type GameService interface {
	RegisterTemplate(ctx context.Context, tpl *engine.MapTemplate) (*TemplateInfo, error)
	GetTemplate(ctx context.Context, id string) (*engine.MapTemplate, error)
	ListTemplates(ctx context.Context) ([]*TemplateInfo, error)

	CreateSession(ctx context.Context, caller string, req CreateSessionRequest) (*SessionInfo, error)
	JoinSession(ctx context.Context, caller, sessionID string, slot int) (*ActionResult, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	GetState(ctx context.Context, sessionID string) (*GameView, error)

	MoveUnit(ctx context.Context, caller, sessionID string, unitID int, path []engine.Position) (*ActionResult, error)
	Attack(ctx context.Context, caller, sessionID string, unitID, targetID int) (*ActionResult, error)
	Capture(ctx context.Context, caller, sessionID string, unitID int) (*ActionResult, error)
	BuildUnit(ctx context.Context, caller, sessionID string, factory engine.Position, kind engine.UnitKind) (*ActionResult, error)
	EndTurn(ctx context.Context, caller, sessionID string) (*ActionResult, error)
	Resign(ctx context.Context, caller, sessionID string) (*ActionResult, error)
}

// TemplateStore is the template registry the service reads and registers
// against.
type TemplateStore interface {
	Register(tpl *engine.MapTemplate) (string, error)
	Get(id string) (*engine.MapTemplate, error)
	List() []*engine.MapTemplate
}

// SessionRegistry is the live-session registry behind the service.
type SessionRegistry interface {
	Add(game *engine.Game) *session.Session
	Get(id string) (*session.Session, error)
	List() []*session.Session
	Save(s *session.Session) error
}

// CreateSessionRequest carries the creator's choices for a new session.
type CreateSessionRequest struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
	Slot       int    `json:"slot"`
	RoundLimit int    `json:"round_limit"`
}

// TemplateInfo is the list-level view of a template.
type TemplateInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Slots  int    `json:"slots"`
}

// SessionInfo is the list-level view of a session.
type SessionInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	TemplateID  string       `json:"template_id"`
	Phase       engine.Phase `json:"phase"`
	SlotCount   int          `json:"slot_count"`
	JoinedCount int          `json:"joined_count"`
	Round       int          `json:"round"`
	CreatedAt   time.Time    `json:"created_at"`
}

// GameView is the full read model of one session, shaped for clients.
type GameView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	TemplateID  string               `json:"template_id"`
	Phase       engine.Phase         `json:"phase"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Terrain     [][]engine.TileKind  `json:"terrain"`
	Round       int                  `json:"round"`
	RoundLimit  int                  `json:"round_limit"`
	CurrentSlot int                  `json:"current_slot"`
	Winner      int                  `json:"winner,omitempty"`
	WinReason   engine.WinReason     `json:"win_reason,omitempty"`
	Slots       []engine.PlayerSlot  `json:"slots"`
	Units       []engine.Unit        `json:"units"`
	Buildings   []engine.Building    `json:"buildings"`
}

// ActionResult is returned by every mutating call: the events the transition
// emitted plus the state as of its completion.
type ActionResult struct {
	SessionID string         `json:"session_id"`
	Events    []engine.Event `json:"events"`
	Game      *GameView      `json:"game"`
}
