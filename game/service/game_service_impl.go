package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/hashfront/skirmish-server/game/engine"
	"github.com/hashfront/skirmish-server/game/session"
	"github.com/hashfront/skirmish-server/stats"
)

type gameService struct {
	templates TemplateStore
	sessions  SessionRegistry
	entropy   engine.EntropySource
	recorder  stats.Recorder
}

// NewGameService wires the write surface over a template store and a session
// registry. A nil recorder disables telemetry.
func NewGameService(templates TemplateStore, sessions SessionRegistry, entropy engine.EntropySource, recorder stats.Recorder) GameService {
	if recorder == nil {
		recorder = stats.NopRecorder{}
	}
	return &gameService{
		templates: templates,
		sessions:  sessions,
		entropy:   entropy,
		recorder:  recorder,
	}
}

func (s *gameService) RegisterTemplate(ctx context.Context, tpl *engine.MapTemplate) (*TemplateInfo, error) {
	id, err := s.templates.Register(tpl)
	if err != nil {
		return nil, err
	}
	registered, err := s.templates.Get(id)
	if err != nil {
		return nil, err
	}
	return templateInfo(registered), nil
}

func (s *gameService) GetTemplate(ctx context.Context, id string) (*engine.MapTemplate, error) {
	return s.templates.Get(id)
}

func (s *gameService) ListTemplates(ctx context.Context) ([]*TemplateInfo, error) {
	var out []*TemplateInfo
	for _, tpl := range s.templates.List() {
		out = append(out, templateInfo(tpl))
	}
	return out, nil
}

func (s *gameService) CreateSession(ctx context.Context, caller string, req CreateSessionRequest) (*SessionInfo, error) {
	if caller == "" {
		return nil, fmt.Errorf("%w: caller identity required", engine.ErrInvalidTarget)
	}
	tpl, err := s.templates.Get(req.TemplateID)
	if err != nil {
		return nil, err
	}
	slot := req.Slot
	if slot == 0 {
		slot = 1
	}
	name := req.Name
	if name == "" {
		name = tpl.Name
	}

	id := uuid.NewString()
	game, err := engine.NewGame(id, name, tpl, caller, slot, req.RoundLimit, s.entropy)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.Add(game)
	if err := s.sessions.Save(sess); err != nil {
		log.Printf("Warning: failed to persist new session %s: %v", id, err)
	}
	s.recorder.Record(ctx, id, []engine.Event{{Type: engine.EventGameCreated, Slot: slot}})
	return sessionInfo(sess), nil
}

func (s *gameService) JoinSession(ctx context.Context, caller, sessionID string, slot int) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Join(caller, slot)
	})
}

func (s *gameService) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	var out []*SessionInfo
	for _, sess := range s.sessions.List() {
		sess.Lock()
		info := sessionInfo(sess)
		sess.Unlock()
		out = append(out, info)
	}
	return out, nil
}

func (s *gameService) GetState(ctx context.Context, sessionID string) (*GameView, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return viewOf(sess.Game), nil
}

func (s *gameService) MoveUnit(ctx context.Context, caller, sessionID string, unitID int, path []engine.Position) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Move(caller, unitID, path)
	})
}

func (s *gameService) Attack(ctx context.Context, caller, sessionID string, unitID, targetID int) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Attack(caller, unitID, targetID)
	})
}

func (s *gameService) Capture(ctx context.Context, caller, sessionID string, unitID int) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Capture(caller, unitID)
	})
}

func (s *gameService) BuildUnit(ctx context.Context, caller, sessionID string, factory engine.Position, kind engine.UnitKind) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Build(caller, factory, kind)
	})
}

func (s *gameService) EndTurn(ctx context.Context, caller, sessionID string) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.EndTurn(caller)
	})
}

func (s *gameService) Resign(ctx context.Context, caller, sessionID string) (*ActionResult, error) {
	return s.transition(ctx, sessionID, func(g *engine.Game) ([]engine.Event, error) {
		return g.Resign(caller)
	})
}

// transition runs one engine call under the session lock, snapshots on
// success, and fans the events out to the recorder. A failed call changes
// nothing and persists nothing.
func (s *gameService) transition(ctx context.Context, sessionID string, op func(*engine.Game) ([]engine.Event, error)) (*ActionResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	events, err := op(sess.Game)
	if err != nil {
		sess.Unlock()
		return nil, err
	}
	view := viewOf(sess.Game)
	if err := s.sessions.Save(sess); err != nil {
		log.Printf("Warning: failed to persist session %s: %v", sessionID, err)
	}
	sess.Unlock()

	s.recorder.Record(ctx, sessionID, events)
	return &ActionResult{SessionID: sessionID, Events: events, Game: view}, nil
}

func templateInfo(tpl *engine.MapTemplate) *TemplateInfo {
	return &TemplateInfo{
		ID:     tpl.ID,
		Name:   tpl.Name,
		Width:  tpl.Width,
		Height: tpl.Height,
		Slots:  tpl.SlotCount(),
	}
}

func sessionInfo(sess *session.Session) *SessionInfo {
	g := sess.Game
	return &SessionInfo{
		ID:          sess.ID,
		Name:        g.Name,
		TemplateID:  g.TemplateID,
		Phase:       g.Phase,
		SlotCount:   g.SlotCount,
		JoinedCount: g.JoinedCount(),
		Round:       g.Round,
		CreatedAt:   sess.CreatedAt,
	}
}

// viewOf copies the game into its client-facing shape. Units are the alive
// roster sorted by id; slots and buildings are copied so the view stays
// stable after the lock is released.
func viewOf(g *engine.Game) *GameView {
	view := &GameView{
		ID:          g.ID,
		Name:        g.Name,
		TemplateID:  g.TemplateID,
		Phase:       g.Phase,
		Width:       g.Width,
		Height:      g.Height,
		Terrain:     g.Terrain,
		Round:       g.Round,
		RoundLimit:  g.RoundLimit,
		CurrentSlot: g.CurrentSlot,
		Winner:      g.Winner,
		WinReason:   g.WinReason,
	}
	for _, slot := range g.Slots {
		view.Slots = append(view.Slots, *slot)
	}
	for _, u := range g.Units {
		if u.Alive {
			view.Units = append(view.Units, *u)
		}
	}
	sort.Slice(view.Units, func(i, j int) bool { return view.Units[i].ID < view.Units[j].ID })
	for _, b := range g.Buildings {
		view.Buildings = append(view.Buildings, *b)
	}
	return view
}
