package stats

import (
	"context"
	"log"

	"github.com/hashfront/skirmish-server/game/engine"
)

// Recorder receives the event stream of every state transition. It is
// consumed write-only and fire-and-forget: the game never waits on it and
// never reads anything back.
type Recorder interface {
	Record(ctx context.Context, sessionID string, events []engine.Event)
}

// LogRecorder writes a compact line per notable event. It is the default
// sink when no external stats collector is wired.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

func (r *LogRecorder) Record(ctx context.Context, sessionID string, events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EventGameCreated, engine.EventGameStarted:
			log.Printf("[STATS] session=%s %s", sessionID, ev.Type)
		case engine.EventUnitDied:
			log.Printf("[STATS] session=%s unit=%d slot=%d died", sessionID, ev.UnitID, ev.Slot)
		case engine.EventBuildingCaptured:
			log.Printf("[STATS] session=%s slot=%d captured %s at (%d,%d)", sessionID, ev.Slot, ev.Building, ev.Pos.X, ev.Pos.Y)
		case engine.EventPlayerEliminated, engine.EventPlayerResigned:
			log.Printf("[STATS] session=%s slot=%d %s", sessionID, ev.Slot, ev.Type)
		case engine.EventGameOver:
			log.Printf("[STATS] session=%s game over: winner=%d reason=%s round=%d", sessionID, ev.Winner, ev.Reason, ev.Round)
		}
	}
}

// NopRecorder drops everything. Test use.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, []engine.Event) {}
