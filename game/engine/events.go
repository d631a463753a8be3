package engine

// EventType identifies what a state transition emitted.
type EventType string

const (
	EventGameCreated       EventType = "game_created"
	EventPlayerJoined      EventType = "player_joined"
	EventGameStarted       EventType = "game_started"
	EventUnitMoved         EventType = "unit_moved"
	EventUnitAttacked      EventType = "unit_attacked"
	EventUnitDied          EventType = "unit_died"
	EventUnitBuilt         EventType = "unit_built"
	EventUnitSpawned       EventType = "unit_spawned"
	EventCaptureProgressed EventType = "capture_progressed"
	EventBuildingCaptured  EventType = "building_captured"
	EventIncomeCollected   EventType = "income_collected"
	EventTurnEnded         EventType = "turn_ended"
	EventPlayerResigned    EventType = "player_resigned"
	EventPlayerEliminated  EventType = "player_eliminated"
	EventGameOver          EventType = "game_over"
)

// Event is one entry in the ordered record of a state transition. A single
// operation may emit several: an attack that kills the last enemy unit yields
// unit_attacked, unit_died, player_eliminated and game_over in that order.
//
// Events are detached from live state: position fields hold copies taken at
// emit time, so a slice of events stays valid after later transitions mutate
// the board.
type Event struct {
	Type     EventType     `json:"type"`
	Round    int           `json:"round"`
	Slot     int           `json:"slot,omitempty"`
	UnitID   int           `json:"unit_id,omitempty"`
	TargetID int           `json:"target_id,omitempty"`
	UnitKind UnitKind      `json:"unit_kind,omitempty"`
	From     *Position     `json:"from,omitempty"`
	Pos      *Position     `json:"pos,omitempty"`
	Building BuildingKind  `json:"building,omitempty"`
	Outcome  CombatOutcome `json:"outcome,omitempty"`
	Counter  bool          `json:"counter,omitempty"`
	Damage   int           `json:"damage,omitempty"`
	Progress int           `json:"progress,omitempty"`
	Gold     int           `json:"gold,omitempty"`
	Winner   int           `json:"winner,omitempty"`
	Reason   WinReason     `json:"reason,omitempty"`
}
