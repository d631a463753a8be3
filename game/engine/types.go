package engine

// TileKind represents the terrain of a single grid cell.
type TileKind string

const (
	TileGrass    TileKind = "grass"
	TileRoad     TileKind = "road"
	TileDirtRoad TileKind = "dirt_road"
	TileTree     TileKind = "tree"
	TileMountain TileKind = "mountain"
	TileWater    TileKind = "water"
)

// BorderKind classifies the shoreline of a water tile. Water that touches
// land, or the map edge, must carry one; fully enclosed water may not.
type BorderKind string

const (
	BorderNone  BorderKind = ""
	BorderBeach BorderKind = "beach"
	BorderCliff BorderKind = "cliff"
)

// BuildingKind represents a capturable structure.
type BuildingKind string

const (
	BuildingNone    BuildingKind = ""
	BuildingHQ      BuildingKind = "hq"
	BuildingCity    BuildingKind = "city"
	BuildingFactory BuildingKind = "factory"
)

// UnitKind represents a combat unit category.
type UnitKind string

const (
	UnitNone     UnitKind = ""
	UnitInfantry UnitKind = "infantry"
	UnitTank     UnitKind = "tank"
	UnitRanger   UnitKind = "ranger"
)

// Phase is the session lifecycle state. It only ever advances forward.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// CombatOutcome classifies a single strike.
type CombatOutcome string

const (
	OutcomeHit   CombatOutcome = "hit"
	OutcomeGraze CombatOutcome = "graze"
	OutcomeWhiff CombatOutcome = "whiff"
)

// WinReason records how a finished game was decided.
type WinReason string

const (
	WinNone        WinReason = ""
	WinElimination WinReason = "elimination"
	WinHQCapture   WinReason = "hq_capture"
	WinResignation WinReason = "resignation"
	WinTimeout     WinReason = "timeout"
)

const (
	// Map limits.
	MaxMapEdge = 255
	MinHQCount = 2
	MaxHQCount = 4

	// A building flips ownership once capture progress reaches this.
	CaptureThreshold = 2

	// Rounds before the game is decided on points.
	DefaultRoundLimit = 30

	// Combat tuning. Accuracy is clamped so no shot is ever a sure hit
	// or a hopeless one.
	MinAccuracy          = 75
	MaxAccuracy          = 95
	MovedAccuracyPenalty = 5
	GrazeBand            = 20

	// Free road steps for road-capable kinds starting their move on a road.
	RoadBonusBudget = 2

	// Economy.
	StartingGold      = 10
	LateSlotGoldBonus = 1
	BaseIncome        = 1
	CityIncome        = 1
)

// Position is a grid cell coordinate. (0,0) is the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns the 4-neighborhood walking distance between two cells.
func Manhattan(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// PlayerSlot is one seat in a session. Turn legality is keyed off the slot
// number, not the controller identity; one controller may hold several slots
// in practice games.
type PlayerSlot struct {
	Slot       int    `json:"slot"`
	Controller string `json:"controller"`
	Gold       int    `json:"gold"`
	Units      int    `json:"units"`
	Cities     int    `json:"cities"`
	Factories  int    `json:"factories"`
	HQs        int    `json:"hqs"`
	Alive      bool   `json:"alive"`
	Joined     bool   `json:"joined"`
}

// Unit is a single combat unit. Freshness is encoded as the round the unit
// last moved/acted: it may move or act again once that round is behind the
// current one. Turn change never walks the unit list.
type Unit struct {
	ID             int      `json:"id"`
	Owner          int      `json:"owner"`
	Kind           UnitKind `json:"kind"`
	Pos            Position `json:"pos"`
	HP             int      `json:"hp"`
	LastMovedRound int      `json:"last_moved_round"`
	LastActedRound int      `json:"last_acted_round"`
	Alive          bool     `json:"alive"`
}

// Building is per-session building state at a fixed position. Owner 0 means
// neutral. Claimant and Progress track a capture in flight; Queued is the
// unit kind a factory will produce on its owner's next turn.
type Building struct {
	Pos      Position     `json:"pos"`
	Kind     BuildingKind `json:"kind"`
	Owner    int          `json:"owner"`
	Claimant int          `json:"claimant,omitempty"`
	Progress int          `json:"progress,omitempty"`
	Queued   UnitKind     `json:"queued,omitempty"`
}
