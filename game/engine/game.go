package engine

import (
	"fmt"
	"sort"
)

// Game is the authoritative state of one session. It is not safe for
// concurrent use; callers serialize access per session.
type Game struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	TemplateID string        `json:"template_id"`
	Phase      Phase         `json:"phase"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Terrain    [][]TileKind  `json:"terrain"`
	SlotCount  int           `json:"slot_count"`
	Slots      []*PlayerSlot `json:"slots"`
	Units      map[int]*Unit `json:"units"`
	Buildings  []*Building   `json:"buildings"`
	Round      int           `json:"round"`
	RoundLimit int           `json:"round_limit"`
	CurrentSlot int          `json:"current_slot"`
	Winner     int           `json:"winner,omitempty"`
	WinReason  WinReason     `json:"win_reason,omitempty"`

	// Starting units still waiting for their owner to join.
	PendingUnits []TemplateUnit `json:"pending_units,omitempty"`

	NextUnitID int    `json:"next_unit_id"`
	Seed       uint64 `json:"seed"`

	entropy  EntropySource
	occupied map[Position]int
	byPos    map[Position]*Building
}

// NewGame instantiates a session from a validated template. The creator is
// seated immediately at the slot of their choice; the game stays in the
// lobby until every slot joins.
func NewGame(id, name string, tpl *MapTemplate, creator string, creatorSlot, roundLimit int, entropy EntropySource) (*Game, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	if creator == "" {
		return nil, fmt.Errorf("%w: creator is required", ErrInvalidTarget)
	}
	if roundLimit <= 0 {
		roundLimit = DefaultRoundLimit
	}
	slotCount := tpl.SlotCount()
	if creatorSlot < 1 || creatorSlot > slotCount {
		return nil, fmt.Errorf("%w: slot %d of %d", ErrInvalidSlot, creatorSlot, slotCount)
	}

	g := &Game{
		ID:          id,
		Name:        name,
		TemplateID:  tpl.ID,
		Phase:       PhaseLobby,
		Width:       tpl.Width,
		Height:      tpl.Height,
		Terrain:     tpl.Terrain(),
		SlotCount:   slotCount,
		Units:       make(map[int]*Unit),
		Round:       0,
		RoundLimit:  roundLimit,
		CurrentSlot: 0,
		NextUnitID:  1,
		Seed:        SeedFromID(id),
		entropy:     entropy,
		occupied:    make(map[Position]int),
		byPos:       make(map[Position]*Building),
	}

	for s := 1; s <= slotCount; s++ {
		// Later slots get a small gold edge to offset going second.
		g.Slots = append(g.Slots, &PlayerSlot{
			Slot:  s,
			Gold:  StartingGold + (s-1)*LateSlotGoldBonus,
			Alive: true,
		})
	}

	for _, b := range tpl.Buildings {
		building := &Building{Pos: b.Pos(), Kind: b.Kind, Owner: b.Owner}
		g.Buildings = append(g.Buildings, building)
		g.byPos[building.Pos] = building
	}
	sort.Slice(g.Buildings, func(i, j int) bool {
		a, b := g.Buildings[i].Pos, g.Buildings[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	g.PendingUnits = append(g.PendingUnits, tpl.Units...)

	g.seat(creatorSlot, creator)
	return g, nil
}

// JoinedCount reports how many slots are seated.
func (g *Game) JoinedCount() int {
	n := 0
	for _, s := range g.Slots {
		if s.Joined {
			n++
		}
	}
	return n
}

// seat places a controller at a slot and spawns its starting units.
func (g *Game) seat(slot int, controller string) {
	s := g.Slots[slot-1]
	s.Controller = controller
	s.Joined = true

	remaining := g.PendingUnits[:0]
	for _, u := range g.PendingUnits {
		if u.Owner != slot {
			remaining = append(remaining, u)
			continue
		}
		g.spawnUnit(slot, u.Kind, u.Pos(), false)
	}
	g.PendingUnits = remaining
}

// Join seats a controller at an open slot. When the last slot fills the game
// starts: building tallies are struck, slot 1 becomes active, and round one
// income and production run.
func (g *Game) Join(controller string, slot int) ([]Event, error) {
	if g.Phase != PhaseLobby {
		return nil, fmt.Errorf("%w: game is %s", ErrWrongPhase, g.Phase)
	}
	if controller == "" {
		return nil, fmt.Errorf("%w: controller is required", ErrInvalidTarget)
	}
	if slot < 1 || slot > g.SlotCount {
		return nil, fmt.Errorf("%w: slot %d of %d", ErrInvalidSlot, slot, g.SlotCount)
	}
	if g.Slots[slot-1].Joined {
		return nil, fmt.Errorf("%w: slot %d", ErrSlotOccupied, slot)
	}

	g.seat(slot, controller)
	events := []Event{{Type: EventPlayerJoined, Slot: slot}}

	for _, s := range g.Slots {
		if !s.Joined {
			return events, nil
		}
	}

	// Lobby is full. Strike the building tallies and open round one.
	for _, b := range g.Buildings {
		if b.Owner > 0 {
			g.adjustBuildingCount(b.Owner, b.Kind, +1)
		}
	}
	g.Phase = PhasePlaying
	g.Round = 1
	g.CurrentSlot = 1
	events = append(events, Event{Type: EventGameStarted, Round: 1, Slot: 1})
	events = append(events, g.collectIncome(1)...)
	events = append(events, g.runProduction(1)...)
	return events, nil
}

// ControllerOf returns the controller seated at a slot, or "".
func (g *Game) ControllerOf(slot int) string {
	if slot < 1 || slot > g.SlotCount {
		return ""
	}
	return g.Slots[slot-1].Controller
}

// UnitAt returns the unit occupying a cell, if any.
func (g *Game) UnitAt(pos Position) (*Unit, bool) {
	id, ok := g.occupied[pos]
	if !ok {
		return nil, false
	}
	u, ok := g.Units[id]
	return u, ok
}

// BuildingAt returns the building at a cell, if any.
func (g *Game) BuildingAt(pos Position) (*Building, bool) {
	b, ok := g.byPos[pos]
	return b, ok
}

// TerrainAt returns the terrain of a cell. Out-of-bounds cells read as water
// so movement code rejects them uniformly.
func (g *Game) TerrainAt(pos Position) TileKind {
	if pos.Y < 0 || pos.Y >= g.Height || pos.X < 0 || pos.X >= g.Width {
		return TileWater
	}
	return g.Terrain[pos.Y][pos.X]
}

// tileStatsAt returns the defensive rule sheet of a cell. A building
// overrides the terrain underneath it.
func (g *Game) tileStatsAt(pos Position) TileStats {
	if b, ok := g.byPos[pos]; ok {
		if s, ok := buildingStats[b.Kind]; ok {
			return s
		}
	}
	return tileStats[g.TerrainAt(pos)]
}

// requireTurn verifies the game is running and the caller controls the
// active slot.
func (g *Game) requireTurn(caller string) error {
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: game is %s", ErrWrongPhase, g.Phase)
	}
	if g.Slots[g.CurrentSlot-1].Controller != caller {
		return fmt.Errorf("%w: slot %d is active", ErrNotYourTurn, g.CurrentSlot)
	}
	return nil
}

// activeUnit fetches a unit for a mutating action by the current slot.
func (g *Game) activeUnit(unitID int) (*Unit, error) {
	u, ok := g.Units[unitID]
	if !ok || !u.Alive {
		return nil, fmt.Errorf("%w: unit %d", ErrUnitUnavailable, unitID)
	}
	if u.Owner != g.CurrentSlot {
		return nil, fmt.Errorf("%w: unit %d belongs to slot %d", ErrUnitUnavailable, unitID, u.Owner)
	}
	return u, nil
}

func (g *Game) spawnUnit(owner int, kind UnitKind, pos Position, exhausted bool) *Unit {
	stats := unitStats[kind]
	u := &Unit{
		ID:    g.NextUnitID,
		Owner: owner,
		Kind:  kind,
		Pos:   pos,
		HP:    stats.MaxHP,
		Alive: true,
	}
	if exhausted {
		u.LastMovedRound = g.Round
		u.LastActedRound = g.Round
	}
	g.NextUnitID++
	g.Units[u.ID] = u
	g.occupied[pos] = u.ID
	g.Slots[owner-1].Units++
	return u
}

// killUnit removes a unit from play and runs its owner's elimination check.
func (g *Game) killUnit(u *Unit) []Event {
	u.HP = 0
	u.Alive = false
	delete(g.occupied, u.Pos)
	g.Slots[u.Owner-1].Units--
	pos := u.Pos
	events := []Event{{Type: EventUnitDied, Round: g.Round, Slot: u.Owner, UnitID: u.ID, UnitKind: u.Kind, Pos: &pos}}
	return append(events, g.checkElimination(u.Owner)...)
}

// checkElimination marks a slot dead once it has no HQ or no means to fight
// on, and finishes the game when one slot remains.
func (g *Game) checkElimination(slot int) []Event {
	if g.Phase == PhaseFinished {
		return nil
	}
	s := g.Slots[slot-1]
	if !s.Alive {
		return nil
	}
	broke := s.Units == 0 && s.Factories == 0 && s.Gold == 0
	if s.HQs > 0 && !broke {
		return nil
	}
	s.Alive = false
	events := []Event{{Type: EventPlayerEliminated, Round: g.Round, Slot: slot}}

	alive := 0
	winner := 0
	for _, p := range g.Slots {
		if p.Alive {
			alive++
			winner = p.Slot
		}
	}
	if alive == 1 {
		events = append(events, g.finish(winner, WinElimination)...)
	}
	return events
}

// finish ends the game. It is idempotent: once a game finishes, the first
// result stands.
func (g *Game) finish(winner int, reason WinReason) []Event {
	if g.Phase == PhaseFinished {
		return nil
	}
	g.Phase = PhaseFinished
	g.Winner = winner
	g.WinReason = reason
	return []Event{{Type: EventGameOver, Round: g.Round, Winner: winner, Reason: reason}}
}

func (g *Game) adjustBuildingCount(slot int, kind BuildingKind, delta int) {
	if slot < 1 || slot > g.SlotCount {
		return
	}
	s := g.Slots[slot-1]
	switch kind {
	case BuildingHQ:
		s.HQs += delta
	case BuildingCity:
		s.Cities += delta
	case BuildingFactory:
		s.Factories += delta
	}
}

// strength scores a slot for timeout resolution.
func (g *Game) strength(slot int) int {
	s := g.Slots[slot-1]
	total := s.Gold
	for _, u := range g.Units {
		if u.Alive && u.Owner == slot {
			total += u.HP
		}
	}
	return total
}
