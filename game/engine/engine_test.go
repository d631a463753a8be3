package engine

import (
	"errors"
	"testing"
)

// testTemplate builds a small 2-slot map used across the engine tests.
//
//	(0,0) HQ slot 1      (7,7) HQ slot 2
//	(0,1) factory slot 1 (7,6) factory slot 2
//	(0,2) city slot 1    (3,3) neutral city
//	(1,0) infantry 1     (6,7) infantry 2
func testTemplate() *MapTemplate {
	return &MapTemplate{
		ID:     "tpl-test",
		Name:   "crossroads",
		Width:  8,
		Height: 8,
		Buildings: []TemplateBuilding{
			{X: 0, Y: 0, Kind: BuildingHQ, Owner: 1},
			{X: 7, Y: 7, Kind: BuildingHQ, Owner: 2},
			{X: 0, Y: 1, Kind: BuildingFactory, Owner: 1},
			{X: 7, Y: 6, Kind: BuildingFactory, Owner: 2},
			{X: 0, Y: 2, Kind: BuildingCity, Owner: 1},
			{X: 3, Y: 3, Kind: BuildingCity, Owner: 0},
		},
		Units: []TemplateUnit{
			{X: 1, Y: 0, Kind: UnitInfantry, Owner: 1},
			{X: 6, Y: 7, Kind: UnitInfantry, Owner: 2},
		},
	}
}

// startedGame creates a session from tpl with alice at slot 1 and bob at
// slot 2, and asserts it reached the playing phase.
func startedGame(t *testing.T, tpl *MapTemplate) *Game {
	t.Helper()
	g, err := NewGame("game-1", "test game", tpl, "alice", 1, 0, FixedEntropy(42))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("bob", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
	return g
}

// unitByOwnerPos finds an alive unit by owner and position.
func unitByOwnerPos(t *testing.T, g *Game, owner int, pos Position) *Unit {
	t.Helper()
	for _, u := range g.Units {
		if u.Alive && u.Owner == owner && u.Pos == pos {
			return u
		}
	}
	t.Fatalf("no alive unit of slot %d at (%d,%d)", owner, pos.X, pos.Y)
	return nil
}

func TestNewGameStartsInLobby(t *testing.T) {
	g, err := NewGame("game-1", "test game", testTemplate(), "alice", 1, 0, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.Phase != PhaseLobby {
		t.Errorf("phase = %s, want %s", g.Phase, PhaseLobby)
	}
	if g.SlotCount != 2 {
		t.Errorf("slot count = %d, want 2", g.SlotCount)
	}
	if g.JoinedCount() != 1 {
		t.Errorf("joined count = %d, want 1", g.JoinedCount())
	}
	if g.Round != 0 || g.CurrentSlot != 0 {
		t.Errorf("round/current = %d/%d, want 0/0 before start", g.Round, g.CurrentSlot)
	}
	// The creator's starting units spawn at once; the other slot's wait.
	if _, ok := g.UnitAt(Position{1, 0}); !ok {
		t.Error("creator unit not spawned")
	}
	if _, ok := g.UnitAt(Position{6, 7}); ok {
		t.Error("absent slot's unit spawned early")
	}
}

func TestNewGameRejectsBadCreatorSlot(t *testing.T) {
	if _, err := NewGame("g", "n", testTemplate(), "alice", 3, 0, FixedEntropy(1)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
	if _, err := NewGame("g", "n", testTemplate(), "alice", 0, 0, FixedEntropy(1)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
}

func TestJoinFillsLobbyAndStarts(t *testing.T) {
	g, err := NewGame("game-1", "test game", testTemplate(), "alice", 1, 0, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	events, err := g.Join("bob", 2)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if g.Phase != PhasePlaying || g.Round != 1 || g.CurrentSlot != 1 {
		t.Fatalf("after full join: phase=%s round=%d current=%d", g.Phase, g.Round, g.CurrentSlot)
	}

	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	want := []EventType{EventPlayerJoined, EventGameStarted, EventIncomeCollected}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("events = %v, want %v", types, want)
		}
	}

	// Building tallies struck at start.
	s1 := g.Slots[0]
	if s1.HQs != 1 || s1.Cities != 1 || s1.Factories != 1 {
		t.Errorf("slot1 tallies hq=%d city=%d factory=%d, want 1/1/1", s1.HQs, s1.Cities, s1.Factories)
	}
	// Slot 1 income ran immediately: base 1 + city 1.
	if s1.Gold != StartingGold+BaseIncome+CityIncome {
		t.Errorf("slot1 gold = %d, want %d", s1.Gold, StartingGold+BaseIncome+CityIncome)
	}
	// Slot 2 holds the late-slot bonus, no income yet.
	if g.Slots[1].Gold != StartingGold+LateSlotGoldBonus {
		t.Errorf("slot2 gold = %d, want %d", g.Slots[1].Gold, StartingGold+LateSlotGoldBonus)
	}
}

func TestJoinRejections(t *testing.T) {
	g, err := NewGame("game-1", "test game", testTemplate(), "alice", 1, 0, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("bob", 1); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("occupied slot: err = %v, want ErrSlotOccupied", err)
	}
	if _, err := g.Join("bob", 3); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("out of range slot: err = %v, want ErrInvalidSlot", err)
	}
	if _, err := g.Join("bob", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := g.Join("carol", 2); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("join after start: err = %v, want ErrWrongPhase", err)
	}
}

func TestTurnGatingByController(t *testing.T) {
	g := startedGame(t, testTemplate())
	u := unitByOwnerPos(t, g, 1, Position{1, 0})

	if _, err := g.Move("bob", u.ID, []Position{{2, 0}}); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("err = %v, want ErrNotYourTurn", err)
	}
	if got := ClassOf(ErrNotYourTurn); got != ClassAuthorization {
		t.Errorf("ClassOf(ErrNotYourTurn) = %s, want %s", got, ClassAuthorization)
	}
}

// One controller may hold several slots; legality follows the slot, not the
// identity.
func TestSharedIdentityKeysTurnBySlot(t *testing.T) {
	tpl := testTemplate()
	g, err := NewGame("game-1", "solo practice", tpl, "alice", 1, 0, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("alice", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}

	theirs := unitByOwnerPos(t, g, 2, Position{6, 7})
	if _, err := g.Move("alice", theirs.ID, []Position{{5, 7}}); !errors.Is(err, ErrUnitUnavailable) {
		t.Errorf("moving slot-2 unit on slot-1 turn: err = %v, want ErrUnitUnavailable", err)
	}
	mine := unitByOwnerPos(t, g, 1, Position{1, 0})
	if _, err := g.Move("alice", mine.ID, []Position{{2, 0}}); err != nil {
		t.Errorf("moving own slot's unit: %v", err)
	}
}

// The position index and the unit records are two views of one fact; they
// must agree after any sequence of operations.
func TestOccupancyIndexConsistency(t *testing.T) {
	g := startedGame(t, testTemplate())
	u := unitByOwnerPos(t, g, 1, Position{1, 0})
	if _, err := g.Move("alice", u.ID, []Position{{2, 0}, {3, 0}}); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}

	seen := make(map[Position]int)
	for _, unit := range g.Units {
		if !unit.Alive {
			continue
		}
		if prev, dup := seen[unit.Pos]; dup {
			t.Fatalf("units %d and %d share (%d,%d)", prev, unit.ID, unit.Pos.X, unit.Pos.Y)
		}
		seen[unit.Pos] = unit.ID
		got, ok := g.UnitAt(unit.Pos)
		if !ok || got.ID != unit.ID {
			t.Fatalf("index disagrees with unit %d at (%d,%d)", unit.ID, unit.Pos.X, unit.Pos.Y)
		}
	}
	if len(seen) != len(g.occupied) {
		t.Fatalf("index has %d entries, units say %d", len(g.occupied), len(seen))
	}
}
