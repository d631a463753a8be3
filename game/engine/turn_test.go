package engine

import (
	"errors"
	"testing"
)

// threeWayTemplate defines a 3-slot map for rotation tests.
func threeWayTemplate() *MapTemplate {
	return &MapTemplate{
		ID:     "tpl-threeway",
		Name:   "threeway",
		Width:  10,
		Height: 10,
		Buildings: []TemplateBuilding{
			{X: 0, Y: 0, Kind: BuildingHQ, Owner: 1},
			{X: 9, Y: 0, Kind: BuildingHQ, Owner: 2},
			{X: 0, Y: 9, Kind: BuildingHQ, Owner: 3},
		},
		Units: []TemplateUnit{
			{X: 1, Y: 0, Kind: UnitInfantry, Owner: 1},
			{X: 8, Y: 0, Kind: UnitInfantry, Owner: 2},
			{X: 1, Y: 9, Kind: UnitInfantry, Owner: 3},
		},
	}
}

func startedThreeWay(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame("game-3", "threeway", threeWayTemplate(), "alice", 1, 0, FixedEntropy(7))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("bob", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := g.Join("carol", 3); err != nil {
		t.Fatalf("Join: %v", err)
	}
	return g
}

func TestEndTurnRotationAndRoundIncrement(t *testing.T) {
	g := startedThreeWay(t)
	if g.CurrentSlot != 1 || g.Round != 1 {
		t.Fatalf("start = slot %d round %d", g.CurrentSlot, g.Round)
	}
	steps := []struct {
		caller string
		slot   int
		round  int
	}{
		{"alice", 2, 1},
		{"bob", 3, 1},
		{"carol", 1, 2},
		{"alice", 2, 2},
	}
	for _, s := range steps {
		if _, err := g.EndTurn(s.caller); err != nil {
			t.Fatalf("EndTurn(%s): %v", s.caller, err)
		}
		if g.CurrentSlot != s.slot || g.Round != s.round {
			t.Fatalf("after %s: slot %d round %d, want %d/%d", s.caller, g.CurrentSlot, g.Round, s.slot, s.round)
		}
	}
}

func TestEndTurnSkipsDeadSlots(t *testing.T) {
	g := startedThreeWay(t)
	if _, err := g.Resign("bob"); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if g.Phase != PhasePlaying {
		t.Fatalf("3-way game ended on a single resignation")
	}
	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g.CurrentSlot != 3 {
		t.Fatalf("current = %d, want dead slot 2 skipped", g.CurrentSlot)
	}
	if _, err := g.EndTurn("carol"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g.CurrentSlot != 1 || g.Round != 2 {
		t.Fatalf("current/round = %d/%d, want 1/2", g.CurrentSlot, g.Round)
	}
}

func TestEndTurnRequiresActiveController(t *testing.T) {
	g := startedThreeWay(t)
	if _, err := g.EndTurn("bob"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("err = %v, want ErrNotYourTurn", err)
	}
}

func TestRoundLimitDecidesOnPoints(t *testing.T) {
	tpl := testTemplate()
	// Slot 1 fields an extra tank: more hit points on the board.
	tpl.Units = append(tpl.Units, TemplateUnit{X: 2, Y: 2, Kind: UnitTank, Owner: 1})
	g, err := NewGame("game-1", "short game", tpl, "alice", 1, 1, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("bob", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if g.RoundLimit != 1 {
		t.Fatalf("round limit = %d, want 1", g.RoundLimit)
	}

	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	events, err := g.EndTurn("bob")
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g.Phase != PhaseFinished || g.WinReason != WinTimeout {
		t.Fatalf("finish = %s/%s, want finished/timeout", g.Phase, g.WinReason)
	}
	if g.Winner != 1 {
		t.Errorf("winner = %d, want the stronger slot 1", g.Winner)
	}
	var sawOver bool
	for _, ev := range events {
		if ev.Type == EventGameOver && ev.Reason == WinTimeout {
			sawOver = true
		}
	}
	if !sawOver {
		t.Errorf("events = %v, want game_over(timeout)", events)
	}
}

func TestTimeoutTieGoesToLowerSlot(t *testing.T) {
	// Symmetric map, equal starting units. Equalize gold by hand.
	g, err := NewGame("game-1", "tie", testTemplate(), "alice", 1, 1, FixedEntropy(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Join("bob", 2); err != nil {
		t.Fatalf("Join: %v", err)
	}
	g.Slots[0].Gold = 5
	g.Slots[1].Gold = 5

	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	// Slot 2's income just ran; re-equalize before the deciding wrap.
	g.Slots[1].Gold = 5
	if _, err := g.EndTurn("bob"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if g.Winner != 1 || g.WinReason != WinTimeout {
		t.Errorf("winner/reason = %d/%s, want 1/timeout on tie", g.Winner, g.WinReason)
	}
}

func TestResignByActiveSlotAdvancesTurn(t *testing.T) {
	g := startedThreeWay(t)
	events, err := g.Resign("alice")
	if err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if g.Slots[0].Alive {
		t.Error("resigned slot still alive")
	}
	if g.Phase != PhasePlaying || g.CurrentSlot != 2 {
		t.Fatalf("phase/current = %s/%d, want playing/2", g.Phase, g.CurrentSlot)
	}
	var sawResign, sawTurnEnd bool
	for _, ev := range events {
		switch ev.Type {
		case EventPlayerResigned:
			sawResign = true
		case EventTurnEnded:
			sawTurnEnd = true
		}
	}
	if !sawResign || !sawTurnEnd {
		t.Errorf("events = %v, want player_resigned and turn_ended", events)
	}
}

func TestResignOutOfTurnIsLegal(t *testing.T) {
	g := startedThreeWay(t)
	if _, err := g.Resign("carol"); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if g.CurrentSlot != 1 {
		t.Errorf("current = %d, want unchanged 1", g.CurrentSlot)
	}
	if g.Slots[2].Alive {
		t.Error("resigned slot still alive")
	}
}

func TestResignToLastSlotWins(t *testing.T) {
	g := startedGame(t, testTemplate())
	events, err := g.Resign("alice")
	if err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if g.Phase != PhaseFinished || g.Winner != 2 || g.WinReason != WinResignation {
		t.Fatalf("finish = %s/%d/%s, want finished/2/resignation", g.Phase, g.Winner, g.WinReason)
	}
	var sawOver bool
	for _, ev := range events {
		if ev.Type == EventGameOver {
			sawOver = true
		}
	}
	if !sawOver {
		t.Error("no game_over event")
	}
	// Finishing twice is a no-op.
	if _, err := g.Resign("bob"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("resign after finish: err = %v, want ErrWrongPhase", err)
	}
}

func TestResignByOutsiderRejected(t *testing.T) {
	g := startedGame(t, testTemplate())
	if _, err := g.Resign("mallory"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("err = %v, want ErrNotYourTurn", err)
	}
}

func TestEliminationOnEmptySlot(t *testing.T) {
	g := startedThreeWay(t)
	// Slot 2 loses its only unit with nothing in reserve.
	g.Slots[1].Gold = 0
	victim := unitByOwnerPos(t, g, 2, Position{8, 0})
	events := g.killUnit(victim)

	if g.Slots[1].Alive {
		t.Fatal("slot 2 should be eliminated")
	}
	// Two slots remain: the game goes on.
	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing with two slots left", g.Phase)
	}
	var sawElim bool
	for _, ev := range events {
		if ev.Type == EventPlayerEliminated && ev.Slot == 2 {
			sawElim = true
		}
	}
	if !sawElim {
		t.Errorf("events = %v, want player_eliminated(2)", events)
	}
}
