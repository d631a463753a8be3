package engine

import (
	"errors"
	"testing"
)

// captureTemplate seats a slot-1 infantry directly on the given building.
func captureTemplate(kind BuildingKind, owner int) *MapTemplate {
	tpl := &MapTemplate{
		ID:     "tpl-capture",
		Name:   "capture",
		Width:  8,
		Height: 8,
		Buildings: []TemplateBuilding{
			{X: 0, Y: 0, Kind: BuildingHQ, Owner: 1},
			{X: 7, Y: 7, Kind: BuildingHQ, Owner: 2},
		},
		Units: []TemplateUnit{
			{X: 4, Y: 4, Kind: UnitInfantry, Owner: 1},
			{X: 6, Y: 7, Kind: UnitInfantry, Owner: 2},
		},
	}
	if kind == BuildingHQ {
		// Stand on the enemy HQ instead of adding a third one.
		tpl.Units[0] = TemplateUnit{X: 7, Y: 7, Kind: UnitInfantry, Owner: 1}
	} else {
		tpl.Buildings = append(tpl.Buildings, TemplateBuilding{X: 4, Y: 4, Kind: kind, Owner: owner})
	}
	return tpl
}

// cycleTurns ends alice's and bob's turns, returning to alice one round on.
func cycleTurns(t *testing.T, g *Game) {
	t.Helper()
	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn(alice): %v", err)
	}
	if _, err := g.EndTurn("bob"); err != nil {
		t.Fatalf("EndTurn(bob): %v", err)
	}
}

func TestCaptureNeutralCity(t *testing.T) {
	g := startedGame(t, captureTemplate(BuildingCity, 0))
	u := unitByOwnerPos(t, g, 1, Position{4, 4})
	b, _ := g.BuildingAt(Position{4, 4})

	events, err := g.Capture("alice", u.ID)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b.Claimant != 1 || b.Progress != 1 || b.Owner != 0 {
		t.Fatalf("after first tick: claimant=%d progress=%d owner=%d", b.Claimant, b.Progress, b.Owner)
	}
	if len(events) != 1 || events[0].Type != EventCaptureProgressed {
		t.Fatalf("events = %v, want capture_progressed", events)
	}
	if u.LastActedRound != g.Round {
		t.Error("capture did not mark the unit acted")
	}
	if _, err := g.Capture("alice", u.ID); !errors.Is(err, ErrAlreadyActed) {
		t.Fatalf("same-round recapture: err = %v, want ErrAlreadyActed", err)
	}

	cycleTurns(t, g)
	events, err = g.Capture("alice", u.ID)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b.Owner != 1 || b.Claimant != 0 || b.Progress != 0 {
		t.Fatalf("after threshold: owner=%d claimant=%d progress=%d", b.Owner, b.Claimant, b.Progress)
	}
	if len(events) != 1 || events[0].Type != EventBuildingCaptured {
		t.Fatalf("events = %v, want building_captured", events)
	}
	if g.Slots[0].Cities != 1 {
		t.Errorf("slot1 cities = %d, want 1", g.Slots[0].Cities)
	}
}

func TestCaptureEnemyFactoryClearsQueue(t *testing.T) {
	g := startedGame(t, captureTemplate(BuildingFactory, 2))
	u := unitByOwnerPos(t, g, 1, Position{4, 4})
	b, _ := g.BuildingAt(Position{4, 4})
	b.Queued = UnitTank

	if _, err := g.Capture("alice", u.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	cycleTurns(t, g)
	if _, err := g.Capture("alice", u.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b.Owner != 1 || b.Queued != UnitNone {
		t.Errorf("owner=%d queued=%q, want 1 and cleared", b.Owner, b.Queued)
	}
	if g.Slots[0].Factories != 1 || g.Slots[1].Factories != 0 {
		t.Errorf("factory tallies = %d/%d, want 1/0", g.Slots[0].Factories, g.Slots[1].Factories)
	}
}

func TestCaptureHQFinishesGame(t *testing.T) {
	g := startedGame(t, captureTemplate(BuildingHQ, 2))
	u := unitByOwnerPos(t, g, 1, Position{7, 7})
	b, _ := g.BuildingAt(Position{7, 7})

	if _, err := g.Capture("alice", u.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b.Progress != CaptureThreshold-1 {
		t.Fatalf("progress = %d, want %d", b.Progress, CaptureThreshold-1)
	}
	cycleTurns(t, g)

	events, err := g.Capture("alice", u.ID)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if g.Phase != PhaseFinished || g.Winner != 1 || g.WinReason != WinHQCapture {
		t.Fatalf("finish = %s/%d/%s, want finished/1/hq_capture", g.Phase, g.Winner, g.WinReason)
	}
	var sawOver bool
	for _, ev := range events {
		if ev.Type == EventGameOver {
			sawOver = true
			if ev.Winner != 1 || ev.Reason != WinHQCapture {
				t.Errorf("game_over = %+v", ev)
			}
		}
	}
	if !sawOver {
		t.Error("no game_over event")
	}
	// Finished game accepts no further actions.
	if _, err := g.EndTurn("alice"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("action after finish: err = %v, want ErrWrongPhase", err)
	}
}

func TestCaptureClaimSwitchResetsProgress(t *testing.T) {
	tpl := captureTemplate(BuildingCity, 0)
	tpl.Units = append(tpl.Units, TemplateUnit{X: 4, Y: 5, Kind: UnitInfantry, Owner: 2})
	g := startedGame(t, tpl)
	mine := unitByOwnerPos(t, g, 1, Position{4, 4})
	theirs := unitByOwnerPos(t, g, 2, Position{4, 5})
	b, _ := g.BuildingAt(Position{4, 4})

	if _, err := g.Capture("alice", mine.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	// The claiming unit falls during slot 2's turn; its claim is still on
	// the books when slot 2 storms the tile, and must restart at 1.
	g.killUnit(mine)
	if b.Claimant != 1 || b.Progress != 1 {
		t.Fatalf("claim = %d/%d before switch, want 1/1", b.Claimant, b.Progress)
	}
	if _, err := g.Move("bob", theirs.ID, []Position{{4, 4}}); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := g.Capture("bob", theirs.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b.Claimant != 2 || b.Progress != 1 {
		t.Errorf("claim = %d/%d, want fresh claim 2/1", b.Claimant, b.Progress)
	}
}

func TestCaptureRejections(t *testing.T) {
	tpl := captureTemplate(BuildingCity, 1)
	tpl.Units = append(tpl.Units,
		TemplateUnit{X: 2, Y: 2, Kind: UnitTank, Owner: 1},
		TemplateUnit{X: 1, Y: 4, Kind: UnitInfantry, Owner: 1},
	)
	g := startedGame(t, tpl)

	own := unitByOwnerPos(t, g, 1, Position{4, 4})
	if _, err := g.Capture("alice", own.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("own building: err = %v, want ErrInvalidTarget", err)
	}

	tank := unitByOwnerPos(t, g, 1, Position{2, 2})
	if _, err := g.Capture("alice", tank.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("tank capture: err = %v, want ErrInvalidTarget", err)
	}

	bare := unitByOwnerPos(t, g, 1, Position{1, 4})
	if _, err := g.Capture("alice", bare.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("no building underfoot: err = %v, want ErrInvalidTarget", err)
	}
}

// A claim whose unit died goes stale and drops at the claimant's next turn
// boundary.
func TestCaptureStaleClaimDropsAfterDeath(t *testing.T) {
	g := startedGame(t, captureTemplate(BuildingCity, 0))
	u := unitByOwnerPos(t, g, 1, Position{4, 4})
	b, _ := g.BuildingAt(Position{4, 4})

	if _, err := g.Capture("alice", u.ID); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	g.killUnit(u)
	if b.Claimant != 1 {
		t.Fatal("claim should survive until a turn boundary")
	}
	if _, err := g.EndTurn("alice"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if b.Claimant != 0 || b.Progress != 0 {
		t.Errorf("claim = %d/%d after turn boundary, want 0/0", b.Claimant, b.Progress)
	}
}
