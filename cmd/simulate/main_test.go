package main

import (
	"strings"
	"testing"

	"github.com/hashfront/skirmish-server/game/engine"
)

func simTemplate() *engine.MapTemplate {
	return &engine.MapTemplate{
		ID:     "sim-test",
		Name:   "sim test map",
		Width:  8,
		Height: 8,
		Tiles: []engine.TemplateTile{
			{X: 3, Y: 3, Kind: engine.TileMountain},
			{X: 4, Y: 4, Kind: engine.TileWater, Border: engine.BorderBeach},
		},
		Buildings: []engine.TemplateBuilding{
			{X: 0, Y: 0, Kind: engine.BuildingHQ, Owner: 1},
			{X: 7, Y: 7, Kind: engine.BuildingHQ, Owner: 2},
			{X: 1, Y: 1, Kind: engine.BuildingFactory, Owner: 1},
			{X: 6, Y: 6, Kind: engine.BuildingFactory, Owner: 2},
		},
		Units: []engine.TemplateUnit{
			{X: 1, Y: 0, Kind: engine.UnitInfantry, Owner: 1},
			{X: 6, Y: 7, Kind: engine.UnitInfantry, Owner: 2},
		},
	}
}

func TestSelfPlayFinishes(t *testing.T) {
	for _, strat := range []strategy{strategyGreedy, strategyRush} {
		g, err := newSelfPlayGame(simTemplate(), "sim-test-1", 12, 7)
		if err != nil {
			t.Fatalf("newSelfPlayGame: %v", err)
		}
		if err := playOut(g, strat); err != nil {
			t.Fatalf("playOut(%s): %v", strat, err)
		}
		if g.Phase != engine.PhaseFinished {
			t.Fatalf("%s: phase = %s, want finished", strat, g.Phase)
		}
		if g.Winner == 0 || g.WinReason == engine.WinNone {
			t.Errorf("%s: finished without a decision: winner=%d reason=%q", strat, g.Winner, g.WinReason)
		}
	}
}

func TestSelfPlayIsDeterministic(t *testing.T) {
	run := func() (int, engine.WinReason, int) {
		g, err := newSelfPlayGame(simTemplate(), "sim-det", 12, 11)
		if err != nil {
			t.Fatalf("newSelfPlayGame: %v", err)
		}
		if err := playOut(g, strategyGreedy); err != nil {
			t.Fatalf("playOut: %v", err)
		}
		return g.Winner, g.WinReason, g.Round
	}
	w1, r1, n1 := run()
	w2, r2, n2 := run()
	if w1 != w2 || r1 != r2 || n1 != n2 {
		t.Errorf("runs diverged: (%d,%s,%d) vs (%d,%s,%d)", w1, r1, n1, w2, r2, n2)
	}
}

func TestParseStrategy(t *testing.T) {
	if _, err := parseStrategy("greedy"); err != nil {
		t.Errorf("greedy rejected: %v", err)
	}
	if _, err := parseStrategy("rush"); err != nil {
		t.Errorf("rush rejected: %v", err)
	}
	if _, err := parseStrategy("cowardly"); err == nil {
		t.Error("unknown strategy accepted")
	}
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate(simTemplate())
	lines := strings.Split(out, "\n")
	if len(lines) < 8 {
		t.Fatalf("render too short: %q", out)
	}
	for y := 0; y < 8; y++ {
		if len(lines[y]) != 8 {
			t.Errorf("row %d width = %d, want 8", y, len(lines[y]))
		}
	}
	if lines[0][0] != 'H' {
		t.Errorf("HQ at (0,0) rendered as %q", lines[0][0])
	}
	if lines[3][3] != '^' {
		t.Errorf("mountain at (3,3) rendered as %q", lines[3][3])
	}
	if lines[4][4] != '~' {
		t.Errorf("water at (4,4) rendered as %q", lines[4][4])
	}
	if lines[0][1] != 'I' {
		t.Errorf("infantry at (1,0) rendered as %q", lines[0][1])
	}
}

func TestStepCostBlocksTerrain(t *testing.T) {
	g, err := newSelfPlayGame(simTemplate(), "sim-cost", 12, 1)
	if err != nil {
		t.Fatalf("newSelfPlayGame: %v", err)
	}

	if c := stepCost(g, engine.UnitTank, 1, engine.Position{X: 3, Y: 3}); c != -1 {
		t.Errorf("tank onto mountain: cost %d, want blocked", c)
	}
	if c := stepCost(g, engine.UnitInfantry, 1, engine.Position{X: 3, Y: 3}); c != 2 {
		t.Errorf("infantry onto mountain: cost %d, want 2", c)
	}
	if c := stepCost(g, engine.UnitInfantry, 1, engine.Position{X: 4, Y: 4}); c != -1 {
		t.Errorf("infantry onto water: cost %d, want blocked", c)
	}
	// Enemy tiles block pass-through.
	if c := stepCost(g, engine.UnitInfantry, 1, engine.Position{X: 6, Y: 7}); c != -1 {
		t.Errorf("infantry onto enemy tile: cost %d, want blocked", c)
	}
}

func TestReachableHonorsMoveBudget(t *testing.T) {
	g, err := newSelfPlayGame(simTemplate(), "sim-reach", 12, 1)
	if err != nil {
		t.Fatalf("newSelfPlayGame: %v", err)
	}
	u, ok := g.UnitAt(engine.Position{X: 1, Y: 0})
	if !ok {
		t.Fatal("no unit at (1,0)")
	}

	paths := reachable(g, u)
	if len(paths) == 0 {
		t.Fatal("no reachable tiles")
	}
	stats, _ := engine.StatsFor(u.Kind)
	for pos, path := range paths {
		if len(path) == 0 || path[len(path)-1] != pos {
			t.Fatalf("path to (%d,%d) does not end there", pos.X, pos.Y)
		}
		cost := 0
		for _, step := range path {
			c := stepCost(g, u.Kind, u.Owner, step)
			if c < 0 {
				t.Fatalf("path to (%d,%d) crosses blocked tile (%d,%d)", pos.X, pos.Y, step.X, step.Y)
			}
			cost += c
		}
		if cost > stats.Move {
			t.Errorf("path to (%d,%d) costs %d, budget %d", pos.X, pos.Y, cost, stats.Move)
		}
	}
	if _, ok := paths[engine.Position{X: 7, Y: 7}]; ok {
		t.Error("enemy HQ tile reported reachable in one move")
	}
}

func TestDistanceFieldConverges(t *testing.T) {
	g, err := newSelfPlayGame(simTemplate(), "sim-field", 12, 1)
	if err != nil {
		t.Fatalf("newSelfPlayGame: %v", err)
	}
	goal := engine.Position{X: 7, Y: 7}
	field := distanceField(g, engine.UnitInfantry, goal)

	if field[goal] != 0 {
		t.Errorf("goal distance = %d", field[goal])
	}
	// Stepping toward the goal must strictly reduce the field somewhere
	// adjacent, or pathing would stall.
	at := engine.Position{X: 1, Y: 0}
	for at != goal {
		next := at
		for _, n := range neighbors(g, at) {
			d, ok := field[n]
			if ok && d < field[next] {
				next = n
			}
		}
		if next == at {
			t.Fatalf("field stalls at (%d,%d)", at.X, at.Y)
		}
		at = next
	}
}
