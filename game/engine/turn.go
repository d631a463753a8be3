package engine

import "fmt"

// EndTurn passes control to the next living slot. The ending slot's stale
// capture claims are dropped, then the incoming slot collects income and its
// factories produce. The round counter advances every time the rotation
// wraps past slot 1; crossing the round limit decides the game on points.
func (g *Game) EndTurn(caller string) ([]Event, error) {
	if err := g.requireTurn(caller); err != nil {
		return nil, err
	}
	return g.advanceTurn(), nil
}

func (g *Game) advanceTurn() []Event {
	ending := g.CurrentSlot
	g.resetStaleClaims(ending)

	next := g.CurrentSlot
	round := g.Round
	for i := 0; i < g.SlotCount; i++ {
		next++
		if next > g.SlotCount {
			next = 1
			round++
		}
		if g.Slots[next-1].Alive {
			break
		}
	}

	events := []Event{{Type: EventTurnEnded, Round: g.Round, Slot: ending}}

	if round > g.RoundLimit {
		return append(events, g.finishOnPoints()...)
	}

	g.CurrentSlot = next
	g.Round = round
	g.resetStaleClaims(next)
	events = append(events, g.collectIncome(next)...)
	events = append(events, g.runProduction(next)...)
	return events
}

// finishOnPoints decides a timed-out game by surviving hit points plus gold,
// ties going to the lower slot number.
func (g *Game) finishOnPoints() []Event {
	winner := 0
	best := -1
	for _, s := range g.Slots {
		if !s.Alive {
			continue
		}
		if score := g.strength(s.Slot); score > best {
			best = score
			winner = s.Slot
		}
	}
	return g.finish(winner, WinTimeout)
}

// Resign eliminates one of the caller's slots. Unlike other actions it is
// legal out of turn. If the resigning slot was active the turn advances
// exactly as in EndTurn; if one slot remains it wins by resignation.
func (g *Game) Resign(caller string) ([]Event, error) {
	if g.Phase != PhasePlaying {
		return nil, fmt.Errorf("%w: game is %s", ErrWrongPhase, g.Phase)
	}
	// Prefer the active slot when the caller controls several.
	var slot *PlayerSlot
	for _, s := range g.Slots {
		if s.Controller != caller || !s.Alive {
			continue
		}
		if s.Slot == g.CurrentSlot {
			slot = s
			break
		}
		if slot == nil {
			slot = s
		}
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: %s controls no living slot", ErrNotYourTurn, caller)
	}

	slot.Alive = false
	events := []Event{{Type: EventPlayerResigned, Round: g.Round, Slot: slot.Slot}}

	alive := 0
	winner := 0
	for _, s := range g.Slots {
		if s.Alive {
			alive++
			winner = s.Slot
		}
	}
	if alive == 1 {
		return append(events, g.finish(winner, WinResignation)...), nil
	}
	if alive == 0 {
		return append(events, g.finish(0, WinResignation)...), nil
	}
	if slot.Slot == g.CurrentSlot {
		events = append(events, g.advanceTurn()...)
	}
	return events, nil
}
