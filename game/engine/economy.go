package engine

import "fmt"

// Build queues a unit at a factory the caller owns. Gold is deducted up
// front; the unit appears on the owner's next turn if the tile is clear.
func (g *Game) Build(caller string, factory Position, kind UnitKind) ([]Event, error) {
	if err := g.requireTurn(caller); err != nil {
		return nil, err
	}
	b, ok := g.byPos[factory]
	if !ok || b.Kind != BuildingFactory {
		return nil, fmt.Errorf("%w: no factory at (%d,%d)", ErrInvalidTarget, factory.X, factory.Y)
	}
	if b.Owner != g.CurrentSlot {
		return nil, fmt.Errorf("%w: factory at (%d,%d)", ErrNotYourBuilding, factory.X, factory.Y)
	}
	if b.Queued != UnitNone {
		return nil, fmt.Errorf("%w: %s pending at (%d,%d)", ErrFactoryBusy, b.Queued, factory.X, factory.Y)
	}
	stats, ok := unitStats[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown unit kind %q", ErrInvalidTarget, kind)
	}
	s := g.Slots[g.CurrentSlot-1]
	if s.Gold < stats.Cost {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientGold, stats.Cost, s.Gold)
	}

	s.Gold -= stats.Cost
	b.Queued = kind
	pos := b.Pos
	return []Event{{
		Type:     EventUnitBuilt,
		Round:    g.Round,
		Slot:     s.Slot,
		UnitKind: kind,
		Pos:      &pos,
		Gold:     s.Gold,
	}}, nil
}

// collectIncome pays a slot its turn income.
func (g *Game) collectIncome(slot int) []Event {
	s := g.Slots[slot-1]
	income := BaseIncome + s.Cities*CityIncome
	s.Gold += income
	return []Event{{
		Type:  EventIncomeCollected,
		Round: g.Round,
		Slot:  slot,
		Gold:  income,
	}}
}

// runProduction spawns queued units at the slot's factories. A blocked
// factory keeps its queue for a later turn. Fresh units cannot move or act
// until the owner's next turn.
func (g *Game) runProduction(slot int) []Event {
	var events []Event
	for _, b := range g.Buildings {
		if b.Kind != BuildingFactory || b.Owner != slot || b.Queued == UnitNone {
			continue
		}
		if _, blocked := g.UnitAt(b.Pos); blocked {
			continue
		}
		u := g.spawnUnit(slot, b.Queued, b.Pos, true)
		b.Queued = UnitNone
		pos := u.Pos
		events = append(events, Event{
			Type:     EventUnitSpawned,
			Round:    g.Round,
			Slot:     slot,
			UnitID:   u.ID,
			UnitKind: u.Kind,
			Pos:      &pos,
		})
	}
	return events
}
