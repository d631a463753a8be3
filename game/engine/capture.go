package engine

import "fmt"

// Capture advances a capture attempt on the building under the acting unit.
// Progress belongs to the slot, not the unit: a claim started by one eligible
// unit can be finished by another standing on the same tile later.
//
// Reaching the threshold transfers ownership and clears any production queue.
// Taking an HQ ends the game on the spot.
func (g *Game) Capture(caller string, unitID int) ([]Event, error) {
	if err := g.requireTurn(caller); err != nil {
		return nil, err
	}
	u, err := g.activeUnit(unitID)
	if err != nil {
		return nil, err
	}
	if u.LastActedRound >= g.Round {
		return nil, fmt.Errorf("%w: unit %d", ErrAlreadyActed, unitID)
	}
	stats := unitStats[u.Kind]
	if !stats.CanCapture {
		return nil, fmt.Errorf("%w: %s cannot capture", ErrInvalidTarget, u.Kind)
	}
	b, ok := g.byPos[u.Pos]
	if !ok {
		return nil, fmt.Errorf("%w: no building at (%d,%d)", ErrInvalidTarget, u.Pos.X, u.Pos.Y)
	}
	if b.Owner == u.Owner {
		return nil, fmt.Errorf("%w: building already yours", ErrInvalidTarget)
	}

	if b.Claimant != u.Owner {
		b.Claimant = u.Owner
		b.Progress = 0
	}
	b.Progress++
	u.LastActedRound = g.Round
	pos := b.Pos

	if b.Progress < CaptureThreshold {
		return []Event{{
			Type:     EventCaptureProgressed,
			Round:    g.Round,
			Slot:     u.Owner,
			UnitID:   u.ID,
			Pos:      &pos,
			Building: b.Kind,
			Progress: b.Progress,
		}}, nil
	}

	oldOwner := b.Owner
	g.adjustBuildingCount(oldOwner, b.Kind, -1)
	g.adjustBuildingCount(u.Owner, b.Kind, +1)
	b.Owner = u.Owner
	b.Claimant = 0
	b.Progress = 0
	b.Queued = UnitNone

	events := []Event{{
		Type:     EventBuildingCaptured,
		Round:    g.Round,
		Slot:     u.Owner,
		UnitID:   u.ID,
		Pos:      &pos,
		Building: b.Kind,
	}}
	if b.Kind == BuildingHQ {
		events = append(events, g.finish(u.Owner, WinHQCapture)...)
	}
	if oldOwner > 0 {
		events = append(events, g.checkElimination(oldOwner)...)
	}
	return events, nil
}

// resetStaleClaims drops capture claims held by a slot whose claiming unit no
// longer stands on the tile, whether it moved off or died.
func (g *Game) resetStaleClaims(slot int) {
	for _, b := range g.Buildings {
		if b.Claimant != slot {
			continue
		}
		u, ok := g.UnitAt(b.Pos)
		if !ok || u.Owner != slot || !unitStats[u.Kind].CanCapture {
			b.Claimant = 0
			b.Progress = 0
		}
	}
}
