package engine

import "fmt"

// Move walks a unit along an explicit path of adjacent cells. The whole path
// is validated before any state changes; a rejected move leaves the unit
// untouched.
//
// Road-capable kinds that start the move on a road get a bonus budget that
// pays for road steps only. The bonus is forfeited for the rest of the move
// the first time a step leaves the road.
func (g *Game) Move(caller string, unitID int, path []Position) ([]Event, error) {
	if err := g.requireTurn(caller); err != nil {
		return nil, err
	}
	u, err := g.activeUnit(unitID)
	if err != nil {
		return nil, err
	}
	if u.LastMovedRound >= g.Round || u.LastActedRound >= g.Round {
		return nil, fmt.Errorf("%w: unit %d already moved or acted", ErrUnitUnavailable, unitID)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	stats := unitStats[u.Kind]
	budget := stats.Move
	bonus := 0
	if stats.RoadBonus && IsRoad(g.TerrainAt(u.Pos)) {
		bonus = RoadBonusBudget
	}

	spent := 0
	prev := u.Pos
	for i, step := range path {
		if Manhattan(prev, step) != 1 {
			return nil, fmt.Errorf("%w: step %d not adjacent", ErrInvalidPath, i)
		}
		terrain := g.TerrainAt(step)
		if !passableFor(u.Kind, terrain) {
			return nil, fmt.Errorf("%w: step %d impassable for %s", ErrInvalidPath, i, u.Kind)
		}
		if other, ok := g.UnitAt(step); ok && other.ID != u.ID && other.Owner != u.Owner {
			return nil, fmt.Errorf("%w: step %d blocked by enemy unit", ErrInvalidPath, i)
		}

		cost := g.tileStatsAt(step).MoveCost
		if IsRoad(terrain) {
			if bonus > 0 {
				pay := cost
				if pay > bonus {
					pay = bonus
				}
				bonus -= pay
				cost -= pay
			}
		} else {
			bonus = 0
		}
		spent += cost
		if spent > budget {
			return nil, fmt.Errorf("%w: cost %d exceeds movement %d", ErrInvalidPath, spent, budget)
		}
		prev = step
	}

	dest := path[len(path)-1]
	if other, ok := g.UnitAt(dest); ok && other.ID != u.ID {
		return nil, fmt.Errorf("%w: destination occupied", ErrInvalidPath)
	}

	from := u.Pos
	// A capturing unit abandons its claim the moment it leaves the tile.
	if stats.CanCapture && dest != from {
		if b, ok := g.byPos[from]; ok && b.Claimant == u.Owner {
			b.Claimant = 0
			b.Progress = 0
		}
	}
	delete(g.occupied, from)
	u.Pos = dest
	g.occupied[dest] = u.ID
	u.LastMovedRound = g.Round

	return []Event{{
		Type:   EventUnitMoved,
		Round:  g.Round,
		Slot:   u.Owner,
		UnitID: u.ID,
		From:   &from,
		Pos:    &dest,
	}}, nil
}
