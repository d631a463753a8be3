package engine

import (
	"encoding/json"
	"fmt"
)

// Snapshot serializes the full game state for persistence. The occupancy
// index is derived state and is rebuilt on restore.
func (g *Game) Snapshot() ([]byte, error) {
	return json.Marshal(g)
}

// Restore rebuilds a game from a snapshot. The entropy source is runtime
// wiring and must be supplied again.
func Restore(data []byte, entropy EntropySource) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("restore game: %w", err)
	}
	g.entropy = entropy
	g.occupied = make(map[Position]int, len(g.Units))
	for id, u := range g.Units {
		if u.ID != id {
			return nil, fmt.Errorf("restore game: unit key %d holds unit %d", id, u.ID)
		}
		if !u.Alive {
			continue
		}
		if prev, dup := g.occupied[u.Pos]; dup {
			return nil, fmt.Errorf("restore game: units %d and %d share (%d,%d)", prev, u.ID, u.Pos.X, u.Pos.Y)
		}
		g.occupied[u.Pos] = u.ID
	}
	g.byPos = make(map[Position]*Building, len(g.Buildings))
	for _, b := range g.Buildings {
		g.byPos[b.Pos] = b
	}
	return &g, nil
}
