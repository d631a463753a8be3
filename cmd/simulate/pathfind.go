package main

import (
	"container/heap"

	"github.com/hashfront/skirmish-server/game/engine"
)

// stepCost returns the cost for a unit kind to enter a tile during this
// round's move, or -1 when the tile cannot be entered. Enemy units block
// pass-through; friendly units do not.
func stepCost(g *engine.Game, kind engine.UnitKind, owner int, pos engine.Position) int {
	terrain := g.TerrainAt(pos)
	stats, ok := engine.TerrainStats(terrain)
	if !ok || !stats.Passable {
		return -1
	}
	if terrain == engine.TileMountain {
		us, _ := engine.StatsFor(kind)
		if !us.ClimbsMountains {
			return -1
		}
	}
	if u, occupied := g.UnitAt(pos); occupied && u.Owner != owner {
		return -1
	}
	return stats.MoveCost
}

type searchNode struct {
	pos   engine.Position
	cost  int
	index int
}

type searchQueue []*searchNode

func (q searchQueue) Len() int            { return len(q) }
func (q searchQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q searchQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *searchQueue) Push(x interface{}) { n := x.(*searchNode); n.index = len(*q); *q = append(*q, n) }
func (q *searchQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

func neighbors(g *engine.Game, pos engine.Position) []engine.Position {
	out := make([]engine.Position, 0, 4)
	for _, d := range []engine.Position{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		n := engine.Position{X: pos.X + d.X, Y: pos.Y + d.Y}
		if n.X >= 0 && n.X < g.Width && n.Y >= 0 && n.Y < g.Height {
			out = append(out, n)
		}
	}
	return out
}

// reachable runs Dijkstra from the unit's tile, bounded by its move budget,
// and returns the cheapest legal path to every tile the unit could end this
// round's move on. Tiles holding any unit are traversable when friendly but
// never returned as destinations.
func reachable(g *engine.Game, u *engine.Unit) map[engine.Position][]engine.Position {
	stats, ok := engine.StatsFor(u.Kind)
	if !ok {
		return nil
	}

	dist := map[engine.Position]int{u.Pos: 0}
	prev := map[engine.Position]engine.Position{}

	q := &searchQueue{}
	heap.Init(q)
	heap.Push(q, &searchNode{pos: u.Pos, cost: 0})

	for q.Len() > 0 {
		cur := heap.Pop(q).(*searchNode)
		if cur.cost > dist[cur.pos] {
			continue
		}
		for _, n := range neighbors(g, cur.pos) {
			cost := stepCost(g, u.Kind, u.Owner, n)
			if cost < 0 {
				continue
			}
			total := cur.cost + cost
			if total > stats.Move {
				continue
			}
			if best, seen := dist[n]; seen && total >= best {
				continue
			}
			dist[n] = total
			prev[n] = cur.pos
			heap.Push(q, &searchNode{pos: n, cost: total})
		}
	}

	paths := make(map[engine.Position][]engine.Position, len(dist))
	for pos := range dist {
		if pos == u.Pos {
			continue
		}
		if _, occupied := g.UnitAt(pos); occupied {
			continue
		}
		var path []engine.Position
		for at := pos; at != u.Pos; at = prev[at] {
			path = append([]engine.Position{at}, path...)
		}
		paths[pos] = path
	}
	return paths
}

// distanceField runs Dijkstra outward from a goal tile, ignoring unit
// occupancy, and returns each tile's remaining travel cost to the goal.
// Tiles the kind cannot ever reach are absent.
func distanceField(g *engine.Game, kind engine.UnitKind, goal engine.Position) map[engine.Position]int {
	dist := map[engine.Position]int{goal: 0}

	q := &searchQueue{}
	heap.Init(q)
	heap.Push(q, &searchNode{pos: goal, cost: 0})

	enterable := func(pos engine.Position) (int, bool) {
		terrain := g.TerrainAt(pos)
		stats, ok := engine.TerrainStats(terrain)
		if !ok || !stats.Passable {
			return 0, false
		}
		if terrain == engine.TileMountain {
			us, _ := engine.StatsFor(kind)
			if !us.ClimbsMountains {
				return 0, false
			}
		}
		return stats.MoveCost, true
	}

	for q.Len() > 0 {
		cur := heap.Pop(q).(*searchNode)
		if cur.cost > dist[cur.pos] {
			continue
		}
		// Walking n -> cur pays cur's entry cost, so the reverse edge
		// weighs the tile being left behind.
		enterCur, ok := enterable(cur.pos)
		if !ok {
			enterCur = 0
		}
		for _, n := range neighbors(g, cur.pos) {
			if _, ok := enterable(n); !ok {
				continue
			}
			total := cur.cost + enterCur
			if best, seen := dist[n]; seen && total >= best {
				continue
			}
			dist[n] = total
			heap.Push(q, &searchNode{pos: n, cost: total})
		}
	}
	return dist
}
