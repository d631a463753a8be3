package engine

// UnitStats is the static rule sheet for one unit kind.
type UnitStats struct {
	MaxHP          int
	Attack         int
	Move           int
	MinRange       int
	MaxRange       int
	Accuracy       int
	LongShotPenalty int
	Cost           int
	CanCapture     bool
	RoadBonus      bool
	StationaryFire bool
	ClimbsMountains bool
}

// TileStats is the static rule sheet for one terrain kind.
type TileStats struct {
	MoveCost int
	Defense  int
	Evasion  int
	Passable bool
}

var unitStats = map[UnitKind]UnitStats{
	UnitInfantry: {
		MaxHP:           3,
		Attack:          2,
		Move:            4,
		MinRange:        1,
		MaxRange:        1,
		Accuracy:        90,
		Cost:            1,
		CanCapture:      true,
		ClimbsMountains: true,
	},
	UnitTank: {
		MaxHP:     5,
		Attack:    4,
		Move:      2,
		MinRange:  1,
		MaxRange:  1,
		Accuracy:  85,
		Cost:      3,
		RoadBonus: true,
	},
	UnitRanger: {
		MaxHP:           3,
		Attack:          3,
		Move:            3,
		MinRange:        2,
		MaxRange:        3,
		Accuracy:        88,
		LongShotPenalty: 5,
		Cost:            2,
		CanCapture:      true,
		RoadBonus:       true,
		StationaryFire:  true,
	},
}

var tileStats = map[TileKind]TileStats{
	TileGrass:    {MoveCost: 1, Passable: true},
	TileRoad:     {MoveCost: 1, Passable: true},
	TileDirtRoad: {MoveCost: 1, Passable: true},
	TileTree:     {MoveCost: 1, Defense: 1, Evasion: 5, Passable: true},
	TileMountain: {MoveCost: 2, Defense: 2, Evasion: 12, Passable: true},
	TileWater:    {MoveCost: 1, Passable: false},
}

// A building overrides the defensive properties of the terrain underneath it.
var buildingStats = map[BuildingKind]TileStats{
	BuildingHQ:      {MoveCost: 1, Defense: 2, Evasion: 10, Passable: true},
	BuildingCity:    {MoveCost: 1, Defense: 1, Evasion: 8, Passable: true},
	BuildingFactory: {MoveCost: 1, Defense: 1, Evasion: 8, Passable: true},
}

// StatsFor returns the rule sheet for a unit kind.
func StatsFor(kind UnitKind) (UnitStats, bool) {
	s, ok := unitStats[kind]
	return s, ok
}

// TerrainStats returns the rule sheet for a terrain kind.
func TerrainStats(kind TileKind) (TileStats, bool) {
	s, ok := tileStats[kind]
	return s, ok
}

// BuildableKinds lists the unit kinds a factory can produce, cheapest first.
func BuildableKinds() []UnitKind {
	return []UnitKind{UnitInfantry, UnitRanger, UnitTank}
}

// IsRoad reports whether a tile counts as road surface for the road bonus.
func IsRoad(kind TileKind) bool {
	return kind == TileRoad || kind == TileDirtRoad
}

// passableFor reports whether a unit kind may stand on the given terrain.
// Mountains are restricted to climbing kinds, water to nobody.
func passableFor(kind UnitKind, tile TileKind) bool {
	ts, ok := tileStats[tile]
	if !ok || !ts.Passable {
		return false
	}
	if tile == TileMountain {
		us, ok := unitStats[kind]
		return ok && us.ClimbsMountains
	}
	return true
}
