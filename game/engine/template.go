package engine

import (
	"fmt"
)

// TemplateTile is one non-grass cell in a map template. Cells a template does
// not mention default to grass.
type TemplateTile struct {
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Kind   TileKind   `json:"kind"`
	Border BorderKind `json:"border,omitempty"`
}

// TemplateBuilding is a building placement. Owner 0 means neutral; HQs must
// be owned.
type TemplateBuilding struct {
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Kind  BuildingKind `json:"kind"`
	Owner int          `json:"owner"`
}

// TemplateUnit is a starting unit placement. Units spawn when their owning
// slot joins the session.
type TemplateUnit struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Kind  UnitKind `json:"kind"`
	Owner int      `json:"owner"`
}

// MapTemplate is an immutable map definition sessions are instantiated from.
// The number of HQs defines the number of player slots.
type MapTemplate struct {
	ID        string             `json:"id,omitempty"`
	Name      string             `json:"name"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Tiles     []TemplateTile     `json:"tiles,omitempty"`
	Buildings []TemplateBuilding `json:"buildings"`
	Units     []TemplateUnit     `json:"units,omitempty"`
}

// Pos returns the cell a template tile occupies.
func (t TemplateTile) Pos() Position { return Position{X: t.X, Y: t.Y} }

// Pos returns the cell a template building occupies.
func (b TemplateBuilding) Pos() Position { return Position{X: b.X, Y: b.Y} }

// Pos returns the cell a template unit occupies.
func (u TemplateUnit) Pos() Position { return Position{X: u.X, Y: u.Y} }

// SlotCount returns the number of player slots the template defines, which is
// its HQ count.
func (t *MapTemplate) SlotCount() int {
	n := 0
	for _, b := range t.Buildings {
		if b.Kind == BuildingHQ {
			n++
		}
	}
	return n
}

// Terrain expands the sparse tile list into a full row-major grid.
// Unlisted cells are grass.
func (t *MapTemplate) Terrain() [][]TileKind {
	grid := make([][]TileKind, t.Height)
	for y := range grid {
		grid[y] = make([]TileKind, t.Width)
		for x := range grid[y] {
			grid[y][x] = TileGrass
		}
	}
	for _, tile := range t.Tiles {
		if tile.Y >= 0 && tile.Y < t.Height && tile.X >= 0 && tile.X < t.Width {
			grid[tile.Y][tile.X] = tile.Kind
		}
	}
	return grid
}

func (t *MapTemplate) inBounds(p Position) bool {
	return p.X >= 0 && p.X < t.Width && p.Y >= 0 && p.Y < t.Height
}

// Validate checks every template invariant. Templates are validated once at
// registration; sessions trust registered templates.
func (t *MapTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if t.Width < 1 || t.Width > MaxMapEdge || t.Height < 1 || t.Height > MaxMapEdge {
		return fmt.Errorf("%w: dimensions %dx%d out of range 1..%d", ErrInvalidTemplate, t.Width, t.Height, MaxMapEdge)
	}

	seen := make(map[Position]bool, len(t.Tiles))
	water := make(map[Position]BorderKind)
	for _, tile := range t.Tiles {
		p := tile.Pos()
		if !t.inBounds(p) {
			return fmt.Errorf("%w: tile at (%d,%d) out of bounds", ErrInvalidTemplate, p.X, p.Y)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate tile at (%d,%d)", ErrInvalidTemplate, p.X, p.Y)
		}
		seen[p] = true
		if _, ok := tileStats[tile.Kind]; !ok {
			return fmt.Errorf("%w: unknown tile kind %q at (%d,%d)", ErrInvalidTemplate, tile.Kind, p.X, p.Y)
		}
		if tile.Kind == TileWater {
			if tile.Border != BorderNone && tile.Border != BorderBeach && tile.Border != BorderCliff {
				return fmt.Errorf("%w: unknown border kind %q at (%d,%d)", ErrInvalidTemplate, tile.Border, p.X, p.Y)
			}
			water[p] = tile.Border
		} else if tile.Border != BorderNone {
			return fmt.Errorf("%w: border on non-water tile at (%d,%d)", ErrInvalidTemplate, p.X, p.Y)
		}
	}

	// Water that touches land or the map edge needs a shoreline. Only water
	// enclosed by water on all four sides may omit it.
	for p, border := range water {
		if border != BorderNone {
			continue
		}
		for _, n := range []Position{{p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y - 1}, {p.X, p.Y + 1}} {
			if _, isWater := water[n]; !isWater {
				return fmt.Errorf("%w: water at (%d,%d) touches land without a border", ErrInvalidTemplate, p.X, p.Y)
			}
		}
	}

	hqOwners := make(map[int]bool)
	buildingAt := make(map[Position]bool, len(t.Buildings))
	hqCount := 0
	for _, b := range t.Buildings {
		p := b.Pos()
		if !t.inBounds(p) {
			return fmt.Errorf("%w: building at (%d,%d) out of bounds", ErrInvalidTemplate, p.X, p.Y)
		}
		if buildingAt[p] {
			return fmt.Errorf("%w: duplicate building at (%d,%d)", ErrInvalidTemplate, p.X, p.Y)
		}
		buildingAt[p] = true
		if _, isWater := water[p]; isWater {
			return fmt.Errorf("%w: building on water at (%d,%d)", ErrInvalidTemplate, p.X, p.Y)
		}
		switch b.Kind {
		case BuildingHQ:
			hqCount++
			if b.Owner < 1 {
				return fmt.Errorf("%w: HQ at (%d,%d) must be owned", ErrInvalidTemplate, p.X, p.Y)
			}
			if hqOwners[b.Owner] {
				return fmt.Errorf("%w: slot %d owns more than one HQ", ErrInvalidTemplate, b.Owner)
			}
			hqOwners[b.Owner] = true
		case BuildingCity, BuildingFactory:
			if b.Owner < 0 {
				return fmt.Errorf("%w: building at (%d,%d) has negative owner", ErrInvalidTemplate, p.X, p.Y)
			}
		default:
			return fmt.Errorf("%w: unknown building kind %q at (%d,%d)", ErrInvalidTemplate, b.Kind, p.X, p.Y)
		}
	}
	if hqCount < MinHQCount || hqCount > MaxHQCount {
		return fmt.Errorf("%w: HQ count %d out of range %d..%d", ErrInvalidTemplate, hqCount, MinHQCount, MaxHQCount)
	}
	// HQ owners must be exactly slots 1..hqCount.
	for s := 1; s <= hqCount; s++ {
		if !hqOwners[s] {
			return fmt.Errorf("%w: no HQ for slot %d", ErrInvalidTemplate, s)
		}
	}
	for _, b := range t.Buildings {
		if b.Owner > hqCount {
			return fmt.Errorf("%w: building owner %d exceeds slot count %d", ErrInvalidTemplate, b.Owner, hqCount)
		}
	}

	unitAt := make(map[Position]bool, len(t.Units))
	for _, u := range t.Units {
		p := u.Pos()
		if !t.inBounds(p) {
			return fmt.Errorf("%w: unit at (%d,%d) out of bounds", ErrInvalidTemplate, p.X, p.Y)
		}
		if unitAt[p] {
			return fmt.Errorf("%w: duplicate unit at (%d,%d)", ErrInvalidTemplate, p.X, p.Y)
		}
		unitAt[p] = true
		if u.Owner < 1 || u.Owner > hqCount {
			return fmt.Errorf("%w: unit at (%d,%d) owned by invalid slot %d", ErrInvalidTemplate, p.X, p.Y, u.Owner)
		}
		if _, ok := unitStats[u.Kind]; !ok {
			return fmt.Errorf("%w: unknown unit kind %q at (%d,%d)", ErrInvalidTemplate, u.Kind, p.X, p.Y)
		}
		kind := TileGrass
		for _, tile := range t.Tiles {
			if tile.Pos() == p {
				kind = tile.Kind
				break
			}
		}
		if !passableFor(u.Kind, kind) {
			return fmt.Errorf("%w: unit at (%d,%d) placed on impassable terrain", ErrInvalidTemplate, p.X, p.Y)
		}
	}
	return nil
}
