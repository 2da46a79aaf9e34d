package tanks

import (
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// TerrainKind is the material of a map tile.
type TerrainKind uint8

const (
	Blank TerrainKind = iota
	Brick
	Steel
	Grass
	Water
)

func (k TerrainKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Brick:
		return "brick"
	case Steel:
		return "steel"
	case Grass:
		return "grass"
	case Water:
		return "water"
	default:
		return "?"
	}
}

// TerrainProps describes how a terrain kind interacts with movers.
type TerrainProps struct {
	TankPassable       bool
	ProjectilePassable bool
	Destructible       bool
	Strength           int // minimum projectile power that removes a quadrant
}

var terrainTable = [...]TerrainProps{
	Blank: {TankPassable: true, ProjectilePassable: true},
	Brick: {Destructible: true},
	Steel: {Destructible: true, Strength: 20},
	Grass: {TankPassable: true, ProjectilePassable: true},
	Water: {ProjectilePassable: true},
}

// Props returns the interaction properties of the kind.
func (k TerrainKind) Props() TerrainProps {
	if int(k) >= len(terrainTable) {
		return terrainTable[Blank]
	}
	return terrainTable[k]
}

// Quadrant order inside a tile: top-left, top-right, bottom-left, bottom-right.
const (
	QuadTL = iota
	QuadTR
	QuadBL
	QuadBR
)

// Tile is one map cell. Quads holds the presence bit of each quadrant.
type Tile struct {
	Kind  TerrainKind
	Quads [4]bool
}

// Empty reports whether no quadrant of the tile remains.
func (t Tile) Empty() bool {
	return !t.Quads[0] && !t.Quads[1] && !t.Quads[2] && !t.Quads[3]
}

var fullQuads = [4]bool{true, true, true, true}

// QuadRef addresses a single terrain quadrant.
type QuadRef struct {
	Row, Col, Quad int
}

// Grid is the terrain of one stage.
type Grid struct {
	cols, rows int
	cube       int
	tiles      []Tile
	waterFrame int
}

// GenerateGrid builds a random map. Each tile draws its kind from the
// weights; every non-blank tile draws its four quadrant bits independently
// and redraws until at least one is set. Override areas are then stamped
// with full tiles in the order blank, steel, brick.
func GenerateGrid(m config.MapConfig, tc config.TerrainConfig, rng *rand.Rand) *Grid {
	g := &Grid{
		cols:  m.Columns,
		rows:  m.Rows,
		cube:  m.Cube,
		tiles: make([]Tile, m.Columns*m.Rows),
	}
	weights := tc.Weights.Slice()

	for i := range g.tiles {
		kind := TerrainKind(pickWeighted(rng, weights))
		tile := Tile{Kind: kind}
		if kind != Blank {
			for tile.Empty() {
				for q := range tile.Quads {
					tile.Quads[q] = rng.Intn(2) == 1
				}
			}
		}
		g.tiles[i] = tile
	}

	stamp := func(coords []config.TileCoord, kind TerrainKind) {
		for _, c := range coords {
			quads := fullQuads
			if kind == Blank {
				quads = [4]bool{}
			}
			g.set(c.Row, c.Col, Tile{Kind: kind, Quads: quads})
		}
	}
	stamp(tc.BlankAreas, Blank)
	stamp(tc.SteelAreas, Steel)
	stamp(tc.BrickAreas, Brick)
	return g
}

// NewGrid returns an all-blank grid. Tests build maps on top of it.
func NewGrid(m config.MapConfig) *Grid {
	return &Grid{
		cols:  m.Columns,
		rows:  m.Rows,
		cube:  m.Cube,
		tiles: make([]Tile, m.Columns*m.Rows),
	}
}

// Columns returns the number of tile columns.
func (g *Grid) Columns() int { return g.cols }

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cube returns the tile edge in pixels.
func (g *Grid) Cube() int { return g.cube }

// Bounds returns the map rectangle in pixels.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.cols*g.cube, g.rows*g.cube)
}

func (g *Grid) inside(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Tile returns the tile at (row, col). Out-of-range cells read as blank.
func (g *Grid) Tile(row, col int) Tile {
	if !g.inside(row, col) {
		return Tile{}
	}
	return g.tiles[row*g.cols+col]
}

func (g *Grid) set(row, col int, t Tile) {
	if g.inside(row, col) {
		g.tiles[row*g.cols+col] = t
	}
}

// SetTile replaces a tile. Out-of-range cells are ignored.
func (g *Grid) SetTile(row, col int, t Tile) {
	g.set(row, col, t)
}

// TileRect returns the pixel rectangle of a tile.
func (g *Grid) TileRect(row, col int) core.Rect {
	return core.NewRect(col*g.cube, row*g.cube, g.cube, g.cube)
}

// QuadRect returns the pixel rectangle of a quadrant.
func (g *Grid) QuadRect(q QuadRef) core.Rect {
	half := g.cube / 2
	x := q.Col*g.cube + (q.Quad%2)*half
	y := q.Row*g.cube + (q.Quad/2)*half
	return core.NewRect(x, y, half, half)
}

// QuadsIn calls fn for every present non-blank quadrant intersecting r, in
// row-major order. Returning false from fn stops the walk.
func (g *Grid) QuadsIn(r core.Rect, fn func(q QuadRef, kind TerrainKind) bool) {
	half := g.cube / 2
	if half <= 0 {
		return
	}
	minCol := core.Clamp(r.X/g.cube, 0, g.cols-1)
	maxCol := core.Clamp((r.Right()-1)/g.cube, 0, g.cols-1)
	minRow := core.Clamp(r.Y/g.cube, 0, g.rows-1)
	maxRow := core.Clamp((r.Bottom()-1)/g.cube, 0, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			tile := g.tiles[row*g.cols+col]
			if tile.Kind == Blank {
				continue
			}
			for q := 0; q < 4; q++ {
				if !tile.Quads[q] {
					continue
				}
				ref := QuadRef{Row: row, Col: col, Quad: q}
				if !g.QuadRect(ref).Intersects(r) {
					continue
				}
				if !fn(ref, tile.Kind) {
					return
				}
			}
		}
	}
}

// BlocksTank reports whether r overlaps any quadrant impassable to tanks.
func (g *Grid) BlocksTank(r core.Rect) bool {
	blocked := false
	g.QuadsIn(r, func(_ QuadRef, kind TerrainKind) bool {
		if !kind.Props().TankPassable {
			blocked = true
			return false
		}
		return true
	})
	return blocked
}

// DestroyQuadrant removes a quadrant if its kind is destructible and power
// reaches its strength. It reports whether the quadrant was removed.
func (g *Grid) DestroyQuadrant(q QuadRef, power int) bool {
	if !g.inside(q.Row, q.Col) || q.Quad < 0 || q.Quad > 3 {
		return false
	}
	tile := &g.tiles[q.Row*g.cols+q.Col]
	props := tile.Kind.Props()
	if !tile.Quads[q.Quad] || !props.Destructible || power < props.Strength {
		return false
	}
	tile.Quads[q.Quad] = false
	return true
}

// Convert changes the kind of a tile from one kind to another and reports
// whether it did. Quadrant bits are kept.
func (g *Grid) Convert(row, col int, from, to TerrainKind) bool {
	if !g.inside(row, col) {
		return false
	}
	tile := &g.tiles[row*g.cols+col]
	if tile.Kind != from {
		return false
	}
	tile.Kind = to
	return true
}

// WaterFrame returns the current water animation frame (0 or 1).
func (g *Grid) WaterFrame() int {
	return g.waterFrame
}

// AdvanceWater flips the water animation frame.
func (g *Grid) AdvanceWater() {
	g.waterFrame ^= 1
}
