package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// A map tile is drawn as TileW x TileH characters, one quadrant per
// TileW/2 x TileH/2 block.
const (
	TileW = 4
	TileH = 2
)

var tankGlyphs = [4][TileH]string{
	Up:    {"▟▲▲▙", "▜██▛"},
	Down:  {"▟██▙", "▜▼▼▛"},
	Left:  {"◀██▙", "◀██▛"},
	Right: {"▟██▶", "▜██▶"},
}

var foodGlyphs = [...]rune{
	FoodDetonate:        'D',
	FoodFreeze:          'F',
	FoodFortify:         'H',
	FoodExtraGun:        'G',
	FoodInvulnerability: 'I',
	FoodExtraLife:       'L',
	FoodExtraScore:      'S',
}

func tankColor(t *Tank) core.Color {
	switch {
	case t.Frozen:
		return core.ColorBlue
	case t.Protected:
		return core.ColorBrightCyan
	}
	switch t.Kind {
	case PlayerOne:
		return core.ColorBrightYellow
	case PlayerTwo:
		return core.ColorBrightGreen
	case EnemyTier1:
		return core.ColorWhite
	case EnemyTier2:
		return core.ColorCyan
	default:
		return core.ColorBrightRed
	}
}

// MapSize returns the size of the drawn map in characters.
func (s *Session) MapSize() (w, h int) {
	return s.cfg.Map.Columns * TileW, s.cfg.Map.Rows * TileH
}

// toCell converts a pixel position to a character position.
func (s *Session) toCell(x, y int) (int, int) {
	cube := s.cfg.Map.Cube
	return (x*TileW + cube/2) / cube, (y*TileH + cube/2) / cube
}

// Render draws the arena with its top-left corner at (offX, offY). Grass is
// drawn last so tanks driving through it are hidden.
func (s *Session) Render(dst *core.Screen, offX, offY int) {
	g := s.grid
	home := s.cfg.Terrain.Home

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			tile := g.Tile(row, col)
			if tile.Kind == Grass {
				continue
			}
			s.drawTile(dst, offX, offY, row, col, tile)
		}
	}
	hx, hy := offX+home.Col*TileW, offY+home.Row*TileH
	if g.Tile(home.Row, home.Col).Kind == Blank {
		dst.DrawTextColored(hx+1, hy, "▲▲", core.ColorYellow)
		dst.DrawTextColored(hx+1, hy+1, "██", core.ColorYellow)
	}

	for _, f := range s.foods {
		if f.eaten {
			continue
		}
		x, y := offX+f.Col*TileW, offY+f.Row*TileH
		dst.DrawTextColored(x, y, "┌──┐", core.ColorMagenta)
		dst.DrawTextColored(x, y+1, "│  │", core.ColorMagenta)
		dst.SetColored(x+1, y+1, foodGlyphs[f.Kind], core.ColorBrightYellow)
	}

	for _, t := range s.tanks {
		if !t.Alive() {
			continue
		}
		cx, cy := s.toCell(t.X, t.Y)
		if t.State == Appearing {
			glyph := "✦  ✦"
			if s.state.Tick/8%2 == 1 {
				glyph = " ✦✦ "
			}
			dst.DrawTextColored(offX+cx, offY+cy, glyph, core.ColorMagenta)
			dst.DrawTextColored(offX+cx, offY+cy+1, glyph, core.ColorMagenta)
			continue
		}
		glyph := tankGlyphs[t.Dir]
		color := tankColor(t)
		for i, line := range glyph {
			dst.DrawTextColored(offX+cx, offY+cy+i, line, color)
		}
	}

	for _, p := range s.projectiles {
		if !p.alive {
			continue
		}
		cx, cy := p.Rect().Center()
		x, y := cx*TileW/s.cfg.Map.Cube, cy*TileH/s.cfg.Map.Cube
		dst.SetColored(offX+x, offY+y, '•', core.ColorBrightYellow)
	}

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			if tile := g.Tile(row, col); tile.Kind == Grass {
				s.drawTile(dst, offX, offY, row, col, tile)
			}
		}
	}
}

func (s *Session) drawTile(dst *core.Screen, offX, offY, row, col int, tile Tile) {
	var r rune
	var c core.Color
	switch tile.Kind {
	case Brick:
		r, c = '▓', core.ColorOrange
	case Steel:
		r, c = '█', core.ColorGray
	case Grass:
		r, c = '░', core.ColorGreen
	case Water:
		r, c = '≈', core.ColorBlue
		if s.grid.WaterFrame() == 1 {
			r = '~'
		}
	default:
		return
	}

	qw, qh := TileW/2, TileH/2
	for q, present := range tile.Quads {
		if !present {
			continue
		}
		x := offX + col*TileW + (q%2)*qw
		y := offY + row*TileH + (q/2)*qh
		dst.DrawRectColored(core.NewRect(x, y, qw, qh), r, c)
	}
}
