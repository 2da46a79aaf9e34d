package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(52, 21)

	if s.Width() != 52 || s.Height() != 21 {
		t.Errorf("size = %dx%d, expected 52x21", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '▓', ColorOrange)
	c := s.GetCell(3, 4)
	if c.Rune != '▓' || c.Color != ColorOrange {
		t.Errorf("GetCell(3, 4) = %+v, expected ▓/orange", c)
	}

	s.Set(3, 4, 'x')
	if c := s.GetCell(3, 4); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	// out of bounds writes are ignored, reads return blank
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.GetCell(-1, 0) != blankCell || s.Get(100, 0) != ' ' {
		t.Error("out of bounds access should return blank")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(4, 3)
	s.Fill('#')
	if s.String() != "####\n####\n####" {
		t.Errorf("Fill: String() = %q", s.String())
	}
	s.SetColored(1, 1, '~', ColorCyan)
	s.Clear()
	if s.GetCell(1, 1) != blankCell {
		t.Errorf("Clear left %+v at (1, 1)", s.GetCell(1, 1))
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "STAGE", ColorYellow)

	for i, ch := range "STAGE" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("cell %d = %+v, expected %q yellow", i, c, ch)
		}
	}

	// clipped at the right boundary
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}

	// multi-byte runes occupy one cell each
	s.DrawText(0, 3, "▲▼")
	if s.Get(0, 3) != '▲' || s.Get(1, 3) != '▼' {
		t.Errorf("row 3 = %q, expected ▲▼ prefix", s.Row(3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered: row = %q", s.Row(2))
	}
}

func TestScreenDrawRectColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRectColored(NewRect(2, 2, 3, 2), '█', ColorGray)

	for y := 2; y < 4; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '█' || c.Color != ColorGray {
				t.Errorf("cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 4) != ' ' {
		t.Error("DrawRectColored should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'}, {5, 1, '┐'}, {1, 4, '└'}, {5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.r {
			t.Errorf("corner (%d, %d) = %q, expected %q", c.x, c.y, got, c.r)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge broken at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge broken at y=%d", y)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorGreen)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content not preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") || s.GetCell(0, 0).Color != ColorGreen {
		t.Errorf("content not preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Errorf("out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
