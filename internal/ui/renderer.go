package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonsprout/internal/entity"
	"github.com/samdwyer/dungeonsprout/internal/world"
)

// Theme holds the colors and glyph used to draw the map and a tree.
type Theme struct {
	Floor     tcell.Color
	Wall      tcell.Color
	Tree      tcell.Color
	TreeGlyph rune
}

// DefaultTheme draws a green floor with a dark rose tree.
func DefaultTheme() Theme {
	return Theme{
		Floor:     tcell.NewHexColor(0x00CC99),
		Wall:      tcell.NewHexColor(0x004B49),
		Tree:      tcell.NewHexColor(0x480607),
		TreeGlyph: 'V',
	}
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the map, the tree's tiles on top of it, the entities above
// both and a status line. Tree tiles off the map are skipped; the number
// skipped is returned.
func (r *Renderer) Render(m *world.Map, tree *world.Tree, entities []*entity.Entity, status string) int {
	r.screen.Clear()

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	clipped := 0
	if tree != nil {
		visible, n := m.Visible(tree.Tiles())
		clipped = n
		for _, t := range visible {
			style := r.getTileStyle(m.GetTile(t.X, t.Y)).Foreground(r.theme.Tree)
			r.screen.SetContent(t.X, t.Y, r.theme.TreeGlyph, style)
		}
	}

	for _, e := range entities {
		if !m.Contains(e.X, e.Y) {
			continue
		}
		style := r.getTileStyle(m.GetTile(e.X, e.Y)).Foreground(e.Color)
		r.screen.SetContent(e.X, e.Y, e.Symbol, style)
	}

	if status != "" {
		r.RenderMessage(status, 0)
	}

	r.screen.Show()
	return clipped
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Background(r.theme.Wall).Foreground(tcell.ColorWhite)
	case world.TileFloor:
		return tcell.StyleDefault.Background(r.theme.Floor).Foreground(tcell.ColorWhite)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage writes msg on row y starting one column in from the border.
func (r *Renderer) RenderMessage(msg string, y int) {
	width, _ := r.screen.Size()
	style := tcell.StyleDefault.Background(r.theme.Wall).Foreground(tcell.ColorWhite)
	x := 1
	for _, ch := range msg {
		if x >= width-1 {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}
