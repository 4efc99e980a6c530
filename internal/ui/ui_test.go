package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonsprout/internal/entity"
	"github.com/samdwyer/dungeonsprout/internal/lsystem"
	"github.com/samdwyer/dungeonsprout/internal/turtle"
	"github.com/samdwyer/dungeonsprout/internal/world"
)

func newSimScreen(t *testing.T, width, height int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(screen.Close)
	return screen
}

func newTree(t *testing.T, x, y, steps int) *world.Tree {
	t.Helper()
	e, err := lsystem.New(lsystem.BinaryFractalTree(lsystem.DenseTreeRules), steps, time.Second)
	require.NoError(t, err)
	e.Run()
	tree, err := world.NewTree(context.Background(), "test", e, x, y, turtle.Up)
	require.NoError(t, err)
	return tree
}

func TestRenderDrawsTreeAndMap(t *testing.T) {
	screen := newSimScreen(t, 20, 12)
	theme := DefaultTheme()
	r := NewRenderer(screen, theme)
	m := world.NewMap(20, 12)
	tree := newTree(t, 10, 10, 1)

	clipped := r.Render(m, tree, nil, "")
	assert.Equal(t, 0, clipped)

	for _, tile := range tree.Tiles() {
		ch, style := screen.Content(tile.X, tile.Y)
		assert.Equal(t, 'V', ch, "tree glyph at (%d,%d)", tile.X, tile.Y)
		fg, bg, _ := style.Decompose()
		assert.Equal(t, theme.Tree, fg)
		assert.Equal(t, theme.Floor, bg)
	}

	ch, style := screen.Content(0, 5)
	assert.Equal(t, world.TileWall.Rune(), ch)
	_, bg, _ := style.Decompose()
	assert.Equal(t, theme.Wall, bg)

	ch, _ = screen.Content(3, 3)
	assert.Equal(t, world.TileFloor.Rune(), ch)
}

func TestRenderClipsOffMapTiles(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	r := NewRenderer(screen, DefaultTheme())
	m := world.NewMap(10, 5)

	// A root at the bottom edge growing four generations runs off the top.
	tree := newTree(t, 5, 4, 4)
	clipped := r.Render(m, tree, nil, "")
	assert.Positive(t, clipped)
}

func TestRenderMessage(t *testing.T) {
	screen := newSimScreen(t, 12, 4)
	r := NewRenderer(screen, DefaultTheme())
	m := world.NewMap(12, 4)

	r.Render(m, nil, nil, "step 3/5 growing")

	var got []rune
	for x := 1; x < 11; x++ {
		ch, _ := screen.Content(x, 0)
		got = append(got, ch)
	}
	assert.Equal(t, "step 3/5 g", string(got))

	ch, _ := screen.Content(11, 0)
	assert.Equal(t, world.TileWall.Rune(), ch, "message must not overwrite the right border")
}

func TestRenderDrawsEntitiesOverTree(t *testing.T) {
	screen := newSimScreen(t, 20, 12)
	theme := DefaultTheme()
	r := NewRenderer(screen, theme)
	m := world.NewMap(20, 12)
	tree := newTree(t, 10, 10, 1)

	// (10,9) is the tree's trunk tile.
	player := entity.NewPlayer(10, 9)
	offMap := &entity.Entity{X: 30, Y: 3, Symbol: 'x', Color: tcell.ColorRed}
	r.Render(m, tree, []*entity.Entity{player, offMap}, "")

	ch, style := screen.Content(10, 9)
	assert.Equal(t, '@', ch)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorWhite, fg)
	assert.Equal(t, theme.Floor, bg)

	ch, _ = screen.Content(10, 8)
	assert.Equal(t, theme.TreeGlyph, ch, "other tree tiles are untouched")
}

func TestEventsStopsWhenDone(t *testing.T) {
	defer func(n int) { eventBufferSize = n }(eventBufferSize)
	eventBufferSize = 1

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	require.NoError(t, err)
	defer screen.Close()

	done := make(chan struct{})
	events := screen.Events(done)

	// One event fills the buffer, the next blocks the pump mid-send and the
	// third is still queued on the screen.
	for i := 0; i < 3; i++ {
		sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	}
	close(done)

	received := 0
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				assert.LessOrEqual(t, received, 1)
				return
			}
			received++
		case <-deadline:
			t.Fatal("event pump did not stop after done was closed")
		}
	}
}
