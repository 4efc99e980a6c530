package turtle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonsprout/internal/lsystem"
	"github.com/samdwyer/dungeonsprout/internal/turtle"
)

func treeInterpreter() *turtle.Interpreter {
	return turtle.FromDefinition(lsystem.BinaryFractalTree(lsystem.DenseTreeRules))
}

// TestInterpret_FirstGeneration pins the push +1 / pop -1 convention: the
// first branch leans left, the second grows straight up from the fork.
func TestInterpret_FirstGeneration(t *testing.T) {
	tiles, err := treeInterpreter().Interpret("1[0][0]", 0, 0, turtle.Up)
	require.NoError(t, err)

	want := []turtle.Tile{
		{X: 0, Y: -1, Heading: turtle.Up},
		{X: -1, Y: -2, Heading: turtle.UpLeft},
		{X: 0, Y: -2, Heading: turtle.Up},
	}
	assert.Equal(t, want, tiles)
}

// TestInterpret_NoTurnOnPop restores the saved heading unchanged, so both
// branches lean the same way.
func TestInterpret_NoTurnOnPop(t *testing.T) {
	in := turtle.New(lsystem.TreeActions, 1, 0)

	tiles, err := in.Interpret("1[0][0]", 0, 0, turtle.Up)
	require.NoError(t, err)

	want := []turtle.Tile{
		{X: 0, Y: -1, Heading: turtle.Up},
		{X: -1, Y: -2, Heading: turtle.UpLeft},
		{X: -1, Y: -2, Heading: turtle.UpLeft},
	}
	assert.Equal(t, want, tiles)
}

func TestInterpret_SecondGeneration(t *testing.T) {
	tiles, err := treeInterpreter().Interpret("11[1[0][0]][1[0][0]]", 40, 50, turtle.Up)
	require.NoError(t, err)

	want := []turtle.Tile{
		// trunk
		{X: 40, Y: 49, Heading: turtle.Up},
		{X: 40, Y: 48, Heading: turtle.Up},
		// left branch, heading up_left
		{X: 39, Y: 47, Heading: turtle.UpLeft},
		{X: 38, Y: 47, Heading: turtle.Left},
		{X: 38, Y: 46, Heading: turtle.UpLeft},
		// right branch: pop leaves the heading at up_right, push turns it back to up
		{X: 40, Y: 47, Heading: turtle.Up},
		{X: 39, Y: 46, Heading: turtle.UpLeft},
		{X: 40, Y: 46, Heading: turtle.Up},
	}
	assert.Equal(t, want, tiles)
}

func TestInterpret_Pure(t *testing.T) {
	e, err := lsystem.New(lsystem.BinaryFractalTree(lsystem.DenseTreeRules), 6, time.Second)
	require.NoError(t, err)
	e.Run()
	s, _ := e.State()

	in := treeInterpreter()
	first, err := in.Interpret(s, 0, 0, turtle.Up)
	require.NoError(t, err)
	second, err := in.Interpret(s, 0, 0, turtle.Up)
	require.NoError(t, err)

	require.Equal(t, first, second)

	after, _ := e.State()
	assert.Equal(t, s, after, "interpretation must not touch the engine")
}

func TestInterpret_OneTilePerDrawSymbol(t *testing.T) {
	for _, rules := range []lsystem.Rules{lsystem.DenseTreeRules, lsystem.SparseTreeRules} {
		e, err := lsystem.New(lsystem.BinaryFractalTree(rules), 7, 0)
		require.NoError(t, err)
		e.Run()
		s, _ := e.State()

		draws := 0
		for _, r := range s {
			if r == '0' || r == '1' {
				draws++
			}
		}

		tiles, err := treeInterpreter().Interpret(s, 0, 0, turtle.Up)
		require.NoError(t, err)
		assert.Len(t, tiles, draws)
	}
}

func TestInterpret_Errors(t *testing.T) {
	cases := []struct {
		name    string
		symbols string
		err     error
		symbol  rune
		offset  int
	}{
		{"ExtraPop", "1[0]]", turtle.ErrUnbalancedStack, ']', 4},
		{"LeadingPop", "]", turtle.ErrUnbalancedStack, ']', 0},
		{"UnknownSymbol", "1[x]", turtle.ErrUnexpectedSymbol, 'x', 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tiles, err := treeInterpreter().Interpret(tc.symbols, 0, 0, turtle.Up)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Interpret(%q) error = %v; want %v", tc.symbols, err, tc.err)
			}
			if tiles != nil {
				t.Errorf("Interpret(%q) returned tiles alongside an error", tc.symbols)
			}

			var se *turtle.SymbolError
			require.True(t, errors.As(err, &se), "error must be SymbolError")
			assert.Equal(t, tc.symbol, se.Symbol)
			assert.Equal(t, tc.offset, se.Offset)
		})
	}
}

func TestInterpret_UnclosedPushIsAllowed(t *testing.T) {
	tiles, err := treeInterpreter().Interpret("1[0", 0, 0, turtle.Up)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)
}

func TestInterpret_EmptyString(t *testing.T) {
	tiles, err := treeInterpreter().Interpret("", 3, 4, turtle.Right)
	require.NoError(t, err)
	assert.Empty(t, tiles)
}

func TestAngle_TurnWraps(t *testing.T) {
	assert.Equal(t, turtle.UpRight, turtle.Up.Turn(-1))
	assert.Equal(t, turtle.Up, turtle.UpRight.Turn(1))
	assert.Equal(t, turtle.Down, turtle.Up.Turn(12))
	assert.Equal(t, turtle.Left, turtle.Up.Turn(-6))
}

func TestAngle_DeltasAreUnitSteps(t *testing.T) {
	seen := map[turtle.Delta]bool{}
	for a := turtle.Up; a <= turtle.UpRight; a++ {
		d := a.Delta()
		if d.DX < -1 || d.DX > 1 || d.DY < -1 || d.DY > 1 || (d.DX == 0 && d.DY == 0) {
			t.Errorf("%v delta = %+v; want a unit step", a, d)
		}
		seen[d] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, turtle.Delta{DX: 0, DY: -1}, turtle.Up.Delta())
	assert.Equal(t, turtle.Delta{DX: 1, DY: 1}, turtle.DownRight.Delta())
}

func TestParseAngle(t *testing.T) {
	for a := turtle.Up; a <= turtle.UpRight; a++ {
		got, err := turtle.ParseAngle(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := turtle.ParseAngle(" Down-Left ")
	require.NoError(t, err)
	assert.Equal(t, turtle.DownLeft, got)

	_, err = turtle.ParseAngle("north")
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	_, ok := turtle.Bounds(nil)
	assert.False(t, ok)

	tiles, err := treeInterpreter().Interpret("11[1[0][0]][1[0][0]]", 40, 50, turtle.Up)
	require.NoError(t, err)

	r, ok := turtle.Bounds(tiles)
	require.True(t, ok)
	assert.Equal(t, turtle.Rect{MinX: 38, MinY: 46, MaxX: 40, MaxY: 49}, r)
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 4, r.Height())
}
