package turtle

import "github.com/samdwyer/dungeonsprout/internal/lsystem"

// Tile is a marked grid position together with the heading it was drawn at.
type Tile struct {
	X, Y    int
	Heading Angle
}

type state struct {
	x, y    int
	heading Angle
}

// Interpreter walks symbol strings. It holds only configuration, so a single
// Interpreter may be reused for any number of calls.
type Interpreter struct {
	actions  lsystem.Actions
	pushTurn int
	popTurn  int
}

// New creates an interpreter with the given symbol classification and turns.
func New(actions lsystem.Actions, pushTurn, popTurn int) *Interpreter {
	return &Interpreter{
		actions:  actions,
		pushTurn: pushTurn,
		popTurn:  popTurn,
	}
}

// FromDefinition creates an interpreter for an L-system definition.
func FromDefinition(def lsystem.Definition) *Interpreter {
	return New(def.Actions, def.PushTurn, def.PopTurn)
}

// Interpret converts symbols into tiles, one per draw symbol, in string order.
// It fails with ErrUnexpectedSymbol on an unclassified symbol and with
// ErrUnbalancedStack on a pop with an empty stack.
func (in *Interpreter) Interpret(symbols string, startX, startY int, start Angle) ([]Tile, error) {
	cur := state{x: startX, y: startY, heading: start.Turn(0)}
	var stack []state
	var tiles []Tile

	for offset, r := range symbols {
		switch in.actions[r] {
		case lsystem.ActionDraw:
			d := cur.heading.Delta()
			cur.x += d.DX
			cur.y += d.DY
			tiles = append(tiles, Tile{X: cur.x, Y: cur.y, Heading: cur.heading})

		case lsystem.ActionPush:
			stack = append(stack, cur)
			cur.heading = cur.heading.Turn(in.pushTurn)

		case lsystem.ActionPop:
			if len(stack) == 0 {
				return nil, &SymbolError{Symbol: r, Offset: offset, Err: ErrUnbalancedStack}
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cur.heading = cur.heading.Turn(in.popTurn)

		default:
			return nil, &SymbolError{Symbol: r, Offset: offset, Err: ErrUnexpectedSymbol}
		}
	}

	return tiles, nil
}

// Rect is an inclusive bounding box on the tile grid.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the number of columns covered.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows covered.
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// Bounds returns the bounding box of tiles. ok is false when tiles is empty.
func Bounds(tiles []Tile) (r Rect, ok bool) {
	if len(tiles) == 0 {
		return Rect{}, false
	}

	r = Rect{MinX: tiles[0].X, MinY: tiles[0].Y, MaxX: tiles[0].X, MaxY: tiles[0].Y}
	for _, t := range tiles[1:] {
		r.MinX = min(r.MinX, t.X)
		r.MinY = min(r.MinY, t.Y)
		r.MaxX = max(r.MaxX, t.X)
		r.MaxY = max(r.MaxY, t.Y)
	}
	return r, true
}
