// Package entity provides the things that walk the map, such as the player.
package entity

import "github.com/gdamore/tcell/v2"

// Entity is a named glyph standing on the map.
type Entity struct {
	X, Y   int
	Symbol rune
	Color  tcell.Color
	Name   string
}

// NewPlayer creates the player entity at the given position.
func NewPlayer(x, y int) *Entity {
	return &Entity{
		X:      x,
		Y:      y,
		Symbol: '@',
		Color:  tcell.ColorWhite,
		Name:   "player",
	}
}

// Move updates the entity position by the given delta.
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Position returns the current x, y coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}
