package world

import "github.com/samdwyer/dungeonsprout/internal/turtle"

// Map is a rectangular floor enclosed by a one-tile wall border.
type Map struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewMap creates a bordered floor of the given size.
func NewMap(width, height int) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				tiles[y][x] = TileWall
			} else {
				tiles[y][x] = TileFloor
			}
		}
	}

	return &Map{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// Contains reports whether the position lies on the map.
func (m *Map) Contains(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	if !m.Contains(x, y) {
		return false
	}
	return m.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position. Positions off the map
// read as walls.
func (m *Map) GetTile(x, y int) Tile {
	if !m.Contains(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// Visible returns the tiles that fall on the map, in their original order,
// and the number dropped.
func (m *Map) Visible(tiles []turtle.Tile) (visible []turtle.Tile, clipped int) {
	visible = make([]turtle.Tile, 0, len(tiles))
	for _, t := range tiles {
		if m.Contains(t.X, t.Y) {
			visible = append(visible, t)
		} else {
			clipped++
		}
	}
	return visible, clipped
}
