// Package turtle converts L-system strings into tile positions using a
// discrete 8-direction turtle.
package turtle

import (
	"fmt"
	"strings"
)

// Angle is one of eight compass headings. Increasing values rotate
// counter-clockwise starting from Up.
type Angle int

const (
	Up Angle = iota
	UpLeft
	Left
	DownLeft
	Down
	DownRight
	Right
	UpRight

	numAngles = 8
)

// Delta is a unit displacement on the tile grid. Y grows downward.
type Delta struct {
	DX, DY int
}

var deltas = [numAngles]Delta{
	Up:        {0, -1},
	UpLeft:    {-1, -1},
	Left:      {-1, 0},
	DownLeft:  {-1, 1},
	Down:      {0, 1},
	DownRight: {1, 1},
	Right:     {1, 0},
	UpRight:   {1, -1},
}

var angleNames = [numAngles]string{
	Up:        "up",
	UpLeft:    "up_left",
	Left:      "left",
	DownLeft:  "down_left",
	Down:      "down",
	DownRight: "down_right",
	Right:     "right",
	UpRight:   "up_right",
}

// normalize maps any integer onto [0, 8).
func normalize(a int) Angle {
	a %= numAngles
	if a < 0 {
		a += numAngles
	}
	return Angle(a)
}

// Turn rotates the heading by n steps. Positive n turns counter-clockwise.
func (a Angle) Turn(n int) Angle {
	return normalize(int(a) + n)
}

// Delta returns the displacement for one step along the heading.
func (a Angle) Delta() Delta {
	return deltas[normalize(int(a))]
}

// String returns the heading's name.
func (a Angle) String() string {
	if a < 0 || a >= numAngles {
		return fmt.Sprintf("Angle(%d)", int(a))
	}
	return angleNames[a]
}

// ParseAngle converts a heading name such as "up_left" into an Angle.
func ParseAngle(name string) (Angle, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range angleNames {
		if n == key {
			return Angle(i), nil
		}
	}
	return Up, fmt.Errorf("turtle: unknown heading %q", name)
}
