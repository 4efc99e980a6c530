// Package game provides the main loop that grows and draws a tree.
package game

// State represents the current game state.
type State int

const (
	// StateGrowing polls the tree's timer every frame.
	StateGrowing State = iota
	// StatePaused stops polling; the tree keeps its current generation.
	StatePaused
	// StateMature means the tree has used its whole step budget.
	StateMature
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateGrowing:
		return "growing"
	case StatePaused:
		return "paused"
	case StateMature:
		return "mature"
	default:
		return "unknown"
	}
}
