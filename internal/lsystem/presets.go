package lsystem

// Rule sets for the binary fractal tree. Both variants have been used; the
// dense one is the classic tree.
var (
	DenseTreeRules  = Rules{'1': "11", '0': "1[0][0]"}
	SparseTreeRules = Rules{'0': "1[0]0"}
)

// TreeActions draws on both variables and branches on brackets.
var TreeActions = Actions{
	'0': ActionDraw,
	'1': ActionDraw,
	'[': ActionPush,
	']': ActionPop,
}

// BinaryFractalTree returns the binary fractal tree definition with the given
// rule set. Branches turn one step left on push and one step right on pop.
func BinaryFractalTree(rules Rules) Definition {
	return Definition{
		Variables: []rune{'0', '1'},
		Constants: []rune{'[', ']'},
		Axiom:     "0",
		Rules:     rules,
		Actions:   TreeActions,
		PushTurn:  1,
		PopTurn:   -1,
	}
}
