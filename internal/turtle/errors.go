package turtle

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedSymbol indicates a symbol with no turtle action.
	ErrUnexpectedSymbol = errors.New("turtle: unexpected symbol")
	// ErrUnbalancedStack indicates a pop with no matching push.
	ErrUnbalancedStack = errors.New("turtle: unbalanced stack")
)

// SymbolError reports the symbol and byte offset at which interpretation
// stopped.
type SymbolError struct {
	Symbol rune
	Offset int
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", e.Err, e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}
