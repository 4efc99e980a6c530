// Package lsystem provides a context-free (0L) string rewriting engine with
// time-gated stepping.
package lsystem

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Action classifies how a turtle treats a symbol.
type Action int

const (
	// ActionNone marks a symbol the turtle does not understand.
	ActionNone Action = iota
	// ActionDraw advances one tile along the current heading and marks it.
	ActionDraw
	// ActionPush saves position and heading, then turns.
	ActionPush
	// ActionPop restores the last saved position and heading, then turns back.
	ActionPop
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionDraw:
		return "draw"
	case ActionPush:
		return "push"
	case ActionPop:
		return "pop"
	default:
		return "none"
	}
}

// Rules maps a variable to its replacement string.
type Rules map[rune]string

// Actions maps a symbol to the turtle action it performs.
type Actions map[rune]Action

// Definition is the data describing one L-system variant. Variants differ
// only by configuration: one Engine and one turtle interpreter serve them all.
type Definition struct {
	Variables []rune
	Constants []rune
	Axiom     string
	Rules     Rules

	// Actions classifies symbols for turtle interpretation.
	Actions Actions
	// PushTurn is applied to the heading after a push, PopTurn after a pop.
	PushTurn int
	PopTurn  int
}

// IsVariable reports whether r is a declared variable.
func (d Definition) IsVariable(r rune) bool {
	for _, v := range d.Variables {
		if v == r {
			return true
		}
	}
	return false
}

// IsConstant reports whether r is a declared constant.
func (d Definition) IsConstant(r rune) bool {
	for _, c := range d.Constants {
		if c == r {
			return true
		}
	}
	return false
}

// InAlphabet reports whether r is a variable or a constant.
func (d Definition) InAlphabet(r rune) bool {
	return d.IsVariable(r) || d.IsConstant(r)
}

// clone returns a deep copy of d, so that later changes to the caller's
// slices and maps cannot bypass Validate.
func (d Definition) clone() Definition {
	d.Variables = slices.Clone(d.Variables)
	d.Constants = slices.Clone(d.Constants)
	d.Rules = maps.Clone(d.Rules)
	d.Actions = maps.Clone(d.Actions)
	return d
}

// Validate checks the alphabet, axiom and rules for consistency.
func (d Definition) Validate() error {
	for _, v := range d.Variables {
		if d.IsConstant(v) {
			return fmt.Errorf("%w: %q is both a variable and a constant", ErrInvalidAlphabet, v)
		}
	}

	for i, r := range d.Axiom {
		if !d.InAlphabet(r) {
			return fmt.Errorf("%w: axiom symbol %q at offset %d is not in the alphabet", ErrInvalidAlphabet, r, i)
		}
	}

	for from, to := range d.Rules {
		if !d.IsVariable(from) {
			return fmt.Errorf("%w: rule key %q is not a declared variable", ErrInvalidAlphabet, from)
		}
		if to == "" {
			return fmt.Errorf("%w: rule for %q has an empty replacement", ErrInvalidAlphabet, from)
		}
		if i := strings.IndexFunc(to, func(r rune) bool { return !d.InAlphabet(r) }); i >= 0 {
			return fmt.Errorf("%w: rule for %q produces undeclared symbol at offset %d of %q", ErrInvalidAlphabet, from, i, to)
		}
	}

	return nil
}

// rewrite performs one synchronous context-free rewrite of s.
func (d Definition) rewrite(s string) string {
	size := 0
	for _, r := range s {
		if to, ok := d.Rules[r]; ok {
			size += len(to)
		} else {
			size += len(string(r))
		}
	}

	var b strings.Builder
	b.Grow(size)
	for _, r := range s {
		if to, ok := d.Rules[r]; ok {
			b.WriteString(to)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
