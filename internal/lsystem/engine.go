package lsystem

import (
	"fmt"
	"time"
)

// Engine holds one L-system's current string and advances it at most once
// per step interval. An Engine is owned by a single caller and is not safe
// for concurrent use.
type Engine struct {
	def          Definition
	current      string
	steps        int
	maxSteps     int
	stepInterval time.Duration

	started  bool
	lastStep time.Time
}

// New validates def and creates an engine positioned at its axiom. The engine
// keeps its own copy of def.
func New(def Definition, maxSteps int, stepInterval time.Duration) (*Engine, error) {
	def = def.clone()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if maxSteps < 0 {
		return nil, fmt.Errorf("%w: max steps %d is negative", ErrInvalidConfig, maxSteps)
	}
	if stepInterval < 0 {
		return nil, fmt.Errorf("%w: step interval %s is negative", ErrInvalidConfig, stepInterval)
	}

	return &Engine{
		def:          def,
		current:      def.Axiom,
		maxSteps:     maxSteps,
		stepInterval: stepInterval,
	}, nil
}

// Start records now as the baseline for step gating. Calling it again
// resets the baseline.
func (e *Engine) Start(now time.Time) {
	e.started = true
	e.lastStep = now
}

// Tick rewrites the current string if at least one step interval has passed
// since the last accepted step. It returns whether a rewrite happened.
//
// The first Tick on an engine that was never started only arms the timer.
// Elapsed time spanning several intervals still yields a single rewrite.
func (e *Engine) Tick(now time.Time) bool {
	if e.steps >= e.maxSteps {
		return false
	}

	if !e.started {
		e.Start(now)
		return false
	}

	if now.Sub(e.lastStep) < e.stepInterval {
		return false
	}

	e.lastStep = now
	e.iterate()
	return true
}

// Step performs one untimed rewrite unless the step budget is exhausted.
func (e *Engine) Step() bool {
	if e.steps >= e.maxSteps {
		return false
	}
	e.iterate()
	return true
}

// Run rewrites until the step budget is exhausted and returns the number of
// rewrites performed.
func (e *Engine) Run() int {
	n := 0
	for e.Step() {
		n++
	}
	return n
}

// Reset returns the engine to its axiom and disarms the timer.
func (e *Engine) Reset() {
	e.current = e.def.Axiom
	e.steps = 0
	e.started = false
	e.lastStep = time.Time{}
}

func (e *Engine) iterate() {
	e.steps++
	e.current = e.def.rewrite(e.current)
}

// State returns the current string and the number of rewrites executed.
func (e *Engine) State() (string, int) {
	return e.current, e.steps
}

// Done reports whether the step budget is exhausted.
func (e *Engine) Done() bool {
	return e.steps >= e.maxSteps
}

// Definition returns a copy of the definition the engine was built from.
func (e *Engine) Definition() Definition {
	return e.def.clone()
}

// MaxSteps returns the step budget.
func (e *Engine) MaxSteps() int {
	return e.maxSteps
}

// StepInterval returns the minimum time between accepted ticks.
func (e *Engine) StepInterval() time.Duration {
	return e.stepInterval
}
