package world

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonsprout/internal/lsystem"
	"github.com/samdwyer/dungeonsprout/internal/telemetry"
	"github.com/samdwyer/dungeonsprout/internal/turtle"
)

// Tree is an L-system planted at a root position. Its tiles are rebuilt
// from the full current string after every accepted step.
type Tree struct {
	ID      string
	Name    string
	RootX   int
	RootY   int
	Heading turtle.Angle

	engine *lsystem.Engine
	interp *turtle.Interpreter
	tiles  []turtle.Tile
}

// NewTree plants engine's L-system at (x, y) growing along heading and
// interprets the axiom.
func NewTree(ctx context.Context, name string, engine *lsystem.Engine, x, y int, heading turtle.Angle) (*Tree, error) {
	t := &Tree{
		ID:      uuid.NewString(),
		Name:    name,
		RootX:   x,
		RootY:   y,
		Heading: heading,
		engine:  engine,
		interp:  turtle.FromDefinition(engine.Definition()),
	}
	if err := t.regrow(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Plant arms the growth timer at now.
func (t *Tree) Plant(now time.Time) {
	t.engine.Start(now)
}

// Update polls the engine and regrows the tiles if a step was accepted.
func (t *Tree) Update(ctx context.Context, now time.Time) (bool, error) {
	if !t.engine.Tick(now) {
		return false, nil
	}
	return true, t.regrow(ctx)
}

// ForceStep performs one rewrite regardless of the timer.
func (t *Tree) ForceStep(ctx context.Context) (bool, error) {
	if !t.engine.Step() {
		return false, nil
	}
	return true, t.regrow(ctx)
}

// Replant resets the tree to its axiom and restarts the timer at now.
func (t *Tree) Replant(ctx context.Context, now time.Time) error {
	t.engine.Reset()
	t.engine.Start(now)
	return t.regrow(ctx)
}

func (t *Tree) regrow(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "tree.grow")
	defer span.End()

	startTime := time.Now()
	symbols, steps := t.engine.State()

	tiles, err := t.interp.Interpret(symbols, t.RootX, t.RootY, t.Heading)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "interpretation failed")
		return err
	}
	t.tiles = tiles

	span.SetAttributes(
		attribute.String("tree.id", t.ID),
		attribute.String("tree.name", t.Name),
		attribute.Int("tree.step", steps),
		attribute.Int("tree.symbols", len(symbols)),
		attribute.Int("tree.tiles", len(tiles)),
		attribute.Int64("tree.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return nil
}

// Tiles returns the tiles of the current generation.
func (t *Tree) Tiles() []turtle.Tile {
	return t.tiles
}

// State returns the current symbol string and step count.
func (t *Tree) State() (string, int) {
	return t.engine.State()
}

// Done reports whether the tree has reached its step budget.
func (t *Tree) Done() bool {
	return t.engine.Done()
}

// MaxSteps returns the tree's step budget.
func (t *Tree) MaxSteps() int {
	return t.engine.MaxSteps()
}
