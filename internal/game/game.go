package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonsprout/internal/config"
	"github.com/samdwyer/dungeonsprout/internal/entity"
	"github.com/samdwyer/dungeonsprout/internal/gamedata"
	"github.com/samdwyer/dungeonsprout/internal/logger"
	"github.com/samdwyer/dungeonsprout/internal/telemetry"
	"github.com/samdwyer/dungeonsprout/internal/ui"
	"github.com/samdwyer/dungeonsprout/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *world.Map
	tree     *world.Tree
	player   *entity.Entity
	state    State
	running  bool

	now         func() time.Time
	log         *logrus.Entry
	lastClipped int
}

// New creates a game drawing to the terminal.
func New(ctx context.Context, cfg config.Config, presets *gamedata.PresetRegistry) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(ctx, cfg, presets, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to an already initialized screen.
func NewWithScreen(ctx context.Context, cfg config.Config, presets *gamedata.PresetRegistry, screen *ui.Screen) (*Game, error) {
	ctx, initSpan := telemetry.Tracer("game").Start(ctx, "game.init")
	defer initSpan.End()

	tree, theme, err := plantFromConfig(ctx, cfg, presets)
	if err != nil {
		initSpan.RecordError(err)
		return nil, err
	}

	initSpan.SetAttributes(
		attribute.String("tree.preset", cfg.Tree.Preset),
		attribute.Int("tree.root_x", tree.RootX),
		attribute.Int("tree.root_y", tree.RootY),
		attribute.Int("tree.max_steps", tree.MaxSteps()),
		attribute.Int("map.width", cfg.Screen.Width),
		attribute.Int("map.height", cfg.Screen.Height),
	)

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		world:    world.NewMap(cfg.Screen.Width, cfg.Screen.Height),
		tree:     tree,
		player:   entity.NewPlayer(cfg.Player.StartX, cfg.Player.StartY),
		state:    StateGrowing,
		running:  true,
		now:      time.Now,
		log: logger.Log.WithFields(logrus.Fields{
			"tree":     tree.Name,
			"tree_id":  tree.ID,
			"instance": telemetry.InstanceID(),
		}),
	}, nil
}

// Run executes the main loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	g.tree.Plant(g.now())
	g.log.WithField("max_steps", g.tree.MaxSteps()).Info("tree planted")

	done := make(chan struct{})
	defer close(done)
	events := g.screen.Events(done)
	ticker := time.NewTicker(g.cfg.FrameInterval())
	defer ticker.Stop()

	g.render()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
			continue
		case ev, ok := <-events:
			if !ok {
				g.running = false
				continue
			}
			if err := g.handleEvent(ctx, ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := g.update(ctx); err != nil {
				return err
			}
		}
		g.render()
	}
	return nil
}

// update polls the tree once per frame while growing.
func (g *Game) update(ctx context.Context) error {
	if g.state != StateGrowing {
		return nil
	}
	stepped, err := g.tree.Update(ctx, g.now())
	if err != nil {
		return fmt.Errorf("growing tree: %w", err)
	}
	if stepped {
		g.logStep()
	}
	return nil
}

func (g *Game) logStep() {
	symbols, steps := g.tree.State()
	g.log.WithFields(logrus.Fields{
		"step":   steps,
		"length": len(symbols),
		"tiles":  len(g.tree.Tiles()),
	}).Info("tree grew")
	g.log.WithField("step", steps).Debug(symbols)

	if g.tree.Done() {
		g.state = StateMature
		g.log.Info("tree mature")
	}
}

func (g *Game) render() {
	clipped := g.renderer.Render(g.world, g.tree, []*entity.Entity{g.player}, g.status())
	if clipped != g.lastClipped {
		g.log.WithField("clipped", clipped).Warn("tree tiles outside the map")
		g.lastClipped = clipped
	}
}

func (g *Game) status() string {
	symbols, steps := g.tree.State()
	return fmt.Sprintf(" %s | %s | step %d/%d | %d symbols | [p]ause [n]ext [r]eplant [q]uit ",
		g.tree.Name, g.state, steps, g.tree.MaxSteps(), len(symbols))
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(0, -1)
	case tcell.KeyDown:
		g.tryMove(0, 1)
	case tcell.KeyLeft:
		g.tryMove(-1, 0)
	case tcell.KeyRight:
		g.tryMove(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'p', 'P':
			g.togglePause()
		case 'n', 'N':
			return g.forceStep(ctx)
		case 'r', 'R':
			return g.replant(ctx)
		}
	}
	return nil
}

// tryMove moves the player by the given delta unless a wall is in the way.
func (g *Game) tryMove(dx, dy int) bool {
	x, y := g.player.Position()
	if !g.world.IsPassable(x+dx, y+dy) {
		return false
	}
	g.player.Move(dx, dy)
	return true
}

func (g *Game) togglePause() {
	switch g.state {
	case StateGrowing:
		g.state = StatePaused
	case StatePaused:
		g.state = StateGrowing
	}
	g.log.WithField("state", g.state.String()).Debug("pause toggled")
}

func (g *Game) forceStep(ctx context.Context) error {
	stepped, err := g.tree.ForceStep(ctx)
	if err != nil {
		return fmt.Errorf("growing tree: %w", err)
	}
	if stepped {
		g.logStep()
	}
	return nil
}

func (g *Game) replant(ctx context.Context) error {
	if err := g.tree.Replant(ctx, g.now()); err != nil {
		return fmt.Errorf("replanting tree: %w", err)
	}
	g.state = StateGrowing
	g.log.Info("tree replanted")
	return nil
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
