package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonsprout/internal/config"
	"github.com/samdwyer/dungeonsprout/internal/gamedata"
	"github.com/samdwyer/dungeonsprout/internal/lsystem"
	"github.com/samdwyer/dungeonsprout/internal/ui"
	"github.com/samdwyer/dungeonsprout/internal/world"
)

// plantFromConfig builds the configured tree and the theme it is drawn with.
// Tree overrides in cfg take precedence over the preset's own timing.
func plantFromConfig(ctx context.Context, cfg config.Config, presets *gamedata.PresetRegistry) (*world.Tree, ui.Theme, error) {
	preset, err := presets.Get(cfg.Tree.Preset)
	if err != nil {
		return nil, ui.Theme{}, err
	}

	def, err := preset.Definition()
	if err != nil {
		return nil, ui.Theme{}, err
	}

	maxSteps := preset.MaxSteps
	if cfg.Tree.MaxSteps != nil {
		maxSteps = *cfg.Tree.MaxSteps
	}
	interval := preset.StepInterval()
	if cfg.Tree.StepIntervalMS != nil {
		interval = time.Duration(*cfg.Tree.StepIntervalMS) * time.Millisecond
	}

	engine, err := lsystem.New(def, maxSteps, interval)
	if err != nil {
		return nil, ui.Theme{}, fmt.Errorf("preset %q: %w", preset.ID, err)
	}

	tree, err := world.NewTree(ctx, preset.Name, engine, cfg.Tree.StartX, cfg.Tree.StartY, cfg.Heading())
	if err != nil {
		return nil, ui.Theme{}, err
	}

	theme, err := themeFromConfig(cfg.Colors, preset)
	if err != nil {
		return nil, ui.Theme{}, err
	}
	return tree, theme, nil
}

func themeFromConfig(colors config.ColorsConfig, preset *gamedata.PresetDef) (ui.Theme, error) {
	theme := ui.DefaultTheme()
	theme.TreeGlyph = preset.GlyphRune()
	theme.Tree = preset.TCellColor()

	for _, c := range []struct {
		name string
		dst  *tcell.Color
	}{
		{colors.Floor, &theme.Floor},
		{colors.Wall, &theme.Wall},
		{colors.Tree, &theme.Tree},
	} {
		if c.name == "" {
			continue
		}
		color, err := gamedata.ResolveColor(c.name)
		if err != nil {
			return ui.Theme{}, fmt.Errorf("color %q: %w", c.name, err)
		}
		*c.dst = color
	}
	return theme, nil
}
