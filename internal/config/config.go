// Package config loads the game's YAML configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonsprout/internal/turtle"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "config.yml"

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every construction-time parameter of the game.
type Config struct {
	// RootDir anchors relative paths. It comes from ROOT_DIR or the working
	// directory and is never read from the file.
	RootDir string `yaml:"-"`

	Screen    ScreenConfig    `yaml:"screen"`
	FrameRate int             `yaml:"frame_rate"` // Frames per second of the render loop
	Tree      TreeConfig      `yaml:"tree"`
	Player    PlayerConfig    `yaml:"player"`
	Colors    ColorsConfig    `yaml:"colors"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig sets the map size in tiles.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TreeConfig selects the L-system to grow and where to plant it. MaxSteps
// and StepIntervalMS override the preset when set.
type TreeConfig struct {
	Preset         string `yaml:"preset"`
	StartX         int    `yaml:"start_x"`
	StartY         int    `yaml:"start_y"`
	Heading        string `yaml:"heading"`
	MaxSteps       *int   `yaml:"max_steps,omitempty"`
	StepIntervalMS *int   `yaml:"step_interval_ms,omitempty"`
}

// PlayerConfig places the player. The start must lie inside the wall border.
type PlayerConfig struct {
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`
}

// ColorsConfig names map colors; palette names or hex strings. An empty Tree
// uses the preset's color.
type ColorsConfig struct {
	Floor string `yaml:"floor"`
	Wall  string `yaml:"wall"`
	Tree  string `yaml:"tree"`
}

// LogConfig configures the logger. File is resolved against RootDir; "-"
// means stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// TelemetryConfig toggles trace export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	maxSteps := 5
	interval := 1000
	return Config{
		RootDir:   rootDir(),
		Screen:    ScreenConfig{Width: 80, Height: 60},
		FrameRate: 30,
		Tree: TreeConfig{
			Preset:         "binary-tree-dense",
			StartX:         40,
			StartY:         50,
			Heading:        "up",
			MaxSteps:       &maxSteps,
			StepIntervalMS: &interval,
		},
		Player: PlayerConfig{StartX: 20, StartY: 30},
		Colors: ColorsConfig{
			Floor: "caribbean_green",
			Wall:  "deep_jungle_green",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "dungeonsprout.log",
		},
	}
}

func rootDir() string {
	if dir := os.Getenv("ROOT_DIR"); dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Load reads path (resolved against RootDir when relative) on top of the
// defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(cfg.Path(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults when the
// file does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("DUNGEONSPROUT_TELEMETRY"); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = enabled
		}
	}
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate %d", ErrInvalid, c.FrameRate)
	}
	if c.Tree.StartX < 0 || c.Tree.StartX >= c.Screen.Width || c.Tree.StartY < 0 || c.Tree.StartY >= c.Screen.Height {
		return fmt.Errorf("%w: tree start (%d,%d) outside %dx%d screen",
			ErrInvalid, c.Tree.StartX, c.Tree.StartY, c.Screen.Width, c.Screen.Height)
	}
	if c.Player.StartX < 1 || c.Player.StartX > c.Screen.Width-2 || c.Player.StartY < 1 || c.Player.StartY > c.Screen.Height-2 {
		return fmt.Errorf("%w: player start (%d,%d) outside the walls of a %dx%d screen",
			ErrInvalid, c.Player.StartX, c.Player.StartY, c.Screen.Width, c.Screen.Height)
	}
	if _, err := turtle.ParseAngle(c.Tree.Heading); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Tree.MaxSteps != nil && *c.Tree.MaxSteps < 0 {
		return fmt.Errorf("%w: tree max_steps %d", ErrInvalid, *c.Tree.MaxSteps)
	}
	if c.Tree.StepIntervalMS != nil && *c.Tree.StepIntervalMS < 0 {
		return fmt.Errorf("%w: tree step_interval_ms %d", ErrInvalid, *c.Tree.StepIntervalMS)
	}
	return nil
}

// Path resolves p against RootDir unless it is absolute.
func (c Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RootDir, p)
}

// Heading returns the parsed start heading. Validate guarantees it parses.
func (c Config) Heading() turtle.Angle {
	a, _ := turtle.ParseAngle(c.Tree.Heading)
	return a
}

// FrameInterval returns the time between rendered frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
