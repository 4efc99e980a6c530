package gamedata

import (
	"io"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonsprout/internal/lsystem"
)

// ErrInvalidDocument indicates a definition document that cannot describe an
// L-system, independently of the rewriting rules themselves.
var ErrInvalidDocument = errors.New("gamedata: invalid definition document")

// PresetDef describes one L-system as read from YAML.
type PresetDef struct {
	ID             string            `yaml:"id"`               // Unique identifier (e.g., "binary-tree-dense")
	Name           string            `yaml:"name"`             // Display name
	Variables      []string          `yaml:"variables"`        // Rewritable symbols, one character each
	Constants      []string          `yaml:"constants"`        // Terminal symbols, one character each
	Axiom          string            `yaml:"axiom"`            // Start string
	Rules          map[string]string `yaml:"rules"`            // Variable -> replacement
	MaxSteps       int               `yaml:"max_steps"`        // Step budget
	StepIntervalMS int               `yaml:"step_interval_ms"` // Minimum time between steps
	Symbols        *SymbolsDef       `yaml:"symbols,omitempty"`
	Turn           *TurnDef          `yaml:"turn,omitempty"`
	Glyph          string            `yaml:"glyph"` // Character drawn for each tile
	Color          string            `yaml:"color"` // Palette name or hex color
}

// SymbolsDef classifies symbols for turtle interpretation. Omitted fields
// default to drawing on every variable and branching on '[' and ']' when
// those are declared constants.
type SymbolsDef struct {
	Draw string `yaml:"draw"`
	Push string `yaml:"push"`
	Pop  string `yaml:"pop"`
}

// TurnDef sets the heading change applied after a push and after a pop. An
// omitted field keeps its default of +1 for push and -1 for pop.
type TurnDef struct {
	Push *int `yaml:"push"`
	Pop  *int `yaml:"pop"`
}

// StepInterval returns the step interval as a duration.
func (p *PresetDef) StepInterval() time.Duration {
	return time.Duration(p.StepIntervalMS) * time.Millisecond
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PresetDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// TCellColor returns the color as a tcell.Color.
func (p *PresetDef) TCellColor() tcell.Color {
	color, err := ResolveColor(p.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Wrapf(ErrInvalidDocument, "%s entry %q must be exactly one character", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func runes(field string, entries []string) ([]rune, error) {
	out := make([]rune, 0, len(entries))
	for _, s := range entries {
		r, err := singleRune(field, s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Definition converts the document into a validated L-system definition.
func (p *PresetDef) Definition() (lsystem.Definition, error) {
	switch {
	case p.ID == "":
		return lsystem.Definition{}, errors.Wrap(ErrInvalidDocument, "missing id")
	case len(p.Variables) == 0:
		return lsystem.Definition{}, errors.Wrapf(ErrInvalidDocument, "preset %q declares no variables", p.ID)
	case p.Axiom == "":
		return lsystem.Definition{}, errors.Wrapf(ErrInvalidDocument, "preset %q has an empty axiom", p.ID)
	}

	variables, err := runes("variables", p.Variables)
	if err != nil {
		return lsystem.Definition{}, errors.Wrapf(err, "preset %q", p.ID)
	}
	constants, err := runes("constants", p.Constants)
	if err != nil {
		return lsystem.Definition{}, errors.Wrapf(err, "preset %q", p.ID)
	}

	def := lsystem.Definition{
		Variables: variables,
		Constants: constants,
		Axiom:     p.Axiom,
		Rules:     make(lsystem.Rules, len(p.Rules)),
		PushTurn:  1,
		PopTurn:   -1,
	}
	for from, to := range p.Rules {
		r, err := singleRune("rules", from)
		if err != nil {
			return lsystem.Definition{}, errors.Wrapf(err, "preset %q", p.ID)
		}
		def.Rules[r] = to
	}
	if p.Turn != nil {
		if p.Turn.Push != nil {
			def.PushTurn = *p.Turn.Push
		}
		if p.Turn.Pop != nil {
			def.PopTurn = *p.Turn.Pop
		}
	}

	if err := def.Validate(); err != nil {
		return lsystem.Definition{}, errors.Wrapf(err, "preset %q", p.ID)
	}

	def.Actions, err = p.actions(def)
	if err != nil {
		return lsystem.Definition{}, errors.Wrapf(err, "preset %q", p.ID)
	}
	return def, nil
}

func (p *PresetDef) actions(def lsystem.Definition) (lsystem.Actions, error) {
	var s SymbolsDef
	if p.Symbols != nil {
		s = *p.Symbols
	}

	actions := lsystem.Actions{}
	assign := func(symbols string, action lsystem.Action) error {
		for _, r := range symbols {
			if !def.InAlphabet(r) {
				return errors.Wrapf(ErrInvalidDocument, "%s symbol %q is not in the alphabet", action, r)
			}
			if prev, ok := actions[r]; ok && prev != action {
				return errors.Wrapf(ErrInvalidDocument, "symbol %q is both %s and %s", r, prev, action)
			}
			actions[r] = action
		}
		return nil
	}

	if s.Draw == "" {
		s.Draw = string(def.Variables)
	}
	if s.Push == "" && def.IsConstant('[') {
		s.Push = "["
	}
	if s.Pop == "" && def.IsConstant(']') {
		s.Pop = "]"
	}

	if err := assign(s.Draw, lsystem.ActionDraw); err != nil {
		return nil, err
	}
	if err := assign(s.Push, lsystem.ActionPush); err != nil {
		return nil, err
	}
	if err := assign(s.Pop, lsystem.ActionPop); err != nil {
		return nil, err
	}
	return actions, nil
}

// Engine builds a rewriting engine from the document.
func (p *PresetDef) Engine() (*lsystem.Engine, error) {
	def, err := p.Definition()
	if err != nil {
		return nil, err
	}
	e, err := lsystem.New(def, p.MaxSteps, p.StepInterval())
	if err != nil {
		return nil, errors.Wrapf(err, "preset %q", p.ID)
	}
	return e, nil
}

// Decoder reads a stream of YAML definition documents.
type Decoder struct {
	yamlDecoder *yaml.Decoder
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{yamlDecoder: yaml.NewDecoder(r)}
}

// Decode reads the next non-empty document. It returns io.EOF when the
// stream is exhausted.
func (dec *Decoder) Decode() (*PresetDef, error) {
	for {
		var node yaml.Node
		if err := dec.yamlDecoder.Decode(&node); err != nil {
			if err == io.EOF {
				return nil, err
			}
			return nil, errors.Wrap(err, "decoding definition document")
		}
		if isEmptyDocument(&node) {
			continue
		}

		p := &PresetDef{}
		if err := node.Decode(p); err != nil {
			return nil, errors.Wrap(err, "decoding definition document")
		}
		return p, nil
	}
}

// isEmptyDocument reports whether n holds nothing but an implicit null, as
// produced by a stray or trailing "---".
func isEmptyDocument(n *yaml.Node) bool {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return true
		}
		n = n.Content[0]
	}
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// DecodeAll reads every document from r.
func DecodeAll(r io.Reader) ([]PresetDef, error) {
	dec := NewDecoder(r)
	var presets []PresetDef
	for {
		p, err := dec.Decode()
		if err == io.EOF {
			return presets, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "document %d", len(presets))
		}
		presets = append(presets, *p)
	}
}
