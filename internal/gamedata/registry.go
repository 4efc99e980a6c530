package gamedata

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonsprout/internal/telemetry"
)

// ErrUnknownPreset indicates a lookup for a preset ID that is not registered.
var ErrUnknownPreset = errors.New("gamedata: unknown preset")

// PresetRegistry holds validated L-system presets keyed by ID.
type PresetRegistry struct {
	presets map[string]*PresetDef
	all     []PresetDef
}

// NewPresetRegistry validates every preset and indexes them by ID.
func NewPresetRegistry(presets []PresetDef) (*PresetRegistry, error) {
	registry := &PresetRegistry{
		presets: make(map[string]*PresetDef, len(presets)),
		all:     presets,
	}
	for i := range presets {
		p := &presets[i]
		if p.ID == "" {
			return nil, errors.Wrapf(ErrInvalidDocument, "preset %d has no id", i)
		}
		if _, dup := registry.presets[p.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidDocument, "duplicate preset id %q", p.ID)
		}
		if _, err := p.Engine(); err != nil {
			return nil, err
		}
		registry.presets[p.ID] = p
	}
	return registry, nil
}

// LoadPresetRegistry loads and validates the embedded catalogue.
func LoadPresetRegistry(ctx context.Context) (*PresetRegistry, error) {
	_, span := telemetry.Tracer("gamedata").Start(ctx, "gamedata.load")
	defer span.End()

	presets, err := LoadPresets()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}
	if len(presets) == 0 {
		err := errors.Errorf("no presets loaded from %s", PresetsFile)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	registry, err := NewPresetRegistry(presets)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("gamedata.preset_count", registry.Count()))
	return registry, nil
}

// MustLoadPresetRegistry loads the catalogue, panicking on error.
func MustLoadPresetRegistry(ctx context.Context) *PresetRegistry {
	registry, err := LoadPresetRegistry(ctx)
	if err != nil {
		panic(err)
	}
	return registry
}

// Get returns the preset with the given ID.
func (r *PresetRegistry) Get(id string) (*PresetDef, error) {
	p, ok := r.presets[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q", id)
	}
	return p, nil
}

// IDs returns every registered ID in sorted order.
func (r *PresetRegistry) IDs() []string {
	ids := make([]string, 0, len(r.presets))
	for id := range r.presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns all preset definitions in catalogue order.
func (r *PresetRegistry) All() []PresetDef {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.all)
}
