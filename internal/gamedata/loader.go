package gamedata

import (
	"bytes"

	"github.com/pkg/errors"
)

// PresetsFile is the embedded preset catalogue.
const PresetsFile = "presets.yaml"

// Load reads every definition document from an embedded YAML file.
func Load(filename string) ([]PresetDef, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read embedded file %s", filename)
	}

	presets, err := DecodeAll(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse YAML from %s", filename)
	}
	return presets, nil
}

// LoadPresets loads the built-in preset catalogue.
func LoadPresets() ([]PresetDef, error) {
	return Load(PresetsFile)
}
