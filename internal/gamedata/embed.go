// Package gamedata provides the embedded L-system preset catalogue and the
// YAML definition format used to describe L-systems.
package gamedata

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
