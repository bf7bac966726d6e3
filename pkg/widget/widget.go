// Package widget builds the payload handed to a hierarchy renderer.
//
// A payload couples a canonical tree with a rendering mode and an opaque
// bag of presentation options. The options are passed through unchanged;
// nothing in this module interprets them.
package widget

import (
	"maps"
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/tree"
)

// Mode selects the diagram a renderer draws.
type Mode string

// Rendering modes.
const (
	ModeSankey    Mode = "sankey"
	ModeSunburst  Mode = "sunburst"
	ModePartition Mode = "partition"
	ModeTreemap   Mode = "treemap"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeSankey, ModeSunburst, ModePartition, ModeTreemap}

// ParseMode validates a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown mode %q (must be one of: %s)", s, modeList())
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Payload is the serialized form a renderer consumes.
type Payload struct {
	Type    Mode           `json:"type" yaml:"type"`
	Data    *tree.Node     `json:"data" yaml:"data"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Width   int            `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int            `json:"height,omitempty" yaml:"height,omitempty"`
}

// Config carries the presentation settings for a payload.
type Config struct {
	Mode    string         `json:"type,omitempty" toml:"mode"`
	Width   int            `json:"width,omitempty" toml:"width"`
	Height  int            `json:"height,omitempty" toml:"height"`
	Options map[string]any `json:"options,omitempty" toml:"options"`
}

// New wraps root in a payload. The options map is copied shallowly so later
// changes by the caller do not leak into the payload.
func New(root *tree.Node, cfg Config) (*Payload, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeNoRoot, "payload needs a tree")
	}
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "size %dx%d must not be negative", cfg.Width, cfg.Height)
	}
	return &Payload{
		Type:    mode,
		Data:    root,
		Options: maps.Clone(cfg.Options),
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}
