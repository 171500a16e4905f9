// Package config provides YAML-based board preset loading for the
// minesweeper front ends.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CustomPreset is the name recorded for boards built from explicit sizes.
const CustomPreset = "custom"

// ErrUnknownPreset is returned when a preset name is not configured.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Config is the top-level configuration file.
type Config struct {
	Default string            `yaml:"default"`
	Presets map[string]Preset `yaml:"presets"`
}

// Preset is a named board size.
type Preset struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
	Mines  int `yaml:"mines"`
}

// Overrides holds per-run board sizes; zero fields keep the preset value.
type Overrides struct {
	Height int
	Width  int
	Mines  int
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// Validate checks that the preset describes a playable board.
func (p Preset) Validate() error {
	if p.Height <= 0 || p.Width <= 0 {
		return fmt.Errorf("config: board size %dx%d must be positive", p.Height, p.Width)
	}
	if p.Mines < 1 || p.Mines > p.Height*p.Width-1 {
		return fmt.Errorf("config: %d mines do not fit a %dx%d board", p.Mines, p.Height, p.Width)
	}
	return nil
}

// String formats the preset as "HxW/M".
func (p Preset) String() string {
	return fmt.Sprintf("%dx%d/%d", p.Height, p.Width, p.Mines)
}

// Validate checks every preset and the default name.
func (c Config) Validate() error {
	if len(c.Presets) == 0 {
		return errors.New("config: no presets defined")
	}
	for _, name := range c.Names() {
		if err := c.Presets[name].Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	if c.Default != "" {
		if _, ok := c.Presets[c.Default]; !ok {
			return fmt.Errorf("%w: default %q", ErrUnknownPreset, c.Default)
		}
	}
	return nil
}

// Names returns preset names ordered by board area, then by name.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.Presets[names[i]], c.Presets[names[j]]
		if a.Height*a.Width != b.Height*b.Width {
			return a.Height*a.Width < b.Height*b.Width
		}
		if a.Mines != b.Mines {
			return a.Mines < b.Mines
		}
		return names[i] < names[j]
	})
	return names
}

// Resolve picks a preset by name (empty means the default) and applies
// overrides. Any override turns the result into a custom board.
func (c Config) Resolve(name string, o Overrides) (string, Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = c.Default
	}

	p, ok := c.Presets[name]
	if !ok && name != CustomPreset {
		return "", Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if name == CustomPreset && o.IsZero() {
		return "", Preset{}, errors.New("config: custom preset needs --height, --width and --mines")
	}

	if !o.IsZero() {
		if o.Height > 0 {
			p.Height = o.Height
		}
		if o.Width > 0 {
			p.Width = o.Width
		}
		if o.Mines > 0 {
			p.Mines = o.Mines
		}
		name = CustomPreset
	}

	if err := p.Validate(); err != nil {
		return "", Preset{}, err
	}
	return name, p, nil
}
