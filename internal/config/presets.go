package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/pendulum/internal/dynamo"
)

var Presets = map[string]*Config{
	// released from the horizontal, as the desktop build starts
	"horizontal": {Length: 1.0, AngleDegrees: 0},
	"rest":       {Length: 1.0, AngleDegrees: 90},
	"small":      {Length: 1.0, AngleDegrees: 80},
	"long":       {Length: 3.0, AngleDegrees: 0},
	"spinning":   {Length: 1.0, AngleDegrees: 90, AngularVelocity: 8.0},
}

// GetPreset returns a copy of the named preset with unset fields taken from
// the defaults.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%s (available: %v): %w", name, ListPresets(), dynamo.ErrUnknownPreset)
	}
	cfg := DefaultConfig()
	cfg.Length = p.Length
	cfg.AngleDegrees = p.AngleDegrees
	cfg.AngularVelocity = p.AngularVelocity
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
