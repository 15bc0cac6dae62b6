package logging

import (
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/errors"
)

// Preset is a named logging configuration applied in one step by
// Service.SetupServiceLogging. When SetsLevel is false the current minimum
// level is left as it is.
type Preset struct {
	Name       string
	Categories Category
	Level      Level
	SetsLevel  bool
}

// presets is the fixed preset table. New presets are added here.
var presets = []Preset{
	{Name: "refueling", Categories: CategorySimConnect | CategoryRefueling},
	{Name: "boarding", Categories: CategoryBoarding | CategoryDoors},
	{Name: "catering", Categories: CategoryCatering | CategoryDoors},
	{Name: "all", Categories: CategoryAll},
	{Name: "critical", Categories: CategoryAll, Level: LevelCritical, SetsLevel: true},
	{Name: "cargo", Categories: CategoryCargo | CategoryDoors},
	{Name: "departure", Categories: CategoryPushback | CategoryDeice | CategoryFlightPhase},
	{Name: "connections", Categories: CategorySimConnect | CategoryProsim | CategoryEvents},
}

// Presets returns a copy of the preset table in definition order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the preset names in definition order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// LookupPreset finds a preset by name, ignoring case and surrounding space.
func LookupPreset(name string) (Preset, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == normalized {
			return p, nil
		}
	}
	return Preset{}, errors.NewInvalidArgumentError("no logging preset matched").
		WithField("preset").
		WithValue(name).
		WithCause(errors.ErrUnknownPreset)
}
