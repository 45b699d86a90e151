// File: yaml.go
// Role: load a Profile from the YAML transport-profile file consumed by
// cmd/groute. The routing core itself only ever sees the parsed Profile
// struct; an embedder may skip this file format entirely and construct one
// through the functional options.

package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/routino/groute/graph"
)

// rawProfile is the on-disk YAML shape; it is translated into Profile
// (which is all Go types and bitmasks) by fromRaw.
type rawProfile struct {
	Transport   string             `yaml:"transport"`
	Highways    []string           `yaml:"highways"`
	SpeedKPH    map[string]float64 `yaml:"speed_kph"`
	ObeyOneway  *bool              `yaml:"obey_oneway"`
	ObeyTurns   *bool              `yaml:"obey_turn_restrictions"`
	AllowUTurn  bool               `yaml:"allow_uturn"`
	WeightLimit *float64           `yaml:"weight_limit_kg"`
	HeightLimit *float64           `yaml:"height_limit_m"`
	WidthLimit  *float64           `yaml:"width_limit_m"`
	LengthLimit *float64           `yaml:"length_limit_m"`
}

var highwayNames = map[string]graph.HighwayClass{
	"motorway":     graph.HighwayMotorway,
	"trunk":        graph.HighwayTrunk,
	"primary":      graph.HighwayPrimary,
	"secondary":    graph.HighwaySecondary,
	"tertiary":     graph.HighwayTertiary,
	"unclassified": graph.HighwayUnclassified,
	"residential":  graph.HighwayResidential,
	"service":      graph.HighwayService,
	"track":        graph.HighwayTrack,
	"cycleway":     graph.HighwayCycleway,
	"path":         graph.HighwayPath,
	"steps":        graph.HighwaySteps,
	"ferry":        graph.HighwayFerry,
}

// LoadYAML reads a transport-profile file from path and returns a
// validated Profile.
func LoadYAML(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: reading %s: %w", path, err)
	}

	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile: parsing %s: %w", path, err)
	}

	return fromRaw(raw)
}

func fromRaw(raw rawProfile) (*Profile, error) {
	p := &Profile{
		Transport:            raw.Transport,
		Mode:                 transportModes[raw.Transport],
		ObeyOneway:           true,
		ObeyTurnRestrictions: true,
		AllowUTurn:           raw.AllowUTurn,
		Weight:               Limit{Unlimited: true},
		Height:               Limit{Unlimited: true},
		Width:                Limit{Unlimited: true},
		Length:               Limit{Unlimited: true},
	}

	if raw.ObeyOneway != nil {
		p.ObeyOneway = *raw.ObeyOneway
	}
	if raw.ObeyTurns != nil {
		p.ObeyTurnRestrictions = *raw.ObeyTurns
	}

	for _, name := range raw.Highways {
		h, ok := highwayNames[name]
		if !ok {
			return nil, fmt.Errorf("profile: unknown highway class %q", name)
		}
		p.Allow |= 1 << (h - 1)
	}

	for name, kph := range raw.SpeedKPH {
		h, ok := highwayNames[name]
		if !ok {
			return nil, fmt.Errorf("profile: unknown highway class %q", name)
		}
		if kph < 0 {
			return nil, fmt.Errorf("%w: class %q", ErrNegativeSpeed, name)
		}
		p.SpeedKPH[h] = kph
	}

	if raw.WeightLimit != nil {
		p.Weight = Limit{Value: *raw.WeightLimit}
	}
	if raw.HeightLimit != nil {
		p.Height = Limit{Value: *raw.HeightLimit}
	}
	if raw.WidthLimit != nil {
		p.Width = Limit{Value: *raw.WidthLimit}
	}
	if raw.LengthLimit != nil {
		p.Length = Limit{Value: *raw.LengthLimit}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
