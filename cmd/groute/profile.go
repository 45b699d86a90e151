package main

import (
	"fmt"

	"github.com/routino/groute/graph"
	"github.com/routino/groute/profile"
)

// loadProfile builds the transport profile cfg names, either from a YAML
// file (--profile) or from the built-in default for --transport.
func loadProfile(cfg config) (*profile.Profile, error) {
	if cfg.profilePath != "" {
		p, err := profile.LoadYAML(cfg.profilePath)
		if err != nil {
			return nil, fmt.Errorf("groute: loading profile %s: %w", cfg.profilePath, err)
		}
		return p, nil
	}

	p, err := profile.New(defaultProfileOptions(cfg.transport)...)
	if err != nil {
		return nil, fmt.Errorf("groute: building default profile for transport %q: %w", cfg.transport, err)
	}
	return p, nil
}

// defaultHighwaySpeeds is a generic km/h table used when no --profile file
// is given, loosely matching Routino's own bundled profiles.xml defaults.
var defaultHighwaySpeeds = map[graph.HighwayClass]float64{
	graph.HighwayMotorway:     112,
	graph.HighwayTrunk:        112,
	graph.HighwayPrimary:      96,
	graph.HighwaySecondary:    80,
	graph.HighwayTertiary:     64,
	graph.HighwayUnclassified: 64,
	graph.HighwayResidential:  48,
	graph.HighwayService:      16,
	graph.HighwayTrack:        16,
	graph.HighwayCycleway:     24,
	graph.HighwayPath:         8,
	graph.HighwaySteps:        4,
	graph.HighwayFerry:        16,
}

// motorVehicleExcluded are highway classes no motorised transport may use.
var motorVehicleExcluded = map[graph.HighwayClass]bool{
	graph.HighwayCycleway: true,
	graph.HighwayPath:     true,
	graph.HighwaySteps:    true,
}

func defaultProfileOptions(transport string) []profile.Option {
	opts := []profile.Option{profile.WithTransport(transport)}

	motorised := transport == "motorcar" || transport == "motorcycle" ||
		transport == "goods" || transport == "hgv" || transport == "psv"

	for h, kph := range defaultHighwaySpeeds {
		if motorised && motorVehicleExcluded[h] {
			continue
		}
		opts = append(opts, profile.WithAllowedHighway(h), profile.WithSpeed(h, kph))
	}
	return opts
}
