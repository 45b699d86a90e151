// File: profile.go
// Role: the Profile type, its functional options, and the AllowsWay /
// AllowsHighway / Speed accessors the cost model and router consult on
// every edge relaxation.

package profile

import (
	"errors"
	"fmt"

	"github.com/routino/groute/graph"
)

// Sentinel errors for Profile construction and validation.
var (
	// ErrEmptyTransportName indicates WithTransport was not given a name.
	ErrEmptyTransportName = errors.New("profile: transport name is empty")
	// ErrNegativeSpeed indicates a negative km/h speed was supplied for a
	// highway class.
	ErrNegativeSpeed = errors.New("profile: speed must be non-negative")
	// ErrNoAllowedHighways indicates the resulting profile permits no
	// highway class at all, which can never produce a route.
	ErrNoAllowedHighways = errors.New("profile: no highway class is allowed")
	// ErrUnknownTransport indicates the transport name does not match any
	// graph.TransportMask mode.
	ErrUnknownTransport = errors.New("profile: unknown transport name")
)

// Profile holds the transport-specific parameters that the cost model and
// router consult on every edge relaxation.
type Profile struct {
	Transport string

	// Mode is the single graph.TransportMask bit this profile routes for,
	// checked against each Way's own Allow mask in AllowsWay. Resolved from
	// Transport by WithTransport/fromRaw via transportModes.
	Mode graph.TransportMask

	// Allow is a bitmask: highway class h is permitted iff bit (h-1) is set.
	Allow uint16

	// SpeedKPH[h] is the speed, in km/h, used for HighwayClass h. Index 0 is
	// unused; classes are 1-based per graph.HighwayClass.
	SpeedKPH [graph.HighwayClassCount + 1]float64

	// ObeyOneway, when true, makes the router honour Segment oneway flags.
	ObeyOneway bool

	// ObeyTurnRestrictions, when true, makes the router consult
	// graph.Relation entries at every via-node.
	ObeyTurnRestrictions bool

	// AllowUTurn permits relaxing back across the same real segment.
	AllowUTurn bool

	Weight Limit
	Height Limit
	Width  Limit
	Length Limit
}

// Limit mirrors graph.Limit for profile-side physical constraints: either
// Unlimited or a numeric cap that a Way's own limit must not exceed.
type Limit struct {
	Unlimited bool
	Value     float64
}

// Option configures a Profile during New.
type Option func(*Profile)

// transportModes maps a transport's display name to its graph.TransportMask
// bit, the same vocabulary graph.Way.Allow is expressed in.
var transportModes = map[string]graph.TransportMask{
	"foot":       graph.TransportFoot,
	"bicycle":    graph.TransportBicycle,
	"horse":      graph.TransportHorse,
	"motorcycle": graph.TransportMotorcycle,
	"motorcar":   graph.TransportMotorcar,
	"goods":      graph.TransportGoods,
	"hgv":        graph.TransportHGV,
	"psv":        graph.TransportPSV,
}

// WithTransport sets the transport's display name (e.g. "motorcar", "foot")
// and resolves the matching graph.TransportMask bit into Mode.
func WithTransport(name string) Option {
	return func(p *Profile) {
		p.Transport = name
		p.Mode = transportModes[name]
	}
}

// WithAllowedHighway permits routing on the given highway class.
func WithAllowedHighway(h graph.HighwayClass) Option {
	return func(p *Profile) { p.Allow |= 1 << (h - 1) }
}

// WithSpeed sets the speed, in km/h, used for a highway class. Panics if
// speed is negative: that is a configuration error, not a runtime one, so
// it surfaces at construction.
func WithSpeed(h graph.HighwayClass, kph float64) Option {
	return func(p *Profile) {
		if kph < 0 {
			panic(ErrNegativeSpeed.Error())
		}
		p.SpeedKPH[h] = kph
	}
}

// WithObeyOneway toggles oneway obedience (default true).
func WithObeyOneway(obey bool) Option {
	return func(p *Profile) { p.ObeyOneway = obey }
}

// WithObeyTurnRestrictions toggles turn-restriction obedience (default true).
func WithObeyTurnRestrictions(obey bool) Option {
	return func(p *Profile) { p.ObeyTurnRestrictions = obey }
}

// WithAllowUTurn permits the router to relax back across the segment it
// just arrived on (default false).
func WithAllowUTurn(allow bool) Option {
	return func(p *Profile) { p.AllowUTurn = allow }
}

// WithWeightLimit sets the maximum permitted vehicle weight, in kilograms.
func WithWeightLimit(kg float64) Option {
	return func(p *Profile) { p.Weight = Limit{Value: kg} }
}

// WithHeightLimit sets the maximum permitted vehicle height, in metres.
func WithHeightLimit(m float64) Option {
	return func(p *Profile) { p.Height = Limit{Value: m} }
}

// WithWidthLimit sets the maximum permitted vehicle width, in metres.
func WithWidthLimit(m float64) Option {
	return func(p *Profile) { p.Width = Limit{Value: m} }
}

// WithLengthLimit sets the maximum permitted vehicle length, in metres.
func WithLengthLimit(m float64) Option {
	return func(p *Profile) { p.Length = Limit{Value: m} }
}

// New builds a Profile from functional options. By default every physical
// limit is Unlimited, oneway and turn-restriction obedience are both on,
// U-turns are forbidden, and no highway class is allowed (the caller must
// enable at least one via WithAllowedHighway).
func New(opts ...Option) (*Profile, error) {
	p := &Profile{
		ObeyOneway:           true,
		ObeyTurnRestrictions: true,
		Weight:               Limit{Unlimited: true},
		Height:               Limit{Unlimited: true},
		Width:                Limit{Unlimited: true},
		Length:               Limit{Unlimited: true},
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.Transport == "" {
		return nil, ErrEmptyTransportName
	}
	if p.Mode == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, p.Transport)
	}
	if p.Allow == 0 {
		return nil, ErrNoAllowedHighways
	}

	return p, nil
}

// AllowsHighway reports whether h may be used by this profile.
func (p *Profile) AllowsHighway(h graph.HighwayClass) bool {
	return p.Allow&(1<<(h-1)) != 0
}

// AllowsWay reports whether w may be used at all: its highway class is
// permitted, this profile's transport mode is in w.Allow, and none of w's
// physical limits are exceeded by the profile's own caps.
func (p *Profile) AllowsWay(w graph.Way) bool {
	if !p.AllowsHighway(w.Highway) {
		return false
	}
	if !w.Allow.Allows(p.Mode) {
		return false
	}
	if exceeds(p.Weight, w.Weight) || exceeds(p.Height, w.Height) ||
		exceeds(p.Width, w.Width) || exceeds(p.Length, w.Length) {
		return false
	}
	return true
}

// exceeds reports whether the profile's own cap (limit) is stricter than,
// and therefore violated by, the way's cap (wayLimit) — i.e. the vehicle
// could be larger/heavier than the way permits.
func exceeds(limit Limit, wayLimit graph.Limit) bool {
	if wayLimit.Unlimited || limit.Unlimited {
		return false
	}
	return limit.Value > wayLimit.Value
}

// Speed returns the speed, in km/h, this profile uses for highway class h.
func (p *Profile) Speed(h graph.HighwayClass) float64 {
	if int(h) >= len(p.SpeedKPH) {
		return 0
	}
	return p.SpeedKPH[h]
}

// Validate re-checks profile invariants after direct field mutation (used
// by profile.LoadYAML, which populates a Profile outside the Option path).
func (p *Profile) Validate() error {
	if p.Transport == "" {
		return ErrEmptyTransportName
	}
	if p.Mode == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTransport, p.Transport)
	}
	if p.Allow == 0 {
		return ErrNoAllowedHighways
	}
	for h := 1; h < len(p.SpeedKPH); h++ {
		if p.SpeedKPH[h] < 0 {
			return fmt.Errorf("%w: class %d", ErrNegativeSpeed, h)
		}
	}
	return nil
}
