// File: cost.go
// Role: per-segment distance/duration accounting and the admissible
// heuristic the router's A*-style priority key relies on. Distances are
// metres, durations seconds; the active Metric decides which of the two a
// Score accumulates.

package cost

import (
	"math"

	"github.com/routino/groute/graph"
	"github.com/routino/groute/profile"
)

// Score is the accumulated cost type used throughout resultstore and pq:
// either metres (Metric == Distance) or seconds (Metric == Duration).
type Score float64

// Inf is the "no path" / "not yet reached" sentinel score.
const Inf Score = math.MaxFloat64

// Metric selects which quantity Score measures.
type Metric int

const (
	// Distance scores purely on cumulative metres ("shortest").
	Distance Metric = iota
	// Duration scores on cumulative seconds at the profile's per-class
	// speed ("quickest").
	Duration
)

// earthRadiusMetres is the mean Earth radius used for the great-circle
// heuristic.
const earthRadiusMetres = 6371000.0

// Model bundles a Metric and the Profile whose speeds/limits it scores
// against. It holds no mutable state: one Model may be shared by any number
// of concurrent routing calls against the same Profile.
type Model struct {
	Metric  Metric
	Profile *profile.Profile
}

// New returns a Model for the given metric and profile.
func New(metric Metric, p *profile.Profile) *Model {
	return &Model{Metric: metric, Profile: p}
}

// SegmentDistance returns the physical length of s, in metres.
func (m *Model) SegmentDistance(s graph.Segment) Score {
	return Score(s.Distance)
}

// SegmentDuration returns the time to traverse s at the profile's speed for
// its way's highway class, in seconds. A zero speed (class disallowed or
// misconfigured) is treated as impassable and returns Inf (the
// math.MaxFloat64 "no path" sentinel) so the caller's relaxation naturally
// rejects it.
func (m *Model) SegmentDuration(s graph.Segment, w graph.Way) Score {
	kph := m.Profile.Speed(w.Highway)
	if kph <= 0 {
		return Inf
	}
	metresPerSecond := kph * 1000.0 / 3600.0
	return Score(float64(s.Distance) / metresPerSecond)
}

// EdgeCost returns the active metric's cost for traversing s along its way
// w, i.e. SegmentDistance or SegmentDuration depending on m.Metric.
func (m *Model) EdgeCost(s graph.Segment, w graph.Way) Score {
	if m.Metric == Duration {
		return m.SegmentDuration(s, w)
	}
	return m.SegmentDistance(s)
}

// Heuristic returns an admissible lower bound on the remaining cost from
// (lat, lon) to (goalLat, goalLon): the great-circle distance for Distance
// scoring, or that distance divided by the profile's fastest permitted
// class speed for Duration scoring (both never overestimate the true cost).
func (m *Model) Heuristic(lat, lon, goalLat, goalLon float64) Score {
	d := greatCircleMetres(lat, lon, goalLat, goalLon)
	if m.Metric == Distance {
		return Score(d)
	}

	fastest := m.fastestAllowedSpeed()
	if fastest <= 0 {
		return 0
	}
	metresPerSecond := fastest * 1000.0 / 3600.0
	return Score(d / metresPerSecond)
}

func (m *Model) fastestAllowedSpeed() float64 {
	var best float64
	for h := 1; h < len(m.Profile.SpeedKPH); h++ {
		if !m.Profile.AllowsHighway(graph.HighwayClass(h)) {
			continue
		}
		if kph := m.Profile.SpeedKPH[h]; kph > best {
			best = kph
		}
	}
	return best
}

// greatCircleMetres computes the haversine distance between two points
// given in radians.
func greatCircleMetres(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	a := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMetres * c
}
