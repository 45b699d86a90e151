// File: fakenode.go
// Role: Set (Split/Neighbors/Segment/LatLon/RealSegment/IncidentAt) and the
// Project helper — everything needed to place a waypoint in the interior of
// a real segment for the duration of one routing call.

package fakenode

import (
	"errors"
	"math"

	"github.com/routino/groute/graph"
)

// Sentinel errors for fakenode operations.
var (
	// ErrSegmentNotFound indicates Split was asked to split a segment index
	// that does not exist in the view.
	ErrSegmentNotFound = errors.New("fakenode: segment not found")

	// ErrUnsnappable indicates ResolveWaypoint found no segment to place a
	// waypoint on; the pair using that waypoint is aborted.
	ErrUnsnappable = errors.New("fakenode: waypoint not snappable to any segment")
)

// entry is one synthesized node: its coordinates, the real segment it was
// split from, and the two fake segments that replace that real segment for
// the query's duration.
type entry struct {
	lat, lon   float64
	realSeg    graph.SegmentIndex
	seg1, seg2 graph.SegmentIndex // fake segments: node1->fake, fake->node2
}

// fakeSegment records which two nodes a synthesized segment connects and
// which real segment (and way) it stands in for.
type fakeSegment struct {
	node1, node2 graph.NodeIndex
	realSeg      graph.SegmentIndex
	way          graph.WayIndex
	distance     uint32
	flags        graph.SegmentFlags
}

// Set holds every fake node/segment synthesized during one routing call.
type Set struct {
	view *graph.View

	nodes    []entry
	segments []fakeSegment

	// byRealNode indexes the fake segments incident to each real endpoint a
	// split touched, so a search starting or passing through that real node
	// can still discover the route into the fake node — the real node's
	// graph.View adjacency was frozen at Compile time and has no idea any
	// split happened.
	byRealNode map[graph.NodeIndex][]graph.SegmentIndex
}

// NewSet returns an empty Set scoped to v.
func NewSet(v *graph.View) *Set {
	return &Set{view: v, byRealNode: make(map[graph.NodeIndex][]graph.SegmentIndex)}
}

// IsFake reports whether idx was synthesized by this Set (or any Set, since
// the base index alone determines this).
func IsFake(idx graph.NodeIndex) bool { return graph.IsFakeNode(idx) }

// Split synthesizes a new node at the given lat/lon (radians), assumed to
// lie on the real segment segIdx, and two fake segments replacing it: one
// from segment.Node1 to the new node, one from the new node to
// segment.Node2. Distances are apportioned to the new node by linear
// fraction along the original segment's packed distance (fraction is the
// caller-computed projection parameter in [0,1], Node1 end = 0).
//
// Returns the new node's index.
func (s *Set) Split(segIdx graph.SegmentIndex, lat, lon, fraction float64) (graph.NodeIndex, error) {
	seg, err := s.view.Segment(segIdx)
	if err != nil {
		return 0, ErrSegmentNotFound
	}

	nodeIdx := graph.NodeFakeBase + graph.NodeIndex(len(s.nodes))
	d1 := uint32(float64(seg.Distance) * fraction)
	d2 := seg.Distance - d1

	// Node1/Node2 order is preserved on each half, so seg.Flags' oneway
	// direction (expressed relative to Node1/Node2) still applies unchanged.
	seg1Idx := graph.SegmentFakeBase + graph.SegmentIndex(len(s.segments))
	s.segments = append(s.segments, fakeSegment{node1: seg.Node1, node2: nodeIdx, realSeg: segIdx, way: seg.Way, distance: d1, flags: seg.Flags})

	seg2Idx := graph.SegmentFakeBase + graph.SegmentIndex(len(s.segments))
	s.segments = append(s.segments, fakeSegment{node1: nodeIdx, node2: seg.Node2, realSeg: segIdx, way: seg.Way, distance: d2, flags: seg.Flags})

	s.nodes = append(s.nodes, entry{lat: lat, lon: lon, realSeg: segIdx, seg1: seg1Idx, seg2: seg2Idx})

	s.byRealNode[seg.Node1] = append(s.byRealNode[seg.Node1], seg1Idx)
	s.byRealNode[seg.Node2] = append(s.byRealNode[seg.Node2], seg2Idx)

	return nodeIdx, nil
}

// IncidentAt returns the fake segments (if any) that touch a real node
// because a Split used it as one of the original segment's endpoints. A
// router's search over a real node must consult this alongside
// graph.View.Neighbors, since the View's adjacency table predates any
// split.
func (s *Set) IncidentAt(node graph.NodeIndex) []graph.SegmentIndex {
	return s.byRealNode[node]
}

// LatLon returns the coordinates of a fake node.
func (s *Set) LatLon(idx graph.NodeIndex) (lat, lon float64, ok bool) {
	i := int(idx - graph.NodeFakeBase)
	if i < 0 || i >= len(s.nodes) {
		return 0, 0, false
	}
	e := s.nodes[i]
	return e.lat, e.lon, true
}

// Neighbors returns the (at most two) fake segments incident to a fake node.
func (s *Set) Neighbors(idx graph.NodeIndex) []graph.SegmentIndex {
	i := int(idx - graph.NodeFakeBase)
	if i < 0 || i >= len(s.nodes) {
		return nil
	}
	e := s.nodes[i]
	return []graph.SegmentIndex{e.seg1, e.seg2}
}

// Segment resolves a fake segment index to its endpoints, distance and the
// real way/segment it was split from (via RealSegment).
func (s *Set) Segment(idx graph.SegmentIndex) (graph.Segment, bool) {
	i := int(idx - graph.SegmentFakeBase)
	if i < 0 || i >= len(s.segments) {
		return graph.Segment{}, false
	}
	fs := s.segments[i]
	return graph.Segment{
		Index:    idx,
		Node1:    fs.node1,
		Node2:    fs.node2,
		Way:      fs.way,
		Distance: fs.distance,
		Flags:    fs.flags,
	}, true
}

// RealSegment returns the real segment index a fake segment was split from,
// so the annotator can recover the actual way.
func (s *Set) RealSegment(idx graph.SegmentIndex) (graph.SegmentIndex, bool) {
	i := int(idx - graph.SegmentFakeBase)
	if i < 0 || i >= len(s.segments) {
		return 0, false
	}
	return s.segments[i].realSeg, true
}

// Project computes the fractional position ([0,1], 0 = node1 end) and
// perpendicular-projected lat/lon of (lat, lon) onto the real segment
// between (lat1,lon1) and (lat2,lon2), using an equirectangular
// approximation valid for the short distances a single segment spans.
//
// If the projection falls within EpsilonFraction of either endpoint, the
// caller should snap to that node instead of creating a fake one.
func Project(lat, lon, lat1, lon1, lat2, lon2 float64) (fraction, projLat, projLon float64) {
	cosLat := math.Cos((lat1 + lat2) / 2)

	ax, ay := (lon1)*cosLat, lat1
	bx, by := (lon2)*cosLat, lat2
	px, py := (lon)*cosLat, lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0, lat1, lon1
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	projY := ay + t*dy
	projX := ax + t*dx

	return t, projY, projX / cosLat
}

// EpsilonFraction is the default snap-to-node tolerance used by callers of
// Project, expressed as a fraction of the segment's length.
const EpsilonFraction = 1e-6

// ResolveWaypoint snaps a raw coordinate (radians) onto the road network:
// it finds the nearest normal segment by perpendicular projection, snaps
// to the segment's endpoint node when the projection lands within
// EpsilonFraction of it — a waypoint sitting on an existing node never
// creates a fake one — and otherwise synthesizes a fake node at the
// projected point via Split. The returned index is what a caller passes to
// the router as the waypoint.
func (s *Set) ResolveWaypoint(lat, lon float64) (graph.NodeIndex, error) {
	bestIdx := graph.NoSegment
	var bestSeg graph.Segment
	var bestFraction, bestLat, bestLon float64
	bestDist := math.Inf(1)

	for i := 0; i < s.view.SegmentCount(); i++ {
		idx := graph.SegmentIndex(i)
		seg, err := s.view.Segment(idx)
		if err != nil {
			continue
		}
		if !seg.IsNormal() || seg.Flags&graph.SegArea != 0 {
			continue
		}
		lat1, lon1, err1 := s.view.LatLon(seg.Node1)
		lat2, lon2, err2 := s.view.LatLon(seg.Node2)
		if err1 != nil || err2 != nil {
			continue
		}

		fraction, projLat, projLon := Project(lat, lon, lat1, lon1, lat2, lon2)
		if d := flatDistanceSq(lat, lon, projLat, projLon); d < bestDist {
			bestDist = d
			bestIdx = idx
			bestSeg = seg
			bestFraction, bestLat, bestLon = fraction, projLat, projLon
		}
	}

	if bestIdx == graph.NoSegment {
		return 0, ErrUnsnappable
	}
	if bestFraction <= EpsilonFraction {
		return bestSeg.Node1, nil
	}
	if bestFraction >= 1-EpsilonFraction {
		return bestSeg.Node2, nil
	}

	return s.Split(bestIdx, bestLat, bestLon, bestFraction)
}

// flatDistanceSq is a squared equirectangular distance in radian units,
// good enough to rank candidate segments by closeness.
func flatDistanceSq(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := (lon2 - lon1) * math.Cos((lat1+lat2)/2)
	return dLat*dLat + dLon*dLon
}
