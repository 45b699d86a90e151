package annotate

import (
	"github.com/routino/groute/cost"
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// Importance classifies a visited node; higher means "more worth
// mentioning" in narrated directions.
type Importance int

const (
	Ignore        Importance = -1 // internal stitching point; never emitted
	Unimportant   Importance = 0  // a plain degree-2 through-node
	RBNotExit     Importance = 1  // a roundabout exit considered but not taken
	JunctContinue Importance = 2  // a junction exists but nothing is worth saying
	Change        Importance = 3  // the highway class changes, straight through
	JunctImport   Importance = 4  // an interesting junction
	RBEntry       Importance = 5  // entering a roundabout
	RBExit        Importance = 6  // leaving a roundabout
	MiniRB        Importance = 7  // a mini-roundabout
	UTurn         Importance = 8  // doubling back on the same segment
	Waypoint      Importance = 9  // a user-supplied waypoint
)

// Event is one annotated point of a finished route: everything a formatter
// needs without re-walking the graph, computed once here.
type Event struct {
	Node   graph.NodeIndex
	IsFake bool
	Lat    float64 // radians
	Lon    float64 // radians

	Importance Importance

	// Segment is the edge travelled to reach Node; graph.NoSegment for the
	// very first point of the chain.
	Segment graph.SegmentIndex
	Way     graph.WayIndex
	Highway graph.HighwayClass

	SegDistance cost.Score
	SegDuration cost.Score
	CumDistance cost.Score
	CumDuration cost.Score
	SpeedKPH    float64

	// Bearing is the departure heading, Turn the turn relative to arriving
	// straight, both quantised into 8 compass-style 45-degree buckets.
	// Populated only when Importance > JunctContinue: points below that
	// threshold are never reported, so their angles are never needed.
	Bearing int
	Turn    int

	// RoundaboutOrdinal is 0-based (0 = "first"), -1 unless Importance is
	// RBNotExit (which exit is being passed) or RBExit (which exit is being
	// taken) — it indexes an ordinal-word table at formatting time.
	RoundaboutOrdinal int
}

// walker carries the state threaded through one Annotate call: the
// accumulating roundabout exit counter and the running distance/duration
// totals.
type walker struct {
	view     *graph.View
	fakes    *fakenode.Set
	model    *cost.Model
	waypoint map[graph.NodeIndex]bool

	roundabout int
	cumDist    cost.Score
	cumDur     cost.Score
}

// Annotate walks chain (the Next-linked output of router.FixForwardRoute /
// router.Solve) and returns one Event per node. fakes may be nil if the
// chain contains no synthesized waypoints.
func Annotate(chain *resultstore.Result, waypoints []graph.NodeIndex, view *graph.View, fakes *fakenode.Set, model *cost.Model) []Event {
	w := &walker{
		view:     view,
		fakes:    fakes,
		model:    model,
		waypoint: make(map[graph.NodeIndex]bool, len(waypoints)),
	}
	for _, n := range waypoints {
		w.waypoint[n] = true
	}

	var events []Event
	for cur := chain; cur != nil; cur = cur.Next {
		events = append(events, w.classify(cur))
	}
	return events
}

// classify produces the Event for cur, advancing the walker's running
// totals and roundabout counter as a side effect (each node is visited
// exactly once, in route order).
func (w *walker) classify(cur *resultstore.Result) Event {
	lat, lon, _ := w.latLon(cur.Node)
	ev := Event{Node: cur.Node, IsFake: graph.IsFakeNode(cur.Node), Lat: lat, Lon: lon, Segment: cur.Segment}

	inSeg, inOK := w.segment(cur.Segment)
	if inOK {
		if way, err := w.view.Way(inSeg.Way); err == nil {
			ev.Way = inSeg.Way
			ev.Highway = way.Highway
			ev.SpeedKPH = w.model.Profile.Speed(way.Highway)
			ev.SegDistance = w.model.SegmentDistance(inSeg)
			ev.SegDuration = w.model.SegmentDuration(inSeg, way)
			w.cumDist += ev.SegDistance
			w.cumDur += ev.SegDuration
		}
	}
	ev.CumDistance = w.cumDist
	ev.CumDuration = w.cumDur

	next := cur.Next
	var outSeg graph.Segment
	var outOK bool
	if next != nil {
		outSeg, outOK = w.segment(next.Segment)
	}

	ev.Importance = w.importance(cur, next, inSeg, inOK, outSeg, outOK)

	ev.RoundaboutOrdinal = -1
	if ev.Importance == RBNotExit || ev.Importance == RBExit {
		ev.RoundaboutOrdinal = w.roundabout - 2
	}
	if ev.Importance > JunctContinue && w.roundabout > 1 {
		w.roundabout = 0
	}

	if ev.Importance > JunctContinue && next != nil && inOK && outOK {
		arrival := w.segmentBearing(inSeg, cur.Node)
		arrival = normalizeSigned(arrival + 180) // direction we were travelling, not the segment's far-end bearing
		departure := w.segmentBearing(outSeg, cur.Node)
		ev.Turn = turnBucket(turnAngleDegrees(arrival, departure))
		ev.Bearing = headingBucket(departure)
	}

	return ev
}

// importance runs the classification ladder: roundabout state first, then
// waypoint/U-turn/mini-roundabout, and finally the junction branch walk.
func (w *walker) importance(cur, next *resultstore.Result, inSeg graph.Segment, inOK bool, outSeg graph.Segment, outOK bool) Importance {
	// The chain's endpoints are always waypoints, whatever they sit on.
	if cur.Prev == nil || next == nil {
		return Waypoint
	}

	important := Unimportant

	if outOK {
		if outWay, err := w.view.Way(outSeg.Way); err == nil && outWay.Roundabout {
			if w.roundabout == 0 {
				w.roundabout = 1
				important = RBEntry
			} else if w.hasUntakenRoundaboutExit(cur, next, inSeg, inOK) {
				w.roundabout++
				important = RBNotExit
			}
		} else if w.roundabout != 0 {
			w.roundabout++
			important = RBExit
		}
	}

	if w.roundabout != 0 {
		// Still on (or just leaving) a roundabout: none of the ordinary
		// waypoint/U-turn/junction checks apply this iteration.
		return important
	}

	switch {
	case w.waypoint[cur.Node]:
		return Waypoint
	case inOK && outOK && w.realSegment(cur.Segment) == w.realSegment(next.Segment):
		return UTurn
	case w.isMiniRoundabout(cur.Node):
		return MiniRB
	}

	return w.junctionImportance(cur, next, inSeg, inOK)
}

// hasUntakenRoundaboutExit reports whether, while still on a roundabout, a
// branch from cur.Node other than the one taken leads off the roundabout.
// A one-way branch pointing back towards cur.Node is an entrance, not an
// exit, so it doesn't count.
func (w *walker) hasUntakenRoundaboutExit(cur, next *resultstore.Result, inSeg graph.Segment, inOK bool) bool {
	prevNode := graph.NoNode
	if cur.Prev != nil {
		prevNode = cur.Prev.Node
	}

	for _, segIdx := range w.neighbors(cur.Node) {
		if inOK && segIdx == cur.Segment {
			continue
		}
		seg, ok := w.segment(segIdx)
		if !ok {
			continue
		}
		other := seg.Other(cur.Node)
		if other == prevNode {
			continue
		}
		if seg.Flags&graph.SegArea != 0 {
			continue
		}
		if !seg.AllowsDirection(cur.Node) {
			continue
		}
		way, err := w.view.Way(seg.Way)
		if err != nil || way.Roundabout {
			continue
		}
		if next != nil && other == next.Node {
			continue
		}
		return true
	}
	return false
}

// junctionImportance runs the non-roundabout branch walk: CHANGE if the
// taken branch's class differs from the one we arrived on, JUNCT_IMPORT if
// any not-taken branch is "important" per the table, else JUNCT_CONT if any
// branch exists at all, else UNIMPORTANT.
func (w *walker) junctionImportance(cur, next *resultstore.Result, inSeg graph.Segment, inOK bool) Importance {
	if !inOK {
		return Unimportant
	}
	inWay, err := w.view.Way(inSeg.Way)
	if err != nil {
		return Unimportant
	}

	prevNode := graph.NoNode
	if cur.Prev != nil {
		prevNode = cur.Prev.Node
	}

	important := Unimportant

	for _, segIdx := range w.neighbors(cur.Node) {
		if segIdx == cur.Segment {
			continue
		}
		seg, ok := w.segment(segIdx)
		if !ok {
			continue
		}
		other := seg.Other(cur.Node)
		if other == prevNode {
			continue
		}
		if seg.Flags&graph.SegArea != 0 {
			continue
		}
		if !seg.AllowsDirection(cur.Node) {
			continue
		}

		way, err := w.view.Way(seg.Way)
		if err != nil {
			continue
		}

		switch {
		case next != nil && other == next.Node:
			if way.Highway != inWay.Highway && important < Change {
				important = Change
			}
		case next != nil && graph.IsFakeNode(next.Node):
			// a synthesized finish node: nothing else to branch towards
		default:
			if importantOtherWay(inWay.Highway, way.Highway) && important < JunctImport {
				important = JunctImport
			}
			if important < JunctContinue {
				important = JunctContinue
			}
		}
	}

	return important
}

func (w *walker) isMiniRoundabout(node graph.NodeIndex) bool {
	if graph.IsFakeNode(node) {
		return false
	}
	n, err := w.view.Node(node)
	return err == nil && n.IsMiniRoundabout()
}

// segmentBearing returns the outbound bearing of seg as seen from node,
// i.e. the heading from node towards seg's other end.
func (w *walker) segmentBearing(seg graph.Segment, node graph.NodeIndex) float64 {
	lat1, lon1, _ := w.latLon(node)
	lat2, lon2, _ := w.latLon(seg.Other(node))
	return bearingDegrees(lat1, lon1, lat2, lon2)
}

func (w *walker) latLon(node graph.NodeIndex) (lat, lon float64, ok bool) {
	if graph.IsFakeNode(node) {
		if w.fakes == nil {
			return 0, 0, false
		}
		return w.fakes.LatLon(node)
	}
	lat, lon, err := w.view.LatLon(node)
	return lat, lon, err == nil
}

func (w *walker) neighbors(node graph.NodeIndex) []graph.SegmentIndex {
	if graph.IsFakeNode(node) {
		if w.fakes == nil {
			return nil
		}
		return w.fakes.Neighbors(node)
	}
	segs := w.view.Neighbors(node)
	if w.fakes == nil {
		return segs
	}
	if extra := w.fakes.IncidentAt(node); len(extra) > 0 {
		combined := make([]graph.SegmentIndex, 0, len(segs)+len(extra))
		combined = append(combined, segs...)
		combined = append(combined, extra...)
		return combined
	}
	return segs
}

func (w *walker) segment(idx graph.SegmentIndex) (graph.Segment, bool) {
	if idx == graph.NoSegment {
		return graph.Segment{}, false
	}
	if graph.IsFakeSegment(idx) {
		if w.fakes == nil {
			return graph.Segment{}, false
		}
		return w.fakes.Segment(idx)
	}
	s, err := w.view.Segment(idx)
	return s, err == nil
}

// realSegment resolves a fake segment back to the real segment it was split
// from, so a U-turn across a split segment is still recognised as one.
func (w *walker) realSegment(idx graph.SegmentIndex) graph.SegmentIndex {
	if !graph.IsFakeSegment(idx) {
		return idx
	}
	if w.fakes == nil {
		return idx
	}
	if real, ok := w.fakes.RealSegment(idx); ok {
		return real
	}
	return idx
}
