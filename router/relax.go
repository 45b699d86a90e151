// File: relax.go
// Role: the shared best-first expansion step used by FindStartRoutes,
// FindFinishRoutes, FindNormalRoute and FindMiddleRoute. State is keyed on
// (node, incoming-segment) rather than node alone: around a turn-restricted
// junction, two arrivals at the same node can have different legal
// continuations, so they must stay distinct path states.

package router

import (
	"github.com/routino/groute/cost"
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/pq"
	"github.com/routino/groute/resultstore"
)

// direction distinguishes a forward search (walking out-segments, scoring
// cost-from-origin) from a backward search (walking in-segments, scoring
// cost-to-destination).
type direction int

const (
	forward direction = iota
	backward
)

// runner holds the mutable state of one best-first expansion. It is never
// shared between routing calls; each call owns its store and queue
// exclusively.
type runner struct {
	view    *graph.View
	opts    RouterOptions
	model   *cost.Model
	store   *resultstore.Store
	queue   *pq.Queue
	dir     direction
	goalLat float64
	goalLon float64

	// superOnly restricts relaxNeighbors to edges between super-graph nodes,
	// for FindMiddleRoute's long-distance overlay search.
	superOnly bool

	// pruneAtSuper stops a normal-graph expansion from continuing past a
	// super-node: the popped Result is kept as a stitching candidate for
	// the super-graph phase, but its neighbors are not relaxed. The seed
	// node itself is exempt (a search may legitimately start on one).
	pruneAtSuper bool

	// fakes resolves NodeFakeBase/SegmentFakeBase indices for a single
	// routing call's waypoints that land mid-segment. Nil when the caller
	// has no synthesized waypoints; always nil for FindMiddleRoute, which
	// runs over super-nodes only.
	fakes *fakenode.Set
}

func newRunner(v *graph.View, opts RouterOptions, store *resultstore.Store, dir direction, goalLat, goalLon float64) *runner {
	return &runner{
		view:    v,
		opts:    opts,
		model:   opts.CostModel(),
		store:   store,
		queue:   pq.New(),
		dir:     dir,
		goalLat: goalLat,
		goalLon: goalLon,
	}
}

// newRunnerWithFakes is newRunner plus a fakenode.Set, for a point-to-point
// search whose start or finish (or both) is a waypoint synthesized mid-
// segment rather than a real node.
func newRunnerWithFakes(v *graph.View, opts RouterOptions, store *resultstore.Store, dir direction, goalLat, goalLon float64, fakes *fakenode.Set) *runner {
	r := newRunner(v, opts, store, dir, goalLat, goalLon)
	r.fakes = fakes
	return r
}

// heuristic returns the admissible lower bound from node to the runner's
// goal coordinates. Goal (0, 0) is the "no goal" sentinel: the expansion
// degenerates to plain Dijkstra, which the fan-out kernels
// (FindStartRoutes/FindFinishRoutes) rely on.
func (r *runner) heuristic(node graph.NodeIndex) cost.Score {
	if r.goalLat == 0 && r.goalLon == 0 {
		return 0
	}
	lat, lon, ok := r.latLon(node)
	if !ok {
		return 0
	}
	return r.model.Heuristic(lat, lon, r.goalLat, r.goalLon)
}

// latLon resolves a node's coordinates whether it is real or, when r.fakes
// is set, synthesized for this call.
func (r *runner) latLon(node graph.NodeIndex) (lat, lon float64, ok bool) {
	return resolveLatLon(r.view, r.fakes, node)
}

// neighbors resolves a node's incident segments whether it is real or fake.
// A real node that happens to be one of the original endpoints of a split
// segment also gets that split's fake segments appended: the view's
// adjacency table was frozen at Compile time and has no way to know a
// split happened during this call.
func (r *runner) neighbors(node graph.NodeIndex) []graph.SegmentIndex {
	if graph.IsFakeNode(node) {
		if r.fakes == nil {
			return nil
		}
		return r.fakes.Neighbors(node)
	}

	segs := r.view.Neighbors(node)
	if r.fakes == nil {
		return segs
	}
	if extra := r.fakes.IncidentAt(node); len(extra) > 0 {
		combined := make([]graph.SegmentIndex, 0, len(segs)+len(extra))
		combined = append(combined, segs...)
		combined = append(combined, extra...)
		return combined
	}
	return segs
}

// segment resolves a segment index whether it is real or fake.
func (r *runner) segment(idx graph.SegmentIndex) (graph.Segment, bool) {
	if graph.IsFakeSegment(idx) {
		if r.fakes == nil {
			return graph.Segment{}, false
		}
		return r.fakes.Segment(idx)
	}
	s, err := r.view.Segment(idx)
	return s, err == nil
}

// seed installs the starting Result for node (score initialScore, reached
// via prevSegment, which may be graph.NoSegment) and pushes it onto the queue.
func (r *runner) seed(node graph.NodeIndex, prevSegment graph.SegmentIndex, initialScore cost.Score) *resultstore.Result {
	res := r.store.Insert(node, prevSegment)
	res.Score = initialScore
	res.Sortby = initialScore + r.heuristic(node)
	r.queue.InsertOrDecrease(res)
	return res
}

// stopFunc decides whether the expansion should terminate having just
// popped result. It returns true to stop (result is the answer / a seed for
// the next phase), in which case expand's caller inspects the store itself.
type stopFunc func(result *resultstore.Result) bool

// expand runs the best-first loop: pop the minimum-Sortby Result, test
// stop, and otherwise relax every admissible neighbor edge. It returns the
// Result that satisfied stop, or nil if the queue emptied first (no route).
func (r *runner) expand(stop stopFunc) *resultstore.Result {
	for {
		cur := r.queue.PopMin()
		if cur == nil {
			return nil
		}

		if stop(cur) {
			return cur
		}

		if r.pruneAtSuper && cur.Prev != nil && !graph.IsFakeNode(cur.Node) {
			if n, err := r.view.Node(cur.Node); err == nil && n.IsSuper() {
				continue
			}
		}

		r.relaxNeighbors(cur)
	}
}

// relaxNeighbors iterates every segment incident to cur.Node and attempts
// to relax along each admissible one, honouring oneway, highway/profile
// limits, U-turn policy and turn restrictions.
func (r *runner) relaxNeighbors(cur *resultstore.Result) {
	for _, segIdx := range r.neighbors(cur.Node) {
		seg, ok := r.segment(segIdx)
		if !ok {
			continue
		}

		other := seg.Other(cur.Node)

		if r.superOnly {
			if !seg.IsSuper() {
				continue
			}
			otherNode, err := r.view.Node(other)
			if err != nil || !otherNode.IsSuper() {
				continue
			}
		} else if !graph.IsFakeSegment(segIdx) && !seg.IsNormal() {
			// A pure overlay shortcut is invisible to a normal-graph search.
			continue
		}

		if !r.directionAllowed(seg, cur.Node) {
			continue
		}

		if !r.opts.Profile.AllowUTurn && segIdx == cur.Segment {
			continue
		}

		way, err := r.view.Way(seg.Way)
		if err != nil {
			continue
		}
		if !r.opts.Profile.AllowsWay(way) {
			continue
		}

		if r.opts.Profile.ObeyTurnRestrictions && !r.turnAllowed(cur.Node, cur.Segment, segIdx) {
			continue
		}

		edgeCost := r.model.EdgeCost(seg, way)
		if edgeCost == cost.Inf {
			continue
		}

		newScore := cur.Score + edgeCost

		existing := r.store.Find(other, segIdx)
		if existing == nil {
			existing = r.store.Insert(other, segIdx)
			existing.Score = cost.Inf
		}
		if newScore >= existing.Score {
			continue
		}

		existing.Score = newScore
		existing.Sortby = newScore + r.heuristic(other)
		existing.Prev = cur
		r.queue.InsertOrDecrease(existing)
	}
}

// directionAllowed reports whether seg may be traversed starting at node,
// honouring the profile's oneway obedience and the runner's search
// direction: a forward search walks the real traversal direction; a
// backward search (cost-to-finish) walks it in reverse, so the oneway check
// is evaluated from the far end.
func (r *runner) directionAllowed(seg graph.Segment, node graph.NodeIndex) bool {
	if !r.opts.Profile.ObeyOneway {
		return true
	}
	if r.dir == forward {
		return seg.AllowsDirection(node)
	}
	return seg.AllowsDirection(seg.Other(node))
}

// turnAllowed evaluates the Relations at atNode for the (fromSeg, toSeg)
// transition in real-world forward travel order. For a forward search that
// order is (cur.Segment, candidate); for a backward search it is
// (candidate, cur.Segment), since the backward walk discovers edges in the
// opposite order to how they would be driven.
func (r *runner) turnAllowed(atNode graph.NodeIndex, curSegment, candidate graph.SegmentIndex) bool {
	if curSegment == graph.NoSegment {
		return true // no prior segment: nothing to restrict yet
	}

	fromSeg, toSeg := curSegment, candidate
	if r.dir == backward {
		fromSeg, toSeg = candidate, curSegment
	}

	rels := r.view.RelationsAt(atNode)
	if len(rels) == 0 {
		return true
	}

	sawOnly := false
	for _, rel := range rels {
		if rel.From != fromSeg {
			continue
		}
		switch rel.Kind {
		case graph.RelationNo:
			if rel.To == toSeg {
				return false
			}
		case graph.RelationOnly:
			sawOnly = true
			if rel.To == toSeg {
				return true
			}
		}
	}

	// An "only X" relation on fromSeg forbids every continuation except X.
	return !sawOnly
}
