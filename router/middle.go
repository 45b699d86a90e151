// File: middle.go
// Role: FindMiddleRoute, the long-distance search restricted to the
// pre-computed super-graph overlay (nodes/segments flagged NodeSuper/
// SegSuper by graph.Compile) — the reason long routes stay cheap: the
// overlay collapses a continent-sized search into tens of expansions.

package router

import (
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// FindMiddleRoute runs the super-graph phase of a two-level search. It is
// seeded with every super-node Result in begin — each inserted at its
// already-accumulated score, so the priority order reflects the true cost
// from the overall start — expands over super-segments only, and stops the
// first time it pops a super-node that the end store can already reach:
// the greedy meeting point of the start-side and finish-side fans. The
// returned Result is the exit super-node of the middle chain; walking its
// Prev pointers leads back to whichever entry seed won.
//
// begin and end must come from FindStartRoutes and FindFinishRoutes runs
// for the same leg (end.FinishNode, recorded by FindFinishRoutes, is what
// the heuristic aims at). Returns ErrNoRoute when begin holds no
// super-node Result at all, or when the two fans never meet.
func FindMiddleRoute(v *graph.View, opts RouterOptions, begin, end *resultstore.Store) (*resultstore.Result, error) {
	opts.kernelUsed("middle")

	var finishLat, finishLon float64
	if end.FinishNode != graph.NoNode {
		if lat, lon, err := v.LatLon(end.FinishNode); err == nil {
			finishLat, finishLon = lat, lon
		}
	}

	store := resultstore.New(256)
	store.StartNode = begin.StartNode
	store.FinishNode = end.FinishNode

	r := newRunner(v, opts, store, forward, finishLat, finishLon)
	r.superOnly = true

	seeded := 0
	begin.Each(func(res *resultstore.Result) {
		if graph.IsFakeNode(res.Node) {
			return
		}
		n, err := v.Node(res.Node)
		if err != nil || !n.IsSuper() {
			return
		}
		r.seed(res.Node, res.Segment, res.Score)
		seeded++
	})
	if seeded == 0 {
		return nil, ErrNoRoute
	}

	result := r.expand(func(res *resultstore.Result) bool {
		return end.FindBest(res.Node) != nil
	})
	if result == nil {
		return nil, ErrNoRoute
	}
	store.LastSegment = result.Segment

	return result, nil
}
