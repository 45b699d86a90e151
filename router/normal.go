// File: normal.go
// Role: FindNormalRoute, the direct point-to-point forward A* search used
// when start and finish are close enough that the super-graph shortcut
// (FindMiddleRoute) isn't needed.

package router

import (
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// FindNormalRoute searches forward from start directly to finish, using the
// great-circle heuristic towards finish's coordinates to focus the search,
// and returns the finish Result (whose Prev chain, walked backwards, is the
// route). Returns ErrNoRoute if the open set empties before finish is
// reached.
func FindNormalRoute(v *graph.View, opts RouterOptions, start, finish graph.NodeIndex) (*resultstore.Result, error) {
	return findNormalRoute(v, opts, nil, start, finish)
}

// FindNormalRouteFakes is FindNormalRoute for a call where start and/or
// finish is a node synthesized by fakes for a waypoint that landed in the
// interior of a segment.
func FindNormalRouteFakes(v *graph.View, opts RouterOptions, fakes *fakenode.Set, start, finish graph.NodeIndex) (*resultstore.Result, error) {
	return findNormalRoute(v, opts, fakes, start, finish)
}

func findNormalRoute(v *graph.View, opts RouterOptions, fakes *fakenode.Set, start, finish graph.NodeIndex) (*resultstore.Result, error) {
	if _, _, ok := resolveLatLon(v, fakes, start); !ok {
		return nil, ErrStartNotFound
	}

	finishLat, finishLon, ok := resolveLatLon(v, fakes, finish)
	if !ok {
		return nil, ErrFinishNotFound
	}
	opts.kernelUsed("normal")

	store := resultstore.New(1024)
	store.StartNode = start
	store.FinishNode = finish

	r := newRunnerWithFakes(v, opts, store, forward, finishLat, finishLon, fakes)
	r.seed(start, graph.NoSegment, 0)

	result := r.expand(func(res *resultstore.Result) bool {
		return res.Node == finish
	})
	if result == nil {
		return nil, ErrNoRoute
	}
	store.LastSegment = result.Segment

	return result, nil
}

// resolveLatLon looks up a node's coordinates whether it is real or,
// when fakes is non-nil, synthesized for this call.
func resolveLatLon(v *graph.View, fakes *fakenode.Set, node graph.NodeIndex) (lat, lon float64, ok bool) {
	if graph.IsFakeNode(node) {
		if fakes == nil {
			return 0, 0, false
		}
		return fakes.LatLon(node)
	}
	lat, lon, err := v.LatLon(node)
	return lat, lon, err == nil
}
