// File: finish.go
// Role: FindFinishRoutes, the backward best-first expansion from a single
// destination node, walking segments in reverse so its Results record the
// cheapest way to *reach* finish from each node.

package router

import (
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// FindFinishRoutes runs a backward expansion from finish. A Result's
// Segment field still names the segment the search arrived via, but because
// the direction is reversed that segment is the one leaving the Result's
// Node towards finish, not the one a forward traveller used to arrive
// there; CombineRoutes re-orients this when stitching chains together.
func FindFinishRoutes(v *graph.View, opts RouterOptions, finish graph.NodeIndex, goalLat, goalLon float64) (*resultstore.Store, error) {
	return findFinishRoutes(v, opts, nil, finish, goalLat, goalLon)
}

// findFinishRoutes is FindFinishRoutes plus a fakenode.Set, so Solve can
// fan out backwards from a waypoint synthesized mid-segment.
func findFinishRoutes(v *graph.View, opts RouterOptions, fakes *fakenode.Set, finish graph.NodeIndex, goalLat, goalLon float64) (*resultstore.Store, error) {
	if _, _, ok := resolveLatLon(v, fakes, finish); !ok {
		return nil, ErrFinishNotFound
	}
	opts.kernelUsed("finish")

	store := resultstore.New(1024)
	store.FinishNode = finish

	r := newRunnerWithFakes(v, opts, store, backward, goalLat, goalLon, fakes)
	r.pruneAtSuper = true
	r.seed(finish, graph.NoSegment, 0)

	r.expand(func(*resultstore.Result) bool { return false })

	return store, nil
}
