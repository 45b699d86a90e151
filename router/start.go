// File: start.go
// Role: FindStartRoutes, the forward best-first expansion from a single
// origin node that records the cheapest way to reach every node in the
// surrounding normal graph, stopping short at super-nodes so its Results
// double as entry candidates for FindMiddleRoute.

package router

import (
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// FindStartRoutes runs a forward Dijkstra/A* expansion from start. The
// expansion never continues past a super-node, so the populated Store it
// returns holds the cheapest route to every nearby node of the normal
// graph plus one Result per reachable super-node — the entry candidates
// FindMiddleRoute seeds from — and, for a short route, the finish itself.
// When goalLat/goalLon are both zero the expansion degenerates to plain
// Dijkstra (no heuristic bias); callers that know the ultimate destination
// pass it to focus the search.
func FindStartRoutes(v *graph.View, opts RouterOptions, start graph.NodeIndex, goalLat, goalLon float64) (*resultstore.Store, error) {
	return findStartRoutes(v, opts, nil, start, goalLat, goalLon)
}

// findStartRoutes is FindStartRoutes plus a fakenode.Set, so Solve can fan
// out from a waypoint synthesized mid-segment.
func findStartRoutes(v *graph.View, opts RouterOptions, fakes *fakenode.Set, start graph.NodeIndex, goalLat, goalLon float64) (*resultstore.Store, error) {
	if _, _, ok := resolveLatLon(v, fakes, start); !ok {
		return nil, ErrStartNotFound
	}
	opts.kernelUsed("start")

	store := resultstore.New(1024)
	store.StartNode = start

	r := newRunnerWithFakes(v, opts, store, forward, goalLat, goalLon, fakes)
	r.pruneAtSuper = true
	r.seed(start, graph.NoSegment, 0)

	// Drain the whole queue: FindStartRoutes has no single target, so it
	// never satisfies a stop condition early.
	r.expand(func(*resultstore.Result) bool { return false })

	return store, nil
}
