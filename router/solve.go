// File: solve.go
// Role: Solve, the router's public entry point — resolves each waypoint
// pair with the two-level normal/super-graph search, falling back to the
// direct point-to-point search when the overlay cannot help, and splices
// the per-leg chains into one route.

package router

import (
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// Solve computes a route visiting waypoints in order and returns the head
// Result of the combined forward chain (walk it via Next to emit the
// route). fakes may be nil when every waypoint is a real node; a waypoint
// index at or above graph.NodeFakeBase must have been synthesized into
// fakes first (fakenode.Set.ResolveWaypoint goes from a raw coordinate to
// such an index). Returns ErrEmptyWaypoints if fewer than two waypoints
// are given.
//
// Each leg first attempts the two-level search: a bounded fan from each
// end (FindStartRoutes/FindFinishRoutes), the super-graph stitch between
// them (FindMiddleRoute), and CombineRoutes with shortcut expansion. A leg
// whose start fan reaches the finish before hitting the overlay is a short
// route and needs none of that; a graph with no super-nodes at all, or a
// leg the overlay cannot connect, falls back to FindNormalRoute.
func Solve(v *graph.View, opts RouterOptions, fakes *fakenode.Set, waypoints []graph.NodeIndex) (*resultstore.Result, error) {
	if len(waypoints) < 2 {
		return nil, ErrEmptyWaypoints
	}

	head, tail, err := legChain(v, opts, fakes, waypoints[0], waypoints[1])
	if err != nil {
		return nil, err
	}

	for i := 2; i < len(waypoints); i++ {
		legHead, legTail, err := legChain(v, opts, fakes, waypoints[i-1], waypoints[i])
		if err != nil {
			return nil, err
		}

		// legHead duplicates tail.Node (both are waypoints[i-1]); splice past
		// it exactly as CombineRoutes splices past a duplicated super-node.
		tail.Next = legHead.Next
		tail = legTail
	}

	return head, nil
}

// legChain solves one from→to leg and returns both ends of its
// forward-oriented chain.
func legChain(v *graph.View, opts RouterOptions, fakes *fakenode.Set, from, to graph.NodeIndex) (head, tail *resultstore.Result, err error) {
	if v.SuperNodeCount() > 0 {
		if head, tail, err := superLeg(v, opts, fakes, from, to); err == nil {
			return head, tail, nil
		}
		// The overlay could not serve this leg (no entry candidates, or the
		// fans never met); the direct search below is still exhaustive.
	}

	result, err := findNormalRoute(v, opts, fakes, from, to)
	if err != nil {
		return nil, nil, err
	}
	return FixForwardRoute(result), result, nil
}

// superLeg runs the two-level search for one leg: a super-node-bounded fan
// from each end, the overlay stitch between them, and shortcut expansion.
func superLeg(v *graph.View, opts RouterOptions, fakes *fakenode.Set, from, to graph.NodeIndex) (head, tail *resultstore.Result, err error) {
	fromLat, fromLon, ok := resolveLatLon(v, fakes, from)
	if !ok {
		return nil, nil, ErrStartNotFound
	}
	toLat, toLon, ok := resolveLatLon(v, fakes, to)
	if !ok {
		return nil, nil, ErrFinishNotFound
	}

	begin, err := findStartRoutes(v, opts, fakes, from, toLat, toLon)
	if err != nil {
		return nil, nil, err
	}

	// Short route: the start fan, bounded by super-nodes, already reached
	// the finish without needing the overlay at all.
	if direct := begin.FindBest(to); direct != nil {
		return FixForwardRoute(direct), direct, nil
	}

	end, err := findFinishRoutes(v, opts, fakes, to, fromLat, fromLon)
	if err != nil {
		return nil, nil, err
	}

	middleTail, err := FindMiddleRoute(v, opts, begin, end)
	if err != nil {
		return nil, nil, err
	}

	middleHead := middleTail
	for middleHead.Prev != nil {
		middleHead = middleHead.Prev
	}

	entry := begin.Find(middleHead.Node, middleHead.Segment)
	exit := end.FindBest(middleTail.Node)

	head, err = CombineRoutes(v, opts, entry, middleTail, exit)
	if err != nil {
		return nil, nil, err
	}
	return head, chainTail(head), nil
}

// chainTail walks Next to the last Result of a chain.
func chainTail(head *resultstore.Result) *resultstore.Result {
	cur := head
	for cur.Next != nil {
		cur = cur.Next
	}
	return cur
}
