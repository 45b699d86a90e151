// File: combine.go
// Role: CombineRoutes — stitches the three independently-searched chains
// (begin: start to the entry super-node; middle: super-node to super-node;
// end: exit super-node to finish) into one Next-linked route from start to
// finish, without duplicating the super-node at either splice point.

package router

import (
	"github.com/routino/groute/graph"
	"github.com/routino/groute/resultstore"
)

// CombineRoutes splices begin (the Result for the entry super-node found in
// a forward store seeded at the overall start), middle (the Result for the
// exit super-node returned by FindMiddleRoute) and end (the Result for the
// exit super-node found in a backward store seeded at the overall finish)
// into a single forward chain and returns its head (the overall start).
// Every pure overlay shortcut the middle chain traversed is expanded back
// into the real segments it summarises, so the returned chain lists every
// road node of the route.
//
// begin.Node, middle's seed node and end's seed node chains must all meet
// at the same pair of super-nodes: begin.Node must equal middle's origin,
// and end.Node must equal middle's terminus (middleTail.Node). CombineRoutes
// checks both and returns ErrDisconnectedChain when either does not hold.
func CombineRoutes(v *graph.View, opts RouterOptions, begin, middleTail, end *resultstore.Result) (*resultstore.Result, error) {
	if begin == nil || middleTail == nil || end == nil {
		return nil, ErrDisconnectedChain
	}
	if end.Node != middleTail.Node {
		return nil, ErrDisconnectedChain
	}

	beginHead := FixForwardRoute(begin)
	middleHead := FixForwardRoute(middleTail)

	if begin.Node != middleHead.Node {
		return nil, ErrDisconnectedChain
	}

	afterMiddle := orientEndChain(end)
	middleTail.Next = afterMiddle

	// middleHead.Next now correctly reflects the zero-hop case (start super
	// node == finish super node), where middleHead == middleTail and the
	// assignment above already set its Next to afterMiddle.
	begin.Next = middleHead.Next

	if err := expandSuperSegments(v, opts, beginHead); err != nil {
		return nil, err
	}

	return beginHead, nil
}

// expandSuperSegments walks forward from head and replaces every hop taken
// over a pure overlay shortcut with the underlying shortest path between
// its endpoints, re-solved on demand against the normal graph. A shortcut
// that is itself a single real segment (SegNormal) is left alone.
func expandSuperSegments(v *graph.View, opts RouterOptions, head *resultstore.Result) error {
	for cur := head; cur != nil && cur.Next != nil; cur = cur.Next {
		next := cur.Next
		if graph.IsFakeSegment(next.Segment) || next.Segment == graph.NoSegment {
			continue
		}
		seg, err := v.Segment(next.Segment)
		if err != nil || seg.IsNormal() {
			continue
		}

		sub, err := FindNormalRoute(v, opts, cur.Node, next.Node)
		if err != nil {
			return err
		}
		subHead := FixForwardRoute(sub)

		// Splice the re-solved chain in place of the single shortcut hop;
		// sub replaces next entirely (same node, real arrival segment).
		cur.Next = subHead.Next
		sub.Next = next.Next
	}
	return nil
}

// orientEndChain re-orients a backward-search chain (Results discovered by
// FindFinishRoutes, whose Segment field names the segment each Result
// departs on towards the search's seed, not the segment it arrived by) into
// the same "Segment = arrival edge" convention every forward chain uses.
// It returns the node immediately after end towards the seed (or nil if end
// is itself the seed, i.e. the exit super-node is the finish node).
//
// The shift: each kept node's Segment becomes its predecessor's original
// (pre-shift) Segment, since that original value names the very edge that
// now leads into the kept node from the forward direction.
func orientEndChain(end *resultstore.Result) *resultstore.Result {
	cur := end
	carry := cur.Segment

	for cur.Prev != nil {
		next := cur.Prev
		carryNext := next.Segment
		next.Segment = carry
		cur.Next = next
		carry = carryNext
		cur = next
	}
	cur.Next = nil

	return end.Next
}
