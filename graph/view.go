// File: view.go
// Role: the immutable, read-only accessor over a compiled road network.
// Determinism:
//   - Neighbors(node) returns segments in the fixed order they were compiled,
//     so repeated searches over the same View expand edges identically.
// Concurrency:
//   - View holds no mutex: every field is written once by Load/Compile and
//     never again, so concurrent readers need no synchronization at all.
// AI-HINT (file):
//   - View.Neighbors(n) returns nil for an out-of-range node; the record
//     accessors (Node/Segment/Way) return ErrXxxNotFound instead. Fake
//     nodes are not resolvable here; the router consults fakenode.Set for
//     those.

package graph

// View is a read-only accessor over nodes, segments, ways and turn
// relations. It is safe for unsynchronized concurrent use by any number of
// routing calls: nothing in a View is ever mutated after construction.
type View struct {
	nodes      []Node
	segments   []Segment
	ways       []Way
	relations  []Relation
	adjacency  []SegmentIndex // flattened per-node segment lists
	relByVia   map[NodeIndex][]int
	superCount int
}

// NodeCount returns the number of real nodes in the view.
func (v *View) NodeCount() int { return len(v.nodes) }

// SegmentCount returns the number of real segments in the view.
func (v *View) SegmentCount() int { return len(v.segments) }

// WayCount returns the number of ways in the view.
func (v *View) WayCount() int { return len(v.ways) }

// Node looks up a real node by index.
func (v *View) Node(idx NodeIndex) (Node, error) {
	if int(idx) < 0 || int(idx) >= len(v.nodes) {
		return Node{}, ErrNodeNotFound
	}
	return v.nodes[idx], nil
}

// Segment looks up a real segment by index.
func (v *View) Segment(idx SegmentIndex) (Segment, error) {
	if int(idx) < 0 || int(idx) >= len(v.segments) {
		return Segment{}, ErrSegmentNotFound
	}
	return v.segments[idx], nil
}

// Way looks up a way by index.
func (v *View) Way(idx WayIndex) (Way, error) {
	if int(idx) < 0 || int(idx) >= len(v.ways) {
		return Way{}, ErrWayNotFound
	}
	return v.ways[idx], nil
}

// LatLon returns the coordinates (in radians) of a real node.
func (v *View) LatLon(idx NodeIndex) (lat, lon float64, err error) {
	n, err := v.Node(idx)
	if err != nil {
		return 0, 0, err
	}
	return n.Lat, n.Lon, nil
}

// Neighbors returns the segments incident to a real node, in compiled
// order. The returned slice must not be modified or retained beyond the
// calling routing call's lifetime.
func (v *View) Neighbors(node NodeIndex) []SegmentIndex {
	if int(node) < 0 || int(node) >= len(v.nodes) {
		return nil
	}
	n := v.nodes[node]
	return v.adjacency[n.SegOffset : n.SegOffset+n.SegCount]
}

// RelationsAt returns the turn relations whose Via node is the given node.
func (v *View) RelationsAt(node NodeIndex) []Relation {
	idxs, ok := v.relByVia[node]
	if !ok {
		return nil
	}
	out := make([]Relation, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, v.relations[i])
	}
	return out
}

// SuperNodeCount returns how many nodes are flagged as super-graph members.
func (v *View) SuperNodeCount() int { return v.superCount }
