// File: types.go
// Role: the road-network value types (Node, Segment, Way, Relation), their
// flag bitmasks, and the index/sentinel conventions every other package
// keys on.

package graph

import "errors"

// Sentinel errors for graph loading and lookups.
var (
	// ErrUnsupportedVersion indicates the on-disk header declares a format
	// version this build does not understand. There is no recovery: the
	// caller must rebuild the graph files with a compatible version.
	ErrUnsupportedVersion = errors.New("graph: unsupported file version")

	// ErrBadHeader indicates a header whose magic number does not match.
	ErrBadHeader = errors.New("graph: bad file header")

	// ErrNodeNotFound indicates a NodeIndex outside the loaded table.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrSegmentNotFound indicates a SegmentIndex outside the loaded table.
	ErrSegmentNotFound = errors.New("graph: segment not found")

	// ErrWayNotFound indicates a WayIndex outside the loaded table.
	ErrWayNotFound = errors.New("graph: way not found")
)

// NodeIndex identifies a Node within a View. Real nodes occupy
// [0, NodeFakeBase); indices at or above NodeFakeBase are synthesized by the
// fakenode package for the lifetime of a single routing call.
type NodeIndex uint32

// SegmentIndex identifies a Segment within a View (or, at or above
// SegmentFakeBase, a synthesized fake segment).
type SegmentIndex uint32

// WayIndex identifies a Way within a View.
type WayIndex uint32

// NodeFakeBase is the smallest index used for a synthetic node. IsFakeNode
// is a single comparison against this constant.
const NodeFakeBase NodeIndex = 1 << 30

// SegmentFakeBase is the smallest index used for a synthetic segment.
const SegmentFakeBase SegmentIndex = 1 << 30

// NoNode, NoSegment and NoWay are sentinel "absent" values: the all-ones
// index no real table entry can occupy.
const (
	NoNode    NodeIndex    = 1<<32 - 1
	NoSegment SegmentIndex = 1<<32 - 1
	NoWay     WayIndex     = 1<<32 - 1
)

// IsFakeNode reports whether idx was synthesized by the fakenode package.
func IsFakeNode(idx NodeIndex) bool { return idx >= NodeFakeBase }

// IsFakeSegment reports whether idx was synthesized by the fakenode package.
func IsFakeSegment(idx SegmentIndex) bool { return idx >= SegmentFakeBase }

// NodeFlags packs boolean node properties into a single byte.
type NodeFlags uint8

const (
	// NodeSuper marks a node as belonging to the pre-computed super-graph.
	NodeSuper NodeFlags = 1 << iota
	// NodeMiniRoundabout marks a node as a mini-roundabout (not a separate way).
	NodeMiniRoundabout
	// NodeTurnRestricted marks a node that has at least one Relation with
	// Via == this node, so the router must consult Relations when passing
	// through it.
	NodeTurnRestricted
)

// Node is a single, immutable vertex of the road graph.
type Node struct {
	Index NodeIndex
	Lat   float64 // radians
	Lon   float64 // radians
	Flags NodeFlags

	// SegOffset/SegCount delimit this node's slice of the View's adjacency
	// table: View.adjacency[SegOffset : SegOffset+SegCount].
	SegOffset uint32
	SegCount  uint32
}

// IsSuper reports whether n belongs to the super-graph overlay.
func (n Node) IsSuper() bool { return n.Flags&NodeSuper != 0 }

// IsMiniRoundabout reports whether n is a mini-roundabout.
func (n Node) IsMiniRoundabout() bool { return n.Flags&NodeMiniRoundabout != 0 }

// HasTurnRestrictions reports whether any Relation has Via == n.Index.
func (n Node) HasTurnRestrictions() bool { return n.Flags&NodeTurnRestricted != 0 }

// SegmentFlags packs boolean segment properties into a single byte.
type SegmentFlags uint8

const (
	// SegOnewayForward means the segment may only be traversed Node1->Node2.
	SegOnewayForward SegmentFlags = 1 << iota
	// SegOnewayBackward means the segment may only be traversed Node2->Node1.
	SegOnewayBackward
	// SegSuper marks a segment as a pre-computed super-graph shortcut whose
	// Distance already encodes the underlying shortest path's weight.
	SegSuper
	// SegArea marks a segment that bounds an area (not a through route).
	SegArea
	// SegNormal, on a SegSuper segment, marks a shortcut whose underlying
	// path is that single real segment, so it belongs to the normal graph
	// too. Segments without SegSuper are normal implicitly.
	SegNormal
)

// Segment is a directed or undirected edge between Node1 and Node2.
//
// Distance is the packed physical length in metres; for a super-segment it
// is the pre-computed weight of the shortest path it shortcuts.
type Segment struct {
	Index        SegmentIndex
	Node1, Node2 NodeIndex
	Way          WayIndex
	Distance     uint32
	Flags        SegmentFlags
}

// IsSuper reports whether s is a super-graph shortcut edge.
func (s Segment) IsSuper() bool { return s.Flags&SegSuper != 0 }

// IsNormal reports whether s belongs to the underlying road graph: either
// it is not a shortcut at all, or it is a shortcut over a single real
// segment (SegNormal). A pure shortcut must not be walked by a
// normal-graph search; its intermediate nodes would silently vanish.
func (s Segment) IsNormal() bool { return !s.IsSuper() || s.Flags&SegNormal != 0 }

// IsOneway reports whether s has any direction restriction.
func (s Segment) IsOneway() bool {
	return s.Flags&(SegOnewayForward|SegOnewayBackward) != 0
}

// Other returns the node at the far end of s from node, which must be one
// of s.Node1 or s.Node2.
func (s Segment) Other(node NodeIndex) NodeIndex {
	if s.Node1 == node {
		return s.Node2
	}
	return s.Node1
}

// AllowsDirection reports whether s may be traversed from "from" towards the
// other node given its oneway flags.
func (s Segment) AllowsDirection(from NodeIndex) bool {
	switch {
	case s.Flags&SegOnewayForward != 0:
		return from == s.Node1
	case s.Flags&SegOnewayBackward != 0:
		return from == s.Node2
	default:
		return true
	}
}

// HighwayClass is one of the thirteen highway classes, ordered from most to
// least major; used both for profile speed lookup and the annotator's
// importance table.
type HighwayClass uint8

const (
	HighwayMotorway HighwayClass = iota + 1
	HighwayTrunk
	HighwayPrimary
	HighwaySecondary
	HighwayTertiary
	HighwayUnclassified
	HighwayResidential
	HighwayService
	HighwayTrack
	HighwayCycleway
	HighwayPath
	HighwaySteps
	HighwayFerry
)

// HighwayClassCount is the number of distinct HighwayClass values.
const HighwayClassCount = int(HighwayFerry)

// Limit expresses a physical restriction (weight/height/width/length) as
// either "ignore" (Unlimited) or a numeric cap.
type Limit struct {
	Unlimited bool
	Value     float64 // SI unit appropriate to the dimension (kg, m)
}

// Way holds the attributes shared by every segment that belongs to it.
type Way struct {
	Index      WayIndex
	Highway    HighwayClass
	NameIndex  uint32
	Allow      TransportMask
	Oneway     bool
	Roundabout bool
	Weight     Limit
	Height     Limit
	Width      Limit
	Length     Limit
}

// TransportMask is a bitmask of transport modes a Way permits.
type TransportMask uint16

const (
	TransportFoot TransportMask = 1 << iota
	TransportBicycle
	TransportHorse
	TransportMotorcycle
	TransportMotorcar
	TransportGoods
	TransportHGV
	TransportPSV
)

// Allows reports whether t is one of the modes permitted by mask.
func (mask TransportMask) Allows(t TransportMask) bool { return mask&t != 0 }

// RelationKind distinguishes a mandatory-continuation turn restriction from
// a prohibited one.
type RelationKind uint8

const (
	// RelationOnly means the ONLY legal continuation from From at Via is To;
	// every other segment leaving Via from From is implicitly forbidden.
	RelationOnly RelationKind = iota
	// RelationNo means the single continuation From->To at Via is forbidden;
	// every other continuation remains legal.
	RelationNo
)

// Relation is a turn restriction: travelling along From and arriving at
// Via, the Kind determines whether continuing onto To is mandatory (Only)
// or forbidden (No).
type Relation struct {
	From SegmentIndex
	Via  NodeIndex
	To   SegmentIndex
	Kind RelationKind
}
