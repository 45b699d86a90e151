// File: builder.go
// Role: a mutable, concurrency-safe scratch graph used to assemble a road
// network before it is frozen into an immutable graph.View. graph.View's
// flattened, dense-integer-index layout is the wrong shape to grow
// incrementally: a Builder lets tests (and, eventually, a real database
// builder) add nodes/ways/segments/relations one at a time, by label, and
// then Compile once at the end.

package graphbuild

import (
	"errors"
	"sync"

	"github.com/routino/groute/graph"
)

// Sentinel errors for graphbuild operations.
var (
	// ErrDuplicateLabel indicates AddNode was called twice with the same label.
	ErrDuplicateLabel = errors.New("graphbuild: duplicate node label")
	// ErrUnknownLabel indicates a segment or relation referenced a label that
	// was never registered with AddNode.
	ErrUnknownLabel = errors.New("graphbuild: unknown node label")
	// ErrUnknownWay indicates AddSegment referenced a way index that was
	// never registered with AddWay.
	ErrUnknownWay = errors.New("graphbuild: unknown way index")
)

// Builder accumulates nodes, ways, segments and relations under separate
// locks: muNodes guards nodes/labels, muWay guards ways, muSeg guards
// segments/relations.
type Builder struct {
	muNodes sync.RWMutex
	labels  map[string]graph.NodeIndex
	nodes   []graph.Node

	muWay sync.RWMutex
	ways  []graph.Way

	muSeg     sync.RWMutex
	segments  []graph.Segment
	relations []graph.Relation
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{labels: make(map[string]graph.NodeIndex)}
}

// AddNode registers a new node under label with the given coordinates (in
// radians) and flags, returning its assigned NodeIndex.
func (b *Builder) AddNode(label string, lat, lon float64, flags graph.NodeFlags) (graph.NodeIndex, error) {
	b.muNodes.Lock()
	defer b.muNodes.Unlock()

	if _, exists := b.labels[label]; exists {
		return 0, ErrDuplicateLabel
	}

	idx := graph.NodeIndex(len(b.nodes))
	b.nodes = append(b.nodes, graph.Node{Index: idx, Lat: lat, Lon: lon, Flags: flags})
	b.labels[label] = idx

	return idx, nil
}

// NodeIndex resolves a previously-registered label to its NodeIndex.
func (b *Builder) NodeIndex(label string) (graph.NodeIndex, error) {
	b.muNodes.RLock()
	defer b.muNodes.RUnlock()

	idx, ok := b.labels[label]
	if !ok {
		return 0, ErrUnknownLabel
	}
	return idx, nil
}

// AddWay registers a way and returns its assigned WayIndex.
func (b *Builder) AddWay(w graph.Way) graph.WayIndex {
	b.muWay.Lock()
	defer b.muWay.Unlock()

	idx := graph.WayIndex(len(b.ways))
	w.Index = idx
	b.ways = append(b.ways, w)

	return idx
}

// AddSegment registers a directed-or-undirected edge between two node
// labels on the given way, returning its assigned SegmentIndex.
func (b *Builder) AddSegment(fromLabel, toLabel string, way graph.WayIndex, distance uint32, flags graph.SegmentFlags) (graph.SegmentIndex, error) {
	from, err := b.NodeIndex(fromLabel)
	if err != nil {
		return 0, err
	}
	to, err := b.NodeIndex(toLabel)
	if err != nil {
		return 0, err
	}

	b.muWay.RLock()
	wayOK := int(way) < len(b.ways)
	b.muWay.RUnlock()
	if !wayOK {
		return 0, ErrUnknownWay
	}

	b.muSeg.Lock()
	defer b.muSeg.Unlock()

	idx := graph.SegmentIndex(len(b.segments))
	b.segments = append(b.segments, graph.Segment{
		Index: idx, Node1: from, Node2: to, Way: way, Distance: distance, Flags: flags,
	})

	return idx, nil
}

// AddRelation registers a turn restriction between two already-added
// segments via a node label.
func (b *Builder) AddRelation(fromSeg, toSeg graph.SegmentIndex, viaLabel string, kind graph.RelationKind) error {
	via, err := b.NodeIndex(viaLabel)
	if err != nil {
		return err
	}

	b.muSeg.Lock()
	defer b.muSeg.Unlock()

	b.relations = append(b.relations, graph.Relation{From: fromSeg, Via: via, To: toSeg, Kind: kind})

	return nil
}

// Compile freezes the accumulated nodes/ways/segments/relations into an
// immutable graph.View.
func (b *Builder) Compile() (*graph.View, error) {
	b.muNodes.RLock()
	nodes := append([]graph.Node(nil), b.nodes...)
	b.muNodes.RUnlock()

	b.muWay.RLock()
	ways := append([]graph.Way(nil), b.ways...)
	b.muWay.RUnlock()

	b.muSeg.RLock()
	segments := append([]graph.Segment(nil), b.segments...)
	relations := append([]graph.Relation(nil), b.relations...)
	b.muSeg.RUnlock()

	return graph.Compile(nodes, segments, ways, relations)
}
