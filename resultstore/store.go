// File: store.go
// Role: the arena-backed, bin-indexed open/closed set the search kernels
// use to hold one path-state Result per (node, incoming-segment) pair.
// A chunked arena keeps pointers handed out by Insert valid forever, even
// as the store grows; a hash-bin index keyed on the low bits of the node
// index answers Find with a short linear scan, doubling the bin count when
// any bin gets too full.

package resultstore

import (
	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
)

// NotQueued is the sentinel Result.Queued value meaning "not currently in
// any priority queue". Heap positions are 1-based, so zero is never a
// valid slot.
const NotQueued = 0

// maxCollisions is the per-bin collision threshold before the store doubles
// its bin count and rehashes. Empirically chosen.
const maxCollisions = 32

// chunkSize is the fixed second dimension of the arena: once a chunk is
// allocated its backing array is never reallocated, so every *Result handed
// out by Insert stays valid for the Store's entire lifetime.
const chunkSize = 1024

// Result is one path-state: the unit of search. Store.Insert is the only
// way to create one.
type Result struct {
	Node    graph.NodeIndex
	Segment graph.SegmentIndex

	Prev *Result
	Next *Result

	Score  cost.Score // exact accumulated cost from the origin
	Sortby cost.Score // Score plus an admissible heuristic to the goal

	Queued int // 1-based heap position, or NotQueued
}

// Store is an arena of Results plus a bin-indexed lookup keyed on
// (node, segment). At most one Result exists per (node, segment) pair.
type Store struct {
	bins   [][]*Result // bins[node&mask] -> results in that bin, insertion order
	mask   uint32
	nbins  uint32
	chunks [][]Result // chunked arena; outer slice grows, inner chunks never do
	number int

	// The endpoints of the search this store belongs to, recorded by the
	// kernel that owns it so chain-stitching code can recover them later.
	StartNode   graph.NodeIndex
	PrevSegment graph.SegmentIndex
	FinishNode  graph.NodeIndex
	LastSegment graph.SegmentIndex
}

// New returns an empty Store with an initial bin count rounded up to the
// next power of two (minimum 1), matching NewResultsList's bit-doubling
// initialisation.
func New(initialBins int) *Store {
	nbins := uint32(1)
	for int(nbins) < initialBins {
		nbins <<= 1
	}

	return &Store{
		bins:        make([][]*Result, nbins),
		mask:        nbins - 1,
		nbins:       nbins,
		PrevSegment: graph.NoSegment,
		FinishNode:  graph.NoNode,
		LastSegment: graph.NoSegment,
	}
}

// Len returns the total number of Results ever inserted.
func (s *Store) Len() int { return s.number }

// Insert creates a fresh Result for (node, segment) with Score=0, Sortby=0,
// Queued=NotQueued, Prev=Next=nil, and returns it. The caller must not
// Insert the same (node, segment) pair twice; use Find first if unsure
// (the router always Finds before Inserting, since it needs to know whether
// the pair is new).
func (s *Store) Insert(node graph.NodeIndex, segment graph.SegmentIndex) *Result {
	s.maybeRehash()

	bin := uint32(node) & s.mask

	if s.number%chunkSize == 0 {
		s.chunks = append(s.chunks, make([]Result, chunkSize))
	}
	chunk := s.chunks[len(s.chunks)-1]
	r := &chunk[s.number%chunkSize]

	*r = Result{Node: node, Segment: segment, Queued: NotQueued}

	s.bins[bin] = append(s.bins[bin], r)
	s.number++

	return r
}

// maybeRehash doubles the bin count and re-buckets every entry once any bin
// exceeds maxCollisions, matching InsertResult's growth branch.
func (s *Store) maybeRehash() {
	overflowing := false
	for _, b := range s.bins {
		if len(b) > maxCollisions {
			overflowing = true
			break
		}
	}
	if !overflowing {
		return
	}

	oldBins := s.bins
	s.nbins <<= 1
	s.mask = (s.mask << 1) | 1
	s.bins = make([][]*Result, s.nbins)

	for _, b := range oldBins {
		for _, r := range b {
			bin := uint32(r.Node) & s.mask
			s.bins[bin] = append(s.bins[bin], r)
		}
	}
}

// Find returns the Result for the exact (node, segment) pair, or nil.
func (s *Store) Find(node graph.NodeIndex, segment graph.SegmentIndex) *Result {
	bin := uint32(node) & s.mask
	for _, r := range s.bins[bin] {
		if r.Node == node && r.Segment == segment {
			return r
		}
	}
	return nil
}

// FindBest returns the Result for node with the lowest Score across all
// incoming segments that reach it, or nil if node has no Result at all.
func (s *Store) FindBest(node graph.NodeIndex) *Result {
	bin := uint32(node) & s.mask

	var best *Result
	bestScore := cost.Inf
	for _, r := range s.bins[bin] {
		if r.Node == node && r.Score < bestScore {
			best = r
			bestScore = r.Score
		}
	}
	return best
}

// Each calls fn once for every Result in the store, in arena (insertion)
// order, matching FirstResult/NextResult's walk.
func (s *Store) Each(fn func(*Result)) {
	remaining := s.number
	for _, chunk := range s.chunks {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		for i := 0; i < n; i++ {
			fn(&chunk[i])
		}
		remaining -= n
	}
}
