// Package graph provides the read-only road-network accessor that the
// routing core searches over.
//
// What
//
//   - Node, Segment, Way and Relation are plain, immutable value types
//     addressed by dense integer indices (NodeIndex, SegmentIndex, WayIndex).
//   - View is the compiled, read-only graph: Neighbors(node) walks a
//     flattened adjacency table in O(1)+O(degree), RelationsAt(node) answers
//     turn-restriction lookups without a linear scan.
//   - Load reads the four binary files a database builder produces
//     (nodes/segments/ways/relations); Compile builds a View directly from
//     in-memory slices, which is how graphbuild.Builder and tests construct
//     fixtures without touching disk.
//
// Why
//
//   - The router holds direct references into the super-graph overlay as
//     well as the normal graph; both live in the same View so a single
//     Neighbors/Node/Segment call works regardless of which graph level is
//     being searched (nodes/segments carry their own NodeSuper/SegSuper
//     flags rather than living in a separate type).
//   - View never mutates after construction, so it needs no locking at all
//     and many independent routing calls can share one *View concurrently.
package graph
