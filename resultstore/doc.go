// Package resultstore holds the open/closed set of a single routing call: an
// arena of Result records (one per (node, incoming-segment) pair) indexed by
// a growable hash-bin table. Keying on the incoming segment, not the node
// alone, is what keeps turn-restriction handling correct: two ways of
// arriving at the same junction can have different legal continuations.
package resultstore
