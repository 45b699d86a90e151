// Package profile defines the transport-specific rules (allowed highway
// classes, speeds, oneway/turn-restriction obedience, physical limits) that
// the cost model and router consult on every edge relaxation.
//
// A Profile is immutable once constructed — by functional options (New) or
// by parsing a YAML file (LoadYAML) — and is passed by reference through
// every routing call; nothing in the router or cost package ever mutates
// it.
package profile
