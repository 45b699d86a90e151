// Package cost scores individual segments and estimates the remaining
// distance to a goal, under either the "shortest" (Distance) or "quickest"
// (Duration) metric. Model holds no per-call state, so one Model can be
// shared across concurrent routing calls the way graph.View is.
package cost
