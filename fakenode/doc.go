// Package fakenode synthesizes the ephemeral nodes/segments a waypoint that
// lands mid-segment needs. A Set's lifetime is exactly one routing call;
// nothing it allocates outlives the call that created it. Synthesized node
// indices start at graph.NodeFakeBase, so telling real from fake is a
// single comparison. Set.ResolveWaypoint is the front door: raw coordinate
// in, routable node index (real or freshly synthesized) out.
package fakenode
