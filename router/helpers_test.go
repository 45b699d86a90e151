package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routino/groute/graph"
	"github.com/routino/groute/graphbuild"
	"github.com/routino/groute/profile"
	"github.com/routino/groute/resultstore"
)

func carProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.New(
		profile.WithTransport("motorcar"),
		profile.WithAllowedHighway(graph.HighwayResidential),
		profile.WithAllowedHighway(graph.HighwayPrimary),
		profile.WithAllowedHighway(graph.HighwayTrunk),
		profile.WithSpeed(graph.HighwayResidential, 30),
		profile.WithSpeed(graph.HighwayPrimary, 60),
		profile.WithSpeed(graph.HighwayTrunk, 90),
	)
	require.NoError(t, err)
	return p
}

func residentialWay(b *graphbuild.Builder) graph.WayIndex {
	return b.AddWay(graph.Way{
		Highway: graph.HighwayResidential,
		Allow:   graph.TransportMotorcar,
		Weight:  graph.Limit{Unlimited: true}, Height: graph.Limit{Unlimited: true},
		Width: graph.Limit{Unlimited: true}, Length: graph.Limit{Unlimited: true},
	})
}

// straightLine builds A-B-C on one residential way.
func straightLine(t *testing.T) *graph.View {
	t.Helper()
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("C", 0, 0.002, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	_, err = b.AddSegment("A", "B", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("B", "C", way, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)
	return v
}

// superGraphFixture builds start-super1-mid-super2-finish, where super1 and
// super2 are super-graph nodes linked both by the normal two-hop path via
// mid and by a pre-computed shortcut segment summarising it, for exercising
// FindMiddleRoute/CombineRoutes (including shortcut expansion).
type superFixture struct {
	view                              *graph.View
	start, super1, mid, super2, finish graph.NodeIndex
}

func superGraphFixture(t *testing.T) superFixture {
	t.Helper()
	b := graphbuild.New()

	start, err := b.AddNode("start", 0, 0, 0)
	require.NoError(t, err)
	super1, err := b.AddNode("super1", 0, 0.001, graph.NodeSuper)
	require.NoError(t, err)
	mid, err := b.AddNode("mid", 0, 0.002, 0)
	require.NoError(t, err)
	super2, err := b.AddNode("super2", 0, 0.003, graph.NodeSuper)
	require.NoError(t, err)
	finish, err := b.AddNode("finish", 0, 0.004, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	_, err = b.AddSegment("start", "super1", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("super1", "mid", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("mid", "super2", way, 100, 0)
	require.NoError(t, err)
	// The shortcut's distance is the weight of the path it summarises.
	_, err = b.AddSegment("super1", "super2", way, 200, graph.SegSuper)
	require.NoError(t, err)
	_, err = b.AddSegment("super2", "finish", way, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	return superFixture{view: v, start: start, super1: super1, mid: mid, super2: super2, finish: finish}
}

// walkChain walks head via Next and returns the visited node indices, in
// order.
func walkChain(head *resultstore.Result) []graph.NodeIndex {
	var out []graph.NodeIndex
	for cur := head; cur != nil; cur = cur.Next {
		out = append(out, cur.Node)
	}
	return out
}

// walkSegments walks head via Next and returns the visited segment indices
// (the arrival segment of every node after head).
func walkSegments(head *resultstore.Result) []graph.SegmentIndex {
	var out []graph.SegmentIndex
	for cur := head.Next; cur != nil; cur = cur.Next {
		out = append(out, cur.Segment)
	}
	return out
}
