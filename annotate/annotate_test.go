package annotate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routino/groute/annotate"
	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/graphbuild"
	"github.com/routino/groute/profile"
	"github.com/routino/groute/resultstore"
	"github.com/routino/groute/router"
)

func carProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.New(
		profile.WithTransport("motorcar"),
		profile.WithAllowedHighway(graph.HighwayResidential),
		profile.WithAllowedHighway(graph.HighwayPrimary),
		profile.WithSpeed(graph.HighwayResidential, 30),
		profile.WithSpeed(graph.HighwayPrimary, 60),
	)
	require.NoError(t, err)
	return p
}

func wayOf(b *graphbuild.Builder, class graph.HighwayClass) graph.WayIndex {
	return b.AddWay(graph.Way{
		Highway: class, Allow: graph.TransportMotorcar,
		Weight: graph.Limit{Unlimited: true}, Height: graph.Limit{Unlimited: true},
		Width: graph.Limit{Unlimited: true}, Length: graph.Limit{Unlimited: true},
	})
}

func straightLine(t *testing.T) (*graph.View, *graphbuild.Builder) {
	t.Helper()
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("C", 0, 0.002, 0)
	require.NoError(t, err)

	way := wayOf(b, graph.HighwayResidential)
	_, err = b.AddSegment("A", "B", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("B", "C", way, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)
	return v, b
}

// TestAnnotate_StraightLineEndpointsAreWaypoints covers the degree-2
// through-node case (B) bracketed by waypoint endpoints.
func TestAnnotate_StraightLineEndpointsAreWaypoints(t *testing.T) {
	v, b := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	cIdx, err := b.NodeIndex("C")
	require.NoError(t, err)

	result, err := router.FindNormalRoute(v, opts, aIdx, cIdx)
	require.NoError(t, err)
	head := router.FixForwardRoute(result)

	model := cost.New(cost.Distance, carProfile(t))
	events := annotate.Annotate(head, []graph.NodeIndex{aIdx, cIdx}, v, nil, model)

	require.Len(t, events, 3)
	assert.Equal(t, annotate.Waypoint, events[0].Importance)
	assert.Equal(t, annotate.Unimportant, events[1].Importance)
	assert.Equal(t, annotate.Waypoint, events[2].Importance)
	assert.Equal(t, cost.Score(200), events[2].CumDistance)
}

// TestAnnotate_TJunctionFlagsImportantBranch covers a residential route
// passing a junction where a primary road branches off unfollowed: that
// branch outranks residential in the importance table, so the junction is
// JunctImport even though geometry stays on the same highway class.
func TestAnnotate_TJunctionFlagsImportantBranch(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("C", 0, 0.002, 0)
	require.NoError(t, err)
	_, err = b.AddNode("D", 0, 0.001, 0)
	require.NoError(t, err)

	residential := wayOf(b, graph.HighwayResidential)
	primary := wayOf(b, graph.HighwayPrimary)

	_, err = b.AddSegment("A", "B", residential, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("B", "C", residential, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("B", "D", primary, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))
	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	cIdx, err := b.NodeIndex("C")
	require.NoError(t, err)

	result, err := router.FindNormalRoute(v, opts, aIdx, cIdx)
	require.NoError(t, err)
	head := router.FixForwardRoute(result)

	model := cost.New(cost.Distance, carProfile(t))
	events := annotate.Annotate(head, []graph.NodeIndex{aIdx, cIdx}, v, nil, model)

	require.Len(t, events, 3)
	assert.Equal(t, annotate.JunctImport, events[1].Importance)
}

// TestAnnotate_UTurnDetected covers doubling back across the same real
// segment: a search never produces this for an optimal route, so the chain
// is built by hand to exercise the classifier directly.
func TestAnnotate_UTurnDetected(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)

	way := wayOf(b, graph.HighwayResidential)
	segAB, err := b.AddSegment("A", "B", way, 1000, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	bIdx, err := b.NodeIndex("B")
	require.NoError(t, err)

	store := resultstore.New(8)
	r0 := store.Insert(aIdx, graph.NoSegment)
	r1 := store.Insert(bIdx, segAB)
	r2 := store.Insert(aIdx, segAB)
	r0.Next, r1.Prev = r1, r0
	r1.Next, r2.Prev = r2, r1

	model := cost.New(cost.Distance, carProfile(t))
	events := annotate.Annotate(r0, []graph.NodeIndex{aIdx}, v, nil, model)

	require.Len(t, events, 3)
	assert.Equal(t, annotate.Waypoint, events[0].Importance)
	assert.Equal(t, annotate.UTurn, events[1].Importance)
	assert.Equal(t, annotate.Waypoint, events[2].Importance)
}

// TestAnnotate_RoundaboutOrdinals drives a four-exit roundabout entered at
// the first radial and left at the third: one entry, one passed exit
// (ordinal 0, "first"), and the taken exit (ordinal 1, "second").
func TestAnnotate_RoundaboutOrdinals(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("E1", 0, -0.002, 0)
	require.NoError(t, err)
	_, err = b.AddNode("E2", 0.002, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("E3", 0, 0.002, 0)
	require.NoError(t, err)
	_, err = b.AddNode("E4", -0.002, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("R1", 0, -0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("R2", 0.001, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("R3", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("R4", -0.001, 0, 0)
	require.NoError(t, err)

	radial := wayOf(b, graph.HighwayResidential)
	ring := b.AddWay(graph.Way{
		Highway: graph.HighwayResidential, Allow: graph.TransportMotorcar, Roundabout: true,
		Weight: graph.Limit{Unlimited: true}, Height: graph.Limit{Unlimited: true},
		Width: graph.Limit{Unlimited: true}, Length: graph.Limit{Unlimited: true},
	})

	for _, pair := range [][2]string{{"E1", "R1"}, {"E2", "R2"}, {"E3", "R3"}, {"E4", "R4"}} {
		_, err = b.AddSegment(pair[0], pair[1], radial, 100, 0)
		require.NoError(t, err)
	}
	for _, pair := range [][2]string{{"R1", "R2"}, {"R2", "R3"}, {"R3", "R4"}, {"R4", "R1"}} {
		_, err = b.AddSegment(pair[0], pair[1], ring, 80, graph.SegOnewayForward)
		require.NoError(t, err)
	}

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))
	e1, err := b.NodeIndex("E1")
	require.NoError(t, err)
	e3, err := b.NodeIndex("E3")
	require.NoError(t, err)

	result, err := router.FindNormalRoute(v, opts, e1, e3)
	require.NoError(t, err)
	head := router.FixForwardRoute(result)

	model := cost.New(cost.Distance, carProfile(t))
	events := annotate.Annotate(head, []graph.NodeIndex{e1, e3}, v, nil, model)

	require.Len(t, events, 5)
	assert.Equal(t, annotate.Waypoint, events[0].Importance)
	assert.Equal(t, annotate.RBEntry, events[1].Importance)
	assert.Equal(t, annotate.RBNotExit, events[2].Importance)
	assert.Equal(t, 0, events[2].RoundaboutOrdinal)
	assert.Equal(t, annotate.RBExit, events[3].Importance)
	assert.Equal(t, 1, events[3].RoundaboutOrdinal)
	assert.Equal(t, annotate.Waypoint, events[4].Importance)
}

// TestAnnotate_MiniRoundabout flags the middle node of a straight line as a
// mini-roundabout and checks it is reported as one.
func TestAnnotate_MiniRoundabout(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("M", 0, 0.001, graph.NodeMiniRoundabout)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.002, 0)
	require.NoError(t, err)

	way := wayOf(b, graph.HighwayResidential)
	_, err = b.AddSegment("A", "M", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("M", "B", way, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))
	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	bIdx, err := b.NodeIndex("B")
	require.NoError(t, err)

	result, err := router.FindNormalRoute(v, opts, aIdx, bIdx)
	require.NoError(t, err)
	head := router.FixForwardRoute(result)

	model := cost.New(cost.Distance, carProfile(t))
	events := annotate.Annotate(head, []graph.NodeIndex{aIdx, bIdx}, v, nil, model)

	require.Len(t, events, 3)
	assert.Equal(t, annotate.MiniRB, events[1].Importance)
}
