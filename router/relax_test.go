package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routino/groute/graph"
	"github.com/routino/groute/graphbuild"
	"github.com/routino/groute/profile"
	"github.com/routino/groute/router"
)

// TestRelax_OnewayBlocksWrongDirection builds A->B oneway-forward and
// verifies the router cannot route B to A.
func TestRelax_OnewayBlocksWrongDirection(t *testing.T) {
	b := graphbuild.New()
	a, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	bb, err := b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	_, err = b.AddSegment("A", "B", way, 100, graph.SegOnewayForward)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))

	_, err = router.FindNormalRoute(v, opts, a, bb)
	require.NoError(t, err)

	_, err = router.FindNormalRoute(v, opts, bb, a)
	assert.ErrorIs(t, err, router.ErrNoRoute)
}

// TestRelax_OnewayIgnoredWhenNotObeyed checks that disabling oneway
// obedience opens the reverse direction back up.
func TestRelax_OnewayIgnoredWhenNotObeyed(t *testing.T) {
	b := graphbuild.New()
	a, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	bb, err := b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	_, err = b.AddSegment("A", "B", way, 100, graph.SegOnewayForward)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	p, err := profile.New(
		profile.WithTransport("motorcar"),
		profile.WithAllowedHighway(graph.HighwayResidential),
		profile.WithSpeed(graph.HighwayResidential, 30),
		profile.WithObeyOneway(false),
	)
	require.NoError(t, err)
	opts := router.NewOptions(p)

	_, err = router.FindNormalRoute(v, opts, bb, a)
	assert.NoError(t, err)
}

// TestRelax_NoTurnRestrictionForcesDetour builds a T-junction where a
// "no X" relation forbids continuing straight through. The only other
// branch is a dead end, so with U-turns forbidden the kernel must report
// no route rather than sneak through the restriction.
func TestRelax_NoTurnRestrictionForcesDetour(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("J", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("C", 0, 0.002, 0)
	require.NoError(t, err)
	_, err = b.AddNode("D", 0, 0.001, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	segAJ, err := b.AddSegment("A", "J", way, 100, 0)
	require.NoError(t, err)
	segJC, err := b.AddSegment("J", "C", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("J", "D", way, 100, 0)
	require.NoError(t, err)

	require.NoError(t, b.AddRelation(segAJ, segJC, "J", graph.RelationNo))

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))

	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	cIdx, err := b.NodeIndex("C")
	require.NoError(t, err)

	_, err = router.FindNormalRoute(v, opts, aIdx, cIdx)
	assert.ErrorIs(t, err, router.ErrNoRoute)
}

// TestRelax_OnlyRestrictionForcesSingleContinuation checks that an "only X"
// relation forbids every other continuation from the restricted approach.
func TestRelax_OnlyRestrictionForcesSingleContinuation(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("J", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("C", 0, 0.002, 0)
	require.NoError(t, err)
	_, err = b.AddNode("D", 0, 0.001, 0)
	require.NoError(t, err)

	way := residentialWay(b)
	segAJ, err := b.AddSegment("A", "J", way, 100, 0)
	require.NoError(t, err)
	_, err = b.AddSegment("J", "C", way, 100, 0)
	require.NoError(t, err)
	segJD, err := b.AddSegment("J", "D", way, 100, 0)
	require.NoError(t, err)

	require.NoError(t, b.AddRelation(segAJ, segJD, "J", graph.RelationOnly))

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))

	aIdx, err := b.NodeIndex("A")
	require.NoError(t, err)
	cIdx, err := b.NodeIndex("C")
	require.NoError(t, err)
	dIdx, err := b.NodeIndex("D")
	require.NoError(t, err)

	_, err = router.FindNormalRoute(v, opts, aIdx, cIdx)
	assert.ErrorIs(t, err, router.ErrNoRoute)

	_, err = router.FindNormalRoute(v, opts, aIdx, dIdx)
	assert.NoError(t, err)
}
