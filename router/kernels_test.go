package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/graphbuild"
	"github.com/routino/groute/profile"
	"github.com/routino/groute/router"
)

func TestFindNormalRoute_StraightLine(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	result, err := router.FindNormalRoute(v, opts, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeIndex(2), result.Node)
	assert.Equal(t, cost.Score(200), result.Score)

	head := router.FixForwardRoute(result)
	assert.Equal(t, []graph.NodeIndex{0, 1, 2}, walkChain(head))
}

func TestFindNormalRoute_UnknownStart(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	_, err := router.FindNormalRoute(v, opts, 99, 2)
	assert.ErrorIs(t, err, router.ErrStartNotFound)
}

func TestFindNormalRoute_UnknownFinish(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	_, err := router.FindNormalRoute(v, opts, 0, 99)
	assert.ErrorIs(t, err, router.ErrFinishNotFound)
}

func TestFindNormalRoute_Disconnected(t *testing.T) {
	v := straightLine(t)

	// straightLine's only way is residential; a profile that allows only
	// motorway can never traverse it.
	restrictive, err := profile.New(
		profile.WithTransport("motorcar"),
		profile.WithAllowedHighway(graph.HighwayMotorway),
		profile.WithSpeed(graph.HighwayMotorway, 110),
	)
	require.NoError(t, err)
	opts2 := router.NewOptions(restrictive)

	_, err = router.FindNormalRoute(v, opts2, 0, 2)
	assert.ErrorIs(t, err, router.ErrNoRoute)
}

func TestFindStartRoutes_PopulatesEveryReachableNode(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	store, err := router.FindStartRoutes(v, opts, 0, 0, 0)
	require.NoError(t, err)

	b := store.FindBest(1)
	require.NotNil(t, b)
	assert.Equal(t, cost.Score(100), b.Score)

	c := store.FindBest(2)
	require.NotNil(t, c)
	assert.Equal(t, cost.Score(200), c.Score)
}

func TestFindFinishRoutes_PopulatesEveryReachableNode(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	store, err := router.FindFinishRoutes(v, opts, 2, 0, 0)
	require.NoError(t, err)

	a := store.FindBest(0)
	require.NotNil(t, a)
	assert.Equal(t, cost.Score(200), a.Score)
}

func TestFindMiddleRoute_MeetsAtFinishSideSuperNode(t *testing.T) {
	b := superGraphFixture(t)
	opts := router.NewOptions(carProfile(t))

	beginStore, err := router.FindStartRoutes(b.view, opts, b.start, 0, 0)
	require.NoError(t, err)
	endStore, err := router.FindFinishRoutes(b.view, opts, b.finish, 0, 0)
	require.NoError(t, err)

	middleResult, err := router.FindMiddleRoute(b.view, opts, beginStore, endStore)
	require.NoError(t, err)

	// The stitch exits the overlay at super2, the first super-node the
	// finish-side fan can reach, and its score carries the cost
	// accumulated from the overall start (100 to enter + 200 shortcut).
	assert.Equal(t, b.super2, middleResult.Node)
	assert.Equal(t, cost.Score(300), middleResult.Score)
}

func TestFindMiddleRoute_NoSuperSeeds(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	beginStore, err := router.FindStartRoutes(v, opts, 0, 0, 0)
	require.NoError(t, err)
	endStore, err := router.FindFinishRoutes(v, opts, 2, 0, 0)
	require.NoError(t, err)

	_, err = router.FindMiddleRoute(v, opts, beginStore, endStore)
	assert.ErrorIs(t, err, router.ErrNoRoute)
}

func TestCombineRoutes_StitchesWithoutDuplicateNode(t *testing.T) {
	b := superGraphFixture(t)
	opts := router.NewOptions(carProfile(t))

	beginStore, err := router.FindStartRoutes(b.view, opts, b.start, 0, 0)
	require.NoError(t, err)
	endStore, err := router.FindFinishRoutes(b.view, opts, b.finish, 0, 0)
	require.NoError(t, err)

	middleResult, err := router.FindMiddleRoute(b.view, opts, beginStore, endStore)
	require.NoError(t, err)

	beginResult := beginStore.FindBest(b.super1)
	require.NotNil(t, beginResult)
	endResult := endStore.FindBest(b.super2)
	require.NotNil(t, endResult)

	head, err := router.CombineRoutes(b.view, opts, beginResult, middleResult, endResult)
	require.NoError(t, err)

	// The super1-super2 shortcut the middle phase took is expanded back
	// into the real path through mid.
	nodes := walkChain(head)
	assert.Equal(t, []graph.NodeIndex{b.start, b.super1, b.mid, b.super2, b.finish}, nodes)
}

// TestSolve_UsesSuperGraphStitch routes across the super fixture through
// the public entry point and checks both the expanded chain and that the
// overlay kernels actually ran.
func TestSolve_UsesSuperGraphStitch(t *testing.T) {
	b := superGraphFixture(t)

	var kernels []string
	opts := router.NewOptions(carProfile(t),
		router.WithKernelHook(func(kernel string) { kernels = append(kernels, kernel) }))

	head, err := router.Solve(b.view, opts, nil, []graph.NodeIndex{b.start, b.finish})
	require.NoError(t, err)

	nodes := walkChain(head)
	assert.Equal(t, []graph.NodeIndex{b.start, b.super1, b.mid, b.super2, b.finish}, nodes)
	assert.Contains(t, kernels, "start")
	assert.Contains(t, kernels, "finish")
	assert.Contains(t, kernels, "middle")
}

// TestSolve_ShortLegSkipsOverlay routes between two nodes inside the same
// super-node-bounded neighbourhood: the start fan reaches the finish
// directly, so no middle search runs.
func TestSolve_ShortLegSkipsOverlay(t *testing.T) {
	b := superGraphFixture(t)

	var kernels []string
	opts := router.NewOptions(carProfile(t),
		router.WithKernelHook(func(kernel string) { kernels = append(kernels, kernel) }))

	head, err := router.Solve(b.view, opts, nil, []graph.NodeIndex{b.start, b.super1})
	require.NoError(t, err)

	assert.Equal(t, []graph.NodeIndex{b.start, b.super1}, walkChain(head))
	assert.NotContains(t, kernels, "middle")
}

func TestFindNormalRoute_StartEqualsFinish(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	result, err := router.FindNormalRoute(v, opts, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, cost.Score(0), result.Score)

	head := router.FixForwardRoute(result)
	assert.Equal(t, []graph.NodeIndex{1}, walkChain(head))
}

func TestSolve_MultiWaypointSplicesLegs(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	head, err := router.Solve(v, opts, nil, []graph.NodeIndex{0, 1, 2})
	require.NoError(t, err)

	// The shared waypoint B appears exactly once in the combined chain.
	assert.Equal(t, []graph.NodeIndex{0, 1, 2}, walkChain(head))
	assert.Equal(t, []graph.SegmentIndex{0, 1}, walkSegments(head))
}

func TestSolve_TooFewWaypoints(t *testing.T) {
	v := straightLine(t)
	opts := router.NewOptions(carProfile(t))

	_, err := router.Solve(v, opts, nil, []graph.NodeIndex{0})
	assert.ErrorIs(t, err, router.ErrEmptyWaypoints)
}

func TestSolve_UnreachableLegFailsWholeRequest(t *testing.T) {
	b := graphbuild.New()
	_, err := b.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddNode("B", 0, 0.001, 0)
	require.NoError(t, err)
	_, err = b.AddNode("X", 0, 0.01, 0) // disconnected island
	require.NoError(t, err)

	way := residentialWay(b)
	_, err = b.AddSegment("A", "B", way, 100, 0)
	require.NoError(t, err)

	v, err := b.Compile()
	require.NoError(t, err)

	opts := router.NewOptions(carProfile(t))

	_, err = router.Solve(v, opts, nil, []graph.NodeIndex{0, 1, 2})
	assert.ErrorIs(t, err, router.ErrNoRoute)
}
