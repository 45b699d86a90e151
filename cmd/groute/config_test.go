package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
)

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := parseFlags([]string{"--route", "1,2,3"})
	require.NoError(t, err)

	assert.Equal(t, cost.Duration, cfg.metric)
	assert.Equal(t, "motorcar", cfg.transport)
	assert.True(t, cfg.enables.Text)
	assert.False(t, cfg.enables.HTML)
	assert.Equal(t, [][]waypointRef{{{node: 1}, {node: 2}, {node: 3}}}, cfg.routes)
}

func TestParseFlags_ShortestSelectsDistance(t *testing.T) {
	cfg, err := parseFlags([]string{"--shortest", "--route", "1,2"})
	require.NoError(t, err)
	assert.Equal(t, cost.Distance, cfg.metric)
}

func TestParseFlags_ShortestAndQuickestConflict(t *testing.T) {
	_, err := parseFlags([]string{"--shortest", "--quickest", "--route", "1,2"})
	assert.Error(t, err)
}

func TestParseFlags_RequiresRoute(t *testing.T) {
	_, err := parseFlags(nil)
	assert.Error(t, err)
}

func TestParseFlags_MultipleRoutes(t *testing.T) {
	cfg, err := parseFlags([]string{"--route", "1,2", "--route", "7,8,9"})
	require.NoError(t, err)
	assert.Len(t, cfg.routes, 2)
	assert.Equal(t, []waypointRef{{node: 7}, {node: 8}, {node: 9}}, cfg.routes[1])
}

func TestParseWaypoint_NodeIndex(t *testing.T) {
	wp, err := parseWaypoint("42")
	require.NoError(t, err)
	assert.False(t, wp.geographic)
	assert.Equal(t, graph.NodeIndex(42), wp.node)
}

func TestParseWaypoint_Geographic(t *testing.T) {
	wp, err := parseWaypoint("50:8.6")
	require.NoError(t, err)
	assert.True(t, wp.geographic)
	assert.InDelta(t, 50*math.Pi/180, wp.lat, 1e-12)
	assert.InDelta(t, 8.6*math.Pi/180, wp.lon, 1e-12)
}

func TestParseRoutes_RejectsBadInput(t *testing.T) {
	_, err := parseRoutes([]string{"1"})
	assert.Error(t, err, "a single waypoint cannot form a route")

	_, err = parseRoutes([]string{"1,abc"})
	assert.Error(t, err)

	_, err = parseRoutes([]string{"50:north,2"})
	assert.Error(t, err)
}
