package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/routeio"
)

// config is the parsed CLI surface of the routing binary, rendered as
// pflag switches.
type config struct {
	dir    string
	prefix string

	transport   string
	profilePath string

	metric cost.Metric

	translationsPath string
	metricsAddr      string

	enables routeio.Enables

	routes [][]waypointRef

	logLevel string
}

// waypointRef is one --route element: either a node index, or a geographic
// point (degrees at the CLI, radians here) still to be snapped onto the
// network by fakenode.Set.ResolveWaypoint.
type waypointRef struct {
	node       graph.NodeIndex
	lat, lon   float64
	geographic bool
}

// parseFlags parses args (normally os.Args[1:]) into a config. It does not
// touch global flag state, so it is safe to call more than once (tests do).
func parseFlags(args []string) (config, error) {
	fs := pflag.NewFlagSet("groute", pflag.ContinueOnError)

	var cfg config
	var shortest, quickest bool
	var routeFlags []string

	fs.StringVar(&cfg.dir, "dir", ".", "directory containing the graph files")
	fs.StringVar(&cfg.prefix, "prefix", "routino", "graph file name prefix")
	fs.StringVar(&cfg.transport, "transport", "motorcar", "transport profile name")
	fs.StringVar(&cfg.profilePath, "profile", "", "path to a YAML transport-profile file (overrides --transport defaults)")
	fs.BoolVar(&shortest, "shortest", false, "optimise for shortest distance")
	fs.BoolVar(&quickest, "quickest", true, "optimise for quickest duration")
	fs.StringArrayVar(&routeFlags, "route", nil, "comma-separated waypoints for one route, each a node index or lat:lon in degrees (repeatable)")
	fs.StringVar(&cfg.translationsPath, "translations", "", "path to a YAML message-translations file")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address")
	fs.BoolVar(&cfg.enables.HTML, "output-html", false, "enable HTML output shape")
	fs.BoolVar(&cfg.enables.GPXTrack, "output-gpx-track", false, "enable GPX track output shape")
	fs.BoolVar(&cfg.enables.GPXRoute, "output-gpx-route", false, "enable GPX route output shape")
	fs.BoolVar(&cfg.enables.Text, "output-text", true, "enable plain text output shape")
	fs.BoolVar(&cfg.enables.TextAll, "output-text-all", false, "enable verbose plain text output shape")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	// --quickest defaults on, so only an explicit --quickest conflicts with
	// --shortest.
	if shortest && quickest && fs.Changed("quickest") {
		return config{}, fmt.Errorf("groute: --shortest and --quickest are mutually exclusive")
	}
	cfg.metric = cost.Duration
	if shortest {
		cfg.metric = cost.Distance
	}

	if len(routeFlags) == 0 {
		return config{}, fmt.Errorf("groute: at least one --route is required")
	}
	routes, err := parseRoutes(routeFlags)
	if err != nil {
		return config{}, err
	}
	cfg.routes = routes

	return cfg, nil
}

// parseRoutes turns ["1,2,3", "50.1:8.6,5"] into [][]waypointRef, one slice
// of waypoints per --route flag. Each route needs at least two waypoints.
func parseRoutes(flags []string) ([][]waypointRef, error) {
	routes := make([][]waypointRef, 0, len(flags))
	for _, flag := range flags {
		parts := strings.Split(flag, ",")
		waypoints := make([]waypointRef, 0, len(parts))
		for _, part := range parts {
			wp, err := parseWaypoint(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			waypoints = append(waypoints, wp)
		}
		if len(waypoints) < 2 {
			return nil, fmt.Errorf("groute: --route %q needs at least two waypoints", flag)
		}
		routes = append(routes, waypoints)
	}
	return routes, nil
}

// parseWaypoint reads a single --route element: "lat:lon" (degrees) for a
// geographic waypoint, a bare unsigned integer for a node index.
func parseWaypoint(s string) (waypointRef, error) {
	if latStr, lonStr, found := strings.Cut(s, ":"); found {
		latDeg, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return waypointRef{}, fmt.Errorf("groute: invalid --route latitude %q: %w", latStr, err)
		}
		lonDeg, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return waypointRef{}, fmt.Errorf("groute: invalid --route longitude %q: %w", lonStr, err)
		}
		return waypointRef{
			lat:        latDeg * math.Pi / 180,
			lon:        lonDeg * math.Pi / 180,
			geographic: true,
		}, nil
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return waypointRef{}, fmt.Errorf("groute: invalid --route waypoint %q: %w", s, err)
	}
	return waypointRef{node: graph.NodeIndex(n)}, nil
}
