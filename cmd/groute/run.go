package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/routino/groute/annotate"
	"github.com/routino/groute/cost"
	"github.com/routino/groute/fakenode"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/routeio"
	"github.com/routino/groute/router"
)

// routeResult is one --route's outcome, reported back to run for logging
// and exit-code aggregation.
type routeResult struct {
	index  int
	points []routeio.Point
	err    error
}

// run loads the graph and profile, then fans the configured routes out
// across goroutines — each drives its own Solve call with its own search
// state against the shared read-only graph.View, so no locking is needed
// anywhere. Returns a non-nil error if any route failed; the exit code
// reflects the worst outcome across all of them.
func run(ctx context.Context, cfg config) error {
	gv, err := graph.Load(cfg.dir, cfg.prefix)
	if err != nil {
		return fmt.Errorf("groute: loading graph: %w", err)
	}
	slog.Info("graph loaded",
		"nodes", gv.NodeCount(), "segments", gv.SegmentCount(), "ways", gv.WayCount())

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	var translations *routeio.Translations
	if cfg.translationsPath != "" {
		translations, err = routeio.LoadTranslationsYAML(cfg.translationsPath)
		if err != nil {
			return fmt.Errorf("groute: loading translations: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	metrics := routeio.NewMetrics(reg)

	g, gctx := errgroup.WithContext(ctx)

	// The metrics server lives outside the errgroup: it serves while the
	// routes run and is shut down once they are all done, so run still
	// returns promptly in batch use.
	var metricsSrv *http.Server
	if cfg.metricsAddr != "" {
		metricsSrv = &http.Server{Addr: cfg.metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			slog.Info("serving metrics", "addr", cfg.metricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Warn("metrics server", "err", err)
			}
		}()
	}

	opts := router.NewOptions(prof,
		router.WithMetric(cfg.metric),
		router.WithKernelHook(metrics.IncKernel))
	model := opts.CostModel()

	results := make([]routeResult, len(cfg.routes))
	for i, waypoints := range cfg.routes {
		i, waypoints := i, waypoints
		g.Go(func() error {
			results[i] = solveOne(gctx, gv, opts, model, metrics, i, waypoints)
			return nil // a failed route does not cancel its siblings
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(context.Background()); err != nil {
			slog.Warn("metrics server shutdown", "err", err)
		}
	}

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			slog.Error("route failed", "route", r.index, "err", r.err)
			continue
		}
		logRoute(r)
		if cfg.enables.Text || cfg.enables.TextAll {
			if err := writeText(os.Stdout, r.points, translations, cfg.enables.TextAll); err != nil {
				slog.Warn("writing text output", "route", r.index, "err", err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("groute: %d of %d routes failed", failed, len(results))
	}
	return nil
}

func solveOne(ctx context.Context, gv *graph.View, opts router.RouterOptions, model *cost.Model, metrics *routeio.Metrics, index int, waypoints []waypointRef) routeResult {
	// One fakenode.Set per route: its synthesized nodes live exactly as
	// long as this Solve call, never shared with a sibling goroutine.
	fakes := fakenode.NewSet(gv)
	nodes := make([]graph.NodeIndex, len(waypoints))
	for i, wp := range waypoints {
		if !wp.geographic {
			nodes[i] = wp.node
			continue
		}
		node, err := fakes.ResolveWaypoint(wp.lat, wp.lon)
		if err != nil {
			return routeResult{index: index, err: fmt.Errorf("waypoint %d: %w", i, err)}
		}
		nodes[i] = node
	}

	start := time.Now()
	chain, err := router.Solve(gv, opts, fakes, nodes)
	metrics.IncKernel("solve")
	metrics.ObserveSearch(metricName(opts.Metric), time.Since(start))
	if err != nil {
		metrics.IncNoRoute()
		return routeResult{index: index, err: err}
	}

	events := annotate.Annotate(chain, nodes, gv, fakes, model)
	points := routeio.BuildStream(events, nil)

	return routeResult{index: index, points: points}
}

func metricName(m cost.Metric) string {
	if m == cost.Distance {
		return "distance"
	}
	return "duration"
}

// logRoute summarises a successful route at info level; actual HTML/GPX/
// text file generation is a formatter's job, out of this binary's scope.
func logRoute(r routeResult) {
	if len(r.points) == 0 {
		slog.Info("route solved", "route", r.index, "points", 0)
		return
	}
	last := r.points[len(r.points)-1]
	slog.Info("route solved",
		"route", r.index,
		"points", len(r.points),
		"distance_m", float64(last.CumDistance),
		"duration_s", float64(last.CumDuration))
}
