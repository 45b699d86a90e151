package routeio

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is an optional recorder a caller can thread through router.Solve
// calls to observe search behaviour: how many routing kernels ran, how long
// each search took, and how often no route was found at all. Nothing in the
// router or annotate packages imports this — cmd/groute (or any other
// embedder) times its own calls and feeds per-kernel counts through
// router.WithKernelHook's plain-function callback, so the search kernels
// stay free of any metrics dependency.
type Metrics struct {
	kernelsTotal  *prometheus.CounterVec
	searchSeconds *prometheus.HistogramVec
	noRouteTotal  prometheus.Counter
}

// NewMetrics registers the groute metric set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		kernelsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groute",
			Subsystem: "router",
			Name:      "kernels_invoked_total",
			Help:      "Number of routing kernels run (normal, super, start/finish fan-out).",
		}, []string{"kernel"}),
		searchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "groute",
			Subsystem: "router",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock time spent inside a single routing call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"metric"}),
		noRouteTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "groute",
			Subsystem: "router",
			Name:      "no_route_total",
			Help:      "Number of routing calls that found no usable route.",
		}),
	}
}

// IncKernel records one invocation of the named kernel ("solve", "start",
// "finish", "middle", "normal"); router.WithKernelHook feeds the per-kernel
// names, the embedder adds "solve" around the whole call.
func (m *Metrics) IncKernel(kernel string) {
	if m == nil {
		return
	}
	m.kernelsTotal.WithLabelValues(kernel).Inc()
}

// ObserveSearch records how long a routing call took for the given cost
// metric ("distance" or "duration").
func (m *Metrics) ObserveSearch(metric string, d time.Duration) {
	if m == nil {
		return
	}
	m.searchSeconds.WithLabelValues(metric).Observe(d.Seconds())
}

// IncNoRoute records a routing call that ended without a route.
func (m *Metrics) IncNoRoute() {
	if m == nil {
		return
	}
	m.noRouteTotal.Inc()
}

// KernelsTotalFor exposes the counter for kernel, for tests that assert on
// recorded values via prometheus/testutil.
func (m *Metrics) KernelsTotalFor(kernel string) prometheus.Counter {
	return m.kernelsTotal.WithLabelValues(kernel)
}

// NoRouteCounter exposes the no-route counter, for tests.
func (m *Metrics) NoRouteCounter() prometheus.Counter {
	return m.noRouteTotal
}
