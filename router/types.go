// File: types.go
// Role: RouterOptions and its functional options.

package router

import (
	"github.com/routino/groute/cost"
	"github.com/routino/groute/profile"
)

// RouterOptions is the explicit, immutable per-call configuration threaded
// through every kernel: which metric to optimise and which transport
// profile to obey. There is no package-level routing state anywhere.
type RouterOptions struct {
	Metric  cost.Metric
	Profile *profile.Profile

	// KernelHook, when non-nil, is invoked once at the start of every
	// search-kernel run with its name ("start", "finish", "middle",
	// "normal"). The router never depends on what the hook does; cmd/groute
	// points it at a metrics recorder.
	KernelHook func(kernel string)
}

// Option configures a RouterOptions during NewOptions.
type Option func(*RouterOptions)

// WithMetric selects "shortest" (cost.Distance) or "quickest" (cost.Duration)
// scoring.
func WithMetric(m cost.Metric) Option {
	return func(o *RouterOptions) { o.Metric = m }
}

// WithKernelHook installs a callback fired once per kernel invocation.
func WithKernelHook(hook func(kernel string)) Option {
	return func(o *RouterOptions) { o.KernelHook = hook }
}

// NewOptions builds a RouterOptions for the given profile, defaulting to
// cost.Distance ("shortest") unless overridden by WithMetric.
func NewOptions(p *profile.Profile, opts ...Option) RouterOptions {
	o := RouterOptions{Metric: cost.Distance, Profile: p}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CostModel returns a cost.Model configured for this RouterOptions' metric
// and profile.
func (o RouterOptions) CostModel() *cost.Model {
	return cost.New(o.Metric, o.Profile)
}

func (o RouterOptions) kernelUsed(kernel string) {
	if o.KernelHook != nil {
		o.KernelHook(kernel)
	}
}
