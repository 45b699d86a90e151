// Package routeio turns an annotate.Event stream into the downstream-facing
// shapes a formatter or embedder consumes: per-point output records
// (Point), a translation-template lookup (Translations), a gating struct
// recording which output forms were requested (Enables), and an optional
// Prometheus recorder (Metrics). It never touches the graph or performs any
// search; everything here runs after router.Solve and annotate.Annotate
// have already produced a finished, classified route.
package routeio
