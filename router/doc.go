// Package router implements the routing core's six search kernels over a
// graph.View: FindStartRoutes, FindFinishRoutes, FindMiddleRoute and
// FindNormalRoute perform the best-first expansions (forward, backward,
// super-graph, and direct point-to-point respectively); CombineRoutes and
// FixForwardRoute stitch and re-orient their Results into one emittable
// chain. Solve is the single composed entry point most callers want.
//
// Every kernel takes an explicit RouterOptions instead of touching any
// package-level state, and owns its own resultstore.Store and pq.Queue for
// the duration of one call — nothing here is shared between concurrent
// routing calls, so any number of them may run against one graph.View.
package router
