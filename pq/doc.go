// Package pq is the router's decrease-key priority queue: a 1-indexed
// binary min-heap over *resultstore.Result, ordered by Sortby. See
// queue.go for why this is hand-rolled rather than a container/heap
// wrapper.
package pq
