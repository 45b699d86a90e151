// File: queue.go
// Role: the router's priority queue — a 1-indexed binary min-heap of
// *resultstore.Result ordered by Sortby, with each Result carrying its own
// heap index so InsertOrDecrease can re-sift an existing entry in O(log n)
// instead of pushing a stale duplicate.
//
// container/heap with lazy decrease-key (push a duplicate, skip stale pops)
// doesn't fit here: state is keyed on (node, incoming-segment) and a Result
// may have its Sortby decreased repeatedly while queued, so every Result
// must control exactly one addressable heap slot. 1-based indices keep the
// parent/child arithmetic branch-free (parent = i/2, children = 2i, 2i+1).

package pq

import "github.com/routino/groute/resultstore"

// Queue is a min-heap of *resultstore.Result, ordered by ascending Sortby.
type Queue struct {
	data []*resultstore.Result // 1-indexed: data[0] is unused
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{data: make([]*resultstore.Result, 1, 1025)}
}

// Len returns the number of Results currently queued.
func (q *Queue) Len() int { return len(q.data) - 1 }

// InsertOrDecrease places r into the queue if it is not already queued
// (r.Queued == resultstore.NotQueued), or re-sifts it upward from its
// current position if it is. The caller must only ever decrease (or leave
// unchanged) an already-queued Result's Sortby before calling this again;
// increasing it would break the heap invariant.
func (q *Queue) InsertOrDecrease(r *resultstore.Result) {
	var index int

	if r.Queued == resultstore.NotQueued {
		q.data = append(q.data, r)
		index = len(q.data) - 1
		r.Queued = index
	} else {
		index = r.Queued
	}

	for index > 1 && q.data[index].Sortby < q.data[index/2].Sortby {
		parent := index / 2
		q.data[index], q.data[parent] = q.data[parent], q.data[index]
		q.data[index].Queued = index
		q.data[parent].Queued = parent
		index = parent
	}
}

// PopMin removes and returns the Result with the smallest Sortby, setting
// its Queued back to resultstore.NotQueued. Returns nil if the queue is
// empty.
func (q *Queue) PopMin() *resultstore.Result {
	n := q.Len()
	if n == 0 {
		return nil
	}

	top := q.data[1]
	top.Queued = resultstore.NotQueued

	last := q.data[n]
	q.data[1] = last
	q.data = q.data[:n]
	n--

	if n > 0 {
		last.Queued = 1
		q.siftDown(1, n)
	}

	return top
}

func (q *Queue) siftDown(index, n int) {
	for {
		left, right := 2*index, 2*index+1
		smallest := index

		if left <= n && q.data[left].Sortby < q.data[smallest].Sortby {
			smallest = left
		}
		if right <= n && q.data[right].Sortby < q.data[smallest].Sortby {
			smallest = right
		}
		if smallest == index {
			return
		}

		q.data[index], q.data[smallest] = q.data[smallest], q.data[index]
		q.data[index].Queued = index
		q.data[smallest].Queued = smallest
		index = smallest
	}
}
