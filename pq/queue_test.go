package pq_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
	"github.com/routino/groute/pq"
	"github.com/routino/groute/resultstore"
)

func TestQueue_EmptyPopReturnsNil(t *testing.T) {
	q := pq.New()
	assert.Nil(t, q.PopMin())
}

func TestQueue_PopsInAscendingOrder(t *testing.T) {
	store := resultstore.New(8)
	q := pq.New()

	scores := []cost.Score{5, 1, 4, 2, 3}
	for i, sc := range scores {
		r := store.Insert(graph.NodeIndex(i), 0)
		r.Sortby = sc
		q.InsertOrDecrease(r)
	}

	var got []cost.Score
	for q.Len() > 0 {
		got = append(got, q.PopMin().Sortby)
	}

	assert.Equal(t, []cost.Score{1, 2, 3, 4, 5}, got)
}

func TestQueue_DecreaseKeyResifts(t *testing.T) {
	store := resultstore.New(8)
	q := pq.New()

	r1 := store.Insert(0, 0)
	r1.Sortby = 10
	q.InsertOrDecrease(r1)

	r2 := store.Insert(1, 0)
	r2.Sortby = 20
	q.InsertOrDecrease(r2)

	r3 := store.Insert(2, 0)
	r3.Sortby = 30
	q.InsertOrDecrease(r3)

	// Decrease r3's key below r1's and re-insert (decrease-key).
	r3.Sortby = 1
	q.InsertOrDecrease(r3)

	top := q.PopMin()
	assert.Same(t, r3, top)
	assert.Equal(t, resultstore.NotQueued, r3.Queued)
}

func TestQueue_QueuedInvariant(t *testing.T) {
	store := resultstore.New(8)
	q := pq.New()

	rnd := rand.New(rand.NewSource(1))
	var results []*resultstore.Result
	for i := 0; i < 100; i++ {
		r := store.Insert(graph.NodeIndex(i), 0)
		r.Sortby = cost.Score(rnd.Intn(1000))
		q.InsertOrDecrease(r)
		results = append(results, r)
	}

	for _, r := range results {
		require.NotEqual(t, resultstore.NotQueued, r.Queued)
	}

	var popped []cost.Score
	for q.Len() > 0 {
		popped = append(popped, q.PopMin().Sortby)
	}

	for i := 1; i < len(popped); i++ {
		assert.True(t, popped[i-1] <= popped[i])
	}
}
