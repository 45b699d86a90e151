// File: fixforward.go
// Role: FixForwardRoute. Every search kernel here builds its chain backwards (each
// Result's Prev points towards the search's origin), because that's the
// direction relaxation discovers edges in. Output, though, is read
// forwards: FixForwardRoute walks the Prev chain once and installs the
// matching Next pointers, returning the head (origin) Result so
// annotate.Annotate can walk forward via Next without ever following Prev.

package router

import "github.com/routino/groute/resultstore"

// FixForwardRoute walks tail's Prev chain back to the origin, installing
// Next on every Result it visits, and returns the origin (head) Result.
// tail itself gets Next == nil, since it is the end of the route.
func FixForwardRoute(tail *resultstore.Result) *resultstore.Result {
	var next *resultstore.Result
	cur := tail

	for cur != nil {
		cur.Next = next
		next = cur
		cur = cur.Prev
	}

	return next
}
