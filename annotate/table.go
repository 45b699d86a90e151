package annotate

import "github.com/routino/groute/graph"

// junctionOtherWay is the lower-triangular heuristic table deciding whether
// a branch not taken at a junction is "important enough to mention": a
// not-taken way of class other is important relative to the way being
// followed (mine) iff junctionOtherWay[mine-1][other-1] is true. Each class
// treats a branch of its own class, of any more major class, or a ferry as
// important (so a motorway mentions only motorways and ferries); Path, Steps
// and Ferry treat every branch as important.
var junctionOtherWay = [graph.HighwayClassCount][graph.HighwayClassCount]bool{
	/*              M,     T,     P,     S,     T,     U,     R,     S,     T,     C,     P,     S,     F */
	/* Motorway */ {true, false, false, false, false, false, false, false, false, false, false, false, true},
	/* Trunk    */ {true, true, false, false, false, false, false, false, false, false, false, false, true},
	/* Primary  */ {true, true, true, false, false, false, false, false, false, false, false, false, true},
	/* Secondary*/ {true, true, true, true, false, false, false, false, false, false, false, false, true},
	/* Tertiary */ {true, true, true, true, true, false, false, false, false, false, false, false, true},
	/* Unclass. */ {true, true, true, true, true, true, false, false, false, false, false, false, true},
	/* Resident.*/ {true, true, true, true, true, true, true, false, false, false, false, false, true},
	/* Service  */ {true, true, true, true, true, true, true, true, false, false, false, false, true},
	/* Track    */ {true, true, true, true, true, true, true, true, true, false, false, false, true},
	/* Cycleway */ {true, true, true, true, true, true, true, true, true, true, false, false, true},
	/* Path     */ {true, true, true, true, true, true, true, true, true, true, true, true, true},
	/* Steps    */ {true, true, true, true, true, true, true, true, true, true, true, true, true},
	/* Ferry    */ {true, true, true, true, true, true, true, true, true, true, true, true, true},
}

// importantOtherWay reports whether a not-taken branch of class other is
// worth mentioning when the route continues on class mine.
func importantOtherWay(mine, other graph.HighwayClass) bool {
	if mine < 1 || int(mine) > graph.HighwayClassCount || other < 1 || int(other) > graph.HighwayClassCount {
		return false
	}
	return junctionOtherWay[mine-1][other-1]
}
