package routeio

import (
	"github.com/routino/groute/annotate"
	"github.com/routino/groute/cost"
	"github.com/routino/groute/graph"
)

// highwayFallbackName is used when a way carries no name of its own: a
// residential road with no name is still reported as "Residential Road".
var highwayFallbackName = [graph.HighwayClassCount + 1]string{
	"",
	"Motorway", "Trunk Road", "Primary Road", "Secondary Road",
	"Tertiary Road", "Unclassified Road", "Residential Road", "Service Road",
	"Track", "Cycleway", "Path", "Steps", "Ferry",
}

// Point is one row of the output stream handed to formatters: everything
// they need about a single annotated route point, with way names already
// resolved (the core annotator only ever sees a graph.WayIndex).
type Point struct {
	Lat, Lon          float64
	Node              graph.NodeIndex
	IsFake            bool
	Importance        annotate.Importance
	SegDistance       cost.Score
	SegDuration       cost.Score
	CumDistance       cost.Score
	CumDuration       cost.Score
	SpeedKPH          float64
	Bearing           int
	Turn              int
	RoundaboutOrdinal int
	WayName           string
}

// Names resolves a graph.WayIndex to its human-readable name, e.g. backed
// by a string table loaded alongside the graph files. Lookups that return
// ok=false fall back to the way's highway-class name.
type Names interface {
	WayName(idx graph.WayIndex) (name string, ok bool)
}

// BuildStream converts an annotate.Event slice into the Point stream a
// formatter consumes, resolving each event's way name via names (nil is
// accepted: every point falls back to its highway-class name).
func BuildStream(events []annotate.Event, names Names) []Point {
	points := make([]Point, len(events))
	for i, ev := range events {
		points[i] = Point{
			Lat:               ev.Lat,
			Lon:               ev.Lon,
			Node:              ev.Node,
			IsFake:            ev.IsFake,
			Importance:        ev.Importance,
			SegDistance:       ev.SegDistance,
			SegDuration:       ev.SegDuration,
			CumDistance:       ev.CumDistance,
			CumDuration:       ev.CumDuration,
			SpeedKPH:          ev.SpeedKPH,
			Bearing:           ev.Bearing,
			Turn:              ev.Turn,
			RoundaboutOrdinal: ev.RoundaboutOrdinal,
			WayName:           resolveWayName(names, ev),
		}
	}
	return points
}

func resolveWayName(names Names, ev annotate.Event) string {
	if names != nil {
		if name, ok := names.WayName(ev.Way); ok && name != "" {
			return name
		}
	}
	if int(ev.Highway) < len(highwayFallbackName) {
		return highwayFallbackName[ev.Highway]
	}
	return ""
}
