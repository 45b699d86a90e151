// Package annotate walks a finished route chain and classifies each node as
// a waypoint, an uninteresting pass-through, or one of several kinds of
// junction worth describing to a user. The classification is computed once
// and shared by every output format (HTML, GPX, plain text). This package
// stops at the classified Event stream; turning that stream into a
// particular file format is routeio's job.
package annotate
