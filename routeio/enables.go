package routeio

// Enables records which of the five output forms a caller asked for, so
// cmd/groute (or an embedder) can skip building a Point stream nobody
// asked for. The actual file writers live downstream of this package.
type Enables struct {
	HTML        bool
	GPXTrack    bool
	GPXRoute    bool
	Text        bool
	TextAll     bool
}

// Any reports whether at least one output form is enabled.
func (e Enables) Any() bool {
	return e.HTML || e.GPXTrack || e.GPXRoute || e.Text || e.TextAll
}

// Count returns how many output forms are enabled.
func (e Enables) Count() int {
	n := 0
	for _, on := range []bool{e.HTML, e.GPXTrack, e.GPXRoute, e.Text, e.TextAll} {
		if on {
			n++
		}
	}
	return n
}
