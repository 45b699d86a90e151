package main

import (
	"fmt"
	"io"

	"github.com/routino/groute/annotate"
	"github.com/routino/groute/routeio"
)

// writeText is the one concrete formatter this binary ships: a plain-text
// point listing. HTML/GPX generation belongs to dedicated downstream
// writers; this minimal rendering is what --output-text and
// --output-text-all drive. verbose means every point, not just the ones
// worth mentioning.
func writeText(w io.Writer, points []routeio.Point, translations *routeio.Translations, verbose bool) error {
	header := "Route"
	if translations != nil {
		if tmpl, ok := translations.Lookup("route/header"); ok {
			header = tmpl
		}
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, p := range points {
		if !verbose && p.Importance <= annotate.Unimportant {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-12s %9.1fm %9.1fs  %s\n",
			importanceLabel(p.Importance), p.CumDistance, p.CumDuration, p.WayName); err != nil {
			return err
		}
	}
	return nil
}

func importanceLabel(imp annotate.Importance) string {
	switch imp {
	case annotate.Waypoint:
		return "waypoint"
	case annotate.UTurn:
		return "u-turn"
	case annotate.MiniRB:
		return "mini-rb"
	case annotate.RBEntry:
		return "rb-enter"
	case annotate.RBExit:
		return "rb-exit"
	case annotate.RBNotExit:
		return "rb-pass"
	case annotate.JunctImport:
		return "junction"
	case annotate.Change:
		return "change"
	case annotate.JunctContinue:
		return "continue"
	default:
		return "-"
	}
}
