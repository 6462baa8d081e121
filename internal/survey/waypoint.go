// Package survey models field-survey waypoints and the transect grouping
// convention embedded in their names.
package survey

import (
	"time"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
)

// Group is the transect a waypoint belongs to, derived from its name.
type Group string

// Known groups. Unassigned is a valid terminal state for waypoints whose
// names do not follow the transect convention, not an error.
const (
	GroupTransect1  Group = "Transect 1"
	GroupTransect2  Group = "Transect 2"
	GroupTransect3  Group = "Transect 3"
	GroupUnassigned Group = "Unassigned"
)

// Groups lists all groups in legend order.
var Groups = []Group{GroupTransect1, GroupTransect2, GroupTransect3, GroupUnassigned}

// Waypoint is a single recorded point of interest from a survey GPX file.
// Group is the only field derived after load; everything else comes straight
// from the file.
type Waypoint struct {
	Name        string    `json:"name"`
	Point       geo.Point `json:"point"`
	Description string    `json:"description,omitempty"`
	Time        time.Time `json:"time,omitempty"`
	Group       Group     `json:"group"`
}

// AssignGroups classifies every waypoint in place. This is the single
// mutation waypoints undergo after loading.
func AssignGroups(wps []Waypoint) {
	for i := range wps {
		wps[i].Group = Classify(wps[i].Name)
	}
}

// Points extracts the positions of wps, preserving order.
func Points(wps []Waypoint) []geo.Point {
	pts := make([]geo.Point, len(wps))
	for i, wp := range wps {
		pts[i] = wp.Point
	}
	return pts
}

// ByGroup splits wps into per-group slices, preserving input order within
// each group.
func ByGroup(wps []Waypoint) map[Group][]Waypoint {
	out := make(map[Group][]Waypoint)
	for _, wp := range wps {
		out[wp.Group] = append(out[wp.Group], wp)
	}
	return out
}
