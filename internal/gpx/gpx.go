// Package gpx loads survey waypoints from GPX files. Parsing and
// spatial-reference handling are delegated to github.com/tkrajina/gpxgo;
// this package only maps waypoint records onto the survey model.
package gpx

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

// Load reads the waypoints of a GPX file. Track and route points are
// ignored; field plots are recorded as waypoints. The returned waypoints
// are unclassified (Group is the zero value) until survey.AssignGroups runs.
func Load(path string) ([]survey.Waypoint, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse gpx %s: %w", path, err)
	}

	wps := make([]survey.Waypoint, 0, len(doc.Waypoints))
	for _, wp := range doc.Waypoints {
		wps = append(wps, survey.Waypoint{
			Name:        wp.Name,
			Point:       geo.Point{Lon: wp.Longitude, Lat: wp.Latitude},
			Description: wp.Description,
			Time:        wp.Timestamp,
		})
	}

	if len(wps) == 0 {
		return nil, fmt.Errorf("no waypoints in %s", path)
	}
	return wps, nil
}
