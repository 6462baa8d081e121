package survey

import (
	"gonum.org/v1/gonum/stat"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
)

// GroupSummary describes the spatial footprint of one transect group.
type GroupSummary struct {
	Group    Group     `json:"group"`
	Count    int       `json:"count"`
	Centroid geo.Point `json:"centroid"`
	// MeanRadiusMeters and StdDevRadiusMeters describe how far waypoints
	// sit from the group centroid on the ground.
	MeanRadiusMeters   float64 `json:"mean_radius_m"`
	StdDevRadiusMeters float64 `json:"stddev_radius_m"`
}

// Summarize computes per-group statistics in legend order. Empty groups are
// omitted.
func Summarize(wps []Waypoint) []GroupSummary {
	grouped := ByGroup(wps)

	var out []GroupSummary
	for _, g := range Groups {
		members := grouped[g]
		if len(members) == 0 {
			continue
		}

		lons := make([]float64, len(members))
		lats := make([]float64, len(members))
		for i, wp := range members {
			lons[i] = wp.Point.Lon
			lats[i] = wp.Point.Lat
		}
		centroid := geo.Point{Lon: stat.Mean(lons, nil), Lat: stat.Mean(lats, nil)}

		radii := make([]float64, len(members))
		for i, wp := range members {
			radii[i] = geo.DistanceMeters(centroid, wp.Point)
		}
		mean, std := stat.MeanStdDev(radii, nil)
		if len(members) < 2 {
			std = 0 // StdDev is undefined for a single sample
		}

		out = append(out, GroupSummary{
			Group:              g,
			Count:              len(members),
			Centroid:           centroid,
			MeanRadiusMeters:   mean,
			StdDevRadiusMeters: std,
		})
	}
	return out
}
