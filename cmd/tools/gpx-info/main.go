// gpx-info prints the waypoints of a survey GPX file with their derived
// transect groups, plus per-group statistics and the enclosing bounding box.
// Useful for checking a file before rendering it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/gpx"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

func main() {
	in := flag.String("in", "", "input GPX file (required)")
	margin := flag.Float64("margin", 0.10, "bounding-box expansion fraction to preview")
	flag.Parse()

	if *in == "" {
		log.Fatal("-in is required")
	}

	wps, err := gpx.Load(*in)
	if err != nil {
		log.Fatalf("gpx-info: %v", err)
	}
	survey.AssignGroups(wps)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGROUP\tLON\tLAT\tTIME\tDESCRIPTION")
	for _, wp := range wps {
		ts := ""
		if !wp.Time.IsZero() {
			ts = wp.Time.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%.5f\t%.5f\t%s\t%s\n",
			wp.Name, wp.Group, wp.Point.Lon, wp.Point.Lat, ts, wp.Description)
	}
	tw.Flush()

	fmt.Println()
	for _, s := range survey.Summarize(wps) {
		fmt.Printf("%-12s %2d waypoints  centroid (%.5f, %.5f)  spread %.0f m\n",
			s.Group, s.Count, s.Centroid.Lon, s.Centroid.Lat, s.MeanRadiusMeters)
	}

	bounds, _ := geo.BoundsOf(survey.Points(wps))
	frame := bounds.Expand(*margin)
	fmt.Println()
	fmt.Printf("bounds  (%.5f, %.5f) - (%.5f, %.5f)\n",
		bounds.MinLon, bounds.MinLat, bounds.MaxLon, bounds.MaxLat)
	fmt.Printf("framed  (%.5f, %.5f) - (%.5f, %.5f)  margin %g, %.0f m across\n",
		frame.MinLon, frame.MinLat, frame.MaxLon, frame.MaxLat, *margin, frame.GroundWidthMeters())
}
