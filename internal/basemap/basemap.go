// Package basemap renders waypoints over fetched map tiles. Tile download,
// projection and compositing are delegated to github.com/flopp/go-staticmaps;
// this package adds the per-group markers, legend and scale bar on top with
// a gg drawing context before the PNG is written.
package basemap

import (
	"fmt"
	"image"

	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/render"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

// Options controls the basemap image.
type Options struct {
	WidthPx  int
	HeightPx int
	// Provider selects the tile source; empty means OpenStreetMap.
	Provider   string
	MarkerSize float64
}

// DefaultOptions renders a 1200x800 OSM-backed image.
func DefaultOptions() Options {
	return Options{WidthPx: 1200, HeightPx: 800, MarkerSize: 14}
}

// SaveMap fetches tiles covering bounds, draws group-colored waypoint
// markers plus legend and scale bar, and writes a PNG to path. Requires
// network access for the tile fetches.
func SaveMap(wps []survey.Waypoint, bounds geo.Bounds, opts Options, path string) error {
	img, err := renderTiles(wps, bounds, opts)
	if err != nil {
		return err
	}

	dc := gg.NewContextForImage(img)
	drawLegend(dc, wps)
	drawScaleBar(dc, bounds, opts.WidthPx)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

func renderTiles(wps []survey.Waypoint, bounds geo.Bounds, opts Options) (image.Image, error) {
	if opts.WidthPx <= 0 || opts.HeightPx <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.WidthPx, opts.HeightPx)
	}
	if opts.MarkerSize <= 0 {
		opts.MarkerSize = 14
	}

	ctx := sm.NewContext()
	ctx.SetSize(opts.WidthPx, opts.HeightPx)
	if provider, ok := sm.GetTileProviders()[opts.Provider]; ok && opts.Provider != "" {
		ctx.SetTileProvider(provider)
	}

	bbox, err := sm.CreateBBox(bounds.MaxLat, bounds.MinLon, bounds.MinLat, bounds.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("basemap bbox: %w", err)
	}
	ctx.SetBoundingBox(*bbox)

	for _, wp := range wps {
		pos := s2.LatLngFromDegrees(wp.Point.Lat, wp.Point.Lon)
		ctx.AddObject(sm.NewMarker(pos, render.Palette[wp.Group], opts.MarkerSize))
	}

	img, err := ctx.Render()
	if err != nil {
		return nil, fmt.Errorf("render tiles: %w", err)
	}
	return img, nil
}

// drawLegend paints a swatch-and-label box in the top-left corner for each
// group present in wps.
func drawLegend(dc *gg.Context, wps []survey.Waypoint) {
	grouped := survey.ByGroup(wps)

	var present []survey.Group
	for _, g := range survey.Groups {
		if len(grouped[g]) > 0 {
			present = append(present, g)
		}
	}
	if len(present) == 0 {
		return
	}

	const (
		pad     = 10.0
		rowH    = 18.0
		swatchR = 5.0
		boxW    = 140.0
	)
	boxH := pad*2 + rowH*float64(len(present))

	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawRectangle(pad, pad, boxW, boxH)
	dc.Fill()

	for i, g := range present {
		y := pad*2 + rowH*float64(i) + rowH/2
		c := render.Palette[g]
		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
		dc.DrawCircle(pad*2, y, swatchR)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%s (%d)", g, len(grouped[g])), pad*2+12, y, 0, 0.35)
	}
}

// drawScaleBar paints a ground-distance bar in the lower-left corner. The
// meters-per-pixel figure is derived from the requested bounds, so it is
// approximate when tile zoom quantisation widens the rendered area slightly.
func drawScaleBar(dc *gg.Context, bounds geo.Bounds, widthPx int) {
	groundWidth := bounds.GroundWidthMeters()
	if groundWidth <= 0 || widthPx <= 0 {
		return
	}

	metersPerPx := groundWidth / float64(widthPx)
	barMeters := render.NiceScaleBarMeters(groundWidth / 4)
	barPx := barMeters / metersPerPx

	x0 := 20.0
	y0 := float64(dc.Height()) - 25.0

	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawRectangle(x0-6, y0-18, barPx+12, 30)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawLine(x0, y0, x0+barPx, y0)
	dc.Stroke()
	dc.DrawStringAnchored(render.FormatScaleBar(barMeters), x0+barPx/2, y0-8, 0.5, 0.35)
}
