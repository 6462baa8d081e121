// Package render draws the survey map figure: one scatter series per
// transect group over longitude/latitude axes, with a legend and a ground
// scale bar, exported as a PNG at a caller-chosen page size and DPI.
package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
	"github.com/itoshima-fieldlab/surveymap/internal/units"
)

// Options controls the page geometry and decoration of the exported map.
type Options struct {
	Width  float64 // page width in Unit
	Height float64 // page height in Unit
	Unit   string  // one of units.ValidUnits
	DPI    int     // raster resolution
	Title  string
	// LabelPoints draws each waypoint's name next to its marker.
	LabelPoints bool
}

// DefaultOptions matches the layout of the original field-survey figure:
// a 7x5 inch page at 300 dpi.
func DefaultOptions() Options {
	return Options{
		Width:       7,
		Height:      5,
		Unit:        units.Inch,
		DPI:         300,
		Title:       "Survey waypoints",
		LabelPoints: true,
	}
}

// Palette assigns each transect group a marker color, shared by the plot,
// basemap and HTML report renderers.
var Palette = map[survey.Group]color.RGBA{
	survey.GroupTransect1:  {R: 31, G: 119, B: 180, A: 255},
	survey.GroupTransect2:  {R: 255, G: 127, B: 14, A: 255},
	survey.GroupTransect3:  {R: 44, G: 160, B: 44, A: 255},
	survey.GroupUnassigned: {R: 127, G: 127, B: 127, A: 255},
}

// groupGlyphs varies marker shape alongside color so groups stay
// distinguishable in grayscale print.
var groupGlyphs = map[survey.Group]draw.GlyphDrawer{
	survey.GroupTransect1:  draw.CircleGlyph{},
	survey.GroupTransect2:  draw.BoxGlyph{},
	survey.GroupTransect3:  draw.PyramidGlyph{},
	survey.GroupUnassigned: draw.CrossGlyph{},
}

// SaveMap renders waypoints framed by bounds and writes a PNG to path.
// bounds should already carry the display margin (geo.Bounds.Expand) so no
// marker is clipped at the image edge.
func SaveMap(wps []survey.Waypoint, bounds geo.Bounds, opts Options, path string) error {
	if !units.IsValid(opts.Unit) {
		return fmt.Errorf("invalid page unit %q (valid: %s)", opts.Unit, units.GetValidUnitsString())
	}
	if opts.DPI <= 0 {
		opts.DPI = 300
	}

	p, err := buildPlot(wps, bounds, opts)
	if err != nil {
		return err
	}

	widthIn := units.ToInches(opts.Width, opts.Unit, opts.DPI)
	heightIn := units.ToInches(opts.Height, opts.Unit, opts.DPI)
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

func buildPlot(wps []survey.Waypoint, bounds geo.Bounds, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Longitude (°E)"
	p.Y.Label.Text = "Latitude (°N)"
	p.X.Min, p.X.Max = bounds.MinLon, bounds.MaxLon
	p.Y.Min, p.Y.Max = bounds.MinLat, bounds.MaxLat

	grouped := survey.ByGroup(wps)
	for _, g := range survey.Groups {
		members := grouped[g]
		if len(members) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(members))
		names := make([]string, len(members))
		for i, wp := range members {
			xys[i] = plotter.XY{X: wp.Point.Lon, Y: wp.Point.Lat}
			names[i] = wp.Name
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("scatter for %s: %w", g, err)
		}
		scatter.GlyphStyle.Color = Palette[g]
		scatter.GlyphStyle.Shape = groupGlyphs[g]
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add(string(g), scatter)

		if opts.LabelPoints {
			labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
			if err != nil {
				return nil, fmt.Errorf("labels for %s: %w", g, err)
			}
			for i := range labels.TextStyle {
				labels.TextStyle[i].Font.Size = vg.Points(7)
				labels.TextStyle[i].XAlign = draw.XLeft
				labels.TextStyle[i].YAlign = draw.YBottom
			}
			p.Add(labels)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Points(4)

	if err := addScaleBar(p, bounds); err != nil {
		return nil, err
	}
	return p, nil
}

// addScaleBar draws a horizontal ground-distance bar in the lower-left
// corner of the data area, sized to a round number of meters.
func addScaleBar(p *plot.Plot, bounds geo.Bounds) error {
	groundWidth := bounds.GroundWidthMeters()
	if groundWidth <= 0 {
		return nil
	}

	barMeters := NiceScaleBarMeters(groundWidth / 4)
	barLonSpan := barMeters / geo.MetersPerLonDegree(bounds.Center().Lat)

	x0 := bounds.MinLon + 0.05*bounds.Width()
	y0 := bounds.MinLat + 0.06*bounds.Height()

	line, err := plotter.NewLine(plotter.XYs{
		{X: x0, Y: y0},
		{X: x0 + barLonSpan, Y: y0},
	})
	if err != nil {
		return fmt.Errorf("scale bar: %w", err)
	}
	line.Color = color.Black
	line.Width = vg.Points(2)
	p.Add(line)

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x0 + barLonSpan/2, Y: y0}},
		Labels: []string{FormatScaleBar(barMeters)},
	})
	if err != nil {
		return fmt.Errorf("scale bar label: %w", err)
	}
	label.TextStyle[0].Font.Size = vg.Points(8)
	label.TextStyle[0].XAlign = draw.XCenter
	label.TextStyle[0].YAlign = draw.YBottom
	p.Add(label)
	return nil
}

// NiceScaleBarMeters rounds target down to the nearest 1, 2 or 5 times a
// power of ten, the conventional scale-bar lengths.
func NiceScaleBarMeters(target float64) float64 {
	if target <= 0 {
		return 0
	}
	magnitude := 1.0
	for magnitude*10 <= target {
		magnitude *= 10
	}
	for magnitude > target {
		magnitude /= 10
	}
	switch {
	case magnitude*5 <= target:
		return magnitude * 5
	case magnitude*2 <= target:
		return magnitude * 2
	default:
		return magnitude
	}
}

// FormatScaleBar renders a bar length for display, switching to kilometers
// at 1000 m.
func FormatScaleBar(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%g km", meters/1000)
	}
	return fmt.Sprintf("%g m", meters)
}
