// surveymap renders the waypoints of a field-survey GPX file as a static
// map image, grouped by the transect naming convention in waypoint names
// ("T<transect>.<plot>"). One batch run: load, classify, frame, render.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/itoshima-fieldlab/surveymap/internal/basemap"
	"github.com/itoshima-fieldlab/surveymap/internal/catalog"
	"github.com/itoshima-fieldlab/surveymap/internal/config"
	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/gpx"
	"github.com/itoshima-fieldlab/surveymap/internal/render"
	"github.com/itoshima-fieldlab/surveymap/internal/report"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
	"github.com/itoshima-fieldlab/surveymap/internal/units"
)

// Config holds the resolved options for one render run.
type Config struct {
	In  string
	Out string

	Margin float64
	Width  float64
	Height float64
	Unit   string
	DPI    int
	Title  string
	Labels bool

	Basemap      bool
	TileProvider string
	HTML         bool
	CatalogPath  string
}

// parseFlags resolves flags and the optional JSON style config. Flags given
// explicitly on the command line win over config file values, which win
// over defaults.
func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("surveymap", flag.ContinueOnError)

	in := fs.String("in", "", "input GPX file (required)")
	out := fs.String("out", "", "output PNG path (default: input path with .png)")
	margin := fs.Float64("margin", config.DefaultMargin, "bounding-box expansion fraction")
	width := fs.Float64("width", config.DefaultWidth, "page width")
	height := fs.Float64("height", config.DefaultHeight, "page height")
	unit := fs.String("unit", units.Inch, "page unit: "+units.GetValidUnitsString())
	dpi := fs.Int("dpi", config.DefaultDPI, "raster resolution in dots per inch")
	title := fs.String("title", config.DefaultTitle, "map title")
	labels := fs.Bool("labels", true, "label waypoints with their names")
	useBasemap := fs.Bool("basemap", false, "also render a tile-backed map (needs network)")
	html := fs.Bool("html", false, "also write an interactive HTML report")
	catalogPath := fs.String("catalog", "", "sqlite catalog to record this run in (optional)")
	configPath := fs.String("config", "", "JSON style config (optional)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	style := config.EmptyStyleConfig()
	if *configPath != "" {
		loaded, err := config.LoadStyleConfig(*configPath)
		if err != nil {
			return nil, err
		}
		style = loaded
	}

	cfg := &Config{
		In:           *in,
		Out:          *out,
		Margin:       *margin,
		Width:        *width,
		Height:       *height,
		Unit:         *unit,
		DPI:          *dpi,
		Title:        *title,
		Labels:       *labels,
		Basemap:      *useBasemap,
		TileProvider: style.GetTileProvider(),
		HTML:         *html,
		CatalogPath:  *catalogPath,
	}

	// Config file fills in whatever the command line left at its default.
	if !visited["margin"] {
		cfg.Margin = style.GetMargin()
	}
	if !visited["width"] {
		cfg.Width = style.GetWidth()
	}
	if !visited["height"] {
		cfg.Height = style.GetHeight()
	}
	if !visited["unit"] {
		cfg.Unit = style.GetUnit()
	}
	if !visited["dpi"] {
		cfg.DPI = style.GetDPI()
	}
	if !visited["title"] {
		cfg.Title = style.GetTitle()
	}
	if !visited["labels"] {
		cfg.Labels = style.GetLabelPoints()
	}

	if cfg.In == "" {
		return nil, fmt.Errorf("-in is required")
	}
	if !units.IsValid(cfg.Unit) {
		return nil, fmt.Errorf("invalid unit %q (valid: %s)", cfg.Unit, units.GetValidUnitsString())
	}
	if cfg.Out == "" {
		cfg.Out = strings.TrimSuffix(cfg.In, filepath.Ext(cfg.In)) + ".png"
	}
	return cfg, nil
}

func run(cfg *Config) error {
	wps, err := gpx.Load(cfg.In)
	if err != nil {
		return err
	}
	survey.AssignGroups(wps)
	log.Printf("Loaded %d waypoints from %s", len(wps), cfg.In)

	for _, s := range survey.Summarize(wps) {
		log.Printf("%s: %d waypoints, centroid (%.5f, %.5f), spread %.0f m",
			s.Group, s.Count, s.Centroid.Lon, s.Centroid.Lat, s.MeanRadiusMeters)
	}

	bounds, ok := geo.BoundsOf(survey.Points(wps))
	if !ok {
		return fmt.Errorf("no waypoint positions to frame")
	}
	frame := bounds.Expand(cfg.Margin)

	opts := render.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Unit:        cfg.Unit,
		DPI:         cfg.DPI,
		Title:       cfg.Title,
		LabelPoints: cfg.Labels,
	}
	if err := render.SaveMap(wps, frame, opts, cfg.Out); err != nil {
		return err
	}
	log.Printf("Wrote map to %s (%gx%g %s at %d dpi)", cfg.Out, cfg.Width, cfg.Height, cfg.Unit, cfg.DPI)

	if cfg.HTML {
		htmlPath := strings.TrimSuffix(cfg.Out, filepath.Ext(cfg.Out)) + ".html"
		if err := report.Write(wps, frame, cfg.Title, htmlPath); err != nil {
			return err
		}
		log.Printf("Wrote report to %s", htmlPath)
	}

	if cfg.Basemap {
		bmPath := strings.TrimSuffix(cfg.Out, filepath.Ext(cfg.Out)) + "_basemap.png"
		bmOpts := basemap.DefaultOptions()
		bmOpts.WidthPx = units.ToPixels(cfg.Width, cfg.Unit, cfg.DPI)
		bmOpts.HeightPx = units.ToPixels(cfg.Height, cfg.Unit, cfg.DPI)
		bmOpts.Provider = cfg.TileProvider
		if err := basemap.SaveMap(wps, frame, bmOpts, bmPath); err != nil {
			return err
		}
		log.Printf("Wrote basemap to %s", bmPath)
	}

	if cfg.CatalogPath != "" {
		db, err := catalog.NewDB(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer db.Close()

		runID, err := db.RecordRun(catalog.Run{
			SourceFile: cfg.In,
			OutputFile: cfg.Out,
			Bounds:     bounds,
		}, wps)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.Printf("Recorded run %s in %s", runID, cfg.CatalogPath)
	}

	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("surveymap: %v", err)
	}
}
