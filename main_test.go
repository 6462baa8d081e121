package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itoshima-fieldlab/surveymap/internal/catalog"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="surveymap-test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="33.44370" lon="129.99452"><name>T1.1</name></wpt>
  <wpt lat="33.44411" lon="129.99880"><name>T1.2</name></wpt>
  <wpt lat="33.44452" lon="130.00561"><name>T2.1</name></wpt>
  <wpt lat="33.44700" lon="130.02390"><name>T3.2</name></wpt>
  <wpt lat="33.44757" lon="130.02643"><name>Harbour</name></wpt>
</gpx>`

func writeSampleGPX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.gpx")
	require.NoError(t, os.WriteFile(path, []byte(sampleGPX), 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	t.Run("requires input", func(t *testing.T) {
		_, err := parseFlags(nil)
		assert.ErrorContains(t, err, "-in is required")
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := parseFlags([]string{"-in", "survey.gpx"})
		require.NoError(t, err)
		assert.Equal(t, "survey.png", cfg.Out)
		assert.Equal(t, 0.10, cfg.Margin)
		assert.Equal(t, 7.0, cfg.Width)
		assert.Equal(t, "in", cfg.Unit)
		assert.Equal(t, 300, cfg.DPI)
		assert.True(t, cfg.Labels)
		assert.False(t, cfg.Basemap)
	})

	t.Run("rejects invalid unit", func(t *testing.T) {
		_, err := parseFlags([]string{"-in", "survey.gpx", "-unit", "pt"})
		assert.ErrorContains(t, err, "invalid unit")
	})

	t.Run("config file fills unset flags", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "style.json")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`{"dpi": 150, "margin": 0.25}`), 0644))

		cfg, err := parseFlags([]string{"-in", "survey.gpx", "-dpi", "72", "-config", cfgPath})
		require.NoError(t, err)
		// Explicit flag wins over the config file.
		assert.Equal(t, 72, cfg.DPI)
		// Unset flag takes the config value.
		assert.Equal(t, 0.25, cfg.Margin)
	})
}

func TestRunEndToEnd(t *testing.T) {
	in := writeSampleGPX(t)
	outDir := t.TempDir()
	out := filepath.Join(outDir, "survey.png")
	dbPath := filepath.Join(outDir, "catalog.db")

	cfg, err := parseFlags([]string{
		"-in", in,
		"-out", out,
		"-width", "4", "-height", "3", "-dpi", "100",
		"-html",
		"-catalog", dbPath,
	})
	require.NoError(t, err)
	require.NoError(t, run(cfg))

	// Raster map at the requested page size.
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// HTML report alongside.
	html, err := os.ReadFile(filepath.Join(outDir, "survey.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Transect 3")

	// Catalog recorded the run with classified counts.
	db, err := catalog.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].WaypointCount)
	assert.Equal(t, 2, runs[0].GroupCounts[survey.GroupTransect1])
	assert.Equal(t, 1, runs[0].GroupCounts[survey.GroupUnassigned])
}

func TestRunMissingInput(t *testing.T) {
	cfg, err := parseFlags([]string{"-in", filepath.Join(t.TempDir(), "nope.gpx")})
	require.NoError(t, err)
	assert.Error(t, run(cfg))
}
