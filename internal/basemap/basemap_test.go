package basemap

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

// Tile fetching needs network, so these tests cover only the local pieces:
// option validation and the overlay drawing.

func TestSaveMapRejectsInvalidSize(t *testing.T) {
	wps := []survey.Waypoint{{Name: "T1.1", Group: survey.GroupTransect1}}
	b := geo.Bounds{MinLon: 129.99, MinLat: 33.44, MaxLon: 130.03, MaxLat: 33.45}

	opts := Options{WidthPx: 0, HeightPx: 400}
	err := SaveMap(wps, b, opts, filepath.Join(t.TempDir(), "map.png"))
	assert.ErrorContains(t, err, "invalid image size")
}

func TestDrawLegendMarksPresentGroups(t *testing.T) {
	dc := gg.NewContext(300, 300)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	wps := []survey.Waypoint{
		{Name: "T1.1", Group: survey.GroupTransect1},
		{Name: "T2.1", Group: survey.GroupTransect2},
	}
	drawLegend(dc, wps)

	// The swatch for the first legend row must be painted in a non-white,
	// non-background color.
	img := dc.Image()
	found := false
	for y := 10; y < 80 && !found; y++ {
		for x := 10; x < 60 && !found; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != g || g != b { // any chroma means a swatch landed
				found = true
			}
		}
	}
	assert.True(t, found, "legend swatches not drawn")
}

func TestDrawLegendEmptyIsNoop(t *testing.T) {
	dc := gg.NewContext(100, 100)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawLegend(dc, nil)

	img := dc.Image().(*image.RGBA)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 || img.Pix[i+1] != 255 || img.Pix[i+2] != 255 {
			t.Fatalf("legend drew on an empty survey at pix offset %d", i)
		}
	}
}

func TestDrawScaleBarPaintsBar(t *testing.T) {
	dc := gg.NewContext(400, 300)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	b := geo.Bounds{MinLon: 129.99452, MinLat: 33.44370, MaxLon: 130.02643, MaxLat: 33.44757}
	drawScaleBar(dc, b, 400)

	// The bar is a black horizontal line near the bottom-left.
	img := dc.Image()
	found := false
	for y := 260; y < 290 && !found; y++ {
		for x := 15; x < 120 && !found; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && bl == 0 {
				found = true
			}
		}
	}
	assert.True(t, found, "scale bar not drawn")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 1200, opts.WidthPx)
	assert.Equal(t, 800, opts.HeightPx)
	assert.Greater(t, opts.MarkerSize, 0.0)
}
