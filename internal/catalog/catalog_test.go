package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRunAndReadBack(t *testing.T) {
	db := openTestDB(t)

	wps := []survey.Waypoint{
		{
			Name:        "T1.1",
			Point:       geo.Point{Lon: 129.99452, Lat: 33.44370},
			Description: "dune grass plot",
			Time:        time.Date(2026, 4, 12, 2, 15, 0, 0, time.UTC),
			Group:       survey.GroupTransect1,
		},
		{
			Name:  "T3.2",
			Point: geo.Point{Lon: 130.02390, Lat: 33.44700},
			Group: survey.GroupTransect3,
		},
		{
			Name:  "Harbour",
			Point: geo.Point{Lon: 130.02643, Lat: 33.44757},
			Group: survey.GroupUnassigned,
		},
	}
	bounds, _ := geo.BoundsOf(survey.Points(wps))

	id, err := db.RecordRun(Run{
		SourceFile: "survey.gpx",
		OutputFile: "survey.png",
		Bounds:     bounds,
	}, wps)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "survey.gpx", run.SourceFile)
	assert.Equal(t, "survey.png", run.OutputFile)
	assert.Equal(t, 3, run.WaypointCount)
	assert.Equal(t, 1, run.GroupCounts[survey.GroupTransect1])
	assert.Equal(t, 0, run.GroupCounts[survey.GroupTransect2])
	assert.Equal(t, 1, run.GroupCounts[survey.GroupTransect3])
	assert.Equal(t, 1, run.GroupCounts[survey.GroupUnassigned])
	assert.InDelta(t, bounds.MinLon, run.Bounds.MinLon, 1e-9)
	assert.InDelta(t, bounds.MaxLat, run.Bounds.MaxLat, 1e-9)
	assert.False(t, run.CreatedAt.IsZero())

	back, err := db.WaypointsForRun(id)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, "T1.1", back[0].Name)
	assert.Equal(t, survey.GroupTransect1, back[0].Group)
	assert.Equal(t, "dune grass plot", back[0].Description)
	assert.InDelta(t, 129.99452, back[0].Point.Lon, 1e-9)
}

func TestRecordRunKeepsCallerID(t *testing.T) {
	db := openTestDB(t)

	id, err := db.RecordRun(Run{ID: "fixed-id", SourceFile: "a.gpx"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fixed-id", runs[0].ID)
	assert.Equal(t, 0, runs[0].WaypointCount)
}

func TestWaypointsForUnknownRun(t *testing.T) {
	db := openTestDB(t)
	wps, err := db.WaypointsForRun("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, wps)
}
