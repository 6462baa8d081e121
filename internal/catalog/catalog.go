// Package catalog keeps a sqlite log of render runs so repeated surveys of
// the same site can be compared later without re-reading the GPX files.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/itoshima-fieldlab/surveymap/internal/geo"
	"github.com/itoshima-fieldlab/surveymap/internal/survey"
)

type DB struct {
	*sql.DB
}

// Run records one load-classify-render pass.
type Run struct {
	ID            string
	SourceFile    string
	OutputFile    string
	WaypointCount int
	GroupCounts   map[survey.Group]int
	Bounds        geo.Bounds
	CreatedAt     time.Time
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source_file TEXT,
			output_file TEXT,
			waypoint_count INTEGER,
			transect1_count INTEGER,
			transect2_count INTEGER,
			transect3_count INTEGER,
			unassigned_count INTEGER,
			min_lon DOUBLE,
			min_lat DOUBLE,
			max_lon DOUBLE,
			max_lat DOUBLE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS waypoints (
			run_id TEXT,
			name TEXT,
			lon DOUBLE,
			lat DOUBLE,
			description TEXT,
			grp TEXT,
			recorded_at TIMESTAMP,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// RecordRun inserts a run and its waypoints. A run ID is assigned when the
// caller left it empty, and returned either way.
func (db *DB) RecordRun(run Run, wps []survey.Waypoint) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	counts := make(map[survey.Group]int)
	for _, wp := range wps {
		counts[wp.Group]++
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin run insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, source_file, output_file, waypoint_count,
			transect1_count, transect2_count, transect3_count, unassigned_count,
			min_lon, min_lat, max_lon, max_lat
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceFile, run.OutputFile, len(wps),
		counts[survey.GroupTransect1], counts[survey.GroupTransect2],
		counts[survey.GroupTransect3], counts[survey.GroupUnassigned],
		run.Bounds.MinLon, run.Bounds.MinLat, run.Bounds.MaxLon, run.Bounds.MaxLat,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, wp := range wps {
		_, err = tx.Exec(`
			INSERT INTO waypoints (run_id, name, lon, lat, description, grp, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, wp.Name, wp.Point.Lon, wp.Point.Lat, wp.Description, string(wp.Group), wp.Time,
		)
		if err != nil {
			return "", fmt.Errorf("insert waypoint %s: %w", wp.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run insert: %w", err)
	}
	return run.ID, nil
}

// Runs returns recorded runs, most recent first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, source_file, output_file, waypoint_count,
		       transect1_count, transect2_count, transect3_count, unassigned_count,
		       min_lon, min_lat, max_lon, max_lat, created_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var t1, t2, t3, un int
		if err := rows.Scan(
			&r.ID, &r.SourceFile, &r.OutputFile, &r.WaypointCount,
			&t1, &t2, &t3, &un,
			&r.Bounds.MinLon, &r.Bounds.MinLat, &r.Bounds.MaxLon, &r.Bounds.MaxLat,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		r.GroupCounts = map[survey.Group]int{
			survey.GroupTransect1:  t1,
			survey.GroupTransect2:  t2,
			survey.GroupTransect3:  t3,
			survey.GroupUnassigned: un,
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// WaypointsForRun returns the waypoints recorded with a run, in insert order.
func (db *DB) WaypointsForRun(runID string) ([]survey.Waypoint, error) {
	rows, err := db.Query(`
		SELECT name, lon, lat, description, grp, recorded_at
		FROM waypoints WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wps []survey.Waypoint
	for rows.Next() {
		var wp survey.Waypoint
		var group string
		if err := rows.Scan(&wp.Name, &wp.Point.Lon, &wp.Point.Lat, &wp.Description, &group, &wp.Time); err != nil {
			return nil, err
		}
		wp.Group = survey.Group(group)
		wps = append(wps, wp)
	}
	return wps, rows.Err()
}
