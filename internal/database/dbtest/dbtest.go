// Package dbtest opens throwaway SQLite stores seeded with stop records.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
)

// NewStore opens a SQLite store in a temp dir with traffic_logs created
func NewStore(t testing.TB) *database.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "securecheck_test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := database.New(db, database.SQLite{}, 5*time.Second)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

// Insert writes records to traffic_logs, keeping their IDs
func Insert(t testing.TB, store *database.Store, records ...models.StopRecord) {
	t.Helper()

	const stmt = `INSERT INTO traffic_logs (
		id, stop_datetime, country_name, driver_gender, driver_age, driver_race,
		violation, search_conducted, search_type, is_arrested, stop_duration,
		drugs_related_stop, vehicle_number
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, r := range records {
		var ts any
		if r.StopTimestamp != nil {
			ts = r.StopTimestamp.Format("2006-01-02 15:04:05")
		}
		var ageVal any
		if r.DriverAge != nil {
			ageVal = *r.DriverAge
		}
		var drugs any
		if r.DrugsRelatedStop != nil {
			drugs = boolInt(*r.DrugsRelatedStop)
		}

		_, err := store.DB().Exec(stmt,
			r.ID, ts, str(r.CountryName), str(r.DriverGender), ageVal, str(r.DriverRace),
			str(r.Violation), boolInt(r.SearchConducted), str(r.SearchType), boolInt(r.IsArrested),
			str(r.StopDuration), drugs, str(r.VehicleNumber),
		)
		if err != nil {
			t.Fatalf("insert record %d: %v", r.ID, err)
		}
	}
}

// Record builds a record with the fields reports group on
func Record(id int64, ts time.Time, country, gender, race, violation string, age int, searched, arrested bool) models.StopRecord {
	return models.StopRecord{
		ID:              id,
		StopTimestamp:   &ts,
		CountryName:     &country,
		DriverGender:    &gender,
		DriverRace:      &race,
		Violation:       &violation,
		DriverAge:       &age,
		SearchConducted: searched,
		IsArrested:      arrested,
	}
}

func str(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
