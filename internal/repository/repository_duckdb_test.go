//go:build cgo

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/reports"
)

func newDuckDBStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := database.New(db, database.DuckDB{}, 5*time.Second)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	// 60 Speeding stops (30 arrested, 20 searched) and 10 Signal stops
	_, err = db.Exec(`INSERT INTO traffic_logs
		SELECT
			i,
			TIMESTAMP '2022-01-01 00:00:00' + to_hours(i % 24),
			'India',
			CASE WHEN i % 2 = 0 THEN 'Male' ELSE 'Female' END,
			CAST(20 + i % 40 AS INTEGER),
			'Asian',
			CASE WHEN i < 60 THEN 'Speeding' ELSE 'Signal' END,
			i < 60 AND i % 3 = 0,
			NULL,
			i >= 60 OR i % 2 = 0,
			'0-15 Min',
			NULL,
			NULL
		FROM range(70) t(i)`)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestDuckDBReportsRoundTrip(t *testing.T) {
	store := newDuckDBStore(t)
	repo := NewReportRepository(store)

	for _, spec := range reports.Catalog() {
		result, err := repo.RunReport(context.Background(), spec)
		if err != nil {
			t.Fatalf("run %q: %v", spec.Name, err)
		}
		if result.Count == 0 {
			t.Fatalf("%q returned no rows", spec.Name)
		}
		for _, row := range result.Rows {
			for i, col := range spec.Columns {
				if row[i] == nil {
					continue
				}
				var ok bool
				switch col.Type {
				case models.ColumnInt:
					_, ok = row[i].(int64)
				case models.ColumnFloat:
					_, ok = row[i].(float64)
				default:
					_, ok = row[i].(string)
				}
				if !ok {
					t.Fatalf("%q column %s holds %T", spec.Name, col.Name, row[i])
				}
			}
		}
	}

	top := specByID(t, reports.TopArrestRateViolations)
	result, err := repo.RunReport(context.Background(), top)
	if err != nil {
		t.Fatalf("run top: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0][0] != "Speeding" || result.Rows[0][2] != int64(30) || result.Rows[0][3] != 50.0 {
		t.Fatalf("top rows = %v", result.Rows)
	}
}

func TestDuckDBLoadAllRecords(t *testing.T) {
	records, err := NewTrafficRepository(newDuckDBStore(t)).LoadAllRecords(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 70 {
		t.Fatalf("got %d records, want 70", len(records))
	}
	for _, r := range records {
		if r.ID != 0 {
			continue
		}
		if r.StopTimestamp == nil || r.DriverAge == nil || *r.DriverAge != 20 || !r.IsArrested || !r.SearchConducted {
			t.Fatalf("record 0 = %+v", r)
		}
		return
	}
	t.Fatalf("record 0 not loaded")
}
