package reports

import (
	"errors"
	"strings"
	"testing"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
)

func TestCatalogNames(t *testing.T) {
	want := []string{
		"Yearly Breakdown of Stops and Arrests by Country",
		"Driver Violation Trends Based on Age and Race",
		"Time Period Analysis of Stops (Year, Month, Hour)",
		"Violations with High Search and Arrest Rates",
		"Driver Demographics by Country",
		"Top 5 Violations with Highest Arrest Rates",
	}

	got := Catalog()
	if len(got) != len(want) {
		t.Fatalf("catalog has %d reports, want %d", len(got), len(want))
	}
	for i, spec := range got {
		if spec.Name != want[i] {
			t.Fatalf("report %d = %q, want %q", i, spec.Name, want[i])
		}
		found, err := Lookup(spec.Name)
		if err != nil || found.ID != spec.ID {
			t.Fatalf("lookup %q: %+v, %v", spec.Name, found, err)
		}
		if len(spec.Columns) == 0 {
			t.Fatalf("report %q has no result schema", spec.Name)
		}
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	got := Catalog()
	got[0].Name = "changed"
	got[0].Columns[0].Name = "changed too"

	if again := Catalog()[0]; again.Name == "changed" || again.Columns[0].Name == "changed too" {
		t.Fatalf("Catalog exposes its backing arrays")
	}
	info := Catalog()[1].Info()
	info.Columns[0].Name = "x"
	if Catalog()[1].Columns[0].Name == "x" {
		t.Fatalf("Info exposes catalog columns")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("Yearly breakdown")
	if !errors.Is(err, models.ErrQuery) || !errors.Is(err, ErrUnknownReport) {
		t.Fatalf("err = %v, want ErrQuery and ErrUnknownReport", err)
	}
	if _, err := SQL(ReportID(0), database.MySQL{}); !errors.Is(err, models.ErrQuery) {
		t.Fatalf("err = %v, want ErrQuery", err)
	}
}

func TestSQLRendersEveryReport(t *testing.T) {
	dialects := []database.Dialect{database.MySQL{}, database.SQLite{}, database.Postgres{}, database.DuckDB{}}
	for _, d := range dialects {
		for _, spec := range Catalog() {
			q, err := SQL(spec.ID, d)
			if err != nil {
				t.Fatalf("%s %q: %v", d.Name(), spec.Name, err)
			}
			upper := strings.ToUpper(q)
			if !strings.HasPrefix(strings.TrimSpace(upper), "SELECT") {
				t.Fatalf("%s %q is not a SELECT", d.Name(), spec.Name)
			}
			for _, verb := range []string{"INSERT ", "UPDATE ", "DELETE ", "DROP ", "ALTER "} {
				if strings.Contains(upper, verb) {
					t.Fatalf("%s %q writes: %s", d.Name(), spec.Name, q)
				}
			}
			if !strings.Contains(q, "FROM traffic_logs") {
				t.Fatalf("%s %q does not read traffic_logs", d.Name(), spec.Name)
			}
		}
	}
}

func TestMinimumSupportReports(t *testing.T) {
	for _, id := range []ReportID{HighSearchArrestViolations, TopArrestRateViolations} {
		q, err := SQL(id, database.MySQL{})
		if err != nil {
			t.Fatalf("sql: %v", err)
		}
		if !strings.Contains(q, "HAVING COUNT(*) > 50") {
			t.Fatalf("report %d lacks minimum support: %s", id, q)
		}
	}

	q, _ := SQL(TopArrestRateViolations, database.MySQL{})
	if !strings.Contains(q, "LIMIT 5") || !strings.Contains(q, "ORDER BY arrest_rate_percent DESC") {
		t.Fatalf("top arrest rate ranking missing: %s", q)
	}
}

func TestTimePeriodUsesDialect(t *testing.T) {
	q, _ := SQL(TimePeriodAnalysis, database.MySQL{})
	for _, part := range []string{"YEAR(stop_datetime) AS year", "MONTH(stop_datetime) AS month", "HOUR(stop_datetime) AS hour"} {
		if !strings.Contains(q, part) {
			t.Fatalf("mysql time report lacks %q: %s", part, q)
		}
	}

	q, _ = SQL(TimePeriodAnalysis, database.SQLite{})
	if !strings.Contains(q, "strftime('%H', stop_datetime)") {
		t.Fatalf("sqlite time report: %s", q)
	}
}
