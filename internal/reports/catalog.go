// Package reports holds the fixed catalog of canned aggregate queries over
// traffic_logs. Reports are addressed by ReportID; names are only the
// external contract with the presentation layer.
package reports

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
)

// ReportID identifies a catalog report
type ReportID int

const (
	YearlyStopsByCountry ReportID = iota + 1
	ViolationTrendsByAgeRace
	TimePeriodAnalysis
	HighSearchArrestViolations
	DemographicsByCountry
	TopArrestRateViolations
)

// ErrUnknownReport marks a name that is not in the catalog. It is
// reported as ErrQuery as well.
var ErrUnknownReport = errors.New("unknown report")

// MinSupport is the stop count a violation must exceed to be ranked
const MinSupport = 50

// TopArrestRateLimit caps the arrest-rate ranking
const TopArrestRateLimit = 5

// QuerySpec is a named, parameterless report with its result schema
type QuerySpec struct {
	ID      ReportID
	Name    string
	Columns []models.Column
}

var catalog = []QuerySpec{
	{
		ID:   YearlyStopsByCountry,
		Name: "Yearly Breakdown of Stops and Arrests by Country",
		Columns: []models.Column{
			{Name: "country_name", Type: models.ColumnString},
			{Name: "year", Type: models.ColumnInt},
			{Name: "total_stops", Type: models.ColumnInt},
			{Name: "total_arrests", Type: models.ColumnInt},
		},
	},
	{
		ID:   ViolationTrendsByAgeRace,
		Name: "Driver Violation Trends Based on Age and Race",
		Columns: []models.Column{
			{Name: "driver_race", Type: models.ColumnString},
			{Name: "driver_age", Type: models.ColumnInt},
			{Name: "violation", Type: models.ColumnString},
			{Name: "count", Type: models.ColumnInt},
		},
	},
	{
		ID:   TimePeriodAnalysis,
		Name: "Time Period Analysis of Stops (Year, Month, Hour)",
		Columns: []models.Column{
			{Name: "year", Type: models.ColumnInt},
			{Name: "month", Type: models.ColumnInt},
			{Name: "hour", Type: models.ColumnInt},
			{Name: "stop_count", Type: models.ColumnInt},
		},
	},
	{
		ID:   HighSearchArrestViolations,
		Name: "Violations with High Search and Arrest Rates",
		Columns: []models.Column{
			{Name: "violation", Type: models.ColumnString},
			{Name: "total_stops", Type: models.ColumnInt},
			{Name: "total_searches", Type: models.ColumnInt},
			{Name: "total_arrests", Type: models.ColumnInt},
		},
	},
	{
		ID:   DemographicsByCountry,
		Name: "Driver Demographics by Country",
		Columns: []models.Column{
			{Name: "country_name", Type: models.ColumnString},
			{Name: "driver_gender", Type: models.ColumnString},
			{Name: "driver_race", Type: models.ColumnString},
			{Name: "avg_age", Type: models.ColumnFloat},
			{Name: "count", Type: models.ColumnInt},
		},
	},
	{
		ID:   TopArrestRateViolations,
		Name: "Top 5 Violations with Highest Arrest Rates",
		Columns: []models.Column{
			{Name: "violation", Type: models.ColumnString},
			{Name: "total_stops", Type: models.ColumnInt},
			{Name: "total_arrests", Type: models.ColumnInt},
			{Name: "arrest_rate_percent", Type: models.ColumnFloat},
		},
	},
}

// Catalog returns the reports in presentation order
func Catalog() []QuerySpec {
	out := make([]QuerySpec, len(catalog))
	for i, spec := range catalog {
		out[i] = spec.clone()
	}
	return out
}

// Lookup resolves an external report name
func Lookup(name string) (QuerySpec, error) {
	for _, spec := range catalog {
		if spec.Name == name {
			return spec.clone(), nil
		}
	}
	return QuerySpec{}, models.QueryError(ErrUnknownReport, "report %q", name)
}

func (q QuerySpec) clone() QuerySpec {
	cols := make([]models.Column, len(q.Columns))
	copy(cols, q.Columns)
	q.Columns = cols
	return q
}

// Info describes the report for listing
func (q QuerySpec) Info() models.ReportInfo {
	cols := make([]models.Column, len(q.Columns))
	copy(cols, q.Columns)
	return models.ReportInfo{Name: q.Name, Columns: cols}
}

const arrested = "CASE WHEN is_arrested THEN 1 ELSE 0 END"
const searched = "CASE WHEN search_conducted THEN 1 ELSE 0 END"

// SQL renders the read-only SELECT of id in dialect d
func SQL(id ReportID, d database.Dialect) (string, error) {
	table := database.TrafficLogsTable
	ts := "stop_datetime"

	switch id {
	case YearlyStopsByCountry:
		return fmt.Sprintf(`SELECT
			country_name,
			%s AS year,
			COUNT(*) AS total_stops,
			SUM(%s) AS total_arrests
		FROM %s
		GROUP BY country_name, %s
		ORDER BY year DESC, total_stops DESC`,
			d.Year(ts), arrested, table, d.Year(ts)), nil

	case ViolationTrendsByAgeRace:
		return fmt.Sprintf(`SELECT
			driver_race,
			driver_age,
			violation,
			COUNT(*) AS count
		FROM %s
		WHERE driver_age IS NOT NULL
		GROUP BY driver_race, driver_age, violation
		ORDER BY count DESC`, table), nil

	case TimePeriodAnalysis:
		return fmt.Sprintf(`SELECT
			%s AS year,
			%s AS month,
			%s AS hour,
			COUNT(*) AS stop_count
		FROM %s
		GROUP BY %s, %s, %s
		ORDER BY year DESC, month, hour`,
			d.Year(ts), d.Month(ts), d.Hour(ts), table,
			d.Year(ts), d.Month(ts), d.Hour(ts)), nil

	case HighSearchArrestViolations:
		return fmt.Sprintf(`SELECT
			violation,
			COUNT(*) AS total_stops,
			SUM(%s) AS total_searches,
			SUM(%s) AS total_arrests
		FROM %s
		GROUP BY violation
		HAVING COUNT(*) > %d
		ORDER BY total_searches DESC, total_arrests DESC`,
			searched, arrested, table, MinSupport), nil

	case DemographicsByCountry:
		return fmt.Sprintf(`SELECT
			country_name,
			driver_gender,
			driver_race,
			ROUND(AVG(driver_age), 1) AS avg_age,
			COUNT(*) AS count
		FROM %s
		GROUP BY country_name, driver_gender, driver_race
		ORDER BY count DESC`, table), nil

	case TopArrestRateViolations:
		return fmt.Sprintf(`SELECT
			violation,
			COUNT(*) AS total_stops,
			SUM(%s) AS total_arrests,
			ROUND(AVG(%s) * 100, 2) AS arrest_rate_percent
		FROM %s
		GROUP BY violation
		HAVING COUNT(*) > %d
		ORDER BY arrest_rate_percent DESC
		LIMIT %d`,
			arrested, arrested, table, MinSupport, TopArrestRateLimit), nil
	}

	return "", models.QueryError(nil, "unknown report id %d", id)
}
