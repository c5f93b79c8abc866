package database

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/config"
)

// Dialect renders the store-specific SQL the reports need
type Dialect interface {
	// Name is the config driver name
	Name() string
	// DriverName is the database/sql driver name
	DriverName() string
	// Year, Month and Hour extract integer date parts from a datetime column
	Year(col string) string
	Month(col string) string
	Hour(col string) string
	// DDL types for bootstrapping traffic_logs
	IDType() string
	DatetimeType() string
	BoolType() string
}

// DialectFor returns the dialect of a config driver name
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return MySQL{}, nil
	case config.DriverSQLite:
		return SQLite{}, nil
	case config.DriverPostgres:
		return Postgres{}, nil
	case config.DriverDuckDB:
		return DuckDB{}, nil
	}
	return nil, errors.Errorf("unsupported db driver %q", driver)
}

// MySQL dialect, the production store of the check posts
type MySQL struct{}

func (MySQL) Name() string            { return config.DriverMySQL }
func (MySQL) DriverName() string      { return "mysql" }
func (MySQL) Year(col string) string  { return fmt.Sprintf("YEAR(%s)", col) }
func (MySQL) Month(col string) string { return fmt.Sprintf("MONTH(%s)", col) }
func (MySQL) Hour(col string) string  { return fmt.Sprintf("HOUR(%s)", col) }
func (MySQL) IDType() string          { return "BIGINT AUTO_INCREMENT PRIMARY KEY" }
func (MySQL) DatetimeType() string    { return "DATETIME" }
func (MySQL) BoolType() string        { return "TINYINT(1)" }

// SQLite dialect
type SQLite struct{}

func (SQLite) Name() string       { return config.DriverSQLite }
func (SQLite) DriverName() string { return "sqlite" }
func (SQLite) Year(col string) string {
	return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", col)
}
func (SQLite) Month(col string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", col)
}
func (SQLite) Hour(col string) string {
	return fmt.Sprintf("CAST(strftime('%%H', %s) AS INTEGER)", col)
}
func (SQLite) IDType() string       { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (SQLite) DatetimeType() string { return "DATETIME" }
func (SQLite) BoolType() string     { return "BOOLEAN" }

// Postgres dialect, served through the pgx stdlib driver
type Postgres struct{}

func (Postgres) Name() string       { return config.DriverPostgres }
func (Postgres) DriverName() string { return "pgx" }
func (Postgres) Year(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", col)
}
func (Postgres) Month(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", col)
}
func (Postgres) Hour(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(HOUR FROM %s) AS INTEGER)", col)
}
func (Postgres) IDType() string       { return "BIGSERIAL PRIMARY KEY" }
func (Postgres) DatetimeType() string { return "TIMESTAMP" }
func (Postgres) BoolType() string     { return "BOOLEAN" }

// DuckDB dialect for local analytics over exported logs
type DuckDB struct{}

func (DuckDB) Name() string            { return config.DriverDuckDB }
func (DuckDB) DriverName() string      { return "duckdb" }
func (DuckDB) Year(col string) string  { return fmt.Sprintf("year(%s)", col) }
func (DuckDB) Month(col string) string { return fmt.Sprintf("month(%s)", col) }
func (DuckDB) Hour(col string) string  { return fmt.Sprintf("hour(%s)", col) }
func (DuckDB) IDType() string          { return "BIGINT PRIMARY KEY" }
func (DuckDB) DatetimeType() string    { return "TIMESTAMP" }
func (DuckDB) BoolType() string        { return "BOOLEAN" }
