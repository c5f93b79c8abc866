package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/reports"
)

// ReportRepository runs catalog reports against traffic_logs
type ReportRepository struct {
	store *database.Store
}

// NewReportRepository creates a new report repository
func NewReportRepository(store *database.Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// RunReport executes the report and returns its full, typed result set
func (r *ReportRepository) RunReport(ctx context.Context, spec reports.QuerySpec) (*models.ReportResult, error) {
	query, err := reports.SQL(spec.ID, r.store.Dialect())
	if err != nil {
		return nil, err
	}

	result := &models.ReportResult{
		Report:  spec.Name,
		Columns: spec.Columns,
		Rows:    make([][]any, 0),
	}

	err = r.store.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			if database.IsConnectionFailure(ctx, err) {
				return err
			}
			return models.QueryError(err, "failed to run report %q", spec.Name)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return models.QueryError(err, "failed to get columns of report %q", spec.Name)
		}
		if len(cols) != len(spec.Columns) {
			return models.QueryError(nil, "report %q returned %d columns, want %d",
				spec.Name, len(cols), len(spec.Columns))
		}

		for rows.Next() {
			vals, err := scanRow(rows, len(cols))
			if err != nil {
				return models.QueryError(err, "failed to scan report %q", spec.Name)
			}

			row, err := typeRow(vals, spec.Columns)
			if err != nil {
				return models.QueryError(err, "failed to type report %q row %d", spec.Name, len(result.Rows)+1)
			}
			result.Rows = append(result.Rows, row)
		}

		if err := rows.Err(); err != nil {
			if database.IsConnectionFailure(ctx, err) {
				return err
			}
			return models.QueryError(err, "error iterating report %q", spec.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Count = len(result.Rows)
	return result, nil
}

// typeRow converts raw driver values to the declared column types
func typeRow(vals []any, cols []models.Column) ([]any, error) {
	row := make([]any, len(cols))
	for i, col := range cols {
		switch col.Type {
		case models.ColumnString:
			s, err := asString(vals[i])
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", col.Name)
			}
			if s != nil {
				row[i] = *s
			}
		case models.ColumnInt:
			n, err := asInt(vals[i])
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", col.Name)
			}
			if n != nil {
				row[i] = *n
			}
		case models.ColumnFloat:
			f, err := asFloat(vals[i])
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", col.Name)
			}
			if f != nil {
				row[i] = *f
			}
		default:
			return nil, errors.Errorf("column %s has unknown type %q", col.Name, col.Type)
		}
	}
	return row, nil
}
