package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/models"
)

// TrafficRepository reads stop records from traffic_logs
type TrafficRepository struct {
	store *database.Store
}

// NewTrafficRepository creates a new traffic repository
func NewTrafficRepository(store *database.Store) *TrafficRepository {
	return &TrafficRepository{store: store}
}

// LoadAllRecords retrieves every row of traffic_logs in store order
func (r *TrafficRepository) LoadAllRecords(ctx context.Context) ([]models.StopRecord, error) {
	var records []models.StopRecord

	err := r.store.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		query := fmt.Sprintf("SELECT * FROM %s", database.TrafficLogsTable)

		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			if database.IsConnectionFailure(ctx, err) {
				return err
			}
			// the store answered, so the table itself is unusable
			return models.SchemaError(err, "failed to read %s", database.TrafficLogsTable)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return models.QueryError(err, "failed to get columns of %s", database.TrafficLogsTable)
		}

		index, err := columnIndex(cols)
		if err != nil {
			return err
		}

		records = make([]models.StopRecord, 0)
		for rows.Next() {
			vals, err := scanRow(rows, len(cols))
			if err != nil {
				return models.QueryError(err, "failed to scan %s row", database.TrafficLogsTable)
			}

			rec, err := mapRecord(vals, index)
			if err != nil {
				return models.QueryError(err, "failed to map %s row %d", database.TrafficLogsTable, len(records)+1)
			}
			records = append(records, rec)
		}

		if err := rows.Err(); err != nil {
			if database.IsConnectionFailure(ctx, err) {
				return err
			}
			return models.QueryError(err, "error iterating %s rows", database.TrafficLogsTable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// columnIndex maps field names to result positions and checks required columns
func columnIndex(cols []string) (map[models.Field]int, error) {
	index := make(map[models.Field]int, len(cols))
	for i, c := range cols {
		index[models.Field(strings.ToLower(c))] = i
	}

	var missing []string
	for _, f := range models.RequiredFields {
		if _, ok := index[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return nil, models.SchemaError(nil, "%s is missing columns %s",
			database.TrafficLogsTable, strings.Join(missing, ", "))
	}
	return index, nil
}

func mapRecord(vals []any, index map[models.Field]int) (rec models.StopRecord, err error) {
	get := func(f models.Field) any {
		if i, ok := index[f]; ok {
			return vals[i]
		}
		return nil
	}
	fail := func(f models.Field, cause error) error {
		return errors.Wrapf(cause, "column %s", f)
	}

	id, err := asInt(get(models.FieldID))
	if err != nil {
		return rec, fail(models.FieldID, err)
	}
	if id == nil {
		return rec, errors.New("null id")
	}
	rec.ID = *id

	if rec.StopTimestamp, err = asTime(get(models.FieldStopDatetime)); err != nil {
		return rec, fail(models.FieldStopDatetime, err)
	}

	strFields := []struct {
		field models.Field
		dest  **string
	}{
		{models.FieldCountryName, &rec.CountryName},
		{models.FieldDriverGender, &rec.DriverGender},
		{models.FieldDriverRace, &rec.DriverRace},
		{models.FieldViolation, &rec.Violation},
		{models.FieldSearchType, &rec.SearchType},
		{models.FieldStopDuration, &rec.StopDuration},
		{models.FieldVehicleNumber, &rec.VehicleNumber},
	}
	for _, sf := range strFields {
		if *sf.dest, err = asString(get(sf.field)); err != nil {
			return rec, fail(sf.field, err)
		}
	}

	age, err := asInt(get(models.FieldDriverAge))
	if err != nil {
		return rec, fail(models.FieldDriverAge, err)
	}
	if age != nil {
		a := int(*age)
		rec.DriverAge = &a
	}

	searched, err := asBool(get(models.FieldSearchConducted))
	if err != nil {
		return rec, fail(models.FieldSearchConducted, err)
	}
	rec.SearchConducted = searched != nil && *searched

	arrested, err := asBool(get(models.FieldIsArrested))
	if err != nil {
		return rec, fail(models.FieldIsArrested, err)
	}
	rec.IsArrested = arrested != nil && *arrested

	if rec.DrugsRelatedStop, err = asBool(get(models.FieldDrugsRelatedStop)); err != nil {
		return rec, fail(models.FieldDrugsRelatedStop, err)
	}

	return rec, nil
}
