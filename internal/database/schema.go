package database

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/errors"
)

// TrafficLogsTable is the externally owned table of stop records
const TrafficLogsTable = "traffic_logs"

// trafficLogsDDL renders CREATE TABLE for traffic_logs in dialect d
func trafficLogsDDL(d Dialect) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id %s,
		stop_datetime %s,
		country_name VARCHAR(100),
		driver_gender VARCHAR(10),
		driver_age INTEGER,
		driver_race VARCHAR(50),
		violation VARCHAR(100),
		search_conducted %s NOT NULL DEFAULT FALSE,
		search_type VARCHAR(100),
		is_arrested %s NOT NULL DEFAULT FALSE,
		stop_duration VARCHAR(20),
		drugs_related_stop %s,
		vehicle_number VARCHAR(50)
	)`, TrafficLogsTable, d.IDType(), d.DatetimeType(), d.BoolType(), d.BoolType(), d.BoolType())
}

// EnsureSchema creates traffic_logs when it does not exist.
// Production tables are owned by upstream ingestion; this is for local stores and tests.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, trafficLogsDDL(s.dialect)); err != nil {
		return errors.Wrapf(err, "failed to create %s", TrafficLogsTable)
	}

	log.Printf("Ensured table %s (%s)", TrafficLogsTable, s.dialect.Name())
	return nil
}
