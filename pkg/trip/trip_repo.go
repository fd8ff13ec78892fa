package trip

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

type Repository interface {
	// Store persists a trip with its segments and daily logs and returns
	// the stored trip with generated IDs filled in.
	Store(ctx context.Context, trip Trip) (Trip, error)
	FindByUID(ctx context.Context, uid string) (*Trip, error)
	FindAll(ctx context.Context) ([]Trip, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, trip Trip) (Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %v", err)
		log.Error(err)
		return Trip{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO trip (
                    uid,
                    current_location,
                    pickup_location,
                    dropoff_location,
                    current_cycle_used,
                    created_at
				) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		trip.UID,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsedHours,
		trip.CreatedAt,
	).Scan(&trip.ID)
	if err != nil {
		err := fmt.Errorf("could not store trip: %v", err)
		log.Error(err)
		return Trip{}, err
	}

	segmentQuery := `INSERT INTO route_segment (
                    trip_id,
                    segment_type,
                    start_location,
                    end_location,
                    start_lon,
                    start_lat,
                    end_lon,
                    end_lat,
                    distance_miles,
                    duration_hours,
                    start_time,
                    end_time
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`

	for i := range trip.Segments {
		segment := &trip.Segments[i]
		startLon, startLat := coordinateParams(segment.StartCoordinates)
		endLon, endLat := coordinateParams(segment.EndCoordinates)
		err = tx.QueryRowContext(ctx, segmentQuery,
			trip.ID,
			segment.Type,
			segment.StartLocation,
			segment.EndLocation,
			startLon,
			startLat,
			endLon,
			endLat,
			segment.DistanceMiles,
			segment.DurationHours,
			segment.StartTime,
			segment.EndTime,
		).Scan(&segment.ID)
		if err != nil {
			err := fmt.Errorf("could not store route segment: %v", err)
			log.Error(err)
			return Trip{}, err
		}
	}

	logQuery := `INSERT INTO eld_log (trip_id, log_date, log_data) VALUES ($1, $2, $3)`
	for _, dailyLog := range trip.Logs {
		logData, err := json.Marshal(dailyLog)
		if err != nil {
			err := fmt.Errorf("could not serialize daily log: %v", err)
			log.Error(err)
			return Trip{}, err
		}
		if _, err := tx.ExecContext(ctx, logQuery, trip.ID, dailyLog.Date, logData); err != nil {
			err := fmt.Errorf("could not store daily log: %v", err)
			log.Error(err)
			return Trip{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %v", err)
		log.Error(err)
		return Trip{}, err
	}
	return trip, nil
}

func (r *RepositoryImpl) FindByUID(ctx context.Context, uid string) (*Trip, error) {
	query := `SELECT id, uid, current_location, pickup_location, dropoff_location, current_cycle_used, created_at
				FROM trip WHERE uid = $1`

	var trip Trip
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&trip.ID,
		&trip.UID,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleUsedHours,
		&trip.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		err := fmt.Errorf("could not find trip: %v", err)
		log.Error(err)
		return nil, err
	}

	if trip.Segments, err = r.findSegments(ctx, trip.ID); err != nil {
		return nil, err
	}
	if trip.Logs, err = r.findLogs(ctx, trip.ID); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *RepositoryImpl) findSegments(ctx context.Context, tripID int) ([]RouteSegment, error) {
	query := `SELECT id, segment_type, start_location, end_location, start_lon, start_lat, end_lon, end_lat,
					distance_miles, duration_hours, start_time, end_time
				FROM route_segment WHERE trip_id = $1 ORDER BY start_time, id`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		err := fmt.Errorf("could not query route segments: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var segments []RouteSegment
	for rows.Next() {
		var segment RouteSegment
		var startLon, startLat, endLon, endLat sql.NullFloat64
		err := rows.Scan(
			&segment.ID,
			&segment.Type,
			&segment.StartLocation,
			&segment.EndLocation,
			&startLon,
			&startLat,
			&endLon,
			&endLat,
			&segment.DistanceMiles,
			&segment.DurationHours,
			&segment.StartTime,
			&segment.EndTime,
		)
		if err != nil {
			err := fmt.Errorf("could not scan route segment: %v", err)
			log.Error(err)
			return nil, err
		}
		segment.StartCoordinates = scannedCoordinates(startLon, startLat)
		segment.EndCoordinates = scannedCoordinates(endLon, endLat)
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}

func (r *RepositoryImpl) findLogs(ctx context.Context, tripID int) ([]eldlog.DailyLog, error) {
	query := `SELECT log_data FROM eld_log WHERE trip_id = $1 ORDER BY log_date`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		err := fmt.Errorf("could not query daily logs: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var logs []eldlog.DailyLog
	for rows.Next() {
		var logData []byte
		if err := rows.Scan(&logData); err != nil {
			err := fmt.Errorf("could not scan daily log: %v", err)
			log.Error(err)
			return nil, err
		}
		var dailyLog eldlog.DailyLog
		if err := json.Unmarshal(logData, &dailyLog); err != nil {
			err := fmt.Errorf("could not deserialize daily log: %v", err)
			log.Error(err)
			return nil, err
		}
		logs = append(logs, dailyLog)
	}
	return logs, rows.Err()
}

func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Trip, error) {
	query := `SELECT id, uid, current_location, pickup_location, dropoff_location, current_cycle_used, created_at
				FROM trip ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query trips: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	trips := make([]Trip, 0)
	for rows.Next() {
		var trip Trip
		err := rows.Scan(
			&trip.ID,
			&trip.UID,
			&trip.CurrentLocation,
			&trip.PickupLocation,
			&trip.DropoffLocation,
			&trip.CurrentCycleUsedHours,
			&trip.CreatedAt,
		)
		if err != nil {
			err := fmt.Errorf("could not scan trip: %v", err)
			log.Error(err)
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func (r *RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip WHERE uid = $1`, uid)
	if err != nil {
		err := fmt.Errorf("could not delete trip: %v", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func coordinateParams(c *Coordinates) (interface{}, interface{}) {
	if c == nil {
		return nil, nil
	}
	return c[0], c[1]
}

func scannedCoordinates(lon, lat sql.NullFloat64) *Coordinates {
	if !lon.Valid || !lat.Valid {
		return nil
	}
	return &Coordinates{lon.Float64, lat.Float64}
}
