package stations

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// dateFormat is how record dates are rendered to clients.
const dateFormat = "2006-01-02"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL station repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListStations returns the distinct station names with records.
func (r *PostgresRepository) ListStations(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT station_name FROM aqi_records ORDER BY station_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// HistoricalRecords returns the station's records within [from, to).
func (r *PostgresRepository) HistoricalRecords(ctx context.Context, station string, from, to time.Time) ([]Record, error) {
	query := `
		SELECT date, aqi
		FROM aqi_records
		WHERE station_name = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	return r.scanRecords(ctx, query, station, from, to)
}

// ForecastRecords returns up to limit records dated from or after from.
func (r *PostgresRepository) ForecastRecords(ctx context.Context, station string, from time.Time, limit int) ([]Record, error) {
	query := `
		SELECT date, aqi
		FROM aqi_records
		WHERE station_name = $1 AND date >= $2
		ORDER BY date
		LIMIT $3
	`

	return r.scanRecords(ctx, query, station, from, limit)
}

// scanRecords runs a (date, aqi) query and renders dates as YYYY-MM-DD.
func (r *PostgresRepository) scanRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			date time.Time
			aqi  float64
		)
		if err := rows.Scan(&date, &aqi); err != nil {
			return nil, err
		}
		records = append(records, Record{
			Date: date.Format(dateFormat),
			AQI:  aqi,
		})
	}

	return records, rows.Err()
}

// UpsertRecord inserts or replaces the station's record for a date.
func (r *PostgresRepository) UpsertRecord(ctx context.Context, station string, date time.Time, aqi float64) error {
	query := `
		INSERT INTO aqi_records (station_name, date, aqi)
		VALUES ($1, $2, $3)
		ON CONFLICT (station_name, date) DO UPDATE SET aqi = EXCLUDED.aqi
	`

	_, err := r.pool.Exec(ctx, query, station, date, aqi)
	return err
}

// ListMonitoredStations returns the stations the refresh worker keeps
// current.
func (r *PostgresRepository) ListMonitoredStations(ctx context.Context) ([]MonitoredStation, error) {
	query := `SELECT station_name, lat, lon FROM monitored_stations ORDER BY station_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var monitored []MonitoredStation
	for rows.Next() {
		var s MonitoredStation
		if err := rows.Scan(&s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		monitored = append(monitored, s)
	}

	return monitored, rows.Err()
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
