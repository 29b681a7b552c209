package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"weatherapp/config"
	"weatherapp/internal/models"
	"weatherapp/pkg/observe"
)

// Timestamps are stored as DATETIME text in UTC, so lexicographic comparison
// matches chronological order.
const timeLayout = "2006-01-02 15:04:05"

type SQLiteStore struct {
	db    *sql.DB
	l     *observe.Logger
	nowFn func() time.Time
}

type StoreOption func(*SQLiteStore)

// WithClock overrides the window anchor clock, used by tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLiteStore) {
		s.nowFn = now
	}
}

func NewSQLiteStore(cnf *config.Config, l *observe.Logger, opts ...StoreOption) (*SQLiteStore, error) {
	if dir := filepath.Dir(cnf.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	db, err := sql.Open("sqlite", cnf.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}

	if err = InitializeSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	s := &SQLiteStore{
		db:    db,
		l:     l,
		nowFn: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	l.Info("weather store ready", map[string]any{"path": cnf.Database.Path})

	return s, nil
}

// Acquire checks out one connection for the duration of a request.
func (s *SQLiteStore) Acquire(ctx context.Context) (Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire connection")
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to ping connection")
	}

	return &sqliteSession{conn: conn, nowFn: s.nowFn}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InitializeSchema creates the read-side tables when they do not exist yet.
// Rows are populated by the external ingestion job.
func InitializeSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		city_name      TEXT NOT NULL,
		state_province TEXT,
		country_code   TEXT NOT NULL,
		latitude       REAL,
		longitude      REAL,
		timezone       TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS forecasts (
		forecast_id               INTEGER PRIMARY KEY AUTOINCREMENT,
		location_id               INTEGER NOT NULL REFERENCES locations(location_id),
		forecast_type             TEXT NOT NULL CHECK (forecast_type IN ('current', 'hourly', 'daily')),
		forecast_datetime         TEXT NOT NULL,
		data_retrieved_at         TEXT NOT NULL,
		temperature               REAL,
		feels_like_temp           REAL,
		temp_min                  REAL,
		temp_max                  REAL,
		pressure_mb               REAL,
		humidity_percent          REAL,
		wind_speed                REAL,
		wind_direction_deg        REAL,
		wind_gust                 REAL,
		cloud_cover_percent       REAL,
		precipitation_mm          REAL,
		precipitation_probability REAL,
		snow_mm                   REAL,
		uv_index                  REAL,
		visibility_meters         REAL,
		weather_description       TEXT,
		weather_main              TEXT,
		weather_icon_code         TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_forecasts_lookup
		ON forecasts(location_id, forecast_type, forecast_datetime);
	`

	_, err := db.Exec(schema)
	return err
}

type sqliteSession struct {
	conn  *sql.Conn
	nowFn func() time.Time
}

func (s *sqliteSession) Close() error {
	return s.conn.Close()
}

func (s *sqliteSession) LocationByName(ctx context.Context, name string) (*models.Location, error) {
	query := `SELECT location_id, city_name, state_province, country_code, latitude, longitude, timezone
	          FROM locations
	          WHERE city_name = ?
	          LIMIT 1`

	var (
		loc      models.Location
		state    sql.NullString
		lat, lon sql.NullFloat64
	)

	err := s.conn.QueryRowContext(ctx, query, name).Scan(
		&loc.ID, &loc.Name, &state, &loc.Country, &lat, &lon, &loc.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query location: %w", err)
	}

	loc.State = sptr(state)
	loc.Lat = fptr(lat)
	loc.Lon = fptr(lon)

	return &loc, nil
}

func (s *sqliteSession) LatestCurrent(ctx context.Context, locationID int) (*models.CurrentConditions, error) {
	query := `SELECT forecast_datetime, data_retrieved_at, temperature, feels_like_temp, temp_min, temp_max,
	                 pressure_mb, humidity_percent, wind_speed, wind_direction_deg, wind_gust,
	                 cloud_cover_percent, precipitation_mm, snow_mm, uv_index, visibility_meters,
	                 weather_description, weather_main, weather_icon_code
	          FROM forecasts
	          WHERE location_id = ? AND forecast_type = 'current'
	          ORDER BY data_retrieved_at DESC
	          LIMIT 1`

	var (
		cur                                    models.CurrentConditions
		temp, feelsLike, tempMin, tempMax      sql.NullFloat64
		pressure, humidity, windSpeed, windDir sql.NullFloat64
		windGust, cloudCover, precip, snow     sql.NullFloat64
		uvIndex, visibility                    sql.NullFloat64
		description, main, icon                sql.NullString
	)

	err := s.conn.QueryRowContext(ctx, query, locationID).Scan(
		&cur.ForecastTimeUTC, &cur.LastUpdated, &temp, &feelsLike, &tempMin, &tempMax,
		&pressure, &humidity, &windSpeed, &windDir, &windGust,
		&cloudCover, &precip, &snow, &uvIndex, &visibility,
		&description, &main, &icon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A location without a current row is not an error, the field
			// stays null in the document.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query current conditions: %w", err)
	}

	cur.Temp = fptr(temp)
	cur.FeelsLike = fptr(feelsLike)
	cur.TempMin = fptr(tempMin)
	cur.TempMax = fptr(tempMax)
	cur.Pressure = iptr(pressure)
	cur.Humidity = iptr(humidity)
	cur.WindSpeed = fptr(windSpeed)
	cur.WindDirection = iptr(windDir)
	cur.WindGust = fptr(windGust)
	cur.CloudCover = iptr(cloudCover)
	cur.Precipitation = fptr(precip)
	cur.Snow = fptr(snow)
	cur.UVIndex = fptr(uvIndex)
	cur.Visibility = iptr(visibility)
	cur.Description = sptr(description)
	cur.Main = sptr(main)
	cur.Icon = sptr(icon)

	return &cur, nil
}

func (s *sqliteSession) HourlyWindow(ctx context.Context, locationID int) ([]models.HourlyForecast, error) {
	now := s.nowFn().UTC()
	from := now.Format(timeLayout)
	to := now.Add(24 * time.Hour).Format(timeLayout)

	query := `SELECT forecast_datetime, temperature, feels_like_temp, humidity_percent,
	                 wind_speed, wind_gust, precipitation_probability, cloud_cover_percent,
	                 weather_description, weather_icon_code
	          FROM forecasts
	          WHERE location_id = ? AND forecast_type = 'hourly'
	            AND forecast_datetime >= ? AND forecast_datetime < ?
	          ORDER BY forecast_datetime ASC`

	rows, err := s.conn.QueryContext(ctx, query, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly forecasts: %w", err)
	}
	defer rows.Close()

	hourly := []models.HourlyForecast{}
	for rows.Next() {
		var (
			h                               models.HourlyForecast
			temp, feelsLike, humidity       sql.NullFloat64
			windSpeed, windGust, precipProb sql.NullFloat64
			cloudCover                      sql.NullFloat64
			description, icon               sql.NullString
		)

		if err := rows.Scan(&h.Time, &temp, &feelsLike, &humidity,
			&windSpeed, &windGust, &precipProb, &cloudCover,
			&description, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan hourly row: %w", err)
		}

		h.Temp = fptr(temp)
		h.FeelsLike = fptr(feelsLike)
		h.Humidity = iptr(humidity)
		h.WindSpeed = fptr(windSpeed)
		h.WindGust = fptr(windGust)
		h.PrecipProb = fptr(precipProb)
		h.CloudCover = iptr(cloudCover)
		h.Description = sptr(description)
		h.Icon = sptr(icon)

		hourly = append(hourly, h)
	}

	return hourly, rows.Err()
}

func (s *sqliteSession) DailyWindow(ctx context.Context, locationID int) ([]models.DailyForecast, error) {
	// Calendar-date lower bound, unlike the hourly window's absolute instant.
	now := s.nowFn()
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	from := start.Format(timeLayout)
	to := start.AddDate(0, 0, 7).Format(timeLayout)

	query := `SELECT forecast_datetime, temp_min, temp_max, pressure_mb, humidity_percent,
	                 wind_speed, precipitation_probability, uv_index,
	                 weather_description, weather_icon_code
	          FROM forecasts
	          WHERE location_id = ? AND forecast_type = 'daily'
	            AND forecast_datetime >= ? AND forecast_datetime < ?
	          ORDER BY forecast_datetime ASC`

	rows, err := s.conn.QueryContext(ctx, query, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily forecasts: %w", err)
	}
	defer rows.Close()

	daily := []models.DailyForecast{}
	for rows.Next() {
		var (
			d                               models.DailyForecast
			tempMin, tempMax, pressure      sql.NullFloat64
			humidity, windSpeed, precipProb sql.NullFloat64
			uvIndex                         sql.NullFloat64
			description, icon               sql.NullString
		)

		if err := rows.Scan(&d.Date, &tempMin, &tempMax, &pressure,
			&humidity, &windSpeed, &precipProb, &uvIndex,
			&description, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan daily row: %w", err)
		}

		d.TempMin = fptr(tempMin)
		d.TempMax = fptr(tempMax)
		d.Pressure = iptr(pressure)
		d.Humidity = iptr(humidity)
		d.WindSpeed = fptr(windSpeed)
		d.PrecipProb = fptr(precipProb)
		d.UVIndex = fptr(uvIndex)
		d.Description = sptr(description)
		d.Icon = sptr(icon)

		daily = append(daily, d)
	}

	return daily, rows.Err()
}

// fptr converts a nullable column to a float pointer, nil when the source
// value is absent.
func fptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// iptr truncates a nullable column to an integer pointer, matching the
// integer coercion the document declares for the field.
func iptr(v sql.NullFloat64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Float64)
	return &i
}

func sptr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
