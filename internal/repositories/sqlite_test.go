package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/config"
	"weatherapp/pkg/observe"
)

// Fixed anchor for the window queries.
var testNow = time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	cnf := &config.Config{
		Database: config.DatabaseConfig{
			Path:          filepath.Join(t.TempDir(), "test.db"),
			BusyTimeoutMS: 5000,
		},
	}

	store, err := NewSQLiteStore(cnf, observe.NewZapLogger("test-app"), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func seedLocation(t *testing.T, db *sql.DB, name string, state *string, country string, lat, lon *float64, tz string) int {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO locations (city_name, state_province, country_code, latitude, longitude, timezone)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, state, country, lat, lon, tz)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func seedForecast(t *testing.T, db *sql.DB, locationID int, forecastType, forecastDT, retrievedAt string, extra map[string]any) {
	t.Helper()

	cols := []string{"location_id", "forecast_type", "forecast_datetime", "data_retrieved_at"}
	args := []any{locationID, forecastType, forecastDT, retrievedAt}
	for col, val := range extra {
		cols = append(cols, col)
		args = append(args, val)
	}

	query := "INSERT INTO forecasts (" + strings.Join(cols, ", ") + ") VALUES (?" +
		strings.Repeat(", ?", len(args)-1) + ")"
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func acquire(t *testing.T, store *SQLiteStore) Session {
	t.Helper()

	session, err := store.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestLocationByName(t *testing.T) {
	store := newTestStore(t)

	state := "Brandenburg"
	lat, lon := 52.52, 13.405
	seedLocation(t, store.db, "Berlin", &state, "DE", &lat, &lon, "Europe/Berlin")

	session := acquire(t, store)

	loc, err := session.LocationByName(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", loc.Name)
	assert.Equal(t, "DE", loc.Country)
	assert.Equal(t, "Europe/Berlin", loc.Timezone)
	require.NotNil(t, loc.State)
	assert.Equal(t, "Brandenburg", *loc.State)
	require.NotNil(t, loc.Lat)
	assert.InDelta(t, 52.52, *loc.Lat, 1e-9)
}

func TestLocationByName_NotFound(t *testing.T) {
	store := newTestStore(t)
	session := acquire(t, store)

	loc, err := session.LocationByName(context.Background(), "Atlantis")
	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationByName_ExactMatchOnly(t *testing.T) {
	store := newTestStore(t)
	seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	session := acquire(t, store)

	_, err := session.LocationByName(context.Background(), "berlin")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = session.LocationByName(context.Background(), " Berlin ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationByName_NullableFields(t *testing.T) {
	store := newTestStore(t)
	seedLocation(t, store.db, "Nowhere", nil, "XX", nil, nil, "UTC")

	session := acquire(t, store)

	loc, err := session.LocationByName(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Nil(t, loc.State)
	assert.Nil(t, loc.Lat)
	assert.Nil(t, loc.Lon)
}

func TestLatestCurrent_PicksFreshestRetrieval(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	seedForecast(t, store.db, locID, "current", "2025-08-31 10:00:00", "2025-08-31 10:05:00",
		map[string]any{"temperature": 18.0})
	seedForecast(t, store.db, locID, "current", "2025-08-31 11:00:00", "2025-08-31 11:05:00",
		map[string]any{"temperature": 21.4})

	session := acquire(t, store)

	cur, err := session.LatestCurrent(context.Background(), locID)
	require.NoError(t, err)
	require.NotNil(t, cur)

	assert.Equal(t, "2025-08-31 11:05:00", cur.LastUpdated)
	assert.Equal(t, "2025-08-31 11:00:00", cur.ForecastTimeUTC)
	require.NotNil(t, cur.Temp)
	assert.InDelta(t, 21.4, *cur.Temp, 1e-9)
}

func TestLatestCurrent_NoRow(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	session := acquire(t, store)

	cur, err := session.LatestCurrent(context.Background(), locID)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLatestCurrent_FieldConversion(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	seedForecast(t, store.db, locID, "current", "2025-08-31 12:00:00", "2025-08-31 11:45:00",
		map[string]any{
			"temperature":         21.4,
			"pressure_mb":         1012.0,
			"humidity_percent":    64.0,
			"wind_direction_deg":  270.0,
			"visibility_meters":   10000.0,
			"weather_description": "scattered clouds",
			"weather_main":        "Clouds",
			"weather_icon_code":   "03d",
		})

	session := acquire(t, store)

	cur, err := session.LatestCurrent(context.Background(), locID)
	require.NoError(t, err)
	require.NotNil(t, cur)

	// Integer-declared columns come back as ints, the rest stays null.
	require.NotNil(t, cur.Pressure)
	assert.Equal(t, 1012, *cur.Pressure)
	require.NotNil(t, cur.Humidity)
	assert.Equal(t, 64, *cur.Humidity)
	require.NotNil(t, cur.WindDirection)
	assert.Equal(t, 270, *cur.WindDirection)
	require.NotNil(t, cur.Visibility)
	assert.Equal(t, 10000, *cur.Visibility)

	assert.Nil(t, cur.FeelsLike)
	assert.Nil(t, cur.WindSpeed)
	assert.Nil(t, cur.WindGust)
	assert.Nil(t, cur.Precipitation)
	assert.Nil(t, cur.Snow)
	assert.Nil(t, cur.UVIndex)

	require.NotNil(t, cur.Description)
	assert.Equal(t, "scattered clouds", *cur.Description)
	require.NotNil(t, cur.Icon)
	assert.Equal(t, "03d", *cur.Icon)
}

func TestHourlyWindow(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	// now-1h, now+2h, now+30h; only the middle row falls in [now, now+24h).
	seedForecast(t, store.db, locID, "hourly", "2025-08-31 11:00:00", "2025-08-31 09:00:00",
		map[string]any{"temperature": 20.0})
	seedForecast(t, store.db, locID, "hourly", "2025-08-31 14:00:00", "2025-08-31 09:00:00",
		map[string]any{"temperature": 22.8, "precipitation_probability": 0.42})
	seedForecast(t, store.db, locID, "hourly", "2025-09-01 18:00:00", "2025-08-31 09:00:00",
		map[string]any{"temperature": 19.0})

	session := acquire(t, store)

	hourly, err := session.HourlyWindow(context.Background(), locID)
	require.NoError(t, err)
	require.Len(t, hourly, 1)

	assert.Equal(t, "2025-08-31 14:00:00", hourly[0].Time)
	require.NotNil(t, hourly[0].Temp)
	assert.InDelta(t, 22.8, *hourly[0].Temp, 1e-9)
	require.NotNil(t, hourly[0].PrecipProb)
	assert.InDelta(t, 0.42, *hourly[0].PrecipProb, 1e-9)
}

func TestHourlyWindow_AscendingOrder(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	seedForecast(t, store.db, locID, "hourly", "2025-08-31 18:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "hourly", "2025-08-31 13:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "hourly", "2025-08-31 15:00:00", "2025-08-31 09:00:00", nil)

	session := acquire(t, store)

	hourly, err := session.HourlyWindow(context.Background(), locID)
	require.NoError(t, err)
	require.Len(t, hourly, 3)

	assert.Equal(t, "2025-08-31 13:00:00", hourly[0].Time)
	assert.Equal(t, "2025-08-31 15:00:00", hourly[1].Time)
	assert.Equal(t, "2025-08-31 18:00:00", hourly[2].Time)
}

func TestDailyWindow(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")

	// Window anchors at today's calendar date, not the current instant:
	// yesterday and today+8 fall out, today and today+6 stay in.
	seedForecast(t, store.db, locID, "daily", "2025-08-30 00:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "daily", "2025-08-31 00:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "daily", "2025-09-06 00:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "daily", "2025-09-08 00:00:00", "2025-08-31 09:00:00", nil)

	session := acquire(t, store)

	daily, err := session.DailyWindow(context.Background(), locID)
	require.NoError(t, err)
	require.Len(t, daily, 2)

	assert.Equal(t, "2025-08-31 00:00:00", daily[0].Date)
	assert.Equal(t, "2025-09-06 00:00:00", daily[1].Date)
}

func TestWindowsScopedToLocationAndType(t *testing.T) {
	store := newTestStore(t)
	locID := seedLocation(t, store.db, "Berlin", nil, "DE", nil, nil, "Europe/Berlin")
	otherID := seedLocation(t, store.db, "Hamburg", nil, "DE", nil, nil, "Europe/Berlin")

	seedForecast(t, store.db, otherID, "hourly", "2025-08-31 14:00:00", "2025-08-31 09:00:00", nil)
	seedForecast(t, store.db, locID, "daily", "2025-08-31 00:00:00", "2025-08-31 09:00:00", nil)

	session := acquire(t, store)

	hourly, err := session.HourlyWindow(context.Background(), locID)
	require.NoError(t, err)
	assert.Empty(t, hourly)

	daily, err := session.DailyWindow(context.Background(), otherID)
	require.NoError(t, err)
	assert.Empty(t, daily)
}
