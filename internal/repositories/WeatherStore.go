package repositories

import (
	"context"

	"github.com/pkg/errors"

	"weatherapp/internal/models"
)

// ErrNotFound is returned when a location lookup matches no row.
var ErrNotFound = errors.New("not found")

// WeatherStore hands out per-request sessions against the relational store.
type WeatherStore interface {
	Acquire(ctx context.Context) (Session, error)
	Close() error
}

// Session is one scoped connection. Callers must Close it on every exit path.
type Session interface {
	// LocationByName resolves a city name by exact equality, first match wins.
	LocationByName(ctx context.Context, name string) (*models.Location, error)
	// LatestCurrent picks the current-type row with the maximum retrieval
	// timestamp, or nil when the location has none.
	LatestCurrent(ctx context.Context, locationID int) (*models.CurrentConditions, error)
	// HourlyWindow returns hourly rows in [now_utc, now_utc+24h), ascending.
	HourlyWindow(ctx context.Context, locationID int) ([]models.HourlyForecast, error)
	// DailyWindow returns daily rows in [today, today+7d), ascending. The lower
	// bound is a calendar date, not an instant; daily rows are stored as
	// day-granularity markers.
	DailyWindow(ctx context.Context, locationID int) ([]models.DailyForecast, error)
	Close() error
}
