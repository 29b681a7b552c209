package weather

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"weatherapp/internal/models"
	"weatherapp/internal/repositories"
	"weatherapp/pkg/observe"
)

// ErrStoreUnavailable means the store could not be reached at connection time,
// before any lookup ran.
var ErrStoreUnavailable = errors.New("store unavailable")

// NotFoundError carries the unresolved location name for the 404 message.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Location '%s' not found in the database.", e.Location)
}

// WeatherService runs one lookup per call against the weather store.
type WeatherService struct {
	store repositories.WeatherStore
	l     *observe.Logger
}

func NewWeatherService(store repositories.WeatherStore, l *observe.Logger) *WeatherService {
	return &WeatherService{
		store: store,
		l:     l,
	}
}

// Lookup resolves a location name and assembles the full report: freshest
// current conditions plus the hourly and daily windows. The name must already
// be trimmed and non-empty.
func (s *WeatherService) Lookup(ctx context.Context, location string) (*models.WeatherReport, error) {
	s.l.Debug("starting weather lookup", map[string]any{"location": location})

	session, err := s.store.Acquire(ctx)
	if err != nil {
		s.l.Error(err, map[string]any{"location": location})
		return nil, ErrStoreUnavailable
	}
	defer session.Close()

	report := models.NewWeatherReport()

	loc, err := session.LocationByName(ctx, location)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.l.Info("location not found", map[string]any{"location": location})
			return nil, &NotFoundError{Location: location}
		}
		s.l.Error(err, map[string]any{"location": location})
		return nil, errors.Wrap(err, "location lookup failed")
	}
	report.Location = loc

	current, err := session.LatestCurrent(ctx, loc.ID)
	if err != nil {
		s.l.Error(err, map[string]any{"location": location, "locationID": loc.ID})
		return nil, errors.Wrap(err, "current conditions lookup failed")
	}
	report.Current = current

	hourly, err := session.HourlyWindow(ctx, loc.ID)
	if err != nil {
		s.l.Error(err, map[string]any{"location": location, "locationID": loc.ID})
		return nil, errors.Wrap(err, "hourly window lookup failed")
	}
	if hourly != nil {
		report.Hourly = hourly
	}

	daily, err := session.DailyWindow(ctx, loc.ID)
	if err != nil {
		s.l.Error(err, map[string]any{"location": location, "locationID": loc.ID})
		return nil, errors.Wrap(err, "daily window lookup failed")
	}
	if daily != nil {
		report.Daily = daily
	}

	s.l.Info("completed weather lookup", map[string]any{
		"location":   location,
		"locationID": loc.ID,
		"hasCurrent": current != nil,
		"hourly":     len(hourly),
		"daily":      len(daily),
	})

	return report, nil
}
