// Package weather fetches current conditions and the 5-day forecast from
// OpenWeatherMap, cached at calendar-day granularity.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/httpapi"
)

// CacheKey is the domain key for the weather cache entry.
const CacheKey = "weather"

// Service exposes the weather query surface. Both endpoints sit behind a
// single same-day freshness gate, so at most one current+forecast fetch
// sequence runs per calendar day.
type Service struct {
	api      httpapi.Getter
	gate     *cache.Gate
	cfg      config.WeatherConfig
	location *time.Location
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLocation sets the location used for day-granularity freshness.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		s.location = loc
	}
}

// NewService creates a weather Service.
func NewService(api httpapi.Getter, gate *cache.Gate, cfg config.WeatherConfig, opts ...ServiceOption) *Service {
	s := &Service{
		api:      api,
		gate:     gate,
		cfg:      cfg,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns current conditions plus the full 3-hourly forecast,
// served from cache while the cache entry is from today.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	payload, err := s.gate.Do(ctx, CacheKey, cache.SameDay(s.location), s.fetch)
	if err != nil {
		return Snapshot{}, fmt.Errorf("weather: snapshot > %w", err)
	}

	snapshot, err := httpapi.Decode[Snapshot](payload)
	if err != nil {
		return Snapshot{}, fmt.Errorf("weather: snapshot > %w", err)
	}
	return snapshot, nil
}

// Current returns the current conditions.
func (s *Service) Current(ctx context.Context) (Weather, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return Weather{}, err
	}
	return snapshot.Current, nil
}

// Forecast returns the full 3-hourly forecast entries.
func (s *Service) Forecast(ctx context.Context) ([]ForecastEntry, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Forecast, nil
}

func (s *Service) fetch(ctx context.Context) ([]byte, error) {
	current, err := s.fetchCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("current > %w", err)
	}
	forecast, err := s.fetchForecast(ctx)
	if err != nil {
		return nil, fmt.Errorf("forecast > %w", err)
	}

	payload, err := json.Marshal(Snapshot{
		Current:  current,
		Forecast: forecast,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return payload, nil
}

func (s *Service) query() url.Values {
	return url.Values{
		"q":     []string{s.cfg.City},
		"units": []string{s.cfg.Units},
		"lang":  []string{s.cfg.Language},
		"appid": []string{s.cfg.APIKey},
	}
}

func (s *Service) fetchCurrent(ctx context.Context) (Weather, error) {
	body, err := s.api.Get(ctx, "/weather", s.query())
	if err != nil {
		return Weather{}, fmt.Errorf("api.Get > %w", err)
	}

	response, err := httpapi.Decode[currentResponse](body)
	if err != nil {
		return Weather{}, err
	}

	current := Weather{
		TemperatureC:    response.Main.Temp,
		FeelsLikeC:      response.Main.FeelsLike,
		HumidityPercent: response.Main.Humidity,
	}
	if len(response.Weather) > 0 {
		current.Description = response.Weather[0].Description
		current.Icon = response.Weather[0].Icon
	}
	return current, nil
}

func (s *Service) fetchForecast(ctx context.Context) ([]ForecastEntry, error) {
	body, err := s.api.Get(ctx, "/forecast", s.query())
	if err != nil {
		return nil, fmt.Errorf("api.Get > %w", err)
	}

	response, err := httpapi.Decode[forecastResponse](body)
	if err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(response.List))
	for _, item := range response.List {
		at, err := time.ParseInLocation(forecastTimeLayout, item.DtTxt, s.location)
		if err != nil {
			// a single bad slot should not fail the whole forecast
			slog.Default().Debug("skipping forecast entry with unparseable timestamp",
				slog.String("dt_txt", item.DtTxt),
				slog.Any("error", err),
			)
			continue
		}
		entry := ForecastEntry{
			Time:         at,
			TemperatureC: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
