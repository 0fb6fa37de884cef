package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/httpapi"
	"github.com/mvdapps/panorama/internal/weather"
)

const currentBody = `{
	"weather": [{"description": "cielo claro", "icon": "01d"}],
	"main": {"temp": 21.5, "feels_like": 20.8, "humidity": 64}
}`

const forecastBody = `{
	"list": [
		{"dt_txt": "2026-03-14 09:00:00", "main": {"temp": 18.0}, "weather": [{"description": "nubes", "icon": "03d"}]},
		{"dt_txt": "2026-03-14 12:00:00", "main": {"temp": 22.1}, "weather": [{"description": "cielo claro", "icon": "01d"}]},
		{"dt_txt": "not-a-timestamp", "main": {"temp": 0}},
		{"dt_txt": "2026-03-15 12:00:00", "main": {"temp": 19.4}, "weather": [{"description": "lluvia ligera", "icon": "10d"}]}
	]
}`

type countingWeatherServer struct {
	server        *httptest.Server
	currentCalls  atomic.Int64
	forecastCalls atomic.Int64
}

func newCountingWeatherServer(t *testing.T) *countingWeatherServer {
	t.Helper()
	s := &countingWeatherServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Punta del Este,UY", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		switch r.URL.Path {
		case "/weather":
			s.currentCalls.Add(1)
			_, _ = w.Write([]byte(currentBody))
		case "/forecast":
			s.forecastCalls.Add(1)
			_, _ = w.Write([]byte(forecastBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func weatherTestConfig(baseURL string) config.WeatherConfig {
	return config.WeatherConfig{
		BaseURL:  baseURL,
		City:     "Punta del Este,UY",
		Units:    "metric",
		Language: "es",
		APIKey:   "test-key",
	}
}

func TestService_Snapshot(t *testing.T) {
	server := newCountingWeatherServer(t)
	client := httpapi.NewClient(server.server.URL)
	defer func() {
		_ = client.Close()
	}()

	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	gate := cache.NewGate(cache.NewFileStore(t.TempDir()), cache.WithClock(func() time.Time { return now }))
	service := weather.NewService(client, gate, weatherTestConfig(server.server.URL), weather.WithLocation(time.UTC))

	snapshot, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, weather.Weather{
		Description:     "cielo claro",
		Icon:            "01d",
		TemperatureC:    21.5,
		FeelsLikeC:      20.8,
		HumidityPercent: 64,
	}, snapshot.Current)

	// the unparseable slot is skipped
	require.Len(t, snapshot.Forecast, 3)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), snapshot.Forecast[0].Time)
	assert.Equal(t, 22.1, snapshot.Forecast[1].TemperatureC)
	assert.Equal(t, "lluvia ligera", snapshot.Forecast[2].Description)
}

func TestService_Snapshot_SameDayServesFromCache(t *testing.T) {
	server := newCountingWeatherServer(t)
	client := httpapi.NewClient(server.server.URL)
	defer func() {
		_ = client.Close()
	}()

	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	gate := cache.NewGate(cache.NewFileStore(t.TempDir()), cache.WithClock(func() time.Time { return now }))
	service := weather.NewService(client, gate, weatherTestConfig(server.server.URL), weather.WithLocation(time.UTC))

	ctx := context.Background()
	_, err := service.Snapshot(ctx)
	require.NoError(t, err)

	// later the same day: current and forecast both come from the one cached
	// snapshot, with no further requests
	now = now.Add(10 * time.Hour)
	current, err := service.Current(ctx)
	require.NoError(t, err)
	forecast, err := service.Forecast(ctx)
	require.NoError(t, err)

	assert.Equal(t, "cielo claro", current.Description)
	assert.Len(t, forecast, 3)
	assert.Equal(t, int64(1), server.currentCalls.Load())
	assert.Equal(t, int64(1), server.forecastCalls.Load())
}

func TestService_Snapshot_NextDayRefetches(t *testing.T) {
	server := newCountingWeatherServer(t)
	client := httpapi.NewClient(server.server.URL)
	defer func() {
		_ = client.Close()
	}()

	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	gate := cache.NewGate(cache.NewFileStore(t.TempDir()), cache.WithClock(func() time.Time { return now }))
	service := weather.NewService(client, gate, weatherTestConfig(server.server.URL), weather.WithLocation(time.UTC))

	ctx := context.Background()
	_, err := service.Snapshot(ctx)
	require.NoError(t, err)

	// an hour later the calendar day has changed, so the entry is stale
	now = now.Add(time.Hour)
	_, err = service.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), server.currentCalls.Load())
	assert.Equal(t, int64(2), server.forecastCalls.Load())
}

func TestService_Snapshot_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer server.Close()

	client := httpapi.NewClient(server.URL)
	defer func() {
		_ = client.Close()
	}()

	store := cache.NewFileStore(t.TempDir())
	gate := cache.NewGate(store)
	service := weather.NewService(client, gate, weatherTestConfig(server.URL), weather.WithLocation(time.UTC))

	ctx := context.Background()
	_, err := service.Snapshot(ctx)
	var statusErr *httpapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	// the failure must not be cached
	entry, err := store.Read(ctx, weather.CacheKey)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
