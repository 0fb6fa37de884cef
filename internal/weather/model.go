package weather

import (
	"fmt"
	"sort"
	"time"
)

// Weather is the normalized current-conditions record.
type Weather struct {
	Description     string  `json:"description"`
	Icon            string  `json:"icon"`
	TemperatureC    float64 `json:"temperature_c"`
	FeelsLikeC      float64 `json:"feels_like_c"`
	HumidityPercent int     `json:"humidity_percent"`
}

// IconURL returns the OpenWeatherMap icon image URL, or "" without an icon
// code.
func (w Weather) IconURL() string {
	return iconURL(w.Icon)
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	Time         time.Time `json:"time"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	TemperatureC float64   `json:"temperature_c"`
}

func (f ForecastEntry) IconURL() string {
	return iconURL(f.Icon)
}

// Snapshot bundles current conditions with the full forecast. It is also
// the cached payload shape.
type Snapshot struct {
	Current  Weather         `json:"current"`
	Forecast []ForecastEntry `json:"forecast"`
}

func iconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

// forecastTimeLayout is the dt_txt format of the forecast endpoint.
const forecastTimeLayout = "2006-01-02 15:04:05"

type conditionPayload struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Weather []conditionPayload `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	DtTxt   string             `json:"dt_txt"`
	Weather []conditionPayload `json:"weather"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Daily reduces 3-hour forecast entries to at most max one-per-day entries
// in ascending date order. The 12:00 slot represents a day when present,
// otherwise the day's first entry does.
func Daily(entries []ForecastEntry, max int) []ForecastEntry {
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}

	chosen := map[dayKey]ForecastEntry{}
	var order []dayKey
	for _, entry := range entries {
		year, month, day := entry.Time.Date()
		key := dayKey{year, month, day}

		current, ok := chosen[key]
		if !ok {
			chosen[key] = entry
			order = append(order, key)
			continue
		}
		if current.Time.Hour() != 12 && entry.Time.Hour() == 12 {
			chosen[key] = entry
		}
	}

	daily := make([]ForecastEntry, 0, len(order))
	for _, key := range order {
		daily = append(daily, chosen[key])
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Time.Before(daily[j].Time)
	})
	if max > 0 && len(daily) > max {
		daily = daily[:max]
	}
	return daily
}
