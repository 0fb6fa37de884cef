package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slot(day, hour int, temp float64) ForecastEntry {
	return ForecastEntry{
		Time:         time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC),
		TemperatureC: temp,
	}
}

func TestDaily(t *testing.T) {
	tests := []struct {
		name    string
		entries []ForecastEntry
		max     int
		want    []ForecastEntry
	}{
		{
			name:    "empty forecast",
			entries: nil,
			max:     5,
			want:    []ForecastEntry{},
		},
		{
			name: "noon slot represents the day",
			entries: []ForecastEntry{
				slot(14, 9, 18),
				slot(14, 12, 22),
				slot(14, 15, 21),
			},
			max:  5,
			want: []ForecastEntry{slot(14, 12, 22)},
		},
		{
			name: "day without a noon slot falls back to its first entry",
			entries: []ForecastEntry{
				slot(14, 15, 21),
				slot(14, 18, 19),
			},
			max:  5,
			want: []ForecastEntry{slot(14, 15, 21)},
		},
		{
			name: "days come out in ascending order",
			entries: []ForecastEntry{
				slot(16, 12, 17),
				slot(14, 12, 22),
				slot(15, 12, 20),
			},
			max: 5,
			want: []ForecastEntry{
				slot(14, 12, 22),
				slot(15, 12, 20),
				slot(16, 12, 17),
			},
		},
		{
			name: "result is capped at max days",
			entries: []ForecastEntry{
				slot(14, 12, 22),
				slot(15, 12, 20),
				slot(16, 12, 17),
				slot(17, 12, 16),
			},
			max: 2,
			want: []ForecastEntry{
				slot(14, 12, 22),
				slot(15, 12, 20),
			},
		},
		{
			name: "full five day forecast",
			entries: []ForecastEntry{
				slot(14, 9, 18), slot(14, 12, 22),
				slot(15, 0, 15), slot(15, 12, 20),
				slot(16, 3, 14), slot(16, 12, 17),
				slot(17, 12, 16),
				slot(18, 6, 13),
			},
			max: 5,
			want: []ForecastEntry{
				slot(14, 12, 22),
				slot(15, 12, 20),
				slot(16, 12, 17),
				slot(17, 12, 16),
				slot(18, 6, 13),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Daily(tt.entries, tt.max))
		})
	}
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/04d@2x.png", Weather{Icon: "04d"}.IconURL())
	assert.Empty(t, Weather{}.IconURL())
	assert.Equal(t, "https://openweathermap.org/img/wn/10n@2x.png", ForecastEntry{Icon: "10n"}.IconURL())
}
