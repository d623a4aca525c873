// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
)

const (
	// Name identifies the provider in metrics and logs.
	Name = "open-meteo"

	DefaultBaseURL = "https://api.open-meteo.com/v1"
	DefaultTimeout = 15 * time.Second

	// ReportTTL is how long a report stays cached per rounded coordinate
	ReportTTL = 10 * time.Minute
)

var codeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	95: "Thunderstorm",
}

// Describe returns the human description of a WMO weather code.
func Describe(code int) string {
	if d, ok := codeDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// KmhToMph converts a speed.
func KmhToMph(kmh float64) float64 {
	return kmh * 0.621371
}

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker *providers.Breaker
}

// Client fetches current conditions and forecasts from Open-Meteo.
type Client struct {
	cfg   Config
	http  *providers.HTTPClient
	cache cache.Cacher
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weathercode"`
	} `json:"hourly"`
}

// New creates an Open-Meteo client backed by c.
func New(cfg Config, c cache.Cacher) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:   cfg,
		http:  providers.NewHTTPClient(providers.HTTPConfig{Provider: Name, Timeout: cfg.Timeout, Breaker: cfg.Breaker}),
		cache: c,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// ReportKey is the cache key for one report request.
func ReportKey(lat, lon float64, includeHourly bool, hours int) string {
	return fmt.Sprintf("weather:%.2f:%.2f:%t:%d", geo.Round(lat, 2), geo.Round(lon, 2), includeHourly, hours)
}

// Report returns current conditions at a coordinate and, when includeHourly
// is set, the hourly forecast truncated to hours (all when hours <= 0).
func (c *Client) Report(ctx context.Context, lat, lon float64, includeHourly bool, hours int) (*models.WeatherReport, error) {
	key := ReportKey(lat, lon, includeHourly, hours)
	if v, ok := c.cache.Get(key); ok {
		if report, ok := v.(*models.WeatherReport); ok {
			return report, nil
		}
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")
	if includeHourly {
		params.Set("hourly", "temperature_2m,weathercode")
	}

	var raw forecastResponse
	if err := c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, "forecast"), params, nil, &raw); err != nil {
		return nil, err
	}
	if raw.CurrentWeather == nil {
		return nil, fmt.Errorf("%w: %s: missing current_weather", providers.ErrMalformedResponse, Name)
	}

	cw := raw.CurrentWeather
	report := &models.WeatherReport{
		Latitude:  lat,
		Longitude: lon,
		Current: models.WeatherCurrent{
			TemperatureC:    cw.Temperature,
			TemperatureF:    CelsiusToFahrenheit(cw.Temperature),
			WindspeedKmh:    cw.Windspeed,
			WindspeedMph:    KmhToMph(cw.Windspeed),
			WeatherCode:     cw.WeatherCode,
			Description:     Describe(cw.WeatherCode),
			ObservationTime: cw.Time,
		},
	}

	if includeHourly {
		h := raw.Hourly
		points := make([]models.WeatherHourlyPoint, 0, len(h.Time))
		for i, t := range h.Time {
			if i >= len(h.Temperature2m) {
				break
			}
			p := models.WeatherHourlyPoint{Time: t, TemperatureC: h.Temperature2m[i]}
			if i < len(h.WeatherCode) {
				code := h.WeatherCode[i]
				p.WeatherCode = &code
			}
			points = append(points, p)
		}
		if hours > 0 && len(points) > hours {
			points = points[:hours]
		}
		report.Hourly = points
	}

	c.cache.SetWithTTL(key, report, ReportTTL)
	return report, nil
}
