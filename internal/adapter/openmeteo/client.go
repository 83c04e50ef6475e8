// Package openmeteo implements domain.WeatherLookup against the Open-Meteo
// historical archive API. Requests are scoped to the configured city
// coordinates; the engine only ever asks for single calendar dates.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/parkfair/contest-engine/internal/domain"
)

const cmPerInch = 2.54

// Client implements domain.WeatherLookup using the Open-Meteo archive API.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	lat, lon        float64
	snowThresholdIn float64
	logger          *slog.Logger
}

// NewClient creates an archive client for one city. snowThresholdIn is the
// enforcement minimum used to derive the defense-relevant flag.
func NewClient(baseURL string, lat, lon, snowThresholdIn float64, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:         baseURL,
		lat:             lat,
		lon:             lon,
		snowThresholdIn: snowThresholdIn,
		logger:          logger,
	}
}

// HistoricalWeather fetches the daily record for one calendar date.
func (c *Client) HistoricalWeather(ctx context.Context, date time.Time) (domain.WeatherRecord, error) {
	day := date.UTC().Format("2006-01-02")
	params := url.Values{
		"latitude":        {fmt.Sprintf("%.4f", c.lat)},
		"longitude":       {fmt.Sprintf("%.4f", c.lon)},
		"start_date":      {day},
		"end_date":        {day},
		"daily":           {"weather_code,snowfall_sum,precipitation_sum,wind_speed_10m_max"},
		"wind_speed_unit": {"mph"},
		"timezone":        {"UTC"},
	}
	fullURL := c.baseURL + "/v1/archive?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherRecord{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var archResp response
	if err := json.NewDecoder(resp.Body).Decode(&archResp); err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("decode response: %w", err)
	}

	d := archResp.Daily
	if len(d.WeatherCode) == 0 {
		return domain.WeatherRecord{}, fmt.Errorf("no archive data for %s", day)
	}

	return c.buildRecord(date, d.WeatherCode[0], first(d.SnowfallSum), first(d.PrecipitationSum), first(d.WindSpeedMax)), nil
}

func (c *Client) buildRecord(date time.Time, code int, snowfallCm, precipMm, windMph float64) domain.WeatherRecord {
	snowfallIn := snowfallCm / cmPerInch

	conditions := conditionTags(code, windMph)
	adverse := adverseCodes[code] || snowfallIn > 0 || windMph >= 35

	// The strict gate. Primary-relevance defenses argue the restriction's
	// trigger was never met: official snowfall below the enforcement
	// minimum means a snow ban was not in effect that day.
	defenseRelevant := snowfallIn < c.snowThresholdIn

	return domain.WeatherRecord{
		Date:              date,
		Description:       describeCode(code, precipMm),
		Conditions:        conditions,
		SnowfallInches:    snowfallIn,
		HasAdverseWeather: adverse,
		DefenseRelevant:   defenseRelevant,
	}
}

func first(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}

// Open-Meteo archive response types.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	SnowfallSum      []float64 `json:"snowfall_sum"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
}

// WMO weather interpretation codes, as documented by Open-Meteo.
var codeDescriptions = map[int]string{
	0:  "clear skies",
	1:  "mainly clear skies",
	2:  "partly cloudy conditions",
	3:  "overcast conditions",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	56: "light freezing drizzle",
	57: "dense freezing drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "light freezing rain",
	67: "heavy freezing rain",
	71: "slight snowfall",
	73: "moderate snowfall",
	75: "heavy snowfall",
	77: "snow grains",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "slight snow showers",
	86: "heavy snow showers",
	95: "a thunderstorm",
	96: "a thunderstorm with slight hail",
	99: "a thunderstorm with heavy hail",
}

// adverseCodes is the weak gate: anything beyond clouds.
var adverseCodes = map[int]bool{
	45: true, 48: true,
	51: true, 53: true, 55: true, 56: true, 57: true,
	61: true, 63: true, 65: true, 66: true, 67: true,
	71: true, 73: true, 75: true, 77: true,
	80: true, 81: true, 82: true, 85: true, 86: true,
	95: true, 96: true, 99: true,
}

func describeCode(code int, precipMm float64) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	if precipMm > 0 {
		return "unclassified precipitation"
	}
	return "unclassified conditions"
}

func conditionTags(code int, windMph float64) []string {
	var tags []string
	switch {
	case code == 45 || code == 48:
		tags = append(tags, "fog")
	case code >= 51 && code <= 57:
		tags = append(tags, "drizzle")
		if code >= 56 {
			tags = append(tags, "freezing precipitation")
		}
	case code >= 61 && code <= 67:
		tags = append(tags, "rain")
		if code >= 66 {
			tags = append(tags, "freezing precipitation")
		}
	case code >= 71 && code <= 77:
		tags = append(tags, "snow")
	case code >= 80 && code <= 82:
		tags = append(tags, "rain showers")
	case code == 85 || code == 86:
		tags = append(tags, "snow showers")
	case code >= 95:
		tags = append(tags, "thunderstorm")
	}
	if windMph >= 35 {
		tags = append(tags, "high winds")
	}
	return tags
}
