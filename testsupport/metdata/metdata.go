// Package metdata builds locationforecast response payloads for tests.
package metdata

import (
	"encoding/json"
	"time"
)

// Values holds the instant details used for one generated entry.
type Values struct {
	TempLow       float64
	TempHigh      float64
	Humidity      float64
	WindSpeed     float64
	WindDirection float64
	CloudFraction float64
}

// Payload renders a forecast document with one entry per timestamp, all
// carrying the same instant values.
func Payload(times []time.Time, v Values) []byte {
	series := make([]map[string]any, 0, len(times))
	for _, ts := range times {
		series = append(series, map[string]any{
			"time": ts.Format(time.RFC3339),
			"data": map[string]any{
				"instant": map[string]any{
					"details": map[string]any{
						"air_temperature_percentile_10": v.TempLow,
						"air_temperature_percentile_90": v.TempHigh,
						"relative_humidity":             v.Humidity,
						"wind_speed":                    v.WindSpeed,
						"wind_from_direction":           v.WindDirection,
						"cloud_area_fraction":           v.CloudFraction,
					},
				},
			},
		})
	}
	doc := map[string]any{
		"type": "Feature",
		"properties": map[string]any{
			"timeseries": series,
		},
	}
	data, _ := json.Marshal(doc)
	return data
}
