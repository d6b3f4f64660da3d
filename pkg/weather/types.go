package weather

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// subset of the MET locationforecast complete response
type locationForecast struct {
	Properties struct {
		Timeseries []struct {
			Time time.Time `json:"time"`
			Data struct {
				Instant struct {
					Details struct {
						AirTemperaturePercentile10 float64 `json:"air_temperature_percentile_10"`
						AirTemperaturePercentile90 float64 `json:"air_temperature_percentile_90"`
						RelativeHumidity           float64 `json:"relative_humidity"`
						WindSpeed                  float64 `json:"wind_speed"`
						WindFromDirection          float64 `json:"wind_from_direction"`
						CloudAreaFraction          float64 `json:"cloud_area_fraction"`
					} `json:"details"`
				} `json:"instant"`
			} `json:"data"`
		} `json:"timeseries"`
	} `json:"properties"`
}

// ParseSeries converts a raw locationforecast payload into a ForecastSeries.
func ParseSeries(raw []byte) (*model.ForecastSeries, error) {
	var doc locationForecast
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding forecast payload: %w", err)
	}
	series := &model.ForecastSeries{
		Entries: make([]model.ForecastEntry, 0, len(doc.Properties.Timeseries)),
	}
	for _, ts := range doc.Properties.Timeseries {
		details := ts.Data.Instant.Details
		series.Entries = append(series.Entries, model.ForecastEntry{
			Timestamp:     ts.Time,
			TempLow:       details.AirTemperaturePercentile10,
			TempHigh:      details.AirTemperaturePercentile90,
			Humidity:      details.RelativeHumidity,
			WindSpeed:     details.WindSpeed,
			WindDirection: details.WindFromDirection,
			CloudFraction: details.CloudAreaFraction,
		})
	}
	return series, nil
}
