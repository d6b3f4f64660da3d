package model

import "time"

// ForecastEntry holds the instant values of one forecast timestamp.
type ForecastEntry struct {
	Timestamp     time.Time `json:"time"`
	TempLow       float64   `json:"tempLow"`  // 10th percentile air temperature (°C)
	TempHigh      float64   `json:"tempHigh"` // 90th percentile air temperature (°C)
	Humidity      float64   `json:"humidity"` // relative humidity (%)
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection float64   `json:"windDirection"` // degrees
	CloudFraction float64   `json:"cloudFraction"` // cloud area fraction (%)
}

// ForecastSeries is the time-ordered forecast for one fixed location.
type ForecastSeries struct {
	Entries []ForecastEntry `json:"entries"`
}

func (s *ForecastSeries) Len() int { return len(s.Entries) }
