package model

import "fmt"

// Profile holds the assembled per-sample series as parallel arrays.
// All arrays have the same length and are index-aligned with the track
// samples they were built from.
type Profile struct {
	Distance      []float64 `json:"distance"`
	Elevation     []float64 `json:"ele"`
	TempLow       []float64 `json:"temp_low"`
	TempHigh      []float64 `json:"temp_high"`
	Humidity      []float64 `json:"humidity"`
	WindSpeed     []float64 `json:"wind_speed"`
	WindDirection []float64 `json:"wind_direction"`
	CloudFraction []float64 `json:"cloud_fraction"`
	Timestamp     []string  `json:"time"` // ISO-8601, kept as strings for the persisted document
}

func NewProfile(size int) *Profile {
	return &Profile{
		Distance:      make([]float64, size),
		Elevation:     make([]float64, size),
		TempLow:       make([]float64, size),
		TempHigh:      make([]float64, size),
		Humidity:      make([]float64, size),
		WindSpeed:     make([]float64, size),
		WindDirection: make([]float64, size),
		CloudFraction: make([]float64, size),
		Timestamp:     make([]string, size),
	}
}

func (p *Profile) Len() int { return len(p.Distance) }

// Validate checks the parallel array invariant.
func (p *Profile) Validate() error {
	n := len(p.Distance)
	others := map[string]int{
		"ele":            len(p.Elevation),
		"temp_low":       len(p.TempLow),
		"temp_high":      len(p.TempHigh),
		"humidity":       len(p.Humidity),
		"wind_speed":     len(p.WindSpeed),
		"wind_direction": len(p.WindDirection),
		"cloud_fraction": len(p.CloudFraction),
		"time":           len(p.Timestamp),
	}
	for name, l := range others {
		if l != n {
			return fmt.Errorf("profile array %s has length %d, want %d", name, l, n)
		}
	}
	return nil
}
