package model

import "time"

// TrackSample is one recorded position along the route.
type TrackSample struct {
	Elevation float64   `json:"ele"`
	Timestamp time.Time `json:"time"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	// Distance is the cumulative distance in km from the first sample.
	Distance float64 `json:"distance"`
}

// Track holds the samples in physical traversal order.
// The order must never change after parsing.
type Track struct {
	Samples []TrackSample `json:"samples"`
}

func (t *Track) Len() int { return len(t.Samples) }
