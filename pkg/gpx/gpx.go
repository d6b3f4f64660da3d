package gpx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/geodesic"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// MalformedTrackError signals unparsable or structurally incomplete
// track markup. The parser never skips a broken trackpoint since that
// would desynchronize the per-sample arrays downstream.
type MalformedTrackError struct {
	Reason string
	Point  int // index of the offending trackpoint, -1 if not point related
}

func (e *MalformedTrackError) Error() string {
	if e.Point >= 0 {
		return fmt.Sprintf("malformed track: %s (trackpoint %d)", e.Reason, e.Point)
	}
	return fmt.Sprintf("malformed track: %s", e.Reason)
}

// lat/lon attributes and the optional child elements are read as strings
// so that a missing field can be told apart from a zero value.
type gpxDoc struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele"`
	Time *string `xml:"time"`
}

// Parse converts raw GPX markup into a Track. Trackpoints are collected
// in document order across all track segments. The cumulative distance
// is computed with the WGS84 ellipsoid, not a flat-earth approximation.
func Parse(data string) (*model.Track, error) {
	var doc gpxDoc
	if err := xml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, &MalformedTrackError{Reason: err.Error(), Point: -1}
	}
	if len(doc.Tracks) == 0 {
		return nil, &MalformedTrackError{Reason: "no trk element", Point: -1}
	}

	track := &model.Track{}
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				sample, err := convertPoint(pt, len(track.Samples))
				if err != nil {
					return nil, err
				}
				track.Samples = append(track.Samples, sample)
			}
		}
	}

	for i := 1; i < len(track.Samples); i++ {
		prev := &track.Samples[i-1]
		cur := &track.Samples[i]
		var meters float64
		geodesic.WGS84.Inverse(
			prev.Latitude, prev.Longitude,
			cur.Latitude, cur.Longitude,
			&meters, nil, nil)
		cur.Distance = prev.Distance + meters/1000.0
	}
	return track, nil
}

func convertPoint(pt gpxPoint, idx int) (model.TrackSample, error) {
	var sample model.TrackSample
	if strings.TrimSpace(pt.Lat) == "" || strings.TrimSpace(pt.Lon) == "" {
		return sample, &MalformedTrackError{Reason: "trackpoint without lat/lon", Point: idx}
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(pt.Lat), 64)
	if err != nil {
		return sample, &MalformedTrackError{
			Reason: fmt.Sprintf("invalid lat %q", pt.Lat), Point: idx,
		}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(pt.Lon), 64)
	if err != nil {
		return sample, &MalformedTrackError{
			Reason: fmt.Sprintf("invalid lon %q", pt.Lon), Point: idx,
		}
	}
	sample.Latitude = lat
	sample.Longitude = lon

	if pt.Ele != nil {
		ele, err := strconv.ParseFloat(strings.TrimSpace(*pt.Ele), 64)
		if err != nil {
			return sample, &MalformedTrackError{
				Reason: fmt.Sprintf("invalid ele %q", *pt.Ele), Point: idx,
			}
		}
		sample.Elevation = ele
	}
	if pt.Time != nil {
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(*pt.Time))
		if err != nil {
			return sample, &MalformedTrackError{
				Reason: fmt.Sprintf("invalid time %q", *pt.Time), Point: idx,
			}
		}
		sample.Timestamp = ts
	}
	return sample, nil
}
