package track

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/birkenlabs/birkentempprofiler/log"
)

// Race enumerates the supported race variants.
type Race string

const (
	RaceRennet Race = "rennet" // ski
	RaceRittet Race = "rittet" // bike
	RaceLopet  Race = "lopet"  // run
)

// ParseRace validates the race selector. The Norwegian spelling of the
// running race is accepted as well.
func ParseRace(value string) (Race, error) {
	switch value {
	case string(RaceRennet):
		return RaceRennet, nil
	case string(RaceRittet):
		return RaceRittet, nil
	case string(RaceLopet), "løpet":
		return RaceLopet, nil
	default:
		return "", fmt.Errorf(
			"invalid race %q, use one of rennet, rittet, lopet", value)
	}
}

// Source delivers raw GPX markup for one route.
type Source interface {
	GPX(ctx context.Context) (string, error)
}

// FileSource reads the track markup from a local file.
type FileSource struct {
	Path string
}

func (s *FileSource) GPX(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading track file: %w", err)
	}
	return string(data), nil
}

const (
	defaultTrackerURL = "http://tracker.birkebeiner.no"
	routePath         = "/splitLive/dumpRoute.php"
)

type (
	TrackerOption func(*TrackerSource)

	// TrackerSource downloads the route for a race and target duration
	// from the route tracker service.
	TrackerSource struct {
		rest      *resty.Client
		race      Race
		totalTime int // seconds
		l         *log.Logger
	}
)

func WithTrackerURL(url string) TrackerOption {
	return func(s *TrackerSource) { s.rest.SetBaseURL(url) }
}

func WithTimeout(timeout time.Duration) TrackerOption {
	return func(s *TrackerSource) { s.rest.SetTimeout(timeout) }
}

func WithLogger(arg *log.Logger) TrackerOption {
	return func(s *TrackerSource) { s.l = arg }
}

func NewTrackerSource(race Race, totalTime int, opts ...TrackerOption) *TrackerSource {
	s := &TrackerSource{
		rest:      resty.New().SetBaseURL(defaultTrackerURL).SetTimeout(30 * time.Second),
		race:      race,
		totalTime: totalTime,
		l:         log.Default().Named("track"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TrackerSource) GPX(ctx context.Context) (string, error) {
	s.l.Debug("fetching route",
		log.String("race", string(s.race)), log.Int("totalTime", s.totalTime))
	resp, err := s.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"project":    string(s.race),
			"sluttid":    fmt.Sprintf("%d", s.totalTime),
			"fileFormat": "gpx",
		}).
		Get(routePath)
	if err != nil {
		return "", fmt.Errorf("fetching route: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching route: status %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}
