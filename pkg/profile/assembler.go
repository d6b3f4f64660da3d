package profile

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/birkenlabs/birkentempprofiler/log"
	"github.com/birkenlabs/birkentempprofiler/pkg/cache"
	"github.com/birkenlabs/birkentempprofiler/pkg/model"
	"github.com/birkenlabs/birkentempprofiler/pkg/weather"
)

// Fetcher retrieves the raw forecast payload for one location.
type Fetcher interface {
	FetchRaw(ctx context.Context, lat, lon, ele float64) ([]byte, error)
}

type (
	Option func(*Assembler)

	// Assembler combines a track with per-location forecasts into the
	// parallel arrays of a Profile.
	Assembler struct {
		cache       *cache.WeatherCache
		fetcher     Fetcher
		maxParallel int
		l           *log.Logger
	}
)

func WithCache(c *cache.WeatherCache) Option {
	return func(a *Assembler) { a.cache = c }
}

func WithFetcher(f Fetcher) Option {
	return func(a *Assembler) { a.fetcher = f }
}

// WithMaxParallel bounds the concurrent weather fetches. A limit of 1
// reproduces strictly sequential behavior.
func WithMaxParallel(limit int) Option {
	return func(a *Assembler) {
		if limit > 0 {
			a.maxParallel = limit
		}
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(a *Assembler) { a.l = arg }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		maxParallel: 1,
		l:           log.Default().Named("assembler"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the profile for the track. Samples are processed with
// at most maxParallel concurrent fetches; results are written by sample
// index so the profile stays aligned with the track order no matter in
// which order fetches complete. Any unavailable forecast aborts the
// whole run; no partial profile is returned.
func (a *Assembler) Assemble(ctx context.Context, track *model.Track) (*model.Profile, error) {
	n := track.Len()
	result := model.NewProfile(n)
	var checked atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)
	for i := range track.Samples {
		g.Go(func() error {
			sample := track.Samples[i]
			fingerprint := cache.Fingerprint(
				sample.Latitude, sample.Longitude, sample.Elevation)
			raw, err := a.cache.GetOrFetch(gctx, fingerprint,
				func(fctx context.Context) ([]byte, error) {
					return a.fetcher.FetchRaw(fctx,
						sample.Latitude, sample.Longitude, sample.Elevation)
				})
			if err != nil {
				return err
			}
			series, err := weather.ParseSeries(raw)
			if err != nil {
				return err
			}
			idx, err := weather.NearestIndex(sample.Timestamp, series)
			if err != nil {
				return err
			}
			entry := series.Entries[idx]

			result.Distance[i] = sample.Distance
			result.Elevation[i] = sample.Elevation
			result.TempLow[i] = entry.TempLow
			result.TempHigh[i] = entry.TempHigh
			result.Humidity[i] = entry.Humidity
			result.WindSpeed[i] = entry.WindSpeed
			result.WindDirection[i] = entry.WindDirection
			result.CloudFraction[i] = entry.CloudFraction
			result.Timestamp[i] = sample.Timestamp.Format(time.RFC3339)

			if done := checked.Add(1); done%25 == 0 || done == int64(n) {
				a.l.Info("coordinates checked",
					log.Int64("done", done), log.Int("total", n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}
