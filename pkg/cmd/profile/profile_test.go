package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birkenlabs/birkentempprofiler/pkg/cache"
	"github.com/birkenlabs/birkentempprofiler/pkg/model"
	profiler "github.com/birkenlabs/birkentempprofiler/pkg/profile"
	"github.com/birkenlabs/birkentempprofiler/pkg/timeline"
	"github.com/birkenlabs/birkentempprofiler/pkg/weather"
	"github.com/birkenlabs/birkentempprofiler/testsupport/metdata"
)

const testGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" version="1.1" creator="tracker">
  <trk><trkseg>
    <trkpt lat="61.1565" lon="10.4952"><ele>485.0</ele><time>2024-02-01T12:00:00Z</time></trkpt>
    <trkpt lat="61.1655" lon="10.4952"><ele>512.5</ele><time>2024-02-01T12:04:00Z</time></trkpt>
    <trkpt lat="61.1745" lon="10.4952"><ele>530.0</ele><time>2024-02-01T12:10:00Z</time></trkpt>
  </trkseg></trk>
</gpx>`

type stubSource struct {
	markup string
	err    error
}

func (s *stubSource) GPX(_ context.Context) (string, error) {
	return s.markup, s.err
}

func weatherStub(t *testing.T, tempLow float64) *httptest.Server {
	t.Helper()
	times := []time.Time{
		time.Date(2024, 3, 16, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC),
	}
	return httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // test stub
			w.Write(metdata.Payload(times, metdata.Values{
				TempLow: tempLow, TempHigh: tempLow + 5,
			}))
		}))
}

func TestRunProfile_EndToEnd(t *testing.T) {
	server := weatherStub(t, -6.5)
	defer server.Close()

	start, err := timeline.ParseStart("2024-03-16T08:00:00+01:00")
	require.NoError(t, err)

	profileStore := &profiler.MemoryStore{}
	chartFile := filepath.Join(t.TempDir(), "temperatureProfile.html")
	opts := &runOptions{
		source:       &stubSource{markup: testGPX},
		fetcher:      weather.NewClient(weather.WithBaseURL(server.URL)),
		cacheStore:   cache.NewMemoryStore(),
		profileStore: profileStore,
		chartFile:    chartFile,
		start:        start,
		maxParallel:  2,
	}
	require.NoError(t, runProfile(context.Background(), opts))

	result := profileStore.Profile
	require.NotNil(t, result)
	require.Equal(t, 3, result.Len())
	assert.Equal(t, []float64{-6.5, -6.5, -6.5}, result.TempLow)

	// the shifted timeline starts at 08:00 local (07:00 UTC) and keeps
	// the original 10 minute span
	first, err := time.Parse(time.RFC3339, result.Timestamp[0])
	require.NoError(t, err)
	last, err := time.Parse(time.RFC3339, result.Timestamp[2])
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), first.UTC())
	assert.Equal(t, 10*time.Minute, last.Sub(first))
	for i := 1; i < result.Len(); i++ {
		prev, perr := time.Parse(time.RFC3339, result.Timestamp[i-1])
		require.NoError(t, perr)
		cur, cerr := time.Parse(time.RFC3339, result.Timestamp[i])
		require.NoError(t, cerr)
		assert.True(t, cur.After(prev))
	}

	info, err := os.Stat(chartFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunProfile_Resume(t *testing.T) {
	persisted := model.NewProfile(2)
	persisted.TempLow = []float64{1.0, 2.0}
	profileStore := &profiler.MemoryStore{Profile: persisted}

	opts := &runOptions{
		source:       &stubSource{err: errors.New("tracker must not be called")},
		cacheStore:   cache.NewMemoryStore(),
		profileStore: profileStore,
		chartFile:    filepath.Join(t.TempDir(), "chart.html"),
		resume:       true,
		maxParallel:  1,
	}
	require.NoError(t, runProfile(context.Background(), opts))
	assert.Equal(t, []float64{1.0, 2.0}, profileStore.Profile.TempLow)
}

func TestRunProfile_WeatherUnavailable(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
	defer server.Close()

	profileStore := &profiler.MemoryStore{}
	opts := &runOptions{
		source: &stubSource{markup: testGPX},
		fetcher: weather.NewClient(
			weather.WithBaseURL(server.URL),
			weather.WithRetryBase(time.Millisecond)),
		cacheStore:   cache.NewMemoryStore(),
		profileStore: profileStore,
		chartFile:    filepath.Join(t.TempDir(), "chart.html"),
		start:        time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC),
		maxParallel:  1,
	}
	err := runProfile(context.Background(), opts)
	require.Error(t, err)

	var unavailable *weather.WeatherUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	// no partial profile is produced
	assert.Nil(t, profileStore.Profile)
}
