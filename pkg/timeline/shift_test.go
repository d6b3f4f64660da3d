package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

func sampleTrack() *model.Track {
	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	return &model.Track{Samples: []model.TrackSample{
		{Timestamp: base},
		{Timestamp: base.Add(4 * time.Minute)},
		{Timestamp: base.Add(10 * time.Minute)},
	}}
}

func TestShift(t *testing.T) {
	track := sampleTrack()
	start, err := ParseStart("2024-03-16T08:00:00+01:00")
	require.NoError(t, err)

	require.NoError(t, Shift(track, start))

	assert.Equal(t,
		time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC),
		track.Samples[0].Timestamp)
	// relative spacing is preserved
	assert.Equal(t, 4*time.Minute,
		track.Samples[1].Timestamp.Sub(track.Samples[0].Timestamp))
	assert.Equal(t, 10*time.Minute,
		track.Samples[2].Timestamp.Sub(track.Samples[0].Timestamp))
}

func TestShift_RoundTrip(t *testing.T) {
	track := sampleTrack()
	original := sampleTrack()

	require.NoError(t, Shift(track, time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC)))
	require.NoError(t, Shift(track, original.Samples[0].Timestamp))

	for i := range track.Samples {
		assert.True(t,
			track.Samples[i].Timestamp.Equal(original.Samples[i].Timestamp),
			"sample %d: %v != %v", i,
			track.Samples[i].Timestamp, original.Samples[i].Timestamp)
	}
}

func TestShift_Idempotent(t *testing.T) {
	start := time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC)
	once := sampleTrack()
	twice := sampleTrack()

	require.NoError(t, Shift(once, start))
	require.NoError(t, Shift(twice, start))
	require.NoError(t, Shift(twice, start))

	for i := range once.Samples {
		assert.Equal(t, once.Samples[i].Timestamp, twice.Samples[i].Timestamp)
	}
}

func TestShift_EmptyTrack(t *testing.T) {
	err := Shift(&model.Track{}, time.Now())
	var invalid *InvalidStartTimeError
	assert.True(t, errors.As(err, &invalid))
}

func TestParseStart(t *testing.T) {
	ts, err := ParseStart("2024-03-16T08:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t,
		time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), ts.UTC())

	// no zone offset means Norwegian local time (CET in March)
	ts, err = ParseStart("2024-03-16T08:00:00")
	require.NoError(t, err)
	assert.Equal(t,
		time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), ts.UTC())

	_, err = ParseStart("tomorrow morning")
	var invalid *InvalidStartTimeError
	assert.True(t, errors.As(err, &invalid))
}
