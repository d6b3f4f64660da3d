package timeline

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone data ships with the binary

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// InvalidStartTimeError signals an unusable target start instant or a
// track without a reference sample to shift from.
type InvalidStartTimeError struct {
	Reason string
}

func (e *InvalidStartTimeError) Error() string {
	return fmt.Sprintf("invalid start time: %s", e.Reason)
}

// localTime is assumed when the start time carries no zone offset.
// Race start times are announced in Norwegian local time.
const localTime = "Europe/Oslo"

// ParseStart accepts an ISO-8601 instant. A missing zone offset is
// interpreted as Norwegian local time.
func ParseStart(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	loc, err := time.LoadLocation(localTime)
	if err != nil {
		return time.Time{}, &InvalidStartTimeError{Reason: err.Error()}
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc)
	if err != nil {
		return time.Time{}, &InvalidStartTimeError{
			Reason: fmt.Sprintf("cannot parse %q", value),
		}
	}
	return ts, nil
}

// Shift remaps all sample timestamps so the first sample starts at the
// given instant while the relative spacing stays untouched. The start is
// normalized to UTC before the offset is applied. The whole track is
// shifted in place as one step.
func Shift(track *model.Track, start time.Time) error {
	if track == nil || track.Len() == 0 {
		return &InvalidStartTimeError{Reason: "track has no samples"}
	}
	offset := start.UTC().Sub(track.Samples[0].Timestamp)
	for i := range track.Samples {
		track.Samples[i].Timestamp = track.Samples[i].Timestamp.Add(offset).UTC()
	}
	return nil
}
