package weather

import (
	"errors"
	"time"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// ErrEmptyForecast indicates the weather source delivered a series
// without entries. That violates the upstream contract.
var ErrEmptyForecast = errors.New("forecast series has no entries")

// NearestIndex returns the index of the forecast entry whose timestamp
// has the minimum absolute difference to the target. When two entries
// are equidistant the first one in series order wins.
func NearestIndex(target time.Time, series *model.ForecastSeries) (int, error) {
	if series == nil || series.Len() == 0 {
		return 0, ErrEmptyForecast
	}
	best := 0
	bestDiff := absDuration(series.Entries[0].Timestamp.Sub(target))
	for i := 1; i < series.Len(); i++ {
		diff := absDuration(series.Entries[i].Timestamp.Sub(target))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
