package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/birkenlabs/birkentempprofiler/log"
)

const (
	forecastPath = "/weatherapi/locationforecast/2.0/complete"

	// identifies this client to the weather service on every request
	userAgent = "birkentempprofiler/1.0 (github.com/birkenlabs/birkentempprofiler)"

	defaultBaseURL   = "https://api.met.no"
	defaultTimeout   = 10 * time.Second
	defaultMaxTries  = 5
	defaultRetryBase = 2 * time.Second
)

// WeatherUnavailableError signals that the forecast for one location
// could not be retrieved within the retry bound. Callers must treat
// this as fatal for the whole run.
type WeatherUnavailableError struct {
	Latitude  float64
	Longitude float64
	Attempts  int
	Err       error
}

func (e *WeatherUnavailableError) Error() string {
	return fmt.Sprintf("weather unavailable for (%.4f,%.4f) after %d attempts: %v",
		e.Latitude, e.Longitude, e.Attempts, e.Err)
}

func (e *WeatherUnavailableError) Unwrap() error { return e.Err }

type (
	ClientOption func(*Client)
	// Client fetches forecast series from the weather service.
	Client struct {
		rest      *resty.Client
		maxTries  int
		retryBase time.Duration
		timer     backoff.Timer
		l         *log.Logger
	}
)

func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.rest.SetBaseURL(url) }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.rest.SetTimeout(timeout) }
}

func WithMaxTries(tries int) ClientOption {
	return func(c *Client) { c.maxTries = tries }
}

func WithRetryBase(base time.Duration) ClientOption {
	return func(c *Client) { c.retryBase = base }
}

// WithTimer replaces the backoff timer, used by tests to avoid real delays.
func WithTimer(t backoff.Timer) ClientOption {
	return func(c *Client) { c.timer = t }
}

func WithLogger(arg *log.Logger) ClientOption {
	return func(c *Client) { c.l = arg }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		rest: resty.New().
			SetBaseURL(defaultBaseURL).
			SetHeader("User-Agent", userAgent).
			SetTimeout(defaultTimeout),
		maxTries:  defaultMaxTries,
		retryBase: defaultRetryBase,
		l:         log.Default().Named("weather"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// linearBackOff waits base*attempt between tries.
type linearBackOff struct {
	base    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.base
}

func (b *linearBackOff) Reset() { b.attempt = 0 }

// FetchRaw retrieves the forecast payload for one location. The altitude
// is rounded to whole meters as required by the service. One request is
// issued per attempt, up to the retry bound, with linearly increasing
// backoff in between. The raw body is returned so it can be cached as is.
func (c *Client) FetchRaw(ctx context.Context, lat, lon, ele float64) ([]byte, error) {
	attempts := 0
	op := func() ([]byte, error) {
		attempts++
		resp, err := c.rest.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"lat":      fmt.Sprintf("%.4f", lat),
				"lon":      fmt.Sprintf("%.4f", lon),
				"altitude": fmt.Sprintf("%d", int(ele)),
			}).
			Get(forecastPath)
		if err != nil {
			c.l.Warn("forecast request failed",
				log.Int("attempt", attempts), log.ErrorField(err))
			return nil, err
		}
		if resp.IsError() {
			err = fmt.Errorf("forecast request status %d", resp.StatusCode())
			c.l.Warn("forecast request failed",
				log.Int("attempt", attempts), log.ErrorField(err))
			return nil, err
		}
		return resp.Body(), nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			&linearBackOff{base: c.retryBase},
			uint64(c.maxTries-1)),
		ctx)
	body, err := backoff.RetryNotifyWithTimerAndData(op, policy, nil, c.timer)
	if err != nil {
		return nil, &WeatherUnavailableError{
			Latitude:  lat,
			Longitude: lon,
			Attempts:  attempts,
			Err:       err,
		}
	}
	return body, nil
}
