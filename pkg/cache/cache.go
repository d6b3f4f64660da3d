package cache

import (
	"context"
	"sync"

	"github.com/birkenlabs/birkentempprofiler/log"
)

type (
	Option  func(*config)
	FetchFn func(ctx context.Context) ([]byte, error)

	config struct {
		store Store
		fresh bool
		l     *log.Logger
	}

	// WeatherCache maps a location fingerprint to a raw forecast
	// payload. Safe for concurrent use; at most one fetch runs per
	// distinct fingerprint.
	WeatherCache struct {
		mutex    sync.Mutex
		entries  map[string][]byte
		inflight map[string]*fetchResult
		config   *config
	}

	fetchResult struct {
		done chan struct{}
		data []byte
		err  error
	}
)

func WithStore(s Store) Option {
	return func(c *config) { c.store = s }
}

// WithFresh bypasses cache lookups: every GetOrFetch calls the fetch
// function and overwrites the stored entry.
func WithFresh(fresh bool) Option {
	return func(c *config) { c.fresh = fresh }
}

func WithLogger(arg *log.Logger) Option {
	return func(c *config) { c.l = arg }
}

// New creates a cache and loads the persisted entries once.
func New(opts ...Option) (*WeatherCache, error) {
	c := &config{
		store: NewMemoryStore(),
		l:     log.Default().Named("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	entries, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	c.l.Debug("cache loaded", log.Int("entries", len(entries)))
	return &WeatherCache{
		entries:  entries,
		inflight: map[string]*fetchResult{},
		config:   c,
	}, nil
}

func (c *WeatherCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// GetOrFetch returns the cached payload for the fingerprint or calls
// fetch and stores the result. Concurrent callers with the same
// fingerprint share a single fetch.
func (c *WeatherCache) GetOrFetch(
	ctx context.Context, fingerprint string, fetch FetchFn,
) ([]byte, error) {
	c.mutex.Lock()
	if !c.config.fresh {
		if data, ok := c.entries[fingerprint]; ok {
			c.mutex.Unlock()
			c.config.l.Debug("cache hit", log.String("fingerprint", fingerprint))
			return data, nil
		}
	}
	if res, ok := c.inflight[fingerprint]; ok {
		c.mutex.Unlock()
		<-res.done
		return res.data, res.err
	}
	res := &fetchResult{done: make(chan struct{})}
	c.inflight[fingerprint] = res
	c.mutex.Unlock()

	res.data, res.err = fetch(ctx)
	close(res.done)

	c.mutex.Lock()
	delete(c.inflight, fingerprint)
	if res.err == nil {
		c.entries[fingerprint] = res.data
	}
	c.mutex.Unlock()
	if res.err != nil {
		return nil, res.err
	}
	c.config.l.Debug("cache fill", log.String("fingerprint", fingerprint))
	return res.data, nil
}

// Flush rewrites the persisted store with the current entries.
func (c *WeatherCache) Flush() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.l.Debug("cache flush", log.Int("entries", len(c.entries)))
	return c.config.store.Save(c.entries)
}
