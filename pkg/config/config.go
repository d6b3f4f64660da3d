package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	Race         string // race variant (rennet, rittet, lopet)
	Start        string // start time in ISO-8601 format
	Hours        int    // race duration, hour part
	Minutes      int    // race duration, minute part
	TrackFile    string // optional local GPX file overriding the tracker download
	TrackerURL   string // base URL of the route tracker service
	WeatherURL   string // base URL of the weather forecast service
	FreshWeather bool   // if true, bypass cache lookups and overwrite entries
	Resume       bool   // if true, reuse a previously persisted profile
	CacheFile    string // path of the persisted weather cache blob
	ProfileFile  string // path of the persisted profile document
	ChartFile    string // path of the rendered chart document
	MaxParallel  int    // max concurrent weather fetches
	LogLevel     string // sets the log level (zap log level values)
	LogFormat    string // text vs json
	LogFilter    string // zapfilter rules for per-subsystem levels
)
