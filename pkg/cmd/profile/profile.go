package profile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/birkenlabs/birkentempprofiler/log"
	"github.com/birkenlabs/birkentempprofiler/pkg/cache"
	"github.com/birkenlabs/birkentempprofiler/pkg/chart"
	"github.com/birkenlabs/birkentempprofiler/pkg/config"
	"github.com/birkenlabs/birkentempprofiler/pkg/gpx"
	"github.com/birkenlabs/birkentempprofiler/pkg/model"
	profiler "github.com/birkenlabs/birkentempprofiler/pkg/profile"
	"github.com/birkenlabs/birkentempprofiler/pkg/timeline"
	"github.com/birkenlabs/birkentempprofiler/pkg/track"
	"github.com/birkenlabs/birkentempprofiler/pkg/weather"
)

//nolint:funlen // by design
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "builds the temperature/elevation profile and renders the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFromConfig(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.Race,
		"race",
		"r",
		"rennet",
		"race variant (rennet, rittet, lopet)")
	cmd.Flags().StringVarP(&config.Start,
		"start",
		"s",
		"",
		"race start time in ISO-8601 format (default: now)")
	cmd.Flags().IntVarP(&config.Hours,
		"hours",
		"t",
		4,
		"race duration, hour part")
	cmd.Flags().IntVarP(&config.Minutes,
		"minutes",
		"m",
		0,
		"race duration, minute part")
	cmd.Flags().BoolVar(&config.FreshWeather,
		"fresh-weather",
		false,
		"bypass the weather cache and overwrite its entries")
	cmd.Flags().StringVar(&config.TrackFile,
		"track-file",
		"",
		"local GPX file to use instead of downloading the route")
	cmd.Flags().BoolVarP(&config.Resume,
		"resume",
		"d",
		false,
		"reuse a previously assembled profile if present")
	cmd.Flags().StringVarP(&config.ChartFile,
		"out",
		"o",
		"temperatureProfile.html",
		"path of the rendered chart document")
	cmd.Flags().IntVar(&config.MaxParallel,
		"max-parallel",
		4,
		"max concurrent weather fetches")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (text, json)")
	cmd.Flags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules for per-subsystem log levels")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() (*log.Logger, error) {
	var logger *log.Logger
	if config.LogFormat == "json" {
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(false))
	} else {
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(false))
	}
	if config.LogFilter != "" {
		filtered, err := logger.WithFilterRules(config.LogFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid log filter: %w", err)
		}
		logger = filtered
	}
	log.ResetDefault(logger)
	return logger, nil
}

type runOptions struct {
	source       track.Source
	fetcher      profiler.Fetcher
	cacheStore   cache.Store
	profileStore profiler.Store
	chartFile    string
	start        time.Time
	fresh        bool
	resume       bool
	maxParallel  int
	logger       *log.Logger
}

// resolveOptions validates all user input before any network activity.
func resolveOptions(logger *log.Logger) (*runOptions, error) {
	race, err := track.ParseRace(config.Race)
	if err != nil {
		return nil, err
	}

	if config.Hours < 0 || config.Minutes < 0 {
		return nil, fmt.Errorf("invalid duration: %dh %dm", config.Hours, config.Minutes)
	}
	totalTime := config.Hours*3600 + config.Minutes*60
	if totalTime <= 0 {
		return nil, fmt.Errorf("invalid duration: %dh %dm", config.Hours, config.Minutes)
	}

	start := time.Now()
	if config.Start != "" {
		if start, err = timeline.ParseStart(config.Start); err != nil {
			return nil, err
		}
	}

	var source track.Source
	if config.TrackFile != "" {
		source = &track.FileSource{Path: config.TrackFile}
	} else {
		source = track.NewTrackerSource(race, totalTime,
			track.WithTrackerURL(config.TrackerURL),
			track.WithLogger(logger.Named("track")))
	}

	return &runOptions{
		source: source,
		fetcher: weather.NewClient(
			weather.WithBaseURL(config.WeatherURL),
			weather.WithLogger(logger.Named("weather"))),
		cacheStore:   cache.NewFileStore(config.CacheFile),
		profileStore: profiler.NewFileStore(config.ProfileFile),
		chartFile:    config.ChartFile,
		start:        start,
		fresh:        config.FreshWeather,
		resume:       config.Resume,
		maxParallel:  config.MaxParallel,
		logger:       logger,
	}, nil
}

func runFromConfig(ctx context.Context) error {
	logger, err := setupLogger()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(logger)
	if err != nil {
		return err
	}
	return runProfile(ctx, opts)
}

// runProfile owns the overall control flow: resume fast path or the
// full parse/shift/fetch/match pipeline, then persist and render.
func runProfile(ctx context.Context, opts *runOptions) error {
	logger := opts.logger
	if logger == nil {
		logger = log.Default()
	}

	var assembled *model.Profile
	if opts.resume && opts.profileStore.Exists() {
		logger.Info("reusing previously assembled profile")
		loaded, err := opts.profileStore.Load()
		if err != nil {
			return fmt.Errorf("loading persisted profile: %w", err)
		}
		assembled = loaded
	} else {
		built, err := buildProfile(ctx, opts, logger)
		if err != nil {
			return err
		}
		assembled = built
	}

	if err := opts.profileStore.Save(assembled); err != nil {
		return fmt.Errorf("persisting profile: %w", err)
	}
	if err := chart.RenderFile(assembled, opts.chartFile); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	logger.Info("profile ready",
		log.Int("samples", assembled.Len()), log.String("chart", opts.chartFile))
	return nil
}

func buildProfile(
	ctx context.Context, opts *runOptions, logger *log.Logger,
) (*model.Profile, error) {
	markup, err := opts.source.GPX(ctx)
	if err != nil {
		return nil, err
	}
	parsed, err := gpx.Parse(markup)
	if err != nil {
		return nil, err
	}
	logger.Info("track parsed", log.Int("samples", parsed.Len()))

	if err := timeline.Shift(parsed, opts.start); err != nil {
		return nil, err
	}

	weatherCache, err := cache.New(
		cache.WithStore(opts.cacheStore),
		cache.WithFresh(opts.fresh),
		cache.WithLogger(logger.Named("cache")))
	if err != nil {
		return nil, fmt.Errorf("loading weather cache: %w", err)
	}

	assembler := profiler.NewAssembler(
		profiler.WithCache(weatherCache),
		profiler.WithFetcher(opts.fetcher),
		profiler.WithMaxParallel(opts.maxParallel),
		profiler.WithLogger(logger.Named("assembler")))
	assembled, err := assembler.Assemble(ctx, parsed)
	if err != nil {
		return nil, err
	}

	if err := weatherCache.Flush(); err != nil {
		return nil, fmt.Errorf("flushing weather cache: %w", err)
	}
	return assembled, nil
}
