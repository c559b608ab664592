package di

import (
	"context"
	"fmt"
	"io"

	"taskwatch/internal/application/port/input"
	"taskwatch/internal/application/port/output"
	"taskwatch/internal/application/usecase/poller"
	"taskwatch/internal/domain/entity"
	"taskwatch/internal/infrastructure/dom/htmldoc"
	"taskwatch/internal/infrastructure/dom/roddoc"
	"taskwatch/internal/infrastructure/env"
	"taskwatch/internal/infrastructure/httpfetch"
	"taskwatch/internal/infrastructure/logger"
)

type Container struct {
	Document output.DocumentPort
	Fetcher  output.TaskFetcher
	Logger   output.LoggerPort
	Poller   input.TaskPoller

	closers []io.Closer
}

type Config struct {
	Settings env.Settings
	// LogName names the log file.
	LogName string

	// Exactly one document source is used: Document, then PageURL (live browser), then HTMLFile.
	Document output.DocumentPort
	PageURL  string
	HTMLFile string
	// Origin of HTMLFile, needed when Settings.BaseURL is empty.
	Origin string

	// Logger replaces the file logger, e.g. in tests.
	Logger output.LoggerPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	c := &Container{}

	pollCfg, err := PollerConfig(cfg.Settings)
	if err != nil {
		return nil, err
	}

	c.Logger = cfg.Logger
	if c.Logger == nil {
		logCfg := logger.DefaultConfig(cfg.LogName)
		logCfg.Dir = cfg.Settings.Log.Dir
		logCfg.Level = cfg.Settings.Log.Level
		logCfg.Console = cfg.Settings.Log.Console
		log, err := logger.NewLoggerAdapter(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		c.Logger = log
		c.closers = append(c.closers, log)
	}

	c.Document, err = c.openDocument(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	fetcher := httpfetch.NewClient(httpfetch.Config{
		Timeout: cfg.Settings.RequestTimeout,
		Headers: cfg.Settings.Headers,
	})
	c.Fetcher = fetcher

	p, err := poller.New(pollCfg, c.Document, fetcher, c.Logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create poller: %w", err)
	}
	c.Poller = p

	return c, nil
}

func (c *Container) openDocument(ctx context.Context, cfg Config) (output.DocumentPort, error) {
	switch {
	case cfg.Document != nil:
		return cfg.Document, nil
	case cfg.PageURL != "":
		browserCfg := roddoc.DefaultConfig()
		browserCfg.Headless = cfg.Settings.Browser.Headless
		browserCfg.NoSandbox = cfg.Settings.Browser.NoSandbox
		browserCfg.ControlURL = cfg.Settings.Browser.ControlURL
		page, err := roddoc.Open(ctx, browserCfg, cfg.PageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open browser page: %w", err)
		}
		c.closers = append([]io.Closer{page}, c.closers...)
		return page, nil
	case cfg.HTMLFile != "":
		doc, err := htmldoc.ParseFile(cfg.HTMLFile, cfg.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to load page: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("no document source configured")
	}
}

// PollerConfig converts file/env settings into the immutable poller configuration.
func PollerConfig(s env.Settings) (poller.Config, error) {
	cfg := poller.DefaultConfig()
	cfg.Interval = s.Interval
	cfg.BaseURL = s.BaseURL
	cfg.Path = s.Path
	cfg.Protocol = poller.Protocol(s.Protocol)
	cfg.Markers = entity.NewMarkerSet(s.Markers...)
	cfg.RowClass = s.RowClass
	cfg.TaskIDAttr = s.TaskIDAttr
	cfg.ChecksumAttr = s.ChecksumAttr
	cfg.FailureMarker = s.FailureMarker
	cfg.FailureClass = s.FailureClass
	cfg.SeverityClasses = append([]string(nil), s.SeverityClasses...)

	if err := cfg.Validate(); err != nil {
		return poller.Config{}, err
	}
	return cfg, nil
}

func (c *Container) Close() {
	if f, ok := c.Fetcher.(*httpfetch.Client); ok {
		f.Close()
	}
	for _, cl := range c.closers {
		_ = cl.Close()
	}
	c.closers = nil
}
