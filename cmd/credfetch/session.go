package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sadopc/credfetch/internal/config"
	"github.com/sadopc/credfetch/internal/core/cookies"
	"github.com/sadopc/credfetch/internal/fetch"
	"github.com/sadopc/credfetch/internal/host"
	"github.com/sadopc/credfetch/internal/logging"
	"github.com/sadopc/credfetch/internal/metrics"
	"github.com/sadopc/credfetch/internal/transport"
)

// session is everything one CLI invocation needs: the persisted cookie
// jar, the event bus and the client wired to both.
type session struct {
	cfg      config.Config
	flags    *globalFlags
	logger   *zap.Logger
	jar      *cookies.Jar
	bus      *host.Bus
	metrics  *metrics.Metrics
	client   *fetch.Client
	reloaded bool
}

func openSession(g *globalFlags, baseURL string) (*session, error) {
	cfg := config.Load(g.configPath)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		flags:   g,
		logger:  logger,
		jar:     cookies.New(),
		bus:     host.NewBus(),
		metrics: metrics.New(),
	}
	s.metrics.Listen(s.bus)

	if cfg.CookieFile != "" {
		if err := s.jar.LoadFromFile(cfg.CookieFile); err != nil {
			logger.Warn("ignoring unreadable cookie file", zap.String("path", cfg.CookieFile), zap.Error(err))
		}
	}

	rt, err := transport.New(cfg.Transport())
	if err != nil {
		return nil, err
	}

	s.client = fetch.New(host.NewEnv(s.bus, s.reload))
	s.client.SetCookieJar(s.jar)
	s.client.SetTransport(rt)
	s.client.SetTimeout(cfg.Timeout)
	s.client.SetLogger(logger.Named("fetch"))
	if err := s.client.SetBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	logger.Debug("session ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("cookie_file", cfg.CookieFile),
		zap.Strings("hosts", s.jar.Hosts()))
	return s, nil
}

// reload is the CLI's page reload: the session is dropped by wiping the
// cookie jar, which close then persists.
func (s *session) reload() {
	s.reloaded = true
	s.jar.Clear()
	s.metrics.ObserveReload()
	s.logger.Warn("session rejected with 401, cookie jar cleared")
}

// close persists the jar and, if asked, dumps the counters to stderr.
func (s *session) close(stderr io.Writer) error {
	defer func() { _ = s.logger.Sync() }()

	if s.cfg.CookieFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.cfg.CookieFile), 0700); err != nil {
			return fmt.Errorf("creating cookie directory: %w", err)
		}
		if err := s.jar.SaveToFile(s.cfg.CookieFile); err != nil {
			return err
		}
	}

	if s.flags.metrics {
		if err := s.metrics.Write(stderr); err != nil {
			return err
		}
	}
	return nil
}
