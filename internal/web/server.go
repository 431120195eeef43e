// Package web serves the browser form: company details and baseline in,
// scenario table, chart and generated roadmap out.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/internal/session"
)

const (
	// SessionCookie carries the session ID.
	SessionCookie = "carbonplan_session"

	// RoadmapFileName is the download name of a generated roadmap.
	RoadmapFileName = "roadmap.txt"

	defaultShutdownTimeout = 10 * time.Second
	defaultBodyLimit       = "64K"
)

//go:embed templates/*.html
var templateFS embed.FS

// RoadmapGenerator produces a roadmap for a calculated scenario.
type RoadmapGenerator interface {
	Generate(ctx context.Context, req roadmap.Request) (*roadmap.Roadmap, error)
}

// Config configures a Server.
type Config struct {
	Address    string
	SessionTTL time.Duration
	Defaults   scenario.Input
	Profile    company.Profile
	Version    string

	ShutdownTimeout time.Duration
}

// Server is the web form.
type Server struct {
	config    Config
	echo      *echo.Echo
	sessions  *session.Store
	generator RoadmapGenerator
	precision int
	metrics   *Metrics
	registry  *prometheus.Registry
	logger    zerolog.Logger
	page      *template.Template
	startTime time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithGenerator sets the roadmap generator. Without one, roadmap requests
// fail with an error shown on the page.
func WithGenerator(g RoadmapGenerator) Option {
	return func(s *Server) { s.generator = g }
}

// WithRegistry registers the metrics on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) { s.registry = registry }
}

// WithLogger sets the request and operation logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithPrecision sets the number of decimals shown in the scenario table.
func WithPrecision(precision int) Option {
	return func(s *Server) { s.precision = precision }
}

// New builds the server and registers its routes.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		config:    cfg,
		logger:    zerolog.Nop(),
		precision: scenario.DefaultPrecision,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "web").Logger()
	s.sessions = session.NewStore(cfg.SessionTTL, cfg.Profile, cfg.Defaults)

	page, err := template.New("index.html").
		Funcs(template.FuncMap{"has": slices.Contains[[]string, string], "num": formatNumber}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	s.page = page

	s.metrics, err = NewMetrics(s.registry, s.sessions.Len)
	if err != nil {
		return nil, err
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echomw.Recover())
	s.echo.Use(s.requestLogger())
	s.echo.Use(echomw.BodyLimit(defaultBodyLimit))
	s.echo.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "same-origin",
	}))
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			ev := s.logger.Debug()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = s.logger.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/scenario", s.handleScenario)
	s.echo.POST("/roadmap", s.handleRoadmap)
	s.echo.GET("/"+RoadmapFileName, s.handleDownload)
	s.echo.GET("/api/scenario", s.handleScenarioAPI)
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Sessions returns the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("address", s.config.Address).Msg("web form listening")
		if err := s.echo.Start(s.config.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving %s: %w", s.config.Address, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down web form")
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}
