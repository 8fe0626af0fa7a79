package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fabricofdreams/falcon9dash/internal/chart"
	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
)

// Default server timeouts.
const (
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Server is the dashboard HTTP server.
type Server struct {
	dash     *dashboard.Dashboard
	renderer *chart.Renderer
	logger   *slog.Logger
	page     *template.Template

	version    string
	prettyHTML bool
	compress   bool

	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access and session logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRenderer sets the chart image renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithPrettyHTML indents the page markup.
func WithPrettyHTML(pretty bool) Option {
	return func(s *Server) {
		s.prettyHTML = pretty
	}
}

// WithCompression toggles brotli response compression.
func WithCompression(enabled bool) Option {
	return func(s *Server) {
		s.compress = enabled
	}
}

// WithTimeouts sets the header read and shutdown timeouts.
// Non-positive values keep the defaults.
func WithTimeouts(readHeader, shutdown time.Duration) Option {
	return func(s *Server) {
		if readHeader > 0 {
			s.readHeaderTimeout = readHeader
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// New returns a Server for d.
func New(d *dashboard.Dashboard, opts ...Option) (*Server, error) {
	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	s := &Server{
		dash:              d,
		page:              page,
		version:           "dev",
		compress:          true,
		readHeaderTimeout: DefaultReadHeaderTimeout,
		shutdownTimeout:   DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.renderer == nil {
		s.renderer = chart.NewRenderer()
	}
	return s, nil
}

// Handler returns the routed handler with request ID and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/layout", s.handleLayout)
	mux.HandleFunc("GET /api/pie", s.handlePie)
	mux.HandleFunc("GET /api/scatter", s.handleScatter)
	mux.HandleFunc("GET /chart/{file}", s.handleChart)
	mux.HandleFunc("GET /ws", s.handleSession)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.requestID(s.accessLog(mux))
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("dashboard listening",
		"url", "http://"+ln.Addr().String(),
		"records", s.dash.Store().Len(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down dashboard")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
