package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/margins/pkg/cache"
	"github.com/matzehuels/margins/pkg/pipeline"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 10 << 20

// Server exposes a pipeline runner over HTTP.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout bounds the time spent on a single request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/datasets", s.handleDatasets)
		r.Get("/datasets/{name}", s.handleDataset)
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// runnerFor returns a runner whose cache keys are scoped to the client, if
// the request names one.
func (s *Server) runnerFor(req *http.Request) *pipeline.Runner {
	client := req.Header.Get(ClientIDHeader)
	if client == "" {
		return s.runner
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "client:"+client+":")
	return &scoped
}
