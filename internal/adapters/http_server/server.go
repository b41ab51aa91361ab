package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
)

type Options struct {
	Timeout time.Duration
	MaxRPS  int

	// LimitStore and Limit enable per-client limits on /api routes.
	LimitStore limiter.Store
	Limit      limiter.Rate
}

type Server struct {
	mux   *chi.Mux
	apiMW []func(http.Handler) http.Handler
}

func New(o Options) *Server {
	m := chi.NewRouter()

	// All middlewares go here, before any routes are added.
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(LoadShed(o.MaxRPS))
	if o.Timeout > 0 {
		m.Use(Timeout(o.Timeout))
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	s := &Server{mux: m}
	if o.LimitStore != nil && o.Limit.Limit > 0 {
		s.apiMW = append(s.apiMW, RateLimit(o.LimitStore, o.Limit))
	}
	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
