// Package api serves Soil Behaviour Type classification and chart rendering
// over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/sbt-cli/internal/chart"
	"github.com/sells-group/sbt-cli/internal/metrics"
	"github.com/sells-group/sbt-cli/internal/sbt"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Classifier        *sbt.Classifier
	Renderer          *chart.Renderer
	Cache             *chart.Cache
	Metrics           *metrics.Collector
	RateLimit         float64 // requests per second, 0 disables
	RateBurst         int
	CORSOrigins       []string
	MaxPoints         int
	Workers           int
	ParallelThreshold int
	DefaultMode       chart.Mode
	DefaultFormat     string
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	classifier        *sbt.Classifier
	renderer          *chart.Renderer
	cache             *chart.Cache
	metrics           *metrics.Collector
	limiter           *rate.Limiter
	corsOrigins       []string
	maxPoints         int
	workers           int
	parallelThreshold int
	defaultMode       chart.Mode
	defaultFormat     string
}

// NewServer creates a Server from opts.
func NewServer(opts Options) *Server {
	s := &Server{
		classifier:        opts.Classifier,
		renderer:          opts.Renderer,
		cache:             opts.Cache,
		metrics:           opts.Metrics,
		corsOrigins:       opts.CORSOrigins,
		maxPoints:         opts.MaxPoints,
		workers:           opts.Workers,
		parallelThreshold: opts.ParallelThreshold,
		defaultMode:       opts.DefaultMode,
		defaultFormat:     opts.DefaultFormat,
	}
	if s.classifier == nil {
		s.classifier = sbt.NewClassifier(nil)
	}
	if s.renderer == nil {
		s.renderer = chart.NewRenderer(16, 14, nil)
	}
	if s.maxPoints <= 0 {
		s.maxPoints = 100000
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	if s.defaultMode == "" {
		s.defaultMode = chart.ModeColored
	}
	if s.defaultFormat == "" {
		s.defaultFormat = chart.FormatPNG
	}
	if len(s.corsOrigins) == 0 {
		s.corsOrigins = []string{"*"}
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache"},
		MaxAge:         300,
	}))
	r.Use(s.instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/classify", s.handleClassify)
		r.Get("/zones", s.handleZones)
		r.Post("/chart", s.handleChart)
		r.Get("/chart/stats", s.handleChartStats)
	})

	return r
}

// requestID propagates X-Request-ID, minting one when the client sent none.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status, time.Since(start))

		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
		)
	})
}
