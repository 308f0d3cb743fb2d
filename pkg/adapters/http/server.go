package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/internal/logging"
	"github.com/aretw0/penrose/internal/lsystem"
	"github.com/aretw0/penrose/internal/presentation/graph"
	"github.com/aretw0/penrose/pkg/adapters/memory"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/memo"
	"github.com/aretw0/penrose/pkg/ports"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/aretw0/penrose/pkg/tiling"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the correlation id assigned to the request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Server serves generations over HTTP.
type Server struct {
	Generator ports.Generator
	Memo      *memo.Memo
	Metrics   *Metrics
	Logger    *slog.Logger
}

type config struct {
	cache   ports.SegmentCache
	locker  ports.DistributedLocker
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*config)

// WithCache memoises results in cache instead of process memory.
func WithCache(cache ports.SegmentCache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithLocker coordinates generation across replicas sharing a cache.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(c *config) {
		c.locker = locker
	}
}

// WithMetrics exposes metrics on /metrics and counts cache hits.
// Generation metrics are recorded by the generator via Metrics.Hooks.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the generator.
func NewHandler(gen ports.Generator, opts ...Option) (http.Handler, error) {
	cfg := &config{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cache == nil {
		cfg.cache = memory.NewCache()
	}

	memoOpts := []memo.Option{memo.WithLogger(cfg.logger)}
	if cfg.locker != nil {
		memoOpts = append(memoOpts, memo.WithLocker(cfg.locker))
	}

	server := &Server{
		Generator: gen,
		Memo:      memo.New(gen, cfg.cache, memoOpts...),
		Metrics:   cfg.metrics,
		Logger:    cfg.logger,
	}

	router, err := loadRouter(context.Background())
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(server.assignRequestID)
	r.Use(server.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router, server.writeError))
		r.Get("/generate", server.Generate)
		r.Get("/stats", server.Stats)
		r.Get("/rules", server.Rules)
		r.Get("/health", server.Health)
		r.Get("/info", server.Info)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader+", X-Cache")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) assignRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()),
		)
	})
}

type generateResponse struct {
	*domain.Result
	Cached bool `json:"cached"`
}

// Generate handles GET /generate.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	params, err := bindGenerateParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	req := domain.Request{
		Depth:      valueOr(params.Depth, DefaultDepth),
		StepLength: valueOr(params.Length, DefaultLength),
	}
	if err := schema.ValidateRequest(map[string]any{"depth": req.Depth, "step_length": req.StepLength}); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, hit, err := s.Memo.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	cacheHeader := "MISS"
	if hit {
		cacheHeader = "HIT"
		if s.Metrics != nil {
			s.Metrics.CacheHits.WithLabelValues(res.Tiling).Inc()
		}
	}
	w.Header().Set("X-Cache", cacheHeader)

	if !valueOr(params.Segments, true) {
		trimmed := *res
		trimmed.Segments = nil
		res = &trimmed
	}
	s.writeJSON(w, r, http.StatusOK, generateResponse{Result: res, Cached: hit})
}

type growthResponse struct {
	Tiling string                   `json:"tiling"`
	Depth  int                      `json:"depth"`
	Factor float64                  `json:"factor"`
	Passes []domain.GenerationStats `json:"passes"`
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	params, err := bindStatsParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	depth := valueOr(params.Depth, DefaultDepth)
	stats, err := s.Generator.Growth(depth)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, growthResponse{
		Tiling: s.Generator.Tiling().Name,
		Depth:  depth,
		Factor: lsystem.GrowthFactor(stats),
		Passes: stats,
	})
}

// Rules handles GET /rules.
func (s *Server) Rules(w http.ResponseWriter, r *http.Request) {
	params, err := bindRulesParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	t := s.Generator.Tiling()
	if valueOr(params.Format, "json") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(t, nil)))
		return
	}
	s.writeJSON(w, r, http.StatusOK, tiling.FromTiling(t))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type infoResponse struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Tiling        string `json:"tiling"`
	MaxDepth      int    `json:"max_depth"`
	SegmentBudget int    `json:"segment_budget"`
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, infoResponse{
		Name:          "penrose",
		Version:       penrose.Version,
		Tiling:        s.Generator.Tiling().Name,
		MaxDepth:      s.Generator.MaxDepth(),
		SegmentBudget: s.Generator.SegmentBudget(),
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var agg *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrInvalidDepth),
		errors.Is(err, domain.ErrInvalidStepLength),
		errors.As(err, &agg):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBudgetExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrMalformedRule),
		errors.Is(err, domain.ErrUnexpandedSymbol),
		errors.Is(err, domain.ErrStackUnderflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	} else {
		s.Logger.Warn("request rejected", "status", status, "err", err, "request_id", RequestID(r.Context()))
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error(), RequestID: RequestID(r.Context())})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err, "request_id", RequestID(r.Context()))
	}
}
