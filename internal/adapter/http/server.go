package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/console"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/plot"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

// Renderer produces a render from already loaded inputs.
type Renderer interface {
	sharedobs.ReadinessChecker
	RenderLoaded(ctx context.Context, req pipeline.Request) (domain.Render, error)
}

// Server exposes health, metrics, and the interactive render endpoints.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	plotter    *plot.Renderer
	thresholds domain.ThresholdConfig
	logger     *slog.Logger
}

// NewServer creates an HTTP server. thresholds are used for any metric the
// request does not override.
func NewServer(addr string, renderer Renderer, thresholds domain.ThresholdConfig, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		renderer:   renderer,
		plotter:    plot.NewRenderer(),
		thresholds: thresholds,
		logger:     logger,
	}

	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(renderer))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/render", s.handleRender)
	r.Get("/api/report", s.handleReport)
	r.Get("/map.png", s.handleMap("png", "image/png"))
	r.Get("/map.svg", s.handleMap("svg", "image/svg+xml"))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	render, ok := s.render(w, r)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, render)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	render, ok := s.render(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if render.Report == nil {
		fmt.Fprintln(w, "No values to summarize.")
		return
	}
	fmt.Fprint(w, console.FormatReport(*render.Report))
}

func (s *Server) handleMap(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render, ok := s.render(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := s.plotter.WriteTo(&buf, render, format); err != nil {
			s.logger.Error("map render failed", "format", format, "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = buf.WriteTo(w)
	}
}

// render parses the request parameters and renders. On failure it writes the
// error response and returns false.
func (s *Server) render(w http.ResponseWriter, r *http.Request) (domain.Render, bool) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.Render{}, false
	}

	render, err := s.renderer.RenderLoaded(r.Context(), req)
	switch {
	case errors.Is(err, pipeline.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, err)
		return domain.Render{}, false
	case err != nil:
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return domain.Render{}, false
	}
	return render, true
}

func (s *Server) parseRequest(r *http.Request) (pipeline.Request, error) {
	q := r.URL.Query()

	thresholds := make(domain.ThresholdConfig, len(s.thresholds))
	for m, v := range s.thresholds {
		thresholds[m] = v
	}
	for param, metric := range map[string]domain.Metric{
		"gas_threshold":  domain.MetricNaturalGas,
		"elec_threshold": domain.MetricElectricity,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !domain.ValidThreshold(v) {
			return pipeline.Request{}, fmt.Errorf("invalid %s %q: must be a finite non-negative number", param, raw)
		}
		thresholds[metric] = v
	}

	req := pipeline.Request{Thresholds: thresholds}
	if raw := q.Get("mode"); raw != "" {
		mode, err := domain.ParseMode(raw)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Mode = mode
	}
	return req, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
