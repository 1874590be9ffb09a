// Package httptransport is the plugin-facing half of the bridge: a small
// chi router exposing long-poll, heartbeat, and result-submission endpoints
// over plain HTTP, plus an optional Prometheus /metrics endpoint.
package httptransport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"studio-bridge/internal/jobqueue"
	"studio-bridge/internal/log"
)

// Server wraps an http.Server configured with the bridge's routes.
type Server struct {
	httpServer *http.Server
}

// Options configures a Server.
type Options struct {
	Bind           string
	Port           int
	Queue          *jobqueue.Queue
	PollTimeout    time.Duration
	LivenessWindow time.Duration
	Quiet          bool
	MetricsHandler http.Handler // nil disables GET /metrics
}

// New builds a Server ready to ListenAndServe.
func New(opts Options) *Server {
	h := &handlers{
		queue:          opts.Queue,
		pollTimeout:    opts.PollTimeout,
		livenessWindow: opts.LivenessWindow,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if !opts.Quiet {
		r.Use(accessLogMiddleware)
	}

	r.Get("/poll", h.poll)
	r.Get("/ping", h.ping)
	r.Post("/result", h.result)
	r.Get("/health", h.health)
	if opts.MetricsHandler != nil {
		r.Get("/metrics", opts.MetricsHandler.ServeHTTP)
	}
	r.NotFound(h.notFound)

	addr := opts.Bind + ":" + strconv.Itoa(opts.Port)
	return &Server{httpServer: &http.Server{Addr: addr, Handler: r}}
}

// ListenAndServe blocks serving until the server errors out or is shut down.
// It returns http.ErrServerClosed on a clean Shutdown, matching net/http's
// own convention.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests (including long polls) within ctx's
// deadline, then closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		log.WithComponent("httptransport").Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
