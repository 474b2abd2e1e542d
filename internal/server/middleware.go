package server

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/cors"

	"github.com/matzehuels/hypergraph/pkg/observability"
)

// logRequests logs each request and reports it to the server hooks under
// its route pattern, so /vertices/{id}/anchors is one series.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnRequest(r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method, "route", route, "status", status,
			"elapsed", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}

// cors allows the configured origins to call every route, including the
// event stream.
func (s *Server) cors() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         600,
	}).Handler
}

// compressor gzips JSON and SVG replies. The event stream is not listed
// and passes through uncompressed.
func compressor() *middleware.Compressor {
	c := middleware.NewCompressor(5, "application/json", "image/svg+xml")
	c.SetEncoder("gzip", func(w io.Writer, level int) io.Writer {
		gw, _ := gzip.NewWriterLevel(w, level) // level is fixed and valid
		return gw
	})
	return c
}
