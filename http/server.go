// Package http provides the HTTP transport for the extraction service:
// the follower endpoint with its admission gate, the screenshot pages,
// and the metadata/ops endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/profilepeek/profilepeek"
	"golang.org/x/sync/semaphore"
)

// DefaultQueueSize is the default admission-queue capacity.
const DefaultQueueSize = 10

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server is the HTTP server for the extraction service. Assign the
// exported fields before calling Open.
//
// Extraction endpoints are gated by a bounded admission queue: when all
// slots are taken, new requests are rejected immediately with 429
// rather than queued.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	ln     net.Listener

	sem       *semaphore.Weighted
	queueSize int64
	inflight  atomic.Int64

	// Addr is the TCP address to listen on (e.g., ":8080").
	Addr string

	// Followers resolves usernames to follower counts.
	Followers profilepeek.FollowerService

	// Screenshots captures pages for the screenshot endpoint. Optional.
	Screenshots profilepeek.Screenshotter

	// Links extracts hyperlinks from captured pages. Optional.
	Links profilepeek.LinkExtractor

	// Cache backs the /cache/stats endpoint. Optional.
	Cache profilepeek.CountCache

	// BrowserHealthy reports browser liveness for /health. Optional.
	BrowserHealthy func() bool

	// Logger records requests and internal errors. Optional.
	Logger *slog.Logger
}

// NewServer creates a Server with an admission queue of the given
// capacity. A capacity of zero rejects every extraction request.
func NewServer(queueSize int) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		sem:       semaphore.NewWeighted(int64(queueSize)),
		queueSize: int64(queueSize),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /cache/stats", s.handleCacheStats)
	s.mux.HandleFunc("GET /followers/{username}", s.handleFollowers)
	s.mux.HandleFunc("GET /followers/", s.handleFollowers)
	s.mux.HandleFunc("GET /screenshot", s.handleScreenshotForm)
	s.mux.HandleFunc("POST /screenshot", s.handleScreenshot)

	s.server = &http.Server{Handler: s.Handler()}
	return s
}

// Handler returns the server's handler with request logging applied.
// Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Open begins listening on Addr and serves in a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("http server stopped", "error", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the listening server. Only valid after a
// successful Open.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// admit reserves an admission-queue slot. It fails fast: a full queue
// returns EUNAVAILABLE instead of blocking.
func (s *Server) admit() (release func(), err error) {
	if !s.sem.TryAcquire(1) {
		return nil, profilepeek.Errorf(profilepeek.EUNAVAILABLE, "extraction queue is full, try again later")
	}
	s.inflight.Add(1)
	return func() {
		s.inflight.Add(-1)
		s.sem.Release(1)
	}, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "profilepeek",
		"endpoints": map[string]string{
			"/followers/{username}": "Get the follower count for a username",
			"/screenshot":           "Render a screenshot of a URL and list its links",
			"/health":               "Health check",
			"/cache/stats":          "Cache entry counts",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "healthy",
		"queue": map[string]int64{
			"capacity":  s.queueSize,
			"in_flight": s.inflight.Load(),
		},
	}
	if s.BrowserHealthy != nil {
		resp["browser"] = s.BrowserHealthy()
	}
	if s.Cache != nil {
		resp["cache"] = s.Cache.Stats()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := profilepeek.CacheStats{}
	if s.Cache != nil {
		stats = s.Cache.Stats()
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	release, err := s.admit()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer release()

	result, err := s.Followers.Followers(r.Context(), r.PathValue("username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"username":  result.Username,
		"followers": result.Count,
		"cached":    result.Cached,
		"timestamp": result.Timestamp.Format(time.RFC3339),
		"status":    "success",
	})
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(code string) int {
	switch code {
	case profilepeek.EINVALID:
		return http.StatusBadRequest
	case profilepeek.ENOTFOUND:
		return http.StatusNotFound
	case profilepeek.EUNAVAILABLE:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError serializes an error response. Internal error messages are
// passed through verbatim, matching the original service's behavior.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := profilepeek.ErrorCode(err)
	if code == profilepeek.EINTERNAL {
		s.logger().Error("internal error", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, errorStatus(code), map[string]string{
		"status": "error",
		"error":  profilepeek.ErrorMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("encoding response", "error", err)
	}
}

// logRequests tags every request with an id and logs its outcome.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger().Info("request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
