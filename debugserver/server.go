// Package debugserver exposes loader diagnostics and Prometheus metrics over
// HTTP while the app runs.
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/phanxgames/hologram/resources"
)

var logger = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "debugserver").Logger() }

// Source is the loader state served by the mux. *resources.Loader
// implements it.
type Source interface {
	Phase() resources.Phase
	Progress() float64
	Total() int
	Completed() int
	Failed() int
	Snapshot() []resources.EntryStatus
}

// Options configures the mux.
type Options struct {
	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string
}

// AssetsResponse is the body of GET /assets.
type AssetsResponse struct {
	Phase     string                  `json:"phase"`
	Progress  float64                 `json:"progress"`
	Total     int                     `json:"total"`
	Completed int                     `json:"completed"`
	Failed    int                     `json:"failed"`
	Entries   []resources.EntryStatus `json:"entries"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewMux returns the debug routes.
func NewMux(src Source, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}))
	}
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if src.Phase() == resources.PhaseSettled {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	r.Get("/assets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AssetsResponse{
			Phase:     src.Phase().String(),
			Progress:  src.Progress(),
			Total:     src.Total(),
			Completed: src.Completed(),
			Failed:    src.Failed(),
			Entries:   src.Snapshot(),
		})
	})

	r.Get("/assets/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		for _, e := range src.Snapshot() {
			if e.Name == name {
				writeJSON(w, http.StatusOK, e)
				return
			}
		}
		writeJSONError(w, http.StatusNotFound, resources.ErrNotFound(name).Error())
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("dur", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn().Err(err).Msg("encode response")
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("debug server listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
