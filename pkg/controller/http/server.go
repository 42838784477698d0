package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/frontend"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/utils/apperr"
)

// ChartRenderer is a Renderer that knows the media type it produces
type ChartRenderer interface {
	interfaces.Renderer
	ContentType() string
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router    chi.Router
	dashboard interfaces.Dashboard
	renderers map[string]ChartRenderer
}

// NewServer creates a new HTTP server. renderers maps a file extension
// such as "png" to the renderer serving it.
func NewServer(
	ctx context.Context,
	addr string,
	dashboard interfaces.Dashboard,
	renderers map[string]ChartRenderer,
) (*Server, error) {
	if dashboard == nil {
		return nil, goerr.New("dashboard is required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	h := &handler{dashboard: dashboard, renderers: renderers}

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Use(CORS)
		r.Get("/views", h.handleViews)
		r.Post("/selection/range", h.handleSetRange)
		r.Post("/selection/week", h.handleSetWeek)
		r.Get("/dataset", h.handleDataset)
		r.Post("/dataset/reload", h.handleReload)
		r.Get("/charts/{view}.{format}", h.handleChart)
	})

	fs, err := frontend.GetHTTPFS()
	if err == nil {
		var spa *SPAHandler
		spa, err = NewSPAHandler(fs)
		if err == nil {
			ctxlog.From(ctx).Info("Serving frontend from embedded files")
			router.Handle("/*", spa)
		}
	}
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:    router,
		dashboard: dashboard,
		renderers: renderers,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "prpulse",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>prpulse</title></head>
<body>
    <h1>prpulse</h1>
    <p><img src="/api/charts/bar.png" alt="weekly items"></p>
    <p><img src="/api/charts/scatter.png" alt="open item age"> <img src="/api/charts/pie.png" alt="labels"></p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// statusOf maps an error to the HTTP status returned to the client
func statusOf(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrDatasetMissing):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs server side failures and writes the error response
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("Request rejected", "error", err, "status", status)
	}
	writeError(w, err, status)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
