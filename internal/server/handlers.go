// Read-only JSON handlers for the local API.

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
)

// LoggingMiddleware logs each request's method, path, and status code.
func LoggingMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", recorder.status)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := shared.MarshalJSON(payload, true)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError maps shared sentinels to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, shared.ErrAuthRequired), errors.Is(err, shared.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrRateLimited):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// StatusHandler reports whether a session is active and for which account.
type StatusHandler struct {
	Identity services.Identity
}

func (h *StatusHandler) Routes() []string {
	return []string{"/api/status"}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	account := h.Identity.CurrentAccount()
	if account == nil {
		writeJSON(w, http.StatusOK, map[string]any{"signed_in": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"signed_in":    true,
		"email":        account.Email,
		"display_name": account.DisplayName,
	})
}

// FavoritesHandler serves the signed-in account's favorites document.
type FavoritesHandler struct {
	Accessor *tasks.FavoritesAccessor
}

func (h *FavoritesHandler) Routes() []string {
	return []string{"/api/favorites"}
}

func (h *FavoritesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Accessor.Favorites(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// SearchHandler proxies multi-search queries to the catalog.
type SearchHandler struct {
	Metadata services.Metadata
}

func (h *SearchHandler) Routes() []string {
	return []string{"/api/search"}
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing q parameter"})
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page parameter"})
			return
		}
		page = parsed
	}

	results, err := h.Metadata.SearchMulti(r.Context(), query, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ReviewsHandler serves locally stored review submissions.
type ReviewsHandler struct {
	Reviews models.Repository[*models.Review]
}

func (h *ReviewsHandler) Routes() []string {
	return []string{"/api/reviews"}
}

func (h *ReviewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.List(nil)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]map[string]any, 0, len(reviews))
	for _, review := range reviews {
		payload = append(payload, map[string]any{
			"id":      review.ID(),
			"name":    review.Name(),
			"subject": review.Subject(),
			"body":    review.Body(),
			"rating":  review.Rating(),
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

// NewRouter assembles the read-only API router with logging.
func NewRouter(logger *log.Logger, identity services.Identity, metadata services.Metadata, accessor *tasks.FavoritesAccessor, reviews models.Repository[*models.Review]) *BasicRouter {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger))
	router.Get("/api/status", &StatusHandler{Identity: identity})
	router.Get("/api/favorites", &FavoritesHandler{Accessor: accessor})
	router.Get("/api/search", &SearchHandler{Metadata: metadata})
	router.Get("/api/reviews", &ReviewsHandler{Reviews: reviews})
	return router
}
