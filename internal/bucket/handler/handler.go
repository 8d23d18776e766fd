// Package handler exposes the geo-bucket read API. Write traffic reaches the
// engine through the property endpoints, not here.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/service"
	"propsearch/internal/platform/middleware"
	dErrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/httputil"
)

// Service defines the engine operations the bucket endpoints need.
type Service interface {
	ListBuckets(ctx context.Context) ([]*models.GeoBucket, error)
	Locate(ctx context.Context, cellID string) (*models.GeoBucket, error)
	LocateByName(ctx context.Context, rawName string) (*models.GeoBucket, error)
	Stats(ctx context.Context, includeDetails bool) (*models.BucketStats, error)
	Resolve(ctx context.Context, q service.Query) (*service.Result, error)
}

// Handler handles geo-bucket endpoints.
type Handler struct {
	buckets Service
	logger  *slog.Logger
}

// New creates a new bucket Handler.
func New(buckets Service, logger *slog.Logger) *Handler {
	return &Handler{buckets: buckets, logger: logger}
}

// Register registers the bucket routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/geo-buckets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
		r.Get("/resolve", h.handleResolve)
		r.Get("/locate", h.handleLocate)
		r.Get("/{cellID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.buckets.ListBuckets(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list buckets",
			"request_id", middleware.GetRequestID(r.Context()), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"buckets": buckets,
		"count":   len(buckets),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cellID := chi.URLParam(r, "cellID")

	bucket, err := h.buckets.Locate(r.Context(), cellID)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(r.Context(), "locate bucket",
				"request_id", middleware.GetRequestID(r.Context()), "cell_id", cellID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bucket)
}

// handleLocate geocodes an exact location name to its bucket centroid.
func (h *Handler) handleLocate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing query parameter name"))
		return
	}

	bucket, err := h.buckets.LocateByName(r.Context(), name)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) && !dErrors.Is(err, dErrors.CodeUnprocessable) {
			h.logger.ErrorContext(r.Context(), "locate by name",
				"request_id", middleware.GetRequestID(r.Context()), "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bucket)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	details := r.URL.Query().Get("details") == "true"

	stats, err := h.buckets.Stats(r.Context(), details)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "bucket stats",
			"request_id", middleware.GetRequestID(r.Context()), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// handleResolve runs the layered resolution directly, mostly for map views
// and debugging; property search goes through the property endpoints.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	rawName := r.URL.Query().Get("q")
	if rawName == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing query parameter q"))
		return
	}

	point, err := parseOptionalPoint(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.buckets.Resolve(r.Context(), service.Query{RawName: rawName, Point: point})
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(r.Context(), "resolve query",
				"request_id", middleware.GetRequestID(r.Context()), "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	buckets := result.Buckets
	if buckets == nil {
		buckets = []*models.GeoBucket{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"query":          rawName,
		"terminal_layer": result.TerminalLayer,
		"buckets":        buckets,
		"count":          len(buckets),
	})
}

// parseOptionalPoint accepts either both lat and lng or neither.
func parseOptionalPoint(latRaw, lngRaw string) (*orb.Point, error) {
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "lat and lng must be supplied together")
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "lng must be a number")
	}
	return &orb.Point{lng, lat}, nil
}
