package property

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"propsearch/internal/platform/middleware"
	dErrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/httputil"
)

// Handler handles the listing endpoints.
type Handler struct {
	properties *Service
	logger     *slog.Logger
}

// NewHandler creates a listing Handler.
func NewHandler(properties *Service, logger *slog.Logger) *Handler {
	return &Handler{properties: properties, logger: logger}
}

// Register registers the property routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/properties", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/search", h.handleSearch)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.properties.Create(r.Context(), input)
	if err != nil {
		h.logError(r, "create property", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	properties, err := h.properties.List(r.Context(), limit)
	if err != nil {
		h.logError(r, "list properties", err)
		httputil.WriteError(w, err)
		return
	}
	if properties == nil {
		properties = []*Property{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.properties.Get(r.Context(), id)
	if err != nil {
		h.logError(r, "get property", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var input UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.properties.Update(r.Context(), id, input)
	if err != nil {
		h.logError(r, "update property", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.properties.Delete(r.Context(), id); err != nil {
		h.logError(r, "delete property", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := SearchQuery{LocationName: params.Get("q")}
	if q.LocationName == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing query parameter q"))
		return
	}

	latRaw, lngRaw := params.Get("lat"), params.Get("lng")
	if (latRaw == "") != (lngRaw == "") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "lat and lng must be supplied together"))
		return
	}
	if latRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "lat must be a number"))
			return
		}
		lng, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "lng must be a number"))
			return
		}
		q.Lat, q.Lng = &lat, &lng
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		q.Limit = limit
	}

	result, err := h.properties.Search(r.Context(), q)
	if err != nil {
		h.logError(r, "search properties", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// logError keeps caller mistakes out of the error log.
func (h *Handler) logError(r *http.Request, op string, err error) {
	if dErrors.Is(err, dErrors.CodeBadRequest) ||
		dErrors.Is(err, dErrors.CodeNotFound) ||
		dErrors.Is(err, dErrors.CodeUnprocessable) {
		return
	}
	h.logger.ErrorContext(r.Context(), op,
		"request_id", middleware.GetRequestID(r.Context()), "error", err)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid property id")
	}
	return id, nil
}
