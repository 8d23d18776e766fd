package property_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"propsearch/internal/bucket/service"
	"propsearch/internal/bucket/store/memory"
	"propsearch/internal/geo"
	"propsearch/internal/location/matcher"
	"propsearch/internal/location/normalizer"
	"propsearch/internal/property"
)

// newRouter wires the property endpoints over in-memory stores and a real
// resolution engine, so handler tests cover the full request path.
func newRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	buckets := service.New(
		geo.NewGrid(9),
		normalizer.New(normalizer.DefaultConfig()),
		matcher.New(),
		memory.New(),
		service.Config{},
		service.WithLogger(logger),
	)
	properties := property.NewService(property.NewMemoryStore(), buckets, logger)

	r := chi.NewRouter()
	property.NewHandler(properties, logger).Register(r)
	return r
}

func createListing(t *testing.T, router chi.Router, input property.CreateInput) property.Property {
	t.Helper()

	body, err := json.Marshal(input)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/properties/", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created property.Property
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestPropertyEndpoints(t *testing.T) {
	router := newRouter(t)

	created := createListing(t, router, property.CreateInput{
		Title:        "3 bedroom flat",
		LocationName: "Sangotedo, Lagos",
		Lat:          6.4698,
		Lng:          3.6285,
		Price:        45_000_000,
		Bedrooms:     3,
		Bathrooms:    2,
	})
	require.NotEmpty(t, created.BucketCellID)

	t.Run("get returns the listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/"+created.ID.String(), nil))
		require.Equal(t, http.StatusOK, w.Code)

		var got property.Property
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("get with malformed id is a bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/not-a-uuid", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list returns the listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Properties []*property.Property `json:"properties"`
			Count      int                  `json:"count"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Equal(t, 1, body.Count)
		require.Equal(t, created.ID, body.Properties[0].ID)
	})

	t.Run("search finds the listing by misspelled location", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/search?q=sangotedo", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result property.SearchResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		require.Len(t, result.Properties, 1)
		require.Equal(t, created.ID, result.Properties[0].ID)
	})

	t.Run("search without q is a bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/search", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search with unknown location is empty, not an error", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/search?q=ikorodu", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result property.SearchResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		require.Empty(t, result.Properties)
	})

	t.Run("create with stoplist-only location is unprocessable", func(t *testing.T) {
		body, err := json.Marshal(property.CreateInput{
			Title:        "Mystery flat",
			LocationName: "Lagos Nigeria",
			Lat:          6.45,
			Lng:          3.40,
			Price:        1_000_000,
			Bedrooms:     1,
			Bathrooms:    1,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/properties/", bytes.NewReader(body)))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("update then delete", func(t *testing.T) {
		body, err := json.Marshal(property.UpdateInput{
			Title:        "3 bedroom flat, renovated",
			LocationName: "Sangotedo, Lagos",
			Lat:          6.4698,
			Lng:          3.6285,
			Price:        50_000_000,
			Bedrooms:     3,
			Bathrooms:    2,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/properties/"+created.ID.String(), bytes.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/properties/"+created.ID.String(), nil))
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/"+created.ID.String(), nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
