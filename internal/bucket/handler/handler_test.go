package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"propsearch/internal/bucket/handler/mocks"
	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/service"
	dErrors "propsearch/pkg/domain-errors"
)

type BucketHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestBucketHandlerSuite(t *testing.T) {
	suite.Run(t, new(BucketHandlerSuite))
}

func (s *BucketHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	New(s.service, logger).Register(s.router)
}

func (s *BucketHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BucketHandlerSuite) serve(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleBucket() *models.GeoBucket {
	return &models.GeoBucket{
		CellID:        "89754e64993ffff",
		Centroid:      orb.Point{3.6285, 6.4698},
		CanonicalName: "sangotedo",
		NameVariants:  []string{"sangotedo", "sangotedo ajah"},
		PropertyCount: 3,
	}
}

func (s *BucketHandlerSuite) TestList() {
	s.service.EXPECT().ListBuckets(gomock.Any()).Return([]*models.GeoBucket{sampleBucket()}, nil)

	w := s.serve(http.MethodGet, "/api/geo-buckets/")
	s.Equal(http.StatusOK, w.Code)

	var body struct {
		Buckets []*models.GeoBucket `json:"buckets"`
		Count   int                 `json:"count"`
	}
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Equal(1, body.Count)
	s.Equal("sangotedo", body.Buckets[0].CanonicalName)
}

func (s *BucketHandlerSuite) TestGet() {
	s.Run("found", func() {
		s.service.EXPECT().Locate(gomock.Any(), "89754e64993ffff").Return(sampleBucket(), nil)

		w := s.serve(http.MethodGet, "/api/geo-buckets/89754e64993ffff")
		s.Equal(http.StatusOK, w.Code)

		var bucket models.GeoBucket
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&bucket))
		s.Equal("sangotedo", bucket.CanonicalName)
	})

	s.Run("missing", func() {
		s.service.EXPECT().Locate(gomock.Any(), "unknown").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "bucket not found"))

		w := s.serve(http.MethodGet, "/api/geo-buckets/unknown")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BucketHandlerSuite) TestLocate() {
	s.Run("known name", func() {
		s.service.EXPECT().LocateByName(gomock.Any(), "Sangotedo, Lagos").Return(sampleBucket(), nil)

		w := s.serve(http.MethodGet, "/api/geo-buckets/locate?name=Sangotedo%2C+Lagos")
		s.Equal(http.StatusOK, w.Code)

		var bucket models.GeoBucket
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&bucket))
		s.Equal("sangotedo", bucket.CanonicalName)
		s.InDelta(3.6285, bucket.Centroid[0], 1e-9)
	})

	s.Run("missing name parameter", func() {
		w := s.serve(http.MethodGet, "/api/geo-buckets/locate")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown name", func() {
		s.service.EXPECT().LocateByName(gomock.Any(), "ikorodu").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "no bucket for location name"))

		w := s.serve(http.MethodGet, "/api/geo-buckets/locate?name=ikorodu")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BucketHandlerSuite) TestStats() {
	s.service.EXPECT().Stats(gomock.Any(), true).Return(&models.BucketStats{
		TotalBuckets:    2,
		TotalProperties: 5,
		Details:         []*models.GeoBucket{sampleBucket()},
	}, nil)

	w := s.serve(http.MethodGet, "/api/geo-buckets/stats?details=true")
	s.Equal(http.StatusOK, w.Code)

	var stats models.BucketStats
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&stats))
	s.Equal(2, stats.TotalBuckets)
	s.Len(stats.Details, 1)
}

func (s *BucketHandlerSuite) TestResolve() {
	s.Run("name only", func() {
		s.service.EXPECT().
			Resolve(gomock.Any(), service.Query{RawName: "sangotedo"}).
			Return(&service.Result{
				Buckets:       []*models.GeoBucket{sampleBucket()},
				TerminalLayer: service.LayerFuzzyName,
			}, nil)

		w := s.serve(http.MethodGet, "/api/geo-buckets/resolve?q=sangotedo")
		s.Equal(http.StatusOK, w.Code)

		var body struct {
			TerminalLayer string              `json:"terminal_layer"`
			Buckets       []*models.GeoBucket `json:"buckets"`
			Count         int                 `json:"count"`
		}
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
		s.Equal("fuzzy_name", body.TerminalLayer)
		s.Equal(1, body.Count)
	})

	s.Run("with point", func() {
		point := &orb.Point{3.6285, 6.4698}
		s.service.EXPECT().
			Resolve(gomock.Any(), service.Query{RawName: "sangotedo", Point: point}).
			Return(&service.Result{TerminalLayer: service.LayerExactCell}, nil)

		w := s.serve(http.MethodGet, "/api/geo-buckets/resolve?q=sangotedo&lat=6.4698&lng=3.6285")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing query", func() {
		w := s.serve(http.MethodGet, "/api/geo-buckets/resolve")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("half a coordinate", func() {
		w := s.serve(http.MethodGet, "/api/geo-buckets/resolve?q=sangotedo&lat=6.4698")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("store down", func() {
		s.service.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "bucket store unavailable"))

		w := s.serve(http.MethodGet, "/api/geo-buckets/resolve?q=sangotedo")
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})
}
