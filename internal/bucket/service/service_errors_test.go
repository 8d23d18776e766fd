package service_test

//go:generate mockgen -source=../store/store.go -destination=../store/mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"propsearch/internal/bucket/models"
	"propsearch/internal/bucket/service"
	"propsearch/internal/bucket/store/mocks"
	"propsearch/internal/geo"
	"propsearch/internal/location/matcher"
	"propsearch/internal/location/normalizer"
	domainerrors "propsearch/pkg/domain-errors"
	"propsearch/pkg/platform/sentinel"
)

var errDown = errors.New("connection refused")

// EngineErrorSuite drives the engine against a mocked store to pin down error
// classification and the race-loser fallback, which the in-memory store
// cannot force deterministically.
type EngineErrorSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	engine *service.Service
	ctx    context.Context
}

func TestEngineErrorSuite(t *testing.T) {
	suite.Run(t, new(EngineErrorSuite))
}

func (s *EngineErrorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.engine = service.New(
		geo.NewGrid(9),
		normalizer.New(normalizer.DefaultConfig()),
		matcher.New(),
		s.store,
		service.Config{},
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.ctx = context.Background()
}

func (s *EngineErrorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineErrorSuite) TestAssignStoreDownIsUnavailable() {
	s.store.EXPECT().GetByCell(gomock.Any(), gomock.Any()).Return(nil, errDown)

	_, err := s.engine.Assign(s.ctx, sangotedo, "Sangotedo")
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeUnavailable))
	s.Require().ErrorIs(err, errDown, "cause stays in the chain for logs")
}

func (s *EngineErrorSuite) TestAssignCreateFailureIsUnavailable() {
	s.store.EXPECT().GetByCell(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(nil, false, errDown)

	_, err := s.engine.Assign(s.ctx, sangotedo, "Sangotedo")
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeUnavailable))
}

func (s *EngineErrorSuite) TestAssignLostRaceFallsBackToIncrement() {
	winner := &models.GeoBucket{
		CellID:        "cell-a",
		CanonicalName: "sangotedo",
		NameVariants:  []string{"sangotedo"},
		PropertyCount: 1,
	}
	after := &models.GeoBucket{
		CellID:        "cell-a",
		CanonicalName: "sangotedo",
		NameVariants:  []string{"sangotedo"},
		PropertyCount: 2,
	}

	gomock.InOrder(
		s.store.EXPECT().GetByCell(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound),
		// Another assign won the creation race between our read and write.
		s.store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(winner, false, nil),
		s.store.EXPECT().IncrementAndAddVariant(gomock.Any(), "cell-a", "sangotedo", gomock.Any()).Return(nil),
		s.store.EXPECT().GetByCell(gomock.Any(), "cell-a").Return(after, nil),
		s.store.EXPECT().UpsertIndexEntry(gomock.Any(), gomock.Any()).Return(nil),
	)

	bucket, err := s.engine.Assign(s.ctx, sangotedo, "Sangotedo")
	s.Require().NoError(err)
	s.Equal(2, bucket.PropertyCount)
}

func (s *EngineErrorSuite) TestResolveIndexScanFailureIsUnavailable() {
	s.store.EXPECT().SearchIndex(gomock.Any(), "sangotedo", gomock.Any()).Return(nil, errDown)

	_, err := s.engine.Resolve(s.ctx, service.Query{RawName: "Sangotedo"})
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeUnavailable))
}

func (s *EngineErrorSuite) TestStatsFailureIsUnavailable() {
	s.store.EXPECT().Stats(gomock.Any()).Return(nil, errDown)

	_, err := s.engine.Stats(s.ctx, false)
	s.Require().Error(err)
	s.True(domainerrors.Is(err, domainerrors.CodeUnavailable))
}
