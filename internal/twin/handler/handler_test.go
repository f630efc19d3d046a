package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"doppel/internal/twin/handler/mocks"
	"doppel/internal/twin/models"
	dErrors "doppel/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/twin-mocks.go -package=mocks Service
type TwinHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *TwinHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestTwinHandlerSuite(t *testing.T) {
	suite.Run(t, new(TwinHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func findTwin(r chi.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/find-twin", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (s *TwinHandlerSuite) TestFindTwinSuccess() {
	r, mockService := newTestHandler(s.T())
	income := 153811.0
	mockService.EXPECT().Lookup(gomock.Any(), "90210").Return(&models.CompositeResult{
		ZipCode: "90210",
		Demographics: &models.Demographics{
			ZipCode:      "90210",
			Population:   19428,
			MedianIncome: &income,
		},
		Profile: &models.CommunityProfile{WhoAreWe: "An affluent enclave."},
		Doppelgangers: []models.DoppelgangerMatch{
			{ZipCode: "33109", City: "Miami Beach", State: "FL", SimilarityPercentage: 94},
		},
	}, nil)

	rec := findTwin(r, `{"zip_code": "90210"}`)

	s.Equal(http.StatusOK, rec.Code)
	var got models.CompositeResult
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("90210", got.ZipCode)
	require.Len(s.T(), got.Doppelgangers, 1)
	s.Equal("33109", got.Doppelgangers[0].ZipCode)
}

func (s *TwinHandlerSuite) TestFindTwinMalformedBody() {
	r, _ := newTestHandler(s.T())

	rec := findTwin(r, `{"zip_code": `)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bad_request")
}

func (s *TwinHandlerSuite) TestFindTwinMissingZipCode() {
	r, _ := newTestHandler(s.T())

	rec := findTwin(r, `{}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "zip_code is required")
}

func (s *TwinHandlerSuite) TestFindTwinInvalidZipMapsTo400() {
	r, mockService := newTestHandler(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "1234").
		Return(nil, dErrors.New(dErrors.CodeValidation, "zip code must be exactly 5 digits"))

	rec := findTwin(r, `{"zip_code": "1234"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "validation_error")
}

func (s *TwinHandlerSuite) TestFindTwinUnknownZipMapsTo404() {
	r, mockService := newTestHandler(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "00000").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "no demographic data for ZIP 00000"))

	rec := findTwin(r, `{"zip_code": "00000"}`)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "not_found")
}

func (s *TwinHandlerSuite) TestFindTwinUpstreamFailureMapsTo502() {
	r, mockService := newTestHandler(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "90210").
		Return(nil, dErrors.New(dErrors.CodeUpstream, "upstream provider failed"))

	rec := findTwin(r, `{"zip_code": "90210"}`)

	s.Equal(http.StatusBadGateway, rec.Code)
}

func (s *TwinHandlerSuite) TestFindTwinInternalHidesDetail() {
	r, mockService := newTestHandler(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "90210").
		Return(nil, dErrors.New(dErrors.CodeInternal, "connection string leaked"))

	rec := findTwin(r, `{"zip_code": "90210"}`)

	s.Equal(http.StatusInternalServerError, rec.Code)
	assert.NotContains(s.T(), rec.Body.String(), "connection string")
}
