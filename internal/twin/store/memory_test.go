package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func makeComposite(zip string) *models.CompositeResult {
	income := 112500.0
	age := 41.2
	return &models.CompositeResult{
		ZipCode: zip,
		Demographics: &models.Demographics{
			ZipCode:      zip,
			Name:         "ZCTA5 " + zip,
			Population:   20575,
			MedianIncome: &income,
			MedianAge:    &age,
		},
		Profile: &models.CommunityProfile{
			WhoAreWe:            "An affluent, established community.",
			OurNeighborhood:     []string{"Predominantly owner-occupied housing"},
			SocioeconomicTraits: []string{"High educational attainment"},
		},
		Doppelgangers: []models.DoppelgangerMatch{
			{ZipCode: "33109", City: "Miami Beach", State: "FL", SimilarityReason: "Comparable incomes and home values", SimilarityPercentage: 94},
		},
	}
}

func (s *MemoryStoreSuite) TestGetMissReturnsNotFound() {
	_, err := s.store.Get(s.ctx, domain.ZIPCode("90210"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestPutThenGetRoundTrips() {
	zip := domain.ZIPCode("90210")
	composite := makeComposite(zip.String())
	s.Require().NoError(s.store.Put(s.ctx, zip, composite))

	got, err := s.store.Get(s.ctx, zip)
	s.Require().NoError(err)
	s.Equal(composite.ZipCode, got.ZipCode)
	s.Require().NotNil(got.Demographics)
	s.Equal(int64(20575), got.Demographics.Population)
	s.Require().NotNil(got.Demographics.MedianIncome)
	s.Equal(112500.0, *got.Demographics.MedianIncome)
	s.Len(got.Doppelgangers, 1)
}

func (s *MemoryStoreSuite) TestPutOverwritesWholeEntry() {
	zip := domain.ZIPCode("10001")
	first := makeComposite(zip.String())
	s.Require().NoError(s.store.Put(s.ctx, zip, first))

	second := makeComposite(zip.String())
	second.Profile.WhoAreWe = "Rewritten on recompute."
	second.Doppelgangers = nil
	s.Require().NoError(s.store.Put(s.ctx, zip, second))

	got, err := s.store.Get(s.ctx, zip)
	s.Require().NoError(err)
	s.Equal("Rewritten on recompute.", got.Profile.WhoAreWe)
	s.Empty(got.Doppelgangers, "overwrite must replace, not merge")
	s.Equal(1, s.store.Len())
}

func (s *MemoryStoreSuite) TestCachedEntryIsIsolatedFromCaller() {
	zip := domain.ZIPCode("60614")
	composite := makeComposite(zip.String())
	s.Require().NoError(s.store.Put(s.ctx, zip, composite))

	// Mutating the original after Put must not reach the cache.
	composite.Profile.WhoAreWe = "mutated"

	got, err := s.store.Get(s.ctx, zip)
	s.Require().NoError(err)
	s.NotEqual("mutated", got.Profile.WhoAreWe)
}
