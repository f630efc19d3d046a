//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"doppel/internal/twin/store"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
	"doppel/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.ExecContext(context.Background(), "TRUNCATE zip_cache")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestMissIsNotFound() {
	_, err := s.store.Get(context.Background(), domain.ZIPCode("90210"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	zip := domain.ZIPCode("90210")
	s.Require().NoError(s.store.Put(ctx, zip, composite("90210")))

	got, err := s.store.Get(ctx, zip)
	s.Require().NoError(err)
	s.Equal("90210", got.ZipCode)
	s.Equal(int64(27004), got.Demographics.Population)
}

func (s *PostgresStoreSuite) TestUpsertReplacesPayload() {
	ctx := context.Background()
	zip := domain.ZIPCode("10001")
	first := composite("10001")
	s.Require().NoError(s.store.Put(ctx, zip, first))

	second := composite("10001")
	second.Profile.WhoAreWe = "Recomputed."
	s.Require().NoError(s.store.Put(ctx, zip, second))

	got, err := s.store.Get(ctx, zip)
	s.Require().NoError(err)
	s.Equal("Recomputed.", got.Profile.WhoAreWe)

	var count int
	s.Require().NoError(s.pg.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM zip_cache").Scan(&count))
	s.Equal(1, count, "upsert must not duplicate rows")
}
