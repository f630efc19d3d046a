package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"doppel/internal/audit"
	"doppel/internal/platform/metrics"
	"doppel/internal/platform/middleware"
	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	dErrors "doppel/pkg/domain-errors"
	"doppel/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// CacheStore persists finished composite results. Implementations signal
// misses with sentinel.ErrNotFound and outages with sentinel.ErrUnavailable.
type CacheStore interface {
	Get(ctx context.Context, zip domain.ZIPCode) (*models.CompositeResult, error)
	Put(ctx context.Context, zip domain.ZIPCode, result *models.CompositeResult) error
}

// DemographicSource resolves a ZIP code to its demographic snapshot.
type DemographicSource interface {
	Fetch(ctx context.Context, zip domain.ZIPCode) (*models.Demographics, error)
}

// Analyzer produces the two narrative halves of a composite result.
type Analyzer interface {
	Profile(ctx context.Context, d *models.Demographics) (*models.CommunityProfile, error)
	Doppelgangers(ctx context.Context, d *models.Demographics) ([]models.DoppelgangerMatch, error)
}

// Recorder receives one audit event per finished lookup. Best-effort.
type Recorder interface {
	Emit(event audit.Event)
}

// Lookup outcomes used for metrics and audit events.
const (
	OutcomeCached     = "cached"
	OutcomeComputed   = "computed"
	OutcomeNotFound   = "not_found"
	OutcomeUpstream   = "upstream_error"
	OutcomeValidation = "validation_error"
	OutcomeTimeout    = "timeout"
)

// Service runs the cache-aside lookup pipeline: check the cache, fetch
// demographics on a miss, run both analyses concurrently, merge, then write
// the composite back without letting a cache outage fail the request.
type Service struct {
	store    CacheStore
	census   DemographicSource
	analyzer Analyzer
	recorder Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	inflight singleflight.Group
	tracer   trace.Tracer
}

func NewService(
	store CacheStore,
	census DemographicSource,
	analyzer Analyzer,
	recorder Recorder,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		census:   census,
		analyzer: analyzer,
		recorder: recorder,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("doppel/twin"),
	}
}

// Lookup resolves one raw ZIP string to a composite result.
func (s *Service) Lookup(ctx context.Context, rawZip string) (*models.CompositeResult, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "twin.Lookup")
	defer span.End()

	zip, err := domain.ParseZIP(rawZip)
	if err != nil {
		s.finish(ctx, start, rawZip, OutcomeValidation, false)
		return nil, err
	}
	span.SetAttributes(attribute.String("zip", zip.String()))

	if cached := s.fromCache(ctx, zip); cached != nil {
		s.finish(ctx, start, zip.String(), OutcomeCached, true)
		return cached, nil
	}

	// Collapse concurrent misses for the same ZIP into one upstream pass.
	// Callers that join a flight share its result and its error. The flight
	// runs on the initiating caller's context, so cancelling that request
	// cancels the flight for every joiner; joiners retrying after a
	// cancellation start a fresh flight.
	value, err, _ := s.inflight.Do(zip.String(), func() (any, error) {
		return s.compute(ctx, zip)
	})
	if err != nil {
		s.finish(ctx, start, zip.String(), outcomeFor(err), false)
		return nil, s.translate(err, zip)
	}

	result := value.(*models.CompositeResult)
	s.finish(ctx, start, zip.String(), OutcomeComputed, false)
	return result, nil
}

// fromCache returns a hit or nil. Store outages degrade to a miss so the
// lookup still completes against live providers.
func (s *Service) fromCache(ctx context.Context, zip domain.ZIPCode) *models.CompositeResult {
	result, err := s.store.Get(ctx, zip)
	if err == nil {
		s.metrics.CacheHits.Inc()
		return result
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.CacheMisses.Inc()
	case errors.Is(err, sentinel.ErrUnavailable):
		s.metrics.CacheDegraded.Inc()
		s.metrics.CacheMisses.Inc()
		s.logger.Warn("cache read degraded, continuing without it", "zip", zip, "error", err)
	default:
		s.metrics.CacheMisses.Inc()
		s.logger.Error("unexpected cache read failure, treating as miss", "zip", zip, "error", err)
	}
	return nil
}

// compute runs the full miss path: demographics, then both analyses in
// parallel, then a best-effort cache write of the merged result.
func (s *Service) compute(ctx context.Context, zip domain.ZIPCode) (*models.CompositeResult, error) {
	demographics, err := s.census.Fetch(ctx, zip)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementUpstreamFailure("census")
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	var profile *models.CommunityProfile
	var matches []models.DoppelgangerMatch

	g.Go(func() error {
		p, err := s.analyzer.Profile(gctx, demographics)
		if err != nil {
			s.metrics.IncrementUpstreamFailure("gemini_profile")
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		m, err := s.analyzer.Doppelgangers(gctx, demographics)
		if err != nil {
			s.metrics.IncrementUpstreamFailure("gemini_matches")
			return err
		}
		matches = m
		return nil
	})

	// Either analysis failing fails the whole lookup. Nothing partial is
	// returned or cached.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.CompositeResult{
		ZipCode:       zip.String(),
		Demographics:  demographics,
		Profile:       profile,
		Doppelgangers: matches,
	}

	if err := s.store.Put(ctx, zip, result); err != nil {
		s.metrics.CacheDegraded.Inc()
		s.logger.Warn("cache write failed, returning result anyway", "zip", zip, "error", err)
	}

	return result, nil
}

// translate maps provider sentinels onto caller-visible domain errors. Errors
// already carrying a domain code pass through untouched.
func (s *Service) translate(err error, zip domain.ZIPCode) error {
	var de *dErrors.DomainError
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "lookup deadline exceeded")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "no demographic data for ZIP "+zip.String())
	case errors.Is(err, sentinel.ErrUnavailable), errors.Is(err, sentinel.ErrBadUpstream):
		return dErrors.Wrap(err, dErrors.CodeUpstream, "upstream provider failed")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "lookup failed")
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), dErrors.HasCode(err, dErrors.CodeTimeout):
		return OutcomeTimeout
	case errors.Is(err, sentinel.ErrNotFound), dErrors.HasCode(err, dErrors.CodeNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUpstream
	}
}

func (s *Service) finish(ctx context.Context, start time.Time, zip, outcome string, cacheHit bool) {
	elapsed := time.Since(start)
	s.metrics.ObserveLookup(outcome, elapsed)
	if s.recorder != nil {
		s.recorder.Emit(audit.Event{
			RequestID:  middleware.GetRequestID(ctx),
			ZipCode:    zip,
			Outcome:    outcome,
			CacheHit:   cacheHit,
			DurationMs: elapsed.Milliseconds(),
		})
	}
}
