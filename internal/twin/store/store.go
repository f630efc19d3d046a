package store

import (
	"context"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
)

// Store is the cache-aside persistence contract for composite results.
//
// Get returns sentinel.ErrNotFound when no entry exists for the ZIP code and
// wraps sentinel.ErrUnavailable when the backing store is unreachable, so the
// orchestrator can tell "not cached" from "cache broken" and degrade the
// latter to an always-miss.
//
// Put upserts the whole composite under its ZIP code. Entries are replaced
// atomically from the caller's perspective and never expire; staleness is the
// accepted price of skipping two upstreams on repeat lookups.
type Store interface {
	Get(ctx context.Context, zip domain.ZIPCode) (*models.CompositeResult, error)
	Put(ctx context.Context, zip domain.ZIPCode, result *models.CompositeResult) error
}
