package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"resort_booking/internal/domain"
)

// CatalogSyncService copies products from the upstream catalog into the store.
type CatalogSyncService struct {
	feed    domain.CatalogFeed
	repo    domain.CatalogRepository
	catalog *CatalogService
}

func NewCatalogSyncService(f domain.CatalogFeed, r domain.CatalogRepository, c *CatalogService) *CatalogSyncService {
	return &CatalogSyncService{feed: f, repo: r, catalog: c}
}

type SyncOutcome int

const (
	SyncUpserted SyncOutcome = iota
	SyncMissed
)

type SyncReport struct {
	Upserted int64
	Missed   int64
	Failed   int64
}

// SyncProduct fetches one product and upserts it. Upstream 404/401/403 and
// unmappable payloads are recorded as misses rather than failures.
func (s *CatalogSyncService) SyncProduct(ctx context.Context, id int64) (SyncOutcome, error) {
	payload, err := s.feed.GetProduct(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_ = s.repo.LogMiss(ctx, id, 404, "not found")
		return SyncMissed, nil
	case errors.Is(err, domain.ErrAccessDenied):
		_ = s.repo.LogMiss(ctx, id, 403, "inactive")
		return SyncMissed, nil
	case err != nil:
		return 0, err
	}

	p, err := mapProduct(payload)
	if err != nil {
		_ = s.repo.LogMiss(ctx, id, 422, err.Error())
		return SyncMissed, nil
	}
	if p.ID != id {
		log.Warn().Int64("requested", id).Int64("payload", p.ID).Msg("catalog payload id differs; using requested id")
		p.ID = id
	}

	// a product may move category; both listings have to go
	cats := []domain.Category{p.Category}
	prev, err := s.repo.GetProduct(ctx, id)
	switch {
	case err == nil:
		cats = append(cats, prev.Category)
	case !errors.Is(err, domain.ErrNotFound):
		return 0, fmt.Errorf("read product %d: %w", id, err)
	}

	if err := s.repo.UpsertProduct(ctx, p); err != nil {
		return 0, fmt.Errorf("upsert product %d: %w", id, err)
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, cats...)
	}
	return SyncUpserted, nil
}

// SyncAll lists upstream product ids and syncs them with at most workers in flight.
func (s *CatalogSyncService) SyncAll(ctx context.Context, workers int) (SyncReport, error) {
	if workers <= 0 {
		workers = 1
	}
	ids, err := s.feed.ListProductIDs(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("list upstream products: %w", err)
	}

	var (
		upserted, missed, failed atomic.Int64
		wg                       sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(workers))
	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return SyncReport{}, err
		}
		wg.Add(1)
		go func(productID int64) {
			defer wg.Done()
			defer sem.Release(1)

			outcome, err := s.SyncProduct(ctx, productID)
			if err != nil {
				failed.Add(1)
				log.Warn().Int64("id", productID).Err(err).Msg("product sync failed")
				return
			}
			if outcome == SyncMissed {
				missed.Add(1)
				return
			}
			upserted.Add(1)
		}(id)
	}
	wg.Wait()

	return SyncReport{Upserted: upserted.Load(), Missed: missed.Load(), Failed: failed.Load()}, nil
}
