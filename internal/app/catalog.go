package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"resort_booking/internal/domain"
)

type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func productsKey(category *domain.Category, reservableOnly bool) string {
	c := "all"
	if category != nil {
		c = string(*category)
	}
	return fmt.Sprintf("products:%s:%t", c, reservableOnly)
}

// FindProducts returns the products matching q, ordered by id.
func (s *CatalogService) FindProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	key := productsKey(q.Category, q.ReservableOnly)
	var out []domain.Product
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &out)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed, using database")
		}
		if ok {
			return out, nil
		}
	}
	ps, err := s.repo.FindProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	// copy so later mutation by the caller can't reach the cached value
	out = make([]domain.Product, len(ps))
	copy(out, ps)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Invalidate drops every cached listing that could contain a product of the
// given categories. Pass both the old and new category when a product moves.
func (s *CatalogService) Invalidate(ctx context.Context, cats ...domain.Category) {
	if s.cache == nil {
		return
	}
	keys := []string{productsKey(nil, false), productsKey(nil, true)}
	seen := make(map[domain.Category]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			continue
		}
		seen[c] = true
		cc := c
		keys = append(keys, productsKey(&cc, false), productsKey(&cc, true))
	}
	for _, k := range keys {
		if err := s.cache.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("catalog cache invalidation failed")
		}
	}
}
