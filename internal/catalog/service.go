package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/domain"
)

// Lister fetches the catalog from the core API.
type Lister interface {
	ListProducts(ctx context.Context, token, search string) ([]domain.Product, error)
}

// Service is a read-through catalog: cache first, core API on a miss. Cache
// trouble degrades to a direct fetch rather than failing the request.
type Service struct {
	upstream Lister
	cache    Cache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewService(upstream Lister, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Products returns the purchasable catalog for the given search term.
func (s *Service) Products(ctx context.Context, token, search string) ([]domain.Product, error) {
	products, hit, err := s.cache.Get(ctx, search)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.Error(err))
	} else if hit {
		return products, nil
	}

	products, err = s.upstream.ListProducts(ctx, token, search)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, search, products, s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
	return products, nil
}
